package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/baiirun/cu/internal/clickup"
)

var ErrNoAssignChange = errors.New("Provide at least one of: --to, --remove")

// resolveUser turns "me" into the current user's id and validates others.
func (h *Handlers) resolveUser(ctx context.Context, who string) (int, error) {
	if strings.EqualFold(strings.TrimSpace(who), "me") {
		me, err := h.api.Me(ctx)
		if err != nil {
			return 0, err
		}
		return me.ID, nil
	}
	return ParseAssigneeID(who)
}

// Assign adds and/or removes one assignee.
func (h *Handlers) Assign(ctx context.Context, taskID, to, remove string) (clickup.Task, error) {
	if to == "" && remove == "" {
		return clickup.Task{}, ErrNoAssignChange
	}

	var change clickup.AssigneesUpdate
	if to != "" {
		id, err := h.resolveUser(ctx, to)
		if err != nil {
			return clickup.Task{}, err
		}
		change.Add = []int{id}
	}
	if remove != "" {
		id, err := h.resolveUser(ctx, remove)
		if err != nil {
			return clickup.Task{}, err
		}
		change.Rem = []int{id}
	}
	return h.api.UpdateTask(ctx, taskID, clickup.UpdateTaskRequest{Assignees: &change})
}
