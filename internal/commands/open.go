package commands

import (
	"context"
	"fmt"
	"regexp"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
)

var taskIDPattern = regexp.MustCompile(`(?i)^[a-z0-9]+$`)

const maxTaskIDLen = 12

// LooksLikeTaskID reports whether q could be a ClickUp task id.
func LooksLikeTaskID(q string) bool {
	return len(q) <= maxTaskIDLen && taskIDPattern.MatchString(q)
}

// FindTask resolves a query to one task. An id-like query is tried as an
// id first; otherwise the first of the user's tasks whose name contains the
// query wins. All name matches are returned alongside.
func (h *Handlers) FindTask(ctx context.Context, query string) (clickup.Task, []model.TaskSummary, error) {
	if LooksLikeTaskID(query) {
		task, err := h.api.Task(ctx, query)
		if err == nil {
			return task, nil, nil
		}
		h.logger.Debug("id lookup failed, searching by name", "query", query, "err", err)
	}

	matches, err := h.FetchMyTasks(ctx, TaskQuery{Name: query})
	if err != nil {
		return clickup.Task{}, nil, err
	}
	if len(matches) == 0 {
		return clickup.Task{}, nil, fmt.Errorf("No tasks found matching %q", query)
	}
	task, err := h.api.Task(ctx, matches[0].ID)
	if err != nil {
		return clickup.Task{}, nil, err
	}
	return task, matches, nil
}
