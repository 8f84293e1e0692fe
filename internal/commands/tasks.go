package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
	"github.com/baiirun/cu/internal/status"
)

// TaskQuery filters FetchMyTasks. Zero values mean no filter.
type TaskQuery struct {
	Type          model.TaskType
	Status        string
	ListIDs       []string
	Name          string
	IncludeClosed bool
}

// FetchMyTasks returns tasks assigned to the current user. Status is
// resolved fuzzily against the team's space statuses and passed to the
// API; type and name are filtered locally.
func (h *Handlers) FetchMyTasks(ctx context.Context, q TaskQuery) ([]model.TaskSummary, error) {
	if q.Type != "" && !q.Type.IsValid() {
		return nil, fmt.Errorf("invalid task type %q", q.Type)
	}
	filter := clickup.TaskFilter{ListIDs: q.ListIDs, IncludeClosed: q.IncludeClosed}
	if q.Status != "" {
		statuses, err := h.teamStatuses(ctx)
		if err != nil {
			return nil, err
		}
		filter.Statuses = []string{h.matchStatusOrRaw(q.Status, statuses)}
	}

	tasks, err := h.api.MyTasks(ctx, h.teamID, filter)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(q.Name)
	out := make([]model.TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		if q.Type != "" && model.TypeOf(t) != q.Type {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(t.Name), name) {
			continue
		}
		out = append(out, model.Summarize(t))
	}
	return out, nil
}

// teamStatuses lists the distinct status names across the team's spaces.
func (h *Handlers) teamStatuses(ctx context.Context) ([]string, error) {
	spaces, err := h.api.Spaces(ctx, h.teamID)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, s := range spaces {
		for _, st := range s.Statuses {
			names = append(names, st.Status)
		}
	}
	return status.Unique(names), nil
}

// Task returns the full task.
func (h *Handlers) Task(ctx context.Context, id string) (clickup.Task, error) {
	return h.api.Task(ctx, id)
}

// Subtasks lists the direct children of a task.
func (h *Handlers) Subtasks(ctx context.Context, parentID string) ([]model.TaskSummary, error) {
	parent, err := h.api.Task(ctx, parentID)
	if err != nil {
		return nil, err
	}
	tasks, err := h.api.ListTasks(ctx, parent.List.ID, clickup.ListTaskOptions{Parent: parentID})
	if err != nil {
		return nil, err
	}
	return model.SummarizeAll(tasks), nil
}
