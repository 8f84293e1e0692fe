package commands

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
)

// statusOrder ranks the common workflow states, most urgent first.
var statusOrder = []string{
	"code review",
	"in review",
	"review",
	"in progress",
	"to do",
	"open",
	"needs definition",
	"backlog",
	"blocked",
}

// statusRank puts known states first in statusOrder order, then unknown
// states, then closed ones.
func statusRank(s string) int {
	s = strings.ToLower(s)
	if model.IsClosed(s) {
		return len(statusOrder) + 1
	}
	if i := slices.Index(statusOrder, s); i >= 0 {
		return i
	}
	return len(statusOrder)
}

// StatusGroup is the set of tasks sharing one status.
type StatusGroup struct {
	Status string
	Tasks  []clickup.Task
}

// GroupByStatus groups tasks by status, case-insensitively, keeping the
// first spelling seen. Closed groups are dropped unless includeClosed.
func GroupByStatus(tasks []clickup.Task, includeClosed bool) []StatusGroup {
	index := make(map[string]int)
	var groups []StatusGroup
	for _, t := range tasks {
		key := strings.ToLower(t.Status.Status)
		if !includeClosed && model.IsClosed(key) {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, StatusGroup{Status: t.Status.Status})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	slices.SortStableFunc(groups, func(a, b StatusGroup) int {
		return cmp.Compare(statusRank(a.Status), statusRank(b.Status))
	})
	return groups
}

// Assigned returns the user's tasks grouped by status.
func (h *Handlers) Assigned(ctx context.Context, includeClosed bool) ([]StatusGroup, error) {
	tasks, err := h.api.MyTasks(ctx, h.teamID, clickup.TaskFilter{IncludeClosed: includeClosed})
	if err != nil {
		return nil, err
	}
	return GroupByStatus(tasks, includeClosed), nil
}

// AssignedJSON keys each group by its lowercased status.
func AssignedJSON(groups []StatusGroup) model.Sections[model.AssignedTask] {
	out := make(model.Sections[model.AssignedTask], 0, len(groups))
	for _, g := range groups {
		items := make([]model.AssignedTask, 0, len(g.Tasks))
		for _, t := range g.Tasks {
			items = append(items, assignedTask(t))
		}
		out = append(out, model.Section[model.AssignedTask]{Key: strings.ToLower(g.Status), Items: items})
	}
	return out
}

func assignedTask(t clickup.Task) model.AssignedTask {
	at := model.AssignedTask{
		ID:       t.ID,
		Name:     t.Name,
		Status:   t.Status.Status,
		TaskType: model.TypeOf(t),
		List:     t.List.Name,
		URL:      t.URL,
	}
	if t.Priority != nil && t.Priority.Priority != "" {
		p := t.Priority.Priority
		at.Priority = &p
	}
	if t.DueDate != "" {
		d := t.DueDate
		at.DueDate = &d
	}
	return at
}

// TaskGroups converts status groups to labeled summaries.
func TaskGroups(groups []StatusGroup) []model.TaskGroup {
	out := make([]model.TaskGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, model.TaskGroup{Label: g.Status, Tasks: model.SummarizeAll(g.Tasks)})
	}
	return out
}
