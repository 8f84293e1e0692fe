package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
	"github.com/baiirun/cu/internal/status"
)

var ErrEmptyQuery = errors.New("Search query cannot be empty")

// matchesWords reports whether every word of query occurs in name.
func matchesWords(name string, words []string) bool {
	name = strings.ToLower(name)
	for _, w := range words {
		if !strings.Contains(name, w) {
			return false
		}
	}
	return true
}

// Search finds the user's tasks whose name contains every query word. The
// status filter is matched against the statuses present on those tasks.
func (h *Handlers) Search(ctx context.Context, query, statusFilter string) ([]model.TaskSummary, error) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil, ErrEmptyQuery
	}

	tasks, err := h.api.MyTasks(ctx, h.teamID, clickup.TaskFilter{})
	if err != nil {
		return nil, err
	}

	var want string
	if statusFilter != "" {
		observed := make([]string, 0, len(tasks))
		for _, t := range tasks {
			observed = append(observed, t.Status.Status)
		}
		want = h.matchStatusOrRaw(statusFilter, status.Unique(observed))
	}

	out := make([]model.TaskSummary, 0)
	for _, t := range tasks {
		if !matchesWords(t.Name, words) {
			continue
		}
		if want != "" && !strings.EqualFold(t.Status.Status, want) {
			continue
		}
		out = append(out, model.Summarize(t))
	}
	return out, nil
}
