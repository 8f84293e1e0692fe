package model

import (
	"strings"

	"github.com/baiirun/cu/internal/clickup"
)

type TaskType string

const (
	TaskTypeTask       TaskType = "task"
	TaskTypeInitiative TaskType = "initiative"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeTask, TaskTypeInitiative:
		return true
	}
	return false
}

// ClosedStatuses are the status names treated as finished work.
var ClosedStatuses = []string{"done", "closed", "complete", "completed"}

// IsClosed reports whether status is one of ClosedStatuses, ignoring case.
func IsClosed(status string) bool {
	s := strings.ToLower(status)
	for _, c := range ClosedStatuses {
		if s == c {
			return true
		}
	}
	return false
}

// TaskSummary is the compact projection printed by list commands.
type TaskSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	TaskType TaskType `json:"task_type"`
	List     string   `json:"list"`
	URL      string   `json:"url"`
	Parent   string   `json:"parent,omitempty"`
}

// TypeOf derives the task type: a non-zero custom_item_id marks an initiative.
func TypeOf(t clickup.Task) TaskType {
	if t.IsInitiative() {
		return TaskTypeInitiative
	}
	return TaskTypeTask
}

func Summarize(t clickup.Task) TaskSummary {
	return TaskSummary{
		ID:       t.ID,
		Name:     t.Name,
		Status:   t.Status.Status,
		TaskType: TypeOf(t),
		List:     t.List.Name,
		URL:      t.URL,
		Parent:   t.Parent,
	}
}

// SummarizeAll never returns nil so JSON output is [] rather than null.
func SummarizeAll(tasks []clickup.Task) []TaskSummary {
	out := make([]TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, Summarize(t))
	}
	return out
}
