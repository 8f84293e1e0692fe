package commands

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
)

var inProgressPatterns = []string{"in progress", "in review", "code review", "doing"}

// SummaryResult is the standup view of the user's tasks.
type SummaryResult struct {
	Completed  []model.TaskSummary `json:"completed"`
	InProgress []model.TaskSummary `json:"inProgress"`
	Overdue    []model.TaskSummary `json:"overdue"`
}

func isInProgress(status string) bool {
	s := strings.ToLower(status)
	for _, p := range inProgressPatterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isOverdue(t clickup.Task, now time.Time) bool {
	due, ok := model.ParseMillis(t.DueDate)
	return ok && due.Before(now)
}

// Categorize buckets tasks into completed within the last hours, in progress
// and overdue. A task can appear in both of the last two.
func Categorize(tasks []clickup.Task, hours int, now time.Time) SummaryResult {
	cutoff := lookback(now, hours, MaxHours, time.Hour)
	res := SummaryResult{
		Completed:  []model.TaskSummary{},
		InProgress: []model.TaskSummary{},
		Overdue:    []model.TaskSummary{},
	}
	for _, t := range tasks {
		if model.IsClosed(t.Status.Status) {
			if updated, ok := model.ParseMillis(t.DateUpdated); ok && !updated.Before(cutoff) {
				res.Completed = append(res.Completed, model.Summarize(t))
			}
			continue
		}
		if isInProgress(t.Status.Status) {
			res.InProgress = append(res.InProgress, model.Summarize(t))
		}
		if isOverdue(t, now) {
			res.Overdue = append(res.Overdue, model.Summarize(t))
		}
	}
	return res
}

func (h *Handlers) Summary(ctx context.Context, hours int) (SummaryResult, error) {
	tasks, err := h.api.MyTasks(ctx, h.teamID, clickup.TaskFilter{IncludeClosed: true})
	if err != nil {
		return SummaryResult{}, err
	}
	return Categorize(tasks, hours, h.now()), nil
}

// Overdue returns open tasks past their due date, earliest due first.
func (h *Handlers) Overdue(ctx context.Context) ([]model.TaskSummary, error) {
	tasks, err := h.api.MyTasks(ctx, h.teamID, clickup.TaskFilter{})
	if err != nil {
		return nil, err
	}

	now := h.now()
	var late []clickup.Task
	for _, t := range tasks {
		if !model.IsClosed(t.Status.Status) && isOverdue(t, now) {
			late = append(late, t)
		}
	}
	slices.SortStableFunc(late, func(a, b clickup.Task) int {
		da, _ := model.ParseMillis(a.DueDate)
		db, _ := model.ParseMillis(b.DueDate)
		return cmp.Compare(da.UnixMilli(), db.UnixMilli())
	})
	return model.SummarizeAll(late), nil
}
