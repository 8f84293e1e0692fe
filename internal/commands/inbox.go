package commands

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
)

const (
	PeriodToday            = "today"
	PeriodYesterday        = "yesterday"
	PeriodLast7Days        = "last_7_days"
	PeriodEarlierThisMonth = "earlier_this_month"
	PeriodLastMonth        = "last_month"
	PeriodOlder            = "older"
)

// InboxPeriods lists the periods newest first.
var InboxPeriods = []string{
	PeriodToday,
	PeriodYesterday,
	PeriodLast7Days,
	PeriodEarlierThisMonth,
	PeriodLastMonth,
	PeriodOlder,
}

var periodLabels = map[string]string{
	PeriodToday:            "Today",
	PeriodYesterday:        "Yesterday",
	PeriodLast7Days:        "Last 7 days",
	PeriodEarlierThisMonth: "Earlier this month",
	PeriodLastMonth:        "Last month",
	PeriodOlder:            "Older",
}

func PeriodLabel(period string) string {
	if l, ok := periodLabels[period]; ok {
		return l
	}
	return period
}

// ClassifyPeriod buckets t relative to now. Calendar boundaries use now's
// location. The first matching period wins, so a task from two days ago
// that is also this month lands in last_7_days.
func ClassifyPeriod(t, now time.Time) string {
	y, m, d := now.Date()
	loc := now.Location()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, loc)

	switch {
	case !t.Before(today):
		return PeriodToday
	case !t.Before(today.AddDate(0, 0, -1)):
		return PeriodYesterday
	case !t.Before(now.Add(-7 * 24 * time.Hour)):
		return PeriodLast7Days
	case !t.Before(monthStart):
		return PeriodEarlierThisMonth
	case !t.Before(monthStart.AddDate(0, -1, 0)):
		return PeriodLastMonth
	default:
		return PeriodOlder
	}
}

func updatedAt(t clickup.Task) time.Time {
	if ts, ok := model.ParseMillis(t.DateUpdated); ok {
		return ts
	}
	return time.UnixMilli(0)
}

// Inbox returns tasks updated within the last days, newest first.
func (h *Handlers) Inbox(ctx context.Context, days int) ([]model.InboxTask, error) {
	tasks, err := h.api.MyTasks(ctx, h.teamID, clickup.TaskFilter{})
	if err != nil {
		return nil, err
	}

	cutoff := lookback(h.now(), days, MaxDays, 24*time.Hour)
	var recent []clickup.Task
	for _, t := range tasks {
		if updatedAt(t).After(cutoff) {
			recent = append(recent, t)
		}
	}
	slices.SortStableFunc(recent, func(a, b clickup.Task) int {
		return cmp.Compare(updatedAt(b).UnixMilli(), updatedAt(a).UnixMilli())
	})

	out := make([]model.InboxTask, 0, len(recent))
	for _, t := range recent {
		out = append(out, model.InboxTask{TaskSummary: model.Summarize(t), DateUpdated: t.DateUpdated})
	}
	return out, nil
}

// InboxSections is Inbox grouped by period.
func (h *Handlers) InboxSections(ctx context.Context, days int) (model.Sections[model.InboxTask], error) {
	tasks, err := h.Inbox(ctx, days)
	if err != nil {
		return nil, err
	}
	return GroupInbox(tasks, h.now()), nil
}

// GroupInbox splits tasks into every period, in InboxPeriods order. Empty
// periods are kept.
func GroupInbox(tasks []model.InboxTask, now time.Time) model.Sections[model.InboxTask] {
	byPeriod := make(map[string][]model.InboxTask)
	for _, t := range tasks {
		ts, ok := model.ParseMillis(t.DateUpdated)
		if !ok {
			ts = time.UnixMilli(0)
		}
		p := ClassifyPeriod(ts, now)
		byPeriod[p] = append(byPeriod[p], t)
	}

	out := make(model.Sections[model.InboxTask], 0, len(InboxPeriods))
	for _, p := range InboxPeriods {
		out = append(out, model.Section[model.InboxTask]{Key: p, Items: byPeriod[p]})
	}
	return out
}

// InboxTaskGroups converts the non-empty periods to labeled summaries.
func InboxTaskGroups(sections model.Sections[model.InboxTask]) []model.TaskGroup {
	var out []model.TaskGroup
	for _, s := range sections {
		if len(s.Items) == 0 {
			continue
		}
		g := model.TaskGroup{Label: PeriodLabel(s.Key)}
		for _, t := range s.Items {
			g.Tasks = append(g.Tasks, t.TaskSummary)
		}
		out = append(out, g)
	}
	return out
}
