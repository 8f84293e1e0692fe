package commands

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiirun/cu/internal/clickup"
)

func TestCategorize(t *testing.T) {
	doneRecent := task("d1", "Shipped", "Done")
	doneRecent.DateUpdated = ms(fixedNow.Add(-2 * time.Hour))
	doneOld := task("d2", "Shipped long ago", "complete")
	doneOld.DateUpdated = ms(fixedNow.Add(-48 * time.Hour))
	doneOverdue := task("d3", "Done late", "closed")
	doneOverdue.DueDate = ms(fixedNow.Add(-time.Hour))

	lateWork := task("p1", "Late work", "in progress")
	lateWork.DueDate = ms(fixedNow.Add(-24 * time.Hour))
	doing := task("p2", "Doing it", "Doing")
	review := task("p3", "Needs eyes", "waiting for code review")
	open := task("o1", "Later", "open")
	open.DueDate = ms(fixedNow.Add(24 * time.Hour))
	lateOpen := task("o2", "Forgot", "open")
	lateOpen.DueDate = ms(fixedNow.Add(-time.Minute))

	res := Categorize([]clickup.Task{doneRecent, doneOld, doneOverdue, lateWork, doing, review, open, lateOpen}, 24, fixedNow)

	assert.Equal(t, []string{"d1"}, summaryIDs(res.Completed))
	assert.Equal(t, []string{"p1", "p2", "p3"}, summaryIDs(res.InProgress))
	assert.Equal(t, []string{"p1", "o2"}, summaryIDs(res.Overdue))
}

func TestCategorize_EmptyListsNotNil(t *testing.T) {
	res := Categorize(nil, 24, fixedNow)
	assert.NotNil(t, res.Completed)
	assert.NotNil(t, res.InProgress)
	assert.NotNil(t, res.Overdue)
}

func TestCategorize_HugeWindowDoesNotOverflow(t *testing.T) {
	old := task("d1", "Shipped in 2000", "done")
	old.DateUpdated = ms(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))

	res := Categorize([]clickup.Task{old}, math.MaxInt, fixedNow)
	assert.Equal(t, []string{"d1"}, summaryIDs(res.Completed))
}

func TestSummary_IncludesClosedTasks(t *testing.T) {
	api := &fakeAPI{}
	h, _ := newTestHandlers(t, api)
	_, err := h.Summary(context.Background(), 24)
	require.NoError(t, err)
	assert.True(t, api.filters[0].IncludeClosed)
}

func TestOverdue_SortedByDueDate(t *testing.T) {
	due := func(id, status string, ago time.Duration) clickup.Task {
		tk := task(id, id, status)
		tk.DueDate = ms(fixedNow.Add(-ago))
		return tk
	}
	api := &fakeAPI{myTasks: []clickup.Task{
		due("recent", "open", time.Hour),
		due("oldest", "open", 72*time.Hour),
		due("finished", "done", 96*time.Hour),
		due("future", "open", -time.Hour),
		task("nodue", "nodue", "open"),
		due("middle", "in progress", 24*time.Hour),
	}}
	h, _ := newTestHandlers(t, api)

	got, err := h.Overdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"oldest", "middle", "recent"}, summaryIDs(got))
}
