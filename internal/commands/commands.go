// Package commands implements the cu verbs on top of the ClickUp client.
// Handlers return data; rendering is left to the caller.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/status"
)

// Lookback windows are capped at roughly a century so the cutoff duration
// cannot overflow.
const (
	MaxDays  = 36500
	MaxHours = MaxDays * 24
)

// lookback returns now minus n units, with n capped at limit.
func lookback(now time.Time, n, limit int, unit time.Duration) time.Time {
	n = min(n, limit)
	return now.Add(-time.Duration(n) * unit)
}

// API is the subset of the ClickUp client the handlers use.
type API interface {
	Me(ctx context.Context) (clickup.User, error)
	Teams(ctx context.Context) ([]clickup.Team, error)
	Spaces(ctx context.Context, teamID string) ([]clickup.Space, error)
	Space(ctx context.Context, spaceID string) (clickup.Space, error)
	Folders(ctx context.Context, spaceID string) ([]clickup.Folder, error)
	FolderLists(ctx context.Context, folderID string) ([]clickup.List, error)
	Lists(ctx context.Context, spaceID string) ([]clickup.List, error)
	Task(ctx context.Context, id string) (clickup.Task, error)
	MyTasks(ctx context.Context, teamID string, f clickup.TaskFilter) ([]clickup.Task, error)
	ListTasks(ctx context.Context, listID string, opts clickup.ListTaskOptions) ([]clickup.Task, error)
	UpdateTask(ctx context.Context, id string, req clickup.UpdateTaskRequest) (clickup.Task, error)
	CreateTask(ctx context.Context, listID string, req clickup.CreateTaskRequest) (clickup.Task, error)
	PostComment(ctx context.Context, taskID, text string) (string, error)
	TaskComments(ctx context.Context, taskID string) ([]clickup.Comment, error)
}

var _ API = (*clickup.Client)(nil)

// Handlers runs commands for one team.
type Handlers struct {
	api    API
	teamID string
	notice io.Writer
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Handlers)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) { h.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handlers) { h.logger = l }
}

// New creates handlers. Progress notices such as the detected sprint are
// written to notice, normally stderr.
func New(api API, teamID string, notice io.Writer, opts ...Option) *Handlers {
	h := &Handlers{
		api:    api,
		teamID: teamID,
		notice: notice,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handlers) noticef(format string, args ...any) {
	fmt.Fprintf(h.notice, format+"\n", args...)
}

// matchStatus resolves raw against statuses, announcing any reinterpretation.
func (h *Handlers) matchStatus(raw string, statuses []string) (string, bool) {
	resolved, ok := status.Match(raw, statuses)
	if ok && resolved != raw {
		h.noticef("Status matched: '%s' -> '%s'", raw, resolved)
	}
	return resolved, ok
}

// matchStatusOrRaw falls back to the literal input when nothing matches.
func (h *Handlers) matchStatusOrRaw(raw string, statuses []string) string {
	if resolved, ok := h.matchStatus(raw, statuses); ok {
		return resolved
	}
	h.logger.Debug("no status match, using literal", "status", raw)
	return raw
}
