package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/baiirun/cu/internal/clickup"
)

var (
	ErrNoUpdateFields   = errors.New("Provide at least one of: --name, --description, --status, --priority, --due-date, --assignee")
	ErrBlankDescription = errors.New("Description cannot be empty")
)

var priorities = map[string]int{
	"urgent": 1,
	"high":   2,
	"normal": 3,
	"low":    4,
}

// ParsePriority accepts urgent, high, normal, low or 1-4.
func ParsePriority(s string) (int, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if p, ok := priorities[v]; ok {
		return p, nil
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 4 {
		return n, nil
	}
	return 0, fmt.Errorf("Priority must be urgent, high, normal, low, or 1-4 (got %q)", s)
}

// ParseDueDate converts YYYY-MM-DD to unix milliseconds at UTC midnight.
func ParseDueDate(s string) (int64, error) {
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return 0, fmt.Errorf("Due date must be in YYYY-MM-DD format (got %q)", s)
	}
	return d.UnixMilli(), nil
}

// ParseAssigneeID accepts a positive numeric user id.
func ParseAssigneeID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("Assignee must be a numeric user ID (got %q)", s)
	}
	return n, nil
}

// UpdateOptions holds the flags given to update. Nil means not given.
type UpdateOptions struct {
	Name        *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
	Assignee    *string
}

// BuildUpdatePayload validates the options and converts them to a request.
// Status is copied verbatim; Update resolves it. An empty description clears
// the field, a whitespace-only one is rejected.
func BuildUpdatePayload(opts UpdateOptions) (clickup.UpdateTaskRequest, error) {
	var req clickup.UpdateTaskRequest
	if opts.Name != nil {
		req.Name = opts.Name
	}
	if opts.Description != nil {
		d := *opts.Description
		if d != "" && strings.TrimSpace(d) == "" {
			return req, ErrBlankDescription
		}
		req.Description = &d
	}
	if opts.Status != nil {
		req.Status = opts.Status
	}
	if opts.Priority != nil {
		p, err := ParsePriority(*opts.Priority)
		if err != nil {
			return req, err
		}
		req.Priority = &p
	}
	if opts.DueDate != nil {
		ms, err := ParseDueDate(*opts.DueDate)
		if err != nil {
			return req, err
		}
		withTime := false
		req.DueDate = &ms
		req.DueDateTime = &withTime
	}
	if opts.Assignee != nil {
		id, err := ParseAssigneeID(*opts.Assignee)
		if err != nil {
			return req, err
		}
		req.Assignees = &clickup.AssigneesUpdate{Add: []int{id}}
	}
	if req.IsEmpty() {
		return req, ErrNoUpdateFields
	}
	return req, nil
}

// Update applies opts to a task. The status is matched against the task's
// space statuses, and an unknown status is an error.
func (h *Handlers) Update(ctx context.Context, id string, opts UpdateOptions) (clickup.Task, error) {
	req, err := BuildUpdatePayload(opts)
	if err != nil {
		return clickup.Task{}, err
	}
	if req.Status != nil {
		resolved, err := h.resolveTaskStatus(ctx, id, *req.Status)
		if err != nil {
			return clickup.Task{}, err
		}
		req.Status = &resolved
	}
	return h.api.UpdateTask(ctx, id, req)
}

func (h *Handlers) resolveTaskStatus(ctx context.Context, taskID, raw string) (string, error) {
	task, err := h.api.Task(ctx, taskID)
	if err != nil {
		return "", err
	}
	spaceID := task.SpaceID()
	if spaceID == "" {
		return raw, nil
	}
	space, err := h.api.Space(ctx, spaceID)
	if err != nil {
		return "", fmt.Errorf("load statuses for space %s: %w", spaceID, err)
	}

	names := make([]string, 0, len(space.Statuses))
	for _, s := range space.Statuses {
		names = append(names, s.Status)
	}
	if resolved, ok := h.matchStatus(raw, names); ok {
		return resolved, nil
	}
	return "", fmt.Errorf("Status %q not found. Available statuses: %s", raw, strings.Join(names, ", "))
}
