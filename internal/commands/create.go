package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/baiirun/cu/internal/clickup"
)

var (
	ErrNoList    = errors.New("Provide --list or --parent")
	ErrEmptyName = errors.New("Task name cannot be empty")
)

// CreateOptions holds the flags given to create. Empty means not given.
type CreateOptions struct {
	List        string
	Name        string
	Description string
	Parent      string
	Status      string
	Priority    string
	DueDate     string
	Assignee    string
	Tags        string
}

// splitTags splits a comma separated list, dropping blanks.
func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func buildCreateRequest(opts CreateOptions) (clickup.CreateTaskRequest, error) {
	req := clickup.CreateTaskRequest{
		Name:        strings.TrimSpace(opts.Name),
		Description: opts.Description,
		Parent:      opts.Parent,
		Status:      opts.Status,
		Tags:        splitTags(opts.Tags),
	}
	if req.Name == "" {
		return req, ErrEmptyName
	}
	if opts.Priority != "" {
		p, err := ParsePriority(opts.Priority)
		if err != nil {
			return req, err
		}
		req.Priority = &p
	}
	if opts.DueDate != "" {
		ms, err := ParseDueDate(opts.DueDate)
		if err != nil {
			return req, err
		}
		withTime := false
		req.DueDate = &ms
		req.DueDateTime = &withTime
	}
	if opts.Assignee != "" {
		id, err := ParseAssigneeID(opts.Assignee)
		if err != nil {
			return req, err
		}
		req.Assignees = []int{id}
	}
	return req, nil
}

// Create makes a task. Without a list, the parent's list is used.
func (h *Handlers) Create(ctx context.Context, opts CreateOptions) (clickup.Task, error) {
	if opts.List == "" && opts.Parent == "" {
		return clickup.Task{}, ErrNoList
	}
	req, err := buildCreateRequest(opts)
	if err != nil {
		return clickup.Task{}, err
	}

	listID := opts.List
	if listID == "" {
		parent, err := h.api.Task(ctx, opts.Parent)
		if err != nil {
			return clickup.Task{}, err
		}
		listID = parent.List.ID
	}
	return h.api.CreateTask(ctx, listID, req)
}
