package commands

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
)

var ErrEmptyComment = errors.New("Comment text cannot be empty")

// Comment posts text on a task and returns the comment id.
func (h *Handlers) Comment(ctx context.Context, taskID, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyComment
	}
	return h.api.PostComment(ctx, taskID, text)
}

func summarizeComments(comments []clickup.Comment) []model.CommentSummary {
	out := make([]model.CommentSummary, 0, len(comments))
	for _, c := range comments {
		out = append(out, model.CommentSummary{
			ID:   string(c.ID),
			User: c.User.Username,
			Date: c.Date,
			Text: c.CommentText,
		})
	}
	return out
}

func (h *Handlers) Comments(ctx context.Context, taskID string) ([]model.CommentSummary, error) {
	comments, err := h.api.TaskComments(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return summarizeComments(comments), nil
}

// Activity fetches a task and its comments concurrently.
func (h *Handlers) Activity(ctx context.Context, taskID string) (clickup.Task, []model.CommentSummary, error) {
	var (
		task     clickup.Task
		comments []clickup.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		task, err = h.api.Task(gctx, taskID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = h.api.TaskComments(gctx, taskID)
		return err
	})
	if err := g.Wait(); err != nil {
		return clickup.Task{}, nil, err
	}
	return task, summarizeComments(comments), nil
}
