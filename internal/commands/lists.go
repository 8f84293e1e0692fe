package commands

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
)

// Lists returns the folderless lists of a space followed by each folder's
// lists, optionally filtered by a case-insensitive name substring.
func (h *Handlers) Lists(ctx context.Context, spaceID, name string) ([]model.ListSummary, error) {
	var (
		folderless []clickup.List
		folders    []clickup.Folder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		folderless, err = h.api.Lists(gctx, spaceID)
		return err
	})
	g.Go(func() error {
		var err error
		folders, err = h.api.Folders(gctx, spaceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	perFolder := make([][]clickup.List, len(folders))
	g, gctx = errgroup.WithContext(ctx)
	for i, f := range folders {
		g.Go(func() error {
			lists, err := h.api.FolderLists(gctx, f.ID)
			perFolder[i] = lists
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(name)
	out := make([]model.ListSummary, 0)
	add := func(l clickup.List, folder string) {
		if needle != "" && !strings.Contains(strings.ToLower(l.Name), needle) {
			return
		}
		out = append(out, model.ListSummary{ID: l.ID, Name: l.Name, Folder: folder})
	}
	for _, l := range folderless {
		add(l, model.NoFolder)
	}
	for i, lists := range perFolder {
		for _, l := range lists {
			add(l, folders[i].Name)
		}
	}
	return out, nil
}

// Spaces lists the team's spaces. With mine set, only spaces holding one of
// the user's tasks are kept.
func (h *Handlers) Spaces(ctx context.Context, name string, mine bool) ([]model.SpaceSummary, error) {
	var (
		spaces []clickup.Space
		tasks  []clickup.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		spaces, err = h.api.Spaces(gctx, h.teamID)
		return err
	})
	if mine {
		g.Go(func() error {
			var err error
			tasks, err = h.api.MyTasks(gctx, h.teamID, clickup.TaskFilter{})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make(map[string]bool)
	for _, t := range tasks {
		ids[t.SpaceID()] = true
	}

	needle := strings.ToLower(name)
	out := make([]model.SpaceSummary, 0, len(spaces))
	for _, s := range spaces {
		if needle != "" && !strings.Contains(strings.ToLower(s.Name), needle) {
			continue
		}
		if mine && !ids[s.ID] {
			continue
		}
		out = append(out, model.SpaceSummary{ID: s.ID, Name: s.Name})
	}
	return out, nil
}
