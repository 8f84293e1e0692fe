package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
	"github.com/baiirun/cu/internal/sprint"
)

// ErrNoSprint is returned when no sprint folder holds any list.
var ErrNoSprint = errors.New(`No sprint list found. Ensure sprint folders contain "sprint" in their name.`)

type sprintList struct {
	list   clickup.List
	folder clickup.Folder
}

// sprintSpaces picks the spaces to search for sprint folders. An explicit
// filter matches space names (substring) or ids; otherwise the spaces are
// inferred from where the user's tasks live.
func (h *Handlers) sprintSpaces(ctx context.Context, filter string) ([]clickup.Space, error) {
	var (
		all  []clickup.Space
		mine []clickup.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = h.api.Spaces(gctx, h.teamID)
		return err
	})
	if filter == "" {
		g.Go(func() error {
			var err error
			mine, err = h.api.MyTasks(gctx, h.teamID, clickup.TaskFilter{})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if filter != "" {
		needle := strings.ToLower(filter)
		var out []clickup.Space
		for _, s := range all {
			if s.ID == filter || strings.Contains(strings.ToLower(s.Name), needle) {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("No space matching %q found. Use `cu spaces` to list available spaces.", filter)
		}
		return out, nil
	}

	ids := make(map[string]bool)
	for _, t := range mine {
		if id := t.SpaceID(); id != "" {
			ids[id] = true
		}
	}
	related := sprint.FindRelatedSpaces(ids, all)
	h.logger.Debug("sprint spaces", "mine", len(ids), "related", len(related))
	return related, nil
}

// sprintLists returns every list inside a folder whose name contains
// "sprint", walking the given spaces concurrently.
func (h *Handlers) sprintLists(ctx context.Context, spaces []clickup.Space) ([]sprintList, error) {
	perSpace := make([][]clickup.Folder, len(spaces))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range spaces {
		g.Go(func() error {
			folders, err := h.api.Folders(gctx, s.ID)
			perSpace[i] = folders
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var folders []clickup.Folder
	for _, fs := range perSpace {
		for _, f := range fs {
			if strings.Contains(strings.ToLower(f.Name), "sprint") {
				folders = append(folders, f)
			}
		}
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

	var out []sprintList
	for i, lists := range perFolder {
		for _, l := range lists {
			out = append(out, sprintList{list: l, folder: folders[i]})
		}
	}
	return out, nil
}

// Sprints lists every sprint list with its parsed date range.
func (h *Handlers) Sprints(ctx context.Context, space string) ([]model.SprintInfo, error) {
	spaces, err := h.sprintSpaces(ctx, space)
	if err != nil {
		return nil, err
	}
	lists, err := h.sprintLists(ctx, spaces)
	if err != nil {
		return nil, err
	}

	now := h.now()
	out := make([]model.SprintInfo, 0, len(lists))
	for _, sl := range lists {
		info := model.SprintInfo{ID: sl.list.ID, Name: sl.list.Name, Folder: sl.folder.Name}
		if r, ok := sprint.ParseDateRange(sl.list.Name, now); ok {
			start := r.Start.UTC().Format(time.RFC3339)
			end := r.End.UTC().Format(time.RFC3339)
			info.Start, info.End = &start, &end
			info.Active = r.Contains(now)
		}
		out = append(out, info)
	}
	return out, nil
}

// ActiveSprint finds the sprint list covering today, falling back to the
// last sprint list discovered.
func (h *Handlers) ActiveSprint(ctx context.Context, space string) (clickup.List, error) {
	h.noticef("Detecting active sprint...")
	spaces, err := h.sprintSpaces(ctx, space)
	if err != nil {
		return clickup.List{}, err
	}
	found, err := h.sprintLists(ctx, spaces)
	if err != nil {
		return clickup.List{}, err
	}

	lists := make([]clickup.List, 0, len(found))
	for _, sl := range found {
		lists = append(lists, sl.list)
	}
	active, ok := sprint.FindActive(lists, h.now())
	if !ok {
		return clickup.List{}, ErrNoSprint
	}
	h.noticef("Active sprint: %s", active.Name)
	return active, nil
}

// SprintTasks returns the user's tasks in the active sprint.
func (h *Handlers) SprintTasks(ctx context.Context, space, status string) ([]model.TaskSummary, error) {
	active, err := h.ActiveSprint(ctx, space)
	if err != nil {
		return nil, err
	}
	return h.FetchMyTasks(ctx, TaskQuery{ListIDs: []string{active.ID}, Status: status})
}
