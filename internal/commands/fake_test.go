package commands

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
)

// fakeAPI serves canned data and records writes. Safe for concurrent use.
type fakeAPI struct {
	mu sync.Mutex

	me          clickup.User
	meErr       error
	teams       []clickup.Team
	teamsErr    error
	spaces      []clickup.Space
	folders     map[string][]clickup.Folder
	folderLists map[string][]clickup.List
	lists       map[string][]clickup.List
	tasks       map[string]clickup.Task
	myTasks     []clickup.Task
	listTasks   map[string][]clickup.Task
	comments    map[string][]clickup.Comment
	err         error

	filters  []clickup.TaskFilter
	listOpts []clickup.ListTaskOptions
	updates  map[string]clickup.UpdateTaskRequest
	created  map[string]clickup.CreateTaskRequest
	posted   map[string]string
}

func (f *fakeAPI) Me(ctx context.Context) (clickup.User, error) {
	return f.me, f.meErr
}

func (f *fakeAPI) Teams(ctx context.Context) ([]clickup.Team, error) {
	return f.teams, f.teamsErr
}

func (f *fakeAPI) Spaces(ctx context.Context, teamID string) ([]clickup.Space, error) {
	return f.spaces, f.err
}

func (f *fakeAPI) Space(ctx context.Context, spaceID string) (clickup.Space, error) {
	for _, s := range f.spaces {
		if s.ID == spaceID {
			return s, nil
		}
	}
	return clickup.Space{}, &clickup.APIError{StatusCode: 404, Message: "space not found"}
}

func (f *fakeAPI) Folders(ctx context.Context, spaceID string) ([]clickup.Folder, error) {
	return f.folders[spaceID], f.err
}

func (f *fakeAPI) FolderLists(ctx context.Context, folderID string) ([]clickup.List, error) {
	return f.folderLists[folderID], f.err
}

func (f *fakeAPI) Lists(ctx context.Context, spaceID string) ([]clickup.List, error) {
	return f.lists[spaceID], f.err
}

func (f *fakeAPI) Task(ctx context.Context, id string) (clickup.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return clickup.Task{}, &clickup.APIError{StatusCode: 404, Message: "Task not found"}
	}
	return t, nil
}

func (f *fakeAPI) MyTasks(ctx context.Context, teamID string, filter clickup.TaskFilter) ([]clickup.Task, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
	return f.myTasks, f.err
}

func (f *fakeAPI) ListTasks(ctx context.Context, listID string, opts clickup.ListTaskOptions) ([]clickup.Task, error) {
	f.mu.Lock()
	f.listOpts = append(f.listOpts, opts)
	f.mu.Unlock()
	return f.listTasks[listID], f.err
}

func (f *fakeAPI) UpdateTask(ctx context.Context, id string, req clickup.UpdateTaskRequest) (clickup.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updates == nil {
		f.updates = make(map[string]clickup.UpdateTaskRequest)
	}
	f.updates[id] = req
	return clickup.Task{ID: id, Name: f.tasks[id].Name}, f.err
}

func (f *fakeAPI) CreateTask(ctx context.Context, listID string, req clickup.CreateTaskRequest) (clickup.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.created == nil {
		f.created = make(map[string]clickup.CreateTaskRequest)
	}
	f.created[listID] = req
	return clickup.Task{ID: "new1", Name: req.Name, URL: "https://app.clickup.com/t/new1"}, f.err
}

func (f *fakeAPI) PostComment(ctx context.Context, taskID, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.posted == nil {
		f.posted = make(map[string]string)
	}
	f.posted[taskID] = text
	return "c1", f.err
}

func (f *fakeAPI) TaskComments(ctx context.Context, taskID string) ([]clickup.Comment, error) {
	return f.comments[taskID], f.err
}

var _ API = (*fakeAPI)(nil)

// fixedNow is Wednesday 2025-03-12 10:00 UTC.
var fixedNow = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

func newTestHandlers(t *testing.T, api *fakeAPI) (*Handlers, *bytes.Buffer) {
	t.Helper()
	var notice bytes.Buffer
	h := New(api, "team1", &notice, WithClock(func() time.Time { return fixedNow }))
	return h, &notice
}

func ms(t time.Time) string {
	return fmt.Sprint(t.UnixMilli())
}

func task(id, name, status string) clickup.Task {
	return clickup.Task{
		ID:     id,
		Name:   name,
		Status: clickup.TaskStatus{Status: status},
		URL:    "https://app.clickup.com/t/" + id,
		List:   clickup.Ref{ID: "l1", Name: "Sprint"},
	}
}

func summaryIDs(tasks []model.TaskSummary) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
