package main

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/commands"
)

var testNow = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

// fakeClient is an in-memory commands.API.
type fakeClient struct {
	me          clickup.User
	meErr       error
	teams       []clickup.Team
	spaces      []clickup.Space
	folders     map[string][]clickup.Folder
	folderLists map[string][]clickup.List
	lists       map[string][]clickup.List
	tasks       map[string]clickup.Task
	myTasks     []clickup.Task
	comments    map[string][]clickup.Comment

	calls   int
	updates map[string]clickup.UpdateTaskRequest
}

func (f *fakeClient) Me(ctx context.Context) (clickup.User, error) { return f.me, f.meErr }

func (f *fakeClient) Teams(ctx context.Context) ([]clickup.Team, error) { return f.teams, nil }

func (f *fakeClient) Spaces(ctx context.Context, teamID string) ([]clickup.Space, error) {
	return f.spaces, nil
}

func (f *fakeClient) Space(ctx context.Context, spaceID string) (clickup.Space, error) {
	for _, s := range f.spaces {
		if s.ID == spaceID {
			return s, nil
		}
	}
	return clickup.Space{}, &clickup.APIError{StatusCode: 404, Message: "not found"}
}

func (f *fakeClient) Folders(ctx context.Context, spaceID string) ([]clickup.Folder, error) {
	return f.folders[spaceID], nil
}

func (f *fakeClient) FolderLists(ctx context.Context, folderID string) ([]clickup.List, error) {
	return f.folderLists[folderID], nil
}

func (f *fakeClient) Lists(ctx context.Context, spaceID string) ([]clickup.List, error) {
	return f.lists[spaceID], nil
}

func (f *fakeClient) Task(ctx context.Context, id string) (clickup.Task, error) {
	if t, ok := f.tasks[id]; ok {
		return t, nil
	}
	return clickup.Task{}, &clickup.APIError{StatusCode: 404, Message: "Task not found"}
}

func (f *fakeClient) MyTasks(ctx context.Context, teamID string, filter clickup.TaskFilter) ([]clickup.Task, error) {
	f.calls++
	return f.myTasks, nil
}

func (f *fakeClient) ListTasks(ctx context.Context, listID string, opts clickup.ListTaskOptions) ([]clickup.Task, error) {
	return nil, nil
}

func (f *fakeClient) UpdateTask(ctx context.Context, id string, req clickup.UpdateTaskRequest) (clickup.Task, error) {
	f.calls++
	if f.updates == nil {
		f.updates = make(map[string]clickup.UpdateTaskRequest)
	}
	f.updates[id] = req
	return clickup.Task{ID: id, Name: f.tasks[id].Name}, nil
}

func (f *fakeClient) CreateTask(ctx context.Context, listID string, req clickup.CreateTaskRequest) (clickup.Task, error) {
	f.calls++
	return clickup.Task{ID: "new1", Name: req.Name, URL: "https://app.clickup.com/t/new1"}, nil
}

func (f *fakeClient) PostComment(ctx context.Context, taskID, text string) (string, error) {
	f.calls++
	return "c1", nil
}

func (f *fakeClient) TaskComments(ctx context.Context, taskID string) ([]clickup.Comment, error) {
	return f.comments[taskID], nil
}

// resetFlags restores every flag to its default so tests don't leak into
// each other through the package-level flag variables.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command against api with stdout captured. The
// terminal is reported as absent, so output defaults to markdown.
func runCLI(t *testing.T, api *fakeClient, args ...string) (string, error) {
	t.Helper()
	return runCLIWith(t, api, nil, args...)
}

// runCLIWith is runCLI with setup run after the default stubs are in place.
func runCLIWith(t *testing.T, api *fakeClient, setup func(), args ...string) (string, error) {
	t.Helper()
	t.Setenv("CU_OUTPUT", "")
	resetFlags(rootCmd)

	prevLoad, prevTTY, prevOpen := loadHandlers, isTTY, openURL
	t.Cleanup(func() { loadHandlers, isTTY, openURL = prevLoad, prevTTY, prevOpen })

	isTTY = func() bool { return false }
	loadHandlers = func(cmd *cobra.Command) (*commands.Handlers, error) {
		return commands.New(api, "team1", io.Discard, commands.WithClock(func() time.Time { return testNow })), nil
	}
	openURL = func(url string) error {
		t.Errorf("unexpected browser open: %s", url)
		return nil
	}
	if setup != nil {
		setup()
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func ms(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
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
