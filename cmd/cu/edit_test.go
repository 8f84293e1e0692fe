package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/commands"
)

func TestUpdateCmd_RequiresAField(t *testing.T) {
	api := &fakeClient{}
	_, err := runCLI(t, api, "update", "t1")
	if !errors.Is(err, commands.ErrNoUpdateFields) {
		t.Fatalf("expected ErrNoUpdateFields, got %v", err)
	}
	if api.calls != 0 {
		t.Errorf("expected no API calls, got %d", api.calls)
	}
}

func TestUpdateCmd_EmptyDescriptionClears(t *testing.T) {
	api := &fakeClient{tasks: map[string]clickup.Task{"t1": task("t1", "Ship it", "open")}}
	out, err := runCLI(t, api, "update", "t1", "-d", "", "--json")
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	req := api.updates["t1"]
	if req.Description == nil || *req.Description != "" {
		t.Errorf("description = %v, want empty string", req.Description)
	}
	if req.Name != nil || req.Status != nil {
		t.Errorf("unexpected fields in %+v", req)
	}

	var ref taskRef
	if err := json.Unmarshal([]byte(out), &ref); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if ref.ID != "t1" || ref.Name != "Ship it" {
		t.Errorf("got %+v", ref)
	}
}

func TestUpdateCmd_Confirmation(t *testing.T) {
	api := &fakeClient{tasks: map[string]clickup.Task{"t1": task("t1", "Ship it", "open")}}
	out, err := runCLI(t, api, "update", "t1", "--priority", "high")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if strings.TrimSpace(out) != `Updated task t1: "Ship it"` {
		t.Errorf("got %q", out)
	}
	if p := api.updates["t1"].Priority; p == nil || *p != 2 {
		t.Errorf("priority = %v, want 2", p)
	}
}

func TestCreateCmd_JSON(t *testing.T) {
	out, err := runCLI(t, &fakeClient{}, "create", "-n", "New", "-l", "l1", "--json")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var ref taskRef
	if err := json.Unmarshal([]byte(out), &ref); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if ref.URL != "https://app.clickup.com/t/new1" {
		t.Errorf("url = %q", ref.URL)
	}
}

func TestCreateCmd_NeedsListOrParent(t *testing.T) {
	_, err := runCLI(t, &fakeClient{}, "create", "-n", "New")
	if err == nil || err.Error() != "Provide --list or --parent" {
		t.Fatalf("got %v", err)
	}
}

func TestCommentCmd_RejectsBlank(t *testing.T) {
	api := &fakeClient{}
	_, err := runCLI(t, api, "comment", "t1", "-m", "   ")
	if !errors.Is(err, commands.ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}
	if api.calls != 0 {
		t.Error("comment should not be posted")
	}
}

func TestAssignCmd_NeedsAFlag(t *testing.T) {
	_, err := runCLI(t, &fakeClient{}, "assign", "t1")
	if !errors.Is(err, commands.ErrNoAssignChange) {
		t.Fatalf("got %v", err)
	}
}

func TestSearchCmd_BlankQuery(t *testing.T) {
	_, err := runCLI(t, &fakeClient{}, "search", "  ")
	if !errors.Is(err, commands.ErrEmptyQuery) {
		t.Fatalf("got %v", err)
	}
}

func TestLookbackFlags_RejectOutOfRange(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"inbox", "--days", "0"}, "--days must be a positive number"},
		{[]string{"inbox", "--days", "9999999999"}, "--days must be at most 36500"},
		{[]string{"summary", "--hours=-1"}, "--hours must be a positive number"},
		{[]string{"summary", "--hours", "9999999999"}, "--hours must be at most 876000"},
	}
	for _, tt := range tests {
		api := &fakeClient{}
		_, err := runCLI(t, api, tt.args...)
		if err == nil || err.Error() != tt.want {
			t.Errorf("%v: got %v, want %q", tt.args, err, tt.want)
		}
		if api.calls != 0 {
			t.Errorf("%v: API called %d times", tt.args, api.calls)
		}
	}
}

func TestOpenCmd_JSONSkipsBrowser(t *testing.T) {
	api := &fakeClient{tasks: map[string]clickup.Task{"abc123": task("abc123", "Direct", "open")}}
	out, err := runCLI(t, api, "open", "abc123", "--json")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var got clickup.Task
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Name != "Direct" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestOpenCmd_OpensFirstMatch(t *testing.T) {
	api := &fakeClient{
		tasks:   map[string]clickup.Task{"t1": task("t1", "Fix login", "open")},
		myTasks: []clickup.Task{task("t1", "Fix login", "open")},
	}

	var opened string
	out, err := runCLIWith(t, api, func() {
		openURL = func(url string) error {
			opened = url
			return nil
		}
	}, "open", "fix", "login")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened != "https://app.clickup.com/t/t1" {
		t.Errorf("opened %q", opened)
	}
	if !strings.Contains(out, "Opening: Fix login") {
		t.Errorf("got %q", out)
	}
}

func TestConfigCmd_SetGetPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if _, err := runCLI(t, &fakeClient{}, "config", "set", "teamId", "9001"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := runCLI(t, &fakeClient{}, "config", "get", "teamId")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "9001" {
		t.Errorf("teamId = %q", out)
	}

	out, err = runCLI(t, &fakeClient{}, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	want := filepath.Join(dir, "cu", "config.json")
	if strings.TrimSpace(out) != want {
		t.Errorf("path = %q, want %q", out, want)
	}
	info, err := os.Stat(want)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	if _, err := runCLI(t, &fakeClient{}, "config", "set", "apiToken", "nope"); err == nil {
		t.Error("expected apiToken validation error")
	}
	if _, err := runCLI(t, &fakeClient{}, "config", "get", "color"); err == nil || !strings.Contains(err.Error(), "Unknown config key") {
		t.Errorf("got %v", err)
	}
}
