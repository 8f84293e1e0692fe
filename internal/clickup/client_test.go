package clickup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New("pk_test", WithBaseURL(srv.URL))
}

func TestClient_SendsRawTokenAndNoContentTypeOnGet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pk_test", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		fmt.Fprint(w, `{"user":{"id":7,"username":"ana"}}`)
	})

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, User{ID: 7, Username: "ana"}, me)
}

func TestClient_SetsContentTypeWithBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/task/abc/comment", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["comment_text"])
		fmt.Fprint(w, `{"id":458}`)
	})

	id, err := c.PostComment(context.Background(), "abc", "hello")
	require.NoError(t, err)
	assert.Equal(t, "458", id)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"err field", 401, `{"err":"Token invalid","ECODE":"OAUTH_025"}`, "ClickUp API error 401: Token invalid"},
		{"error field", 400, `{"error":"bad request"}`, "ClickUp API error 400: bad request"},
		{"ecode only", 403, `{"ECODE":"ACCESS_999"}`, "ClickUp API error 403: ACCESS_999"},
		{"status text fallback", 404, `{}`, "ClickUp API error 404: Not Found"},
		{"invalid json", 502, `<html>bad gateway</html>`, "ClickUp API error 502: response was not valid JSON"},
		{"invalid json on 200", 200, `not json`, "ClickUp API error 200: response was not valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := c.Task(context.Background(), "x")
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestClient_MeIsMemoized(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"user":{"id":1,"username":"me"}}`)
	})

	for i := 0; i < 3; i++ {
		_, err := c.Me(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_MeErrorIsNotCached(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"err":"boom"}`)
			return
		}
		fmt.Fprint(w, `{"user":{"id":1,"username":"me"}}`)
	})

	_, err := c.Me(context.Background())
	require.Error(t, err)
	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, me.ID)
}

func TestClient_UnarchivedQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("archived"))
		switch r.URL.Path {
		case "/team/9/space":
			fmt.Fprint(w, `{"spaces":[{"id":"s1","name":"Eng","statuses":[{"status":"open"},{"status":"done"}]}]}`)
		case "/space/s1/folder":
			fmt.Fprint(w, `{"folders":[{"id":"f1","name":"Sprints"}]}`)
		case "/folder/f1/list":
			fmt.Fprint(w, `{"lists":[{"id":"l1","name":"Sprint 1 (1/1 - 1/14)"}]}`)
		case "/space/s1/list":
			fmt.Fprint(w, `{"lists":[{"id":"l0","name":"Backlog"}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	spaces, err := c.Spaces(ctx, "9")
	require.NoError(t, err)
	require.Len(t, spaces, 1)
	assert.Len(t, spaces[0].Statuses, 2)

	folders, err := c.Folders(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []Folder{{ID: "f1", Name: "Sprints"}}, folders)

	lists, err := c.FolderLists(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "l1", lists[0].ID)

	lists, err = c.Lists(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Backlog", lists[0].Name)
}

func TestClient_Teams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/team", r.URL.Path)
		fmt.Fprint(w, `{"teams":[{"id":"9","name":"Acme","members":[{"user":{"id":1,"username":"ana"}}]}]}`)
	})

	teams, err := c.Teams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Acme", teams[0].Name)
	assert.Equal(t, "ana", teams[0].Members[0].User.Username)
}

func TestTask_Decode(t *testing.T) {
	raw := `{
		"id": "abc",
		"name": "Fix login",
		"status": {"status": "in progress", "color": "#fff"},
		"custom_item_id": null,
		"assignees": [{"id": 1, "username": "ana"}],
		"url": "https://app.clickup.com/t/abc",
		"list": {"id": "l1", "name": "Sprint 1"},
		"space": {"id": "s1"},
		"parent": null,
		"priority": null,
		"due_date": null,
		"date_updated": "1700000000000",
		"time_estimate": 5400000,
		"custom_fields": [{"id": "cf1", "name": "Points", "type": "number", "value": 3}]
	}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(raw), &task))
	assert.False(t, task.IsInitiative())
	assert.Equal(t, "s1", task.SpaceID())
	assert.Empty(t, task.Parent)
	assert.Nil(t, task.Priority)
	assert.Empty(t, task.DueDate)
	assert.Equal(t, int64(5400000), *task.TimeEstimate)
	require.Len(t, task.CustomFields, 1)
	assert.JSONEq(t, "3", string(task.CustomFields[0].Value))

	one := 1
	task.CustomItemID = &one
	assert.True(t, task.IsInitiative())
}
