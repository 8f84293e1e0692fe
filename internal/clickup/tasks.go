package clickup

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type taskPage struct {
	Tasks    []Task `json:"tasks"`
	LastPage *bool  `json:"last_page"`
}

// paginate walks page=0,1,... until the API reports the last page. A missing
// last_page flag counts as the last page.
func (c *Client) paginate(ctx context.Context, path string, query url.Values) ([]Task, error) {
	tasks := make([]Task, 0)
	for page := 0; ; page++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = append([]string(nil), v...)
		}
		q.Set("page", strconv.Itoa(page))

		var resp taskPage
		if err := c.get(ctx, path, q, &resp); err != nil {
			return nil, err
		}
		tasks = append(tasks, resp.Tasks...)

		if resp.LastPage == nil || *resp.LastPage {
			return tasks, nil
		}
	}
}

// TaskFilter narrows MyTasks. Empty slices mean no filter.
type TaskFilter struct {
	Statuses      []string
	ListIDs       []string
	SpaceIDs      []string
	IncludeClosed bool
}

// MyTasks returns every task in the team assigned to the current user,
// subtasks included.
func (c *Client) MyTasks(ctx context.Context, teamID string, f TaskFilter) ([]Task, error) {
	me, err := c.Me(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Add("assignees[]", strconv.Itoa(me.ID))
	q.Set("subtasks", "true")
	for _, s := range f.Statuses {
		q.Add("statuses[]", s)
	}
	for _, id := range f.ListIDs {
		q.Add("list_ids[]", id)
	}
	for _, id := range f.SpaceIDs {
		q.Add("space_ids[]", id)
	}
	if f.IncludeClosed {
		q.Set("include_closed", "true")
	}
	return c.paginate(ctx, "/team/"+url.PathEscape(teamID)+"/task", q)
}

// ListTaskOptions narrows ListTasks.
type ListTaskOptions struct {
	Parent        string
	Subtasks      bool
	IncludeClosed bool
}

// ListTasks returns every task in a list.
func (c *Client) ListTasks(ctx context.Context, listID string, opts ListTaskOptions) ([]Task, error) {
	q := url.Values{}
	q.Set("subtasks", strconv.FormatBool(opts.Subtasks))
	if opts.Parent != "" {
		q.Set("parent", opts.Parent)
	}
	if opts.IncludeClosed {
		q.Set("include_closed", "true")
	}
	return c.paginate(ctx, "/list/"+url.PathEscape(listID)+"/task", q)
}

func (c *Client) Task(ctx context.Context, id string) (Task, error) {
	var t Task
	if err := c.get(ctx, "/task/"+url.PathEscape(id), nil, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (Task, error) {
	var t Task
	if err := c.do(ctx, http.MethodPut, "/task/"+url.PathEscape(id), nil, req, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (c *Client) CreateTask(ctx context.Context, listID string, req CreateTaskRequest) (Task, error) {
	var t Task
	if err := c.do(ctx, http.MethodPost, "/list/"+url.PathEscape(listID)+"/task", nil, req, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// PostComment adds a comment to a task and returns the new comment id.
func (c *Client) PostComment(ctx context.Context, taskID, text string) (string, error) {
	body := struct {
		CommentText string `json:"comment_text"`
	}{text}
	var resp struct {
		ID ID `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/task/"+url.PathEscape(taskID)+"/comment", nil, body, &resp); err != nil {
		return "", err
	}
	return string(resp.ID), nil
}

func (c *Client) TaskComments(ctx context.Context, taskID string) ([]Comment, error) {
	var resp struct {
		Comments []Comment `json:"comments"`
	}
	if err := c.get(ctx, "/task/"+url.PathEscape(taskID)+"/comment", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}
