package clickup

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Trust boundary: payloads are decoded as-is. Missing optional fields stay
// at their zero value and are never treated as errors.

// User is a ClickUp account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type Member struct {
	User User `json:"user"`
}

// Team is a ClickUp workspace.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members,omitempty"`
}

// Status is a workflow state as configured on a space or list.
type Status struct {
	Status     string `json:"status"`
	Color      string `json:"color,omitempty"`
	Type       string `json:"type,omitempty"`
	OrderIndex int    `json:"orderindex,omitempty"`
}

type Space struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Statuses []Status `json:"statuses,omitempty"`
}

type Folder struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Lists []List `json:"lists,omitempty"`
}

type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TaskStatus struct {
	Status string `json:"status"`
	Color  string `json:"color"`
}

type Priority struct {
	ID       string `json:"id,omitempty"`
	Priority string `json:"priority"`
	Color    string `json:"color,omitempty"`
}

type Tag struct {
	Name string `json:"name"`
}

type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type CustomField struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Task is a ClickUp task. Date fields are unix milliseconds encoded as
// strings, matching the API.
type Task struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	TextContent  string        `json:"text_content,omitempty"`
	Status       TaskStatus    `json:"status"`
	CustomItemID *int          `json:"custom_item_id"`
	Assignees    []User        `json:"assignees"`
	URL          string        `json:"url"`
	List         Ref           `json:"list"`
	Folder       *Ref          `json:"folder,omitempty"`
	Space        *Ref          `json:"space,omitempty"`
	Parent       string        `json:"parent,omitempty"`
	Priority     *Priority     `json:"priority"`
	DueDate      string        `json:"due_date,omitempty"`
	StartDate    string        `json:"start_date,omitempty"`
	DateCreated  string        `json:"date_created,omitempty"`
	DateUpdated  string        `json:"date_updated,omitempty"`
	DateClosed   string        `json:"date_closed,omitempty"`
	TimeEstimate *int64        `json:"time_estimate,omitempty"`
	TimeSpent    *int64        `json:"time_spent,omitempty"`
	Tags         []Tag         `json:"tags,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`
}

// IsInitiative reports whether the task uses a custom task type.
func (t Task) IsInitiative() bool {
	return t.CustomItemID != nil && *t.CustomItemID != 0
}

// SpaceID returns the id of the owning space, or "" when the API omitted it.
func (t Task) SpaceID() string {
	if t.Space == nil {
		return ""
	}
	return t.Space.ID
}

type Comment struct {
	ID          ID     `json:"id"`
	CommentText string `json:"comment_text"`
	User        User   `json:"user"`
	Date        string `json:"date"`
}

// ID accepts both JSON strings and numbers. The API is not consistent about
// which one it returns for comment ids.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	*id = ID(strings.Trim(string(data), `"`))
	return nil
}

// UpdateTaskRequest is the body of PUT /task/{id}. Nil fields are left
// untouched. A non-nil empty Description clears it.
type UpdateTaskRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Priority    *int             `json:"priority,omitempty"`
	DueDate     *int64           `json:"due_date,omitempty"`
	DueDateTime *bool            `json:"due_date_time,omitempty"`
	Assignees   *AssigneesUpdate `json:"assignees,omitempty"`
}

type AssigneesUpdate struct {
	Add []int `json:"add,omitempty"`
	Rem []int `json:"rem,omitempty"`
}

// IsEmpty reports whether the request would change nothing.
func (r UpdateTaskRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Status == nil &&
		r.Priority == nil && r.DueDate == nil && r.Assignees == nil
}

// CreateTaskRequest is the body of POST /list/{id}/task.
type CreateTaskRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Parent      string   `json:"parent,omitempty"`
	Status      string   `json:"status,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	DueDate     *int64   `json:"due_date,omitempty"`
	DueDateTime *bool    `json:"due_date_time,omitempty"`
	Assignees   []int    `json:"assignees,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}
