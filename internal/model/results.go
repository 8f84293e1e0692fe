package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// SprintInfo describes one list found in a sprint folder. Start and End are
// RFC 3339 timestamps, or nil when the name carries no date range.
type SprintInfo struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Folder string  `json:"folder"`
	Start  *string `json:"start"`
	End    *string `json:"end"`
	Active bool    `json:"active"`
}

type CommentSummary struct {
	ID   string `json:"id"`
	User string `json:"user"`
	Date string `json:"date"`
	Text string `json:"text"`
}

// NoFolder labels lists that live directly in a space.
const NoFolder = "(none)"

type ListSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Folder string `json:"folder"`
}

type SpaceSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssignedTask is the per-task shape of `cu assigned --json`.
type AssignedTask struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	TaskType TaskType `json:"task_type"`
	List     string   `json:"list"`
	URL      string   `json:"url"`
	Priority *string  `json:"priority"`
	DueDate  *string  `json:"due_date"`
}

// InboxTask is a TaskSummary with the update timestamp used for ordering.
type InboxTask struct {
	TaskSummary
	DateUpdated string `json:"date_updated"`
}

// TaskGroup is a labeled section of tasks, e.g. one status or time period.
type TaskGroup struct {
	Label string        `json:"label"`
	Tasks []TaskSummary `json:"tasks"`
}

// ParseMillis parses a unix-milliseconds string as returned by the API.
func ParseMillis(ms string) (time.Time, bool) {
	if ms == "" {
		return time.Time{}, false
	}
	n, err := strconv.ParseInt(ms, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(n), true
}

// Section is one key of an ordered JSON object.
type Section[T any] struct {
	Key   string
	Items []T
}

// Sections marshals as a JSON object whose keys keep slice order. Empty
// sections encode as [] rather than null.
type Sections[T any] []Section[T]

func (s Sections[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sec.Key)
		if err != nil {
			return nil, err
		}
		items := sec.Items
		if items == nil {
			items = []T{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
