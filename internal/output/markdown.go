package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
)

const (
	NoTasks    = "No tasks found."
	NoComments = "No comments found."
	NoLists    = "No lists found."
	NoSpaces   = "No spaces found."
	NoSprints  = "No sprints found."
)

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// MarkdownTable renders a GFM table. Pipes inside cells are escaped.
func MarkdownTable(headers []string, rows [][]string) string {
	divider := make([]string, len(headers))
	for i := range divider {
		divider[i] = "---"
	}

	lines := []string{
		"| " + strings.Join(headers, " | ") + " |",
		"| " + strings.Join(divider, " | ") + " |",
	}
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				cells[i] = escapeCell(row[i])
			}
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}
	return strings.Join(lines, "\n")
}

func taskRows(tasks []model.TaskSummary) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{t.ID, t.Name, t.Status, t.List})
	}
	return rows
}

var taskHeaders = []string{"ID", "Name", "Status", "List"}

func TasksMarkdown(tasks []model.TaskSummary) string {
	if len(tasks) == 0 {
		return NoTasks
	}
	return MarkdownTable(taskHeaders, taskRows(tasks))
}

// GroupedTasksMarkdown renders one "## label" section per non-empty group.
func GroupedTasksMarkdown(groups []model.TaskGroup) string {
	var sections []string
	for _, g := range groups {
		if len(g.Tasks) == 0 {
			continue
		}
		sections = append(sections, "## "+g.Label+"\n\n"+MarkdownTable(taskHeaders, taskRows(g.Tasks)))
	}
	if len(sections) == 0 {
		return NoTasks
	}
	return strings.Join(sections, "\n\n")
}

func CommentsMarkdown(comments []model.CommentSummary) string {
	if len(comments) == 0 {
		return NoComments
	}
	blocks := make([]string, 0, len(comments))
	for _, c := range comments {
		blocks = append(blocks, fmt.Sprintf("**%s** (%s)\n\n%s", c.User, c.Date, c.Text))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func ListsMarkdown(lists []model.ListSummary) string {
	if len(lists) == 0 {
		return NoLists
	}
	rows := make([][]string, 0, len(lists))
	for _, l := range lists {
		rows = append(rows, []string{l.ID, l.Name, l.Folder})
	}
	return MarkdownTable([]string{"ID", "Name", "Folder"}, rows)
}

func SpacesMarkdown(spaces []model.SpaceSummary) string {
	if len(spaces) == 0 {
		return NoSpaces
	}
	rows := make([][]string, 0, len(spaces))
	for _, s := range spaces {
		rows = append(rows, []string{s.ID, s.Name})
	}
	return MarkdownTable([]string{"ID", "Name"}, rows)
}

func SprintsMarkdown(sprints []model.SprintInfo) string {
	if len(sprints) == 0 {
		return NoSprints
	}
	rows := make([][]string, 0, len(sprints))
	for _, s := range sprints {
		active := ""
		if s.Active {
			active = "yes"
		}
		rows = append(rows, []string{s.ID, s.Name, s.Folder, SprintDates(s), active})
	}
	return MarkdownTable([]string{"ID", "Sprint", "Folder", "Dates", "Active"}, rows)
}

// formatDate renders an API millisecond timestamp as a UTC calendar date.
func formatDate(ms string) string {
	t, ok := model.ParseMillis(ms)
	if !ok {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func formatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

func positive(p *int64) bool {
	return p != nil && *p > 0
}

func joinUsernames(users []clickup.User) string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return strings.Join(names, ", ")
}

func joinTags(tags []clickup.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

// TaskDetailMarkdown renders a full task as a markdown document. Empty
// fields are left out.
func TaskDetailMarkdown(task clickup.Task) string {
	lines := []string{"# " + task.Name, ""}

	var priority, estimate, spent string
	if task.Priority != nil {
		priority = task.Priority.Priority
	}
	if positive(task.TimeEstimate) {
		estimate = formatDuration(*task.TimeEstimate)
	}
	if positive(task.TimeSpent) {
		spent = formatDuration(*task.TimeSpent)
	}

	fields := [][2]string{
		{"ID", task.ID},
		{"Status", task.Status.Status},
		{"Type", string(model.TypeOf(task))},
		{"List", task.List.Name},
		{"URL", task.URL},
		{"Assignees", joinUsernames(task.Assignees)},
		{"Priority", priority},
		{"Parent", task.Parent},
		{"Start Date", formatDate(task.StartDate)},
		{"Due Date", formatDate(task.DueDate)},
		{"Time Estimate", estimate},
		{"Time Spent", spent},
		{"Tags", joinTags(task.Tags)},
		{"Created", formatDate(task.DateCreated)},
		{"Updated", formatDate(task.DateUpdated)},
	}
	for _, f := range fields {
		if f[1] != "" {
			lines = append(lines, fmt.Sprintf("**%s:** %s", f[0], f[1]))
		}
	}

	if task.Description != "" {
		lines = append(lines, "", "## Description", "", task.Description)
	}
	return strings.Join(lines, "\n")
}

func UpdateConfirmation(id, name string) string {
	return fmt.Sprintf("Updated task %s: \"%s\"", id, name)
}

func CreateConfirmation(id, name, url string) string {
	return fmt.Sprintf("Created task %s: \"%s\" - %s", id, name, url)
}

func CommentConfirmation(id string) string {
	return fmt.Sprintf("Comment posted (id: %s)", id)
}

// AssignConfirmation describes the assignee changes made to a task.
func AssignConfirmation(taskID, to, remove string) string {
	var parts []string
	if to != "" {
		parts = append(parts, fmt.Sprintf("Assigned %s to %s", to, taskID))
	}
	if remove != "" {
		parts = append(parts, fmt.Sprintf("Removed %s from %s", remove, taskID))
	}
	return strings.Join(parts, "; ")
}
