package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
)

const previewLines = 3

// shortDuration renders "1h 30m", "2h" or "45m".
func shortDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	h, m := int(d.Hours()), int(d.Minutes())%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

func localDate(ms string) string {
	t, ok := model.ParseMillis(ms)
	if !ok {
		return ""
	}
	return t.Local().Format("Jan 2, 2006")
}

// descriptionPreview shows the first non-blank lines of text, dimmed.
func descriptionPreview(text string) string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	var out []string
	for i, l := range lines {
		if i == previewLines {
			break
		}
		out = append(out, "  "+DimStyle.Render(Truncate(l, 100)))
	}
	if len(lines) > previewLines {
		out = append(out, "  "+DimStyle.Render(fmt.Sprintf("... (%d more lines)", len(lines)-previewLines)))
	}
	return strings.Join(out, "\n")
}

// TaskDetail renders a task for a terminal: title, aligned fields and a
// short description preview.
func TaskDetail(task clickup.Task) string {
	var priority, estimate, tracked string
	if task.Priority != nil {
		priority = task.Priority.Priority
	}
	if positive(task.TimeEstimate) {
		estimate = shortDuration(*task.TimeEstimate)
	}
	if positive(task.TimeSpent) {
		tracked = shortDuration(*task.TimeSpent)
	}

	fields := [][2]string{
		{"ID", task.ID},
		{"Status", task.Status.Status},
		{"Type", string(model.TypeOf(task))},
		{"List", task.List.Name},
		{"Assignees", joinUsernames(task.Assignees)},
		{"Priority", priority},
		{"Start", localDate(task.StartDate)},
		{"Due", localDate(task.DueDate)},
		{"Estimate", estimate},
		{"Tracked", tracked},
		{"Tags", joinTags(task.Tags)},
		{"Parent", task.Parent},
		{"URL", task.URL},
	}

	maxLabel := 0
	for _, f := range fields {
		if f[1] != "" && len(f[0]) > maxLabel {
			maxLabel = len(f[0])
		}
	}

	lines := []string{titleStyle.Render(task.Name), ""}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		label := f[0] + strings.Repeat(" ", maxLabel+1-len(f[0]))
		lines = append(lines, "  "+labelStyle.Render(label)+" "+f[1])
	}

	if strings.TrimSpace(task.TextContent) != "" {
		lines = append(lines, "", descriptionPreview(task.TextContent))
	}
	return strings.Join(lines, "\n")
}
