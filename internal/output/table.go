package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/baiirun/cu/internal/model"
)

type Column struct {
	Label    string
	MaxWidth int // 0 = no cap
}

// Table renders fixed-width columns sized to their widest cell.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// ColumnWidths sizes each column to its widest cell, capped at MaxWidth.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = lipgloss.Width(c.Label)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	for i, c := range t.Columns {
		if c.MaxWidth > 0 && widths[i] > c.MaxWidth {
			widths[i] = c.MaxWidth
		}
	}
	return widths
}

// Render outputs a bold header, a dashed divider and one line per row.
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}
	widths := t.ColumnWidths()

	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = cell(c.Label, widths[i])
	}
	header := strings.TrimRight(strings.Join(headers, "  "), " ")

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(header))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", lipgloss.Width(header)))

	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i := range t.Columns {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			cells[i] = cell(val, widths[i])
		}
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
	}
	return sb.String()
}

// cell truncates s to width with an ellipsis, then pads it to exactly width
// columns. A wide rune that does not fit is dropped, leaving a gap to pad.
func cell(s string, width int) string {
	s = Truncate(s, width)
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// Truncate shortens s to at most width terminal columns, ending in "…" when cut.
func Truncate(s string, width int) string {
	if width < 1 {
		width = 1
	}
	return ansi.Truncate(s, width, "…")
}

var TaskColumns = []Column{
	{Label: "ID"},
	{Label: "NAME", MaxWidth: 60},
	{Label: "STATUS"},
	{Label: "LIST", MaxWidth: 30},
}

// TaskTable renders task summaries with TaskColumns.
func TaskTable(tasks []model.TaskSummary) string {
	t := Table{Columns: TaskColumns}
	for _, task := range tasks {
		t.Rows = append(t.Rows, []string{task.ID, task.Name, task.Status, task.List})
	}
	return t.Render()
}

// SprintTable renders sprints with the active one marked by "* ".
func SprintTable(sprints []model.SprintInfo) string {
	t := Table{Columns: []Column{{Label: "ID"}, {Label: "SPRINT", MaxWidth: 60}, {Label: "DATES"}}}
	for _, s := range sprints {
		name := s.Name
		if s.Active {
			name = "* " + name
		}
		t.Rows = append(t.Rows, []string{s.ID, name, SprintDates(s)})
	}
	return t.Render()
}

// SprintDates formats a sprint window as "M/D - M/D" in local time.
func SprintDates(s model.SprintInfo) string {
	if s.Start == nil || s.End == nil {
		return ""
	}
	start, err1 := time.Parse(time.RFC3339, *s.Start)
	end, err2 := time.Parse(time.RFC3339, *s.End)
	if err1 != nil || err2 != nil {
		return ""
	}
	start, end = start.Local(), end.Local()
	return fmt.Sprintf("%d/%d - %d/%d", start.Month(), start.Day(), end.Month(), end.Day())
}

func ListTable(lists []model.ListSummary) string {
	t := Table{Columns: []Column{{Label: "ID"}, {Label: "NAME", MaxWidth: 50}, {Label: "FOLDER", MaxWidth: 30}}}
	for _, l := range lists {
		t.Rows = append(t.Rows, []string{l.ID, l.Name, l.Folder})
	}
	return t.Render()
}

func SpaceTable(spaces []model.SpaceSummary) string {
	t := Table{Columns: []Column{{Label: "ID"}, {Label: "NAME", MaxWidth: 60}}}
	for _, s := range spaces {
		t.Rows = append(t.Rows, []string{s.ID, s.Name})
	}
	return t.Render()
}
