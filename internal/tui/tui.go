// Package tui provides the interactive task picker shown when cu runs in a
// terminal, using Bubble Tea.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/baiirun/cu/internal/model"
	"github.com/baiirun/cu/internal/output"
)

// Status icons
const (
	iconOpen       = "○"
	iconInProgress = "◐"
	iconReview     = "◑"
	iconDone       = "●"
	iconBlocked    = "⊘"
)

// Layout constants
const (
	idWidth        = 12
	nameWidth      = 50
	contentPadding = 2
	chromeLines    = 6 // title, blank, help, input and padding
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func statusIcon(status string) string {
	s := strings.ToLower(status)
	switch {
	case model.IsClosed(s):
		return iconDone
	case strings.Contains(s, "review"):
		return iconReview
	case strings.Contains(s, "progress"), strings.Contains(s, "doing"):
		return iconInProgress
	case strings.Contains(s, "block"):
		return iconBlocked
	default:
		return iconOpen
	}
}

// row is either a group header or a task line.
type row struct {
	header string
	task   model.TaskSummary
}

func (r row) isHeader() bool { return r.header != "" }

// Model is the Bubble Tea model for the task picker.
type Model struct {
	groups   []model.TaskGroup
	rows     []row // rows after filtering
	cursor   int
	offset   int // first visible row
	selected map[string]bool

	filterSearch string
	inputMode    bool
	inputText    string

	width  int
	height int

	confirmed bool
}

// New creates a picker over groups. Groups with an empty label render
// without a header.
func New(groups []model.TaskGroup) Model {
	m := Model{
		groups:   groups,
		selected: map[string]bool{},
	}
	m.applyFilters()
	return m
}

func (m Model) total() int {
	n := 0
	for _, g := range m.groups {
		n += len(g.Tasks)
	}
	return n
}

// applyFilters rebuilds the visible rows from the search filter.
func (m *Model) applyFilters() {
	m.rows = nil
	search := strings.ToLower(m.filterSearch)
	for _, g := range m.groups {
		var matched []row
		for _, t := range g.Tasks {
			if search != "" &&
				!strings.Contains(strings.ToLower(t.Name), search) &&
				!strings.Contains(strings.ToLower(t.ID), search) {
				continue
			}
			matched = append(matched, row{task: t})
		}
		if len(matched) == 0 {
			continue
		}
		if g.Label != "" {
			m.rows = append(m.rows, row{header: g.Label})
		}
		m.rows = append(m.rows, matched...)
	}
	m.cursor = m.firstTaskFrom(min(m.cursor, max(0, len(m.rows)-1)), 1)
	m.offset = 0
}

// firstTaskFrom returns the nearest task row from i moving in dir, or the
// cursor position unchanged when there is none.
func (m Model) firstTaskFrom(i, dir int) int {
	for j := i; j >= 0 && j < len(m.rows); j += dir {
		if !m.rows[j].isHeader() {
			return j
		}
	}
	for j := i; j >= 0 && j < len(m.rows); j -= dir {
		if !m.rows[j].isHeader() {
			return j
		}
	}
	return 0
}

// Selected returns the chosen tasks in display order. It is empty when the
// picker was cancelled.
func (m Model) Selected() []model.TaskSummary {
	if !m.confirmed {
		return nil
	}
	var out []model.TaskSummary
	for _, g := range m.groups {
		for _, t := range g.Tasks {
			if m.selected[t.ID] {
				out = append(out, t)
			}
		}
	}
	return out
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInputKey(msg)
		}
		return m.handleListKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollToCursor()
		return m, nil
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputMode = false
		m.inputText = ""
		m.filterSearch = ""
		m.applyFilters()

	case "enter":
		m.inputMode = false

	case "backspace":
		if len(m.inputText) > 0 {
			r := []rune(m.inputText)
			m.inputText = string(r[:len(r)-1])
			m.filterSearch = m.inputText
			m.applyFilters()
		}

	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.inputText += string(msg.Runes)
		case tea.KeySpace:
			m.inputText += " "
		default:
			return m, nil
		}
		m.filterSearch = m.inputText
		m.applyFilters()
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		// Clear the search first; a second esc quits
		if m.filterSearch != "" {
			m.filterSearch = ""
			m.applyFilters()
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if next := m.firstTaskFrom(m.cursor-1, -1); next < m.cursor {
			m.cursor = next
		}

	case "down", "j":
		if next := m.firstTaskFrom(m.cursor+1, 1); next > m.cursor {
			m.cursor = next
		}

	case "g", "home":
		m.cursor = m.firstTaskFrom(0, 1)

	case "G", "end":
		m.cursor = m.firstTaskFrom(len(m.rows)-1, -1)

	case " ", "x":
		if r, ok := m.current(); ok {
			m.selected[r.task.ID] = !m.selected[r.task.ID]
		}

	case "a":
		// Toggle all visible tasks
		all := true
		for _, r := range m.rows {
			if !r.isHeader() && !m.selected[r.task.ID] {
				all = false
				break
			}
		}
		for _, r := range m.rows {
			if !r.isHeader() {
				m.selected[r.task.ID] = !all
			}
		}

	case "/":
		m.inputMode = true
		m.inputText = m.filterSearch

	case "enter":
		// Confirming with nothing checked picks the row under the cursor
		if !m.anySelected() {
			if r, ok := m.current(); ok {
				m.selected[r.task.ID] = true
			}
		}
		m.confirmed = true
		return m, tea.Quit
	}

	m.scrollToCursor()
	return m, nil
}

func (m Model) anySelected() bool {
	for _, v := range m.selected {
		if v {
			return true
		}
	}
	return false
}

func (m Model) current() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || m.rows[m.cursor].isHeader() {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) visibleRows() int {
	if m.height <= 0 {
		return len(m.rows)
	}
	return max(3, m.height-chromeLines)
}

// scrollToCursor keeps the cursor inside the visible window.
func (m *Model) scrollToCursor() {
	n := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+n {
		m.offset = m.cursor - n + 1
	}
	// Keep a group header visible above its first task
	if m.offset > 0 && m.offset == m.cursor && m.rows[m.offset-1].isHeader() {
		m.offset--
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%d task(s) found. Select to view details / open in browser:", m.total())))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("No tasks match the filter"))
		b.WriteString("\n")
	}

	end := min(m.offset+m.visibleRows(), len(m.rows))
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		if r.isHeader() {
			b.WriteString(groupStyle.Render(r.header))
		} else if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(m.formatRowPlain(r.task)))
		} else {
			b.WriteString(m.formatRowStyled(r.task))
		}
		b.WriteString("\n")
	}

	if m.inputMode {
		b.WriteString("\n")
		b.WriteString(inputStyle.Render("Search: " + m.inputText + "█"))
	} else if m.filterSearch != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(`search:"` + m.filterSearch + `"`))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move  space select  a all  / search  enter confirm  q quit"))

	padStyle := lipgloss.NewStyle().
		PaddingLeft(contentPadding).
		PaddingRight(contentPadding).
		PaddingTop(1)

	return padStyle.Render(b.String())
}

func (m Model) checkbox(id string) string {
	if m.selected[id] {
		return "[x]"
	}
	return "[ ]"
}

// formatRowPlain returns a line without ANSI styling, for the highlighted row.
func (m Model) formatRowPlain(t model.TaskSummary) string {
	return fmt.Sprintf("%s %s %s  %s  %s",
		m.checkbox(t.ID), statusIcon(t.Status), padToWidth(t.ID, idWidth),
		padToWidth(output.Truncate(t.Name, nameWidth), nameWidth), t.Status)
}

// formatRowStyled returns a colored line for non-highlighted rows.
func (m Model) formatRowStyled(t model.TaskSummary) string {
	box := m.checkbox(t.ID)
	if m.selected[t.ID] {
		box = checkedStyle.Render(box)
	}
	return fmt.Sprintf("%s %s %s  %s  %s",
		box, statusIcon(t.Status), dimStyle.Render(padToWidth(t.ID, idWidth)),
		padToWidth(output.Truncate(t.Name, nameWidth), nameWidth), dimStyle.Render(t.Status))
}

// padToWidth pads a string to the specified width with spaces.
// Accounts for ANSI escape codes when calculating visible width.
func padToWidth(s string, width int) string {
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}

// Pick runs the picker and returns the tasks the user confirmed.
func Pick(groups []model.TaskGroup) ([]model.TaskSummary, error) {
	m := New(groups)
	if m.total() == 0 {
		return nil, nil
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run task picker: %w", err)
	}
	return final.(Model).Selected(), nil
}

// PickTasks is Pick over a single unlabeled group.
func PickTasks(tasks []model.TaskSummary) ([]model.TaskSummary, error) {
	return Pick([]model.TaskGroup{{Tasks: tasks}})
}
