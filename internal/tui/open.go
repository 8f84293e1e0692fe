package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/browser"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/model"
	"github.com/baiirun/cu/internal/output"
)

// Confirm asks a yes/no question on out and reads the answer from in. An
// empty answer returns def.
func Confirm(in io.Reader, out io.Writer, prompt string, def bool) bool {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(out, "%s %s ", prompt, hint)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

func init() {
	// Keep stdout free of launcher chatter; it may be piped.
	browser.Stdout = os.Stderr
}

// OpenURL opens url in the default browser.
func OpenURL(url string) error {
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// URLOpener opens a task URL. OpenURL is the default.
type URLOpener func(url string) error

// TaskFetcher loads a full task by id.
type TaskFetcher func(ctx context.Context, id string) (clickup.Task, error)

// ShowAndOpen prints the details of each picked task, then offers to open
// them all in the browser.
func ShowAndOpen(ctx context.Context, in io.Reader, out io.Writer, tasks []model.TaskSummary, fetch TaskFetcher, open URLOpener) error {
	if len(tasks) == 0 {
		return nil
	}

	separator := dimStyle.Render(strings.Repeat("─", 60))
	for i, t := range tasks {
		if i > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, separator)
		}
		fmt.Fprintln(out)

		full, err := fetch(ctx, t.ID)
		if err != nil {
			return fmt.Errorf("failed to load task %s: %w", t.ID, err)
		}
		fmt.Fprintln(out, output.TaskDetail(full))
	}

	fmt.Fprintln(out)
	if !Confirm(in, out, fmt.Sprintf("Open %d task(s) in browser?", len(tasks)), true) {
		return nil
	}
	for _, t := range tasks {
		if err := open(t.URL); err != nil {
			return err
		}
	}
	return nil
}
