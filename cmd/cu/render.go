package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baiirun/cu/internal/commands"
	"github.com/baiirun/cu/internal/model"
	"github.com/baiirun/cu/internal/output"
	"github.com/baiirun/cu/internal/tui"
)

// errReported fails the command after its output already explained why.
var errReported = errors.New("command failed")

func outputFormat() output.Format {
	return output.Detect(flagJSON, isTTY())
}

func writeLine(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

func printJSON(cmd *cobra.Command, v any) error {
	return output.JSON(cmd.OutOrStdout(), v)
}

// printTasks writes a flat task list in the detected format.
func printTasks(cmd *cobra.Command, h *commands.Handlers, tasks []model.TaskSummary) error {
	switch outputFormat() {
	case output.FormatJSON:
		return printJSON(cmd, tasks)
	case output.FormatMarkdown:
		writeLine(cmd, output.TasksMarkdown(tasks))
		return nil
	}
	if len(tasks) == 0 {
		writeLine(cmd, output.NoTasks)
		return nil
	}
	selected, err := tui.PickTasks(tasks)
	if err != nil {
		return err
	}
	return tui.ShowAndOpen(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), selected, h.Task, openURL)
}

// printGroups writes grouped tasks as markdown sections or the picker. JSON
// output is shaped per command, so callers handle it first.
func printGroups(cmd *cobra.Command, h *commands.Handlers, groups []model.TaskGroup) error {
	if outputFormat() == output.FormatMarkdown {
		writeLine(cmd, output.GroupedTasksMarkdown(groups))
		return nil
	}
	labeled := make([]model.TaskGroup, 0, len(groups))
	for _, g := range groups {
		labeled = append(labeled, model.TaskGroup{Label: strings.ToUpper(g.Label), Tasks: g.Tasks})
	}
	return pickTasks(cmd, h, labeled)
}

// pickTasks runs the picker, then shows and offers to open the selection.
func pickTasks(cmd *cobra.Command, h *commands.Handlers, groups []model.TaskGroup) error {
	total := 0
	for _, g := range groups {
		total += len(g.Tasks)
	}
	if total == 0 {
		writeLine(cmd, output.NoTasks)
		return nil
	}

	selected, err := tui.Pick(groups)
	if err != nil {
		return err
	}
	return tui.ShowAndOpen(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), selected, h.Task, openURL)
}
