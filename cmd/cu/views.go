package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baiirun/cu/internal/commands"
	"github.com/baiirun/cu/internal/model"
	"github.com/baiirun/cu/internal/output"
)

var (
	flagIncludeClosed bool
	flagDays          int
	flagHours         int
)

var assignedCmd = &cobra.Command{
	Use:   "assigned",
	Short: "Show my tasks grouped by status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		groups, err := h.Assigned(cmd.Context(), flagIncludeClosed)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return printJSON(cmd, commands.AssignedJSON(groups))
		}
		return printGroups(cmd, h, commands.TaskGroups(groups))
	},
}

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Show recently updated tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagDays <= 0 {
			return fmt.Errorf("--days must be a positive number")
		}
		if flagDays > commands.MaxDays {
			return fmt.Errorf("--days must be at most %d", commands.MaxDays)
		}
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		sections, err := h.InboxSections(cmd.Context(), flagDays)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return printJSON(cmd, sections)
		}
		return printGroups(cmd, h, commands.InboxTaskGroups(sections))
	},
}

var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List my open tasks that are past due",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		tasks, err := h.Overdue(cmd.Context())
		if err != nil {
			return err
		}
		return printTasks(cmd, h, tasks)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Standup summary: completed, in progress, overdue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagHours <= 0 {
			return fmt.Errorf("--hours must be a positive number")
		}
		if flagHours > commands.MaxHours {
			return fmt.Errorf("--hours must be at most %d", commands.MaxHours)
		}
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		res, err := h.Summary(cmd.Context(), flagHours)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return printJSON(cmd, res)
		}

		markdown := outputFormat() == output.FormatMarkdown
		printSection(cmd, "Completed Recently", res.Completed, markdown)
		printSection(cmd, "In Progress", res.InProgress, markdown)
		printSection(cmd, "Overdue", res.Overdue, markdown)
		return nil
	},
}

func printSection(cmd *cobra.Command, label string, tasks []model.TaskSummary, markdown bool) {
	heading := fmt.Sprintf("%s (%d)", label, len(tasks))
	if markdown {
		heading = "## " + heading
	}
	writeLine(cmd, "\n"+heading)
	switch {
	case len(tasks) == 0:
		writeLine(cmd, "  None")
	case markdown:
		writeLine(cmd, output.TasksMarkdown(tasks))
	default:
		writeLine(cmd, output.TaskTable(tasks))
	}
}

func init() {
	assignedCmd.Flags().BoolVar(&flagIncludeClosed, "include-closed", false, "Include closed tasks")
	inboxCmd.Flags().IntVar(&flagDays, "days", 30, "Look back this many days")
	summaryCmd.Flags().IntVar(&flagHours, "hours", 24, "Look back this many hours for completed tasks")
	addJSONFlag(assignedCmd, inboxCmd, overdueCmd, summaryCmd)

	rootCmd.AddCommand(assignedCmd)
	rootCmd.AddCommand(inboxCmd)
	rootCmd.AddCommand(overdueCmd)
	rootCmd.AddCommand(summaryCmd)
}
