package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/baiirun/cu/internal/commands"
	"github.com/baiirun/cu/internal/model"
	"github.com/baiirun/cu/internal/output"
)

var (
	flagStatus  string
	flagListIDs []string
	flagName    string
)

func runTaskQuery(cmd *cobra.Command, taskType model.TaskType) error {
	h, err := loadHandlers(cmd)
	if err != nil {
		return err
	}
	tasks, err := h.FetchMyTasks(cmd.Context(), commands.TaskQuery{
		Type:    taskType,
		Status:  flagStatus,
		ListIDs: flagListIDs,
		Name:    flagName,
	})
	if err != nil {
		return err
	}
	return printTasks(cmd, h, tasks)
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks assigned to me",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskQuery(cmd, model.TaskTypeTask)
	},
}

var initiativesCmd = &cobra.Command{
	Use:   "initiatives",
	Short: "List initiatives assigned to me",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskQuery(cmd, model.TaskTypeInitiative)
	},
}

var taskCmd = &cobra.Command{
	Use:   "task <id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		task, err := h.Task(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		switch outputFormat() {
		case output.FormatJSON:
			return printJSON(cmd, task)
		case output.FormatMarkdown:
			writeLine(cmd, output.TaskDetailMarkdown(task))
		default:
			writeLine(cmd, output.TaskDetail(task))
		}
		return nil
	},
}

var subtasksCmd = &cobra.Command{
	Use:   "subtasks <id>",
	Short: "List subtasks of a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		tasks, err := h.Subtasks(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printTasks(cmd, h, tasks)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search my tasks by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if strings.TrimSpace(query) == "" {
			return commands.ErrEmptyQuery
		}
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		tasks, err := h.Search(cmd.Context(), query, flagStatus)
		if err != nil {
			return err
		}
		return printTasks(cmd, h, tasks)
	},
}

func init() {
	for _, c := range []*cobra.Command{tasksCmd, initiativesCmd} {
		c.Flags().StringVar(&flagStatus, "status", "", "Filter by status (fuzzy matched)")
		c.Flags().StringArrayVar(&flagListIDs, "list", nil, "Filter by list ID (repeatable)")
		c.Flags().StringVar(&flagName, "name", "", "Filter by name substring")
	}
	searchCmd.Flags().StringVar(&flagStatus, "status", "", "Filter by status (fuzzy matched)")
	addJSONFlag(tasksCmd, initiativesCmd, taskCmd, subtasksCmd, searchCmd)

	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(initiativesCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(subtasksCmd)
	rootCmd.AddCommand(searchCmd)
}
