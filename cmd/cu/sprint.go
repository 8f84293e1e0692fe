package main

import (
	"github.com/spf13/cobra"

	"github.com/baiirun/cu/internal/output"
)

var flagSpace string

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "List my tasks in the active sprint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		tasks, err := h.SprintTasks(cmd.Context(), flagSpace, flagStatus)
		if err != nil {
			return err
		}
		return printTasks(cmd, h, tasks)
	},
}

var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "List sprint lists and their dates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		sprints, err := h.Sprints(cmd.Context(), flagSpace)
		if err != nil {
			return err
		}

		switch outputFormat() {
		case output.FormatJSON:
			return printJSON(cmd, sprints)
		case output.FormatMarkdown:
			writeLine(cmd, output.SprintsMarkdown(sprints))
		default:
			if len(sprints) == 0 {
				writeLine(cmd, output.NoSprints)
				return nil
			}
			writeLine(cmd, output.SprintTable(sprints))
		}
		return nil
	},
}

func init() {
	sprintCmd.Flags().StringVar(&flagStatus, "status", "", "Filter by status (fuzzy matched)")
	for _, c := range []*cobra.Command{sprintCmd, sprintsCmd} {
		c.Flags().StringVar(&flagSpace, "space", "", "Limit to spaces matching this name or ID")
	}
	addJSONFlag(sprintCmd, sprintsCmd)

	rootCmd.AddCommand(sprintCmd)
	rootCmd.AddCommand(sprintsCmd)
}
