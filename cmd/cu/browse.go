package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baiirun/cu/internal/output"
	"github.com/baiirun/cu/internal/tui"
)

var flagMine bool

// openURL is swapped out by tests.
var openURL = tui.OpenURL

var listsCmd = &cobra.Command{
	Use:   "lists <spaceId>",
	Short: "List the lists in a space",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		lists, err := h.Lists(cmd.Context(), args[0], flagName)
		if err != nil {
			return err
		}

		switch outputFormat() {
		case output.FormatJSON:
			return printJSON(cmd, lists)
		case output.FormatMarkdown:
			writeLine(cmd, output.ListsMarkdown(lists))
		default:
			if len(lists) == 0 {
				writeLine(cmd, output.NoLists)
				return nil
			}
			writeLine(cmd, output.ListTable(lists))
		}
		return nil
	},
}

var spacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List spaces in the team",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		spaces, err := h.Spaces(cmd.Context(), flagName, flagMine)
		if err != nil {
			return err
		}

		switch outputFormat() {
		case output.FormatJSON:
			return printJSON(cmd, spaces)
		case output.FormatMarkdown:
			writeLine(cmd, output.SpacesMarkdown(spaces))
		default:
			if len(spaces) == 0 {
				writeLine(cmd, output.NoSpaces)
				return nil
			}
			writeLine(cmd, output.SpaceTable(spaces))
		}
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open <query>",
	Short: "Open a task in the browser by ID or name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		task, matches, err := h.FindTask(cmd.Context(), query)
		if err != nil {
			return err
		}
		if output.ShouldOutputJSON(flagJSON) {
			return printJSON(cmd, task)
		}

		if len(matches) > 1 && isTTY() {
			writeLine(cmd, output.TaskTable(matches))
			writeLine(cmd, "Opening first match...")
		}
		writeLine(cmd, fmt.Sprintf("Opening: %s", task.Name))
		writeLine(cmd, task.URL)
		return openURL(task.URL)
	},
}

func init() {
	listsCmd.Flags().StringVar(&flagName, "name", "", "Filter by name substring")
	spacesCmd.Flags().StringVar(&flagName, "name", "", "Filter by name substring")
	spacesCmd.Flags().BoolVar(&flagMine, "my", false, "Only spaces that hold my tasks")
	addJSONFlag(listsCmd, spacesCmd, openCmd)

	rootCmd.AddCommand(listsCmd)
	rootCmd.AddCommand(spacesCmd)
	rootCmd.AddCommand(openCmd)
}
