package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baiirun/cu/internal/commands"
	"github.com/baiirun/cu/internal/config"
	"github.com/baiirun/cu/internal/output"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Check that the configured token works",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		res := h.CheckAuth(cmd.Context())

		if outputFormat() == output.FormatTable {
			if res.Authenticated {
				writeLine(cmd, fmt.Sprintf("Authenticated as %s (id %d)", res.User.Username, res.User.ID))
				printTeams(cmd, res)
			} else {
				writeLine(cmd, "Not authenticated: "+res.Error)
			}
		} else if err := printJSON(cmd, res); err != nil {
			return err
		}

		if !res.Authenticated {
			return errReported
		}
		return nil
	},
}

// printTeams lists the reachable workspaces, marking the configured one.
func printTeams(cmd *cobra.Command, res commands.AuthResult) {
	if len(res.Teams) == 0 {
		return
	}
	writeLine(cmd, "\nWorkspaces:")
	for _, t := range res.Teams {
		mark := "  "
		if t.Current {
			mark = "* "
		}
		writeLine(cmd, fmt.Sprintf("%s%s  %s", mark, t.ID, t.Name))
	}
	if !res.TeamConfigured() {
		writeLine(cmd, "\nThe configured teamId is not one of these. Run: cu config set teamId <id>")
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read or write stored settings",
}

var configGetCmd = &cobra.Command{
	Use:       "get <key>",
	Short:     "Print a stored setting",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		value, ok, err := config.Get(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s is not set. Run: cu config set %s <value>", args[0], args[0])
		}
		writeLine(cmd, value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Store a setting",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(args[0], args[1]); err != nil {
			return err
		}
		writeLine(cmd, fmt.Sprintf("Set %s", args[0]))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		writeLine(cmd, path)
		return nil
	},
}

func init() {
	addJSONFlag(authCmd)

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(configCmd)
}
