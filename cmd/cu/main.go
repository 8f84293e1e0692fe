package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/commands"
	"github.com/baiirun/cu/internal/config"
	"github.com/baiirun/cu/internal/output"
)

var (
	flagVerbose bool
	flagJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "cu",
	Short: "ClickUp CLI for AI agents",
	Long: `A CLI for reading and updating ClickUp tasks. Output is JSON with --json or
CU_OUTPUT=json, markdown when piped, and tables or an interactive picker in a
terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr())
	},
}

// isTTY is swapped out by tests.
var isTTY = output.IsTTY

// loadHandlers builds the handlers from the stored config. Tests replace it
// with one backed by a fake API.
var loadHandlers = func(cmd *cobra.Command) (*commands.Handlers, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default()
	client := clickup.New(cfg.APIToken, clickup.WithLogger(logger))
	return commands.New(client, cfg.TeamID, cmd.ErrOrStderr(), commands.WithLogger(logger)), nil
}

func setupLogging(w io.Writer) {
	level := slog.LevelWarn
	if flagVerbose || os.Getenv("CU_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// addJSONFlag registers --json on each command.
func addJSONFlag(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.Flags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log API requests to stderr")
}

// run executes the CLI and returns the process exit code. Cancelling ctx,
// or an interrupt signal, exits with 130.
func run(ctx context.Context, stderr io.Writer) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if ctx.Err() != nil {
		fmt.Fprintln(stderr, "\nInterrupted")
		return 130
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Stderr))
}
