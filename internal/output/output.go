// Package output renders command results as JSON, GFM markdown or
// terminal tables.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Format is how a result is written.
type Format int

const (
	FormatTable Format = iota
	FormatMarkdown
	FormatJSON
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldOutputJSON reports whether JSON was forced by flag or CU_OUTPUT=json.
func ShouldOutputJSON(force bool) bool {
	return force || os.Getenv("CU_OUTPUT") == "json"
}

// Detect picks JSON when forced, markdown when piped, and a table otherwise.
func Detect(forceJSON, tty bool) Format {
	switch {
	case ShouldOutputJSON(forceJSON):
		return FormatJSON
	case !tty:
		return FormatMarkdown
	default:
		return FormatTable
	}
}

// JSON writes v indented by two spaces.
func JSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
