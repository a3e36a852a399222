package commands

import (
	"errors"
	"fmt"

	"github.com/kurobon/gitviz/internal/state"
)

// Shared utilities for commands

var errHelpRequested = errors.New("help requested")

// wantsHelp reports whether -h or --help appears after the command name.
func wantsHelp(args []string) bool {
	for _, a := range args[1:] {
		if a == "-h" || a == "--help" {
			return true
		}
	}
	return false
}

// ignoredOutput explains a no-op. Ignored operations are not errors.
func ignoredOutput(res state.Result) string {
	return fmt.Sprintf("%s: %s (nothing changed)", res.Op.Command(), res.Reason)
}

// fatal turns a rejection into git-flavoured output while keeping the
// sentinel reachable through errors.Is.
func fatal(err error) error {
	return fmt.Errorf("fatal: %w", err)
}

func commitLine(c *state.Commit) string {
	return fmt.Sprintf("[%s %s] %s", c.Branch, c.ID, c.Message)
}
