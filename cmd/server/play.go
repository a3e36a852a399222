package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kurobon/gitviz/internal/git"
	_ "github.com/kurobon/gitviz/internal/git/commands" // Register commands
	"github.com/kurobon/gitviz/internal/layout"
	"github.com/kurobon/gitviz/internal/state"
)

// runPlay is a line-oriented REPL over one local session. The text graph is
// redrawn whenever a command changes the session.
func runPlay(ctx context.Context, in io.Reader, out io.Writer, opts state.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	session := state.NewSession("local", opts)

	fmt.Fprintln(out, "gitviz play. Type 'help' for commands, 'exit' to quit.")
	if err := drawGraph(out, session); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "(%s) $ ", session.Repository().Head.Branch)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			return nil
		}

		before := state.Fingerprint(session.Snapshot())
		output, err := git.Run(ctx, session, line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if output != "" {
			fmt.Fprintln(out, output)
		}
		if state.Fingerprint(session.Snapshot()) != before {
			if err := drawGraph(out, session); err != nil {
				return err
			}
		}
	}
}

func drawGraph(out io.Writer, session *state.Session) error {
	fmt.Fprintln(out)
	if err := layout.WriteText(out, session.Repository(), session.Selected()); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return nil
}
