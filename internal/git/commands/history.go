package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/kurobon/gitviz/internal/git"
)

func init() {
	git.RegisterCommand("history", func() git.Command { return &HistoryCommand{} })
}

type HistoryCommand struct{}

var _ git.Command = (*HistoryCommand)(nil)

func (c *HistoryCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if wantsHelp(args) {
		return c.Help(), nil
	}

	items := s.HistoryItems()
	if len(items) == 0 {
		return "No operations recorded yet", nil
	}

	width := 0
	for _, it := range items {
		if len(it.Command) > width {
			width = len(it.Command)
		}
	}

	var sb strings.Builder
	for _, it := range items {
		fmt.Fprintf(&sb, "%3d  %-*s  %s\n", it.Index, width, it.Command, it.Description)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (c *HistoryCommand) Help() string {
	return `📘 HISTORY                                               gitviz

 💡 DESCRIPTION
    ・これまでの操作 (undo で戻せるもの) を古い順に表示する

 📋 SYNOPSIS
    history
`
}
