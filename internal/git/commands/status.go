package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/kurobon/gitviz/internal/git"
)

func init() {
	git.RegisterCommand("status", func() git.Command { return &StatusCommand{} })
}

type StatusCommand struct{}

var _ git.Command = (*StatusCommand)(nil)

func (c *StatusCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if wantsHelp(args) {
		return c.Help(), nil
	}

	repo := s.Repository()
	var sb strings.Builder
	fmt.Fprintf(&sb, "On branch %s\n", repo.Head.Branch)
	if tip, ok := repo.Commit(repo.HeadTip()); ok {
		fmt.Fprintf(&sb, "HEAD at %s: %s\n", tip.ID, tip.Message)
	} else {
		sb.WriteString("No commits yet\n")
	}
	if sel := s.Selected(); sel != "" {
		fmt.Fprintf(&sb, "Selected: %s\n", sel)
	}
	fmt.Fprintf(&sb, "%d commits on %d branches, %d undoable operations",
		len(repo.Commits), len(repo.Branches), s.HistoryLen())
	return sb.String(), nil
}

func (c *StatusCommand) Help() string {
	return `📘 GIT-STATUS (1)                                       Git Manual

 💡 DESCRIPTION
    ・現在のブランチ、HEAD のコミット、選択中のコミットを表示する

 📋 SYNOPSIS
    git status
`
}
