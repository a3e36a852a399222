package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/kurobon/gitviz/internal/git"
)

func init() {
	git.RegisterCommand("show", func() git.Command { return &ShowCommand{} })
}

type ShowCommand struct{}

var _ git.Command = (*ShowCommand)(nil)

// Execute prints one commit: the argument, else the selection, else the HEAD tip.
func (c *ShowCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if wantsHelp(args) {
		return c.Help(), nil
	}
	if len(args) > 2 {
		return "", fmt.Errorf("fatal: usage: git show [<commit-id>]")
	}

	repo := s.Repository()
	id := s.Selected()
	if len(args) == 2 {
		id = args[1]
	}
	if id == "" || id == "HEAD" {
		id = repo.HeadTip()
	}

	commit, ok := repo.Commit(id)
	if !ok {
		return "", fmt.Errorf("fatal: bad object %s", id)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "commit %s\n", commit.ID)
	if commit.IsMerge() {
		fmt.Fprintf(&sb, "Merge: %s\n", strings.Join(commit.Parents, " "))
	} else if len(commit.Parents) == 1 {
		fmt.Fprintf(&sb, "Parent: %s\n", commit.Parents[0])
	}
	fmt.Fprintf(&sb, "Branch: %s\n", commit.Branch)
	fmt.Fprintf(&sb, "Time:   %d\n\n", commit.TimeIndex)
	fmt.Fprintf(&sb, "    %s", commit.Message)
	return sb.String(), nil
}

func (c *ShowCommand) Help() string {
	return `📘 GIT-SHOW (1)                                         Git Manual

 💡 DESCRIPTION
    ・コミットの詳細 (親、ブランチ、メッセージ) を表示する
    ・引数を省略すると選択中のコミット、なければ HEAD を表示します

 📋 SYNOPSIS
    git show [<commit-id>]
`
}
