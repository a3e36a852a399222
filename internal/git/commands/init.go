package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitviz/internal/git"
)

func init() {
	git.RegisterCommand("init", func() git.Command { return &InitCommand{} })
}

type InitCommand struct{}

var _ git.Command = (*InitCommand)(nil)

func (c *InitCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if wantsHelp(args) {
		return c.Help(), nil
	}
	if len(args) > 1 {
		return "", fmt.Errorf("fatal: git init takes no arguments here")
	}

	res, err := s.Reset()
	if err != nil {
		return "", fatal(err)
	}
	return fmt.Sprintf("Reinitialized repository on branch '%s'\n%s", res.Commit.Branch, commitLine(res.Commit)), nil
}

func (c *InitCommand) Help() string {
	return `📘 GIT-INIT (1)                                         Git Manual

 💡 DESCRIPTION
    ・リポジトリを初期状態に戻す
    ・既定のブランチと最初のコミットだけが残ります
    ・undo で元に戻せます

 📋 SYNOPSIS
    git init
    reset
`
}
