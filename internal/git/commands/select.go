package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitviz/internal/git"
)

func init() {
	git.RegisterCommand("select", func() git.Command { return &SelectCommand{} })
}

type SelectCommand struct{}

var _ git.Command = (*SelectCommand)(nil)

func (c *SelectCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if wantsHelp(args) {
		return c.Help(), nil
	}
	if len(args) != 2 {
		return "", fmt.Errorf("fatal: usage: select <commit-id> | select --clear")
	}

	if args[1] == "--clear" {
		if _, err := s.ClearSelection(); err != nil {
			return "", fatal(err)
		}
		return "Selection cleared", nil
	}

	res, err := s.Select(args[1])
	if err != nil {
		return "", fatal(err)
	}
	if res.Ignored {
		return ignoredOutput(res), nil
	}
	return fmt.Sprintf("Selected %s: %s", res.Commit.ID, res.Commit.Message), nil
}

func (c *SelectCommand) Help() string {
	return `📘 SELECT                                                gitviz

 💡 DESCRIPTION
    ・コミットを選択する (グラフ上で強調表示されます)
    ・git commit --amend は選択中のコミットを書き換えます

 📋 SYNOPSIS
    select <commit-id>
    select --clear
`
}
