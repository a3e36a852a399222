package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitviz/internal/git"
)

func init() {
	git.RegisterCommand("merge", func() git.Command { return &MergeCommand{} })
}

type MergeCommand struct{}

var _ git.Command = (*MergeCommand)(nil)

func (c *MergeCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if wantsHelp(args) {
		return c.Help(), nil
	}
	if len(args) != 2 {
		return "", fmt.Errorf("fatal: usage: git merge <branch>")
	}

	res, err := s.Merge(args[1])
	if err != nil {
		return "", fatal(err)
	}
	if res.Ignored {
		return ignoredOutput(res), nil
	}
	return "Merge made by the 'ort' strategy.\n" + commitLine(res.Commit), nil
}

func (c *MergeCommand) Help() string {
	return `📘 GIT-MERGE (1)                                        Git Manual

 💡 DESCRIPTION
    ・指定したブランチを現在のブランチ (HEAD) に統合する
    ・常にマージコミットを作成します (fast-forward はしません)
    ・第1親が現在のブランチ、第2親が取り込んだブランチです

 📋 SYNOPSIS
    git merge <branch>

 🛠  PRACTICAL EXAMPLES
    1. feature を master に取り込む
       $ git checkout master
       $ git merge feature
`
}
