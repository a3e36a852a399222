package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gitviz/internal/git"
	"github.com/kurobon/gitviz/internal/state"
)

func init() {
	git.RegisterCommand("checkout", func() git.Command { return &CheckoutCommand{} })
}

type CheckoutCommand struct{}

var _ git.Command = (*CheckoutCommand)(nil)

func (c *CheckoutCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if wantsHelp(args) {
		return c.Help(), nil
	}

	switch {
	case len(args) == 2:
		res, err := s.Checkout(args[1])
		if err != nil {
			return "", fatal(err)
		}
		if res.Ignored {
			return ignoredOutput(res), nil
		}
		return fmt.Sprintf("Switched to branch '%s'", args[1]), nil
	case len(args) == 3 && (args[1] == "-b" || args[1] == "-c"):
		// Two history entries, so undo steps back through them one at a time.
		if _, err := s.Play([]state.Operation{state.BranchOp(args[2]), state.CheckoutOp(args[2])}); err != nil {
			return "", fatal(err)
		}
		return fmt.Sprintf("Switched to a new branch '%s'", args[2]), nil
	}
	return "", fmt.Errorf("fatal: usage: git checkout [-b] <branch>")
}

func (c *CheckoutCommand) Help() string {
	return `📘 GIT-CHECKOUT (1)                                     Git Manual

 💡 DESCRIPTION
    ・HEAD を別のブランチに移動する
    ・以後のコミットはそのブランチに積まれます
    ・switch も同じ動作をします

 📋 SYNOPSIS
    git checkout <branch>
    git checkout -b <new-branch>

 ⚙️  COMMON OPTIONS
    -b <new-branch>
        ブランチを作成してから切り替えます (git branch + git checkout)。

 🛠  PRACTICAL EXAMPLES
    1. 既存のブランチに切り替える
       $ git checkout feature

    2. 新しいブランチを作って切り替える
       $ git switch -c hotfix
`
}
