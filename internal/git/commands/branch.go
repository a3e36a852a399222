package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/kurobon/gitviz/internal/git"
)

func init() {
	git.RegisterCommand("branch", func() git.Command { return &BranchCommand{} })
}

type BranchCommand struct{}

var _ git.Command = (*BranchCommand)(nil)

func (c *BranchCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if wantsHelp(args) {
		return c.Help(), nil
	}

	switch len(args) {
	case 1:
		return c.listBranches(s), nil
	case 2:
		if strings.HasPrefix(args[1], "-") {
			return "", fmt.Errorf("error: unknown option '%s'", args[1])
		}
		if _, err := s.CreateBranch(args[1]); err != nil {
			return "", fatal(err)
		}
		return "", nil
	}
	return "", fmt.Errorf("fatal: too many arguments. usage: git branch [<name>]")
}

func (c *BranchCommand) listBranches(s *git.Session) string {
	repo := s.Repository()
	var sb strings.Builder
	for _, name := range repo.BranchNames() {
		b := repo.Branches[name]
		marker := "  "
		if name == repo.Head.Branch {
			marker = "* "
		}
		tip := b.Tip
		if tip == "" {
			tip = "(no commits)"
		}
		fmt.Fprintf(&sb, "%s%s -> %s\n", marker, name, tip)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (c *BranchCommand) Help() string {
	return `📘 GIT-BRANCH (1)                                       Git Manual

 💡 DESCRIPTION
    ・ブランチの一覧を表示する
    ・現在の HEAD の先端から新しいブランチを作る

 📋 SYNOPSIS
    git branch
    git branch <name>

 🛠  PRACTICAL EXAMPLES
    1. 一覧を表示 (* が現在のブランチ)
       $ git branch

    2. 新しいブランチを作成 (HEAD は移動しません)
       $ git branch feature
`
}
