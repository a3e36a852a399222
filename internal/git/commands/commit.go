package commands

// commit.go - Graph Commit Command
//
// Appends a commit on the HEAD branch, or rewrites the message of the
// selected commit with --amend.

import (
	"context"
	"fmt"

	"github.com/kurobon/gitviz/internal/git"
	"github.com/kurobon/gitviz/internal/state"
)

// DefaultCommitMessage is used when commit runs without -m.
const DefaultCommitMessage = "new commit"

func init() {
	git.RegisterCommand("commit", func() git.Command { return &CommitCommand{} })
}

type CommitCommand struct{}

// Ensure CommitCommand implements git.Command
var _ git.Command = (*CommitCommand)(nil)

type CommitOptions struct {
	Message    string
	HasMessage bool
	Amend      bool
}

func (c *CommitCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	opts, err := c.parseArgs(args)
	if err != nil {
		if err == errHelpRequested {
			return c.Help(), nil
		}
		return "", err
	}

	var op state.Operation
	switch {
	case opts.Amend:
		if !opts.HasMessage {
			return "", fmt.Errorf("fatal: --amend needs a new message. Use -m \"message\"")
		}
		op = state.AmendOp(opts.Message)
	case opts.HasMessage:
		op = state.CommitOp(opts.Message)
	default:
		op = state.CommitOp(DefaultCommitMessage)
	}

	res, err := s.Apply(op)
	if err != nil {
		return "", fatal(err)
	}
	if res.Ignored {
		return ignoredOutput(res), nil
	}
	if opts.Amend {
		return commitLine(res.Commit) + " (amended)", nil
	}
	return commitLine(res.Commit), nil
}

func (c *CommitCommand) parseArgs(args []string) (*CommitOptions, error) {
	opts := &CommitOptions{}

	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			return nil, errHelpRequested
		case "-m":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("error: switch `m' requires a value")
			}
			opts.Message = args[i+1]
			opts.HasMessage = true
			i++
		case "--amend":
			opts.Amend = true
		default:
			return nil, fmt.Errorf("unknown argument or option: '%s'. Did you mean to use -m for message?", arg)
		}
	}
	return opts, nil
}

func (c *CommitCommand) Help() string {
	return `📘 GIT-COMMIT (1)                                       Git Manual

 💡 DESCRIPTION
    ・現在のブランチ (HEAD) の先端に新しいコミットを追加する
    ・--amend で選択中のコミットのメッセージを書き換える

 📋 SYNOPSIS
    git commit [-m <msg>]
    git commit --amend -m <msg>

 ⚙️  COMMON OPTIONS
    -m <msg>
        コミットメッセージを指定します。省略すると "new commit" になります。

    --amend
        選択中のコミット (select <id>) のメッセージを変更します。
        グラフの形は変わりません。

 🛠  PRACTICAL EXAMPLES
    1. 基本: メッセージ付きでコミット
       $ git commit -m "feat: add user endpoint"

    2. 実践: 過去のコミットのメッセージを直す
       $ select c2
       $ git commit --amend -m "fix: typo in endpoint"
`
}
