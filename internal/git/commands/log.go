package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kurobon/gitviz/internal/git"
)

func init() {
	git.RegisterCommand("log", func() git.Command { return &LogCommand{} })
}

type LogCommand struct{}

var _ git.Command = (*LogCommand)(nil)

func (c *LogCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	opts, err := c.parseArgs(args)
	if err != nil {
		if err == errHelpRequested {
			return c.Help(), nil
		}
		return "", err
	}

	mirror, err := git.BuildMirror(s.Repository())
	if err != nil {
		return "", err
	}
	return mirror.Log(opts)
}

func (c *LogCommand) parseArgs(args []string) (git.LogOptions, error) {
	var opts git.LogOptions
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			return opts, errHelpRequested
		case arg == "--oneline":
			opts.OneLine = true
		case arg == "-n":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("fatal: switch `n' requires a value")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				return opts, fmt.Errorf("fatal: '%s': not an integer", args[i+1])
			}
			opts.Limit, opts.Limited = n, true
			i++
		case strings.HasPrefix(arg, "-"):
			return opts, fmt.Errorf("fatal: unrecognized argument: %s", arg)
		default:
			if opts.Branch != "" {
				return opts, fmt.Errorf("fatal: only one revision is supported")
			}
			opts.Branch = arg
		}
	}
	return opts, nil
}

func (c *LogCommand) Help() string {
	return `📘 GIT-LOG (1)                                          Git Manual

 💡 DESCRIPTION
    ・コミット履歴を新しい順に表示する
    ・グラフを本物の Git リポジトリ (メモリ上) に再現して git log と同じ形式で出力します

 📋 SYNOPSIS
    git log [--oneline] [-n <count>] [<branch>]

 ⚙️  COMMON OPTIONS
    --oneline
        1コミット1行で表示します。

    -n <count>
        表示するコミット数を制限します。
`
}
