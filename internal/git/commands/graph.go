package commands

import (
	"context"
	"strings"

	"github.com/kurobon/gitviz/internal/git"
	"github.com/kurobon/gitviz/internal/layout"
)

func init() {
	git.RegisterCommand("graph", func() git.Command { return &GraphCommand{} })
}

type GraphCommand struct{}

var _ git.Command = (*GraphCommand)(nil)

func (c *GraphCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if wantsHelp(args) {
		return c.Help(), nil
	}

	var sb strings.Builder
	if err := layout.WriteText(&sb, s.Repository(), s.Selected()); err != nil {
		return "", err
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (c *GraphCommand) Help() string {
	return `📘 GRAPH                                                 gitviz

 💡 DESCRIPTION
    ・コミットグラフをテキストで描画する
    ・1行が1ブランチ (レーン)、1列が1コミットです。M はマージコミット

 📋 SYNOPSIS
    graph
`
}
