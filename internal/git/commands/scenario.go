package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/kurobon/gitviz/internal/git"
	"github.com/kurobon/gitviz/internal/state"
)

func init() {
	git.RegisterCommand("scenario", func() git.Command { return &ScenarioCommand{} })
}

// ScenarioCommand replays a branching strategy walkthrough on a fresh
// repository.
type ScenarioCommand struct{}

var _ git.Command = (*ScenarioCommand)(nil)

func (c *ScenarioCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if wantsHelp(args) {
		return c.Help(), nil
	}

	mainBranch := s.Options().DefaultBranch
	if len(args) == 1 {
		var sb strings.Builder
		for _, st := range state.GetBranchingStrategies(mainBranch) {
			fmt.Fprintf(&sb, "%-12s %s\n", st.ID, st.Name)
		}
		return strings.TrimRight(sb.String(), "\n"), nil
	}
	if len(args) > 2 {
		return "", fmt.Errorf("fatal: usage: scenario [<id>]")
	}

	st, ok := state.FindBranchingStrategy(mainBranch, args[1])
	if !ok {
		return "", fmt.Errorf("fatal: unknown scenario '%s'. Run 'scenario' to list them", args[1])
	}

	ops := append([]state.Operation{state.ResetOp()}, st.Operations...)
	results, err := s.Play(ops)
	if err != nil {
		return "", fatal(err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", st.Name, st.Description)
	for _, res := range results {
		fmt.Fprintf(&sb, "  $ %s\n", res.Op.Command())
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (c *ScenarioCommand) Help() string {
	return `📘 SCENARIO                                              gitviz

 💡 DESCRIPTION
    ・代表的なブランチ戦略 (GitHub Flow, Git Flow, Trunk-Based) を再現する
    ・リポジトリを初期化してから一連の操作を実行します
    ・各操作は履歴に残るので undo で1手ずつ戻せます

 📋 SYNOPSIS
    scenario
    scenario <id>
`
}
