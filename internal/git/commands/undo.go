package commands

import (
	"context"

	"github.com/kurobon/gitviz/internal/git"
)

func init() {
	git.RegisterCommand("undo", func() git.Command { return &UndoCommand{} })
}

type UndoCommand struct{}

var _ git.Command = (*UndoCommand)(nil)

func (c *UndoCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if wantsHelp(args) {
		return c.Help(), nil
	}

	res, err := s.Undo()
	if err != nil {
		return "", fatal(err)
	}
	if res.Ignored {
		return "Nothing to undo", nil
	}
	return "Undid: " + res.Undone, nil
}

func (c *UndoCommand) Help() string {
	return `📘 UNDO                                                  gitviz

 💡 DESCRIPTION
    ・直前の操作を取り消し、その前の状態に戻す
    ・select や undo 自身は履歴に残りません

 📋 SYNOPSIS
    undo
`
}
