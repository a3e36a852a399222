package commands

import (
	"context"

	"github.com/kurobon/gitviz/internal/git"
)

// Version is reported by the version command and the CLI.
const Version = "0.3.0"

func init() {
	git.RegisterCommand("version", func() git.Command { return &VersionCommand{} })
}

type VersionCommand struct{}

func (c *VersionCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	return "gitviz version " + Version, nil
}

func (c *VersionCommand) Help() string {
	return `📘 GIT-VERSION (1)                                      Git Manual

 💡 DESCRIPTION
    gitviz のバージョンを表示します。

 📋 SYNOPSIS
    git version
`
}
