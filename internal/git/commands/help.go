package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kurobon/gitviz/internal/git"
)

func init() {
	git.RegisterCommand("help", func() git.Command { return &HelpCommand{} })
}

type HelpCommand struct{}

// Ensure HelpCommand implements git.Command
var _ git.Command = (*HelpCommand)(nil)

// Command metadata for help display
type cmdMeta struct {
	Category string
	Desc     string
}

// Categories
const (
	CatStart    = "Start a repository"
	CatGrow     = "Grow and tweak the graph"
	CatHistory  = "Examine the graph and state"
	CatSession  = "Session"
	CatInternal = "Internal" // Hidden
)

var commandMetadata = map[string]cmdMeta{
	"init":     {CatStart, "Reset to a fresh repository (alias: reset)"},
	"scenario": {CatStart, "Replay a branching strategy walkthrough"},

	"branch":   {CatGrow, "List or create branches"},
	"checkout": {CatGrow, "Switch branches (alias: switch)"},
	"commit":   {CatGrow, "Record a commit, or amend the selected one"},
	"merge":    {CatGrow, "Join another branch into the current one"},

	"graph":  {CatHistory, "Draw the commit graph as text"},
	"log":    {CatHistory, "Show commit logs"},
	"show":   {CatHistory, "Show a commit"},
	"status": {CatHistory, "Show the current branch and selection"},

	"history": {CatSession, "List undoable operations"},
	"select":  {CatSession, "Select a commit for editing"},
	"undo":    {CatSession, "Revert the last operation"},
	"help":    {CatSession, "Display help information"},
	"version": {CatSession, "Show version info"},
}

// Order of categories for display
var categoryOrder = []string{
	CatStart,
	CatGrow,
	CatHistory,
	CatSession,
}

func (c *HelpCommand) Execute(ctx context.Context, s *git.Session, args []string) (string, error) {
	if len(args) > 1 {
		subcmd := args[1]
		helpStr, err := git.GetCommandHelp(subcmd)
		if err != nil {
			if meta, ok := commandMetadata[subcmd]; ok {
				return fmt.Sprintf("%s: %s\n", subcmd, meta.Desc), nil
			}
			return fmt.Sprintf("git help: unknown command '%s'", subcmd), nil
		}
		return helpStr, nil
	}

	// 1. Group commands by category
	grouped := make(map[string][]string)
	maxLen := 0
	for _, cmd := range git.GetSupportedCommands() {
		meta, ok := commandMetadata[cmd]
		if !ok || meta.Category == CatInternal {
			continue
		}
		grouped[meta.Category] = append(grouped[meta.Category], cmd)
		if len(cmd) > maxLen {
			maxLen = len(cmd)
		}
	}

	// 2. Build Output
	var sb strings.Builder
	sb.WriteString("usage: git [--version] [--help] <command> [<args>]\n\n")
	sb.WriteString("These are the commands the graph understands:\n")

	for _, cat := range categoryOrder {
		list := grouped[cat]
		if len(list) == 0 {
			continue
		}
		sort.Strings(list)

		sb.WriteString(fmt.Sprintf("\n%s:\n", cat))
		for _, cmd := range list {
			padding := strings.Repeat(" ", maxLen-len(cmd)+3)
			sb.WriteString(fmt.Sprintf("   %s%s%s\n", cmd, padding, commandMetadata[cmd].Desc))
		}
	}

	sb.WriteString("\nType 'git help <command>' for more information about a specific command.")
	return sb.String(), nil
}

func (c *HelpCommand) Help() string {
	return `📘 GIT-HELP (1)                                         Git Manual

 💡 DESCRIPTION
    コマンドの使い方を確認します。
    引数なしで実行すると、利用可能なコマンド一覧を表示します。

 📋 SYNOPSIS
    git help [<command>]

 🛠  EXAMPLES
    1. コマンドの使い方を調べる
       $ git help commit
`
}
