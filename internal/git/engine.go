package git

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Command defines the interface for all commands
type Command interface {
	Execute(ctx context.Context, session *Session, args []string) (string, error)
	Help() string
}

// CommandFactory allows creating new instances of commands
type CommandFactory func() Command

var registry = make(map[string]CommandFactory)

// RegisterCommand registers a command factory
func RegisterCommand(name string, factory CommandFactory) {
	registry[name] = factory
}

// Dispatch runs a registered command against session.
func Dispatch(ctx context.Context, session *Session, cmdName string, args []string) (string, error) {
	factory, ok := registry[cmdName]
	if !ok {
		return "", fmt.Errorf("'%s' is not a recognized command. See 'help'", cmdName)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cmd := factory()
	return cmd.Execute(ctx, session, args)
}

// Run parses a raw input line and dispatches it. Empty input yields empty
// output.
func Run(ctx context.Context, session *Session, input string) (string, error) {
	cmdName, args, err := ParseCommand(input)
	if err != nil {
		return "", err
	}
	if cmdName == "" {
		return "", nil
	}
	return Dispatch(ctx, session, cmdName, args)
}

// GetSupportedCommands returns all registered commands in lexical order
func GetSupportedCommands() []string {
	cmds := make([]string, 0, len(registry))
	for k := range registry {
		cmds = append(cmds, k)
	}
	sort.Strings(cmds)
	return cmds
}

// GetCommandHelp returns the help string for a command
func GetCommandHelp(name string) (string, error) {
	factory, ok := registry[name]
	if !ok {
		return "", fmt.Errorf("command not found")
	}
	cmd := factory()
	return cmd.Help(), nil
}

// ParseCommand tokenises the raw input string and returns the resolved
// command name and arguments. Quotes group words the way a shell would, so
// commit -m 'two words' yields a single message argument.
// The returned args slice always starts with the resolved command name (args[0] == cmdName).
func ParseCommand(input string) (string, []string, error) {
	parts, err := shellwords.Parse(strings.TrimSpace(input))
	if err != nil {
		return "", nil, fmt.Errorf("cannot parse command: %w", err)
	}
	if len(parts) == 0 {
		return "", nil, nil
	}

	switch parts[0] {
	case "--version":
		return "version", []string{"version"}, nil
	case "git":
		if len(parts) == 1 {
			return "help", []string{"help"}, nil
		}
		switch parts[1] {
		case "-v", "--version":
			return "version", []string{"version"}, nil
		case "-h", "--help":
			return "help", []string{"help"}, nil
		case "undo", "select", "graph", "history", "scenario":
			// Session helpers are not git subcommands.
			return "git-" + parts[1], parts[1:], nil
		}
		return resolveAlias(parts[1]), withName(resolveAlias(parts[1]), parts[2:]), nil
	}

	name := resolveAlias(parts[0])
	return name, withName(name, parts[1:]), nil
}

var aliases = map[string]string{
	"switch": "checkout",
	"reset":  "init",
}

func resolveAlias(name string) string {
	if target, ok := aliases[name]; ok {
		return target
	}
	return name
}

func withName(name string, rest []string) []string {
	return append([]string{name}, rest...)
}
