package layout

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kurobon/gitviz/internal/state"
)

// WriteText draws repo as a lane grid for terminals, one row per branch and
// one column per commit, followed by a commit legend. Merge commits are shown
// as M, other commits as o; the selected commit is wrapped in brackets in the
// legend.
func WriteText(w io.Writer, repo *state.Repository, selected string) error {
	bw := bufio.NewWriter(w)
	names := repo.BranchNames()

	width := 0
	for _, name := range names {
		if n := len(LabelText(name, true)); n > width {
			width = n
		}
	}

	for _, name := range names {
		b := repo.Branches[name]
		first, last := -1, -1
		for i, c := range repo.Commits {
			if lane(repo, c) == b.Lane {
				if first < 0 {
					first = i
				}
				last = i
			}
		}

		var row strings.Builder
		for i, c := range repo.Commits {
			switch {
			case lane(repo, c) == b.Lane && c.IsMerge():
				row.WriteString("M")
			case lane(repo, c) == b.Lane:
				row.WriteString("o")
			case i > first && i < last:
				row.WriteString("-")
			default:
				row.WriteString(" ")
			}
			if i < len(repo.Commits)-1 {
				if i >= first && i < last {
					row.WriteString("--")
				} else {
					row.WriteString("  ")
				}
			}
		}
		label := LabelText(name, name == repo.Head.Branch)
		fmt.Fprintf(bw, "%-*s  %s\n", width, label, strings.TrimRight(row.String(), " "))
	}

	bw.WriteString("\n")
	for _, c := range repo.Commits {
		id := c.ID
		if id == selected {
			id = "[" + id + "]"
		}
		parents := "(none)"
		if len(c.Parents) > 0 {
			parents = strings.Join(c.Parents, ", ")
		}
		fmt.Fprintf(bw, "%-6s %-12s %s  <- %s\n", id, c.Branch, c.Message, parents)
	}
	return bw.Flush()
}

func lane(repo *state.Repository, c state.Commit) int {
	if b, ok := repo.Branch(c.Branch); ok {
		return b.Lane
	}
	return 0
}
