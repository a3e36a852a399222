// Package layout projects a repository graph onto a 2D canvas.
//
// Columns follow commit order and rows follow branch lanes, so a commit's
// position depends only on its time index and the lane of the branch it was
// created on.
package layout

import (
	"fmt"

	"github.com/kurobon/gitviz/internal/state"
)

const (
	SpacingX   = 100
	SpacingY   = 90
	Padding    = 60
	NodeRadius = 12

	MinWidth  = 800
	MinHeight = 400

	labelOffsetX = 16
	labelOffsetY = -14

	fallbackNodeColor = "#6ee7b7"
	fallbackEdgeColor = "#95a3ff"
)

// Node is a positioned commit.
type Node struct {
	ID       string `json:"id"`
	Message  string `json:"message"`
	Branch   string `json:"branch"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Color    string `json:"color"`
	Selected bool   `json:"selected"`
}

// Edge connects a parent to a child.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Path  string `json:"path"` // SVG path data
	Color string `json:"color"`
}

// Label marks a branch tip.
type Label struct {
	Branch string `json:"branch"`
	Text   string `json:"text"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	IsHead bool   `json:"isHead"`
}

// Layout is everything a renderer needs to draw the graph.
type Layout struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Labels []Label `json:"labels"`
}

// Position returns the canvas coordinates for a time index and lane.
func Position(timeIndex, lane int) (x, y int) {
	return Padding + timeIndex*SpacingX, Padding + lane*SpacingY
}

// Compute lays out repo. selected marks at most one node; pass "" for none.
// Time indexes are re-derived from commit order on a private copy.
func Compute(repo *state.Repository, selected string) *Layout {
	repo = repo.Clone()
	repo.Reindex()

	lanes := len(repo.Branches)
	if lanes == 0 {
		lanes = 1
	}
	l := &Layout{
		Width:  max(MinWidth, Padding*2+(len(repo.Commits)+1)*SpacingX),
		Height: max(MinHeight, Padding*2+lanes*SpacingY),
		Nodes:  make([]Node, 0, len(repo.Commits)),
		Edges:  []Edge{},
		Labels: []Label{},
	}

	index := make(map[string]int, len(repo.Commits))
	for i, c := range repo.Commits {
		lane, color := 0, fallbackNodeColor
		if b, ok := repo.Branch(c.Branch); ok {
			lane, color = b.Lane, b.Color
		}
		x, y := Position(c.TimeIndex, lane)
		l.Nodes = append(l.Nodes, Node{
			ID:       c.ID,
			Message:  c.Message,
			Branch:   c.Branch,
			X:        x,
			Y:        y,
			Color:    color,
			Selected: c.ID == selected,
		})
		index[c.ID] = i
	}

	for i, c := range repo.Commits {
		child := l.Nodes[i]
		color := fallbackEdgeColor
		if b, ok := repo.Branch(c.Branch); ok {
			color = b.Color
		}
		for _, pid := range c.Parents {
			pi, ok := index[pid]
			if !ok {
				continue
			}
			parent := l.Nodes[pi]
			l.Edges = append(l.Edges, Edge{
				From:  pid,
				To:    c.ID,
				Path:  curve(parent.X, parent.Y, child.X, child.Y),
				Color: color,
			})
		}
	}

	for _, name := range repo.BranchNames() {
		b := repo.Branches[name]
		ni, ok := index[b.Tip]
		if !ok {
			continue
		}
		tip := l.Nodes[ni]
		isHead := name == repo.Head.Branch
		l.Labels = append(l.Labels, Label{
			Branch: name,
			Text:   LabelText(name, isHead),
			X:      tip.X + labelOffsetX,
			Y:      tip.Y + labelOffsetY,
			IsHead: isHead,
		})
	}
	return l
}

// LabelText is the tip label for a branch, suffixed when it is HEAD.
func LabelText(branch string, isHead bool) string {
	if isHead {
		return branch + " (HEAD)"
	}
	return branch
}

// curve draws a cubic from parent to child bending through the horizontal
// midpoint.
func curve(px, py, cx, cy int) string {
	mx := float64(px+cx) / 2
	return fmt.Sprintf("M %d %d C %g %d, %g %d, %d %d", px, py, mx, py, mx, cy, cx, cy)
}
