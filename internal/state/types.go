package state

import "time"

// Commit is a node of the visual commit graph.
type Commit struct {
	ID        string   `json:"id"`
	Message   string   `json:"message"`
	Branch    string   `json:"branch"` // Branch the commit was created on
	Parents   []string `json:"parents"`
	TimeIndex int      `json:"timeIndex"`
}

// IsMerge reports whether the commit joins two lines of history.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// Clone returns a copy that does not share the parents slice.
func (c Commit) Clone() Commit {
	c.Parents = append([]string{}, c.Parents...)
	return c
}

// Branch is a named pointer into the graph with a fixed display lane.
type Branch struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Tip   string `json:"tip,omitempty"` // Empty when the branch has no commits
	Lane  int    `json:"lane"`
}

// Head names the checked-out branch. There is no detached state.
type Head struct {
	Branch string `json:"branch"`
}

// HistoryItem is the display form of a history entry.
type HistoryItem struct {
	Index       int       `json:"index"`
	Command     string    `json:"command"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// GraphState represents the serialized state for the frontend
type GraphState struct {
	SessionID   string        `json:"sessionId"`
	Commits     []Commit      `json:"commits"`
	Branches    []Branch      `json:"branches"` // Lane order
	HEAD        Head          `json:"HEAD"`
	Selected    string        `json:"selected,omitempty"`
	History     []HistoryItem `json:"history"`
	Fingerprint string        `json:"fingerprint"`
}

// BranchingStrategy is a canned sequence of operations demonstrating a workflow.
type BranchingStrategy struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	MainBranch  string      `json:"mainBranch"`
	FlowSteps   []string    `json:"flowSteps"`
	Operations  []Operation `json:"operations"`
}
