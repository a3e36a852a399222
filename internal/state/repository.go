package state

import (
	"fmt"
)

// Repository is the commit DAG, branch registry and HEAD pointer.
//
// Commits are append-only and insertion ordered; Order records branch
// creation order so lanes can be listed deterministically.
type Repository struct {
	Commits  []Commit           `json:"commits"`
	Branches map[string]*Branch `json:"branches"`
	Order    []string           `json:"order"`
	Head     Head               `json:"head"`

	palette []string
}

// NewRepository builds the fresh state used on init and reset: the default
// branch holding one seed commit, checked out.
func NewRepository(opts Options, ids *IDGenerator) *Repository {
	opts = opts.withDefaults()
	r := &Repository{
		Branches: make(map[string]*Branch),
		Head:     Head{Branch: opts.DefaultBranch},
		palette:  opts.Palette,
	}
	r.EnsureBranch(opts.DefaultBranch)
	r.appendCommit(ids.Next(), opts.InitialMessage, opts.DefaultBranch, nil)
	return r
}

// appendCommit adds a commit at the end of the sequence and moves the tip of
// branch onto it.
func (r *Repository) appendCommit(id, message, branch string, parents []string) Commit {
	if parents == nil {
		parents = []string{}
	}
	c := Commit{
		ID:        id,
		Message:   message,
		Branch:    branch,
		Parents:   parents,
		TimeIndex: len(r.Commits),
	}
	r.Commits = append(r.Commits, c)
	r.EnsureBranch(branch).Tip = id
	return c
}

// Commit looks up a commit by id.
func (r *Repository) Commit(id string) (*Commit, bool) {
	for i := range r.Commits {
		if r.Commits[i].ID == id {
			return &r.Commits[i], true
		}
	}
	return nil, false
}

// HeadTip returns the tip of the checked-out branch, or "" if it has none.
func (r *Repository) HeadTip() string {
	if b, ok := r.Branches[r.Head.Branch]; ok {
		return b.Tip
	}
	return ""
}

// Reindex re-derives TimeIndex from sequence position.
func (r *Repository) Reindex() {
	for i := range r.Commits {
		r.Commits[i].TimeIndex = i
	}
}

// Clone returns a deep copy that shares no mutable memory with r.
func (r *Repository) Clone() *Repository {
	if r == nil {
		return nil
	}
	out := &Repository{
		Commits:  make([]Commit, len(r.Commits)),
		Branches: make(map[string]*Branch, len(r.Branches)),
		Order:    make([]string, len(r.Order)),
		Head:     r.Head,
		palette:  r.palette,
	}
	for i, c := range r.Commits {
		c.Parents = append([]string{}, c.Parents...)
		out.Commits[i] = c
	}
	for name, b := range r.Branches {
		cp := *b
		out.Branches[name] = &cp
	}
	copy(out.Order, r.Order)
	return out
}

// Validate checks the structural invariants of the graph and returns the
// first violation found.
func (r *Repository) Validate() error {
	if len(r.Branches) == 0 {
		return fmt.Errorf("repository has no branches")
	}
	if len(r.Order) != len(r.Branches) {
		return fmt.Errorf("branch order lists %d names for %d branches", len(r.Order), len(r.Branches))
	}
	if _, ok := r.Branches[r.Head.Branch]; !ok {
		return fmt.Errorf("HEAD names unknown branch '%s'", r.Head.Branch)
	}

	seen := make(map[string]bool, len(r.Commits))
	for i, c := range r.Commits {
		if c.TimeIndex != i {
			return fmt.Errorf("commit %s has time index %d at position %d", c.ID, c.TimeIndex, i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate commit id %s", c.ID)
		}
		if len(c.Parents) > 2 {
			return fmt.Errorf("commit %s has %d parents", c.ID, len(c.Parents))
		}
		for _, p := range c.Parents {
			if !seen[p] {
				return fmt.Errorf("commit %s references parent %s which is not an earlier commit", c.ID, p)
			}
		}
		if _, ok := r.Branches[c.Branch]; !ok {
			return fmt.Errorf("commit %s belongs to unknown branch '%s'", c.ID, c.Branch)
		}
		seen[c.ID] = true
	}

	lanes := make(map[int]string, len(r.Branches))
	for i, name := range r.Order {
		b, ok := r.Branches[name]
		if !ok {
			return fmt.Errorf("branch order names unknown branch '%s'", name)
		}
		if b.Lane != i {
			return fmt.Errorf("branch '%s' has lane %d, expected %d", name, b.Lane, i)
		}
		if other, dup := lanes[b.Lane]; dup {
			return fmt.Errorf("branches '%s' and '%s' share lane %d", other, name, b.Lane)
		}
		lanes[b.Lane] = name
		if b.Tip != "" && !seen[b.Tip] {
			return fmt.Errorf("branch '%s' points at unknown commit %s", name, b.Tip)
		}
	}
	return nil
}
