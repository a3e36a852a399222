package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/kurobon/gitviz/internal/state"
)

// Mirror is a real, in-memory git repository replaying a visual graph.
//
// Every visual commit becomes an empty-tree commit with the same parents in
// the same order, each branch tip becomes refs/heads/<name>, and HEAD is a
// symbolic ref to the checked-out branch.
type Mirror struct {
	Repo *gogit.Repository

	hashes      map[string]plumbing.Hash
	ids         map[plumbing.Hash]string
	decorations map[plumbing.Hash][]string
	head        string
}

// BuildMirror replays repo into a fresh memory storer with a memfs worktree.
func BuildMirror(repo *state.Repository) (*Mirror, error) {
	st := memory.NewStorage()
	r, err := gogit.Init(st, memfs.New())
	if err != nil {
		return nil, fmt.Errorf("init mirror: %w", err)
	}

	emptyTree, err := storeObject(st, &object.Tree{})
	if err != nil {
		return nil, fmt.Errorf("write empty tree: %w", err)
	}

	m := &Mirror{
		Repo:        r,
		hashes:      make(map[string]plumbing.Hash, len(repo.Commits)),
		ids:         make(map[plumbing.Hash]string, len(repo.Commits)),
		decorations: make(map[plumbing.Hash][]string),
		head:        repo.Head.Branch,
	}

	for i, c := range repo.Commits {
		parents := make([]plumbing.Hash, 0, len(c.Parents))
		for _, p := range c.Parents {
			h, ok := m.hashes[p]
			if !ok {
				return nil, fmt.Errorf("commit %s: parent %s not mirrored yet", c.ID, p)
			}
			parents = append(parents, h)
		}

		sig := GetDefaultSignature(i)
		h, err := storeObject(st, &object.Commit{
			Author:       sig,
			Committer:    sig,
			Message:      c.Message + "\n",
			TreeHash:     emptyTree,
			ParentHashes: parents,
		})
		if err != nil {
			return nil, fmt.Errorf("write commit %s: %w", c.ID, err)
		}
		m.hashes[c.ID] = h
		m.ids[h] = c.ID
	}

	for _, name := range repo.BranchNames() {
		b := repo.Branches[name]
		h, ok := m.hashes[b.Tip]
		if !ok {
			continue
		}
		ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), h)
		if err := st.SetReference(ref); err != nil {
			return nil, fmt.Errorf("set branch %s: %w", name, err)
		}
		m.decorations[h] = append(m.decorations[h], name)
	}

	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(repo.Head.Branch))
	if err := st.SetReference(head); err != nil {
		return nil, fmt.Errorf("set HEAD: %w", err)
	}
	return m, nil
}

func storeObject(st storer.EncodedObjectStorer, obj interface {
	Encode(plumbing.EncodedObject) error
}) (plumbing.Hash, error) {
	enc := st.NewEncodedObject()
	if err := obj.Encode(enc); err != nil {
		return plumbing.ZeroHash, err
	}
	return st.SetEncodedObject(enc)
}

// Hash returns the mirror hash of a visual commit id.
func (m *Mirror) Hash(id string) (plumbing.Hash, bool) {
	h, ok := m.hashes[id]
	return h, ok
}

// CommitID maps a mirror hash back to the visual commit id.
func (m *Mirror) CommitID(h plumbing.Hash) (string, bool) {
	id, ok := m.ids[h]
	return id, ok
}

// LogOptions selects what Log prints.
type LogOptions struct {
	Branch  string // Empty means HEAD
	OneLine bool
	Limit   int
	Limited bool // Limit applies only when set, so -n 0 prints nothing
}

// Log walks the mirror with go-git and formats the result like git log.
func (m *Mirror) Log(opts LogOptions) (string, error) {
	var from plumbing.Hash
	if opts.Branch == "" {
		ref, err := m.Repo.Head()
		if err != nil {
			return "", fmt.Errorf("fatal: your current branch does not have any commits yet")
		}
		from = ref.Hash()
	} else {
		ref, err := m.Repo.Reference(plumbing.NewBranchReferenceName(opts.Branch), true)
		if err != nil {
			return "", fmt.Errorf("fatal: ambiguous argument '%s': unknown revision", opts.Branch)
		}
		from = ref.Hash()
	}

	iter, err := m.Repo.Log(&gogit.LogOptions{From: from, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return "", err
	}
	defer iter.Close()

	var sb strings.Builder
	count := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if opts.Limited && count >= opts.Limit {
			return storer.ErrStop
		}
		count++
		if opts.OneLine {
			m.writeOneLine(&sb, c)
		} else {
			m.writeFull(&sb, c)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (m *Mirror) writeOneLine(sb *strings.Builder, c *object.Commit) {
	fmt.Fprintf(sb, "%s %s%s %s\n",
		c.Hash.String()[:7], m.ids[c.Hash], m.decorate(c.Hash), firstLine(c.Message))
}

func (m *Mirror) writeFull(sb *strings.Builder, c *object.Commit) {
	fmt.Fprintf(sb, "commit %s%s\n", c.Hash, m.decorate(c.Hash))
	if len(c.ParentHashes) > 1 {
		shorts := make([]string, len(c.ParentHashes))
		for i, p := range c.ParentHashes {
			shorts[i] = p.String()[:7]
		}
		fmt.Fprintf(sb, "Merge: %s\n", strings.Join(shorts, " "))
	}
	fmt.Fprintf(sb, "Id:     %s\n", m.ids[c.Hash])
	fmt.Fprintf(sb, "Author: %s <%s>\n", c.Author.Name, c.Author.Email)
	fmt.Fprintf(sb, "Date:   %s\n\n", c.Author.When.Format("Mon Jan 2 15:04:05 2006 -0700"))
	for _, line := range strings.Split(strings.TrimRight(c.Message, "\n"), "\n") {
		fmt.Fprintf(sb, "    %s\n", line)
	}
	sb.WriteString("\n")
}

func (m *Mirror) decorate(h plumbing.Hash) string {
	names := m.decorations[h]
	if len(names) == 0 {
		return ""
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n == m.head {
			parts = append([]string{"HEAD -> " + n}, parts...)
			continue
		}
		parts = append(parts, n)
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func firstLine(msg string) string {
	return strings.SplitN(strings.TrimRight(msg, "\n"), "\n", 2)[0]
}
