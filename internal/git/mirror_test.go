package git

import (
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitviz/internal/state"
)

func mergedRepo(t *testing.T) *state.Repository {
	t.Helper()
	s := state.NewSession("mirror", state.DefaultOptions())
	_, err := s.Play([]state.Operation{
		state.CommitOp("a"),
		state.BranchOp("feature"),
		state.CheckoutOp("feature"),
		state.CommitOp("b"),
		state.CheckoutOp("master"),
		state.MergeOp("feature"),
	})
	require.NoError(t, err)
	return s.Repository()
}

func TestBuildMirror_Graph(t *testing.T) {
	repo := mergedRepo(t)
	m, err := BuildMirror(repo)
	require.NoError(t, err)

	for _, c := range repo.Commits {
		h, ok := m.Hash(c.ID)
		require.True(t, ok, c.ID)
		id, ok := m.CommitID(h)
		require.True(t, ok)
		assert.Equal(t, c.ID, id)

		obj, err := m.Repo.CommitObject(h)
		require.NoError(t, err)
		assert.Equal(t, c.Message+"\n", obj.Message)
		require.Len(t, obj.ParentHashes, len(c.Parents), c.ID)
		for i, p := range c.Parents {
			ph, _ := m.Hash(p)
			assert.Equal(t, ph, obj.ParentHashes[i], "parent order of %s", c.ID)
		}
	}

	head, err := m.Repo.Head()
	require.NoError(t, err)
	assert.Equal(t, plumbing.NewBranchReferenceName("master"), head.Name())
	tip, _ := m.Hash("c4")
	assert.Equal(t, tip, head.Hash())

	feature, err := m.Repo.Reference(plumbing.NewBranchReferenceName("feature"), true)
	require.NoError(t, err)
	c3, _ := m.Hash("c3")
	assert.Equal(t, c3, feature.Hash())
}

func TestBuildMirror_Deterministic(t *testing.T) {
	a, err := BuildMirror(mergedRepo(t))
	require.NoError(t, err)
	b, err := BuildMirror(mergedRepo(t))
	require.NoError(t, err)

	ha, _ := a.Hash("c4")
	hb, _ := b.Hash("c4")
	assert.Equal(t, ha, hb)
}

func TestMirror_Log(t *testing.T) {
	m, err := BuildMirror(mergedRepo(t))
	require.NoError(t, err)

	out, err := m.Log(LogOptions{OneLine: true})
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "c4 (HEAD -> master) merge feature -> master")
	assert.Contains(t, lines[1], "c3 (feature) b")
	assert.Contains(t, lines[3], "c1 initial commit")

	out, err = m.Log(LogOptions{Branch: "feature", OneLine: true})
	require.NoError(t, err)
	assert.Len(t, strings.Split(out, "\n"), 3)

	out, err = m.Log(LogOptions{Limit: 1, Limited: true})
	require.NoError(t, err)
	assert.Contains(t, out, "Merge: ")
	assert.Contains(t, out, "Id:     c4")
	assert.Contains(t, out, "Author: gitviz <gitviz@localhost>")
	assert.NotContains(t, out, "Id:     c3")

	out, err = m.Log(LogOptions{OneLine: true, Limited: true})
	require.NoError(t, err)
	assert.Empty(t, out, "a zero limit prints nothing")

	_, err = m.Log(LogOptions{Branch: "nope"})
	assert.Error(t, err)
}

func TestMirror_AfterReset(t *testing.T) {
	s := state.NewSession("reset", state.DefaultOptions())
	_, err := s.Commit("gone")
	require.NoError(t, err)
	_, err = s.Reset()
	require.NoError(t, err)

	m, err := BuildMirror(s.Repository())
	require.NoError(t, err)
	out, err := m.Log(LogOptions{OneLine: true})
	require.NoError(t, err)
	assert.Contains(t, out, "c1 (HEAD -> master) initial commit")
	assert.NotContains(t, out, "gone")
}
