package mission

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitviz/internal/git"
	_ "github.com/kurobon/gitviz/internal/git/commands" // Register commands
	"github.com/kurobon/gitviz/internal/state"
)

func newEngine() *Engine {
	return NewEngine(NewLoader(""), state.NewSessionManager(state.DefaultOptions()))
}

func runCommands(t *testing.T, s *state.Session, cmds ...string) {
	t.Helper()
	for _, c := range cmds {
		_, err := git.Run(context.Background(), s, c)
		require.NoError(t, err, c)
	}
}

func TestLoader_Builtin(t *testing.T) {
	l := NewLoader("")
	missions, err := l.ListMissions()
	require.NoError(t, err)

	ids := make([]string, len(missions))
	for i, m := range missions {
		ids[i] = m.ID
		assert.NotEmpty(t, m.Validation.Checks, m.ID)
	}
	assert.Equal(t, []string{"first-branch", "fix-message", "merge-feature"}, ids)
}

func TestLoader_Dir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte("title: Custom\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("title: [\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	l := NewLoader(dir)
	m, err := l.LoadMission("custom")
	require.NoError(t, err)
	assert.Equal(t, "custom", m.ID, "id defaults to the filename")

	missions, err := l.ListMissions()
	require.NoError(t, err)
	require.Len(t, missions, 1)

	_, err = l.LoadMission("broken")
	assert.ErrorContains(t, err, "failed to parse mission yaml")
	_, err = l.LoadMission("../etc/passwd")
	assert.ErrorContains(t, err, "invalid mission id")
	_, err = l.LoadMission("missing")
	assert.ErrorContains(t, err, "failed to read mission file")
}

func TestLocalized(t *testing.T) {
	m, err := NewLoader("").LoadMission("first-branch")
	require.NoError(t, err)

	ja := m.Localized("ja")
	assert.Equal(t, "はじめてのブランチ", ja.Title)
	assert.Len(t, ja.Hints, 2)
	assert.Equal(t, "Your first branch", m.Title, "source mission untouched")
	assert.Equal(t, m.Title, m.Localized("fr").Title)
}

func TestStartMission(t *testing.T) {
	e := newEngine()

	id, err := e.StartMission(context.Background(), "merge-feature")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "mission-merge-feature-"))

	s, ok := e.Manager.GetSession(id)
	require.True(t, ok)
	repo := s.Repository()
	assert.Len(t, repo.Commits, 4)
	assert.Equal(t, "master", repo.Head.Branch)
	assert.Equal(t, 0, s.HistoryLen(), "setup is not undoable")

	other, err := e.StartMission(context.Background(), "merge-feature")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	_, err = e.StartMission(context.Background(), "nope")
	assert.Error(t, err)
}

func TestStartMission_SetupFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("setup:\n  - git branch x\n  - git branch x\n"), 0o644))
	e := NewEngine(NewLoader(dir), state.NewSessionManager(state.DefaultOptions()))

	_, err := e.StartMission(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup failed at 'git branch x'")
	assert.Empty(t, e.Manager.SessionIDs())
}

func TestVerifyMission(t *testing.T) {
	tests := []struct {
		mission string
		solve   []string
		passed  []bool
	}{
		{"first-branch", nil, []bool{false, false, false}},
		{"first-branch", []string{"git branch feature"}, []bool{true, false, false}},
		{"first-branch", []string{"git checkout -b feature", "git commit -m work"}, []bool{true, true, true}},
		{"first-branch", []string{"git commit -m 'on master'", "git branch feature", "git checkout feature"}, []bool{true, true, false}},
		{"merge-feature", nil, []bool{true, false, false}},
		{"merge-feature", []string{"git merge feature"}, []bool{true, true, true}},
		{"merge-feature", []string{"git checkout feature", "git merge master"}, []bool{false, false, false}},
		{"fix-message", []string{"git commit -m 'add login'"}, []bool{true, false, false}},
		{"fix-message", []string{"select c2", "git commit --amend -m 'add login'"}, []bool{true, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.mission+"/"+strings.Join(tt.solve, ";"), func(t *testing.T) {
			e := newEngine()
			id, err := e.StartMission(context.Background(), tt.mission)
			require.NoError(t, err)
			s, _ := e.Manager.GetSession(id)
			runCommands(t, s, tt.solve...)

			res, err := e.VerifyMission(id, tt.mission)
			require.NoError(t, err)
			require.Len(t, res.Progress, len(tt.passed))

			all := true
			for i, want := range tt.passed {
				assert.Equal(t, want, res.Progress[i].Passed, res.Progress[i].Description)
				all = all && want
			}
			assert.Equal(t, all, res.Success)
		})
	}
}

func TestEvaluate_BranchChecks(t *testing.T) {
	s := state.NewSession("eval", state.DefaultOptions())
	runCommands(t, s, "git commit -m a", "git checkout -b feature", "git commit -m b")
	repo := s.Repository()

	tests := []struct {
		name  string
		check Check
		want  bool
	}{
		{"own commit", Check{Type: CheckBranchHasOwnCommit, Name: "feature"}, true},
		{"own commit min", Check{Type: CheckBranchHasOwnCommit, Name: "feature", Min: 2}, false},
		{"own commit on master", Check{Type: CheckBranchHasOwnCommit, Name: "master", Min: 2}, true},
		{"own commit missing branch", Check{Type: CheckBranchHasOwnCommit, Name: "ghost"}, false},
		{"count missing branch", Check{Type: CheckCommitCount, Name: "ghost"}, false},
		{"count missing branch negated", Check{Type: CheckCommitCount, Name: "ghost", Negate: true}, true},
		{"exists missing branch", Check{Type: CheckCommitExists, Name: "ghost"}, false},
		{"merge missing branch", Check{Type: CheckMergeExists, Name: "ghost"}, false},
		{"count reachable", Check{Type: CheckCommitCount, Name: "feature", Min: 3, Max: 3}, true},
		{"count all", Check{Type: CheckCommitCount, Min: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluate(repo, tt.check)
			if tt.check.Negate {
				got = !got
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifyMission_UnknownSession(t *testing.T) {
	_, err := newEngine().VerifyMission("ghost", "first-branch")
	assert.ErrorContains(t, err, "session not found")
}
