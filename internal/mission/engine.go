package mission

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kurobon/gitviz/internal/git"
	"github.com/kurobon/gitviz/internal/state"
)

type Engine struct {
	Loader  *Loader
	Manager *state.SessionManager
}

func NewEngine(loader *Loader, manager *state.SessionManager) *Engine {
	return &Engine{
		Loader:  loader,
		Manager: manager,
	}
}

// StartMission creates a fresh session for one attempt at a mission and runs
// its setup commands. Setup steps are dropped from the undo log so the user
// starts from the prepared graph.
func (e *Engine) StartMission(ctx context.Context, missionID string) (string, error) {
	m, err := e.Loader.LoadMission(missionID)
	if err != nil {
		return "", err
	}

	sessionID := fmt.Sprintf("mission-%s-%s", m.ID, uuid.NewString()[:8])
	sess, err := e.Manager.CreateSession(sessionID)
	if err != nil {
		return "", err
	}

	for _, cmdStr := range m.Setup {
		if _, err := git.Run(ctx, sess, cmdStr); err != nil {
			e.Manager.DeleteSession(sessionID)
			return "", fmt.Errorf("setup failed at '%s': %w", cmdStr, err)
		}
	}
	sess.ClearHistory()

	return sessionID, nil
}

type VerificationResult struct {
	Success   bool          `json:"success"`
	MissionID string        `json:"missionId"`
	Progress  []CheckResult `json:"progress"`
}

type CheckResult struct {
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
}

func (e *Engine) VerifyMission(sessionID string, missionID string) (*VerificationResult, error) {
	m, err := e.Loader.LoadMission(missionID)
	if err != nil {
		return nil, err
	}

	sess, ok := e.Manager.GetSession(sessionID)
	if !ok {
		return nil, fmt.Errorf("session not found")
	}

	repo := sess.Repository()
	results := make([]CheckResult, 0, len(m.Validation.Checks))
	allPassed := true

	for _, check := range m.Validation.Checks {
		passed := evaluate(repo, check)
		if check.Negate {
			passed = !passed
		}
		results = append(results, CheckResult{
			Description: check.Description,
			Passed:      passed,
		})
		if !passed {
			allPassed = false
		}
	}

	return &VerificationResult{
		Success:   allPassed,
		MissionID: missionID,
		Progress:  results,
	}, nil
}

func evaluate(repo *state.Repository, check Check) bool {
	switch check.Type {
	case CheckBranchExists:
		return repo.HasBranch(check.Name)

	case CheckCurrentBranch:
		return repo.Head.Branch == check.Name

	case CheckBranchHasOwnCommit:
		if !repo.HasBranch(check.Name) {
			return false
		}
		n := 0
		for _, c := range repo.Commits {
			if c.Branch == check.Name {
				n++
			}
		}
		return n >= max(check.Min, 1)

	case CheckCommitExists:
		commits, ok := scope(repo, check.Name)
		if !ok {
			return false
		}
		for _, c := range commits {
			if strings.Contains(c.Message, check.MessagePattern) {
				return true
			}
		}

	case CheckMergeExists:
		commits, ok := scope(repo, check.Name)
		if !ok {
			return false
		}
		for _, c := range commits {
			if c.IsMerge() {
				return true
			}
		}

	case CheckCommitCount:
		commits, ok := scope(repo, check.Name)
		if !ok {
			return false
		}
		n := len(commits)
		return n >= check.Min && (check.Max == 0 || n <= check.Max)
	}
	return false
}

// scope returns the commits reachable from branch's tip, or every commit
// when branch is empty. It reports false when branch does not exist.
func scope(repo *state.Repository, branch string) ([]state.Commit, bool) {
	if branch == "" {
		return repo.Commits, true
	}
	b, ok := repo.Branch(branch)
	if !ok || b.Tip == "" {
		return nil, false
	}

	seen := make(map[string]bool)
	stack := []string{b.Tip}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		if c, ok := repo.Commit(id); ok {
			stack = append(stack, c.Parents...)
		}
	}

	var out []state.Commit
	for _, c := range repo.Commits {
		if seen[c.ID] {
			out = append(out, c)
		}
	}
	return out, true
}
