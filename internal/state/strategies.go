package state

import "fmt"

// GetBranchingStrategies returns the canned workflows for education. Each
// strategy's operations are written against mainBranch, the session's
// default branch.
func GetBranchingStrategies(mainBranch string) []BranchingStrategy {
	if mainBranch == "" {
		mainBranch = DefaultBranch
	}
	return []BranchingStrategy{
		{
			ID:          "github-flow",
			Name:        "GitHub Flow",
			Description: "A lightweight, branch-based workflow. Ideal for projects that follow a continuous delivery model.",
			MainBranch:  mainBranch,
			FlowSteps: []string{
				fmt.Sprintf("1. All code in the '%s' branch should always be deployable.", mainBranch),
				fmt.Sprintf("2. To work on something new, create a descriptive branch off of '%s'.", mainBranch),
				"3. Commit to that branch regularly.",
				fmt.Sprintf("4. Merge into '%s' once reviewed and tested.", mainBranch),
			},
			Operations: []Operation{
				BranchOp("feature-login"),
				CheckoutOp("feature-login"),
				CommitOp("add login form"),
				CommitOp("validate credentials"),
				CheckoutOp(mainBranch),
				MergeOp("feature-login"),
			},
		},
		{
			ID:          "git-flow",
			Name:        "Git Flow",
			Description: "A robust framework for managing large-scale projects with scheduled releases.",
			MainBranch:  mainBranch,
			FlowSteps: []string{
				fmt.Sprintf("1. '%s' stores the official release history.", mainBranch),
				"2. 'develop' serves as an integration branch for features.",
				"3. Feature branches are used for new features (forked from 'develop').",
				"4. Release branches prepare for a new production release.",
			},
			Operations: []Operation{
				BranchOp("develop"),
				CheckoutOp("develop"),
				BranchOp("feature-search"),
				CheckoutOp("feature-search"),
				CommitOp("add search index"),
				CheckoutOp("develop"),
				MergeOp("feature-search"),
				BranchOp("release-1.0"),
				CheckoutOp("release-1.0"),
				CommitOp("bump version to 1.0"),
				CheckoutOp(mainBranch),
				MergeOp("release-1.0"),
				CheckoutOp("develop"),
				MergeOp("release-1.0"),
			},
		},
		{
			ID:          "trunk-based",
			Name:        "Trunk-Based Development",
			Description: "A branching model where all developers work on a single branch ('trunk'), performing small, frequent updates.",
			MainBranch:  mainBranch,
			FlowSteps: []string{
				fmt.Sprintf("1. Developers commit directly to '%s' or use very short-lived branches.", mainBranch),
				"2. Avoid long-lived branches to minimize merge pain.",
				"3. Feature flags decouple deployment from release.",
			},
			Operations: []Operation{
				CommitOp("add feature flag"),
				BranchOp("fix-typo"),
				CheckoutOp("fix-typo"),
				CommitOp("fix typo"),
				CheckoutOp(mainBranch),
				MergeOp("fix-typo"),
				CommitOp("enable feature flag"),
			},
		},
	}
}

// FindBranchingStrategy looks up a strategy by id.
func FindBranchingStrategy(mainBranch, id string) (BranchingStrategy, bool) {
	for _, st := range GetBranchingStrategies(mainBranch) {
		if st.ID == id {
			return st, true
		}
	}
	return BranchingStrategy{}, false
}

// Play applies ops in order and stops at the first rejection. Each applied
// mutating step gets its own history entry, so the walkthrough can be undone
// one step at a time.
func (s *Session) Play(ops []Operation) ([]Result, error) {
	results := make([]Result, 0, len(ops))
	for i, op := range ops {
		res, err := s.Apply(op)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, op.Command(), err)
		}
		results = append(results, res)
	}
	return results, nil
}
