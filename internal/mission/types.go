package mission

// Mission defines the structure of a practice mission loaded from YAML.
type Mission struct {
	ID           string                        `yaml:"id" json:"id"`
	Title        string                        `yaml:"title" json:"title"`
	Description  string                        `yaml:"description" json:"description"`
	Difficulty   Difficulty                    `yaml:"difficulty" json:"difficulty"`
	Skill        string                        `yaml:"skill" json:"skill"`
	Setup        []string                      `yaml:"setup" json:"-"`        // Commands to run for setup
	Validation   Validation                    `yaml:"validation" json:"-"`   // Validation rules
	Hints        []string                      `yaml:"hints" json:"hints"`    // Hints for the user
	Translations map[string]MissionTranslation `yaml:"translations" json:"-"` // Localized content
}

type MissionTranslation struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Hints       []string `yaml:"hints" json:"hints"`
}

type Difficulty struct {
	Level string `yaml:"level" json:"level"` // basic, intermediate, advanced
	Stars int    `yaml:"stars" json:"stars"` // 1-5
}

type Validation struct {
	Checks []Check `yaml:"checks"`
}

// Check types understood by VerifyMission.
const (
	CheckBranchExists       = "branch_exists"
	CheckCurrentBranch      = "current_branch"
	CheckBranchHasOwnCommit = "branch_has_own_commit"
	CheckCommitExists       = "commit_exists"
	CheckMergeExists        = "merge_exists"
	CheckCommitCount        = "commit_count"
)

type Check struct {
	Type           string `yaml:"type"`
	Description    string `yaml:"description"`     // User facing description
	MessagePattern string `yaml:"message_pattern"` // For commit_exists
	Name           string `yaml:"name"`            // Branch; for commit checks, limits to commits reachable from its tip
	Min            int    `yaml:"min"`             // For commit_count and branch_has_own_commit
	Max            int    `yaml:"max"`             // For commit_count, zero means unbounded
	Negate         bool   `yaml:"negate"`          // If true, inverts the pass condition
}

// Localized returns a copy of m with the lang translation applied.
func (m *Mission) Localized(lang string) *Mission {
	val := *m
	trans, ok := m.Translations[lang]
	if !ok {
		return &val
	}
	if trans.Title != "" {
		val.Title = trans.Title
	}
	if trans.Description != "" {
		val.Description = trans.Description
	}
	if len(trans.Hints) > 0 {
		val.Hints = trans.Hints
	}
	return &val
}
