package state

import "errors"

// Rejections. A rejected operation leaves the session and its history
// untouched.
var (
	ErrDuplicateBranchName = errors.New("a branch with this name already exists")
	ErrEmptyInput          = errors.New("input must not be empty")
	ErrUnknownOperation    = errors.New("unknown operation")
)

// Reasons attached to ignored operations. They are informational only and
// never returned as errors.
const (
	ReasonMergeIntoSelf  = "cannot merge a branch into itself"
	ReasonUnknownBranch  = "no such branch"
	ReasonNothingToMerge = "neither branch has commits"
	ReasonNothingToUndo  = "nothing to undo"
	ReasonNoSelection    = "no commit selected"
	ReasonUnknownCommit  = "no such commit"
)
