package state

import (
	"fmt"
	"strings"
)

// OpKind tags an Operation.
type OpKind string

const (
	OpCommit   OpKind = "commit"
	OpBranch   OpKind = "branch"
	OpCheckout OpKind = "checkout"
	OpMerge    OpKind = "merge"
	OpAmend    OpKind = "amend"
	OpReset    OpKind = "reset"
	OpUndo     OpKind = "undo"
	OpSelect   OpKind = "select"
	OpDeselect OpKind = "deselect"
)

// Mutating reports whether operations of this kind are recorded in history.
func (k OpKind) Mutating() bool {
	switch k {
	case OpCommit, OpBranch, OpCheckout, OpMerge, OpAmend, OpReset:
		return true
	}
	return false
}

// Operation is a single request to the state machine. Only the fields that
// belong to Kind are read.
type Operation struct {
	Kind     OpKind `json:"kind"`
	Name     string `json:"name,omitempty"`     // branch, checkout, merge
	Message  string `json:"message,omitempty"`  // commit, amend
	CommitID string `json:"commitId,omitempty"` // select, amend (optional)
}

// Constructors

func CommitOp(message string) Operation { return Operation{Kind: OpCommit, Message: message} }
func BranchOp(name string) Operation { return Operation{Kind: OpBranch, Name: name} }
func CheckoutOp(name string) Operation { return Operation{Kind: OpCheckout, Name: name} }
func MergeOp(source string) Operation { return Operation{Kind: OpMerge, Name: source} }
func AmendOp(message string) Operation { return Operation{Kind: OpAmend, Message: message} }
func ResetOp() Operation { return Operation{Kind: OpReset} }
func UndoOp() Operation { return Operation{Kind: OpUndo} }
func SelectOp(commitID string) Operation { return Operation{Kind: OpSelect, CommitID: commitID} }
func DeselectOp() Operation { return Operation{Kind: OpDeselect} }

// Command renders the git command line recorded in history for op.
func (op Operation) Command() string {
	switch op.Kind {
	case OpCommit:
		return fmt.Sprintf("git commit -m '%s'", strings.TrimSpace(op.Message))
	case OpBranch:
		return "git branch " + strings.TrimSpace(op.Name)
	case OpCheckout:
		return "git checkout " + op.Name
	case OpMerge:
		return "git merge " + op.Name
	case OpAmend:
		return fmt.Sprintf("git commit --amend -m '%s'", strings.TrimSpace(op.Message))
	case OpReset:
		return "git init"
	case OpUndo:
		return "undo"
	case OpSelect:
		return "select " + op.CommitID
	case OpDeselect:
		return "select --clear"
	}
	return string(op.Kind)
}

// Description is the one-line intent shown next to the command in history.
func (op Operation) Description() string {
	switch op.Kind {
	case OpCommit:
		return "Record changes to history."
	case OpBranch:
		return "Create a new branch from current tip."
	case OpCheckout:
		return "Switch current branch (HEAD)."
	case OpMerge:
		return "Merge changes into current branch."
	case OpAmend:
		return "Update commit message."
	case OpReset:
		return "Initialize a new repository (reset)."
	}
	return ""
}

func (op Operation) String() string {
	return op.Command()
}

// Result describes the outcome of an accepted or ignored operation.
type Result struct {
	Op      Operation `json:"op"`
	Ignored bool      `json:"ignored"`
	Reason  string    `json:"reason,omitempty"`
	Commit  *Commit   `json:"commit,omitempty"` // Created or amended commit
	Undone  string    `json:"undone,omitempty"` // Command reverted by undo
}

func ignored(op Operation, reason string) Result {
	return Result{Op: op, Ignored: true, Reason: reason}
}
