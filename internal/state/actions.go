package state

import (
	"fmt"
	"strings"
)

// Apply runs one operation against the session.
//
// Mutating operations snapshot the session into history before they change
// anything. Rejected operations return an error; ignored ones return a
// Result with Ignored set. Neither touches state or history.
func (s *Session) Apply(op Operation) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch op.Kind {
	case OpCommit:
		return s.commit(op)
	case OpBranch:
		return s.createBranch(op)
	case OpCheckout:
		return s.checkout(op)
	case OpMerge:
		return s.merge(op)
	case OpAmend:
		return s.amend(op)
	case OpReset:
		return s.reset(op)
	case OpUndo:
		return s.undo(op)
	case OpSelect:
		return s.selectCommit(op)
	case OpDeselect:
		s.selected = ""
		return Result{Op: op}, nil
	}
	return Result{}, fmt.Errorf("%w: '%s'", ErrUnknownOperation, op.Kind)
}

// Commit appends a commit with message on the HEAD branch.
func (s *Session) Commit(message string) (Result, error) { return s.Apply(CommitOp(message)) }

// CreateBranch registers a branch starting at the HEAD tip.
func (s *Session) CreateBranch(name string) (Result, error) { return s.Apply(BranchOp(name)) }

// Checkout moves HEAD to an existing branch.
func (s *Session) Checkout(name string) (Result, error) { return s.Apply(CheckoutOp(name)) }

// Merge records a merge commit of source into the HEAD branch.
func (s *Session) Merge(source string) (Result, error) { return s.Apply(MergeOp(source)) }

// Amend rewrites the message of the selected commit.
func (s *Session) Amend(message string) (Result, error) { return s.Apply(AmendOp(message)) }

// Reset replaces the repository with a fresh one.
func (s *Session) Reset() (Result, error) { return s.Apply(ResetOp()) }

// Undo restores the state recorded before the last mutating operation.
func (s *Session) Undo() (Result, error) { return s.Apply(UndoOp()) }

// Select marks a commit as the editing target.
func (s *Session) Select(commitID string) (Result, error) { return s.Apply(SelectOp(commitID)) }

// ClearSelection drops the selection.
func (s *Session) ClearSelection() (Result, error) { return s.Apply(DeselectOp()) }

func (s *Session) record(op Operation) {
	s.history.Record(op.Command(), op.Description(), s.snapshotLocked(), s.opts.Now())
}

func (s *Session) commit(op Operation) (Result, error) {
	msg := strings.TrimSpace(op.Message)
	if msg == "" {
		return Result{}, fmt.Errorf("%w: commit message", ErrEmptyInput)
	}

	s.record(op)
	var parents []string
	if tip := s.repo.HeadTip(); tip != "" {
		parents = []string{tip}
	}
	c := s.repo.appendCommit(s.ids.Next(), msg, s.repo.Head.Branch, parents).Clone()
	return Result{Op: op, Commit: &c}, nil
}

func (s *Session) createBranch(op Operation) (Result, error) {
	name := strings.TrimSpace(op.Name)
	if name == "" {
		return Result{}, fmt.Errorf("%w: branch name", ErrEmptyInput)
	}
	if s.repo.HasBranch(name) {
		return Result{}, fmt.Errorf("%w: '%s'", ErrDuplicateBranchName, name)
	}

	s.record(op)
	tip := s.repo.HeadTip()
	s.repo.EnsureBranch(name).Tip = tip
	return Result{Op: op}, nil
}

func (s *Session) checkout(op Operation) (Result, error) {
	if !s.repo.HasBranch(op.Name) {
		return ignored(op, ReasonUnknownBranch), nil
	}

	s.record(op)
	s.repo.Head.Branch = op.Name
	return Result{Op: op}, nil
}

func (s *Session) merge(op Operation) (Result, error) {
	target := s.repo.Head.Branch
	source, ok := s.repo.Branch(op.Name)
	if !ok {
		return ignored(op, ReasonUnknownBranch), nil
	}
	if source.Name == target {
		return ignored(op, ReasonMergeIntoSelf), nil
	}

	// Target first, then source. Absent tips are dropped.
	var parents []string
	for _, tip := range []string{s.repo.HeadTip(), source.Tip} {
		if tip != "" {
			parents = append(parents, tip)
		}
	}
	if len(parents) == 0 {
		return ignored(op, ReasonNothingToMerge), nil
	}

	s.record(op)
	msg := fmt.Sprintf("merge %s -> %s", source.Name, target)
	c := s.repo.appendCommit(s.ids.Next(), msg, target, parents).Clone()
	return Result{Op: op, Commit: &c}, nil
}

func (s *Session) amend(op Operation) (Result, error) {
	msg := strings.TrimSpace(op.Message)
	if msg == "" {
		return Result{}, fmt.Errorf("%w: commit message", ErrEmptyInput)
	}
	id := op.CommitID
	if id == "" {
		id = s.selected
	}
	if id == "" {
		return ignored(op, ReasonNoSelection), nil
	}
	c, ok := s.repo.Commit(id)
	if !ok {
		return ignored(op, ReasonUnknownCommit), nil
	}

	s.record(op)
	c.Message = msg
	s.selected = id
	amended := c.Clone()
	return Result{Op: op, Commit: &amended}, nil
}

func (s *Session) reset(op Operation) (Result, error) {
	s.record(op)
	s.ids.Reset()
	s.repo = NewRepository(s.opts, s.ids)
	s.selected = ""
	seed := s.repo.Commits[0].Clone()
	return Result{Op: op, Commit: &seed}, nil
}

func (s *Session) undo(op Operation) (Result, error) {
	last, ok := s.history.Pop()
	if !ok {
		return ignored(op, ReasonNothingToUndo), nil
	}

	snap := last.Snapshot.Clone()
	s.repo = snap.Repo
	s.ids.Restore(snap.Counter)
	s.selected = snap.Selected
	return Result{Op: op, Undone: last.Command}, nil
}

func (s *Session) selectCommit(op Operation) (Result, error) {
	c, ok := s.repo.Commit(op.CommitID)
	if !ok {
		return ignored(op, ReasonUnknownCommit), nil
	}
	s.selected = c.ID
	sel := c.Clone()
	return Result{Op: op, Commit: &sel}, nil
}
