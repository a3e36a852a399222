package state

// GraphState returns the serialized view of the session for the frontend.
func (s *Session) GraphState() *GraphState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshotLocked()
	return BuildGraphState(s.ID, snap, s.history.Items())
}

// BuildGraphState projects a snapshot into the frontend view. Branches are
// listed in lane order.
func BuildGraphState(sessionID string, snap Snapshot, history []HistoryItem) *GraphState {
	repo := snap.Repo
	state := &GraphState{
		SessionID:   sessionID,
		Commits:     repo.Commits,
		Branches:    make([]Branch, 0, len(repo.Order)),
		HEAD:        repo.Head,
		Selected:    snap.Selected,
		History:     history,
		Fingerprint: Fingerprint(snap),
	}
	if state.History == nil {
		state.History = []HistoryItem{}
	}
	for _, name := range repo.Order {
		state.Branches = append(state.Branches, *repo.Branches[name])
	}
	return state
}
