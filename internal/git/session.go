package git

import (
	"github.com/kurobon/gitviz/internal/state"
)

// Alias types so commands can stay within the git package.

type Session = state.Session
type SessionManager = state.SessionManager
type Commit = state.Commit
type GraphState = state.GraphState

// NewSessionManager creates a new session manager
// Wrapper around state.NewSessionManager
func NewSessionManager(opts state.Options) *SessionManager {
	return state.NewSessionManager(opts)
}
