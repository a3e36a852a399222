package state

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBranch         = "master"
	DefaultInitialMessage = "initial commit"
)

// Options configures how sessions build their repositories.
type Options struct {
	DefaultBranch  string
	IDPrefix       string
	InitialMessage string
	Palette        []string
	Now            func() time.Time
}

// DefaultOptions returns the stock master/c1/"initial commit" setup.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.DefaultBranch == "" {
		o.DefaultBranch = DefaultBranch
	}
	if o.IDPrefix == "" {
		o.IDPrefix = DefaultIDPrefix
	}
	if o.InitialMessage == "" {
		o.InitialMessage = DefaultInitialMessage
	}
	if len(o.Palette) == 0 {
		o.Palette = DefaultPalette
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Session holds one user's graph, selection and undo log.
//
// All mutation goes through Apply. The lock only serialises callers such as
// concurrent HTTP requests; each operation runs to completion synchronously.
type Session struct {
	ID        string
	CreatedAt time.Time

	opts     Options
	repo     *Repository
	ids      *IDGenerator
	selected string
	history  *History
	mu       sync.RWMutex
}

// NewSession creates a session holding a freshly initialised repository.
func NewSession(id string, opts Options) *Session {
	opts = opts.withDefaults()
	ids := NewIDGenerator(opts.IDPrefix)
	return &Session{
		ID:        id,
		CreatedAt: opts.Now(),
		opts:      opts,
		repo:      NewRepository(opts, ids),
		ids:       ids,
		history:   NewHistory(),
	}
}

// Options returns the options the session was built with.
func (s *Session) Options() Options {
	return s.opts
}

// Snapshot returns a detached copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Repo:     s.repo.Clone(),
		Counter:  s.ids.Counter(),
		Selected: s.selected,
	}
}

// Repository returns a detached copy of the graph.
func (s *Session) Repository() *Repository {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.Clone()
}

// Selected returns the selected commit id, or "".
func (s *Session) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// HistoryLen returns the number of undoable operations.
func (s *Session) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Len()
}

// HistoryItems lists the undo log oldest first.
func (s *Session) HistoryItems() []HistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Items()
}

// ClearHistory forgets every undo entry. The graph itself is untouched.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = NewHistory()
}

// SessionManager handles concurrent access to sessions
type SessionManager struct {
	sessions map[string]*Session
	opts     Options
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager
func NewSessionManager(opts Options) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		opts:     opts.withDefaults(),
	}
}

// CreateSession initializes a new session, or returns the existing one.
func (sm *SessionManager) CreateSession(id string) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session id required")
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if s, exists := sm.sessions[id]; exists {
		return s, nil
	}
	s := NewSession(id, sm.opts)
	sm.sessions[id] = s
	return s, nil
}

// NewSession creates a session under a random id.
func (sm *SessionManager) NewSession() (*Session, error) {
	return sm.CreateSession("session-" + uuid.New().String()[:8])
}

// GetSession retrieves a session by ID
func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	return s, ok
}

// DeleteSession drops a session. It reports whether the session existed.
func (sm *SessionManager) DeleteSession(id string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.sessions[id]; !ok {
		return false
	}
	delete(sm.sessions, id)
	return true
}

// SessionIDs lists live sessions in lexical order.
func (sm *SessionManager) SessionIDs() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	ids := make([]string, 0, len(sm.sessions))
	for id := range sm.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
