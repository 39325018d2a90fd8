package telegram

import "sync"

// State is the registration dialogue state of one identity.
type State int

const (
	StateIdle State = iota
	StateAwaitingName
)

func (s State) String() string {
	switch s {
	case StateAwaitingName:
		return "awaiting_name"
	default:
		return "idle"
	}
}

// sessions keeps per-identity dialogue state in memory. Identities without
// an entry are idle.
type sessions struct {
	mu    sync.RWMutex
	state map[int64]State
}

func newSessions() *sessions {
	return &sessions{state: make(map[int64]State)}
}

func (s *sessions) get(id int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state[id]
}

// awaitName enters the name prompt after /start from an unknown identity.
func (s *sessions) awaitName(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[id] = StateAwaitingName
}

// finish returns the identity to idle after registration, cancel or a
// welcome-back. It reports whether a registration was in progress.
func (s *sessions) finish(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state[id]
	delete(s.state, id)
	return prev == StateAwaitingName
}
