package bot

import (
	"sync"

	"github.com/example/easyenglish/pkg/models"
)

// State is the position of a user in the quiz dialogue.
type State int

const (
	// StateIdle means no question is outstanding.
	StateIdle State = iota
	// StateAwaitingAnswer means a question was asked and the next
	// message is treated as the answer.
	StateAwaitingAnswer
	// StateAwaitingResetConfirm means the user was offered a progress
	// reset and the next message is the yes/no reply.
	StateAwaitingResetConfirm
)

// Session is the transient per-user dialogue state. It lives only for
// the duration of an exchange and is lost on restart.
type Session struct {
	State State
	// Word is the question target while awaiting an answer.
	Word models.Word
}

// SessionStore holds per-user sessions behind a mutex; the update
// handlers run on separate goroutines.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]Session)}
}

// Get returns the user's session; an unknown user is idle.
func (s *SessionStore) Get(userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

// Set stores the user's session.
func (s *SessionStore) Set(userID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

// Clear resets the user to idle.
func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
