package shop

import (
	"sync"

	"github.com/google/uuid"

	"bookshop/internal/logger"
)

// Authenticator reports whether a user currently holds a valid session.
// OrderService only consumes this predicate; it never manages sessions
// itself.
type Authenticator interface {
	IsAuthenticated(userID int64) bool
}

// SessionManager hands out opaque session tokens on login and answers
// the Authenticator predicate. Sessions live in memory for the process
// lifetime only.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[int64]string // userID -> token
}

// NewSessionManager returns an empty session table.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[int64]string)}
}

// Login records a session for the user and returns its token. A second
// login replaces the previous session.
func (m *SessionManager) Login(userID int64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := uuid.New().String()
	m.sessions[userID] = token
	logger.Get().Debug().Int64("user_id", userID).Msg("session created")
	return token
}

// Logout drops the user's session if one exists.
func (m *SessionManager) Logout(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// IsAuthenticated implements Authenticator.
func (m *SessionManager) IsAuthenticated(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[userID]
	return ok
}
