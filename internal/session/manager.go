package session

import (
	"sync"

	"github.com/GriffinCanCode/DesignOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
)

// DefaultID is the session used when a request carries no session id.
const DefaultID = "default"

// Manager owns every live session, keyed by id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager with the default session pre-built.
func NewManager() *Manager {
	m := &Manager{sessions: make(map[string]*Session)}
	m.sessions[DefaultID] = newSession(DefaultID)
	return m
}

// Resolve returns the session for a request context, creating it on
// first sight. A nil context or empty session id maps to the default
// session.
func (m *Manager) Resolve(ctx *types.Context) *Session {
	sessionID := DefaultID
	if ctx != nil && ctx.SessionID != nil && *ctx.SessionID != "" {
		sessionID = *ctx.SessionID
	}
	return m.Get(sessionID)
}

// Get returns the session with the given id, creating it if needed.
func (m *Manager) Get(sessionID string) *Session {
	m.mu.RLock()
	sess, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return sess
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok = m.sessions[sessionID]; ok {
		return sess
	}
	sess = newSession(sessionID)
	m.sessions[sessionID] = sess
	return sess
}

// Lookup returns the session with the given id without creating it.
func (m *Manager) Lookup(sessionID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sessionID]
	return sess, ok
}

// Create makes a new session with a generated id.
func (m *Manager) Create() *Session {
	sess := newSession(id.NewSessionID().String())
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess
}

// Delete removes a session. The default session is recreated empty
// rather than removed.
func (m *Manager) Delete(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sessionID == DefaultID {
		m.sessions[DefaultID] = newSession(DefaultID)
		return
	}
	delete(m.sessions, sessionID)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
