package app

import (
	"sync"

	"github.com/example/taskflow/internal/ports/secondary"
)

// SessionHolder is the process-wide in-memory authentication state.
// The bearer token lives here between commands within a process; the
// SQLite session store carries it across processes. There is at most
// one session per client instance, and clearing it (logout or a 401
// from the backend) is a process-wide side effect.
type SessionHolder struct {
	mu      sync.RWMutex
	session *secondary.Session
}

// NewSessionHolder creates an empty holder.
func NewSessionHolder() *SessionHolder {
	return &SessionHolder{}
}

// Set installs a session, replacing any prior one.
func (h *SessionHolder) Set(session *secondary.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = session
}

// Get returns the active session, or nil when unauthenticated.
func (h *SessionHolder) Get() *secondary.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session
}

// Token returns the active bearer token, or "" when unauthenticated.
// This is the TokenSource handed to the REST client.
func (h *SessionHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.session == nil {
		return ""
	}
	return h.session.Token
}

// Clear drops the in-memory session.
func (h *SessionHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = nil
}
