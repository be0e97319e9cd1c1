package secondary

import (
	"context"

	"github.com/example/taskflow/internal/models"
)

// Session is the locally persisted authentication state: the bearer
// token plus the account it was issued to.
type Session struct {
	Token string
	User  *models.User
}

// SessionStore defines the secondary port for session persistence.
// There is at most one session per client instance; saving replaces
// any prior session.
type SessionStore interface {
	// Save persists the session, replacing any existing one.
	Save(ctx context.Context, session *Session) error

	// Load returns the stored session, or nil if none exists.
	Load(ctx context.Context) (*Session, error)

	// Clear removes the stored session. Clearing an empty store is
	// not an error.
	Clear(ctx context.Context) error
}

// TaskCache defines the secondary port for the last server-confirmed
// task state. Entries are replaced wholesale after every successful
// sync; the cache never holds provisional local edits.
type TaskCache interface {
	// Put stores a task subtree, replacing any existing entry.
	Put(ctx context.Context, task *models.Task) error

	// Get returns a cached task, or nil if absent.
	Get(ctx context.Context, taskID int) (*models.Task, error)

	// Delete removes a cached task. Deleting an absent entry is not
	// an error.
	Delete(ctx context.Context, taskID int) error

	// Purge removes all cached tasks (on logout).
	Purge(ctx context.Context) error
}

// LogWriter defines the interface for writing activity log entries.
// The log records mutations issued by this client and conditions worth
// flagging, such as a duplicate accept reported by the backend.
type LogWriter interface {
	// LogAction logs a mutation against an entity.
	LogAction(ctx context.Context, action, entityType string, entityID int, detail string) error

	// LogUnexpected logs a condition that should not occur in normal
	// operation but was handled gracefully.
	LogUnexpected(ctx context.Context, event, detail string) error
}
