// Package sqlite contains SQLite implementations of the local store
// interfaces: session, task cache, and activity log.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/taskflow/internal/models"
	"github.com/example/taskflow/internal/ports/secondary"
)

// SessionRepository implements secondary.SessionStore with SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save persists the session, replacing any existing one.
func (r *SessionRepository) Save(ctx context.Context, session *secondary.Session) error {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO session (id, token, user_json, saved_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_json = excluded.user_json,
			saved_at = CURRENT_TIMESTAMP`,
		session.Token, string(userJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored session, or nil if none exists.
func (r *SessionRepository) Load(ctx context.Context) (*secondary.Session, error) {
	var token, userJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_json FROM session WHERE id = 1`,
	).Scan(&token, &userJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("failed to parse session user: %w", err)
	}

	return &secondary.Session{Token: token, User: &user}, nil
}

// Clear removes the stored session.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
