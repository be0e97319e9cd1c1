// Package primary defines the primary ports (driving interfaces) for
// the application. CLI commands call these; implementations live in
// internal/app.
package primary

import (
	"context"

	"github.com/example/taskflow/internal/core/role"
	"github.com/example/taskflow/internal/models"
)

// AuthService defines the primary port for session operations.
type AuthService interface {
	// Login authenticates with credentials and persists the session.
	Login(ctx context.Context, email, password string) (*AuthState, error)

	// Register creates an account and persists the session.
	Register(ctx context.Context, req RegisterRequest) (*AuthState, error)

	// Logout invalidates the token and clears all local state.
	Logout(ctx context.Context) error

	// Restore validates a stored token against the backend and returns
	// the resulting auth state. A rejected token is cleared and an
	// unauthenticated state returned, not an error.
	Restore(ctx context.Context) (*AuthState, error)

	// Current returns the auth state for the active session without a
	// backend round trip, or an unauthenticated state if none exists.
	Current(ctx context.Context) (*AuthState, error)
}

// AuthState is the resolved authentication state handed to commands.
type AuthState struct {
	Authenticated bool
	User          *models.User
	Capabilities  role.Capabilities
}

// RegisterRequest contains parameters for account creation.
type RegisterRequest struct {
	FirstName            string
	LastName             string
	Email                string
	Password             string
	PasswordConfirmation string
}
