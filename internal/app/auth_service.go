package app

import (
	"context"
	"fmt"

	"github.com/example/taskflow/internal/core/fault"
	"github.com/example/taskflow/internal/core/role"
	"github.com/example/taskflow/internal/models"
	"github.com/example/taskflow/internal/ports/primary"
	"github.com/example/taskflow/internal/ports/secondary"
)

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	backend  secondary.Backend
	sessions secondary.SessionStore
	cache    secondary.TaskCache
	holder   *SessionHolder
	log      secondary.LogWriter
}

// NewAuthService creates a new AuthService with injected dependencies.
func NewAuthService(
	backend secondary.Backend,
	sessions secondary.SessionStore,
	cache secondary.TaskCache,
	holder *SessionHolder,
	log secondary.LogWriter,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		backend:  backend,
		sessions: sessions,
		cache:    cache,
		holder:   holder,
		log:      log,
	}
}

// Login authenticates with credentials and persists the session.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*primary.AuthState, error) {
	payload, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.installSession(ctx, payload)
}

// Register creates an account and persists the session.
func (s *AuthServiceImpl) Register(ctx context.Context, req primary.RegisterRequest) (*primary.AuthState, error) {
	payload, err := s.backend.Register(ctx, secondary.RegisterRequest{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return nil, err
	}
	return s.installSession(ctx, payload)
}

func (s *AuthServiceImpl) installSession(ctx context.Context, payload *secondary.AuthPayload) (*primary.AuthState, error) {
	session := &secondary.Session{Token: payload.Token, User: payload.User}
	s.holder.Set(session)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return stateFor(payload.User), nil
}

// Logout invalidates the token and clears all dependent local state.
// The backend call is best-effort: a failure to invalidate server-side
// never blocks the local teardown.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	if err := s.backend.Logout(ctx); err != nil && !fault.IsUnauthorized(err) {
		_ = s.log.LogUnexpected(ctx, "logout_backend_failure", err.Error())
	}

	s.holder.Clear()
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := s.cache.Purge(ctx); err != nil {
		return fmt.Errorf("failed to purge task cache: %w", err)
	}
	return nil
}

// Restore validates a stored token against the backend. A rejected
// token is cleared and an unauthenticated state returned; only
// transport failures surface as errors.
func (s *AuthServiceImpl) Restore(ctx context.Context) (*primary.AuthState, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return &primary.AuthState{}, nil
	}

	s.holder.Set(session)

	user, err := s.backend.GetCurrentUser(ctx)
	if err != nil {
		if fault.IsUnauthorized(err) {
			s.holder.Clear()
			_ = s.sessions.Clear(ctx)
			return &primary.AuthState{}, nil
		}
		return nil, err
	}

	// Refresh the stored account: role or verification state may have
	// changed since the session was saved.
	session.User = user
	s.holder.Set(session)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return stateFor(user), nil
}

// Current returns the auth state for the active session without a
// backend round trip.
func (s *AuthServiceImpl) Current(ctx context.Context) (*primary.AuthState, error) {
	session := s.holder.Get()
	if session == nil {
		var err error
		session, err = s.sessions.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		if session == nil {
			return &primary.AuthState{}, nil
		}
		s.holder.Set(session)
	}
	return stateFor(session.User), nil
}

func stateFor(user *models.User) *primary.AuthState {
	return &primary.AuthState{
		Authenticated: true,
		User:          user,
		Capabilities:  role.Resolve(user),
	}
}
