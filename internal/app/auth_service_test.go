package app

import (
	"context"
	"testing"

	"github.com/example/taskflow/internal/core/fault"
	"github.com/example/taskflow/internal/models"
	"github.com/example/taskflow/internal/ports/primary"
	"github.com/example/taskflow/internal/ports/secondary"
)

func newAuthService(backend *mockBackend, sessions *mockSessionStore, cache *mockTaskCache) (*AuthServiceImpl, *SessionHolder, *mockLogWriter) {
	holder := NewSessionHolder()
	log := &mockLogWriter{}
	return NewAuthService(backend, sessions, cache, holder, log), holder, log
}

func TestLoginInstallsSession(t *testing.T) {
	backend := newMockBackend()
	backend.loginPayload = &secondary.AuthPayload{Token: "tok-1", User: memberUser(2)}
	sessions := &mockSessionStore{}

	svc, holder, _ := newAuthService(backend, sessions, newMockTaskCache())

	state, err := svc.Login(context.Background(), "mia@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !state.Authenticated {
		t.Error("expected authenticated state")
	}
	if state.Capabilities.UserID != 2 {
		t.Errorf("UserID = %d, want 2", state.Capabilities.UserID)
	}
	if holder.Token() != "tok-1" {
		t.Errorf("holder token = %q, want tok-1", holder.Token())
	}
	if sessions.session == nil || sessions.session.Token != "tok-1" {
		t.Error("session should be persisted to the store")
	}
}

func TestLoginRejectedCredentials(t *testing.T) {
	backend := newMockBackend()
	backend.loginErr = fault.New(fault.KindUnauthorized, "invalid credentials")
	sessions := &mockSessionStore{}

	svc, holder, _ := newAuthService(backend, sessions, newMockTaskCache())

	_, err := svc.Login(context.Background(), "mia@example.com", "wrong")
	if !fault.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized fault, got %v", err)
	}
	if holder.Get() != nil {
		t.Error("failed login must not install a session")
	}
	if sessions.session != nil {
		t.Error("failed login must not persist a session")
	}
}

func TestRegisterInstallsSession(t *testing.T) {
	backend := newMockBackend()
	backend.loginPayload = &secondary.AuthPayload{Token: "tok-2", User: memberUser(8)}
	sessions := &mockSessionStore{}

	svc, holder, _ := newAuthService(backend, sessions, newMockTaskCache())

	state, err := svc.Register(context.Background(), primary.RegisterRequest{
		FirstName:            "Nia",
		LastName:             "New",
		Email:                "nia@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !state.Authenticated || holder.Token() != "tok-2" {
		t.Error("registration should install the returned session")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	backend := newMockBackend()
	sessions := &mockSessionStore{session: &secondary.Session{Token: "tok", User: memberUser(2)}}
	cache := newMockTaskCache()
	cache.tasks[1] = fixtureTask(1, models.TaskStatusPending, 2)

	svc, holder, _ := newAuthService(backend, sessions, cache)
	holder.Set(sessions.session)

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if holder.Get() != nil {
		t.Error("logout should clear the in-memory session")
	}
	if sessions.session != nil {
		t.Error("logout should clear the stored session")
	}
	if len(cache.tasks) != 0 {
		t.Error("logout should purge the task cache")
	}
	if backend.logoutCalls != 1 {
		t.Errorf("backend logout calls = %d, want 1", backend.logoutCalls)
	}
}

func TestLogoutBackendFailureStillTearsDown(t *testing.T) {
	backend := newMockBackend()
	backend.logoutErr = fault.New(fault.KindTransport, "connection refused")
	sessions := &mockSessionStore{session: &secondary.Session{Token: "tok", User: memberUser(2)}}

	svc, holder, log := newAuthService(backend, sessions, newMockTaskCache())
	holder.Set(sessions.session)

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if holder.Get() != nil || sessions.session != nil {
		t.Error("local teardown must proceed despite backend failure")
	}
	if len(log.unexpected) != 1 || log.unexpected[0] != "logout_backend_failure" {
		t.Errorf("unexpected-event log = %v, want [logout_backend_failure]", log.unexpected)
	}
}

func TestRestoreNoStoredSession(t *testing.T) {
	svc, _, _ := newAuthService(newMockBackend(), &mockSessionStore{}, newMockTaskCache())

	state, err := svc.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if state.Authenticated {
		t.Error("no stored session should restore to unauthenticated")
	}
}

func TestRestoreValidToken(t *testing.T) {
	backend := newMockBackend()
	refreshed := memberUser(2)
	refreshed.Role = models.RoleIncharge
	backend.currentUser = refreshed
	sessions := &mockSessionStore{session: &secondary.Session{Token: "tok", User: memberUser(2)}}

	svc, holder, _ := newAuthService(backend, sessions, newMockTaskCache())

	state, err := svc.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if !state.Authenticated {
		t.Fatal("valid token should restore an authenticated state")
	}
	// The backend's copy of the account wins over the stored one.
	if !state.Capabilities.IsIncharge {
		t.Error("capabilities should reflect the refreshed role")
	}
	if sessions.session.User.Role != models.RoleIncharge {
		t.Error("refreshed account should be persisted back to the store")
	}
	if holder.Token() != "tok" {
		t.Errorf("holder token = %q, want tok", holder.Token())
	}
}

func TestRestoreRejectedTokenClearsSession(t *testing.T) {
	backend := newMockBackend()
	backend.currentErr = fault.New(fault.KindUnauthorized, "token expired")
	sessions := &mockSessionStore{session: &secondary.Session{Token: "stale", User: memberUser(2)}}

	svc, holder, _ := newAuthService(backend, sessions, newMockTaskCache())

	state, err := svc.Restore(context.Background())
	if err != nil {
		t.Fatalf("rejected token should not surface an error, got %v", err)
	}
	if state.Authenticated {
		t.Error("rejected token should restore to unauthenticated")
	}
	if holder.Get() != nil {
		t.Error("rejected token should clear the in-memory session")
	}
	if sessions.session != nil {
		t.Error("rejected token should clear the stored session")
	}
}

func TestRestoreTransportFailureSurfaces(t *testing.T) {
	backend := newMockBackend()
	backend.currentErr = fault.New(fault.KindTransport, "connection refused")
	sessions := &mockSessionStore{session: &secondary.Session{Token: "tok", User: memberUser(2)}}

	svc, _, _ := newAuthService(backend, sessions, newMockTaskCache())

	_, err := svc.Restore(context.Background())
	if !fault.Is(err, fault.KindTransport) {
		t.Fatalf("expected transport fault, got %v", err)
	}
	if sessions.session == nil {
		t.Error("transport failure must not destroy the stored session")
	}
}

func TestCurrentFallsBackToStore(t *testing.T) {
	sessions := &mockSessionStore{session: &secondary.Session{Token: "tok", User: adminUser()}}
	svc, _, _ := newAuthService(newMockBackend(), sessions, newMockTaskCache())

	state, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if !state.Authenticated || !state.Capabilities.IsAdmin {
		t.Error("Current should resolve the stored session without a backend call")
	}
}
