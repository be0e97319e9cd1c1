package rest

import (
	"context"
	"net/http"

	"github.com/example/taskflow/internal/models"
	"github.com/example/taskflow/internal/ports/secondary"
)

// Login exchanges credentials for a token and the account.
func (c *Client) Login(ctx context.Context, email, password string) (*secondary.AuthPayload, error) {
	body := map[string]string{"email": email, "password": password}
	var payload secondary.AuthPayload
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Register creates an account and returns a token with it.
func (c *Client) Register(ctx context.Context, req secondary.RegisterRequest) (*secondary.AuthPayload, error) {
	var payload secondary.AuthPayload
	if err := c.do(ctx, http.MethodPost, "/register", nil, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Logout invalidates the current token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, nil)
}

// GetCurrentUser returns the account behind the current token.
func (c *Client) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
