// Package rest implements the secondary Backend port over the
// task-tracking REST API. All requests and responses are JSON; the
// bearer token is attached whenever a session is active, and a 401 on
// any call outside the auth routes clears it process-wide.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/example/taskflow/internal/core/fault"
)

// TokenSource supplies the current bearer token, or "" when no session
// is active.
type TokenSource func() string

// UnauthorizedHook runs when any authenticated call is rejected with
// 401. Token clearing is a process-wide side effect, not scoped to the
// failing call, so the hook is installed once at wiring time.
type UnauthorizedHook func()

// Client is an HTTP client for the backend API.
type Client struct {
	baseURL        string
	http           *http.Client
	token          TokenSource
	onUnauthorized UnauthorizedHook
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithUnauthorizedHook installs the process-wide 401 handler.
func WithUnauthorizedHook(hook UnauthorizedHook) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, token TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// do issues a request and decodes the response into out (if non-nil).
// Backend failures are mapped onto the fault taxonomy; the caller's
// prior state is never touched on error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	authenticated := false
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		authenticated = true
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fault.Wrap(fault.KindTransport, err, "request to %s failed", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapError(resp, path, authenticated)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fault.Wrap(fault.KindTransport, err, "failed to decode response from %s", path)
		}
	}
	return nil
}

// isAuthRoute reports whether path establishes a session rather than
// consuming one. 401 on these routes means bad credentials, never an
// expired token.
func isAuthRoute(path string) bool {
	return path == "/login" || path == "/register"
}

// mapError translates a non-2xx response onto the fault taxonomy.
// The unauthorized hook fires only for authenticated calls off the
// auth routes: a rejected login must not clear the stored session.
func (c *Client) mapError(resp *http.Response, path string, authenticated bool) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	msg := eb.Message
	if msg == "" {
		msg = fmt.Sprintf("request to %s failed with status %d", path, resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if authenticated && !isAuthRoute(path) && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fault.New(fault.KindUnauthorized, "%s", msg)
	case http.StatusForbidden:
		return fault.New(fault.KindForbidden, "%s", msg)
	case http.StatusNotFound:
		return fault.New(fault.KindNotFound, "%s", msg)
	case http.StatusConflict:
		return fault.New(fault.KindAlreadyAccepted, "%s", msg)
	case http.StatusLocked:
		return fault.New(fault.KindLocked, "%s", msg)
	case http.StatusUnprocessableEntity:
		return fault.New(fault.KindValidation, "%s", validationDetail(msg, eb.Errors))
	default:
		return fault.New(fault.KindTransport, "%s", msg)
	}
}

// validationDetail flattens field errors into the message so the CLI
// can surface them next to the offending flag.
func validationDetail(msg string, fields map[string][]string) string {
	for field, errs := range fields {
		if len(errs) > 0 {
			return fmt.Sprintf("%s (%s: %s)", msg, field, errs[0])
		}
	}
	return msg
}

func pageQuery(number, perPage int, status string) url.Values {
	q := url.Values{}
	if number > 0 {
		q.Set("page", strconv.Itoa(number))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	if status != "" {
		q.Set("status", status)
	}
	return q
}
