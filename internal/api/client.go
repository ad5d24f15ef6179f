package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"apptrack.local/internal/domain"
)

// TokenSource returns the current bearer token, or "" when unauthenticated.
// It is read per request so the client always sends whatever is persisted.
type TokenSource func() string

// Error is a non-2xx response from the backend, carrying the
// human-readable message when the body supplied one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
}

// Client is the single entry point to the tracker backend. All paths hang
// off the fixed /api prefix under the configured base URL.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          TokenSource
	onUnauthorized func()
}

func New(baseURL string, token TokenSource) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		token:      token,
	}
}

// OnUnauthorized registers a hook fired on any 401 response, before the
// error is returned to the caller. The hook runs at most once per response
// regardless of which operation triggered it.
func (c *Client) OnUnauthorized(fn func()) { c.onUnauthorized = fn }

type authResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account and returns the user plus a fresh token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (domain.User, string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", signupRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return domain.User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Login exchanges credentials for the user plus a fresh token.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return domain.User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// ListApplications returns the full list in backend order; the client never
// re-sorts it.
func (c *Client) ListApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := c.do(ctx, http.MethodGet, "/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) CreateApplication(ctx context.Context, input domain.ApplicationInput) (domain.Application, error) {
	var app domain.Application
	if err := c.do(ctx, http.MethodPost, "/applications", input, &app); err != nil {
		return domain.Application{}, err
	}
	return app, nil
}

// UpdateApplication sends a partial patch: only the non-nil fields of patch
// appear in the request body.
func (c *Client) UpdateApplication(ctx context.Context, id string, patch domain.ApplicationPatch) (domain.Application, error) {
	var app domain.Application
	if err := c.do(ctx, http.MethodPatch, "/applications/"+id, patch, &app); err != nil {
		return domain.Application{}, err
	}
	return app, nil
}

func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/applications/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return c.responseError(resp)
	}
	if resp.StatusCode >= 400 {
		return c.responseError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) responseError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
