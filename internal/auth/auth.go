package auth

import (
	"context"
	"errors"

	"apptrack.local/internal/api"
	"apptrack.local/internal/domain"
	"apptrack.local/internal/session"
)

// ErrPasswordTooShort blocks signup before any network call is made.
var ErrPasswordTooShort = errors.New("Password must be at least 6 characters.")

const (
	signupFallback = "Signup failed. Please try again."
	loginFallback  = "Login failed. Please try again."
)

// Flow wires the gateway client and session store together for the two
// credential flows.
type Flow struct {
	client  *api.Client
	session *session.Store
}

func New(client *api.Client, sess *session.Store) *Flow {
	return &Flow{client: client, session: sess}
}

// Signup validates locally, registers the account, and populates the
// session. Short passwords never reach the backend.
func (f *Flow) Signup(ctx context.Context, name, email, password string) (domain.User, error) {
	if len(password) < 6 {
		return domain.User{}, ErrPasswordTooShort
	}

	user, token, err := f.client.Signup(ctx, name, email, password)
	if err != nil {
		return domain.User{}, displayError(err, signupFallback)
	}
	if err := f.session.Login(ctx, user, token); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login exchanges credentials and populates the session.
func (f *Flow) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, token, err := f.client.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, displayError(err, loginFallback)
	}
	if err := f.session.Login(ctx, user, token); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// displayError prefers the backend-supplied message, falling back to a fixed
// string when there is none.
func displayError(err error, fallback string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr
	}
	return errors.New(fallback)
}
