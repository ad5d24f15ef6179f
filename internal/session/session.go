package session

import (
	"context"
	"encoding/json"
	"errors"

	"apptrack.local/internal/domain"
	"apptrack.local/internal/store"
)

// Storage keys. Token is the raw bearer string, user the JSON-encoded record.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Storage is the durable key-value backing for the session. *store.Store
// satisfies it; tests may substitute their own.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store holds the signed-in identity and bearer token, mirrored between
// memory and durable storage. Token and user are always set and cleared
// together.
type Store struct {
	storage Storage

	user        *domain.User
	token       string
	initialized bool
}

func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Initialize rehydrates the session from storage. It runs once per process
// start: a second call is a no-op. If the stored user does not parse as the
// expected shape, both keys are cleared and the session starts
// unauthenticated.
func (s *Store) Initialize(ctx context.Context) error {
	if s.initialized {
		return nil
	}
	s.initialized = true

	token, err := s.storage.Get(ctx, KeyToken)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	rawUser, err := s.storage.Get(ctx, KeyUser)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		// Corrupt state: wipe it rather than limp along half-signed-in.
		if derr := s.clearStorage(ctx); derr != nil {
			return derr
		}
		return nil
	}

	s.token = token
	s.user = &user
	return nil
}

// Login persists both values, then adopts them in memory.
func (s *Store) Login(ctx context.Context, user domain.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Put(ctx, KeyToken, token); err != nil {
		return err
	}
	if err := s.storage.Put(ctx, KeyUser, string(raw)); err != nil {
		return err
	}
	s.token = token
	s.user = &user
	return nil
}

// Logout clears storage and memory.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.clearStorage(ctx); err != nil {
		return err
	}
	s.token = ""
	s.user = nil
	return nil
}

func (s *Store) clearStorage(ctx context.Context) error {
	if err := s.storage.Delete(ctx, KeyToken); err != nil {
		return err
	}
	return s.storage.Delete(ctx, KeyUser)
}

// IsAuthenticated derives strictly from token presence.
func (s *Store) IsAuthenticated() bool { return s.token != "" }

// Loading reports true until Initialize has resolved.
func (s *Store) Loading() bool { return !s.initialized }

func (s *Store) Token() string { return s.token }

// User returns the signed-in user, or nil when unauthenticated.
func (s *Store) User() *domain.User { return s.user }
