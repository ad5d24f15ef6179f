package store

import (
	"context"
	"database/sql"
)

// Store is the durable client-side state: the session key-value pairs and an
// offline mirror of the last application list we saw from the backend.
type Store struct {
	DB *sql.DB
}

func New(db *sql.DB) *Store { return &Store{DB: db} }

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS session (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS applications (
	id TEXT PRIMARY KEY,
	company_name TEXT NOT NULL,
	role TEXT NOT NULL,
	status TEXT NOT NULL,
	ctc TEXT,
	created_at TIMESTAMP,
	position INTEGER NOT NULL
);
`)
	return err
}
