// Package session keeps the access tokens issued by the identity provider
// and hands them to outbound API calls.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNoSession is returned when no access token is available for the caller.
var ErrNoSession = errors.New("no active session")

// CredentialProvider supplies the bearer token used to authorize requests to
// the workouts API.
type CredentialProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// StaticToken is a CredentialProvider for a fixed token, used by the MCP
// binary where the token comes from the environment.
type StaticToken string

// AccessToken returns the token, or ErrNoSession when it is empty.
func (t StaticToken) AccessToken(context.Context) (string, error) {
	if t == "" {
		return "", ErrNoSession
	}
	return string(t), nil
}

// Store persists sessions in a SQLite database so logins survive restarts.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the session database at dir/sessions.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating session dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "sessions.db"))
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id           TEXT PRIMARY KEY,
		access_token TEXT NOT NULL,
		created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}

	return &Store{db: db}, nil
}

// Create stores token under a new session ID and returns the ID.
func (s *Store) Create(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("creating session: empty access token")
	}
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, access_token) VALUES (?, ?)`, id, token)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return id, nil
}

// Token returns the access token of session id.
func (s *Store) Token(ctx context.Context, id string) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT access_token FROM sessions WHERE id = ?`, id).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	return token, nil
}

// Delete removes session id. Deleting an unknown session is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Credentials returns a CredentialProvider bound to session id. The token is
// read on every call so a deleted session stops authorizing immediately.
func (s *Store) Credentials(id string) CredentialProvider {
	return storeCredentials{store: s, id: id}
}

// Close closes the session database.
func (s *Store) Close() error {
	return s.db.Close()
}

type storeCredentials struct {
	store *Store
	id    string
}

func (c storeCredentials) AccessToken(ctx context.Context) (string, error) {
	return c.store.Token(ctx, c.id)
}
