// Package session persists the client's session (token + profile) in a
// local SQLite key-value table so the user stays logged in across runs.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Session is the locally persisted login state: the bearer token and the
// public profile returned by the server. Overwritten on each login and
// cleared by logout.
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Profile is the public user record as returned by the server. The password
// hash never reaches the client.
type Profile struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Tipo  string `json:"tipo"`
}

// sessionKey is the single key under which the session blob is stored.
const sessionKey = "sessao"

// Store is a SQLite-backed key-value store for the client session.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the session database at the given path and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessao (
			chave TEXT PRIMARY KEY,
			valor BLOB NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists the session, replacing any previous one.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	blob, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessao (chave, valor) VALUES (?, ?)
		ON CONFLICT(chave) DO UPDATE SET valor = excluded.valor
	`, sessionKey, blob)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Load returns the persisted session, or nil if none is stored.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT valor FROM sessao WHERE chave = ?`, sessionKey,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(blob, &sess); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &sess, nil
}

// Clear removes the persisted session. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessao WHERE chave = ?`, sessionKey)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
