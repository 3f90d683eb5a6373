// This file persists the bearer credential and last-known user between runs.
package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/waymark-dev/waymark/internal/roadmap"
)

// Storage keys; token and user are always written and cleared together.
const (
	keyToken = "auth_token"
	keyUser  = "user"
)

// CredStore provides SQLite-backed persistence for the session credential.
type CredStore struct {
	db *sql.DB
}

// OpenCredStore opens the credential database at dbPath and creates the
// table if it doesn't exist.
func OpenCredStore(dbPath string) (*CredStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS credentials (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create credentials table: %w", err)
	}

	return &CredStore{db: db}, nil
}

// Close closes the database connection.
func (s *CredStore) Close() error {
	return s.db.Close()
}

// Save writes the token and user under their two keys in one transaction.
func (s *CredStore) Save(token string, user roadmap.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range map[string]string{keyToken: token, keyUser: string(userJSON)} {
		if _, err := tx.Exec(
			`INSERT INTO credentials (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load returns the persisted token and user. A missing credential is not an
// error: it returns "" and a nil user.
func (s *CredStore) Load() (string, *roadmap.User, error) {
	token, err := s.get(keyToken)
	if err != nil {
		return "", nil, err
	}
	if token == "" {
		return "", nil, nil
	}

	userJSON, err := s.get(keyUser)
	if err != nil {
		return "", nil, err
	}
	if userJSON == "" {
		// Half-written state; treat as no credential.
		return "", nil, nil
	}

	var user roadmap.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return "", nil, fmt.Errorf("parse stored user: %w", err)
	}
	return token, &user, nil
}

// Token returns only the persisted credential, or "".
func (s *CredStore) Token() string {
	token, _ := s.get(keyToken)
	return token
}

// Clear removes both keys.
func (s *CredStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE key IN (?, ?)`, keyToken, keyUser); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *CredStore) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}
