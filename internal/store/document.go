package store

import (
	"database/sql"
	"fmt"
	"time"
)

// DocumentStore persists opaque JSON documents under string keys. The
// market list store keeps its whole state as one document here.
type DocumentStore struct {
	db *sql.DB
}

func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Load returns the document stored under key. ok is false when no
// document exists for the key.
func (s *DocumentStore) Load(key string) (value []byte, ok bool, err error) {
	var v string
	err = s.db.QueryRow(`SELECT value FROM documents WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load document %q: %w", key, err)
	}
	return []byte(v), true, nil
}

// Save writes the document under key, replacing any previous value.
func (s *DocumentStore) Save(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save document %q: %w", key, err)
	}
	return nil
}

// Delete removes the document under key. Missing keys are not an error.
func (s *DocumentStore) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM documents WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete document %q: %w", key, err)
	}
	return nil
}
