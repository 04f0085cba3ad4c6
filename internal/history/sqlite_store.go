package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements history storage using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate creates the necessary tables
func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		command TEXT NOT NULL,
		status TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		completed_at DATETIME,
		error TEXT,
		data JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_entries_status ON entries(status);
	CREATE INDEX IF NOT EXISTS idx_entries_started_at ON entries(started_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveEntry saves an entry
func (s *SQLiteStore) SaveEntry(e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO entries (id, command, status, started_at, completed_at, error, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Command, e.Status, e.StartedAt, e.CompletedAt, e.Error, data)

	return err
}

// GetEntry retrieves an entry
func (s *SQLiteStore) GetEntry(id string) (*Entry, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM entries WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("entry not found: %s", id)
	}
	if err != nil {
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}

	return &e, nil
}

// ListEntries lists recent entries
func (s *SQLiteStore) ListEntries(limit int) ([]*Entry, error) {
	rows, err := s.db.Query(`
		SELECT data FROM entries
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}

		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// DeleteEntry deletes an entry
func (s *SQLiteStore) DeleteEntry(id string) error {
	_, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	return err
}

// Clear removes all entries
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM entries")
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
