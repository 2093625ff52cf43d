// SPDX-License-Identifier: MIT

package labels

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

//go:embed pragmas.sql
var pragmasSQL string

// SQLiteStore persists layers in a SQLite database file.
type SQLiteStore struct {
	mu     sync.Mutex
	conn   *sql.DB
	path   string
	closed bool
}

// OpenSQLite opens or creates the label database at path. Use ":memory:" for
// a throwaway database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// One connection keeps per-connection pragmas and ":memory:" consistent.
	conn.SetMaxOpenConns(1)

	for _, pragma := range strings.Split(pragmasSQL, "\n") {
		pragma = strings.TrimSpace(pragma)
		if pragma == "" || strings.HasPrefix(pragma, "--") {
			continue
		}
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLiteStore{conn: conn, path: path}, nil
}

// Path returns the database path.
func (s *SQLiteStore) Path() string { return s.path }

// HasLayer implements Store.
func (s *SQLiteStore) HasLayer(mesh string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrStoreClosed
	}

	var n int
	err := s.conn.QueryRow(`SELECT COUNT(*) FROM layers WHERE mesh = ?`, mesh).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying layer: %w", err)
	}

	return n > 0, nil
}

// CreateLayer implements Store.
func (s *SQLiteStore) CreateLayer(mesh, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	now := time.Now().UnixMilli()
	_, err := s.conn.Exec(
		`INSERT OR IGNORE INTO layers (mesh, fingerprint, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		mesh, fingerprint, now, now,
	)
	if err != nil {
		return fmt.Errorf("creating layer: %w", err)
	}

	return nil
}

// LoadLayer implements Store.
func (s *SQLiteStore) LoadLayer(mesh string) (*Layer, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, "", ErrStoreClosed
	}

	var fingerprint string
	err := s.conn.QueryRow(`SELECT fingerprint FROM layers WHERE mesh = ?`, mesh).Scan(&fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrMissingLayer
	}
	if err != nil {
		return nil, "", fmt.Errorf("querying layer: %w", err)
	}

	rows, err := s.conn.Query(`SELECT vertex_id, place FROM labels WHERE mesh = ?`, mesh)
	if err != nil {
		return nil, "", fmt.Errorf("querying labels: %w", err)
	}
	defer rows.Close()

	layer := NewLayer()
	for rows.Next() {
		var (
			id    int64
			place string
		)
		if err := rows.Scan(&id, &place); err != nil {
			return nil, "", fmt.Errorf("scanning label: %w", err)
		}
		layer.Set(uint64(id), place)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("reading labels: %w", err)
	}

	return layer, fingerprint, nil
}

// SaveLayer implements Store. The layer row and its labels are replaced in
// one transaction.
func (s *SQLiteStore) SaveLayer(mesh string, layer *Layer, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()
	_, err = tx.Exec(
		`INSERT INTO layers (mesh, fingerprint, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(mesh) DO UPDATE SET fingerprint = excluded.fingerprint, updated_at = excluded.updated_at`,
		mesh, fingerprint, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting layer: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM labels WHERE mesh = ?`, mesh); err != nil {
		return fmt.Errorf("clearing labels: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO labels (mesh, vertex_id, place) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()
	for _, id := range layer.IDs() {
		if _, err := stmt.Exec(mesh, int64(id), layer.Get(id)); err != nil {
			return fmt.Errorf("inserting label %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing labels: %w", err)
	}

	return nil
}

// Close implements Store. Closing twice is a no-op.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	return s.conn.Close()
}
