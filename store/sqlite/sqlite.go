// Package sqlite provides a durable world.Store backed by SQLite via the
// pure-Go modernc.org/sqlite driver, so no cgo is required. World states are
// stored as JSON in a TEXT column keyed by world id.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/agentville/world"
)

// Store implements world.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New opens or creates a SQLite database at the given path.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS worlds (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL DEFAULT '',
		state      TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_worlds_updated ON worlds(updated_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save upserts the state JSON for the world id.
func (s *Store) Save(ctx context.Context, id string, state *world.State) error {
	if state == nil {
		return fmt.Errorf("save world %q: nil state", id)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("save world %q: marshal: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO worlds (id, name, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, state = excluded.state, updated_at = excluded.updated_at`,
		id, state.Config.Name, string(data),
		state.CreatedAt.UTC().Format(time.RFC3339Nano),
		state.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save world %q: %w", id, err)
	}
	return nil
}

// Load returns the state for the id or world.ErrNotFound.
func (s *Store) Load(ctx context.Context, id string) (*world.State, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM worlds WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("load world %q: %w", id, world.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load world %q: %w", id, err)
	}
	var state world.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("load world %q: unmarshal: %w", id, err)
	}
	return &state, nil
}

// Delete removes the row, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM worlds WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete world %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete world %q: %w", id, err)
	}
	return n > 0, nil
}

// List returns metadata for every stored world, newest first.
func (s *Store) List(ctx context.Context) ([]world.Metadata, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, updated_at FROM worlds ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list worlds: %w", err)
	}
	defer rows.Close()

	var metas []world.Metadata
	for rows.Next() {
		var m world.Metadata
		var updated string
		if err := rows.Scan(&m.ID, &m.Name, &updated); err != nil {
			return nil, fmt.Errorf("list worlds: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			m.UpdatedAt = t
		}
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list worlds: %w", err)
	}
	return metas, nil
}

// Exists reports whether a row exists for the id.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM worlds WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("world exists %q: %w", id, err)
	}
	return true, nil
}
