package state

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteSnapshotStore persists labeled snapshots of the entity state table
// in a single-file SQLite database.
//
// It is not a Store: per-tick state stays in a MemStore. The snapshot store
// is the save/restore backend a host uses for simulation save slots, crash
// recovery, or test fixtures:
//
//	snap, _ := state.NewSQLiteSnapshotStore("./sim.db")
//	defer snap.Close()
//
//	// Save
//	_ = snap.SaveSnapshot(ctx, "slot-1", mem.Snapshot())
//
//	// Restore
//	entries, err := snap.LoadSnapshot(ctx, "slot-1")
//	if err == nil {
//	    mem.Restore(entries)
//	}
//
// Designed for zero-setup local use; use MySQLSnapshotStore when snapshots
// must live in shared infrastructure. Use ":memory:" as the path for tests.
type SQLiteSnapshotStore struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
	path   string
}

// NewSQLiteSnapshotStore opens (creating if needed) a snapshot database at
// the given path and migrates its schema. WAL mode is enabled so concurrent
// readers do not block a writer.
func NewSQLiteSnapshotStore(path string) (*SQLiteSnapshotStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	s := &SQLiteSnapshotStore{db: db, path: path}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

func (s *SQLiteSnapshotStore) createTables(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entity_state_snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			node_id TEXT NOT NULL,
			value REAL NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(label, entity_id, node_id)
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	index := `
		CREATE INDEX IF NOT EXISTS idx_snapshots_label
		ON entity_state_snapshots(label)
	`
	_, err := s.db.ExecContext(ctx, index)
	return err
}

// SaveSnapshot stores all entries under the given label, replacing any
// snapshot previously saved with that label. The write is transactional: a
// failed save leaves an earlier snapshot with the same label intact.
func (s *SQLiteSnapshotStore) SaveSnapshot(ctx context.Context, label string, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("snapshot store is closed")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM entity_state_snapshots WHERE label = ?", label); err != nil {
		return fmt.Errorf("failed to clear snapshot %q: %w", label, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entity_state_snapshots (label, entity_id, node_id, value)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, label, e.Entity, e.Node, e.Value); err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the entries stored under the given label.
// Returns ErrNotFound when no snapshot with that label exists.
func (s *SQLiteSnapshotStore) LoadSnapshot(ctx context.Context, label string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("snapshot store is closed")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT entity_id, node_id, value
		FROM entity_state_snapshots
		WHERE label = ?
		ORDER BY id
	`, label)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot %q: %w", label, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Entity, &e.Node, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot %q: %w", label, err)
	}
	if entries == nil {
		return nil, ErrNotFound
	}
	return entries, nil
}

// DeleteSnapshot removes the snapshot with the given label.
// Returns ErrNotFound when no snapshot with that label exists.
func (s *SQLiteSnapshotStore) DeleteSnapshot(ctx context.Context, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("snapshot store is closed")
	}

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM entity_state_snapshots WHERE label = ?", label)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", label, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Labels returns all snapshot labels, sorted.
func (s *SQLiteSnapshotStore) Labels(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("snapshot store is closed")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT label FROM entity_state_snapshots ORDER BY label
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// Close releases the database connection. Safe to call more than once.
func (s *SQLiteSnapshotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
