package state

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLSnapshotStore persists labeled snapshots of the entity state table
// in MySQL/MariaDB.
//
// The relational variant of SQLiteSnapshotStore, for deployments where
// simulation saves must live in shared infrastructure (multiple hosts, an
// audit trail, backups managed by the database).
//
// Security warning: never hardcode credentials in source. Read the DSN from
// the environment:
//
//	dsn := os.Getenv("MYSQL_DSN")
//	if dsn == "" {
//	    log.Fatal("MYSQL_DSN environment variable not set")
//	}
//	snap, err := state.NewMySQLSnapshotStore(dsn)
type MySQLSnapshotStore struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// NewMySQLSnapshotStore opens a connection pool to the given DSN, verifies
// connectivity, and migrates the schema.
//
// DSN format: [username[:password]@][protocol[(address)]]/dbname[?params]
// e.g. "user:pass@tcp(localhost:3306)/simulation".
func NewMySQLSnapshotStore(dsn string) (*MySQLSnapshotStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	s := &MySQLSnapshotStore{db: db}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

func (s *MySQLSnapshotStore) createTables(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entity_state_snapshots (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			label VARCHAR(255) NOT NULL,
			entity_id VARCHAR(255) NOT NULL,
			node_id VARCHAR(255) NOT NULL,
			value DOUBLE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_label (label),
			UNIQUE KEY unique_snapshot_entry (label, entity_id, node_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveSnapshot stores all entries under the given label, replacing any
// snapshot previously saved with that label. Transactional.
func (s *MySQLSnapshotStore) SaveSnapshot(ctx context.Context, label string, entries []Entry) error {
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
func (s *MySQLSnapshotStore) LoadSnapshot(ctx context.Context, label string) ([]Entry, error) {
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
func (s *MySQLSnapshotStore) DeleteSnapshot(ctx context.Context, label string) error {
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

// Close releases the connection pool. Safe to call more than once.
func (s *MySQLSnapshotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
