// Package memory provides the SQLite-backed GraphStore implementation.
package memory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same query code serves both direct and transactional access.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// SQLiteStore implements task.GraphStore on a SQLite database.
type SQLiteStore struct {
	db *sql.DB // nil on transactional views
	q  dbtx
}

// NewSQLiteStore opens (or creates) the graph database under basePath.
// Pass ":memory:" for an ephemeral store, which tests rely on.
func NewSQLiteStore(basePath string) (*SQLiteStore, error) {
	var dsn string
	if basePath == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(basePath, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		// The _pragma DSN option applies foreign_keys to every pooled
		// connection, unlike a one-off Exec.
		dsn = filepath.Join(basePath, "graph.db") + "?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if basePath == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	s := &SQLiteStore{db: db, q: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// initSchema creates the tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS task_dependencies (
		task_id TEXT NOT NULL,       -- the dependent
		depends_on TEXT NOT NULL,    -- its prerequisite
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(task_id, depends_on),
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
		FOREIGN KEY (depends_on) REFERENCES tasks(id)
	);

	CREATE INDEX IF NOT EXISTS idx_deps_task ON task_dependencies(task_id);
	CREATE INDEX IF NOT EXISTS idx_deps_depends_on ON task_dependencies(depends_on);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// Close releases the database handle. Closing a transactional view is a no-op.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
