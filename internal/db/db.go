package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

// MemoryPath selects a process-lifetime in-memory store.
const MemoryPath = ":memory:"

// memorySeq distinguishes in-memory stores opened within one process so
// that independent OpenDB calls never share state.
var memorySeq atomic.Int64

// memoryDSN returns a DSN for a named shared-cache in-memory database.
// Naming the database makes every pooled connection see the same store, so
// closing an individual connection does not drop the data; OpenDB keeps idle
// connections around so at least one stays open for the process lifetime.
func memoryDSN() string {
	return fmt.Sprintf("file:ganttproject%d?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		memorySeq.Add(1))
}

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses a named in-memory database that survives
// per-operation connection churn for the process lifetime.
// Foreign key enforcement is enabled on every pooled connection.
func OpenDB(path string) (*sql.DB, error) {
	var dsn string
	if path == MemoryPath {
		dsn = memoryDSN()
	} else {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	}

	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Keep at least one idle connection so a shared in-memory store is
	// never torn down between operations.
	database.SetMaxIdleConns(2)

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return database, nil
}
