package corpus

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteCorpus loads rows from a SQLite table into memory. It is a
// thin, read-mostly wrapper around database/sql: open once, call Load as
// many times as needed, Close when done.
//
// SQLiteCorpus opens its connection in WAL mode, the same setup the
// teacher codebase uses for its own SQLite persistence backend — read
// concurrency matters here too, since a training job may load several
// tables (or reload a shuffled view) from the same file.
type SQLiteCorpus struct {
	db *sql.DB
}

// OpenSQLiteCorpus opens path (including ":memory:") and configures it for
// single-writer, concurrent-reader access.
func OpenSQLiteCorpus(path string) (*SQLiteCorpus, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("corpus: failed to open SQLite connection: %w", err)
	}
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
			return nil, fmt.Errorf("corpus: failed to apply %q: %w", pragma, err)
		}
	}
	return &SQLiteCorpus{db: db}, nil
}

// DB exposes the underlying connection so callers can use corpus.Load[T]
// against it (Go methods cannot take their own type parameters).
func (c *SQLiteCorpus) DB() *sql.DB { return c.db }

func (c *SQLiteCorpus) Close() error {
	return c.db.Close()
}
