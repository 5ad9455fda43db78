package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLCorpus loads rows from a MySQL table into memory, mirroring the
// teacher codebase's MySQL connection pooling choices (pool size, idle
// timeout) even though here the connection only ever reads.
type MySQLCorpus struct {
	db *sql.DB
}

// OpenMySQLCorpus opens dsn (e.g. "user:pass@tcp(localhost:3306)/corpus")
// and verifies connectivity before returning.
func OpenMySQLCorpus(dsn string) (*MySQLCorpus, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("corpus: failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("corpus: failed to ping MySQL: %w", err)
	}
	return &MySQLCorpus{db: db}, nil
}

func (c *MySQLCorpus) DB() *sql.DB { return c.db }

func (c *MySQLCorpus) Close() error {
	return c.db.Close()
}
