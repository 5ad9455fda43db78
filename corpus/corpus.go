// Package corpus loads a finite dataset from a SQL table into memory so it
// can feed a seq.NativeSource, seq.ChunkedSource, or
// seq.InfinitePermutationSource. It is a caller-side leaf adapter: it has
// no checkpoint protocol of its own, because by the time seq sees the
// data it is already a materialized []T slice.
package corpus

import (
	"database/sql"
	"fmt"
)

// RowScanner decodes one database row into an item of type T. Implementations
// typically call rows.Scan with pointers into a local struct and return it.
type RowScanner[T any] func(rows *sql.Rows) (T, error)

// DB is satisfied by *SQLiteCorpus and *MySQLCorpus: something that can
// hand back the *sql.DB connection Load runs queries against.
type DB interface {
	DB() *sql.DB
}

// Load runs query (with optional args for '?' / driver placeholders)
// against corpus's connection and decodes every row with scan into a
// materialized slice, in whatever order the query returns them — callers
// wanting a specific order should say so with ORDER BY. The result is
// ready to hand to seq.NewNativeSource, seq.NewChunkedSource, or
// seq.NewInfinitePermutationSource.
func Load[T any](corpus DB, query string, scan RowScanner[T], args ...interface{}) ([]T, error) {
	return loadQuery(corpus.DB(), query, scan, args...)
}

func loadQuery[T any](db *sql.DB, query string, scan RowScanner[T], args ...interface{}) ([]T, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("corpus: query failed: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("corpus: row scan failed: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("corpus: row iteration failed: %w", err)
	}
	return out, nil
}
