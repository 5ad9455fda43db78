package corpus

import (
	"os"
	"testing"
)

// TestMySQLCorpusLoad exercises OpenMySQLCorpus and Load against a real
// server. Set TEST_MYSQL_DSN to a reachable MySQL instance to run it;
// otherwise it's skipped, matching how the teacher codebase gates its own
// MySQL integration tests on an environment DSN.
func TestMySQLCorpusLoad(t *testing.T) {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("set TEST_MYSQL_DSN to run MySQL corpus integration tests")
	}

	c, err := OpenMySQLCorpus(dsn)
	if err != nil {
		t.Fatalf("OpenMySQLCorpus: %v", err)
	}
	defer c.Close()

	if _, err := c.DB().Exec(`CREATE TABLE IF NOT EXISTS seqpipe_corpus_examples (id BIGINT PRIMARY KEY, text VARCHAR(255) NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	defer func() { _, _ = c.DB().Exec(`DROP TABLE seqpipe_corpus_examples`) }()

	if _, err := c.DB().Exec(`INSERT INTO seqpipe_corpus_examples (id, text) VALUES (1, 'a'), (2, 'b')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	items, err := Load(c, `SELECT id, text FROM seqpipe_corpus_examples ORDER BY id`, scanExample)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
}
