// Package store persists ranked word-frequency runs to MySQL. It is only
// wired up when a DSN is configured; the analyzer works entirely in-process
// without it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/humblenginr/hn_wordfreq/analysis"
)

type Store struct {
	db *sql.DB
}

// Open connects to MySQL with the given DSN and ensures the schema exists.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS word_frequencies (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    run_at TIMESTAMP NOT NULL,
    word_rank INT NOT NULL,
    word VARCHAR(64) NOT NULL,
    occurrences INT NOT NULL,
    UNIQUE KEY uniq_run_word (run_at, word),
    KEY idx_word (word)
)`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// RunEntry is one persisted ranked word from one run.
type RunEntry struct {
	RunAt time.Time
	Rank  int
	Word  string
	Count int
}

// SaveRun inserts one run's ranked entries under the run timestamp.
// Re-saving the same run timestamp overwrites counts in place.
func (s *Store) SaveRun(ctx context.Context, entries []analysis.Entry, when time.Time) error {
	for i, e := range entries {
		_, err := s.db.ExecContext(ctx, `INSERT INTO word_frequencies
    (run_at, word_rank, word, occurrences) VALUES(?,?,?,?)
    ON DUPLICATE KEY UPDATE
      word_rank=VALUES(word_rank),
      occurrences=VALUES(occurrences)`,
			when, i+1, e.Word, e.Count)
		if err != nil {
			return fmt.Errorf("insert %q: %w", e.Word, err)
		}
	}
	return nil
}

// WordHistory returns every persisted count for one word, oldest run first.
func (s *Store) WordHistory(ctx context.Context, word string) ([]RunEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_at, word_rank, word, occurrences
    FROM word_frequencies WHERE word=? ORDER BY run_at`, word)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// LatestRun returns the ranked entries of the most recent persisted run.
func (s *Store) LatestRun(ctx context.Context) ([]RunEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_at, word_rank, word, occurrences
    FROM word_frequencies
    WHERE run_at = (SELECT MAX(run_at) FROM word_frequencies)
    ORDER BY word_rank`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]RunEntry, error) {
	var out []RunEntry
	for rows.Next() {
		var e RunEntry
		if err := rows.Scan(&e.RunAt, &e.Rank, &e.Word, &e.Count); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
