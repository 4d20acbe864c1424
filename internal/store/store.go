// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists a reconciled manifest to SQLite so later
// invocations can query classification counts and unmatched rows without
// re-reading the source CSVs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/manifest-recon/internal/manifest"
	"github.com/pdiddy/manifest-recon/pkg/types"
)

// Store manages the reconciled-manifest SQLite database.
type Store struct {
	db *sql.DB
}

// New opens or creates the database at cfg.DBPath, creating the schema and
// any missing parent directories.
func New(cfg types.StoreConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("store: db path is empty")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS rows (
			ord INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			ticket TEXT NOT NULL,
			match INTEGER,
			fields TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rows_match ON rows(match)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// matchValue maps a Match onto the nullable integer column: 0 for A, 1 for
// B, NULL for unmatched, mirroring the CSV encoding.
func matchValue(m types.Match) any {
	switch m {
	case types.MatchA:
		return 0
	case types.MatchB:
		return 1
	default:
		return nil
	}
}

// Save replaces the stored manifest with t and its classifications in one
// transaction. The original row position is kept as the primary key so
// reads come back in input order.
func (s *Store) Save(ctx context.Context, t *manifest.Table, matches []types.Match) error {
	if len(matches) != t.Len() {
		return fmt.Errorf("match count %d does not cover %d rows", len(matches), t.Len())
	}

	header, err := json.Marshal(t.Columns)
	if err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rows`); err != nil {
		return fmt.Errorf("clearing rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('columns', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, string(header)); err != nil {
		return fmt.Errorf("storing header: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rows (ord, name, ticket, match, fields) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		fields, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encoding row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			i, t.Name(i), t.Ticket(i), matchValue(matches[i]), string(fields)); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Stats returns per-classification counts for the stored manifest.
func (s *Store) Stats(ctx context.Context) (types.Summary, error) {
	var sum types.Summary

	rows, err := s.db.QueryContext(ctx,
		`SELECT match, COUNT(*) FROM rows GROUP BY match`)
	if err != nil {
		return sum, fmt.Errorf("querying counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var match sql.NullInt64
		var n int
		if err := rows.Scan(&match, &n); err != nil {
			return sum, fmt.Errorf("scanning count: %w", err)
		}
		sum.Rows += n
		switch {
		case !match.Valid:
			sum.Unmatched = n
		case match.Int64 == 0:
			sum.MatchedA = n
		case match.Int64 == 1:
			sum.MatchedB = n
		}
	}
	if err := rows.Err(); err != nil {
		return sum, fmt.Errorf("iterating counts: %w", err)
	}

	sum.UnmatchedNames, err = s.Unmatched(ctx)
	if err != nil {
		return sum, err
	}
	return sum, nil
}

// Unmatched returns the names of unclassified rows in original row order.
func (s *Store) Unmatched(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM rows WHERE match IS NULL ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("querying unmatched: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating unmatched: %w", err)
	}
	return names, nil
}
