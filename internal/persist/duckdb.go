// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

package persist

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB database/sql driver

	"github.com/tomtom215/reelprep/internal/dataset"
	"github.com/tomtom215/reelprep/internal/logging"
)

// DuckDBSink loads the integrated table and triples into a DuckDB file so
// downstream training can query them instead of re-parsing CSV. The sink is
// optional; the CSV artifacts remain the canonical outputs.
type DuckDBSink struct {
	db   *sql.DB
	path string
}

// OpenDuckDB opens (creating if needed) the DuckDB database at path.
func OpenDuckDB(path string) (*DuckDBSink, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", path, err)
	}
	// Single-writer batch load; no pool needed.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close() //nolint:errcheck,gosec // ping error takes precedence
		return nil, fmt.Errorf("ping duckdb %s: %w", path, err)
	}
	return &DuckDBSink{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *DuckDBSink) Close() error {
	return s.db.Close()
}

// Store replaces the ratings and triples tables with the given rows. The
// load runs in one transaction: an interrupted run leaves the previous
// tables intact, matching the whole-run-rerun recovery model.
func (s *DuckDBSink) Store(ctx context.Context, rows []dataset.IntegratedRow, triples []dataset.Triple) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin duckdb load: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	ddl := []string{
		`DROP TABLE IF EXISTS ratings_integrated`,
		`CREATE TABLE ratings_integrated (
			user_id INTEGER NOT NULL,
			item_id INTEGER NOT NULL,
			rating INTEGER NOT NULL,
			rated_at TIMESTAMP,
			movie_title VARCHAR,
			release_year INTEGER,
			genres VARCHAR,
			age INTEGER,
			gender VARCHAR,
			occupation VARCHAR,
			age_group VARCHAR
		)`,
		`DROP TABLE IF EXISTS rating_triples`,
		`CREATE TABLE rating_triples (
			user_id INTEGER NOT NULL,
			item_id INTEGER NOT NULL,
			rating INTEGER NOT NULL
		)`,
	}
	for _, stmt := range ddl {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("duckdb ddl: %w", err)
		}
	}

	insRow, err := tx.PrepareContext(ctx,
		`INSERT INTO ratings_integrated VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare integrated insert: %w", err)
	}
	defer insRow.Close() //nolint:errcheck // statement cleanup

	for _, r := range rows {
		_, err := insRow.ExecContext(ctx,
			r.UserID, r.ItemID, r.Rating, r.Timestamp,
			nullString(r.Title), nullInt(r.ReleaseYear), nullString(r.Genres),
			nullInt(r.Age), nullString(r.Gender), nullString(r.Occupation),
			nullString(r.AgeGroup))
		if err != nil {
			return fmt.Errorf("insert integrated row: %w", err)
		}
	}

	insTriple, err := tx.PrepareContext(ctx,
		`INSERT INTO rating_triples VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare triple insert: %w", err)
	}
	defer insTriple.Close() //nolint:errcheck // statement cleanup

	for _, t := range triples {
		if _, err := insTriple.ExecContext(ctx, t.UserID, t.ItemID, t.Rating); err != nil {
			return fmt.Errorf("insert triple: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit duckdb load: %w", err)
	}

	logging.Info().
		Str("path", s.path).
		Int("integrated_rows", len(rows)).
		Int("triple_rows", len(triples)).
		Msg("DuckDB sink loaded")
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
