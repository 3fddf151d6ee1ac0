// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

// Package persist writes the pipeline artifacts to the output directory.
//
// Three CSV artifacts are always written, overwriting existing files:
//
//   - final_data_cleaned.csv: the integrated table
//   - svd_data.csv: the (user_id, item_id, rating) triples
//   - user_item_matrix.csv: the dense matrix, user_id as the first column
//
// There is no partial-write recovery: an interrupted run leaves an
// inconsistent artifact set, and re-running the whole pipeline is the only
// recovery path. An optional DuckDB sink and JSON run report live beside
// the CSV writers.
package persist

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tomtom215/reelprep/internal/dataset"
	"github.com/tomtom215/reelprep/internal/logging"
	"github.com/tomtom215/reelprep/internal/matrix"
)

// Artifact file names, fixed by contract with downstream training jobs.
const (
	IntegratedFile = "final_data_cleaned.csv"
	TriplesFile    = "svd_data.csv"
	MatrixFile     = "user_item_matrix.csv"
)

// timestampLayout is the format used for the integrated table's timestamp
// column.
const timestampLayout = "2006-01-02 15:04:05"

var integratedHeader = []string{
	"user_id", "item_id", "rating", "timestamp",
	"movie_title", "release_year", "genres",
	"age", "gender", "occupation", "age_group",
}

// Persister writes artifacts into a single output directory.
type Persister struct {
	dir string
}

// New returns a Persister rooted at dir. The directory is created on the
// first write.
func New(dir string) *Persister {
	return &Persister{dir: dir}
}

// WriteAll writes the three CSV artifacts.
func (p *Persister) WriteAll(rows []dataset.IntegratedRow, res *matrix.Result) error {
	if err := os.MkdirAll(p.dir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := p.WriteIntegrated(rows); err != nil {
		return err
	}
	if err := p.WriteTriples(res.Triples); err != nil {
		return err
	}
	return p.WriteMatrix(res.Matrix)
}

// WriteIntegrated writes the integrated table with a header row. Nil fields
// serialize as empty strings.
func (p *Persister) WriteIntegrated(rows []dataset.IntegratedRow) error {
	return p.writeCSV(IntegratedFile, func(w *csv.Writer) error {
		if err := w.Write(integratedHeader); err != nil {
			return err
		}
		for _, r := range rows {
			record := []string{
				strconv.Itoa(r.UserID),
				strconv.Itoa(r.ItemID),
				strconv.Itoa(r.Rating),
				formatTimestamp(r.Timestamp),
				stringOrEmpty(r.Title),
				intOrEmpty(r.ReleaseYear),
				stringOrEmpty(r.Genres),
				intOrEmpty(r.Age),
				stringOrEmpty(r.Gender),
				stringOrEmpty(r.Occupation),
				stringOrEmpty(r.AgeGroup),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteTriples writes the flat triple projection with a header row.
func (p *Persister) WriteTriples(triples []dataset.Triple) error {
	return p.writeCSV(TriplesFile, func(w *csv.Writer) error {
		if err := w.Write([]string{"user_id", "item_id", "rating"}); err != nil {
			return err
		}
		for _, t := range triples {
			record := []string{
				strconv.Itoa(t.UserID),
				strconv.Itoa(t.ItemID),
				strconv.Itoa(t.Rating),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteMatrix writes the dense matrix. The header row is "user_id" followed
// by the item IDs; each data row starts with the user ID (the preserved row
// index).
func (p *Persister) WriteMatrix(m *matrix.Matrix) error {
	return p.writeCSV(MatrixFile, func(w *csv.Writer) error {
		header := make([]string, 0, len(m.ItemIDs)+1)
		header = append(header, "user_id")
		for _, id := range m.ItemIDs {
			header = append(header, strconv.Itoa(id))
		}
		if err := w.Write(header); err != nil {
			return err
		}

		record := make([]string, len(m.ItemIDs)+1)
		for r, userID := range m.UserIDs {
			record[0] = strconv.Itoa(userID)
			for c, cell := range m.Cells[r] {
				record[c+1] = strconv.Itoa(cell)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCSV creates (truncating) the named artifact and streams rows into it.
func (p *Persister) writeCSV(name string, fill func(*csv.Writer) error) error {
	path := filepath.Join(p.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close() //nolint:errcheck,gosec // write error takes precedence
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close() //nolint:errcheck,gosec // flush error takes precedence
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	logging.Info().Str("path", path).Msg("Artifact written")
	return nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
