// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/reelprep/internal/config"
	"github.com/tomtom215/reelprep/internal/dataset"
	"github.com/tomtom215/reelprep/internal/loader"
	"github.com/tomtom215/reelprep/internal/persist"
)

// itemLine builds a 24-column pipe-separated item row.
func itemLine(id, title, date string, genres ...string) string {
	fields := []string{id, title, date, "", ""}
	for _, name := range dataset.GenreNames {
		flag := "0"
		for _, g := range genres {
			if g == name {
				flag = "1"
			}
		}
		fields = append(fields, flag)
	}
	return strings.Join(fields, "|")
}

func writeFixtures(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	ratings := strings.Join([]string{
		"1\t10\t4\t881250949",
		"1\t10\t4\t881250949", // exact duplicate
		"1\t20\t3\t881250950",
		"2\t10\t9\t881250951", // out of range
		"2\t20\t5\t881250952",
	}, "\n") + "\n"

	items := strings.Join([]string{
		itemLine("10", "Toy Story (1995)", "01-Jan-1995", "Animation", "Comedy"),
		itemLine("20", "Nostalghia", "bad-date"),
	}, "\n") + "\n"

	users := strings.Join([]string{
		"1|24|m| Technician |85711",
		"2|17|F|student|94043",
	}, "\n") + "\n"

	cfg := &config.Config{}
	cfg.Data.RatingsPath = filepath.Join(dir, "u.data")
	cfg.Data.ItemsPath = filepath.Join(dir, "u.item")
	cfg.Data.UsersPath = filepath.Join(dir, "u.user")
	cfg.Output.Dir = filepath.Join(dir, "out")

	for path, data := range map[string]string{
		cfg.Data.RatingsPath: ratings,
		cfg.Data.ItemsPath:   items,
		cfg.Data.UsersPath:   users,
	} {
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return cfg
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestRunEndToEnd(t *testing.T) {
	cfg := writeFixtures(t)
	cfg.Report.Enabled = true

	report, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Quality.RatingRows != 5 {
		t.Errorf("Quality.RatingRows = %d, want 5", report.Quality.RatingRows)
	}
	if report.RatingsClean.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", report.RatingsClean.DuplicatesRemoved)
	}
	if report.RatingsClean.OutOfRangeDropped != 1 {
		t.Errorf("OutOfRangeDropped = %d, want 1", report.RatingsClean.OutOfRangeDropped)
	}
	if report.DateParseFailures != 1 {
		t.Errorf("DateParseFailures = %d, want 1", report.DateParseFailures)
	}
	if report.ItemsClean.MissingYears != 1 {
		t.Errorf("MissingYears = %d, want 1", report.ItemsClean.MissingYears)
	}
	// 5 raw - 1 dup - 1 out of range.
	if report.IntegratedRows != 3 {
		t.Errorf("IntegratedRows = %d, want 3", report.IntegratedRows)
	}
	if report.DistinctUsers != 2 || report.DistinctItems != 2 {
		t.Errorf("distinct = %d users, %d items, want 2/2",
			report.DistinctUsers, report.DistinctItems)
	}
	// 3 triples over a 2x2 grid.
	if want := 25.0; report.SparsityPct != want {
		t.Errorf("SparsityPct = %f, want %f", report.SparsityPct, want)
	}
	if report.RatingDistribution[4] != 1 || report.RatingDistribution[3] != 1 || report.RatingDistribution[5] != 1 {
		t.Errorf("RatingDistribution = %v", report.RatingDistribution)
	}

	// All four artifacts exist.
	for _, name := range []string{
		persist.IntegratedFile, persist.TriplesFile, persist.MatrixFile, persist.ReportFile,
	} {
		if _, err := os.Stat(filepath.Join(cfg.Output.Dir, name)); err != nil {
			t.Errorf("artifact %s missing: %v", name, err)
		}
	}

	integrated := readCSV(t, filepath.Join(cfg.Output.Dir, persist.IntegratedFile))
	if len(integrated) != 4 {
		t.Fatalf("integrated rows = %d, want header + 3", len(integrated))
	}
	// First data row: user 1, item 10, joined both sides.
	first := integrated[1]
	if first[4] != "Toy Story (1995)" || first[6] != "Animation, Comedy" {
		t.Errorf("joined item fields = %v", first)
	}
	if first[8] != "M" || first[9] != "technician" || first[10] != "18-24" {
		t.Errorf("joined user fields = %v", first)
	}

	m := readCSV(t, filepath.Join(cfg.Output.Dir, persist.MatrixFile))
	want := [][]string{
		{"user_id", "10", "20"},
		{"1", "4", "3"},
		{"2", "0", "5"},
	}
	if len(m) != 3 {
		t.Fatalf("matrix rows = %d, want 3", len(m))
	}
	for i := range want {
		for j := range want[i] {
			if m[i][j] != want[i][j] {
				t.Errorf("matrix[%d][%d] = %q, want %q", i, j, m[i][j], want[i][j])
			}
		}
	}
}

func TestRunMissingSourceAborts(t *testing.T) {
	cfg := writeFixtures(t)
	if err := os.Remove(cfg.Data.ItemsPath); err != nil {
		t.Fatal(err)
	}

	_, err := Run(context.Background(), cfg)
	var le *loader.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Run() error = %v, want *loader.LoadError", err)
	}

	// Fatal load failure: no partial artifacts.
	if _, statErr := os.Stat(cfg.Output.Dir); !os.IsNotExist(statErr) {
		t.Error("output dir created despite load failure")
	}
}

func TestRunIdempotentCounts(t *testing.T) {
	cfg := writeFixtures(t)

	first, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	second, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if first.IntegratedRows != second.IntegratedRows ||
		first.SparsityPct != second.SparsityPct ||
		first.Triples != second.Triples {
		t.Errorf("runs disagree: %+v vs %+v", first, second)
	}
}
