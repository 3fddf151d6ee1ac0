// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

// Package loader reads the three raw source files into typed record slices.
//
// Source formats (MovieLens 100K layout):
//
//   - ratings: tab-separated, 4 columns (user_id, item_id, rating, timestamp),
//     no header, UTF-8.
//   - items: pipe-separated, 24 columns, no header, Latin-1 encoded. The
//     release-date column carries a known non-tabular artifact and is
//     sanitized before parsing; unparseable dates load as nil and are
//     counted, never failed.
//   - users: pipe-separated, 5 columns (user_id, age, gender, occupation,
//     zip_code), no header, UTF-8.
//
// Loaders preserve source line order; downstream "first occurrence" dedup
// rules are defined against that order. A missing file or a column-count
// mismatch is a *LoadError and aborts the run; any other malformed value
// is a plain error and also aborts.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/tomtom215/reelprep/internal/dataset"
	"github.com/tomtom215/reelprep/internal/logging"
)

// Column counts of the fixed source schemas.
const (
	ratingsColumns = 4
	itemsColumns   = 24
	usersColumns   = 5
)

// LoadError reports a fatal load failure: a missing source file or a row
// that does not match the fixed column schema.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ItemsResult holds loaded items plus the count of release dates that could
// not be parsed (recorded as nil, not failed).
type ItemsResult struct {
	Items             []dataset.Item
	DateParseFailures int
}

// readRows opens path and returns all delimited rows. latin1 selects a
// Latin-1 transform reader for sources declared with that encoding.
func readRows(path string, comma rune, columns int, latin1 bool) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close() //nolint:errcheck // read-only file

	var src io.Reader = f
	if latin1 {
		src = charmap.ISO8859_1.NewDecoder().Reader(f)
	}

	r := csv.NewReader(src)
	r.Comma = comma
	r.FieldsPerRecord = columns
	// Source files are not quoted CSV; titles may contain stray quotes.
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, &LoadError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// LoadRatings reads the tab-separated ratings source.
func LoadRatings(path string) ([]dataset.Rating, error) {
	rows, err := readRows(path, '\t', ratingsColumns, false)
	if err != nil {
		return nil, err
	}

	ratings := make([]dataset.Rating, 0, len(rows))
	for n, row := range rows {
		userID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: user_id: %w", path, n+1, err)
		}
		itemID, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: item_id: %w", path, n+1, err)
		}
		rating, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: rating: %w", path, n+1, err)
		}
		ts, err := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: timestamp: %w", path, n+1, err)
		}
		ratings = append(ratings, dataset.Rating{
			UserID:       userID,
			ItemID:       itemID,
			Rating:       rating,
			RawTimestamp: ts,
		})
	}

	logging.Info().Int("rows", len(ratings)).Str("path", path).Msg("Ratings loaded")
	return ratings, nil
}

// LoadItems reads the pipe-separated Latin-1 items source. Release dates
// that fail to parse after sanitization become nil and are counted in the
// result; they never fail the load.
func LoadItems(path string) (*ItemsResult, error) {
	rows, err := readRows(path, '|', itemsColumns, true)
	if err != nil {
		return nil, err
	}

	res := &ItemsResult{Items: make([]dataset.Item, 0, len(rows))}
	for n, row := range rows {
		itemID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: item_id: %w", path, n+1, err)
		}

		item := dataset.Item{
			ItemID:           itemID,
			Title:            row[1],
			VideoReleaseDate: nullable(row[3]),
			IMDbURL:          nullable(row[4]),
		}

		if raw := nullable(row[2]); raw != nil {
			date, ok := ParseReleaseDate(*raw)
			if ok {
				item.ReleaseDate = &date
			} else {
				res.DateParseFailures++
				logging.Debug().
					Int("item_id", itemID).
					Str("value", *raw).
					Msg("Unparseable release date, recording null")
			}
		}

		for i := 0; i < dataset.NumGenreFlags; i++ {
			flag, err := strconv.Atoi(strings.TrimSpace(row[5+i]))
			if err != nil {
				return nil, fmt.Errorf("%s line %d: genre flag %q: %w",
					path, n+1, dataset.GenreNames[i], err)
			}
			item.Flags[i] = flag
		}

		res.Items = append(res.Items, item)
	}

	logging.Info().
		Int("rows", len(res.Items)).
		Int("unparseable_dates", res.DateParseFailures).
		Str("path", path).
		Msg("Items loaded")
	return res, nil
}

// LoadUsers reads the pipe-separated users source.
func LoadUsers(path string) ([]dataset.User, error) {
	rows, err := readRows(path, '|', usersColumns, false)
	if err != nil {
		return nil, err
	}

	users := make([]dataset.User, 0, len(rows))
	for n, row := range rows {
		userID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: user_id: %w", path, n+1, err)
		}
		age, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: age: %w", path, n+1, err)
		}
		users = append(users, dataset.User{
			UserID:     userID,
			Age:        age,
			Gender:     row[2],
			Occupation: row[3],
			ZipCode:    row[4],
		})
	}

	logging.Info().Int("rows", len(users)).Str("path", path).Msg("Users loaded")
	return users, nil
}

// nullable maps the source null markers ("", blank, "None") to nil.
func nullable(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "None" {
		return nil
	}
	return &s
}
