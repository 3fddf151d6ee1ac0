// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

package clean

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/reelprep/internal/dataset"
	"github.com/tomtom215/reelprep/internal/logging"
)

// titleYear matches a trailing "(YYYY)" suffix on a trimmed title.
var titleYear = regexp.MustCompile(`\((\d{4})\)$`)

// ItemsStats reports what the items cleaner removed or failed to derive.
type ItemsStats struct {
	DuplicatesRemoved int `json:"duplicates_removed"`
	MissingYears      int `json:"missing_years"`
}

// Items deduplicates by item_id (first occurrence in line order), trims
// titles, derives the release year from a trailing "(YYYY)" title suffix,
// validates genre flags as 0/1, and derives the genres label.
//
// A genre flag outside {0, 1} is a fatal error: the source schema declares
// binary flags and anything else means the file is not what it claims.
// A title without a year suffix derives a nil year and is only counted.
func Items(raw []dataset.Item) ([]dataset.Item, ItemsStats, error) {
	var stats ItemsStats

	seen := make(map[int]struct{}, len(raw))
	cleaned := make([]dataset.Item, 0, len(raw))
	for _, it := range raw {
		if _, dup := seen[it.ItemID]; dup {
			stats.DuplicatesRemoved++
			continue
		}
		seen[it.ItemID] = struct{}{}

		for i, flag := range it.Flags {
			if flag != 0 && flag != 1 {
				return nil, stats, fmt.Errorf(
					"item %d: genre flag %q = %d, want 0 or 1",
					it.ItemID, dataset.GenreNames[i], flag)
			}
		}

		it.Title = strings.TrimSpace(it.Title)
		if m := titleYear.FindStringSubmatch(it.Title); m != nil {
			year, err := strconv.Atoi(m[1])
			if err == nil {
				it.ReleaseYear = &year
			}
		}
		if it.ReleaseYear == nil {
			stats.MissingYears++
		}

		it.Genres = dataset.GenreLabel(it.Flags)
		cleaned = append(cleaned, it)
	}

	logging.Info().
		Int("rows", len(cleaned)).
		Int("duplicates_removed", stats.DuplicatesRemoved).
		Int("missing_years", stats.MissingYears).
		Msg("Items cleaned")
	return cleaned, stats, nil
}
