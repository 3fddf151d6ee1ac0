// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

// Package clean holds the three independent per-table normalization passes.
//
// Each cleaner takes a raw slice and returns a new cleaned slice plus a
// stats struct with the counts of what was removed or derived. Cleaners
// never reorder rows: "first occurrence" dedup is defined against source
// line order, which the loaders preserve. Cleaning an already-clean table
// returns it unchanged (dedup and filtering are idempotent).
package clean

import (
	"time"

	"github.com/tomtom215/reelprep/internal/dataset"
	"github.com/tomtom215/reelprep/internal/logging"
)

// Rating value bounds; rows outside the range are dropped, not clamped.
const (
	MinRating = 1
	MaxRating = 5
)

// RatingsStats reports what the ratings cleaner removed.
type RatingsStats struct {
	DuplicatesRemoved int `json:"duplicates_removed"`
	OutOfRangeDropped int `json:"out_of_range_dropped"`
}

type ratingKey struct {
	userID, itemID, rating int
	ts                     int64
}

// Ratings deduplicates by full-row equality, drops ratings outside
// [MinRating, MaxRating], and converts epoch-seconds timestamps to UTC
// instants. The order is fixed: dedup, then range filter, then conversion,
// so the dropped-row count is measured on deduplicated rows.
func Ratings(raw []dataset.Rating) ([]dataset.Rating, RatingsStats) {
	var stats RatingsStats

	seen := make(map[ratingKey]struct{}, len(raw))
	deduped := make([]dataset.Rating, 0, len(raw))
	for _, r := range raw {
		key := ratingKey{r.UserID, r.ItemID, r.Rating, r.RawTimestamp}
		if _, dup := seen[key]; dup {
			stats.DuplicatesRemoved++
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, r)
	}

	cleaned := make([]dataset.Rating, 0, len(deduped))
	for _, r := range deduped {
		if r.Rating < MinRating || r.Rating > MaxRating {
			stats.OutOfRangeDropped++
			logging.Debug().
				Int("user_id", r.UserID).
				Int("item_id", r.ItemID).
				Int("rating", r.Rating).
				Msg("Dropping out-of-range rating")
			continue
		}
		r.Timestamp = time.Unix(r.RawTimestamp, 0).UTC()
		cleaned = append(cleaned, r)
	}

	logging.Info().
		Int("rows", len(cleaned)).
		Int("duplicates_removed", stats.DuplicatesRemoved).
		Int("out_of_range_dropped", stats.OutOfRangeDropped).
		Msg("Ratings cleaned")
	return cleaned, stats
}
