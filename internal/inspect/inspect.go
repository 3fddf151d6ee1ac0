// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

// Package inspect computes descriptive statistics over a snapshot of the
// three tables. It mutates nothing and writes no artifact; running it twice
// over the same snapshot yields the same report, at any pipeline point.
package inspect

import (
	"github.com/tomtom215/reelprep/internal/dataset"
	"github.com/tomtom215/reelprep/internal/logging"
)

// Report holds the quality statistics for one snapshot.
type Report struct {
	RatingRows int `json:"rating_rows"`
	ItemRows   int `json:"item_rows"`
	UserRows   int `json:"user_rows"`

	// Null counts are per table, summed across nullable columns.
	ItemNulls int `json:"item_nulls"`

	UniqueRatingUsers int `json:"unique_rating_users"`
	UniqueRatingItems int `json:"unique_rating_items"`

	RatingMin int `json:"rating_min"`
	RatingMax int `json:"rating_max"`

	DuplicateRatings int `json:"duplicate_ratings"`
	DuplicateItems   int `json:"duplicate_items"`
	DuplicateUsers   int `json:"duplicate_users"`
}

// Inspect builds a quality report over the given tables.
func Inspect(ratings []dataset.Rating, items []dataset.Item, users []dataset.User) Report {
	r := Report{
		RatingRows: len(ratings),
		ItemRows:   len(items),
		UserRows:   len(users),
	}

	seenUsers := make(map[int]struct{})
	seenItems := make(map[int]struct{})
	seenRows := make(map[ratingKey]struct{})
	for i, rt := range ratings {
		seenUsers[rt.UserID] = struct{}{}
		seenItems[rt.ItemID] = struct{}{}
		key := ratingKey{rt.UserID, rt.ItemID, rt.Rating, rt.RawTimestamp}
		if _, dup := seenRows[key]; dup {
			r.DuplicateRatings++
		}
		seenRows[key] = struct{}{}

		if i == 0 || rt.Rating < r.RatingMin {
			r.RatingMin = rt.Rating
		}
		if i == 0 || rt.Rating > r.RatingMax {
			r.RatingMax = rt.Rating
		}
	}
	r.UniqueRatingUsers = len(seenUsers)
	r.UniqueRatingItems = len(seenItems)

	seenItemIDs := make(map[int]struct{})
	for _, it := range items {
		if _, dup := seenItemIDs[it.ItemID]; dup {
			r.DuplicateItems++
		}
		seenItemIDs[it.ItemID] = struct{}{}

		if it.ReleaseDate == nil {
			r.ItemNulls++
		}
		if it.VideoReleaseDate == nil {
			r.ItemNulls++
		}
		if it.IMDbURL == nil {
			r.ItemNulls++
		}
	}

	seenUserIDs := make(map[int]struct{})
	for _, u := range users {
		if _, dup := seenUserIDs[u.UserID]; dup {
			r.DuplicateUsers++
		}
		seenUserIDs[u.UserID] = struct{}{}
	}

	return r
}

// Log emits the report as a structured log block.
func (r Report) Log() {
	logging.Info().
		Int("rating_rows", r.RatingRows).
		Int("item_rows", r.ItemRows).
		Int("user_rows", r.UserRows).
		Int("item_nulls", r.ItemNulls).
		Int("unique_users", r.UniqueRatingUsers).
		Int("unique_items", r.UniqueRatingItems).
		Int("rating_min", r.RatingMin).
		Int("rating_max", r.RatingMax).
		Int("duplicate_ratings", r.DuplicateRatings).
		Int("duplicate_items", r.DuplicateItems).
		Int("duplicate_users", r.DuplicateUsers).
		Msg("Data quality inspection")
}

type ratingKey struct {
	userID, itemID, rating int
	ts                     int64
}
