// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

// Package integrate left-joins the cleaned tables into one wide table.
//
// Ratings drive the join: every rating row survives exactly once, in its
// input order. Items contribute (title, release_year, genres) on item_id;
// users contribute (age, gender, occupation, age_group) on user_id. An
// unmatched key leaves the contributed fields nil. Because the cleaners
// dedupe items and users by key, the output row count always equals the
// input rating count.
package integrate

import (
	"github.com/tomtom215/reelprep/internal/dataset"
	"github.com/tomtom215/reelprep/internal/logging"
)

// Join builds the integrated table from the three cleaned tables.
func Join(ratings []dataset.Rating, items []dataset.Item, users []dataset.User) []dataset.IntegratedRow {
	itemsByID := make(map[int]*dataset.Item, len(items))
	for i := range items {
		if _, ok := itemsByID[items[i].ItemID]; !ok {
			itemsByID[items[i].ItemID] = &items[i]
		}
	}
	usersByID := make(map[int]*dataset.User, len(users))
	for i := range users {
		if _, ok := usersByID[users[i].UserID]; !ok {
			usersByID[users[i].UserID] = &users[i]
		}
	}

	var unmatchedItems, unmatchedUsers int
	rows := make([]dataset.IntegratedRow, 0, len(ratings))
	for _, r := range ratings {
		row := dataset.IntegratedRow{
			UserID:    r.UserID,
			ItemID:    r.ItemID,
			Rating:    r.Rating,
			Timestamp: r.Timestamp,
		}

		if it, ok := itemsByID[r.ItemID]; ok {
			title := it.Title
			genres := it.Genres
			row.Title = &title
			row.ReleaseYear = it.ReleaseYear
			row.Genres = &genres
		} else {
			unmatchedItems++
		}

		if u, ok := usersByID[r.UserID]; ok {
			age := u.Age
			gender := u.Gender
			occupation := u.Occupation
			ageGroup := u.AgeGroup
			row.Age = &age
			row.Gender = &gender
			row.Occupation = &occupation
			row.AgeGroup = &ageGroup
		} else {
			unmatchedUsers++
		}

		rows = append(rows, row)
	}

	logging.Info().
		Int("rows", len(rows)).
		Int("unmatched_items", unmatchedItems).
		Int("unmatched_users", unmatchedUsers).
		Msg("Tables integrated")
	return rows
}
