// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

package clean

import (
	"strings"

	"github.com/tomtom215/reelprep/internal/dataset"
	"github.com/tomtom215/reelprep/internal/logging"
)

// UsersStats reports what the users cleaner removed.
type UsersStats struct {
	DuplicatesRemoved int `json:"duplicates_removed"`
}

// Users deduplicates by user_id (first occurrence in line order),
// normalizes occupation to trimmed lowercase and gender to uppercase, and
// derives the age group bucket.
func Users(raw []dataset.User) ([]dataset.User, UsersStats) {
	var stats UsersStats

	seen := make(map[int]struct{}, len(raw))
	cleaned := make([]dataset.User, 0, len(raw))
	for _, u := range raw {
		if _, dup := seen[u.UserID]; dup {
			stats.DuplicatesRemoved++
			continue
		}
		seen[u.UserID] = struct{}{}

		u.Occupation = strings.ToLower(strings.TrimSpace(u.Occupation))
		u.Gender = strings.ToUpper(u.Gender)
		u.AgeGroup = dataset.AgeGroup(u.Age)
		cleaned = append(cleaned, u)
	}

	logging.Info().
		Int("rows", len(cleaned)).
		Int("duplicates_removed", stats.DuplicatesRemoved).
		Msg("Users cleaned")
	return cleaned, stats
}
