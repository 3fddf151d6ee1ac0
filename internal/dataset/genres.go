// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

package dataset

import "strings"

// NumGenreFlags is the number of binary genre flag columns in the items
// source, including the leading "unknown" flag.
const NumGenreFlags = 19

// GenreNames lists the genre flag columns in source declaration order.
// Index 0 is the "unknown" flag column; it never contributes to derived
// genre labels.
var GenreNames = [NumGenreFlags]string{
	"unknown", "Action", "Adventure", "Animation", "Children's", "Comedy",
	"Crime", "Documentary", "Drama", "Fantasy", "Film-Noir", "Horror",
	"Musical", "Mystery", "Romance", "Sci-Fi", "Thriller", "War", "Western",
}

// UnknownGenres is the sentinel label for an item with no genre flag set.
// It is a derived string value, distinct from the "unknown" flag column.
const UnknownGenres = "Unknown"

// GenreLabel derives the comma-joined genre label for a set of flags.
// Names are emitted in declaration order, skipping the "unknown" flag.
// An item with no active flag yields UnknownGenres.
func GenreLabel(flags [NumGenreFlags]int) string {
	var names []string
	for i := 1; i < NumGenreFlags; i++ {
		if flags[i] == 1 {
			names = append(names, GenreNames[i])
		}
	}
	if len(names) == 0 {
		return UnknownGenres
	}
	return strings.Join(names, ", ")
}
