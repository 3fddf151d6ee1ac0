// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

// Package dataset defines the record types flowing through the pipeline and
// the pure per-record derivation functions (age bucketing, genre labels).
//
// All records are immutable snapshots: loaders create them, cleaners return
// new slices, and nothing mutates a record after its stage completes.
// Optional fields use pointers; nil means the source had no usable value.
package dataset

import "time"

// Rating is one row of the ratings source (tab-separated, no header).
type Rating struct {
	UserID int
	ItemID int
	Rating int

	// RawTimestamp is the epoch-seconds value as loaded.
	RawTimestamp int64

	// Timestamp is set by the ratings cleaner (UTC). Zero until cleaned.
	Timestamp time.Time
}

// Item is one row of the items source (pipe-separated, Latin-1, 24 columns).
type Item struct {
	ItemID      int
	Title       string
	ReleaseDate *time.Time

	// VideoReleaseDate and IMDbURL are carried for null accounting only;
	// neither participates in integration.
	VideoReleaseDate *string
	IMDbURL          *string

	// Flags holds the 19 binary genre flags in declaration order,
	// index 0 being the "unknown" flag.
	Flags [NumGenreFlags]int

	// ReleaseYear is derived from a trailing "(YYYY)" title suffix.
	ReleaseYear *int

	// Genres is the derived comma-joined label, "Unknown" if no flag is set.
	Genres string
}

// User is one row of the users source (pipe-separated, 5 columns).
type User struct {
	UserID     int
	Age        int
	Gender     string
	Occupation string
	ZipCode    string

	// AgeGroup is derived by the users cleaner.
	AgeGroup string
}

// IntegratedRow is a rating extended with item and user fields via left
// join. Pointer fields are nil when the join key had no match.
type IntegratedRow struct {
	UserID    int
	ItemID    int
	Rating    int
	Timestamp time.Time

	Title       *string
	ReleaseYear *int
	Genres      *string

	Age        *int
	Gender     *string
	Occupation *string
	AgeGroup   *string
}

// Triple is the minimal (user, item, rating) projection used for
// matrix-factorization training.
type Triple struct {
	UserID int
	ItemID int
	Rating int
}
