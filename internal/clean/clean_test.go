// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

package clean

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/reelprep/internal/dataset"
)

func TestRatings(t *testing.T) {
	raw := []dataset.Rating{
		{UserID: 1, ItemID: 10, Rating: 4, RawTimestamp: 881250949},
		{UserID: 1, ItemID: 10, Rating: 4, RawTimestamp: 881250949}, // exact dup
		{UserID: 1, ItemID: 10, Rating: 5, RawTimestamp: 881250949}, // differs in rating, kept
		{UserID: 2, ItemID: 10, Rating: 7, RawTimestamp: 881250950}, // out of range
		{UserID: 3, ItemID: 11, Rating: 0, RawTimestamp: 881250951}, // out of range
		{UserID: 4, ItemID: 12, Rating: 1, RawTimestamp: 881250952},
	}

	cleaned, stats := Ratings(raw)

	if stats.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", stats.DuplicatesRemoved)
	}
	if stats.OutOfRangeDropped != 2 {
		t.Errorf("OutOfRangeDropped = %d, want 2", stats.OutOfRangeDropped)
	}
	if len(cleaned) != 3 {
		t.Fatalf("len = %d, want 3", len(cleaned))
	}
	for _, r := range cleaned {
		if r.Rating < MinRating || r.Rating > MaxRating {
			t.Errorf("cleaned rating %d out of range", r.Rating)
		}
	}

	want := time.Unix(881250949, 0).UTC()
	if !cleaned[0].Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", cleaned[0].Timestamp, want)
	}
}

func TestRatingsIdempotent(t *testing.T) {
	raw := []dataset.Rating{
		{UserID: 1, ItemID: 10, Rating: 4, RawTimestamp: 100},
		{UserID: 1, ItemID: 10, Rating: 4, RawTimestamp: 100},
		{UserID: 2, ItemID: 11, Rating: 2, RawTimestamp: 200},
	}

	once, _ := Ratings(raw)
	twice, stats := Ratings(once)

	if stats.DuplicatesRemoved != 0 || stats.OutOfRangeDropped != 0 {
		t.Errorf("second pass removed rows: %+v", stats)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed rows:\n%+v\n%+v", once, twice)
	}
}

func TestRatingsPreservesOrder(t *testing.T) {
	raw := []dataset.Rating{
		{UserID: 3, ItemID: 1, Rating: 1, RawTimestamp: 3},
		{UserID: 1, ItemID: 1, Rating: 2, RawTimestamp: 1},
		{UserID: 2, ItemID: 1, Rating: 3, RawTimestamp: 2},
	}
	cleaned, _ := Ratings(raw)
	for i, want := range []int{3, 1, 2} {
		if cleaned[i].UserID != want {
			t.Fatalf("row %d user = %d, want %d (line order)", i, cleaned[i].UserID, want)
		}
	}
}

func TestItems(t *testing.T) {
	action := [dataset.NumGenreFlags]int{}
	action[1] = 1

	raw := []dataset.Item{
		{ItemID: 1, Title: "  Toy Story (1995)  ", Flags: action},
		{ItemID: 1, Title: "Toy Story dup"},
		{ItemID: 2, Title: "unknown, year missing"},
	}

	cleaned, stats, err := Items(raw)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if stats.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", stats.DuplicatesRemoved)
	}
	if stats.MissingYears != 1 {
		t.Errorf("MissingYears = %d, want 1", stats.MissingYears)
	}
	if len(cleaned) != 2 {
		t.Fatalf("len = %d, want 2", len(cleaned))
	}

	first := cleaned[0]
	if first.Title != "Toy Story (1995)" {
		t.Errorf("Title = %q, not trimmed", first.Title)
	}
	if first.ReleaseYear == nil || *first.ReleaseYear != 1995 {
		t.Errorf("ReleaseYear = %v, want 1995", first.ReleaseYear)
	}
	if first.Genres != "Action" {
		t.Errorf("Genres = %q, want Action", first.Genres)
	}

	second := cleaned[1]
	if second.ReleaseYear != nil {
		t.Errorf("ReleaseYear = %v, want nil", *second.ReleaseYear)
	}
	if second.Genres != dataset.UnknownGenres {
		t.Errorf("Genres = %q, want %q", second.Genres, dataset.UnknownGenres)
	}
}

func TestItemsKeepsFirstOccurrence(t *testing.T) {
	raw := []dataset.Item{
		{ItemID: 1, Title: "First (1990)"},
		{ItemID: 1, Title: "Second (2000)"},
	}
	cleaned, _, err := Items(raw)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(cleaned) != 1 || cleaned[0].Title != "First (1990)" {
		t.Errorf("kept %+v, want first occurrence", cleaned)
	}
}

func TestItemsYearMidTitleNotExtracted(t *testing.T) {
	raw := []dataset.Item{{ItemID: 1, Title: "2001: A Space Odyssey"}}
	cleaned, stats, err := Items(raw)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if cleaned[0].ReleaseYear != nil {
		t.Errorf("ReleaseYear = %v, want nil: only a trailing (YYYY) counts", *cleaned[0].ReleaseYear)
	}
	if stats.MissingYears != 1 {
		t.Errorf("MissingYears = %d, want 1", stats.MissingYears)
	}
}

func TestItemsInvalidFlag(t *testing.T) {
	bad := [dataset.NumGenreFlags]int{}
	bad[2] = 3

	_, _, err := Items([]dataset.Item{{ItemID: 1, Title: "Bad", Flags: bad}})
	if err == nil {
		t.Fatal("Items() error = nil, want flag validation error")
	}
}

func TestItemsIdempotent(t *testing.T) {
	raw := []dataset.Item{{ItemID: 1, Title: "A (1999)"}, {ItemID: 2, Title: "B (2000)"}}
	once, _, err := Items(raw)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	twice, stats, err := Items(once)
	if err != nil {
		t.Fatalf("Items() second pass error = %v", err)
	}
	if stats.DuplicatesRemoved != 0 {
		t.Errorf("second pass removed %d rows", stats.DuplicatesRemoved)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed rows")
	}
}

func TestUsers(t *testing.T) {
	raw := []dataset.User{
		{UserID: 1, Age: 24, Gender: "m", Occupation: " Technician "},
		{UserID: 1, Age: 99, Gender: "f", Occupation: "dup"},
		{UserID: 2, Age: 17, Gender: "F", Occupation: "STUDENT"},
	}

	cleaned, stats := Users(raw)

	if stats.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", stats.DuplicatesRemoved)
	}
	if len(cleaned) != 2 {
		t.Fatalf("len = %d, want 2", len(cleaned))
	}

	first := cleaned[0]
	if first.Gender != "M" {
		t.Errorf("Gender = %q, want M", first.Gender)
	}
	if first.Occupation != "technician" {
		t.Errorf("Occupation = %q, want technician", first.Occupation)
	}
	if first.AgeGroup != "18-24" {
		t.Errorf("AgeGroup = %q, want 18-24", first.AgeGroup)
	}
	if cleaned[1].AgeGroup != "Under 18" {
		t.Errorf("AgeGroup = %q, want Under 18", cleaned[1].AgeGroup)
	}
}

func TestUsersIdempotent(t *testing.T) {
	raw := []dataset.User{
		{UserID: 1, Age: 30, Gender: "M", Occupation: "writer"},
		{UserID: 1, Age: 30, Gender: "M", Occupation: "writer"},
	}
	once, _ := Users(raw)
	twice, stats := Users(once)
	if stats.DuplicatesRemoved != 0 {
		t.Errorf("second pass removed %d rows", stats.DuplicatesRemoved)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed rows")
	}
}
