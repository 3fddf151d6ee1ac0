// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

// Package matrix pivots the integrated table into a dense user×item rating
// matrix and the flat triple projection used for factorization training.
package matrix

import (
	"sort"

	"github.com/tomtom215/reelprep/internal/dataset"
	"github.com/tomtom215/reelprep/internal/logging"
)

// Matrix is a dense user×item rating grid. Rows and columns are the
// distinct user and item IDs sorted ascending, so repeated runs over the
// same input produce identical artifacts. A cell holds the rating, or 0 as
// the no-rating sentinel (0 is never a valid rating value).
//
// Duplicate (user, item) pairs are not expected after cleaning; if present,
// the pivot is last-write-wins in integrated-row order.
type Matrix struct {
	UserIDs []int
	ItemIDs []int

	// Cells is row-major: Cells[r][c] is the rating of UserIDs[r] for
	// ItemIDs[c], 0 if absent.
	Cells [][]int

	userIndex map[int]int
	itemIndex map[int]int
}

// Result bundles the pivot outputs.
type Result struct {
	Matrix  *Matrix
	Triples []dataset.Triple
}

// Build pivots the integrated rows. The triple projection preserves
// integrated-row order unchanged.
func Build(rows []dataset.IntegratedRow) *Result {
	userSet := make(map[int]struct{})
	itemSet := make(map[int]struct{})
	triples := make([]dataset.Triple, 0, len(rows))
	for _, row := range rows {
		userSet[row.UserID] = struct{}{}
		itemSet[row.ItemID] = struct{}{}
		triples = append(triples, dataset.Triple{
			UserID: row.UserID,
			ItemID: row.ItemID,
			Rating: row.Rating,
		})
	}

	m := &Matrix{
		UserIDs:   sortedKeys(userSet),
		ItemIDs:   sortedKeys(itemSet),
		userIndex: make(map[int]int, len(userSet)),
		itemIndex: make(map[int]int, len(itemSet)),
	}
	for i, id := range m.UserIDs {
		m.userIndex[id] = i
	}
	for i, id := range m.ItemIDs {
		m.itemIndex[id] = i
	}

	m.Cells = make([][]int, len(m.UserIDs))
	for i := range m.Cells {
		m.Cells[i] = make([]int, len(m.ItemIDs))
	}
	for _, row := range rows {
		m.Cells[m.userIndex[row.UserID]][m.itemIndex[row.ItemID]] = row.Rating
	}

	res := &Result{Matrix: m, Triples: triples}
	logging.Info().
		Int("users", len(m.UserIDs)).
		Int("items", len(m.ItemIDs)).
		Int("triples", len(triples)).
		Float64("sparsity_pct", res.Sparsity()).
		Msg("Rating matrix built")
	return res
}

// Rating returns the matrix cell for (userID, itemID), 0 if either ID is
// unknown or the pair has no rating.
func (m *Matrix) Rating(userID, itemID int) int {
	r, ok := m.userIndex[userID]
	if !ok {
		return 0
	}
	c, ok := m.itemIndex[itemID]
	if !ok {
		return 0
	}
	return m.Cells[r][c]
}

// Sparsity returns the share of the dense user×item grid with no observed
// rating, as a percentage. An empty grid has zero sparsity.
func (r *Result) Sparsity() float64 {
	total := len(r.Matrix.UserIDs) * len(r.Matrix.ItemIDs)
	if total == 0 {
		return 0
	}
	return (1 - float64(len(r.Triples))/float64(total)) * 100
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
