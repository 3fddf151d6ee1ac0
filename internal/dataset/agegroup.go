// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

package dataset

// AgeGroup buckets a numeric age into a fixed categorical range.
// Buckets are left-closed, right-open: age 18 falls in "18-24",
// age 25 in "25-34", and so on.
func AgeGroup(age int) string {
	switch {
	case age < 18:
		return "Under 18"
	case age < 25:
		return "18-24"
	case age < 35:
		return "25-34"
	case age < 50:
		return "35-49"
	case age < 65:
		return "50-64"
	default:
		return "65+"
	}
}
