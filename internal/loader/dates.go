// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

package loader

import (
	"regexp"
	"strings"
	"time"
)

// dateJunk matches every character the items source is known to leak into
// the release-date column besides the date itself.
var dateJunk = regexp.MustCompile(`[^0-9A-Za-z-]`)

// Release dates are day-before-month, e.g. "01-Jan-1995".
var releaseDateLayouts = []string{"02-Jan-2006", "2-Jan-2006"}

// SanitizeDate strips characters outside [0-9A-Za-z-] from a raw
// release-date value.
func SanitizeDate(raw string) string {
	return dateJunk.ReplaceAllString(strings.TrimSpace(raw), "")
}

// ParseReleaseDate sanitizes and parses a raw release-date value using
// day-before-month ordering. The second return is false when the value is
// unparseable; callers record a null and continue.
func ParseReleaseDate(raw string) (time.Time, bool) {
	s := SanitizeDate(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
