// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelprep/internal/logging"
)

// ReportFile is the optional JSON run report artifact.
const ReportFile = "report.json"

// WriteReport marshals the run report into report.json in the output
// directory, overwriting any previous report.
func (p *Persister) WriteReport(report any) error {
	if err := os.MkdirAll(p.dir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}

	path := filepath.Join(p.dir, ReportFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logging.Info().Str("path", path).Msg("Run report written")
	return nil
}
