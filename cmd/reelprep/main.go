// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

// Package main is the entry point for the reelprep batch pipeline.
//
// Reelprep ingests the three MovieLens-100K-style flat files (ratings,
// items, users), cleans each table, left-joins them into one denormalized
// table, derives a dense user×item rating matrix, and writes the artifacts
// a factorization trainer consumes.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, an optional YAML config file
// (reelprep.yaml, or REELPREP_CONFIG), then built-in defaults. All paths
// are explicit; nothing is inferred from the working directory.
//
//	export RATINGS_PATH=/data/ml-100k/u.data
//	export ITEMS_PATH=/data/ml-100k/u.item
//	export USERS_PATH=/data/ml-100k/u.user
//	export OUTPUT_DIR=/data/ml-100k/cleaned
//	./reelprep
//
// Optional sinks:
//
//	export DUCKDB_ENABLED=true DUCKDB_PATH=/data/reelprep.duckdb
//	export REPORT_ENABLED=true
//
// # Exit Status
//
// 0 on success; 1 on any failure. A missing source file or a schema
// mismatch aborts before anything is written.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/tomtom215/reelprep/internal/config"
	"github.com/tomtom215/reelprep/internal/loader"
	"github.com/tomtom215/reelprep/internal/logging"
	"github.com/tomtom215/reelprep/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Configuration error")
		return 1
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if _, err := pipeline.Run(context.Background(), cfg); err != nil {
		var le *loader.LoadError
		if errors.As(err, &le) {
			logging.Error().Err(err).Msg("Fatal load failure, no output written")
		} else {
			logging.Error().Err(err).Msg("Pipeline failed")
		}
		return 1
	}
	return 0
}
