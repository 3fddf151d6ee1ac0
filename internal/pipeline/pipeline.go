// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

// Package pipeline runs the cleaning and integration stages end to end.
//
// The pipeline is a single synchronous pass holding all tables in memory:
// load, inspect, clean each table, left-join, pivot, persist. There is no
// retry policy anywhere; every stage is expected to succeed
// deterministically given valid input, and the first error aborts the run
// with nothing further written.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelprep/internal/clean"
	"github.com/tomtom215/reelprep/internal/config"
	"github.com/tomtom215/reelprep/internal/inspect"
	"github.com/tomtom215/reelprep/internal/integrate"
	"github.com/tomtom215/reelprep/internal/loader"
	"github.com/tomtom215/reelprep/internal/logging"
	"github.com/tomtom215/reelprep/internal/matrix"
	"github.com/tomtom215/reelprep/internal/persist"
)

// RunReport aggregates per-stage statistics for one pipeline run.
type RunReport struct {
	Quality inspect.Report `json:"quality"`

	RatingsClean clean.RatingsStats `json:"ratings_clean"`
	ItemsClean   clean.ItemsStats   `json:"items_clean"`
	UsersClean   clean.UsersStats   `json:"users_clean"`

	// DateParseFailures counts release dates recorded as null at load time.
	DateParseFailures int `json:"date_parse_failures"`

	IntegratedRows int `json:"integrated_rows"`

	DistinctUsers int     `json:"distinct_users"`
	DistinctItems int     `json:"distinct_items"`
	Triples       int     `json:"triples"`
	SparsityPct   float64 `json:"sparsity_pct"`

	// RatingDistribution maps rating value (1-5) to its count in the
	// triple projection.
	RatingDistribution map[int]int `json:"rating_distribution"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Duration returns the elapsed run time.
func (r *RunReport) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Run executes the whole pipeline. The context is honored by the optional
// DuckDB sink; the in-memory stages run to completion once started.
func Run(ctx context.Context, cfg *config.Config) (*RunReport, error) {
	report := &RunReport{StartTime: time.Now().UTC()}

	logging.Info().
		Str("ratings", cfg.Data.RatingsPath).
		Str("items", cfg.Data.ItemsPath).
		Str("users", cfg.Data.UsersPath).
		Str("output", cfg.Output.Dir).
		Msg("Starting cleaning and integration run")

	ratings, err := loader.LoadRatings(cfg.Data.RatingsPath)
	if err != nil {
		return nil, err
	}
	itemsRes, err := loader.LoadItems(cfg.Data.ItemsPath)
	if err != nil {
		return nil, err
	}
	users, err := loader.LoadUsers(cfg.Data.UsersPath)
	if err != nil {
		return nil, err
	}
	report.DateParseFailures = itemsRes.DateParseFailures

	report.Quality = inspect.Inspect(ratings, itemsRes.Items, users)
	report.Quality.Log()

	ratingsClean, ratingsStats := clean.Ratings(ratings)
	report.RatingsClean = ratingsStats

	itemsClean, itemsStats, err := clean.Items(itemsRes.Items)
	if err != nil {
		return nil, fmt.Errorf("clean items: %w", err)
	}
	report.ItemsClean = itemsStats

	usersClean, usersStats := clean.Users(users)
	report.UsersClean = usersStats

	integrated := integrate.Join(ratingsClean, itemsClean, usersClean)
	report.IntegratedRows = len(integrated)

	res := matrix.Build(integrated)
	report.DistinctUsers = len(res.Matrix.UserIDs)
	report.DistinctItems = len(res.Matrix.ItemIDs)
	report.Triples = len(res.Triples)
	report.SparsityPct = res.Sparsity()
	report.RatingDistribution = ratingDistribution(res)

	p := persist.New(cfg.Output.Dir)
	if err := p.WriteAll(integrated, res); err != nil {
		return nil, err
	}

	if cfg.Database.Enabled {
		sink, err := persist.OpenDuckDB(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		defer sink.Close() //nolint:errcheck // read-back not needed after Store
		if err := sink.Store(ctx, integrated, res.Triples); err != nil {
			return nil, err
		}
	}

	report.EndTime = time.Now().UTC()

	if cfg.Report.Enabled {
		if err := p.WriteReport(report); err != nil {
			return nil, err
		}
	}

	logSummary(report)
	return report, nil
}

// ratingDistribution counts triples per rating value.
func ratingDistribution(res *matrix.Result) map[int]int {
	dist := make(map[int]int)
	for _, t := range res.Triples {
		dist[t.Rating]++
	}
	return dist
}

// logSummary emits the final run summary block.
func logSummary(r *RunReport) {
	evt := logging.Info().
		Int("total_ratings", r.IntegratedRows).
		Int("unique_users", r.DistinctUsers).
		Int("unique_items", r.DistinctItems).
		Float64("sparsity_pct", r.SparsityPct).
		Dur("elapsed", r.Duration())
	for rating := clean.MinRating; rating <= clean.MaxRating; rating++ {
		evt = evt.Int(fmt.Sprintf("rating_%d", rating), r.RatingDistribution[rating])
	}
	evt.Msg("Run complete, data ready for training")
}
