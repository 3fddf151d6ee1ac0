// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

// Package config holds the explicit pipeline configuration.
//
// Every input path and the output directory are caller-supplied; nothing is
// inferred from the working directory. Configuration is loaded via Koanf v2
// with layered sources (highest priority wins): environment variables, an
// optional YAML config file, then built-in defaults. Struct validation uses
// go-playground/validator v10.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config is the complete pipeline configuration.
type Config struct {
	Data     DataConfig     `koanf:"data"`
	Output   OutputConfig   `koanf:"output"`
	Database DatabaseConfig `koanf:"database"`
	Report   ReportConfig   `koanf:"report"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DataConfig locates the three raw source files.
type DataConfig struct {
	// RatingsPath is the tab-separated ratings file (u.data layout).
	RatingsPath string `koanf:"ratings_path" validate:"required"`

	// ItemsPath is the pipe-separated, Latin-1 items file (u.item layout).
	ItemsPath string `koanf:"items_path" validate:"required"`

	// UsersPath is the pipe-separated users file (u.user layout).
	UsersPath string `koanf:"users_path" validate:"required"`
}

// OutputConfig locates the artifact directory.
type OutputConfig struct {
	// Dir receives the three CSV artifacts, overwriting existing files.
	Dir string `koanf:"dir" validate:"required"`
}

// DatabaseConfig controls the optional DuckDB sink.
type DatabaseConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path" validate:"required_if=Enabled true"`
}

// ReportConfig controls the optional JSON run report.
type ReportConfig struct {
	Enabled bool `koanf:"enabled"`
}

// LoggingConfig mirrors the logging package configuration.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Source paths
// have no defaults: the caller must supply them explicitly.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			RatingsPath: "",
			ItemsPath:   "",
			UsersPath:   "",
		},
		Output: OutputConfig{
			Dir: "",
		},
		Database: DatabaseConfig{
			Enabled: false,
			Path:    "",
		},
		Report: ReportConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("field %s failed %q validation", first.Namespace(), first.Tag())
		}
		return err
	}
	return nil
}
