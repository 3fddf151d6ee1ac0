// Reelprep - Ratings Dataset Cleaning and Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelprep

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in priority
// order. The first file found wins.
var DefaultConfigPaths = []string{
	"reelprep.yaml",
	"reelprep.yml",
	"/etc/reelprep/config.yaml",
	"/etc/reelprep/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "REELPREP_CONFIG"

// Load loads configuration using Koanf v2 with layered sources:
//
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file (if present)
//  3. Environment variables: highest priority
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
//
// Examples:
//   - RATINGS_PATH -> data.ratings_path
//   - OUTPUT_DIR   -> output.dir
//   - DUCKDB_PATH  -> database.path
//   - LOG_LEVEL    -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		"ratings_path": "data.ratings_path",
		"items_path":   "data.items_path",
		"users_path":   "data.users_path",

		"output_dir": "output.dir",

		"duckdb_enabled": "database.enabled",
		"duckdb_path":    "database.path",

		"report_enabled": "report.enabled",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if path, ok := envMappings[key]; ok {
		return path
	}
	// Unknown variables are ignored rather than mapped blindly; a stray
	// HOME or PATH must not collide with config keys.
	return ""
}
