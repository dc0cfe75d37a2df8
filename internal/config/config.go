// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package config

import (
	"time"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/recommend"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and MRE_-prefixed environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for every setting
//  2. Config File: optional YAML file (config.yaml) for persistent settings
//  3. Environment Variables: MRE_SECTION_KEY overrides any setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Database  DatabaseConfig   `koanf:"database"`
	API       APIConfig        `koanf:"api"`
	Logging   LoggingConfig    `koanf:"logging"`
	Recommend recommend.Config `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file location. ":memory:" opens an in-memory
	// database, used by tests.
	Path string `koanf:"path" validate:"required"`

	// MaxMemory caps DuckDB's memory usage, e.g. "1GB".
	MaxMemory string `koanf:"max_memory" validate:"required"`

	// Threads is the number of DuckDB threads (0 = use NumCPU).
	Threads int `koanf:"threads" validate:"min=0"`

	// MaxOpenConns bounds the sql.DB connection pool (0 = use NumCPU).
	MaxOpenConns int `koanf:"max_open_conns" validate:"min=0"`
}

// APIConfig holds request-layer settings.
type APIConfig struct {
	// RateLimitReqs is the per-client request budget on the write path.
	RateLimitReqs int `koanf:"rate_limit_reqs" validate:"min=1"`

	// RateLimitWindow is the window the budget applies to.
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"min=1s"`

	// RequestTimeout bounds a single request's processing time.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"min=1s"`

	// CORSAllowedOrigins lists browser origins allowed to call the API.
	// Empty by default: cross-origin requests are denied until origins
	// are configured explicitly.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:         "/data/movierec.duckdb",
			MaxMemory:    "1GB",
			Threads:      0,
			MaxOpenConns: 0,
		},
		API: APIConfig{
			RateLimitReqs:      100,
			RateLimitWindow:    time.Minute,
			RequestTimeout:     30 * time.Second,
			CORSAllowedOrigins: []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: *recommend.DefaultConfig(),
	}
}
