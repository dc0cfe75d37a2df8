// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/movierec/config.yaml",
	"/etc/movierec/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "MRE_CONFIG_PATH"

// envPrefix namespaces this service's environment variables.
const envPrefix = "MRE_"

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults from the struct
//  2. Optional YAML config file
//  3. MRE_-prefixed environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks struct tags and the engine configuration's own rules.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
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

// recommendSections are the nested sections under "recommend" that the env
// transform must split on.
var recommendSections = []string{
	"similarity", "personalized", "neighbors", "popularity",
	"fallback", "cache", "limits",
}

// envTransform maps environment variable names to koanf config paths.
//
// Examples:
//   - MRE_SERVER_PORT -> server.port
//   - MRE_DATABASE_MAX_MEMORY -> database.max_memory
//   - MRE_RECOMMEND_NEIGHBORS_TOP_K -> recommend.neighbors.top_k
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	// Two-level split for engine subsections.
	if rest, ok := strings.CutPrefix(key, "recommend_"); ok {
		for _, section := range recommendSections {
			if leaf, ok := strings.CutPrefix(rest, section+"_"); ok {
				return "recommend." + section + "." + leaf
			}
		}
		return "recommend." + rest
	}

	// Single-level split for top-level sections: the first underscore
	// separates the section from the key.
	return strings.Replace(key, "_", ".", 1)
}
