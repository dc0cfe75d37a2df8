// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

// Package config loads layered application configuration: built-in
// defaults, an optional YAML file, and MRE_-prefixed environment
// variables, in increasing precedence. Validation runs at load time so a
// misconfigured process fails fast at startup.
package config
