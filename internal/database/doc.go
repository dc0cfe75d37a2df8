// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

// Package database implements the engine's signal store on DuckDB: the
// movie catalog with denormalized aggregates, ratings, viewing history,
// and per-day trending buckets. The trending bucket write is a single
// INSERT ... ON CONFLICT DO UPDATE statement, which is the atomic
// increment-or-create the engine's concurrency contract requires.
//
// BreakerStore decorates the store with a sony/gobreaker circuit breaker
// for the request path.
package database
