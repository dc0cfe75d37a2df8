// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

/*
schema.go - Schema Management

Tables:
  - movies: catalog records with denormalized aggregate counters
    (avg_rating, rating_count, view_count, review_count, popularity)
  - movie_genres, movie_cast: per-movie attribute rows
  - users: account existence checks
  - ratings: one row per (user, movie); re-rating updates in place
  - view_events: viewing history fed by an external ingest path
  - trending_buckets: per-day action aggregates keyed by
    (movie_id, period, date_bucket), written via atomic upsert

All columns are defined in the initial CREATE TABLE statements: single
source of truth, no migrations to run at startup.

Index Strategy:
  - ratings by movie for the collaborative correlation query
  - view_events by user for history reads
  - trending_buckets by (period, date_bucket) for window sums
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createSchema creates all tables and indexes if missing.
func (db *DB) createSchema() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range schemaQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// schemaQueries returns the table and index creation statements.
func schemaQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS movies (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			director TEXT,
			release_date DATE NOT NULL,
			avg_rating DOUBLE NOT NULL DEFAULT 0,
			rating_count INTEGER NOT NULL DEFAULT 0,
			view_count INTEGER NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0,
			popularity DOUBLE NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS movie_genres (
			movie_id BIGINT NOT NULL,
			genre TEXT NOT NULL,
			PRIMARY KEY (movie_id, genre)
		)`,

		`CREATE TABLE IF NOT EXISTS movie_cast (
			movie_id BIGINT NOT NULL,
			actor TEXT NOT NULL,
			role TEXT,
			cast_order INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (movie_id, actor)
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS ratings (
			user_id BIGINT NOT NULL,
			movie_id BIGINT NOT NULL,
			value DOUBLE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, movie_id)
		)`,

		`CREATE TABLE IF NOT EXISTS view_events (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL,
			movie_id BIGINT NOT NULL,
			viewed_at TIMESTAMP NOT NULL,
			duration_seconds BIGINT NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS trending_buckets (
			movie_id BIGINT NOT NULL,
			period TEXT NOT NULL,
			date_bucket DATE NOT NULL,
			score DOUBLE NOT NULL DEFAULT 0,
			view_count INTEGER NOT NULL DEFAULT 0,
			rating_count INTEGER NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0,
			share_count INTEGER NOT NULL DEFAULT 0,
			favorite_count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (movie_id, period, date_bucket)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_ratings_movie ON ratings (movie_id)`,
		`CREATE INDEX IF NOT EXISTS idx_view_events_user ON view_events (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_trending_window ON trending_buckets (period, date_bucket)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_active ON movies (active)`,
	}
}
