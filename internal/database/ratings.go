// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/metrics"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/recommend"
)

// CreateUser inserts an account row. Used by the ingest path and tests.
func (db *DB) CreateUser(ctx context.Context, id int64, username string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username) VALUES (?, ?)`, id, username)
	if err != nil {
		return fmt.Errorf("insert user %d: %w", id, err)
	}
	return nil
}

// UserExists reports whether the account exists.
func (db *DB) UserExists(ctx context.Context, userID int64) (bool, error) {
	start := time.Now()
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, userID).Scan(&exists)
	metrics.RecordDBQuery("select", "users", time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("check user %d: %w", userID, err)
	}
	return exists, nil
}

// UpsertRating stores a user's rating of a movie. At most one rating exists
// per (user, movie) pair: a second submission updates the value in place.
// The movie's aggregate rating is recomputed in the same transaction.
func (db *DB) UpsertRating(ctx context.Context, userID, movieID int64, value float64) error {
	if value < 1 || value > 5 {
		return fmt.Errorf("%w: rating value %g outside [1, 5]", recommend.ErrInvalidArgument, value)
	}

	start := time.Now()
	err := db.upsertRating(ctx, userID, movieID, value)
	metrics.RecordDBQuery("upsert", "ratings", time.Since(start), err)
	return err
}

func (db *DB) upsertRating(ctx context.Context, userID, movieID int64, value float64) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO ratings (user_id, movie_id, value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, movie_id) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		userID, movieID, value, now, now)
	if err != nil {
		return fmt.Errorf("upsert rating (%d, %d): %w", userID, movieID, err)
	}

	// Keep the denormalized aggregate in sync with the rating rows.
	_, err = tx.ExecContext(ctx,
		`UPDATE movies SET
			avg_rating = (SELECT AVG(value) FROM ratings WHERE movie_id = ?),
			rating_count = (SELECT COUNT(*) FROM ratings WHERE movie_id = ?)
		 WHERE id = ?`,
		movieID, movieID, movieID)
	if err != nil {
		return fmt.Errorf("refresh aggregates for movie %d: %w", movieID, err)
	}

	return tx.Commit()
}

// GetUserRatings returns all ratings by one user.
func (db *DB) GetUserRatings(ctx context.Context, userID int64) ([]recommend.Rating, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, movie_id, value, created_at, updated_at
		 FROM ratings WHERE user_id = ? ORDER BY movie_id`, userID)
	metrics.RecordDBQuery("select", "ratings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("get ratings for user %d: %w", userID, err)
	}
	defer closeRows(rows)
	return collectRatings(rows)
}

// GetRatingsForMovies returns all ratings, by any user, for the given
// movies. Feeds the intersection-restricted correlation computation.
func (db *DB) GetRatingsForMovies(ctx context.Context, movieIDs []int64) ([]recommend.Rating, error) {
	if len(movieIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, len(movieIDs))
	for i, id := range movieIDs {
		ids[i] = id
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, movie_id, value, created_at, updated_at
		 FROM ratings WHERE movie_id IN (`+placeholders(len(ids))+`)
		 ORDER BY user_id, movie_id`, ids...)
	metrics.RecordDBQuery("select", "ratings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("get ratings for movies: %w", err)
	}
	defer closeRows(rows)
	return collectRatings(rows)
}

// ListRatingUserIDs returns the IDs of every user with at least one rating.
func (db *DB) ListRatingUserIDs(ctx context.Context) ([]int64, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT user_id FROM ratings ORDER BY user_id`)
	metrics.RecordDBQuery("select", "ratings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list rating users: %w", err)
	}
	defer closeRows(rows)

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return ids, nil
}

// RecordView appends a viewing-history event.
func (db *DB) RecordView(ctx context.Context, userID, movieID int64, viewedAt time.Time, duration time.Duration) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO view_events (id, user_id, movie_id, viewed_at, duration_seconds)
		 VALUES (?, ?, ?, ?, ?)`,
		uuid.New(), userID, movieID, viewedAt.UTC(), int64(duration.Seconds()))
	metrics.RecordDBQuery("insert", "view_events", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("record view (%d, %d): %w", userID, movieID, err)
	}
	return nil
}

// GetViewHistory returns the user's viewing-history events, newest first.
func (db *DB) GetViewHistory(ctx context.Context, userID int64) ([]recommend.ViewEvent, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT movie_id, viewed_at, duration_seconds
		 FROM view_events WHERE user_id = ? ORDER BY viewed_at DESC`, userID)
	metrics.RecordDBQuery("select", "view_events", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("get view history for user %d: %w", userID, err)
	}
	defer closeRows(rows)

	var events []recommend.ViewEvent
	for rows.Next() {
		var ev recommend.ViewEvent
		var seconds int64
		if err := rows.Scan(&ev.MovieID, &ev.Timestamp, &seconds); err != nil {
			return nil, fmt.Errorf("scan view event: %w", err)
		}
		ev.Duration = time.Duration(seconds) * time.Second
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate view events: %w", err)
	}
	return events, nil
}

// collectRatings drains a rating rows iterator.
func collectRatings(rows *sql.Rows) ([]recommend.Rating, error) {
	var ratings []recommend.Rating
	for rows.Next() {
		var r recommend.Rating
		if err := rows.Scan(&r.UserID, &r.MovieID, &r.Value, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}
