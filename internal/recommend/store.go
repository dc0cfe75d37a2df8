// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"context"
	"time"
)

// Note: This package depends only on internal/metrics (which imports no
// internal package itself). The Store interface is the signal-store
// boundary and is implemented by the database package without creating
// circular imports.

// Store is the signal-store interface consumed by the engine. All reads
// are safe for unbounded concurrency; IncrementTrendingBucket must be a
// single atomic increment-or-create so concurrent writers for the same
// (movie, period, day) key never lose updates.
type Store interface {
	// GetMovie returns one movie by ID, or ErrNotFound.
	GetMovie(ctx context.Context, id int64) (*Movie, error)

	// ListActiveMovies returns all active movies with genres and cast.
	ListActiveMovies(ctx context.Context) ([]Movie, error)

	// ListNewestMovies returns active movies sorted by creation time
	// descending, plus the total active count.
	ListNewestMovies(ctx context.Context, limit, offset int) ([]Movie, int, error)

	// ListTopRatedMovies returns active movies with at least
	// minRatingCount ratings sorted by aggregate rating descending,
	// plus the total matching count.
	ListTopRatedMovies(ctx context.Context, minRatingCount, limit, offset int) ([]Movie, int, error)

	// UserExists reports whether the user account exists.
	UserExists(ctx context.Context, userID int64) (bool, error)

	// GetUserRatings returns all ratings by one user.
	GetUserRatings(ctx context.Context, userID int64) ([]Rating, error)

	// GetRatingsForMovies returns all ratings, by any user, for the
	// given movies.
	GetRatingsForMovies(ctx context.Context, movieIDs []int64) ([]Rating, error)

	// ListRatingUserIDs returns the IDs of every user with at least one
	// rating.
	ListRatingUserIDs(ctx context.Context) ([]int64, error)

	// GetViewHistory returns the user's viewing-history events. The
	// backing data source is external and may be empty.
	GetViewHistory(ctx context.Context, userID int64) ([]ViewEvent, error)

	// IncrementTrendingBucket atomically upserts the bucket keyed by
	// (movieID, period, day): adds scoreDelta to the cumulative score
	// and increments the counter for kind by one.
	IncrementTrendingBucket(ctx context.Context, movieID int64, period Period, day time.Time, scoreDelta float64, kind ActionKind) error

	// QueryTrendingTotals sums bucket scores grouped by movie for
	// buckets of the given period whose date falls in [from, to].
	QueryTrendingTotals(ctx context.Context, period Period, from, to time.Time) ([]TrendingTotal, error)

	// IncrementMovieCounter bumps the movie-level counter that mirrors
	// the action kind (views for view, reviews for review). Kinds with
	// no movie-level counter are a no-op.
	IncrementMovieCounter(ctx context.Context, movieID int64, kind ActionKind) error

	// UpdateMoviePopularity writes the derived popularity score.
	UpdateMoviePopularity(ctx context.Context, movieID int64, value float64) error
}
