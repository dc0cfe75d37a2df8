// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/logging"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/metrics"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/recommend"
)

// BreakerStore decorates a signal store with a circuit breaker so a
// persistently failing database surfaces as fast ErrDependency responses
// instead of piling up slow queries. NotFound and InvalidArgument results
// count as successes: they prove the store answered.
type BreakerStore struct {
	inner recommend.Store
	cb    *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore wraps a store with circuit breaker protection.
func NewBreakerStore(inner recommend.Store) *BreakerStore {
	settings := gobreaker.Settings{
		Name:        "signal-store",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, recommend.ErrNotFound) ||
				errors.Is(err, recommend.ErrInvalidArgument)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				metrics.DBBreakerState.Set(1)
			} else {
				metrics.DBBreakerState.Set(0)
			}
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("store circuit breaker state changed")
		},
	}
	return &BreakerStore{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[any](settings),
	}
}

// State returns the breaker state for health reporting.
func (s *BreakerStore) State() string {
	return s.cb.State().String()
}

// run executes fn through the breaker, mapping open-circuit rejections to
// the engine's dependency sentinel.
func (s *BreakerStore) run(fn func() (any, error)) (any, error) {
	v, err := s.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: signal store unavailable: %v", recommend.ErrDependency, err)
	}
	return v, err
}

func (s *BreakerStore) GetMovie(ctx context.Context, id int64) (*recommend.Movie, error) {
	v, err := s.run(func() (any, error) { return s.inner.GetMovie(ctx, id) })
	if err != nil {
		return nil, err
	}
	return v.(*recommend.Movie), nil
}

func (s *BreakerStore) ListActiveMovies(ctx context.Context) ([]recommend.Movie, error) {
	v, err := s.run(func() (any, error) { return s.inner.ListActiveMovies(ctx) })
	if err != nil {
		return nil, err
	}
	return v.([]recommend.Movie), nil
}

func (s *BreakerStore) ListNewestMovies(ctx context.Context, limit, offset int) ([]recommend.Movie, int, error) {
	type page struct {
		movies []recommend.Movie
		total  int
	}
	v, err := s.run(func() (any, error) {
		movies, total, err := s.inner.ListNewestMovies(ctx, limit, offset)
		return page{movies, total}, err
	})
	if err != nil {
		return nil, 0, err
	}
	p := v.(page)
	return p.movies, p.total, nil
}

func (s *BreakerStore) ListTopRatedMovies(ctx context.Context, minRatingCount, limit, offset int) ([]recommend.Movie, int, error) {
	type page struct {
		movies []recommend.Movie
		total  int
	}
	v, err := s.run(func() (any, error) {
		movies, total, err := s.inner.ListTopRatedMovies(ctx, minRatingCount, limit, offset)
		return page{movies, total}, err
	})
	if err != nil {
		return nil, 0, err
	}
	p := v.(page)
	return p.movies, p.total, nil
}

func (s *BreakerStore) UserExists(ctx context.Context, userID int64) (bool, error) {
	v, err := s.run(func() (any, error) { return s.inner.UserExists(ctx, userID) })
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (s *BreakerStore) GetUserRatings(ctx context.Context, userID int64) ([]recommend.Rating, error) {
	v, err := s.run(func() (any, error) { return s.inner.GetUserRatings(ctx, userID) })
	if err != nil {
		return nil, err
	}
	return v.([]recommend.Rating), nil
}

func (s *BreakerStore) GetRatingsForMovies(ctx context.Context, movieIDs []int64) ([]recommend.Rating, error) {
	v, err := s.run(func() (any, error) { return s.inner.GetRatingsForMovies(ctx, movieIDs) })
	if err != nil {
		return nil, err
	}
	return v.([]recommend.Rating), nil
}

func (s *BreakerStore) ListRatingUserIDs(ctx context.Context) ([]int64, error) {
	v, err := s.run(func() (any, error) { return s.inner.ListRatingUserIDs(ctx) })
	if err != nil {
		return nil, err
	}
	return v.([]int64), nil
}

func (s *BreakerStore) GetViewHistory(ctx context.Context, userID int64) ([]recommend.ViewEvent, error) {
	v, err := s.run(func() (any, error) { return s.inner.GetViewHistory(ctx, userID) })
	if err != nil {
		return nil, err
	}
	return v.([]recommend.ViewEvent), nil
}

func (s *BreakerStore) IncrementTrendingBucket(ctx context.Context, movieID int64, period recommend.Period, day time.Time, scoreDelta float64, kind recommend.ActionKind) error {
	_, err := s.run(func() (any, error) {
		return nil, s.inner.IncrementTrendingBucket(ctx, movieID, period, day, scoreDelta, kind)
	})
	return err
}

func (s *BreakerStore) QueryTrendingTotals(ctx context.Context, period recommend.Period, from, to time.Time) ([]recommend.TrendingTotal, error) {
	v, err := s.run(func() (any, error) { return s.inner.QueryTrendingTotals(ctx, period, from, to) })
	if err != nil {
		return nil, err
	}
	return v.([]recommend.TrendingTotal), nil
}

func (s *BreakerStore) IncrementMovieCounter(ctx context.Context, movieID int64, kind recommend.ActionKind) error {
	_, err := s.run(func() (any, error) {
		return nil, s.inner.IncrementMovieCounter(ctx, movieID, kind)
	})
	return err
}

func (s *BreakerStore) UpdateMoviePopularity(ctx context.Context, movieID int64, value float64) error {
	_, err := s.run(func() (any, error) {
		return nil, s.inner.UpdateMoviePopularity(ctx, movieID, value)
	})
	return err
}

var (
	_ recommend.Store = (*DB)(nil)
	_ recommend.Store = (*BreakerStore)(nil)
)
