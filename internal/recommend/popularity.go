// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"context"
	"fmt"
	"math"
	"time"
)

// popularity.go - Popularity recalculator
//
// Popularity is a pure function of the movie's counters and release date:
//
//	popularity = (views*1 + ratings*2 + reviews*1.5 + avg*ratings*3)
//	           * exp(-daysSinceRelease / 365)
//
// It is recomputed from current state on every relevant mutation, never
// accumulated.

// popularityScore evaluates the formula for a movie at the given instant.
// daysSinceRelease is clamped at zero for unreleased titles.
func popularityScore(cfg *PopularityConfig, m *Movie, now time.Time) float64 {
	base := float64(m.ViewCount)*cfg.ViewWeight +
		float64(m.RatingCount)*cfg.RatingWeight +
		float64(m.ReviewCount)*cfg.ReviewWeight +
		m.AvgRating*float64(m.RatingCount)*cfg.RatingBoost

	days := now.Sub(m.ReleaseDate).Hours() / 24
	if days < 0 {
		days = 0
	}

	return base * math.Exp(-days/cfg.DecayDays)
}

// RecalculatePopularity recomputes and stores the movie's popularity score
// from its current counters. It runs synchronously as part of the mutation
// that changed an input counter.
func (e *Engine) RecalculatePopularity(ctx context.Context, movieID int64) error {
	movie, err := e.store.GetMovie(ctx, movieID)
	if err != nil {
		return fmt.Errorf("get movie for popularity: %w", err)
	}

	score := popularityScore(&e.config.Popularity, movie, e.clock())

	if err := e.store.UpdateMoviePopularity(ctx, movieID, score); err != nil {
		return fmt.Errorf("update popularity: %w", err)
	}

	e.logger.Debug().
		Int64("movie_id", movieID).
		Float64("popularity", score).
		Msg("popularity recalculated")
	return nil
}
