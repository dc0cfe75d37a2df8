// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"context"
	"fmt"
)

// trending.go - Trending aggregator
//
// Writes: each action increments the daily, weekly, and monthly bucket for
// (movie, today) with the action's canonical weight. The storage-level
// upsert is atomic, so concurrent actions for the same movie never lose
// updates. Reads: bucket scores are summed per movie over the period's
// trailing window; empty windows fall through to top-rated, then newest.

// periods is the set of bucket granularities written per action.
var periods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly}

// RecordAction registers a user action for a movie: it increments the
// trending buckets, bumps the mirrored movie counter, and recomputes the
// movie's popularity. Popularity recompute is a non-critical side effect;
// its failure is logged, not returned.
func (e *Engine) RecordAction(ctx context.Context, movieID int64, kind ActionKind) error {
	if kind.Weight() == 0 {
		return errInvalidf("unknown action kind %d", int(kind))
	}

	// Reject actions against unknown movies up front.
	if _, err := e.store.GetMovie(ctx, movieID); err != nil {
		return fmt.Errorf("get movie: %w", err)
	}

	day := dayStartUTC(e.clock())
	for _, period := range periods {
		if err := e.store.IncrementTrendingBucket(ctx, movieID, period, day, kind.Weight(), kind); err != nil {
			return fmt.Errorf("increment %s bucket: %w", period, err)
		}
	}

	if err := e.store.IncrementMovieCounter(ctx, movieID, kind); err != nil {
		return fmt.Errorf("increment movie counter: %w", err)
	}

	if err := e.RecalculatePopularity(ctx, movieID); err != nil {
		e.logger.Warn().
			Err(err).
			Int64("movie_id", movieID).
			Msg("popularity recompute failed after action")
	}

	e.logger.Debug().
		Int64("movie_id", movieID).
		Str("kind", kind.String()).
		Msg("action recorded")
	return nil
}

// TrendingMovies pages active movies by summed bucket score over the
// period's trailing window. An empty window is not an error: the trending
// chain falls through to top-rated, then newest.
func (e *Engine) TrendingMovies(ctx context.Context, period Period, page, limit int) (ResultPage, error) {
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
	default:
		return ResultPage{}, errInvalidf("unknown trending period %d", int(period))
	}

	page, limit, err := e.normalizePagination(page, limit)
	if err != nil {
		return ResultPage{}, err
	}

	key := fmt.Sprintf("trending:%s:%d:%d", period, page, limit)
	if cached, ok := e.cachedPage(key); ok {
		return cached, nil
	}

	stages := []stage{
		e.trendingStage(period, page, limit),
		e.topRatedStage(page, limit),
		e.newestStage(page, limit),
	}
	result, err := e.runChain(ctx, "trending", stages)
	if err != nil {
		return ResultPage{}, err
	}

	e.storePage(key, result)
	return result, nil
}

// trendingStage sums window bucket scores grouped by movie, restricted to
// active movies, ranked by summed score descending.
func (e *Engine) trendingStage(period Period, page, limit int) stage {
	return stage{
		name: SourceTrending,
		fetch: func(ctx context.Context) (ResultPage, error) {
			now := e.clock()
			totals, err := e.store.QueryTrendingTotals(ctx, period, period.WindowStart(now), now)
			if err != nil {
				return ResultPage{}, err
			}
			if len(totals) == 0 {
				return ResultPage{Source: SourceTrending}, nil
			}

			active, err := e.store.ListActiveMovies(ctx)
			if err != nil {
				return ResultPage{}, err
			}
			byID := make(map[int64]*Movie, len(active))
			for i := range active {
				byID[active[i].ID] = &active[i]
			}

			scored := make([]ScoredMovie, 0, len(totals))
			for _, t := range totals {
				movie, ok := byID[t.MovieID]
				if !ok {
					continue
				}
				scored = append(scored, ScoredMovie{Movie: *movie, Score: t.Score})
			}

			sortScored(scored)
			return paginate(scored, page, limit, SourceTrending), nil
		},
	}
}
