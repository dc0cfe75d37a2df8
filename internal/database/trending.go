// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/metrics"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/recommend"
)

// IncrementTrendingBucket atomically upserts the bucket keyed by
// (movieID, period, day): the score delta and the one-hot counter
// increments travel in a single INSERT ... ON CONFLICT DO UPDATE
// statement, so concurrent writers for the same key never lose updates.
func (db *DB) IncrementTrendingBucket(ctx context.Context, movieID int64, period recommend.Period, day time.Time, scoreDelta float64, kind recommend.ActionKind) error {
	views, ratings, reviews, shares, favorites := oneHotCounters(kind)

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO trending_buckets
			(movie_id, period, date_bucket, score, view_count, rating_count, review_count, share_count, favorite_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (movie_id, period, date_bucket) DO UPDATE SET
			score = trending_buckets.score + excluded.score,
			view_count = trending_buckets.view_count + excluded.view_count,
			rating_count = trending_buckets.rating_count + excluded.rating_count,
			review_count = trending_buckets.review_count + excluded.review_count,
			share_count = trending_buckets.share_count + excluded.share_count,
			favorite_count = trending_buckets.favorite_count + excluded.favorite_count`,
		movieID, period.String(), day, scoreDelta, views, ratings, reviews, shares, favorites)
	metrics.RecordDBQuery("upsert", "trending_buckets", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("increment %s bucket for movie %d: %w", period, movieID, err)
	}
	return nil
}

// oneHotCounters returns the per-action counter increments for one action.
func oneHotCounters(kind recommend.ActionKind) (views, ratings, reviews, shares, favorites int) {
	switch kind {
	case recommend.ActionView:
		views = 1
	case recommend.ActionRating:
		ratings = 1
	case recommend.ActionReview:
		reviews = 1
	case recommend.ActionShare:
		shares = 1
	case recommend.ActionFavorite:
		favorites = 1
	}
	return
}

// QueryTrendingTotals sums bucket scores grouped by movie for buckets of
// the given period whose date falls within [from, to].
func (db *DB) QueryTrendingTotals(ctx context.Context, period recommend.Period, from, to time.Time) ([]recommend.TrendingTotal, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT movie_id, SUM(score)
		 FROM trending_buckets
		 WHERE period = ? AND date_bucket >= ? AND date_bucket <= ?
		 GROUP BY movie_id
		 ORDER BY SUM(score) DESC, movie_id ASC`,
		period.String(), from, to)
	metrics.RecordDBQuery("select", "trending_buckets", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query %s trending totals: %w", period, err)
	}
	defer closeRows(rows)

	var totals []recommend.TrendingTotal
	for rows.Next() {
		var t recommend.TrendingTotal
		if err := rows.Scan(&t.MovieID, &t.Score); err != nil {
			return nil, fmt.Errorf("scan trending total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trending totals: %w", err)
	}
	return totals, nil
}
