// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"context"
	"math"
	"sort"
)

// SimilarityIndex ranks candidate movies against a reference movie. The
// default implementation computes similarity on read over the full
// candidate set; a precomputed or cached index can replace it without
// changing the scoring contract.
type SimilarityIndex interface {
	// Similar returns up to limit candidates ranked by descending
	// similarity to ref. The reference itself is never included.
	Similar(ctx context.Context, ref *Movie, candidates []Movie, limit int) ([]ScoredMovie, error)
}

// contentSimilarity scores candidates against a reference movie using
// genre overlap, aggregate-rating closeness, and release-year closeness:
//
//	score = w_genre   * overlap / max(|ref.genres|, |cand.genres|)
//	      + w_rating  * (1 - |ref.avg - cand.avg| / 5)
//	      + w_recency * (1 - min(|ref.year - cand.year| / spread, 1))
//
// With the default weights (0.4/0.3/0.3) the composite is bounded to [0, 1].
type contentSimilarity struct {
	genreWeight   float64
	ratingWeight  float64
	recencyWeight float64
	maxYearSpread int
}

// newContentSimilarity creates the default on-read similarity index.
func newContentSimilarity(cfg SimilarityConfig) *contentSimilarity {
	return &contentSimilarity{
		genreWeight:   cfg.GenreWeight,
		ratingWeight:  cfg.RatingWeight,
		recencyWeight: cfg.RecencyWeight,
		maxYearSpread: cfg.MaxYearSpread,
	}
}

// Similar ranks candidates by descending similarity to ref, breaking ties
// by movie ID ascending for stable results.
func (s *contentSimilarity) Similar(ctx context.Context, ref *Movie, candidates []Movie, limit int) ([]ScoredMovie, error) {
	refGenres := make(map[string]struct{}, len(ref.Genres))
	for _, g := range ref.Genres {
		refGenres[g] = struct{}{}
	}

	scored := make([]ScoredMovie, 0, len(candidates))
	for i := range candidates {
		if contextCancelled(ctx) {
			return nil, ctx.Err()
		}

		c := &candidates[i]
		if c.ID == ref.ID || !c.Active {
			continue
		}

		scored = append(scored, ScoredMovie{
			Movie: *c,
			Score: s.score(ref, refGenres, c),
		})
	}

	sortScored(scored)

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// score computes the composite similarity for one candidate.
func (s *contentSimilarity) score(ref *Movie, refGenres map[string]struct{}, c *Movie) float64 {
	var genreSim float64
	if denom := maxInt(len(refGenres), len(c.Genres)); denom > 0 {
		overlap := 0
		for _, g := range c.Genres {
			if _, ok := refGenres[g]; ok {
				overlap++
			}
		}
		genreSim = float64(overlap) / float64(denom)
	}

	ratingSim := 1 - math.Abs(ref.AvgRating-c.AvgRating)/5

	yearDiff := math.Abs(float64(ref.Year() - c.Year()))
	recencySim := 1 - math.Min(yearDiff/float64(s.maxYearSpread), 1)

	return s.genreWeight*genreSim + s.ratingWeight*ratingSim + s.recencyWeight*recencySim
}

// sortScored orders by score descending, then movie ID ascending.
func sortScored(scored []ScoredMovie) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Movie.ID < scored[j].Movie.ID
	})
}

// maxInt returns the larger of two ints.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// contextCancelled checks if the context has been canceled.
func contextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
