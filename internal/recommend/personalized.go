// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"context"
	"fmt"
	"math"
)

// personalized.go - Personalized recommendation composer
//
// Blends the user's preference profile against candidate movie attributes
// plus the candidate's aggregate rating:
//
//	score = 0.30 * mean(genre weights over movie genres)
//	      + 0.20 * mean(actor weights over movie cast)
//	      + 0.15 * director weight
//	      + 0.15 * decade weight
//	      + 0.20 * avgRating / 5
//
// Sparse-data conditions fall through the personalized chain:
// collaborative neighbors, then top-rated, then newest.

// PersonalizedRecommendations returns a ranked, paginated page of movies
// the user has not rated or viewed, with a 0-100 match score per item. A
// missing user is an error; an empty profile is not.
func (e *Engine) PersonalizedRecommendations(ctx context.Context, userID int64, page, limit int) (ResultPage, error) {
	page, limit, err := e.normalizePagination(page, limit)
	if err != nil {
		return ResultPage{}, err
	}

	exists, err := e.store.UserExists(ctx, userID)
	if err != nil {
		return ResultPage{}, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return ResultPage{}, errNotFoundf("user %d", userID)
	}

	ratings, err := e.store.GetUserRatings(ctx, userID)
	if err != nil {
		return ResultPage{}, fmt.Errorf("get ratings: %w", err)
	}
	history, err := e.store.GetViewHistory(ctx, userID)
	if err != nil {
		return ResultPage{}, fmt.Errorf("get view history: %w", err)
	}

	stages := []stage{
		e.collaborativeStage(userID, page, limit),
		e.topRatedStage(page, limit),
		e.newestStage(page, limit),
	}

	// No ratings and no viewing history means no signal to score
	// against; the chain answers instead.
	if len(ratings) == 0 && len(history) == 0 {
		e.logger.Debug().Int64("user_id", userID).Msg("no preference signal, delegating to fallback chain")
		return e.runChain(ctx, "personalized", stages)
	}

	scored, err := e.composeScores(ctx, userID, ratings, history)
	if err != nil {
		return ResultPage{}, err
	}

	profiled := func(ctx context.Context) (ResultPage, error) {
		result := paginate(scored, page, limit, SourcePersonalized)
		for i := range result.Results {
			result.Results[i].MatchScore = int(math.Round(result.Results[i].Score * 100))
		}
		return result, nil
	}

	return e.runChain(ctx, "personalized", append([]stage{{name: SourcePersonalized, fetch: profiled}}, stages...))
}

// composeScores builds the profile and scores every unseen active movie.
func (e *Engine) composeScores(ctx context.Context, userID int64, ratings []Rating, history []ViewEvent) ([]ScoredMovie, error) {
	candidates, err := e.store.ListActiveMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	movies := make(map[int64]*Movie, len(candidates))
	for i := range candidates {
		movies[candidates[i].ID] = &candidates[i]
	}

	profile := BuildPreferenceProfile(ratings, movies, history)

	seen := make(map[int64]struct{}, len(ratings)+len(history))
	for i := range ratings {
		seen[ratings[i].MovieID] = struct{}{}
	}
	for i := range history {
		seen[history[i].MovieID] = struct{}{}
	}

	w := &e.config.Personalized
	scored := make([]ScoredMovie, 0, len(candidates))
	for i := range candidates {
		if contextCancelled(ctx) {
			return nil, ctx.Err()
		}
		c := &candidates[i]
		if _, ok := seen[c.ID]; ok {
			continue
		}
		scored = append(scored, ScoredMovie{
			Movie: *c,
			Score: compositeScore(w, profile, c),
		})
	}

	sortScored(scored)
	e.logger.Debug().
		Int64("user_id", userID).
		Int("candidates", len(scored)).
		Msg("personalized scores composed")
	return scored, nil
}

// compositeScore blends profile match terms with the aggregate rating.
// Absent signals contribute zero, keeping the score in [0, 1] under the
// default weights.
func compositeScore(w *PersonalizedConfig, p *PreferenceProfile, m *Movie) float64 {
	var score float64

	if len(m.Genres) > 0 {
		var sum float64
		for _, g := range m.Genres {
			sum += p.Genres[g]
		}
		score += w.GenreWeight * (sum / float64(len(m.Genres)))
	}

	if len(m.Cast) > 0 {
		var sum float64
		for _, member := range m.Cast {
			sum += p.Actors[member.Name]
		}
		score += w.ActorWeight * (sum / float64(len(m.Cast)))
	}

	score += w.DirectorWeight * p.Directors[m.Director]
	score += w.DecadeWeight * p.Decades[m.Decade()]

	if m.AvgRating > 0 {
		score += w.RatingWeight * (m.AvgRating / 5)
	}

	return score
}

// collaborativeStage aggregates favorably-rated movies from the user's
// most correlated neighbors.
func (e *Engine) collaborativeStage(userID int64, page, limit int) stage {
	return stage{
		name: SourceCollaborative,
		fetch: func(ctx context.Context) (ResultPage, error) {
			scored, err := e.neighbors.CandidatesFor(ctx, userID)
			if err != nil {
				return ResultPage{}, err
			}
			return paginate(scored, page, limit, SourceCollaborative), nil
		},
	}
}
