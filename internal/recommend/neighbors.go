// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// NeighborIndex discovers movies favored by users whose rating pattern
// correlates with the target user's. The default implementation computes
// correlations on read, which is O(users x ratings) per request; a cached
// or precomputed index can replace it without changing the contract.
type NeighborIndex interface {
	// CandidatesFor returns movies the target has not rated, aggregated
	// from similar users' ratings and sorted by mean neighbor rating
	// descending. An empty slice means no collaborative signal.
	CandidatesFor(ctx context.Context, userID int64) ([]ScoredMovie, error)
}

// neighbor pairs a user with their correlation to the target.
type neighbor struct {
	userID      int64
	correlation float64
}

// pearsonNeighbors finds correlated users via Pearson correlation over the
// ratings both users share, takes the top K, and aggregates their ratings
// of movies the target has not seen.
type pearsonNeighbors struct {
	store      Store
	topK       int
	minSupport int
}

// newPearsonNeighbors creates the default on-read neighbor index.
func newPearsonNeighbors(store Store, cfg NeighborConfig) *pearsonNeighbors {
	return &pearsonNeighbors{
		store:      store,
		topK:       cfg.TopK,
		minSupport: cfg.MinSupport,
	}
}

// CandidatesFor aggregates favorably-rated movies from the target's most
// correlated users.
func (n *pearsonNeighbors) CandidatesFor(ctx context.Context, userID int64) ([]ScoredMovie, error) {
	targetRatings, err := n.store.GetUserRatings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get target ratings: %w", err)
	}
	if len(targetRatings) == 0 {
		return nil, nil
	}

	target := make(map[int64]float64, len(targetRatings))
	targetMovies := make([]int64, 0, len(targetRatings))
	for i := range targetRatings {
		target[targetRatings[i].MovieID] = targetRatings[i].Value
		targetMovies = append(targetMovies, targetRatings[i].MovieID)
	}

	neighbors, err := n.findNeighbors(ctx, userID, target, targetMovies)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return nil, nil
	}

	return n.aggregate(ctx, neighbors, target)
}

// findNeighbors computes correlations against every other rating user,
// restricted to movies both rated, and returns the top K.
func (n *pearsonNeighbors) findNeighbors(ctx context.Context, userID int64, target map[int64]float64, targetMovies []int64) ([]neighbor, error) {
	// One query fetches every rating of the target's movies; that is
	// exactly the data the restricted correlation needs.
	shared, err := n.store.GetRatingsForMovies(ctx, targetMovies)
	if err != nil {
		return nil, fmt.Errorf("get shared ratings: %w", err)
	}

	otherVectors := make(map[int64]map[int64]float64)
	for i := range shared {
		r := &shared[i]
		if r.UserID == userID {
			continue
		}
		if otherVectors[r.UserID] == nil {
			otherVectors[r.UserID] = make(map[int64]float64)
		}
		otherVectors[r.UserID][r.MovieID] = r.Value
	}

	userIDs, err := n.store.ListRatingUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rating users: %w", err)
	}

	neighbors := make([]neighbor, 0, len(userIDs))
	for _, otherID := range userIDs {
		if otherID == userID {
			continue
		}
		if contextCancelled(ctx) {
			return nil, ctx.Err()
		}

		// Users with no rating in common score 0.
		sim := pearson(target, otherVectors[otherID])
		neighbors = append(neighbors, neighbor{userID: otherID, correlation: sim})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].correlation != neighbors[j].correlation {
			return neighbors[i].correlation > neighbors[j].correlation
		}
		return neighbors[i].userID < neighbors[j].userID
	})

	if len(neighbors) > n.topK {
		neighbors = neighbors[:n.topK]
	}
	return neighbors, nil
}

// aggregate groups the neighbor set's ratings of movies the target has not
// rated, requiring at least minSupport neighbors per movie, and ranks by
// mean rating descending.
func (n *pearsonNeighbors) aggregate(ctx context.Context, neighbors []neighbor, target map[int64]float64) ([]ScoredMovie, error) {
	type accum struct {
		sum   float64
		count int
	}
	byMovie := make(map[int64]*accum)

	for _, nb := range neighbors {
		ratings, err := n.store.GetUserRatings(ctx, nb.userID)
		if err != nil {
			return nil, fmt.Errorf("get neighbor ratings: %w", err)
		}
		for i := range ratings {
			r := &ratings[i]
			if _, rated := target[r.MovieID]; rated {
				continue
			}
			a := byMovie[r.MovieID]
			if a == nil {
				a = &accum{}
				byMovie[r.MovieID] = a
			}
			a.sum += r.Value
			a.count++
		}
	}

	scored := make([]ScoredMovie, 0, len(byMovie))
	for movieID, a := range byMovie {
		if a.count < n.minSupport {
			continue
		}
		movie, err := n.store.GetMovie(ctx, movieID)
		if err != nil {
			// A neighbor rating may reference a movie since removed.
			continue
		}
		if !movie.Active {
			continue
		}
		scored = append(scored, ScoredMovie{
			Movie: *movie,
			Score: a.sum / float64(a.count),
		})
	}

	sortScored(scored)
	return scored, nil
}

// pearson computes the Pearson correlation between two rating vectors
// restricted to movies both rated. Returns 0 for an empty intersection or
// a zero denominator.
func pearson(a, b map[int64]float64) float64 {
	if len(b) == 0 {
		return 0
	}

	var n int
	var sum1, sum2, sum1Sq, sum2Sq, pSum float64
	for movieID, r1 := range a {
		r2, ok := b[movieID]
		if !ok {
			continue
		}
		n++
		sum1 += r1
		sum2 += r2
		sum1Sq += r1 * r1
		sum2Sq += r2 * r2
		pSum += r1 * r2
	}
	if n == 0 {
		return 0
	}

	fn := float64(n)
	num := pSum - sum1*sum2/fn
	den := math.Sqrt((sum1Sq - sum1*sum1/fn) * (sum2Sq - sum2*sum2/fn))
	if den == 0 {
		return 0
	}
	return num / den
}
