// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memStore is an in-memory Store used by the engine tests. Increments are
// guarded by a single mutex, satisfying the atomicity contract.
type memStore struct {
	mu      sync.Mutex
	movies  map[int64]Movie
	users   map[int64]struct{}
	ratings []Rating
	history map[int64][]ViewEvent
	buckets map[bucketKey]*TrendingBucket
}

type bucketKey struct {
	movieID int64
	period  Period
	day     time.Time
}

func newMemStore() *memStore {
	return &memStore{
		movies:  make(map[int64]Movie),
		users:   make(map[int64]struct{}),
		history: make(map[int64][]ViewEvent),
		buckets: make(map[bucketKey]*TrendingBucket),
	}
}

func (s *memStore) addMovie(m Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies[m.ID] = m
}

func (s *memStore) addUser(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = struct{}{}
}

func (s *memStore) addRating(userID, movieID int64, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = struct{}{}
	s.ratings = append(s.ratings, Rating{UserID: userID, MovieID: movieID, Value: value})
}

func (s *memStore) addViewEvent(userID, movieID int64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[userID] = append(s.history[userID], ViewEvent{MovieID: movieID, Timestamp: at})
}

func (s *memStore) bucket(movieID int64, period Period, day time.Time) (TrendingBucket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[bucketKey{movieID, period, day}]
	if !ok {
		return TrendingBucket{}, false
	}
	return *b, true
}

func (s *memStore) GetMovie(_ context.Context, id int64) (*Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok {
		return nil, errNotFoundf("movie %d", id)
	}
	return &m, nil
}

func (s *memStore) ListActiveMovies(_ context.Context) ([]Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Movie, 0, len(s.movies))
	for _, m := range s.movies {
		if m.Active {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) ListNewestMovies(ctx context.Context, limit, offset int) ([]Movie, int, error) {
	active, _ := s.ListActiveMovies(ctx)
	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.After(active[j].CreatedAt)
		}
		return active[i].ID < active[j].ID
	})
	return slicePage(active, limit, offset), len(active), nil
}

func (s *memStore) ListTopRatedMovies(ctx context.Context, minRatingCount, limit, offset int) ([]Movie, int, error) {
	active, _ := s.ListActiveMovies(ctx)
	rated := make([]Movie, 0, len(active))
	for _, m := range active {
		if m.AvgRating > 0 && m.RatingCount >= minRatingCount {
			rated = append(rated, m)
		}
	}
	sort.Slice(rated, func(i, j int) bool {
		if rated[i].AvgRating != rated[j].AvgRating {
			return rated[i].AvgRating > rated[j].AvgRating
		}
		return rated[i].ID < rated[j].ID
	})
	return slicePage(rated, limit, offset), len(rated), nil
}

func (s *memStore) UserExists(_ context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[userID]
	return ok, nil
}

func (s *memStore) GetUserRatings(_ context.Context, userID int64) ([]Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Rating
	for _, r := range s.ratings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) GetRatingsForMovies(_ context.Context, movieIDs []int64) ([]Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[int64]struct{}, len(movieIDs))
	for _, id := range movieIDs {
		want[id] = struct{}{}
	}
	var out []Rating
	for _, r := range s.ratings {
		if _, ok := want[r.MovieID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) ListRatingUserIDs(_ context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int64]struct{})
	var out []int64
	for _, r := range s.ratings {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			out = append(out, r.UserID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *memStore) GetViewHistory(_ context.Context, userID int64) ([]ViewEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[userID], nil
}

func (s *memStore) IncrementTrendingBucket(_ context.Context, movieID int64, period Period, day time.Time, scoreDelta float64, kind ActionKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := bucketKey{movieID, period, day}
	b, ok := s.buckets[key]
	if !ok {
		b = &TrendingBucket{MovieID: movieID, Period: period, DateBucket: day}
		s.buckets[key] = b
	}
	b.Score += scoreDelta
	switch kind {
	case ActionView:
		b.ViewCount++
	case ActionRating:
		b.RatingCount++
	case ActionReview:
		b.ReviewCount++
	case ActionShare:
		b.ShareCount++
	case ActionFavorite:
		b.FavoriteCount++
	}
	return nil
}

func (s *memStore) QueryTrendingTotals(_ context.Context, period Period, from, to time.Time) ([]TrendingTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sums := make(map[int64]float64)
	for key, b := range s.buckets {
		if key.period != period {
			continue
		}
		if key.day.Before(from) || key.day.After(to) {
			continue
		}
		sums[key.movieID] += b.Score
	}
	out := make([]TrendingTotal, 0, len(sums))
	for id, score := range sums {
		out = append(out, TrendingTotal{MovieID: id, Score: score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MovieID < out[j].MovieID })
	return out, nil
}

func (s *memStore) IncrementMovieCounter(_ context.Context, movieID int64, kind ActionKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[movieID]
	if !ok {
		return errNotFoundf("movie %d", movieID)
	}
	switch kind {
	case ActionView:
		m.ViewCount++
	case ActionReview:
		m.ReviewCount++
	}
	s.movies[movieID] = m
	return nil
}

func (s *memStore) UpdateMoviePopularity(_ context.Context, movieID int64, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[movieID]
	if !ok {
		return errNotFoundf("movie %d", movieID)
	}
	m.Popularity = value
	s.movies[movieID] = m
	return nil
}

func slicePage(movies []Movie, limit, offset int) []Movie {
	if offset > len(movies) {
		offset = len(movies)
	}
	end := offset + limit
	if end > len(movies) {
		end = len(movies)
	}
	return movies[offset:end]
}

var _ Store = (*memStore)(nil)
