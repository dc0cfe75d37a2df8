// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func TestPersonalizedRecommendations_UserNotFound(t *testing.T) {
	e := newTestEngine(t, newMemStore())

	_, err := e.PersonalizedRecommendations(context.Background(), 404, 1, 10)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestPersonalizedRecommendations_CompositeScore(t *testing.T) {
	store := newMemStore()
	// Single 5-star rating makes every profile weight 1.0 for the rated
	// movie's attributes.
	store.addMovie(Movie{
		ID: 1, Genres: []string{"Horror"}, Director: "D1",
		Cast:        []CastMember{{Name: "A1"}},
		ReleaseDate: day(1994, time.June, 1),
		Active:      true,
	})
	// Candidate matching every attribute, rated 4.0 aggregate:
	// 0.3*1 + 0.2*1 + 0.15*1 + 0.15*1 + 0.2*(4/5) = 0.96
	store.addMovie(Movie{
		ID: 2, Genres: []string{"Horror"}, Director: "D1",
		Cast:        []CastMember{{Name: "A1"}},
		ReleaseDate: day(1991, time.March, 1),
		AvgRating:   4.0, RatingCount: 20,
		Active: true,
	})
	store.addRating(7, 1, 5)

	e := newTestEngine(t, store)
	got, err := e.PersonalizedRecommendations(context.Background(), 7, 1, 10)
	if err != nil {
		t.Fatalf("PersonalizedRecommendations() error = %v", err)
	}

	if got.Source != SourcePersonalized {
		t.Errorf("source = %q, want %q", got.Source, SourcePersonalized)
	}
	if len(got.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(got.Results))
	}
	r := got.Results[0]
	if r.Movie.ID != 2 {
		t.Errorf("recommended movie = %d, want 2", r.Movie.ID)
	}
	if math.Abs(r.Score-0.96) > 1e-9 {
		t.Errorf("composite score = %f, want 0.96", r.Score)
	}
	if r.MatchScore != 96 {
		t.Errorf("match score = %d, want 96", r.MatchScore)
	}
}

func TestPersonalizedRecommendations_ExcludesRatedAndViewed(t *testing.T) {
	store := newMemStore()
	for id := int64(1); id <= 4; id++ {
		store.addMovie(Movie{ID: id, Genres: []string{"Action"}, Active: true,
			ReleaseDate: day(2020, time.January, 1)})
	}
	store.addRating(7, 1, 5)
	store.addViewEvent(7, 2, day(2026, time.August, 1))

	e := newTestEngine(t, store)
	got, err := e.PersonalizedRecommendations(context.Background(), 7, 1, 10)
	if err != nil {
		t.Fatalf("PersonalizedRecommendations() error = %v", err)
	}

	for _, r := range got.Results {
		if r.Movie.ID == 1 || r.Movie.ID == 2 {
			t.Errorf("movie %d already rated or viewed, must not be recommended", r.Movie.ID)
		}
	}
	if len(got.Results) != 2 {
		t.Errorf("got %d results, want 2", len(got.Results))
	}
}

func TestPersonalizedRecommendations_ColdStartFallsBackToNewest(t *testing.T) {
	store := newMemStore()
	store.addUser(7)
	// No ratings anywhere, so both the profile and the collaborative and
	// top-rated stages are empty; newest must answer.
	store.addMovie(Movie{ID: 1, Title: "Old", Active: true,
		ReleaseDate: day(2019, time.January, 1), CreatedAt: day(2026, time.January, 1)})
	store.addMovie(Movie{ID: 2, Title: "New", Active: true,
		ReleaseDate: day(2026, time.March, 1), CreatedAt: day(2026, time.July, 1)})

	e := newTestEngine(t, store)
	got, err := e.PersonalizedRecommendations(context.Background(), 7, 1, 10)
	if err != nil {
		t.Fatalf("PersonalizedRecommendations() error = %v", err)
	}

	if got.Source != SourceNewest {
		t.Errorf("source = %q, want %q", got.Source, SourceNewest)
	}
	if len(got.Results) != 2 || got.Results[0].Movie.ID != 2 {
		t.Errorf("results = %v, want newest-first starting with movie 2", got.Results)
	}
}

func TestPersonalizedRecommendations_ColdStartPrefersTopRated(t *testing.T) {
	store := newMemStore()
	store.addUser(7)
	store.addMovie(Movie{ID: 1, Active: true, AvgRating: 4.5, RatingCount: 25,
		ReleaseDate: day(2020, time.January, 1), CreatedAt: day(2026, time.January, 1)})
	store.addMovie(Movie{ID: 2, Active: true,
		ReleaseDate: day(2026, time.March, 1), CreatedAt: day(2026, time.July, 1)})

	e := newTestEngine(t, store)
	got, err := e.PersonalizedRecommendations(context.Background(), 7, 1, 10)
	if err != nil {
		t.Fatalf("PersonalizedRecommendations() error = %v", err)
	}

	if got.Source != SourceTopRated {
		t.Errorf("source = %q, want %q", got.Source, SourceTopRated)
	}
	if len(got.Results) != 1 || got.Results[0].Movie.ID != 1 {
		t.Errorf("results = %v, want only top-rated movie 1", got.Results)
	}
}

func TestPersonalizedRecommendations_Pagination(t *testing.T) {
	store := newMemStore()
	store.addMovie(Movie{ID: 100, Genres: []string{"Action"}, Active: true,
		ReleaseDate: day(2020, time.January, 1)})
	for id := int64(1); id <= 5; id++ {
		store.addMovie(Movie{ID: id, Genres: []string{"Action"}, Active: true,
			ReleaseDate: day(2020, time.January, 1)})
	}
	store.addRating(7, 100, 5)

	e := newTestEngine(t, store)
	got, err := e.PersonalizedRecommendations(context.Background(), 7, 2, 2)
	if err != nil {
		t.Fatalf("PersonalizedRecommendations() error = %v", err)
	}

	if got.Total != 5 {
		t.Errorf("total = %d, want 5", got.Total)
	}
	if got.Page != 2 {
		t.Errorf("page = %d, want 2", got.Page)
	}
	if got.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", got.TotalPages)
	}
	if len(got.Results) != 2 {
		t.Errorf("got %d results, want 2", len(got.Results))
	}
	// Equal scores tiebreak by ID ascending, so page 2 holds movies 3, 4.
	if got.Results[0].Movie.ID != 3 || got.Results[1].Movie.ID != 4 {
		t.Errorf("page 2 = [%d, %d], want [3, 4]",
			got.Results[0].Movie.ID, got.Results[1].Movie.ID)
	}
}

func TestPersonalizedRecommendations_PagePastEndStaysPersonalized(t *testing.T) {
	store := newMemStore()
	for id := int64(1); id <= 11; id++ {
		store.addMovie(Movie{ID: id, Genres: []string{"Action"}, Active: true,
			ReleaseDate: day(2020, time.January, 1)})
	}
	// Rating movie 1 leaves a personalized set of exactly 10 candidates.
	store.addRating(7, 1, 5)

	e := newTestEngine(t, store)
	got, err := e.PersonalizedRecommendations(context.Background(), 7, 2, 10)
	if err != nil {
		t.Fatalf("PersonalizedRecommendations() error = %v", err)
	}

	// A page past the end of a non-empty set is an empty page from the
	// same stage, never a fall-through that would re-serve movie 1.
	if got.Source != SourcePersonalized {
		t.Errorf("source = %q, want %q", got.Source, SourcePersonalized)
	}
	if got.Total != 10 {
		t.Errorf("total = %d, want 10", got.Total)
	}
	if got.TotalPages != 1 {
		t.Errorf("total pages = %d, want 1", got.TotalPages)
	}
	if len(got.Results) != 0 {
		t.Errorf("got %d results, want empty page", len(got.Results))
	}
}

func TestPersonalizedRecommendations_InvalidPagination(t *testing.T) {
	store := newMemStore()
	store.addUser(7)
	e := newTestEngine(t, store)

	tests := []struct {
		name  string
		page  int
		limit int
	}{
		{"negative page", -1, 10},
		{"zero-crossing limit", 1, -5},
		{"limit above max", 1, 101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.PersonalizedRecommendations(context.Background(), 7, tt.page, tt.limit)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
