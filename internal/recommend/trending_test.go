// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

func TestRecordAction_AccumulatesBucketScore(t *testing.T) {
	store := newMemStore()
	store.addMovie(Movie{ID: 1, Active: true, ReleaseDate: day(2026, time.January, 1)})

	e := newTestEngine(t, store)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := e.RecordAction(ctx, 1, ActionView); err != nil {
			t.Fatalf("RecordAction(view) error = %v", err)
		}
	}
	if err := e.RecordAction(ctx, 1, ActionRating); err != nil {
		t.Fatalf("RecordAction(rating) error = %v", err)
	}

	// 3 views (weight 1) + 1 rating (weight 5) = 8, written to every
	// period granularity for today.
	today := dayStartUTC(e.clock())
	for _, period := range []Period{PeriodDaily, PeriodWeekly, PeriodMonthly} {
		b, ok := store.bucket(1, period, today)
		if !ok {
			t.Fatalf("no %s bucket created", period)
		}
		if math.Abs(b.Score-8) > 1e-9 {
			t.Errorf("%s bucket score = %f, want 8", period, b.Score)
		}
		if b.ViewCount != 3 {
			t.Errorf("%s bucket views = %d, want 3", period, b.ViewCount)
		}
		if b.RatingCount != 1 {
			t.Errorf("%s bucket ratings = %d, want 1", period, b.RatingCount)
		}
	}
}

func TestRecordAction_BumpsCountersAndPopularity(t *testing.T) {
	store := newMemStore()
	store.addMovie(Movie{ID: 1, Active: true, ReleaseDate: day(2026, time.August, 28)})

	e := newTestEngine(t, store)
	if err := e.RecordAction(context.Background(), 1, ActionView); err != nil {
		t.Fatalf("RecordAction() error = %v", err)
	}

	m, err := store.GetMovie(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetMovie() error = %v", err)
	}
	if m.ViewCount != 1 {
		t.Errorf("view count = %d, want 1", m.ViewCount)
	}
	// Released today, one view, no ratings: popularity = 1 * exp(0) = 1.
	if math.Abs(m.Popularity-1) > 1e-9 {
		t.Errorf("popularity = %f, want 1", m.Popularity)
	}
}

func TestRecordAction_UnknownKind(t *testing.T) {
	store := newMemStore()
	store.addMovie(Movie{ID: 1, Active: true})

	e := newTestEngine(t, store)
	err := e.RecordAction(context.Background(), 1, ActionKind(99))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestRecordAction_UnknownMovie(t *testing.T) {
	e := newTestEngine(t, newMemStore())

	err := e.RecordAction(context.Background(), 404, ActionView)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRecordAction_ConcurrentIncrementsAreLossless(t *testing.T) {
	store := newMemStore()
	store.addMovie(Movie{ID: 1, Active: true, ReleaseDate: day(2026, time.January, 1)})

	e := newTestEngine(t, store)
	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if err := e.RecordAction(context.Background(), 1, ActionView); err != nil {
				t.Errorf("RecordAction() error = %v", err)
			}
		}()
	}
	wg.Wait()

	b, ok := store.bucket(1, PeriodDaily, dayStartUTC(e.clock()))
	if !ok {
		t.Fatal("no daily bucket created")
	}
	if b.ViewCount != workers {
		t.Errorf("daily view count = %d, want %d", b.ViewCount, workers)
	}
	if math.Abs(b.Score-float64(workers)) > 1e-9 {
		t.Errorf("daily score = %f, want %d", b.Score, workers)
	}
}

func TestTrendingMovies_RanksBySummedWindowScore(t *testing.T) {
	store := newMemStore()
	store.addMovie(Movie{ID: 1, Active: true, ReleaseDate: day(2026, time.January, 1)})
	store.addMovie(Movie{ID: 2, Active: true, ReleaseDate: day(2026, time.January, 1)})

	e := newTestEngine(t, store)
	ctx := context.Background()
	// Movie 2 earns more weighted actions than movie 1.
	if err := e.RecordAction(ctx, 1, ActionView); err != nil {
		t.Fatal(err)
	}
	if err := e.RecordAction(ctx, 2, ActionReview); err != nil {
		t.Fatal(err)
	}

	got, err := e.TrendingMovies(ctx, PeriodDaily, 1, 10)
	if err != nil {
		t.Fatalf("TrendingMovies() error = %v", err)
	}

	if got.Source != SourceTrending {
		t.Errorf("source = %q, want %q", got.Source, SourceTrending)
	}
	if len(got.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(got.Results))
	}
	if got.Results[0].Movie.ID != 2 || got.Results[1].Movie.ID != 1 {
		t.Errorf("order = [%d, %d], want [2, 1]",
			got.Results[0].Movie.ID, got.Results[1].Movie.ID)
	}
	if math.Abs(got.Results[0].Score-10) > 1e-9 {
		t.Errorf("top score = %f, want 10", got.Results[0].Score)
	}
}

func TestTrendingMovies_WindowExcludesStaleBuckets(t *testing.T) {
	store := newMemStore()
	store.addMovie(Movie{ID: 1, Active: true, ReleaseDate: day(2026, time.January, 1)})
	store.addMovie(Movie{ID: 2, Active: true, ReleaseDate: day(2026, time.January, 1)})

	e := newTestEngine(t, store)
	ctx := context.Background()

	// Movie 1 acted on three days ago, movie 2 today.
	e.SetClock(FixedClock(day(2026, time.August, 25)))
	if err := e.RecordAction(ctx, 1, ActionFavorite); err != nil {
		t.Fatal(err)
	}
	e.SetClock(FixedClock(day(2026, time.August, 28)))
	if err := e.RecordAction(ctx, 2, ActionView); err != nil {
		t.Fatal(err)
	}

	daily, err := e.TrendingMovies(ctx, PeriodDaily, 1, 10)
	if err != nil {
		t.Fatalf("TrendingMovies(daily) error = %v", err)
	}
	if len(daily.Results) != 1 || daily.Results[0].Movie.ID != 2 {
		t.Errorf("daily results = %v, want only movie 2", daily.Results)
	}

	weekly, err := e.TrendingMovies(ctx, PeriodWeekly, 1, 10)
	if err != nil {
		t.Fatalf("TrendingMovies(weekly) error = %v", err)
	}
	if len(weekly.Results) != 2 {
		t.Errorf("weekly window should include both movies, got %v", weekly.Results)
	}
}

func TestTrendingMovies_FallsBackWhenWindowEmpty(t *testing.T) {
	store := newMemStore()
	store.addMovie(Movie{ID: 1, Active: true, AvgRating: 4.2, RatingCount: 15,
		ReleaseDate: day(2020, time.January, 1), CreatedAt: day(2026, time.January, 1)})

	e := newTestEngine(t, store)
	got, err := e.TrendingMovies(context.Background(), PeriodDaily, 1, 10)
	if err != nil {
		t.Fatalf("TrendingMovies() error = %v", err)
	}

	if got.Source != SourceTopRated {
		t.Errorf("source = %q, want %q", got.Source, SourceTopRated)
	}
	if len(got.Results) != 1 || got.Results[0].Movie.ID != 1 {
		t.Errorf("results = %v, want movie 1 from top-rated", got.Results)
	}
}

func TestTrendingMovies_EmptyCatalogYieldsEmptyPage(t *testing.T) {
	e := newTestEngine(t, newMemStore())

	got, err := e.TrendingMovies(context.Background(), PeriodDaily, 1, 10)
	if err != nil {
		t.Fatalf("TrendingMovies() error = %v", err)
	}
	if len(got.Results) != 0 || got.Total != 0 {
		t.Errorf("got %v, want an empty page", got)
	}
	if got.Source != SourceNewest {
		t.Errorf("source = %q, want last-resort %q", got.Source, SourceNewest)
	}
}

func TestTrendingMovies_InvalidPeriod(t *testing.T) {
	e := newTestEngine(t, newMemStore())

	_, err := e.TrendingMovies(context.Background(), Period(9), 1, 10)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestTrendingMovies_ExcludesInactive(t *testing.T) {
	store := newMemStore()
	store.addMovie(Movie{ID: 1, Active: true, ReleaseDate: day(2026, time.January, 1)})
	store.addMovie(Movie{ID: 2, Active: true, ReleaseDate: day(2026, time.January, 1)})

	e := newTestEngine(t, store)
	ctx := context.Background()
	if err := e.RecordAction(ctx, 1, ActionView); err != nil {
		t.Fatal(err)
	}
	if err := e.RecordAction(ctx, 2, ActionShare); err != nil {
		t.Fatal(err)
	}

	// Deactivate after the actions landed; trending reads must drop it.
	m, _ := store.GetMovie(ctx, 2)
	m.Active = false
	store.addMovie(*m)

	got, err := e.TrendingMovies(ctx, PeriodDaily, 1, 10)
	if err != nil {
		t.Fatalf("TrendingMovies() error = %v", err)
	}
	if len(got.Results) != 1 || got.Results[0].Movie.ID != 1 {
		t.Errorf("results = %v, want only active movie 1", got.Results)
	}
}
