// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/metrics"
)

// Engine coordinates the recommendation and trending operations exposed to
// the request layer. It is safe for concurrent use: all read paths are
// pure computations over the signal store with no cross-request mutable
// state beyond the response cache.
type Engine struct {
	config *Config
	logger zerolog.Logger
	store  Store
	clock  Clock

	similarity SimilarityIndex
	neighbors  NeighborIndex

	// Response cache for read-heavy list endpoints.
	cache   map[string]cacheEntry
	cacheMu sync.RWMutex
}

// cacheEntry holds a cached result page.
type cacheEntry struct {
	page      ResultPage
	expiresAt time.Time
}

// NewEngine creates an engine over the given signal store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store Store, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		store:  store,
		clock:  SystemClock,
		cache:  make(map[string]cacheEntry),
	}
	e.similarity = newContentSimilarity(cfg.Similarity)
	e.neighbors = newPearsonNeighbors(store, cfg.Neighbors)
	return e, nil
}

// SetClock replaces the engine's time source. Tests pin the instant;
// production wiring keeps the default SystemClock.
func (e *Engine) SetClock(c Clock) {
	if c != nil {
		e.clock = c
	}
}

// SetSimilarityIndex replaces the default on-read similarity computation,
// e.g. with a precomputed index.
func (e *Engine) SetSimilarityIndex(idx SimilarityIndex) {
	if idx != nil {
		e.similarity = idx
	}
}

// SetNeighborIndex replaces the default on-read neighbor computation.
func (e *Engine) SetNeighborIndex(idx NeighborIndex) {
	if idx != nil {
		e.neighbors = idx
	}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// SimilarMovies returns up to limit active movies ranked by content
// similarity to the reference movie. A missing reference is an error, not
// a fallback case.
func (e *Engine) SimilarMovies(ctx context.Context, movieID int64, limit int) ([]ScoredMovie, error) {
	if limit <= 0 {
		limit = e.config.Limits.DefaultPageSize
	}
	if limit > e.config.Limits.MaxPageSize {
		limit = e.config.Limits.MaxPageSize
	}

	ref, err := e.store.GetMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get reference movie: %w", err)
	}

	candidates, err := e.store.ListActiveMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	scored, err := e.similarity.Similar(ctx, ref, candidates, limit)
	if err != nil {
		return nil, fmt.Errorf("score similarity: %w", err)
	}

	e.logger.Debug().
		Int64("movie_id", movieID).
		Int("returned", len(scored)).
		Msg("similar movies computed")
	return scored, nil
}

// TopRatedMovies pages movies with a qualifying rating count by aggregate
// rating descending.
func (e *Engine) TopRatedMovies(ctx context.Context, page, limit int) (ResultPage, error) {
	page, limit, err := e.normalizePagination(page, limit)
	if err != nil {
		return ResultPage{}, err
	}

	key := fmt.Sprintf("toprated:%d:%d", page, limit)
	if cached, ok := e.cachedPage(key); ok {
		return cached, nil
	}

	result, err := e.topRatedStage(page, limit).fetch(ctx)
	if err != nil {
		return ResultPage{}, fmt.Errorf("top rated: %w", err)
	}

	e.storePage(key, result)
	return result, nil
}

// cachedPage returns a valid cached page for key, if any.
func (e *Engine) cachedPage(key string) (ResultPage, bool) {
	if !e.config.Cache.Enabled {
		return ResultPage{}, false
	}

	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()

	entry, ok := e.cache[key]
	if !ok || e.clock().After(entry.expiresAt) {
		metrics.EngineCacheMisses.Inc()
		return ResultPage{}, false
	}
	metrics.EngineCacheHits.Inc()
	return entry.page, true
}

// storePage caches a result page under key.
func (e *Engine) storePage(key string, page ResultPage) {
	if !e.config.Cache.Enabled {
		return
	}

	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	if len(e.cache) >= e.config.Cache.MaxEntries {
		e.evictExpiredLocked()
	}
	e.cache[key] = cacheEntry{
		page:      page,
		expiresAt: e.clock().Add(e.config.Cache.TTL),
	}
}

// evictExpiredLocked removes expired cache entries.
// Must be called with cacheMu held.
func (e *Engine) evictExpiredLocked() {
	now := e.clock()
	for key, entry := range e.cache {
		if now.After(entry.expiresAt) {
			delete(e.cache, key)
		}
	}
}

// ClearCache drops all cached pages. Called after bulk catalog mutations.
func (e *Engine) ClearCache() {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	e.cache = make(map[string]cacheEntry)
}
