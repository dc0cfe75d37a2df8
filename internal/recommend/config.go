// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"fmt"
	"time"
)

// Config contains tunable parameters for the engine. Weight values default
// to the documented scoring contracts; changing them changes ranking, not
// score bounds.
type Config struct {
	// Similarity configures the content similarity scorer.
	Similarity SimilarityConfig `koanf:"similarity"`

	// Personalized configures the personalized composite scorer.
	Personalized PersonalizedConfig `koanf:"personalized"`

	// Neighbors configures the collaborative neighbor finder.
	Neighbors NeighborConfig `koanf:"neighbors"`

	// Popularity configures the popularity recalculator.
	Popularity PopularityConfig `koanf:"popularity"`

	// Fallback configures the fallback chain stages.
	Fallback FallbackConfig `koanf:"fallback"`

	// Cache configures the read-path response cache.
	Cache CacheConfig `koanf:"cache"`

	// Limits configures pagination bounds.
	Limits LimitsConfig `koanf:"limits"`
}

// SimilarityConfig weights the content similarity composite.
type SimilarityConfig struct {
	// GenreWeight scales the genre overlap term.
	GenreWeight float64 `koanf:"genre_weight"`

	// RatingWeight scales the aggregate-rating closeness term.
	RatingWeight float64 `koanf:"rating_weight"`

	// RecencyWeight scales the release-year closeness term.
	RecencyWeight float64 `koanf:"recency_weight"`

	// MaxYearSpread is the year distance at which the recency term
	// bottoms out at zero.
	MaxYearSpread int `koanf:"max_year_spread"`
}

// PersonalizedConfig weights the personalized composite.
type PersonalizedConfig struct {
	// GenreWeight scales the mean genre-profile match.
	GenreWeight float64 `koanf:"genre_weight"`

	// ActorWeight scales the mean actor-profile match.
	ActorWeight float64 `koanf:"actor_weight"`

	// DirectorWeight scales the director-profile match.
	DirectorWeight float64 `koanf:"director_weight"`

	// DecadeWeight scales the decade-profile match.
	DecadeWeight float64 `koanf:"decade_weight"`

	// RatingWeight scales the normalized aggregate rating.
	RatingWeight float64 `koanf:"rating_weight"`
}

// NeighborConfig tunes the collaborative neighbor finder.
type NeighborConfig struct {
	// TopK is the number of highest-correlated users to aggregate.
	TopK int `koanf:"top_k"`

	// MinSupport is the minimum number of neighbors that must have
	// rated a movie before it qualifies as a candidate.
	MinSupport int `koanf:"min_support"`
}

// PopularityConfig weights the popularity recalculation formula.
type PopularityConfig struct {
	// ViewWeight scales the view counter.
	ViewWeight float64 `koanf:"view_weight"`

	// RatingWeight scales the rating counter.
	RatingWeight float64 `koanf:"rating_weight"`

	// ReviewWeight scales the review counter.
	ReviewWeight float64 `koanf:"review_weight"`

	// RatingBoost scales the avgRating x ratingCount product.
	RatingBoost float64 `koanf:"rating_boost"`

	// DecayDays is the exponential decay constant in days since release.
	DecayDays float64 `koanf:"decay_days"`
}

// FallbackConfig tunes the fallback chain stages.
type FallbackConfig struct {
	// MinRatingCount is the rating-count threshold for the top-rated
	// stage.
	MinRatingCount int `koanf:"min_rating_count"`
}

// CacheConfig controls the per-request response cache on read paths.
type CacheConfig struct {
	// Enabled turns the cache on.
	Enabled bool `koanf:"enabled"`

	// TTL is how long a cached page stays valid.
	TTL time.Duration `koanf:"ttl"`

	// MaxEntries bounds the cache size; expired entries are evicted
	// when the bound is hit.
	MaxEntries int `koanf:"max_entries"`
}

// LimitsConfig bounds pagination parameters.
type LimitsConfig struct {
	// DefaultPageSize applies when the caller passes zero.
	DefaultPageSize int `koanf:"default_page_size"`

	// MaxPageSize caps the caller-requested page size.
	MaxPageSize int `koanf:"max_page_size"`
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() *Config {
	return &Config{
		Similarity: SimilarityConfig{
			GenreWeight:   0.4,
			RatingWeight:  0.3,
			RecencyWeight: 0.3,
			MaxYearSpread: 100,
		},
		Personalized: PersonalizedConfig{
			GenreWeight:    0.3,
			ActorWeight:    0.2,
			DirectorWeight: 0.15,
			DecadeWeight:   0.15,
			RatingWeight:   0.2,
		},
		Neighbors: NeighborConfig{
			TopK:       10,
			MinSupport: 2,
		},
		Popularity: PopularityConfig{
			ViewWeight:   1,
			RatingWeight: 2,
			ReviewWeight: 1.5,
			RatingBoost:  3,
			DecayDays:    365,
		},
		Fallback: FallbackConfig{
			MinRatingCount: 10,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        time.Minute,
			MaxEntries: 1000,
		},
		Limits: LimitsConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Similarity.GenreWeight < 0 || c.Similarity.RatingWeight < 0 || c.Similarity.RecencyWeight < 0 {
		return fmt.Errorf("similarity weights must be non-negative")
	}
	if c.Similarity.MaxYearSpread <= 0 {
		return fmt.Errorf("similarity max_year_spread must be positive, got %d", c.Similarity.MaxYearSpread)
	}
	if c.Personalized.GenreWeight < 0 || c.Personalized.ActorWeight < 0 ||
		c.Personalized.DirectorWeight < 0 || c.Personalized.DecadeWeight < 0 ||
		c.Personalized.RatingWeight < 0 {
		return fmt.Errorf("personalized weights must be non-negative")
	}
	if c.Neighbors.TopK <= 0 {
		return fmt.Errorf("neighbors top_k must be positive, got %d", c.Neighbors.TopK)
	}
	if c.Neighbors.MinSupport < 1 {
		return fmt.Errorf("neighbors min_support must be at least 1, got %d", c.Neighbors.MinSupport)
	}
	if c.Popularity.DecayDays <= 0 {
		return fmt.Errorf("popularity decay_days must be positive, got %f", c.Popularity.DecayDays)
	}
	if c.Fallback.MinRatingCount < 0 {
		return fmt.Errorf("fallback min_rating_count must be non-negative, got %d", c.Fallback.MinRatingCount)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache ttl must be positive when cache is enabled")
		}
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache max_entries must be positive when cache is enabled")
		}
	}
	if c.Limits.DefaultPageSize <= 0 {
		return fmt.Errorf("limits default_page_size must be positive, got %d", c.Limits.DefaultPageSize)
	}
	if c.Limits.MaxPageSize < c.Limits.DefaultPageSize {
		return fmt.Errorf("limits max_page_size %d below default_page_size %d",
			c.Limits.MaxPageSize, c.Limits.DefaultPageSize)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
