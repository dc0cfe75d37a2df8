// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

// Package recommend scores, ranks, and surfaces movies: content
// similarity, collaborative filtering over correlated users, personalized
// preference blending, time-windowed trending with popularity decay, and
// multi-level fallback chains for sparse data.
//
// # Operations
//
//   - SimilarMovies: genre/rating/recency similarity to a reference movie
//   - PersonalizedRecommendations: preference-profile composite scoring
//   - TrendingMovies: windowed bucket aggregation per period
//   - TopRatedMovies: aggregate-rating ranking
//   - RecordAction: atomic trending increments plus popularity recompute
//
// # Fallback chains
//
// Each list operation answers from the first non-empty stage:
//
//	trending:     window aggregation -> top-rated -> newest
//	personalized: composite scoring -> collaborative -> top-rated -> newest
//
// Pagination threads through the whole chain unchanged, and every stage
// answers in the same ResultPage envelope.
//
// # Concurrency
//
// All operations are synchronous request/response. Read paths share no
// mutable state and may run with unbounded concurrency; the only
// concurrency-sensitive write is the trending bucket increment, which the
// Store contract requires to be a single atomic increment-or-create.
// Callers impose request-level timeouts via context.
//
// This package has no dependencies on other internal packages; the Store
// interface decouples it from the database layer.
package recommend
