// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

// Package api exposes the recommendation engine over HTTP using the Chi
// router. Read endpoints serve similar, personalized, trending, and
// top-rated lists in a uniform response envelope; the write path records
// trending actions behind an IP rate limit. Engine error kinds map to
// HTTP statuses: not-found to 404, invalid argument to 400, dependency
// failure to 503.
package api
