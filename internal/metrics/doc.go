// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

// Package metrics registers the service's Prometheus collectors. All
// collectors are registered on the default registry via promauto at
// package init; the api package exposes them on /metrics.
package metrics
