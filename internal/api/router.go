// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/config"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/recommend"
)

// NewRouter wires the engine into the HTTP surface. The write path (action
// submissions and popularity recomputes) carries an IP rate limit; reads
// are unthrottled. health may be nil when no breaker is wired.
func NewRouter(engine *recommend.Engine, cfg *config.APIConfig, health HealthFunc) http.Handler {
	handler := NewHandler(engine, health, cfg.RequestTimeout)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	// CORS is global so OPTIONS preflights are answered before routing.
	// The origin allowlist is empty unless configured, which denies all
	// cross-origin callers.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	r.Get("/healthz", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Instrument)

		r.Get("/movies/top-rated", handler.TopRatedMovies)
		r.Get("/movies/{movieID}/similar", handler.SimilarMovies)
		r.Get("/users/{userID}/recommendations", handler.PersonalizedRecommendations)
		r.Get("/trending/{period}", handler.TrendingMovies)

		r.Group(func(r chi.Router) {
			r.Use(WriteRateLimit(cfg.RateLimitReqs, cfg.RateLimitWindow))
			r.Post("/movies/{movieID}/actions", handler.RecordAction)
			r.Post("/movies/{movieID}/popularity/recalculate", handler.RecalculatePopularity)
		})
	})

	return r
}
