// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/metrics"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/recommend"
)

// HealthFunc reports the signal store circuit breaker state for the
// health endpoint. A nil function means no breaker is wired.
type HealthFunc func() string

// Handler serves the recommendation endpoints.
type Handler struct {
	engine  *recommend.Engine
	health  HealthFunc
	timeout time.Duration
}

// NewHandler creates a handler over the engine. timeout bounds each
// request's engine call; zero disables the per-request deadline.
func NewHandler(engine *recommend.Engine, health HealthFunc, timeout time.Duration) *Handler {
	return &Handler{engine: engine, health: health, timeout: timeout}
}

// requestContext derives the engine call context for one request.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return r.Context(), func() {}
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

// SimilarMovies handles GET /api/v1/movies/{movieID}/similar.
func (h *Handler) SimilarMovies(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "movieID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	results, err := h.engine.SimilarMovies(ctx, movieID, limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	metrics.RecommendationsServed.WithLabelValues("similar", "similarity").Inc()
	respondJSON(w, r, http.StatusOK, map[string]any{
		"movie_id": movieID,
		"results":  results,
	})
}

// PersonalizedRecommendations handles GET /api/v1/users/{userID}/recommendations.
func (h *Handler) PersonalizedRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	page, limit, err := pagination(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.engine.PersonalizedRecommendations(ctx, userID, page, limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	metrics.RecommendationsServed.WithLabelValues("personalized", result.Source).Inc()
	respondJSON(w, r, http.StatusOK, result)
}

// TrendingMovies handles GET /api/v1/trending/{period}.
func (h *Handler) TrendingMovies(w http.ResponseWriter, r *http.Request) {
	period, err := recommend.ParsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	page, limit, err := pagination(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.engine.TrendingMovies(ctx, period, page, limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	metrics.RecommendationsServed.WithLabelValues("trending", result.Source).Inc()
	respondJSON(w, r, http.StatusOK, result)
}

// TopRatedMovies handles GET /api/v1/movies/top-rated.
func (h *Handler) TopRatedMovies(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pagination(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.engine.TopRatedMovies(ctx, page, limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	metrics.RecommendationsServed.WithLabelValues("top_rated", result.Source).Inc()
	respondJSON(w, r, http.StatusOK, result)
}

// actionRequest is the body of a trending action submission.
type actionRequest struct {
	Kind string `json:"kind"`
}

// RecordAction handles POST /api/v1/movies/{movieID}/actions.
func (h *Handler) RecordAction(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "movieID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}
	kind, err := recommend.ParseActionKind(req.Kind)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.engine.RecordAction(ctx, movieID, kind); err != nil {
		respondEngineError(w, r, err)
		return
	}

	metrics.TrendingActionsTotal.WithLabelValues(kind.String()).Inc()
	respondJSON(w, r, http.StatusAccepted, map[string]any{
		"movie_id": movieID,
		"kind":     kind.String(),
	})
}

// RecalculatePopularity handles POST /api/v1/movies/{movieID}/popularity/recalculate.
func (h *Handler) RecalculatePopularity(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "movieID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.engine.RecalculatePopularity(ctx, movieID); err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"movie_id": movieID,
		"status":   "recalculated",
	})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	body := map[string]any{"status": status}
	if h.health != nil {
		breaker := h.health()
		body["store_breaker"] = breaker
		if breaker == "open" {
			body["status"] = "degraded"
			respondJSON(w, r, http.StatusServiceUnavailable, body)
			return
		}
	}
	respondJSON(w, r, http.StatusOK, body)
}

// pathID parses a positive int64 URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter; absent yields 0,
// which the engine replaces with its configured default.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

// pagination parses the optional page and limit query parameters. Range
// validation stays with the engine so every caller gets one rule.
func pagination(r *http.Request) (page, limit int, err error) {
	if page, err = queryInt(r, "page"); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(r, "limit"); err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}
