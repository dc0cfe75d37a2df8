// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/logging"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/metrics"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID assigns each request a UUID, honoring an X-Request-ID header
// set by an upstream proxy, and exposes it on the response header and the
// request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestIDFrom extracts the request ID from context.
func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Instrument records Prometheus metrics and an access log line for each
// request. The endpoint label uses the Chi route pattern, not the raw
// path, to keep label cardinality bounded.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.APIActiveRequests.Inc()
		defer metrics.APIActiveRequests.Dec()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		endpoint := chi.RouteContext(r.Context()).RoutePattern()
		if endpoint == "" {
			endpoint = r.URL.Path
		}
		duration := time.Since(start)
		metrics.RecordAPIRequest(r.Method, endpoint, sw.status, duration)
		logging.Debug().
			Str("method", r.Method).
			Str("endpoint", endpoint).
			Int("status", sw.status).
			Dur("duration", duration).
			Str("request_id", requestIDFrom(r.Context())).
			Msg("request handled")
	})
}

// statusWriter captures the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// WriteRateLimit returns an IP-keyed rate limiter for the action write
// path. Rejections are counted and answered with the standard envelope.
func WriteRateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			respondError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests,
				"rate limit exceeded")
		}),
	)
}
