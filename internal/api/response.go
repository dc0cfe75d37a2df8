// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/logging"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/recommend"
)

// APIResponse is the wrapper every endpoint returns, success or failure.
type APIResponse struct {
	// Success indicates whether the request was handled.
	Success bool `json:"success"`

	// Data contains the response payload (null on error).
	Data any `json:"data,omitempty"`

	// Error contains error details (null on success).
	Error *APIError `json:"error,omitempty"`

	// Meta carries response metadata.
	Meta *APIMeta `json:"meta,omitempty"`
}

// APIError is the machine-readable error body.
type APIError struct {
	// Code is a stable machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// RequestID ties the error to server logs.
	RequestID string `json:"request_id,omitempty"`
}

// APIMeta carries per-response metadata.
type APIMeta struct {
	// RequestID is the unique request identifier for tracing.
	RequestID string `json:"request_id,omitempty"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// Error codes for API responses.
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// respondJSON writes data wrapped in the success envelope.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			RequestID: requestIDFrom(r.Context()),
			Timestamp: time.Now().UTC(),
		},
	})
}

// respondError writes an error envelope with the given code and message.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := requestIDFrom(r.Context())
	writeJSON(w, status, APIResponse{
		Success: false,
		Error: &APIError{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
		Meta: &APIMeta{
			RequestID: requestID,
			Timestamp: time.Now().UTC(),
		},
	})
}

// respondEngineError maps engine error kinds to HTTP statuses.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, recommend.ErrInvalidArgument):
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, recommend.ErrDependency):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"recommendation engine temporarily unavailable")
	default:
		logging.Error().Err(err).
			Str("path", r.URL.Path).
			Msg("unhandled engine error")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			"internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}
