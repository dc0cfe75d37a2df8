// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

// errors.go - Engine error kinds
//
// NotFound and InvalidArgument propagate to the caller as-is. An empty
// result set is never an error; it triggers the fallback chain instead.
// Dependency failures on non-critical side effects (popularity recompute
// after a write) are logged and swallowed.

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced movie or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates an unrecognized period, action kind,
	// or out-of-range pagination parameter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDependency indicates the signal store is unavailable or
	// returned inconsistent data.
	ErrDependency = errors.New("dependency failure")
)

// errInvalidf wraps ErrInvalidArgument with a formatted detail message.
func errInvalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// errNotFoundf wraps ErrNotFound with a formatted detail message.
func errNotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}
