// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/logging"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/recommend"
)

// notFoundErr maps sql.ErrNoRows to the engine's sentinel so callers can
// match with errors.Is across the store boundary.
func notFoundErr(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", recommend.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// closeRows closes a rows iterator and logs any error.
func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logging.Warn().Err(err).Msg("failed to close rows")
	}
}
