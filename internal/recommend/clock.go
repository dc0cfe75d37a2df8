// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import "time"

// Clock supplies the current time. Window computation and popularity decay
// read time through the engine's clock rather than ambient system time so
// tests can pin the instant.
type Clock func() time.Time

// SystemClock reads the real system time.
func SystemClock() time.Time {
	return time.Now()
}

// FixedClock returns a clock pinned to t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
