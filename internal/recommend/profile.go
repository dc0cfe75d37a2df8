// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

// profile.go - Preference profile builder
//
// Converts a user's rating history into normalized weighted preference
// vectors over genres, actors, directors, and release decades. Each rating
// contributes value/5 (mapping 1-5 onto 0.2-1.0) to every attribute of the
// rated movie; each map is then normalized to sum to 1.

// BuildPreferenceProfile builds a profile from a user's ratings and the
// movies they reference. Viewing history is a reserved signal: it is
// accepted so callers can thread it through, but contributes no weight
// yet. A user with zero ratings yields four empty maps; callers must treat
// that as "no signal" rather than score against it.
func BuildPreferenceProfile(ratings []Rating, movies map[int64]*Movie, history []ViewEvent) *PreferenceProfile {
	_ = history // reserved input, see doc comment

	p := &PreferenceProfile{
		Genres:    make(map[string]float64),
		Actors:    make(map[string]float64),
		Directors: make(map[string]float64),
		Decades:   make(map[int]float64),
	}

	for i := range ratings {
		r := &ratings[i]
		m, ok := movies[r.MovieID]
		if !ok {
			continue
		}

		weight := r.Value / 5

		for _, genre := range m.Genres {
			p.Genres[genre] += weight
		}
		for _, member := range m.Cast {
			p.Actors[member.Name] += weight
		}
		if m.Director != "" {
			p.Directors[m.Director] += weight
		}
		p.Decades[m.Decade()] += weight
	}

	normalizeStringMap(p.Genres)
	normalizeStringMap(p.Actors)
	normalizeStringMap(p.Directors)
	normalizeIntMap(p.Decades)

	return p
}

// normalizeStringMap scales map values to sum to 1. No-op when empty.
func normalizeStringMap(m map[string]float64) {
	var sum float64
	for _, v := range m {
		sum += v
	}
	if sum > 0 {
		for k := range m {
			m[k] /= sum
		}
	}
}

// normalizeIntMap scales map values to sum to 1. No-op when empty.
func normalizeIntMap(m map[int]float64) {
	var sum float64
	for _, v := range m {
		sum += v
	}
	if sum > 0 {
		for k := range m {
			m[k] /= sum
		}
	}
}
