// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"time"
)

// ActionKind classifies user actions that feed the trending aggregator.
type ActionKind int

const (
	// ActionView indicates a movie detail view.
	ActionView ActionKind = iota
	// ActionRating indicates a rating submission.
	ActionRating
	// ActionReview indicates a written review submission.
	ActionReview
	// ActionShare indicates a share to an external channel.
	ActionShare
	// ActionFavorite indicates the movie was added to favorites.
	ActionFavorite
)

// String returns a human-readable name for the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionView:
		return "view"
	case ActionRating:
		return "rating"
	case ActionReview:
		return "review"
	case ActionShare:
		return "share"
	case ActionFavorite:
		return "favorite"
	default:
		return "unknown"
	}
}

// Weight returns the canonical trending score contribution for this action.
// One table is used at every call site: view=1, rating=5, review=10,
// share=3, favorite=2.
func (k ActionKind) Weight() float64 {
	switch k {
	case ActionView:
		return 1
	case ActionRating:
		return 5
	case ActionReview:
		return 10
	case ActionShare:
		return 3
	case ActionFavorite:
		return 2
	default:
		return 0
	}
}

// ParseActionKind converts a string to an ActionKind.
// Unrecognized values yield ErrInvalidArgument.
func ParseActionKind(s string) (ActionKind, error) {
	switch s {
	case "view":
		return ActionView, nil
	case "rating":
		return ActionRating, nil
	case "review":
		return ActionReview, nil
	case "share":
		return ActionShare, nil
	case "favorite":
		return ActionFavorite, nil
	default:
		return 0, errInvalidf("unknown action kind %q", s)
	}
}

// Period is the granularity of a trending window.
type Period int

const (
	// PeriodDaily covers the trailing day.
	PeriodDaily Period = iota
	// PeriodWeekly covers the trailing 7 days.
	PeriodWeekly
	// PeriodMonthly covers the trailing calendar month.
	PeriodMonthly
)

// String returns a human-readable period name.
func (p Period) String() string {
	switch p {
	case PeriodDaily:
		return "daily"
	case PeriodWeekly:
		return "weekly"
	case PeriodMonthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// WindowStart returns the start of the trending window ending at now.
func (p Period) WindowStart(now time.Time) time.Time {
	switch p {
	case PeriodDaily:
		return now.AddDate(0, 0, -1)
	case PeriodWeekly:
		return now.AddDate(0, 0, -7)
	case PeriodMonthly:
		return now.AddDate(0, -1, 0)
	default:
		return now
	}
}

// ParsePeriod converts a string to a Period.
// Unrecognized values yield ErrInvalidArgument.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "daily":
		return PeriodDaily, nil
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	default:
		return 0, errInvalidf("unknown trending period %q", s)
	}
}

// CastMember is one entry in a movie's ordered cast list.
type CastMember struct {
	// Name is the actor's name.
	Name string `json:"name"`

	// Role is the character played.
	Role string `json:"role,omitempty"`

	// Order is the billing order, lower is more prominent.
	Order int `json:"order"`
}

// Movie is a catalog record as read from the signal store.
// Popularity is derived from the counters and release date and is never
// written directly by clients.
type Movie struct {
	// ID is the unique catalog identifier.
	ID int64 `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Genres is the set of genre tags.
	Genres []string `json:"genres"`

	// Director is the director's name.
	Director string `json:"director,omitempty"`

	// Cast is the ordered cast list.
	Cast []CastMember `json:"cast,omitempty"`

	// ReleaseDate is the theatrical release date.
	ReleaseDate time.Time `json:"release_date"`

	// AvgRating is the aggregate rating (0-5). Zero means unrated.
	AvgRating float64 `json:"avg_rating"`

	// RatingCount is the number of ratings backing AvgRating.
	RatingCount int `json:"rating_count"`

	// ViewCount is the total view counter.
	ViewCount int `json:"view_count"`

	// ReviewCount is the total review counter.
	ReviewCount int `json:"review_count"`

	// Popularity is the time-decayed popularity score.
	Popularity float64 `json:"popularity"`

	// Active reports whether the movie is visible to users.
	Active bool `json:"active"`

	// CreatedAt is when the record entered the catalog.
	CreatedAt time.Time `json:"created_at"`
}

// Year returns the release year.
func (m *Movie) Year() int {
	return m.ReleaseDate.Year()
}

// Decade returns the release decade, e.g. 1990 for 1994.
func (m *Movie) Decade() int {
	return (m.Year() / 10) * 10
}

// Rating is one user's rating of one movie. At most one exists per
// (user, movie) pair; re-rating mutates the row in place.
type Rating struct {
	// UserID identifies the rating user.
	UserID int64 `json:"user_id"`

	// MovieID identifies the rated movie.
	MovieID int64 `json:"movie_id"`

	// Value is the rating in [1, 5].
	Value float64 `json:"value"`

	// CreatedAt is when the rating was first submitted.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the rating was last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// ViewEvent is one viewing-history entry. The data source is external and
// may be empty; the profile builder accepts it as a reserved signal.
type ViewEvent struct {
	// MovieID identifies the viewed movie.
	MovieID int64 `json:"movie_id"`

	// Timestamp is when the view occurred.
	Timestamp time.Time `json:"timestamp"`

	// Duration is how long the user watched.
	Duration time.Duration `json:"duration"`
}

// TrendingBucket is a per-day aggregate of action scores for one movie and
// one period granularity. Buckets are created lazily on first increment
// and are never deleted by this engine.
type TrendingBucket struct {
	// MovieID identifies the movie.
	MovieID int64 `json:"movie_id"`

	// Period is the window granularity this bucket feeds.
	Period Period `json:"period"`

	// DateBucket is the start-of-day UTC the bucket covers.
	DateBucket time.Time `json:"date_bucket"`

	// Score is the cumulative weighted action score.
	Score float64 `json:"score"`

	// Per-action counters.
	ViewCount     int `json:"view_count"`
	RatingCount   int `json:"rating_count"`
	ReviewCount   int `json:"review_count"`
	ShareCount    int `json:"share_count"`
	FavoriteCount int `json:"favorite_count"`
}

// TrendingTotal is a movie's summed bucket score over a query window.
type TrendingTotal struct {
	// MovieID identifies the movie.
	MovieID int64 `json:"movie_id"`

	// Score is the summed bucket score within the window.
	Score float64 `json:"score"`
}

// PreferenceProfile holds a user's normalized preference weights. Each
// non-empty map sums to 1. It is computed per request and never persisted.
type PreferenceProfile struct {
	// Genres maps genre tag to preference weight.
	Genres map[string]float64 `json:"genres"`

	// Actors maps actor name to preference weight.
	Actors map[string]float64 `json:"actors"`

	// Directors maps director name to preference weight.
	Directors map[string]float64 `json:"directors"`

	// Decades maps release decade (e.g. 1990) to preference weight.
	Decades map[int]float64 `json:"decades"`
}

// IsEmpty reports whether the profile carries no signal at all.
func (p *PreferenceProfile) IsEmpty() bool {
	return len(p.Genres) == 0 && len(p.Actors) == 0 &&
		len(p.Directors) == 0 && len(p.Decades) == 0
}

// ScoredMovie is a movie with its ranking score attached.
type ScoredMovie struct {
	// Movie is the catalog record.
	Movie Movie `json:"movie"`

	// Score is the raw composite score used for ranking.
	Score float64 `json:"score"`

	// MatchScore is the client-facing 0-100 match percentage. Only set
	// on personalized results.
	MatchScore int `json:"match_score,omitempty"`
}

// Result sources name the stage that ultimately answered a request.
const (
	// SourcePersonalized is the preference-profile composite scorer.
	SourcePersonalized = "personalized"
	// SourceCollaborative is the neighbor aggregation stage.
	SourceCollaborative = "collaborative"
	// SourceTrending is the windowed trending aggregation.
	SourceTrending = "trending"
	// SourceTopRated is the aggregate-rating ranking stage.
	SourceTopRated = "top_rated"
	// SourceNewest is the newest-first fallback of last resort.
	SourceNewest = "newest"
)

// ResultPage is the unified paginated envelope returned by every list
// operation, regardless of which fallback stage answered. An empty page is
// a valid result, never an error.
type ResultPage struct {
	// Results is the page of ranked movies.
	Results []ScoredMovie `json:"results"`

	// Total is the total number of matching movies across all pages.
	Total int `json:"total"`

	// Page is the 1-based page number.
	Page int `json:"page"`

	// TotalPages is the number of pages at the requested page size.
	TotalPages int `json:"total_pages"`

	// Source names the stage that produced the results.
	Source string `json:"source"`
}

// dayStartUTC truncates t to the start of its UTC day.
func dayStartUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
