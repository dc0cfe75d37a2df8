// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/metrics"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/recommend"
)

// movieColumns is the canonical select list for movie rows.
const movieColumns = `id, title, director, release_date, avg_rating, rating_count,
	view_count, review_count, popularity, active, created_at`

// CreateMovie inserts a catalog record with its genres and cast in one
// transaction. Used by the ingest path and tests; the engine never writes
// catalog rows.
func (db *DB) CreateMovie(ctx context.Context, m *recommend.Movie) error {
	start := time.Now()
	err := db.createMovie(ctx, m)
	metrics.RecordDBQuery("insert", "movies", time.Since(start), err)
	return err
}

func (db *DB) createMovie(ctx context.Context, m *recommend.Movie) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO movies (id, title, director, release_date, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Director, m.ReleaseDate, m.Active, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movie %d: %w", m.ID, err)
	}

	for _, genre := range m.Genres {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO movie_genres (movie_id, genre) VALUES (?, ?)`,
			m.ID, genre); err != nil {
			return fmt.Errorf("insert genre %q: %w", genre, err)
		}
	}
	for _, member := range m.Cast {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO movie_cast (movie_id, actor, role, cast_order) VALUES (?, ?, ?, ?)`,
			m.ID, member.Name, member.Role, member.Order); err != nil {
			return fmt.Errorf("insert cast %q: %w", member.Name, err)
		}
	}

	return tx.Commit()
}

// GetMovie returns one movie with genres and cast, or ErrNotFound.
func (db *DB) GetMovie(ctx context.Context, id int64) (*recommend.Movie, error) {
	start := time.Now()
	m, err := db.getMovie(ctx, id)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)
	return m, err
}

func (db *DB) getMovie(ctx context.Context, id int64) (*recommend.Movie, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)

	m, err := scanMovie(row)
	if err != nil {
		return nil, notFoundErr(err, "movie %d", id)
	}

	movies := []recommend.Movie{m}
	if err := db.loadMovieAttributes(ctx, movies); err != nil {
		return nil, err
	}
	return &movies[0], nil
}

// ListActiveMovies returns every active movie with genres and cast,
// ordered by ID.
func (db *DB) ListActiveMovies(ctx context.Context) ([]recommend.Movie, error) {
	start := time.Now()
	movies, err := db.listActiveMovies(ctx)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)
	return movies, err
}

func (db *DB) listActiveMovies(ctx context.Context) ([]recommend.Movie, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list active movies: %w", err)
	}
	defer closeRows(rows)

	movies, err := collectMovies(rows)
	if err != nil {
		return nil, err
	}
	if err := db.loadMovieAttributes(ctx, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// ListNewestMovies pages active movies by creation time descending and
// returns the total active count.
func (db *DB) ListNewestMovies(ctx context.Context, limit, offset int) ([]recommend.Movie, int, error) {
	start := time.Now()
	movies, total, err := db.pageMovies(ctx,
		`WHERE active`,
		`ORDER BY created_at DESC, id ASC`,
		nil, limit, offset)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)
	return movies, total, err
}

// ListTopRatedMovies pages rated active movies with at least minRatingCount
// ratings by aggregate rating descending.
func (db *DB) ListTopRatedMovies(ctx context.Context, minRatingCount, limit, offset int) ([]recommend.Movie, int, error) {
	start := time.Now()
	movies, total, err := db.pageMovies(ctx,
		`WHERE active AND avg_rating > 0 AND rating_count >= ?`,
		`ORDER BY avg_rating DESC, id ASC`,
		[]any{minRatingCount}, limit, offset)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)
	return movies, total, err
}

// pageMovies runs a count plus a paged select sharing one WHERE clause.
func (db *DB) pageMovies(ctx context.Context, where, order string, args []any, limit, offset int) ([]recommend.Movie, int, error) {
	var total int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movies `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	pageArgs := append(append([]any{}, args...), limit, offset)
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies `+where+` `+order+` LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("page movies: %w", err)
	}
	defer closeRows(rows)

	movies, err := collectMovies(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := db.loadMovieAttributes(ctx, movies); err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

// IncrementMovieCounter bumps the movie-level counter mirroring the action
// kind. Kinds with no movie-level counter are a no-op.
func (db *DB) IncrementMovieCounter(ctx context.Context, movieID int64, kind recommend.ActionKind) error {
	var column string
	switch kind {
	case recommend.ActionView:
		column = "view_count"
	case recommend.ActionReview:
		column = "review_count"
	default:
		return nil
	}

	start := time.Now()
	res, err := db.conn.ExecContext(ctx,
		`UPDATE movies SET `+column+` = `+column+` + 1 WHERE id = ?`, movieID)
	metrics.RecordDBQuery("update", "movies", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("increment %s for movie %d: %w", column, movieID, err)
	}
	return requireRow(res, movieID)
}

// UpdateMoviePopularity writes the derived popularity score.
func (db *DB) UpdateMoviePopularity(ctx context.Context, movieID int64, value float64) error {
	start := time.Now()
	res, err := db.conn.ExecContext(ctx,
		`UPDATE movies SET popularity = ? WHERE id = ?`, value, movieID)
	metrics.RecordDBQuery("update", "movies", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("update popularity for movie %d: %w", movieID, err)
	}
	return requireRow(res, movieID)
}

// SetMovieActive toggles catalog visibility.
func (db *DB) SetMovieActive(ctx context.Context, movieID int64, active bool) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE movies SET active = ? WHERE id = ?`, active, movieID)
	if err != nil {
		return fmt.Errorf("set active for movie %d: %w", movieID, err)
	}
	return requireRow(res, movieID)
}

// requireRow converts a zero-row update into ErrNotFound.
func requireRow(res sql.Result, movieID int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: movie %d", recommend.ErrNotFound, movieID)
	}
	return nil
}

// scanMovie reads one movie row.
func scanMovie(scanner interface{ Scan(dest ...any) error }) (recommend.Movie, error) {
	var m recommend.Movie
	var director sql.NullString
	err := scanner.Scan(&m.ID, &m.Title, &director, &m.ReleaseDate,
		&m.AvgRating, &m.RatingCount, &m.ViewCount, &m.ReviewCount,
		&m.Popularity, &m.Active, &m.CreatedAt)
	if err != nil {
		return recommend.Movie{}, err
	}
	m.Director = director.String
	return m, nil
}

// collectMovies drains a movie rows iterator.
func collectMovies(rows *sql.Rows) ([]recommend.Movie, error) {
	var movies []recommend.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

// loadMovieAttributes fills Genres and Cast for the given movies in two
// queries total.
func (db *DB) loadMovieAttributes(ctx context.Context, movies []recommend.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	byID := make(map[int64]*recommend.Movie, len(movies))
	ids := make([]any, 0, len(movies))
	for i := range movies {
		byID[movies[i].ID] = &movies[i]
		ids = append(ids, movies[i].ID)
	}
	in := placeholders(len(ids))

	rows, err := db.conn.QueryContext(ctx,
		`SELECT movie_id, genre FROM movie_genres WHERE movie_id IN (`+in+`) ORDER BY movie_id, genre`,
		ids...)
	if err != nil {
		return fmt.Errorf("load genres: %w", err)
	}
	defer closeRows(rows)
	for rows.Next() {
		var movieID int64
		var genre string
		if err := rows.Scan(&movieID, &genre); err != nil {
			return fmt.Errorf("scan genre: %w", err)
		}
		if m := byID[movieID]; m != nil {
			m.Genres = append(m.Genres, genre)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate genres: %w", err)
	}

	castRows, err := db.conn.QueryContext(ctx,
		`SELECT movie_id, actor, role, cast_order FROM movie_cast WHERE movie_id IN (`+in+`) ORDER BY movie_id, cast_order`,
		ids...)
	if err != nil {
		return fmt.Errorf("load cast: %w", err)
	}
	defer closeRows(castRows)
	for castRows.Next() {
		var movieID int64
		var member recommend.CastMember
		var role sql.NullString
		if err := castRows.Scan(&movieID, &member.Name, &role, &member.Order); err != nil {
			return fmt.Errorf("scan cast: %w", err)
		}
		member.Role = role.String
		if m := byID[movieID]; m != nil {
			m.Cast = append(m.Cast, member)
		}
	}
	if err := castRows.Err(); err != nil {
		return fmt.Errorf("iterate cast: %w", err)
	}
	return nil
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
