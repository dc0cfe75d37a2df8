// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package recommend

import (
	"context"
	"fmt"
)

// fallback.go - Fallback chain orchestration
//
// A chain is an ordered list of stages tried until one yields a non-empty
// result set. Pagination parameters thread through unchanged, so the
// client-visible page size is stable regardless of which stage answers. A
// stage with matches answers even when the requested page lies past the
// end: the empty page is a valid answer, not a reason to fall through.

// stage is one step of a fallback chain.
type stage struct {
	name  string
	fetch func(ctx context.Context) (ResultPage, error)
}

// runChain invokes stages in order and returns the first whose result set
// is non-empty. A stage answers when it has any matches at all, even if
// the requested page is past the end of them. If every stage's set is
// empty, the last stage's (empty, valid) page is returned.
func (e *Engine) runChain(ctx context.Context, chain string, stages []stage) (ResultPage, error) {
	var page ResultPage
	for _, s := range stages {
		var err error
		page, err = s.fetch(ctx)
		if err != nil {
			return ResultPage{}, fmt.Errorf("%s stage: %w", s.name, err)
		}
		if page.Total > 0 {
			return page, nil
		}
		e.logger.Debug().
			Str("chain", chain).
			Str("stage", s.name).
			Msg("stage empty, falling through")
	}
	return page, nil
}

// topRatedStage pages rated movies by aggregate rating descending,
// restricted to the configured minimum rating count.
func (e *Engine) topRatedStage(page, limit int) stage {
	return stage{
		name: SourceTopRated,
		fetch: func(ctx context.Context) (ResultPage, error) {
			movies, total, err := e.store.ListTopRatedMovies(ctx, e.config.Fallback.MinRatingCount, limit, (page-1)*limit)
			if err != nil {
				return ResultPage{}, err
			}
			return moviePage(movies, total, page, limit, SourceTopRated), nil
		},
	}
}

// newestStage pages active movies by creation time descending. It is the
// stage of last resort: it yields results whenever any active movie exists.
func (e *Engine) newestStage(page, limit int) stage {
	return stage{
		name: SourceNewest,
		fetch: func(ctx context.Context) (ResultPage, error) {
			movies, total, err := e.store.ListNewestMovies(ctx, limit, (page-1)*limit)
			if err != nil {
				return ResultPage{}, err
			}
			return moviePage(movies, total, page, limit, SourceNewest), nil
		},
	}
}

// moviePage wraps a pre-paginated movie slice in a result envelope.
func moviePage(movies []Movie, total, page, limit int, source string) ResultPage {
	results := make([]ScoredMovie, len(movies))
	for i := range movies {
		results[i] = ScoredMovie{Movie: movies[i]}
	}
	return ResultPage{
		Results:    results,
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
		Source:     source,
	}
}

// paginate slices a fully-ranked result set to the requested page.
func paginate(scored []ScoredMovie, page, limit int, source string) ResultPage {
	total := len(scored)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return ResultPage{
		Results:    scored[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
		Source:     source,
	}
}

// totalPages computes the page count at the given page size.
func totalPages(total, limit int) int {
	if total == 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// normalizePagination applies defaults and bounds to caller-supplied
// pagination parameters. Out-of-range values yield ErrInvalidArgument.
func (e *Engine) normalizePagination(page, limit int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = e.config.Limits.DefaultPageSize
	}
	if page < 1 {
		return 0, 0, errInvalidf("page %d out of range", page)
	}
	if limit < 1 || limit > e.config.Limits.MaxPageSize {
		return 0, 0, errInvalidf("page size %d out of range (max %d)", limit, e.config.Limits.MaxPageSize)
	}
	return page, limit, nil
}
