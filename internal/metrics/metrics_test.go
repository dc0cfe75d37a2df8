// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/trending", "200"))

	RecordAPIRequest("GET", "/api/v1/trending", 200, 42*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/trending", "200"))
	if after != before+1 {
		t.Errorf("request counter = %f, want %f", after, before+1)
	}
}

func TestRecordDBQuery_ErrorIncrement(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "movies"))

	RecordDBQuery("select", "movies", time.Millisecond, errors.New("boom"))
	RecordDBQuery("select", "movies", time.Millisecond, nil)

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "movies"))
	if after != before+1 {
		t.Errorf("error counter = %f, want %f (nil error must not count)", after, before+1)
	}
}

func TestRecommendationsServed(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsServed.WithLabelValues("trending", "top_rated"))

	RecommendationsServed.WithLabelValues("trending", "top_rated").Inc()

	after := testutil.ToFloat64(RecommendationsServed.WithLabelValues("trending", "top_rated"))
	if after != before+1 {
		t.Errorf("served counter = %f, want %f", after, before+1)
	}
}
