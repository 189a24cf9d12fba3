// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/saucier/internal/metrics"
)

func TestPrometheusMetricsRecordsRequest(t *testing.T) {
	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("POST", "/api/v1/waitlist", "201"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/waitlist", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("POST", "/api/v1/waitlist", "201"))
	if after != before+1 {
		t.Errorf("APIRequestsTotal = %v, want %v", after, before+1)
	}
}

func TestPrometheusMetricsDefaultStatus(t *testing.T) {
	// Handler that never calls WriteHeader should record 200
	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/healthz", "200"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/healthz", "200"))
	if after != before+1 {
		t.Errorf("APIRequestsTotal = %v, want %v", after, before+1)
	}
}

func TestPrometheusMetricsActiveGaugeReturnsToBase(t *testing.T) {
	base := testutil.ToFloat64(metrics.APIActiveRequests)

	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		if got := testutil.ToFloat64(metrics.APIActiveRequests); got != base+1 {
			t.Errorf("active requests during handler = %v, want %v", got, base+1)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	handler(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != base {
		t.Errorf("active requests after handler = %v, want %v", got, base)
	}
}
