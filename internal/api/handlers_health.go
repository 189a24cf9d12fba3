// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package api

import (
	"net/http"
	"runtime"
	"time"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var startTime = time.Now()

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	GoVersion     string `json:"go_version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Database      string `json:"database"`
}

// Health reports liveness plus a database round-trip.
//
//	GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	status := HealthStatus{
		Status:        "ok",
		Version:       Version,
		GoVersion:     runtime.Version(),
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Database:      "ok",
	}

	code := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
		code = http.StatusServiceUnavailable
	}
	respondSuccess(w, code, status, started)
}

// HealthLive reports process liveness without touching dependencies.
//
//	GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, time.Now())
}
