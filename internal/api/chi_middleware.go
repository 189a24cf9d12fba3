// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/saucier/internal/config"
	"github.com/tomtom215/saucier/internal/metrics"
	"github.com/tomtom215/saucier/internal/models"
)

// ChiMiddleware builds the Chi-compatible middleware stack from the security
// and waitlist configuration: CORS, the general API rate limit, and the
// stricter per-IP limit on waitlist signups.
type ChiMiddleware struct {
	security *config.SecurityConfig
	waitlist *config.WaitlistConfig
	cors     func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory.
func NewChiMiddleware(security *config.SecurityConfig, waitlist *config.WaitlistConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: security.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         86400,
	})

	return &ChiMiddleware{
		security: security,
		waitlist: waitlist,
		cors:     corsHandler,
	}
}

// CORS returns the CORS middleware built from SECURITY_CORS_ORIGINS.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns the general per-IP API rate limiter.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.rateLimiter(m.security.RateLimitReqs, m.security.RateLimitWindow, "api")
}

// RateLimitJoin returns the stricter per-IP limiter applied to waitlist
// signups, the one endpoint open to unauthenticated traffic.
func (m *ChiMiddleware) RateLimitJoin() func(http.Handler) http.Handler {
	return m.rateLimiter(m.waitlist.JoinLimitReqs, m.waitlist.JoinLimitWindow, "waitlist_join")
}

func (m *ChiMiddleware) rateLimiter(requests int, window time.Duration, endpoint string) func(http.Handler) http.Handler {
	if m.security.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitHandler(endpoint)),
	)
}

// rateLimitHandler responds with the standard error envelope and records the
// rejection.
func rateLimitHandler(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.APIRateLimitHits.WithLabelValues(endpoint).Inc()
		respondError(w, http.StatusTooManyRequests, models.ErrCodeRateLimited,
			"too many requests, slow down", nil)
	}
}
