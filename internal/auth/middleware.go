// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tomtom215/saucier/internal/logging"
	"github.com/tomtom215/saucier/internal/models"
)

// Subject is the authenticated principal attached to a request context.
type Subject struct {
	UserID   string
	Username string
	Role     string
}

// IsAdmin reports whether the subject carries the admin role.
func (s *Subject) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// CanManageRecipes reports whether the subject can create or edit catalog
// entries.
func (s *Subject) CanManageRecipes() bool {
	return s.Role == models.RoleChef || s.Role == models.RoleAdmin
}

type contextKey string

const subjectContextKey contextKey = "auth_subject"

// SubjectFromContext returns the authenticated subject, or nil when the
// request was not authenticated.
func SubjectFromContext(ctx context.Context) *Subject {
	subject, _ := ctx.Value(subjectContextKey).(*Subject)
	return subject
}

// ContextWithSubject attaches a subject to the context. Exposed for handler
// tests.
func ContextWithSubject(ctx context.Context, subject *Subject) context.Context {
	return context.WithValue(ctx, subjectContextKey, subject)
}

// Middleware enforces bearer-token authentication on protected routes.
type Middleware struct {
	jwt *JWTManager
}

// NewMiddleware creates authentication middleware backed by the JWT manager.
func NewMiddleware(jwt *JWTManager) *Middleware {
	return &Middleware{jwt: jwt}
}

// Authenticate validates the Authorization header and attaches the subject to
// the request context. Requests without a valid token are rejected with 401.
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			respondUnauthorized(w, "missing bearer token")
			return
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			logging.Debug().Err(err).Msg("Token validation failed")
			respondUnauthorized(w, "invalid or expired token")
			return
		}

		subject := &Subject{
			UserID:   claims.Subject,
			Username: claims.Username,
			Role:     claims.Role,
		}
		next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), subject)))
	}
}

// RequireRole rejects authenticated requests whose subject lacks any of the
// allowed roles. Must run after Authenticate.
func (m *Middleware) RequireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			subject := SubjectFromContext(r.Context())
			if subject == nil {
				respondUnauthorized(w, "missing bearer token")
				return
			}
			for _, role := range roles {
				if subject.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondForbidden(w)
		}
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	respondAuthError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, message)
}

func respondForbidden(w http.ResponseWriter) {
	respondAuthError(w, http.StatusForbidden, models.ErrCodeAuthorization, "insufficient role for this operation")
}

func respondAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := models.APIResponse{
		Status: "error",
		Error:  &models.APIError{Code: code, Message: message},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: w.Header().Get("X-Request-ID"),
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode auth error response")
	}
}
