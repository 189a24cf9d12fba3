// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/saucier/internal/auth"
	"github.com/tomtom215/saucier/internal/config"
	"github.com/tomtom215/saucier/internal/database"
	"github.com/tomtom215/saucier/internal/models"
	"github.com/tomtom215/saucier/internal/recommend"
	"github.com/tomtom215/saucier/internal/waitlist"
)

// testEnv holds a fully wired in-memory server for handler tests.
type testEnv struct {
	router  http.Handler
	db      *database.DB
	jwt     *auth.JWTManager
	userSeq int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: ":memory:"},
		API:      config.APIConfig{DefaultPageSize: 20, MaxPageSize: 100},
		Security: config.SecurityConfig{
			JWTSecret:         "0123456789abcdef0123456789abcdef",
			AccessTokenTTL:    15 * time.Minute,
			RefreshTokenTTL:   time.Hour,
			BcryptCost:        4,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
		Waitlist:  config.WaitlistConfig{InvitesPerDay: 100, JoinLimitReqs: 1000, JoinLimitWindow: time.Minute},
		Recommend: config.RecommendConfig{CacheTTL: time.Minute, DefaultLimit: 10, MaxLimit: 20, QuickMinutes: 30},
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	tokens, err := auth.NewTokenStore("", cfg.Security.RefreshTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenStore: %v", err)
	}
	t.Cleanup(func() { tokens.Close() })

	handler := NewHandler(db, cfg,
		waitlist.NewManager(db, &cfg.Waitlist),
		recommend.NewEngine(db, &cfg.Recommend),
		jwtManager,
		auth.NewPasswordHasher(cfg.Security.BcryptCost),
		tokens)
	router := NewRouter(handler, NewChiMiddleware(&cfg.Security, &cfg.Waitlist), auth.NewMiddleware(jwtManager))

	return &testEnv{router: router.Setup(), db: db, jwt: jwtManager}
}

// do issues a request against the router. A non-empty token is attached as a
// bearer credential; a non-nil body is JSON-encoded.
func (env *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors the uniform response wrapper with the data left raw so
// callers can decode into the expected concrete type.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

// decodeData asserts a success envelope and unmarshals its data into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("status = %q, want success (body %q)", env.Status, rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

// wantError asserts an error envelope with the given HTTP status and code.
func wantError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status code = %d, want %d (body %q)", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "error" {
		t.Fatalf("envelope status = %q, want error", env.Status)
	}
	if env.Error == nil || env.Error.Code != code {
		t.Fatalf("error = %+v, want code %q", env.Error, code)
	}
}

// newUserToken creates an account directly in the store and mints an access
// token carrying the given role.
func (env *testEnv) newUserToken(t *testing.T, role string) (userID, token string) {
	t.Helper()
	env.userSeq++
	user := &models.User{
		Email:        fmt.Sprintf("user%d@example.com", env.userSeq),
		Username:     fmt.Sprintf("user%d", env.userSeq),
		PasswordHash: "x",
	}
	if err := env.db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	token, _, err := env.jwt.GenerateToken(user.ID, user.Username, role)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return user.ID, token
}

func TestRegisterLoginRefreshFlow(t *testing.T) {
	env := newTestEnv(t)

	register := map[string]string{
		"email":    "Cook@Example.com",
		"username": "homecook",
		"password": "correct horse battery",
	}
	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", register, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d (body %q)", rec.Code, rec.Body.String())
	}
	var user models.User
	decodeData(t, rec, &user)
	if user.Email != "cook@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %q, want %q", user.Role, models.RoleUser)
	}

	// Same address again, different case
	rec = env.do(t, http.MethodPost, "/api/v1/auth/register", register, "")
	wantError(t, rec, http.StatusConflict, models.ErrCodeDuplicate)

	// Wrong password and unknown email fail identically
	rec = env.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "cook@example.com", "password": "nope"}, "")
	wantError(t, rec, http.StatusUnauthorized, models.ErrCodeAuthentication)
	rec = env.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "ghost@example.com", "password": "nope"}, "")
	wantError(t, rec, http.StatusUnauthorized, models.ErrCodeAuthentication)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "cook@example.com", "password": "correct horse battery"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d (body %q)", rec.Code, rec.Body.String())
	}
	var pair models.TokenPair
	decodeData(t, rec, &pair)
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("login returned empty tokens")
	}

	// Refresh rotates the pair; the consumed token cannot be replayed
	rec = env.do(t, http.MethodPost, "/api/v1/auth/refresh",
		map[string]string{"refresh_token": pair.RefreshToken}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d (body %q)", rec.Code, rec.Body.String())
	}
	var rotated models.TokenPair
	decodeData(t, rec, &rotated)
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	rec = env.do(t, http.MethodPost, "/api/v1/auth/refresh",
		map[string]string{"refresh_token": pair.RefreshToken}, "")
	wantError(t, rec, http.StatusUnauthorized, models.ErrCodeAuthentication)

	// Logout revokes the current refresh token
	rec = env.do(t, http.MethodPost, "/api/v1/auth/logout",
		map[string]string{"refresh_token": rotated.RefreshToken}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/api/v1/auth/refresh",
		map[string]string{"refresh_token": rotated.RefreshToken}, "")
	wantError(t, rec, http.StatusUnauthorized, models.ErrCodeAuthentication)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"bad email", map[string]string{"email": "not-an-email", "username": "homecook", "password": "longenough"}},
		{"short password", map[string]string{"email": "a@b.com", "username": "homecook", "password": "short"}},
		{"missing username", map[string]string{"email": "a@b.com", "password": "longenough"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/auth/register", tt.body, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %q)", rec.Code, rec.Body.String())
			}
		})
	}

	// Unknown fields are rejected, not dropped
	rec := env.do(t, http.MethodPost, "/api/v1/auth/register",
		map[string]string{"email": "a@b.com", "username": "homecook", "password": "longenough", "is_admin": "true"}, "")
	wantError(t, rec, http.StatusBadRequest, models.ErrCodeInvalidJSON)
}

func TestResponseEchoesRequestID(t *testing.T) {
	env := newTestEnv(t)

	// An upstream-supplied ID is carried through header and envelope alike
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "req-from-proxy")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-from-proxy" {
		t.Errorf("response header X-Request-ID = %q, want req-from-proxy", got)
	}
	if got := decodeEnvelope(t, rec).Metadata.RequestID; got != "req-from-proxy" {
		t.Errorf("metadata request_id = %q, want req-from-proxy", got)
	}

	// Without one, a generated ID still lands in both places
	rec = env.do(t, http.MethodGet, "/api/v1/health", nil, "")
	generated := rec.Header().Get("X-Request-ID")
	if generated == "" {
		t.Fatal("expected a generated X-Request-ID header")
	}
	if got := decodeEnvelope(t, rec).Metadata.RequestID; got != generated {
		t.Errorf("metadata request_id = %q, want %q", got, generated)
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	var status HealthStatus
	decodeData(t, rec, &status)
	if status.Status != "ok" || status.Database != "ok" {
		t.Errorf("health = %+v, want ok/ok", status)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/health/live", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness status = %d", rec.Code)
	}
}
