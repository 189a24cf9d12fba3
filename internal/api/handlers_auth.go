// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/saucier/internal/auth"
	"github.com/tomtom215/saucier/internal/logging"
	"github.com/tomtom215/saucier/internal/metrics"
	"github.com/tomtom215/saucier/internal/models"
)

// Register creates a new account with a default cooking profile.
//
//	POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := h.db.CreateUser(r.Context(), user); err != nil {
		metrics.RecordAuthAttempt("register", false)
		respondDomainError(w, err)
		return
	}

	metrics.RecordAuthAttempt("register", true)
	logging.Info().Str("user_id", user.ID).Msg("Account created")
	respondSuccess(w, http.StatusCreated, user, started)
}

// Login verifies credentials and issues an access/refresh token pair.
// Unknown email and wrong password fail identically so the endpoint does not
// leak which addresses have accounts.
//
//	POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if user == nil || !h.hasher.Compare(user.PasswordHash, req.Password) {
		metrics.RecordAuthAttempt("login", false)
		respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "invalid email or password", nil)
		return
	}

	pair, err := h.issueTokenPair(user)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	metrics.RecordAuthAttempt("login", true)
	respondSuccess(w, http.StatusOK, pair, started)
}

// Refresh consumes a refresh token and issues a fresh pair. Refresh tokens
// are single-use; replaying one fails.
//
//	POST /api/v1/auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	userID, err := h.tokens.Consume(req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			metrics.RecordAuthAttempt("refresh", false)
			respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "invalid or expired refresh token", nil)
			return
		}
		respondDomainError(w, err)
		return
	}

	user, err := h.db.GetUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	pair, err := h.issueTokenPair(user)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	metrics.RecordAuthAttempt("refresh", true)
	respondSuccess(w, http.StatusOK, pair, started)
}

// Logout revokes a refresh token. The access token stays valid until its
// short TTL expires.
//
//	POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}

	if err := h.tokens.Revoke(req.RefreshToken); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"message": "logged out"}, started)
}

func (h *Handler) issueTokenPair(user *models.User) (*models.TokenPair, error) {
	accessToken, expiresAt, err := h.jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := h.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
