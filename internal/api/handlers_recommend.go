// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/saucier/internal/auth"
	"github.com/tomtom215/saucier/internal/models"
	"github.com/tomtom215/saucier/internal/recommend"
)

// Recommendations returns recipes matching the caller's stored preferences.
//
//	GET /api/v1/recommendations?limit=N
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	subject := auth.SubjectFromContext(r.Context())

	recipes, err := h.engine.Recommend(r.Context(), subject.UserID, getIntParam(r, "limit", 0))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, recipes, started)
}

// MatchRecipes scores the catalog against ingredients the caller has on hand.
//
//	POST /api/v1/recipes/match
func (h *Handler) MatchRecipes(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.MatchByIngredientsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	matches, err := h.engine.MatchByIngredients(r.Context(), req.Ingredients, req.Limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, matches, started)
}

// QuickRecipes returns recipes that fit within a total time budget.
//
//	GET /api/v1/recipes/quick?max_minutes=&limit=
func (h *Handler) QuickRecipes(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	recipes, err := h.engine.QuickRecipes(r.Context(),
		getIntParam(r, "max_minutes", 0),
		getIntParam(r, "limit", 0))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, recipes, started)
}

// TrendingRecipes returns recipes created within a sliding window.
//
//	GET /api/v1/recipes/trending?window=day|week|month&limit=
func (h *Handler) TrendingRecipes(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	window := r.URL.Query().Get("window")
	if window == "" {
		window = string(recommend.WindowWeek)
	}

	recipes, err := h.engine.Trending(r.Context(),
		recommend.TrendingWindow(window),
		getIntParam(r, "limit", 0))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, recipes, started)
}
