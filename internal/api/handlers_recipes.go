// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tomtom215/saucier/internal/auth"
	"github.com/tomtom215/saucier/internal/models"
)

// ListRecipes returns a filtered, paginated page of the catalog.
//
//	GET /api/v1/recipes?page=&limit=&category=&cuisine=&difficulty=&max_spice=&vegetarian=&vegan=&gluten_free=&search=&sort_by=&sort_order=
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	page, limit := h.parsePagination(r)
	query := r.URL.Query()
	opts := models.RecipeListOptions{
		Page:       page,
		Limit:      limit,
		Category:   models.Category(query.Get("category")),
		Cuisine:    models.Cuisine(query.Get("cuisine")),
		Difficulty: models.Difficulty(query.Get("difficulty")),
		MaxSpice:   models.SpiceLevel(query.Get("max_spice")),
		Vegetarian: getBoolParam(r, "vegetarian"),
		Vegan:      getBoolParam(r, "vegan"),
		GlutenFree: getBoolParam(r, "gluten_free"),
		Search:     query.Get("search"),
		SortBy:     query.Get("sort_by"),
		SortOrder:  query.Get("sort_order"),
	}
	if apiErr := validateRequest(&opts); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	recipes, total, err := h.db.ListRecipes(r.Context(), opts)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.NewPaginatedResult(recipes, page, limit, total), started)
}

// GetRecipe returns a recipe and bumps its popularity counter. The bump is a
// single serialized statement at the store, so concurrent views never lose
// increments; a failed bump is an error, not a silently stale count.
//
//	GET /api/v1/recipes/{id}
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	id := chi.URLParam(r, "id")

	recipe, err := h.db.GetRecipe(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	popularity, err := h.db.IncrementRecipePopularity(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	recipe.Popularity = popularity
	respondSuccess(w, http.StatusOK, recipe, started)
}

// CreateRecipe adds a catalog entry (chef/admin).
//
//	POST /api/v1/recipes
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.CreateRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	subject := auth.SubjectFromContext(r.Context())
	recipe := &models.Recipe{
		Name:         req.Name,
		Category:     models.Category(req.Category),
		Cuisine:      models.Cuisine(req.Cuisine),
		Difficulty:   models.Difficulty(req.Difficulty),
		PrepMinutes:  req.PrepMinutes,
		CookMinutes:  req.CookMinutes,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		IsVegetarian: req.IsVegetarian,
		IsVegan:      req.IsVegan,
		IsGlutenFree: req.IsGlutenFree,
		SpiceLevel:   models.SpiceLevel(req.SpiceLevel),
		CreatedBy:    subject.UserID,
	}
	if err := h.db.CreateRecipe(r.Context(), recipe); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, recipe, started)
}

// UpdateRecipe edits a catalog entry. Chefs may edit only their own recipes;
// admins may edit any. Nil fields stay unchanged.
//
//	PUT /api/v1/recipes/{id}
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	id := chi.URLParam(r, "id")

	var req models.UpdateRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.authorizeRecipeChange(r, id, "update this recipe"); err != nil {
		respondDomainError(w, err)
		return
	}

	recipe, err := h.db.UpdateRecipe(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, recipe, started)
}

// DeleteRecipe removes a catalog entry. Same ownership rule as UpdateRecipe.
//
//	DELETE /api/v1/recipes/{id}
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	id := chi.URLParam(r, "id")

	if err := h.authorizeRecipeChange(r, id, "delete this recipe"); err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.db.DeleteRecipe(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"message": "recipe deleted"}, started)
}

// authorizeRecipeChange verifies the recipe exists and that the caller is its
// author or an admin.
func (h *Handler) authorizeRecipeChange(r *http.Request, id, action string) error {
	recipe, err := h.db.GetRecipe(r.Context(), id)
	if err != nil {
		return err
	}
	subject := auth.SubjectFromContext(r.Context())
	if subject.IsAdmin() || recipe.CreatedBy == subject.UserID {
		return nil
	}
	return models.NewAuthorizationError(action)
}

// RateRecipe records a rating and returns the updated running average.
//
//	POST /api/v1/recipes/{id}/rate
func (h *Handler) RateRecipe(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.RateRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	rating, err := h.db.RateRecipe(r.Context(), chi.URLParam(r, "id"), req.Value)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, rating, started)
}
