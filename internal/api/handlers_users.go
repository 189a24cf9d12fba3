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

// GetProfile returns the caller's cooking profile.
//
//	GET /api/v1/users/me/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	subject := auth.SubjectFromContext(r.Context())

	profile, err := h.db.GetUserProfile(r.Context(), subject.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, profile, started)
}

// UpdateProfile edits the caller's preferences. Nil fields stay unchanged.
// Cached recommendations for the user are invalidated.
//
//	PUT /api/v1/users/me/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	subject := auth.SubjectFromContext(r.Context())

	var req models.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	profile, err := h.db.GetUserProfile(r.Context(), subject.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if req.DietaryPrefs != nil {
		prefs := make([]models.DietaryTag, 0, len(*req.DietaryPrefs))
		for _, tag := range *req.DietaryPrefs {
			prefs = append(prefs, models.DietaryTag(tag))
		}
		profile.DietaryPrefs = prefs
	}
	if req.FavoriteCuisines != nil {
		cuisines := make([]models.Cuisine, 0, len(*req.FavoriteCuisines))
		for _, cuisine := range *req.FavoriteCuisines {
			cuisines = append(cuisines, models.Cuisine(cuisine))
		}
		profile.FavoriteCuisines = cuisines
	}
	if req.Experience != nil {
		profile.Experience = models.ExperienceLevel(*req.Experience)
	}
	if req.SpiceCeiling != nil {
		profile.SpiceCeiling = models.SpiceLevel(*req.SpiceCeiling)
	}

	if err := h.db.SaveUserProfile(r.Context(), profile); err != nil {
		respondDomainError(w, err)
		return
	}

	h.engine.InvalidateUser(subject.UserID)
	respondSuccess(w, http.StatusOK, profile, started)
}

// AddFavorite adds a recipe to the caller's favorites. Adding an existing
// favorite is a no-op.
//
//	POST /api/v1/users/me/favorites/{recipeID}
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.mutateRecipeList(w, r, func(profile *models.UserProfile, recipeID string) {
		profile.FavoriteRecipes = appendUnique(profile.FavoriteRecipes, recipeID)
	})
}

// RemoveFavorite removes a recipe from the caller's favorites.
//
//	DELETE /api/v1/users/me/favorites/{recipeID}
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.mutateRecipeList(w, r, func(profile *models.UserProfile, recipeID string) {
		profile.FavoriteRecipes = removeString(profile.FavoriteRecipes, recipeID)
	})
}

// SaveRecipe adds a recipe to the caller's saved list.
//
//	POST /api/v1/users/me/saved/{recipeID}
func (h *Handler) SaveRecipe(w http.ResponseWriter, r *http.Request) {
	h.mutateRecipeList(w, r, func(profile *models.UserProfile, recipeID string) {
		profile.SavedRecipes = appendUnique(profile.SavedRecipes, recipeID)
	})
}

// UnsaveRecipe removes a recipe from the caller's saved list.
//
//	DELETE /api/v1/users/me/saved/{recipeID}
func (h *Handler) UnsaveRecipe(w http.ResponseWriter, r *http.Request) {
	h.mutateRecipeList(w, r, func(profile *models.UserProfile, recipeID string) {
		profile.SavedRecipes = removeString(profile.SavedRecipes, recipeID)
	})
}

// mutateRecipeList loads the profile, verifies the recipe exists, applies the
// list edit, and saves.
func (h *Handler) mutateRecipeList(w http.ResponseWriter, r *http.Request, apply func(*models.UserProfile, string)) {
	started := time.Now()
	subject := auth.SubjectFromContext(r.Context())
	recipeID := chi.URLParam(r, "recipeID")

	if _, err := h.db.GetRecipe(r.Context(), recipeID); err != nil {
		respondDomainError(w, err)
		return
	}

	profile, err := h.db.GetUserProfile(r.Context(), subject.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	apply(profile, recipeID)

	if err := h.db.SaveUserProfile(r.Context(), profile); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, profile, started)
}

// MarkCooked records that the caller cooked a recipe today and updates the
// daily streak: a second cook the same day leaves the streak unchanged, a
// cook on the day after the last one extends it, and any longer gap resets it
// to one.
//
//	POST /api/v1/users/me/cooked/{recipeID}
func (h *Handler) MarkCooked(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	subject := auth.SubjectFromContext(r.Context())
	recipeID := chi.URLParam(r, "recipeID")

	if _, err := h.db.GetRecipe(r.Context(), recipeID); err != nil {
		respondDomainError(w, err)
		return
	}

	profile, err := h.db.GetUserProfile(r.Context(), subject.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	switch {
	case profile.LastCookedDate == nil:
		profile.Streak = 1
	case profile.LastCookedDate.UTC().Truncate(24 * time.Hour).Equal(today):
		// Already cooked today; streak unchanged
	case profile.LastCookedDate.UTC().Truncate(24 * time.Hour).Equal(today.AddDate(0, 0, -1)):
		profile.Streak++
	default:
		profile.Streak = 1
	}
	profile.LastCookedDate = &now

	if err := h.db.SaveUserProfile(r.Context(), profile); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, profile, started)
}

func appendUnique(list []string, value string) []string {
	for _, item := range list {
		if item == value {
			return list
		}
	}
	return append(list, value)
}

func removeString(list []string, value string) []string {
	result := list[:0]
	for _, item := range list {
		if item != value {
			result = append(result, item)
		}
	}
	return result
}
