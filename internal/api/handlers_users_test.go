// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/saucier/internal/models"
)

func TestProfileGetAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	userID, userToken := env.newUserToken(t, models.RoleUser)

	rec := env.do(t, http.MethodGet, "/api/v1/users/me/profile", nil, userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("get profile status = %d (body %q)", rec.Code, rec.Body.String())
	}
	var profile models.UserProfile
	decodeData(t, rec, &profile)
	if profile.UserID != userID {
		t.Errorf("user_id = %q, want %q", profile.UserID, userID)
	}
	if profile.Experience != models.ExperienceBeginner || profile.SpiceCeiling != models.SpiceMedium {
		t.Errorf("defaults = %q/%q, want beginner/medium", profile.Experience, profile.SpiceCeiling)
	}

	rec = env.do(t, http.MethodPut, "/api/v1/users/me/profile", map[string]interface{}{
		"experience":    "advanced",
		"dietary_prefs": []string{"vegetarian"},
	}, userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile status = %d (body %q)", rec.Code, rec.Body.String())
	}
	decodeData(t, rec, &profile)
	if profile.Experience != models.ExperienceAdvanced {
		t.Errorf("experience = %q, want advanced", profile.Experience)
	}
	if len(profile.DietaryPrefs) != 1 || profile.DietaryPrefs[0] != models.DietVegetarian {
		t.Errorf("dietary prefs = %v", profile.DietaryPrefs)
	}
	// Omitted fields keep their values
	if profile.SpiceCeiling != models.SpiceMedium {
		t.Errorf("spice ceiling changed to %q", profile.SpiceCeiling)
	}

	rec = env.do(t, http.MethodPut, "/api/v1/users/me/profile",
		map[string]interface{}{"experience": "grandmaster"}, userToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid experience status = %d, want 400", rec.Code)
	}
}

func TestProfileUpdateRefreshesRecommendations(t *testing.T) {
	env := newTestEnv(t)
	_, chefToken := env.newUserToken(t, models.RoleChef)
	_, userToken := env.newUserToken(t, models.RoleUser)

	createRecipe(t, env, chefToken, "Easy Dish")
	hard := recipePayload("Hard Dish")
	hard["difficulty"] = "hard"
	if got := env.do(t, http.MethodPost, "/api/v1/recipes", hard, chefToken); got.Code != http.StatusCreated {
		t.Fatalf("create status = %d", got.Code)
	}

	rec := env.do(t, http.MethodGet, "/api/v1/recommendations", nil, userToken)
	var recipes []models.Recipe
	decodeData(t, rec, &recipes)
	if len(recipes) != 1 {
		t.Fatalf("beginner recommendations = %d, want 1", len(recipes))
	}

	// Raising experience must bypass the cached beginner result
	rec = env.do(t, http.MethodPut, "/api/v1/users/me/profile",
		map[string]interface{}{"experience": "professional"}, userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/recommendations", nil, userToken)
	decodeData(t, rec, &recipes)
	if len(recipes) != 2 {
		t.Fatalf("professional recommendations = %d, want 2", len(recipes))
	}
}

func TestFavoritesAndSaved(t *testing.T) {
	env := newTestEnv(t)
	_, chefToken := env.newUserToken(t, models.RoleChef)
	_, userToken := env.newUserToken(t, models.RoleUser)
	recipe := createRecipe(t, env, chefToken, "Keeper Dish")

	rec := env.do(t, http.MethodPost, "/api/v1/users/me/favorites/"+recipe.ID, nil, userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("add favorite status = %d (body %q)", rec.Code, rec.Body.String())
	}
	var profile models.UserProfile
	decodeData(t, rec, &profile)
	if len(profile.FavoriteRecipes) != 1 || profile.FavoriteRecipes[0] != recipe.ID {
		t.Errorf("favorites = %v", profile.FavoriteRecipes)
	}

	// Favoriting twice is a no-op
	rec = env.do(t, http.MethodPost, "/api/v1/users/me/favorites/"+recipe.ID, nil, userToken)
	decodeData(t, rec, &profile)
	if len(profile.FavoriteRecipes) != 1 {
		t.Errorf("favorites after repeat = %v", profile.FavoriteRecipes)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/users/me/favorites/"+recipe.ID, nil, userToken)
	decodeData(t, rec, &profile)
	if len(profile.FavoriteRecipes) != 0 {
		t.Errorf("favorites after remove = %v", profile.FavoriteRecipes)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/users/me/saved/"+recipe.ID, nil, userToken)
	decodeData(t, rec, &profile)
	if len(profile.SavedRecipes) != 1 {
		t.Errorf("saved = %v", profile.SavedRecipes)
	}
	rec = env.do(t, http.MethodDelete, "/api/v1/users/me/saved/"+recipe.ID, nil, userToken)
	decodeData(t, rec, &profile)
	if len(profile.SavedRecipes) != 0 {
		t.Errorf("saved after remove = %v", profile.SavedRecipes)
	}

	// Unknown recipes cannot be favorited
	rec = env.do(t, http.MethodPost, "/api/v1/users/me/favorites/no-such-recipe", nil, userToken)
	wantError(t, rec, http.StatusNotFound, models.ErrCodeNotFound)
}

func TestMarkCookedStreak(t *testing.T) {
	env := newTestEnv(t)
	_, chefToken := env.newUserToken(t, models.RoleChef)
	_, userToken := env.newUserToken(t, models.RoleUser)
	recipe := createRecipe(t, env, chefToken, "Daily Dish")

	rec := env.do(t, http.MethodPost, "/api/v1/users/me/cooked/"+recipe.ID, nil, userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark cooked status = %d (body %q)", rec.Code, rec.Body.String())
	}
	var profile models.UserProfile
	decodeData(t, rec, &profile)
	if profile.Streak != 1 {
		t.Errorf("streak = %d, want 1", profile.Streak)
	}
	if profile.LastCookedDate == nil {
		t.Fatal("last_cooked_date not set")
	}

	// Cooking again the same day leaves the streak alone
	rec = env.do(t, http.MethodPost, "/api/v1/users/me/cooked/"+recipe.ID, nil, userToken)
	decodeData(t, rec, &profile)
	if profile.Streak != 1 {
		t.Errorf("streak after same-day cook = %d, want 1", profile.Streak)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/users/me/cooked/no-such-recipe", nil, userToken)
	wantError(t, rec, http.StatusNotFound, models.ErrCodeNotFound)
}
