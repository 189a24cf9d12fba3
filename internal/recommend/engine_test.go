// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/saucier/internal/config"
	"github.com/tomtom215/saucier/internal/database"
	"github.com/tomtom215/saucier/internal/models"
)

func newTestEngine(t *testing.T) (*Engine, *database.DB) {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   1,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	engine := NewEngine(db, &config.RecommendConfig{
		CacheTTL:     time.Minute,
		DefaultLimit: 10,
		MaxLimit:     20,
		QuickMinutes: 30,
	})
	return engine, db
}

func addRecipe(t *testing.T, db *database.DB, r models.Recipe, popularity int) *models.Recipe {
	t.Helper()
	ctx := context.Background()

	if r.Category == "" {
		r.Category = models.CategoryDinner
	}
	if r.Cuisine == "" {
		r.Cuisine = models.CuisineItalian
	}
	if r.Difficulty == "" {
		r.Difficulty = models.DifficultyEasy
	}
	if r.SpiceLevel == "" {
		r.SpiceLevel = models.SpiceMild
	}
	if r.PrepMinutes == 0 {
		r.PrepMinutes = 10
	}
	if r.CookMinutes == 0 {
		r.CookMinutes = 10
	}
	if len(r.Ingredients) == 0 {
		r.Ingredients = []models.Ingredient{{Name: "salt", Quantity: 1, Unit: "tsp"}}
	}
	if len(r.Instructions) == 0 {
		r.Instructions = []string{"Cook."}
	}

	if err := db.CreateRecipe(ctx, &r); err != nil {
		t.Fatalf("CreateRecipe(%s) error = %v", r.Name, err)
	}
	for i := 0; i < popularity; i++ {
		if _, err := db.IncrementRecipePopularity(ctx, r.ID); err != nil {
			t.Fatalf("IncrementRecipePopularity(%s) error = %v", r.Name, err)
		}
	}
	return &r
}

func addUser(t *testing.T, db *database.DB, mutate func(*models.UserProfile)) *models.User {
	t.Helper()
	ctx := context.Background()

	user := &models.User{
		Email:        "cook@example.com",
		Username:     "homecook",
		PasswordHash: "hash",
	}
	if err := db.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if mutate != nil {
		profile, err := db.GetUserProfile(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserProfile() error = %v", err)
		}
		mutate(profile)
		if err := db.SaveUserProfile(ctx, profile); err != nil {
			t.Fatalf("SaveUserProfile() error = %v", err)
		}
	}
	return user
}

func TestRecommendAppliesProfileFilter(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	user := addUser(t, db, func(p *models.UserProfile) {
		p.DietaryPrefs = []models.DietaryTag{models.DietVegetarian}
		p.SpiceCeiling = models.SpiceMedium
		p.Experience = models.ExperienceBeginner
	})

	addRecipe(t, db, models.Recipe{Name: "Veggie Pasta", IsVegetarian: true}, 5)
	addRecipe(t, db, models.Recipe{Name: "Veggie Curry", IsVegetarian: true, SpiceLevel: models.SpiceHot}, 9)
	addRecipe(t, db, models.Recipe{Name: "Veggie Souffle", IsVegetarian: true, Difficulty: models.DifficultyMedium}, 9)
	addRecipe(t, db, models.Recipe{Name: "Steak", IsVegetarian: false}, 9)

	got, err := engine.Recommend(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Veggie Pasta" {
		t.Errorf("recommendations = %v, want only Veggie Pasta", got)
	}
}

func TestRecommendSortsByPopularityThenRating(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	user := addUser(t, db, nil)

	addRecipe(t, db, models.Recipe{Name: "B Dish"}, 3)
	popular := addRecipe(t, db, models.Recipe{Name: "C Dish"}, 7)
	addRecipe(t, db, models.Recipe{Name: "A Dish"}, 3)

	got, err := engine.Recommend(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(got))
	}
	if got[0].ID != popular.ID {
		t.Errorf("first = %s, want most popular", got[0].Name)
	}
	// Equal popularity falls back to name asc
	if got[1].Name != "A Dish" || got[2].Name != "B Dish" {
		t.Errorf("tie order = %s, %s, want A Dish, B Dish", got[1].Name, got[2].Name)
	}
}

func TestRecommendLimitClamp(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	user := addUser(t, db, nil)
	for _, name := range []string{"One", "Two", "Three"} {
		addRecipe(t, db, models.Recipe{Name: name}, 0)
	}

	// Requests above the cap are clamped to MaxLimit, not rejected
	got, err := engine.Recommend(ctx, user.ID, 500)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d recipes, want all 3", len(got))
	}

	got, err = engine.Recommend(ctx, user.ID, 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d recipes, want 2", len(got))
	}
}

func TestRecommendCachesPerUser(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	user := addUser(t, db, nil)
	addRecipe(t, db, models.Recipe{Name: "First Dish"}, 0)

	got, err := engine.Recommend(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d recipes, want 1", len(got))
	}

	// A catalog change is invisible until the cache entry expires
	addRecipe(t, db, models.Recipe{Name: "Second Dish"}, 0)
	got, err = engine.Recommend(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("cached result should be served, got %d recipes", len(got))
	}

	// Invalidation forces a fresh computation
	engine.InvalidateUser(user.ID)
	got, err = engine.Recommend(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("after invalidation got %d recipes, want 2", len(got))
	}
}

func TestRecommendUnknownUser(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Recommend(context.Background(), "missing-user", 10)
	if !models.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestQuickRecipes(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	addRecipe(t, db, models.Recipe{Name: "Fast Dish", PrepMinutes: 5, CookMinutes: 10}, 2)
	addRecipe(t, db, models.Recipe{Name: "Exact Dish", PrepMinutes: 10, CookMinutes: 20}, 1)
	addRecipe(t, db, models.Recipe{Name: "Slow Dish", PrepMinutes: 30, CookMinutes: 60}, 9)

	got, err := engine.QuickRecipes(ctx, 30, 10)
	if err != nil {
		t.Fatalf("QuickRecipes() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d quick recipes, want 2 (threshold is inclusive)", len(got))
	}
	if got[0].Name != "Fast Dish" {
		t.Errorf("first = %s, want most popular quick dish", got[0].Name)
	}

	// Non-positive threshold falls back to the configured default (30)
	got, err = engine.QuickRecipes(ctx, 0, 10)
	if err != nil {
		t.Fatalf("QuickRecipes() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("default threshold got %d recipes, want 2", len(got))
	}
}

func TestTrending(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	addRecipe(t, db, models.Recipe{Name: "New Dish"}, 3)

	for _, window := range []TrendingWindow{WindowDay, WindowWeek, WindowMonth} {
		got, err := engine.Trending(ctx, window, 10)
		if err != nil {
			t.Fatalf("Trending(%s) error = %v", window, err)
		}
		if len(got) != 1 {
			t.Errorf("Trending(%s) = %d recipes, want 1", window, len(got))
		}
	}

	_, err := engine.Trending(ctx, "fortnight", 10)
	if !models.IsValidation(err) {
		t.Errorf("expected ValidationError for unknown window, got %v", err)
	}
}
