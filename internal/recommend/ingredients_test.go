// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package recommend

import (
	"context"
	"fmt"
	"testing"

	"github.com/tomtom215/saucier/internal/models"
)

func TestMatchByIngredientsScoring(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	addRecipe(t, db, models.Recipe{
		Name: "Tomato Pasta",
		Ingredients: []models.Ingredient{
			{Name: "pasta", Quantity: 200, Unit: "g"},
			{Name: "tomato", Quantity: 3, Unit: "pieces"},
			{Name: "basil", Quantity: 10, Unit: "g"},
			{Name: "olive oil", Quantity: 2, Unit: "tbsp"},
		},
	}, 0)
	addRecipe(t, db, models.Recipe{
		Name: "Tomato Soup",
		Ingredients: []models.Ingredient{
			{Name: "tomato", Quantity: 500, Unit: "g"},
			{Name: "cream", Quantity: 100, Unit: "ml"},
		},
	}, 0)
	addRecipe(t, db, models.Recipe{
		Name: "Pancakes",
		Ingredients: []models.Ingredient{
			{Name: "flour", Quantity: 200, Unit: "g"},
			{Name: "egg", Quantity: 2, Unit: "pieces"},
		},
	}, 0)

	got, err := engine.MatchByIngredients(ctx, []string{"tomato", "pasta"}, 10)
	if err != nil {
		t.Fatalf("MatchByIngredients() error = %v", err)
	}

	// Pancakes has no match and is excluded entirely
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}

	// Soup: 1/2 matched beats Pasta: 2/4 matched only via ordering rules;
	// both score 0.5, so the tie falls to name asc
	if got[0].MatchScore != 0.5 || got[1].MatchScore != 0.5 {
		t.Errorf("scores = %v, %v, want 0.5 each", got[0].MatchScore, got[1].MatchScore)
	}
	if got[0].Recipe.Name != "Tomato Pasta" || got[1].Recipe.Name != "Tomato Soup" {
		t.Errorf("tie order = %s, %s, want name asc", got[0].Recipe.Name, got[1].Recipe.Name)
	}

	if len(got[0].MatchedIngredients) != 2 {
		t.Errorf("matched ingredients = %v, want pasta and tomato", got[0].MatchedIngredients)
	}
}

func TestMatchByIngredientsSubstring(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	addRecipe(t, db, models.Recipe{
		Name: "Carbonara",
		Ingredients: []models.Ingredient{
			{Name: "Cherry Tomatoes", Quantity: 200, Unit: "g"},
		},
	}, 0)

	// Case-insensitive substring: "tomato" matches "Cherry Tomatoes"
	got, err := engine.MatchByIngredients(ctx, []string{"TOMATO"}, 10)
	if err != nil {
		t.Fatalf("MatchByIngredients() error = %v", err)
	}
	if len(got) != 1 || got[0].MatchScore != 1.0 {
		t.Errorf("got %v, want full match via substring", got)
	}
	if got[0].MatchedIngredients[0] != "Cherry Tomatoes" {
		t.Errorf("matched name = %q, want original casing", got[0].MatchedIngredients[0])
	}
}

func TestMatchByIngredientsPopularityTieBreak(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	shared := []models.Ingredient{{Name: "rice", Quantity: 200, Unit: "g"}}
	addRecipe(t, db, models.Recipe{Name: "Plain Rice", Ingredients: shared}, 1)
	addRecipe(t, db, models.Recipe{Name: "Fried Rice", Ingredients: shared}, 5)

	got, err := engine.MatchByIngredients(ctx, []string{"rice"}, 10)
	if err != nil {
		t.Fatalf("MatchByIngredients() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}
	// Equal scores: higher popularity wins
	if got[0].Recipe.Name != "Fried Rice" {
		t.Errorf("first = %s, want Fried Rice (popularity desc)", got[0].Recipe.Name)
	}
}

func TestMatchByIngredientsValidation(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.MatchByIngredients(ctx, nil, 10); !models.IsValidation(err) {
		t.Errorf("expected ValidationError for empty list, got %v", err)
	}
	if _, err := engine.MatchByIngredients(ctx, []string{"  ", ""}, 10); !models.IsValidation(err) {
		t.Errorf("expected ValidationError for blank entries, got %v", err)
	}
}

func TestMatchByIngredientsLimit(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		addRecipe(t, db, models.Recipe{
			Name:        fmt.Sprintf("Rice Dish %d", i),
			Ingredients: []models.Ingredient{{Name: "rice", Quantity: 100, Unit: "g"}},
		}, 0)
	}

	got, err := engine.MatchByIngredients(ctx, []string{"rice"}, 3)
	if err != nil {
		t.Fatalf("MatchByIngredients() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d matches, want limit of 3", len(got))
	}
}
