// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package models

import "time"

// Ingredient is a single line of a recipe's ingredient list.
type Ingredient struct {
	Name     string  `json:"name" validate:"required,min=1,max=120"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
	Unit     string  `json:"unit" validate:"required,min=1,max=30"`
}

// Rating is a recipe's running rating summary.
//
// Average is maintained as a weighted incremental mean rounded to one decimal
// place; it is never renormalized from raw rating history.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Recipe is a catalog entry.
//
// Popularity is incremented atomically at the store on every detail view and
// is the primary recommendation sort key.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     Category     `json:"category"`
	Cuisine      Cuisine      `json:"cuisine"`
	Difficulty   Difficulty   `json:"difficulty"`
	PrepMinutes  int          `json:"prep_minutes"`
	CookMinutes  int          `json:"cook_minutes"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	IsVegetarian bool         `json:"is_vegetarian"`
	IsVegan      bool         `json:"is_vegan"`
	IsGlutenFree bool         `json:"is_gluten_free"`
	SpiceLevel   SpiceLevel   `json:"spice_level"`
	Popularity   int64        `json:"popularity"`
	Rating       Rating       `json:"rating"`
	CreatedBy    string       `json:"created_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TotalMinutes returns combined preparation and cooking time.
func (r *Recipe) TotalMinutes() int {
	return r.PrepMinutes + r.CookMinutes
}

// ScoredRecipe pairs a recipe with its ingredient-match score.
//
// MatchScore is the fraction of the recipe's ingredients found among the
// caller-supplied available ingredients, in [0, 1].
type ScoredRecipe struct {
	Recipe             Recipe   `json:"recipe"`
	MatchScore         float64  `json:"match_score"`
	MatchedIngredients []string `json:"matched_ingredients"`
}

// CreateRecipeRequest is the payload for creating a catalog entry.
type CreateRecipeRequest struct {
	Name         string       `json:"name" validate:"required,min=1,max=200"`
	Category     string       `json:"category" validate:"required,oneof=breakfast lunch dinner dessert snack appetizer beverage"`
	Cuisine      string       `json:"cuisine" validate:"required,oneof=italian mexican indian chinese japanese thai french mediterranean american middle_eastern korean other"`
	Difficulty   string       `json:"difficulty" validate:"required,oneof=easy medium hard"`
	PrepMinutes  int          `json:"prep_minutes" validate:"required,gt=0,lte=1440"`
	CookMinutes  int          `json:"cook_minutes" validate:"required,gt=0,lte=1440"`
	Ingredients  []Ingredient `json:"ingredients" validate:"required,min=1,max=100,dive"`
	Instructions []string     `json:"instructions" validate:"required,min=1,max=100,dive,min=1,max=2000"`
	IsVegetarian bool         `json:"is_vegetarian"`
	IsVegan      bool         `json:"is_vegan"`
	IsGlutenFree bool         `json:"is_gluten_free"`
	SpiceLevel   string       `json:"spice_level" validate:"required,oneof=mild medium hot extra_hot"`
}

// UpdateRecipeRequest is the payload for editing a catalog entry.
// Nil fields are left unchanged.
type UpdateRecipeRequest struct {
	Name         *string       `json:"name" validate:"omitempty,min=1,max=200"`
	Category     *string       `json:"category" validate:"omitempty,oneof=breakfast lunch dinner dessert snack appetizer beverage"`
	Cuisine      *string       `json:"cuisine" validate:"omitempty,oneof=italian mexican indian chinese japanese thai french mediterranean american middle_eastern korean other"`
	Difficulty   *string       `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	PrepMinutes  *int          `json:"prep_minutes" validate:"omitempty,gt=0,lte=1440"`
	CookMinutes  *int          `json:"cook_minutes" validate:"omitempty,gt=0,lte=1440"`
	Ingredients  *[]Ingredient `json:"ingredients" validate:"omitempty,min=1,max=100,dive"`
	Instructions *[]string     `json:"instructions" validate:"omitempty,min=1,max=100,dive,min=1,max=2000"`
	IsVegetarian *bool         `json:"is_vegetarian"`
	IsVegan      *bool         `json:"is_vegan"`
	IsGlutenFree *bool         `json:"is_gluten_free"`
	SpiceLevel   *string       `json:"spice_level" validate:"omitempty,oneof=mild medium hot extra_hot"`
}

// RateRecipeRequest is the payload for submitting a rating.
type RateRecipeRequest struct {
	Value float64 `json:"value" validate:"gte=0,lte=5"`
}

// MatchByIngredientsRequest is the payload for ingredient-based lookup.
type MatchByIngredientsRequest struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1,max=50,dive,min=1,max=120"`
	Limit       int      `json:"limit" validate:"omitempty,min=1,max=50"`
}

// RecipeListOptions controls catalog listing queries.
type RecipeListOptions struct {
	Page       int        `validate:"min=1"`
	Limit      int        `validate:"min=1,max=100"`
	Category   Category   `validate:"omitempty,oneof=breakfast lunch dinner dessert snack appetizer beverage"`
	Cuisine    Cuisine    `validate:"omitempty,oneof=italian mexican indian chinese japanese thai french mediterranean american middle_eastern korean other"`
	Difficulty Difficulty `validate:"omitempty,oneof=easy medium hard"`
	MaxSpice   SpiceLevel `validate:"omitempty,oneof=mild medium hot extra_hot"`
	Vegetarian *bool
	Vegan      *bool
	GlutenFree *bool
	Search     string `validate:"omitempty,max=200"`
	SortBy     string `validate:"omitempty,oneof=popularity rating created_at name"`
	SortOrder  string `validate:"omitempty,oneof=asc desc"`
}
