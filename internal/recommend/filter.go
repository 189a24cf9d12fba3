// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

// Package recommend implements the recommendation and ingredient-match engine:
// preference-filter construction from stored profiles, fuzzy ingredient
// scoring, and quick/trending catalog queries.
package recommend

import "github.com/tomtom215/saucier/internal/models"

// Filter is the AND-combination of a user's preference constraints. A recipe
// passes only when every constraint admits it.
type Filter struct {
	Vegetarian   bool
	Vegan        bool
	GlutenFree   bool
	SpiceCeiling models.SpiceLevel
	Cuisines     []models.Cuisine
	Difficulties []models.Difficulty
}

// BuildFilter derives a preference filter from a profile. Dietary tags map to
// independent boolean requirements, the spice ceiling admits the prefix of the
// spice order, favorite cuisines form an allow-list (empty means
// unrestricted), and the experience level bounds recipe difficulty.
func BuildFilter(profile *models.UserProfile) Filter {
	f := Filter{
		SpiceCeiling: profile.SpiceCeiling,
		Cuisines:     profile.FavoriteCuisines,
		Difficulties: profile.Experience.AllowedDifficulties(),
	}
	for _, tag := range profile.DietaryPrefs {
		switch tag {
		case models.DietVegetarian:
			f.Vegetarian = true
		case models.DietVegan:
			f.Vegan = true
		case models.DietGlutenFree:
			f.GlutenFree = true
		}
	}
	return f
}

// Matches reports whether the recipe satisfies every constraint.
func (f Filter) Matches(r *models.Recipe) bool {
	if f.Vegetarian && !r.IsVegetarian {
		return false
	}
	if f.Vegan && !r.IsVegan {
		return false
	}
	if f.GlutenFree && !r.IsGlutenFree {
		return false
	}
	if ceiling := f.SpiceCeiling.Rank(); ceiling >= 0 && r.SpiceLevel.Rank() > ceiling {
		return false
	}
	if len(f.Cuisines) > 0 && !containsCuisine(f.Cuisines, r.Cuisine) {
		return false
	}
	if len(f.Difficulties) > 0 && !containsDifficulty(f.Difficulties, r.Difficulty) {
		return false
	}
	return true
}

func containsCuisine(cuisines []models.Cuisine, c models.Cuisine) bool {
	for _, cuisine := range cuisines {
		if cuisine == c {
			return true
		}
	}
	return false
}

func containsDifficulty(difficulties []models.Difficulty, d models.Difficulty) bool {
	for _, difficulty := range difficulties {
		if difficulty == d {
			return true
		}
	}
	return false
}
