// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/saucier/internal/logging"
	"github.com/tomtom215/saucier/internal/models"
)

// seedSampleRecipes loads a small starter catalog on first start.
// It is a no-op when the recipes table already has rows.
func (db *DB) seedSampleRecipes(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes").Scan(&count); err != nil {
		return fmt.Errorf("failed to check recipe count: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i := range sampleRecipes {
		if err := db.CreateRecipe(ctx, &sampleRecipes[i]); err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", sampleRecipes[i].Name, err)
		}
	}

	logging.Info().Int("count", len(sampleRecipes)).Msg("Seeded sample recipe catalog")
	return nil
}

// sampleRecipes is the built-in starter catalog.
var sampleRecipes = []models.Recipe{
	{
		Name:       "Spaghetti Carbonara",
		Category:   models.CategoryDinner,
		Cuisine:    models.CuisineItalian,
		Difficulty: models.DifficultyMedium,
		PrepMinutes: 10, CookMinutes: 20,
		Ingredients: []models.Ingredient{
			{Name: "spaghetti", Quantity: 400, Unit: "g"},
			{Name: "guanciale", Quantity: 150, Unit: "g"},
			{Name: "egg yolk", Quantity: 4, Unit: "pieces"},
			{Name: "pecorino romano", Quantity: 80, Unit: "g"},
			{Name: "black pepper", Quantity: 2, Unit: "tsp"},
		},
		Instructions: []string{
			"Boil spaghetti in salted water until al dente.",
			"Render guanciale in a cold pan over medium heat until crisp.",
			"Whisk yolks with grated pecorino and pepper.",
			"Toss drained pasta with guanciale off the heat, then fold in the egg mixture with a splash of pasta water.",
		},
		SpiceLevel: models.SpiceMild,
	},
	{
		Name:       "Chicken Tikka Masala",
		Category:   models.CategoryDinner,
		Cuisine:    models.CuisineIndian,
		Difficulty: models.DifficultyHard,
		PrepMinutes: 30, CookMinutes: 45,
		Ingredients: []models.Ingredient{
			{Name: "chicken thigh", Quantity: 600, Unit: "g"},
			{Name: "yogurt", Quantity: 200, Unit: "g"},
			{Name: "garam masala", Quantity: 2, Unit: "tbsp"},
			{Name: "tomato", Quantity: 400, Unit: "g"},
			{Name: "cream", Quantity: 150, Unit: "ml"},
			{Name: "garlic", Quantity: 4, Unit: "cloves"},
			{Name: "ginger", Quantity: 20, Unit: "g"},
		},
		Instructions: []string{
			"Marinate chicken in yogurt and half the spices for at least 2 hours.",
			"Char the chicken under a hot grill.",
			"Simmer tomatoes with garlic, ginger, and remaining spices.",
			"Blend the sauce, add cream and chicken, and simmer 15 minutes.",
		},
		SpiceLevel: models.SpiceHot,
	},
	{
		Name:       "Avocado Toast",
		Category:   models.CategoryBreakfast,
		Cuisine:    models.CuisineAmerican,
		Difficulty: models.DifficultyEasy,
		PrepMinutes: 5, CookMinutes: 5,
		Ingredients: []models.Ingredient{
			{Name: "sourdough bread", Quantity: 2, Unit: "slices"},
			{Name: "avocado", Quantity: 1, Unit: "pieces"},
			{Name: "lemon", Quantity: 0.5, Unit: "pieces"},
			{Name: "chili flakes", Quantity: 0.5, Unit: "tsp"},
		},
		Instructions: []string{
			"Toast the bread.",
			"Mash avocado with lemon juice and salt.",
			"Spread on toast and finish with chili flakes.",
		},
		IsVegetarian: true,
		IsVegan:      true,
		SpiceLevel:   models.SpiceMedium,
	},
	{
		Name:       "Pad Thai",
		Category:   models.CategoryDinner,
		Cuisine:    models.CuisineThai,
		Difficulty: models.DifficultyMedium,
		PrepMinutes: 20, CookMinutes: 15,
		Ingredients: []models.Ingredient{
			{Name: "rice noodles", Quantity: 250, Unit: "g"},
			{Name: "shrimp", Quantity: 200, Unit: "g"},
			{Name: "tamarind paste", Quantity: 2, Unit: "tbsp"},
			{Name: "fish sauce", Quantity: 2, Unit: "tbsp"},
			{Name: "peanuts", Quantity: 50, Unit: "g"},
			{Name: "bean sprouts", Quantity: 100, Unit: "g"},
			{Name: "egg", Quantity: 2, Unit: "pieces"},
		},
		Instructions: []string{
			"Soak noodles in warm water until pliable.",
			"Stir-fry shrimp, push aside, and scramble the eggs.",
			"Add noodles and the tamarind-fish sauce mixture.",
			"Toss with sprouts and top with crushed peanuts.",
		},
		SpiceLevel: models.SpiceMedium,
	},
	{
		Name:       "Greek Salad",
		Category:   models.CategoryLunch,
		Cuisine:    models.CuisineMediterranean,
		Difficulty: models.DifficultyEasy,
		PrepMinutes: 15, CookMinutes: 1,
		Ingredients: []models.Ingredient{
			{Name: "tomato", Quantity: 3, Unit: "pieces"},
			{Name: "cucumber", Quantity: 1, Unit: "pieces"},
			{Name: "feta", Quantity: 150, Unit: "g"},
			{Name: "kalamata olives", Quantity: 80, Unit: "g"},
			{Name: "red onion", Quantity: 0.5, Unit: "pieces"},
			{Name: "olive oil", Quantity: 3, Unit: "tbsp"},
		},
		Instructions: []string{
			"Chop vegetables into chunky pieces.",
			"Combine with olives and feta.",
			"Dress with olive oil, oregano, and a pinch of salt.",
		},
		IsVegetarian: true,
		IsGlutenFree: true,
		SpiceLevel:   models.SpiceMild,
	},
	{
		Name:       "Kimchi Fried Rice",
		Category:   models.CategoryDinner,
		Cuisine:    models.CuisineKorean,
		Difficulty: models.DifficultyEasy,
		PrepMinutes: 10, CookMinutes: 15,
		Ingredients: []models.Ingredient{
			{Name: "cooked rice", Quantity: 400, Unit: "g"},
			{Name: "kimchi", Quantity: 200, Unit: "g"},
			{Name: "gochujang", Quantity: 1, Unit: "tbsp"},
			{Name: "egg", Quantity: 2, Unit: "pieces"},
			{Name: "scallion", Quantity: 2, Unit: "pieces"},
			{Name: "sesame oil", Quantity: 1, Unit: "tbsp"},
		},
		Instructions: []string{
			"Fry chopped kimchi in a hot pan.",
			"Add rice and gochujang, pressing the rice to crisp.",
			"Finish with sesame oil and scallions, and top with a fried egg.",
		},
		IsVegetarian: true,
		SpiceLevel:   models.SpiceExtraHot,
	},
	{
		Name:       "Chocolate Mousse",
		Category:   models.CategoryDessert,
		Cuisine:    models.CuisineFrench,
		Difficulty: models.DifficultyMedium,
		PrepMinutes: 20, CookMinutes: 10,
		Ingredients: []models.Ingredient{
			{Name: "dark chocolate", Quantity: 200, Unit: "g"},
			{Name: "egg", Quantity: 4, Unit: "pieces"},
			{Name: "sugar", Quantity: 40, Unit: "g"},
			{Name: "cream", Quantity: 100, Unit: "ml"},
		},
		Instructions: []string{
			"Melt chocolate over a bain-marie.",
			"Whip whites with sugar to soft peaks.",
			"Fold yolks and cream into the chocolate, then fold in the whites.",
			"Chill at least 4 hours.",
		},
		IsVegetarian: true,
		IsGlutenFree: true,
		SpiceLevel:   models.SpiceMild,
	},
	{
		Name:       "Guacamole",
		Category:   models.CategoryAppetizer,
		Cuisine:    models.CuisineMexican,
		Difficulty: models.DifficultyEasy,
		PrepMinutes: 10, CookMinutes: 1,
		Ingredients: []models.Ingredient{
			{Name: "avocado", Quantity: 3, Unit: "pieces"},
			{Name: "lime", Quantity: 1, Unit: "pieces"},
			{Name: "jalapeno", Quantity: 1, Unit: "pieces"},
			{Name: "cilantro", Quantity: 15, Unit: "g"},
			{Name: "red onion", Quantity: 0.5, Unit: "pieces"},
		},
		Instructions: []string{
			"Mash avocados coarsely.",
			"Fold in minced onion, jalapeno, cilantro, and lime juice.",
			"Season with salt and serve immediately.",
		},
		IsVegetarian: true,
		IsVegan:      true,
		IsGlutenFree: true,
		SpiceLevel:   models.SpiceHot,
	},
}
