// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/saucier/internal/metrics"
	"github.com/tomtom215/saucier/internal/models"
)

const (
	matchDefaultLimit = 10
	matchMaxLimit     = 50
)

// MatchByIngredients scores the catalog against what the caller has on hand.
// Matching is a case-insensitive substring test: a recipe ingredient counts as
// matched when its name contains any of the available ingredients. The score
// is the fraction of the recipe's ingredients matched, in [0, 1]; recipes with
// no match are excluded. Results are sorted by score desc, then popularity
// desc, then name asc.
func (e *Engine) MatchByIngredients(ctx context.Context, available []string, limit int) ([]models.ScoredRecipe, error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendation("ingredients", time.Since(start)) }()

	if len(available) == 0 {
		return nil, models.NewValidationError("ingredients", "at least one ingredient is required")
	}
	if limit <= 0 {
		limit = matchDefaultLimit
	}
	if limit > matchMaxLimit {
		limit = matchMaxLimit
	}

	normalized := make([]string, 0, len(available))
	for _, name := range available {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			normalized = append(normalized, name)
		}
	}
	if len(normalized) == 0 {
		return nil, models.NewValidationError("ingredients", "at least one non-empty ingredient is required")
	}

	recipes, err := e.db.GetAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	scored := make([]models.ScoredRecipe, 0, limit)
	for i := range recipes {
		if match := scoreRecipe(&recipes[i], normalized); match != nil {
			scored = append(scored, *match)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchScore != scored[j].MatchScore {
			return scored[i].MatchScore > scored[j].MatchScore
		}
		if scored[i].Recipe.Popularity != scored[j].Recipe.Popularity {
			return scored[i].Recipe.Popularity > scored[j].Recipe.Popularity
		}
		return scored[i].Recipe.Name < scored[j].Recipe.Name
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// scoreRecipe returns the match for a single recipe, or nil when no
// ingredient matches or the recipe has no ingredients.
func scoreRecipe(recipe *models.Recipe, available []string) *models.ScoredRecipe {
	if len(recipe.Ingredients) == 0 {
		return nil
	}

	var matched []string
	for _, ingredient := range recipe.Ingredients {
		name := strings.ToLower(ingredient.Name)
		for _, have := range available {
			if strings.Contains(name, have) {
				matched = append(matched, ingredient.Name)
				break
			}
		}
	}
	if len(matched) == 0 {
		return nil
	}

	return &models.ScoredRecipe{
		Recipe:             *recipe,
		MatchScore:         float64(len(matched)) / float64(len(recipe.Ingredients)),
		MatchedIngredients: matched,
	}
}
