// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/saucier/internal/models"
)

// recipeColumns is the shared SELECT column list for recipes.
const recipeColumns = `
	id, name, category, cuisine, difficulty, prep_minutes, cook_minutes,
	ingredients, instructions, is_vegetarian, is_vegan, is_gluten_free,
	spice_level, popularity, rating_avg, rating_count, created_by,
	created_at, updated_at`

// CreateRecipe inserts a new catalog entry. Recipe names are unique; a
// collision returns a DuplicateError.
func (db *DB) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	ingredientsJSON, err := marshalJSONField(recipe.Ingredients, "ingredients")
	if err != nil {
		return err
	}
	instructionsJSON, err := marshalJSONField(recipe.Instructions, "instructions")
	if err != nil {
		return err
	}

	query := `
		INSERT INTO recipes (
			id, name, category, cuisine, difficulty, prep_minutes, cook_minutes,
			ingredients, instructions, is_vegetarian, is_vegan, is_gluten_free,
			spice_level, popularity, rating_avg, rating_count, created_by,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, 0, ?, ?, ?)
	`

	_, err = db.conn.ExecContext(ctx, query,
		recipe.ID,
		recipe.Name,
		string(recipe.Category),
		string(recipe.Cuisine),
		string(recipe.Difficulty),
		recipe.PrepMinutes,
		recipe.CookMinutes,
		string(ingredientsJSON),
		string(instructionsJSON),
		recipe.IsVegetarian,
		recipe.IsVegan,
		recipe.IsGlutenFree,
		string(recipe.SpiceLevel),
		recipe.CreatedBy,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewDuplicateError("recipe", "name", recipe.Name)
		}
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	return nil
}

// GetRecipe retrieves a recipe by ID without touching its popularity.
func (db *DB) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := "SELECT" + recipeColumns + " FROM recipes WHERE id = ?"
	recipe, err := scanRecipe(db.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, models.NewNotFoundError("recipe", id)
	}
	return recipe, nil
}

// IncrementRecipePopularity bumps the view counter and returns the new value.
// The increment happens inside the UPDATE, and writeMu keeps concurrent detail
// views from aborting each other's transactions, so no counts are lost.
func (db *DB) IncrementRecipePopularity(ctx context.Context, id string) (int64, error) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := "UPDATE recipes SET popularity = popularity + 1 WHERE id = ? RETURNING popularity"

	var popularity int64
	err := db.conn.QueryRowContext(ctx, query, id).Scan(&popularity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.NewNotFoundError("recipe", id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment popularity: %w", err)
	}

	return popularity, nil
}

// RateRecipe folds a new rating into the running average as a single atomic
// statement: average' = round((average*count + value) / (count+1), 1).
// The raw rating history is not stored.
func (db *DB) RateRecipe(ctx context.Context, id string, value float64) (*models.Rating, error) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		UPDATE recipes
		SET rating_avg = round((rating_avg * rating_count + ?) / (rating_count + 1), 1),
		    rating_count = rating_count + 1,
		    updated_at = ?
		WHERE id = ?
		RETURNING rating_avg, rating_count
	`

	var rating models.Rating
	err := db.conn.QueryRowContext(ctx, query, value, time.Now().UTC(), id).
		Scan(&rating.Average, &rating.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("recipe", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rate recipe: %w", err)
	}

	return &rating, nil
}

// ListRecipes retrieves catalog entries with filtering, sorting, and
// pagination. Returns recipes plus the total matching count.
func (db *DB) ListRecipes(ctx context.Context, opts models.RecipeListOptions) ([]models.Recipe, int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	fb := newFilterBuilder()
	fb.addFilter("category", string(opts.Category)).
		addFilter("cuisine", string(opts.Cuisine)).
		addFilter("difficulty", string(opts.Difficulty)).
		addBoolFilter("is_vegetarian", opts.Vegetarian).
		addBoolFilter("is_vegan", opts.Vegan).
		addBoolFilter("is_gluten_free", opts.GlutenFree).
		addSearchFilter("name", opts.Search)

	// Spice ceilings admit the prefix of the heat order, not a single level
	if opts.MaxSpice != "" {
		levels := models.SpiceLevelsUpTo(opts.MaxSpice)
		values := make([]string, len(levels))
		for i, l := range levels {
			values[i] = string(l)
		}
		fb.addInFilter("spice_level", values)
	}

	whereClause, filterArgs := fb.buildWhere()

	countQuery := "SELECT COUNT(*) FROM recipes" + whereClause
	var totalCount int
	if err := db.conn.QueryRowContext(ctx, countQuery, filterArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	orderClause := recipeOrderClause(opts.SortBy, opts.SortOrder)
	query := "SELECT" + recipeColumns + " FROM recipes" + whereClause + orderClause + " LIMIT ? OFFSET ?"

	offset := (opts.Page - 1) * opts.Limit
	args := append(filterArgs, opts.Limit, offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes, err := scanRecipeRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return recipes, totalCount, nil
}

// GetAllRecipes returns the full catalog ordered by popularity. The
// recommendation engine scores recipes in memory, so it needs the whole set
// rather than a page.
func (db *DB) GetAllRecipes(ctx context.Context) ([]models.Recipe, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := "SELECT" + recipeColumns + " FROM recipes ORDER BY popularity DESC, name ASC"
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	return scanRecipeRows(rows)
}

// GetRecipesCreatedSince returns recipes created at or after the cutoff,
// ordered by popularity. Used for trending windows.
func (db *DB) GetRecipesCreatedSince(ctx context.Context, cutoff time.Time, limit int) ([]models.Recipe, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := "SELECT" + recipeColumns + ` FROM recipes
		WHERE created_at >= ?
		ORDER BY popularity DESC, rating_avg DESC, name ASC
		LIMIT ?`
	rows, err := db.conn.QueryContext(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent recipes: %w", err)
	}
	defer rows.Close()

	return scanRecipeRows(rows)
}

// UpdateRecipe applies non-nil fields from the request to a recipe. Renaming
// onto an existing recipe's name returns a DuplicateError.
func (db *DB) UpdateRecipe(ctx context.Context, id string, req *models.UpdateRecipeRequest) (*models.Recipe, error) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	recipe, err := db.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	applyRecipeUpdate(recipe, req)
	recipe.UpdatedAt = time.Now().UTC()

	ingredientsJSON, err := marshalJSONField(recipe.Ingredients, "ingredients")
	if err != nil {
		return nil, err
	}
	instructionsJSON, err := marshalJSONField(recipe.Instructions, "instructions")
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE recipes
		SET name = ?, category = ?, cuisine = ?, difficulty = ?,
		    prep_minutes = ?, cook_minutes = ?, ingredients = ?, instructions = ?,
		    is_vegetarian = ?, is_vegan = ?, is_gluten_free = ?, spice_level = ?,
		    updated_at = ?
		WHERE id = ?
	`
	if _, err := db.conn.ExecContext(ctx, query,
		recipe.Name,
		string(recipe.Category),
		string(recipe.Cuisine),
		string(recipe.Difficulty),
		recipe.PrepMinutes,
		recipe.CookMinutes,
		string(ingredientsJSON),
		string(instructionsJSON),
		recipe.IsVegetarian,
		recipe.IsVegan,
		recipe.IsGlutenFree,
		string(recipe.SpiceLevel),
		recipe.UpdatedAt,
		id,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewDuplicateError("recipe", "name", recipe.Name)
		}
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	return recipe, nil
}

// DeleteRecipe removes a catalog entry.
func (db *DB) DeleteRecipe(ctx context.Context, id string) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	result, err := db.conn.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return models.NewNotFoundError("recipe", id)
	}

	return nil
}

// applyRecipeUpdate copies non-nil request fields onto the recipe.
func applyRecipeUpdate(recipe *models.Recipe, req *models.UpdateRecipeRequest) {
	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Category != nil {
		recipe.Category = models.Category(*req.Category)
	}
	if req.Cuisine != nil {
		recipe.Cuisine = models.Cuisine(*req.Cuisine)
	}
	if req.Difficulty != nil {
		recipe.Difficulty = models.Difficulty(*req.Difficulty)
	}
	if req.PrepMinutes != nil {
		recipe.PrepMinutes = *req.PrepMinutes
	}
	if req.CookMinutes != nil {
		recipe.CookMinutes = *req.CookMinutes
	}
	if req.Ingredients != nil {
		recipe.Ingredients = *req.Ingredients
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.IsVegetarian != nil {
		recipe.IsVegetarian = *req.IsVegetarian
	}
	if req.IsVegan != nil {
		recipe.IsVegan = *req.IsVegan
	}
	if req.IsGlutenFree != nil {
		recipe.IsGlutenFree = *req.IsGlutenFree
	}
	if req.SpiceLevel != nil {
		recipe.SpiceLevel = models.SpiceLevel(*req.SpiceLevel)
	}
}

// scanRecipe scans a single recipe from a row.
// Returns (nil, nil) on sql.ErrNoRows.
func scanRecipe(row *sql.Row) (*models.Recipe, error) {
	recipe, err := scanRecipeFields(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return recipe, err
}

// scanRecipeRows scans multiple recipe rows into a slice.
func scanRecipeRows(rows *sql.Rows) ([]models.Recipe, error) {
	var recipes []models.Recipe
	for rows.Next() {
		recipe, err := scanRecipeFields(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}
	return recipes, nil
}

func scanRecipeFields(scanner rowScanner) (*models.Recipe, error) {
	var recipe models.Recipe
	var ingredientsJSON, instructionsJSON string
	var createdBy sql.NullString

	err := scanner.Scan(
		&recipe.ID,
		&recipe.Name,
		&recipe.Category,
		&recipe.Cuisine,
		&recipe.Difficulty,
		&recipe.PrepMinutes,
		&recipe.CookMinutes,
		&ingredientsJSON,
		&instructionsJSON,
		&recipe.IsVegetarian,
		&recipe.IsVegan,
		&recipe.IsGlutenFree,
		&recipe.SpiceLevel,
		&recipe.Popularity,
		&recipe.Rating.Average,
		&recipe.Rating.Count,
		&createdBy,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan recipe: %w", err)
	}

	recipe.CreatedBy = createdBy.String

	if err := parseJSONFieldInto(sql.NullString{String: ingredientsJSON, Valid: true}, &recipe.Ingredients, "ingredients"); err != nil {
		return nil, err
	}
	if err := parseJSONFieldInto(sql.NullString{String: instructionsJSON, Valid: true}, &recipe.Instructions, "instructions"); err != nil {
		return nil, err
	}

	return &recipe, nil
}

// recipeOrderClause maps sort options to a safe ORDER BY clause.
// Column names are chosen from a closed set; user input never reaches SQL.
func recipeOrderClause(sortBy, sortOrder string) string {
	column := "popularity"
	switch sortBy {
	case "rating":
		column = "rating_avg"
	case "created_at":
		column = "created_at"
	case "name":
		column = "name"
	}

	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}

	// Name breaks ties so pagination stays stable across requests
	return " ORDER BY " + column + " " + direction + ", name ASC"
}
