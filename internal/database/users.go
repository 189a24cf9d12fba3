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

// userColumns is the shared SELECT column list for users.
const userColumns = `
	id, email, username, password_hash, role, created_at, updated_at`

// profileColumns is the shared SELECT column list for profiles.
const profileColumns = `
	user_id, dietary_prefs, favorite_cuisines, experience, spice_ceiling,
	favorite_recipes, saved_recipes, streak, last_cooked_date, updated_at`

// CreateUser inserts a new account together with its default cooking profile.
// Both writes happen in one transaction so an account never exists without a
// profile.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, email, username, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.Username, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewDuplicateError("user", "email or username", user.Email)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	profile := models.DefaultProfile(user.ID)
	profile.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (user_id, experience, spice_ceiling, streak, updated_at)
		VALUES (?, ?, ?, 0, ?)
	`, profile.UserID, string(profile.Experience), string(profile.SpiceCeiling), profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user creation: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := "SELECT" + userColumns + " FROM users WHERE id = ?"
	user, err := scanUser(db.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("user", id)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
// Returns (nil, nil) when no user exists, so login can fail uniformly
// without leaking which emails are registered.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := "SELECT" + userColumns + " FROM users WHERE email = ?"
	return scanUser(db.conn.QueryRowContext(ctx, query, email))
}

// GetUserByUsername retrieves a user by username.
// Returns (nil, nil) when no user exists.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := "SELECT" + userColumns + " FROM users WHERE username = ?"
	return scanUser(db.conn.QueryRowContext(ctx, query, username))
}

// GetUserProfile retrieves the cooking profile for a user.
func (db *DB) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := "SELECT" + profileColumns + " FROM profiles WHERE user_id = ?"
	row := db.conn.QueryRowContext(ctx, query, userID)

	var profile models.UserProfile
	var dietaryJSON, cuisinesJSON, favoritesJSON, savedJSON sql.NullString
	var lastCooked sql.NullTime

	err := row.Scan(
		&profile.UserID,
		&dietaryJSON,
		&cuisinesJSON,
		&profile.Experience,
		&profile.SpiceCeiling,
		&favoritesJSON,
		&savedJSON,
		&profile.Streak,
		&lastCooked,
		&profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("profile", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	if err := parseJSONFieldInto(dietaryJSON, &profile.DietaryPrefs, "dietary_prefs"); err != nil {
		return nil, err
	}
	if err := parseJSONFieldInto(cuisinesJSON, &profile.FavoriteCuisines, "favorite_cuisines"); err != nil {
		return nil, err
	}
	if err := parseJSONFieldInto(favoritesJSON, &profile.FavoriteRecipes, "favorite_recipes"); err != nil {
		return nil, err
	}
	if err := parseJSONFieldInto(savedJSON, &profile.SavedRecipes, "saved_recipes"); err != nil {
		return nil, err
	}

	if lastCooked.Valid {
		t := lastCooked.Time
		profile.LastCookedDate = &t
	}

	return &profile, nil
}

// SaveUserProfile persists the full profile row.
func (db *DB) SaveUserProfile(ctx context.Context, profile *models.UserProfile) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	profile.UpdatedAt = time.Now().UTC()

	dietaryJSON, err := marshalJSONField(profile.DietaryPrefs, "dietary_prefs")
	if err != nil {
		return err
	}
	cuisinesJSON, err := marshalJSONField(profile.FavoriteCuisines, "favorite_cuisines")
	if err != nil {
		return err
	}
	favoritesJSON, err := marshalJSONField(profile.FavoriteRecipes, "favorite_recipes")
	if err != nil {
		return err
	}
	savedJSON, err := marshalJSONField(profile.SavedRecipes, "saved_recipes")
	if err != nil {
		return err
	}

	var lastCooked interface{}
	if profile.LastCookedDate != nil {
		lastCooked = *profile.LastCookedDate
	}

	query := `
		UPDATE profiles
		SET dietary_prefs = ?, favorite_cuisines = ?, experience = ?,
		    spice_ceiling = ?, favorite_recipes = ?, saved_recipes = ?,
		    streak = ?, last_cooked_date = ?, updated_at = ?
		WHERE user_id = ?
	`
	result, err := db.conn.ExecContext(ctx, query,
		nullableJSON(dietaryJSON),
		nullableJSON(cuisinesJSON),
		string(profile.Experience),
		string(profile.SpiceCeiling),
		nullableJSON(favoritesJSON),
		nullableJSON(savedJSON),
		profile.Streak,
		lastCooked,
		profile.UpdatedAt,
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return models.NewNotFoundError("profile", profile.UserID)
	}

	return nil
}

// CountUsers returns the total number of accounts.
func (db *DB) CountUsers(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// scanUser scans a single user from a row.
// Returns (nil, nil) on sql.ErrNoRows.
func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
