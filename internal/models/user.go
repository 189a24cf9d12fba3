// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package models

import "time"

// User is an account record. PasswordHash is a bcrypt hash and is never
// serialized in responses.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserProfile holds cooking preferences and activity for a user.
//
// SpiceCeiling is the hottest level the user will accept; the recommendation
// filter admits the prefix of the spice order up to and including it.
// Streak counts consecutive days with at least one cooked recipe.
type UserProfile struct {
	UserID           string          `json:"user_id"`
	DietaryPrefs     []DietaryTag    `json:"dietary_prefs"`
	FavoriteCuisines []Cuisine       `json:"favorite_cuisines"`
	Experience       ExperienceLevel `json:"experience"`
	SpiceCeiling     SpiceLevel      `json:"spice_ceiling"`
	FavoriteRecipes  []string        `json:"favorite_recipes"`
	SavedRecipes     []string        `json:"saved_recipes"`
	Streak           int             `json:"streak"`
	LastCookedDate   *time.Time      `json:"last_cooked_date,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DefaultProfile returns the profile created alongside a new account.
func DefaultProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:       userID,
		Experience:   ExperienceBeginner,
		SpiceCeiling: SpiceMedium,
	}
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=40"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// RefreshRequest is the payload for rotating an access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required,min=1"`
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// UpdateProfileRequest is the payload for editing preferences.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	DietaryPrefs     *[]string `json:"dietary_prefs" validate:"omitempty,max=3,dive,oneof=vegetarian vegan gluten_free"`
	FavoriteCuisines *[]string `json:"favorite_cuisines" validate:"omitempty,max=12,dive,oneof=italian mexican indian chinese japanese thai french mediterranean american middle_eastern korean other"`
	Experience       *string   `json:"experience" validate:"omitempty,oneof=beginner intermediate advanced professional"`
	SpiceCeiling     *string   `json:"spice_ceiling" validate:"omitempty,oneof=mild medium hot extra_hot"`
}
