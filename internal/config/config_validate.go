// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package config

import (
	"fmt"
	"strings"
)

// Validation limit constants
const (
	minJWTSecretLength = 32
	minBcryptCost      = 10
	maxBcryptCost      = 31
	maxPageSizeCeiling = 1000
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateWaitlist(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateLogging()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// validateServer validates HTTP server settings.
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch strings.ToLower(c.Server.Environment) {
	case "development", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
}

// validateDatabase validates DuckDB settings.
func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH must not be empty (use :memory: for ephemeral storage)")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

// validateAPI validates pagination limits.
func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must be >= API_DEFAULT_PAGE_SIZE (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize > maxPageSizeCeiling {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be at most %d, got %d", maxPageSizeCeiling, c.API.MaxPageSize)
	}
	return nil
}

// validateSecurity validates authentication and rate limit settings.
// The JWT secret is required in production; development falls back to an
// ephemeral secret generated at startup.
func (c *Config) validateSecurity() error {
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters, got %d",
			minJWTSecretLength, len(c.Security.JWTSecret))
	}
	if c.IsProduction() && c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENVIRONMENT=production")
	}

	if c.Security.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive, got %v", c.Security.AccessTokenTTL)
	}
	if c.Security.RefreshTokenTTL <= c.Security.AccessTokenTTL {
		return fmt.Errorf("REFRESH_TOKEN_TTL (%v) must be longer than ACCESS_TOKEN_TTL (%v)",
			c.Security.RefreshTokenTTL, c.Security.AccessTokenTTL)
	}

	if c.Security.BcryptCost < minBcryptCost || c.Security.BcryptCost > maxBcryptCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d",
			minBcryptCost, maxBcryptCost, c.Security.BcryptCost)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
		}
	}

	return nil
}

// validateWaitlist validates waitlist settings.
func (c *Config) validateWaitlist() error {
	if c.Waitlist.InvitesPerDay < 1 {
		return fmt.Errorf("WAITLIST_INVITES_PER_DAY must be at least 1, got %d", c.Waitlist.InvitesPerDay)
	}
	if c.Waitlist.JoinLimitReqs < 1 {
		return fmt.Errorf("WAITLIST_JOIN_LIMIT_REQUESTS must be at least 1, got %d", c.Waitlist.JoinLimitReqs)
	}
	if c.Waitlist.JoinLimitWindow <= 0 {
		return fmt.Errorf("WAITLIST_JOIN_LIMIT_WINDOW must be positive, got %v", c.Waitlist.JoinLimitWindow)
	}
	return nil
}

// validateRecommend validates recommendation engine settings.
func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultLimit < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be at least 1, got %d", c.Recommend.DefaultLimit)
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT (%d) must be >= RECOMMEND_DEFAULT_LIMIT (%d)",
			c.Recommend.MaxLimit, c.Recommend.DefaultLimit)
	}
	if c.Recommend.CacheTTL < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must not be negative, got %v", c.Recommend.CacheTTL)
	}
	if c.Recommend.QuickMinutes < 1 {
		return fmt.Errorf("RECOMMEND_QUICK_MINUTES must be at least 1, got %d", c.Recommend.QuickMinutes)
	}
	return nil
}

// validateLogging validates logging settings.
func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, got %q", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
