// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

// Package config provides centralized configuration management for Saucier.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
package config

import (
	"time"
)

// Config holds all application configuration loaded from environment
// variables and config files.
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(cfg.Database)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Waitlist  WaitlistConfig  `koanf:"waitlist"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server configuration.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8080)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Request timeout (default: 30s)
//   - ENVIRONMENT: development or production (default: development)
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // Enables stricter secret checks in production
}

// DatabaseConfig holds DuckDB configuration.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path, or :memory: for ephemeral (default: /data/saucier.duckdb)
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - DUCKDB_THREADS: Worker threads, 0 = runtime.NumCPU() (default: 0)
//   - SEED_SAMPLE_RECIPES: Load the built-in sample catalog on first start (default: false)
type DatabaseConfig struct {
	Path              string `koanf:"path"`
	MaxMemory         string `koanf:"max_memory"`
	Threads           int    `koanf:"threads"`
	SeedSampleRecipes bool   `koanf:"seed_sample_recipes"`
}

// APIConfig holds pagination and response limits.
//
// Environment Variables:
//   - API_DEFAULT_PAGE_SIZE: Items per page when unspecified (default: 20)
//   - API_MAX_PAGE_SIZE: Hard cap on requested page size (default: 100)
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication, rate limiting, and CORS settings.
//
// Environment Variables:
//   - JWT_SECRET: HMAC signing secret, 32+ characters (required in production)
//   - ACCESS_TOKEN_TTL: Access token lifetime (default: 15m)
//   - REFRESH_TOKEN_TTL: Refresh token lifetime (default: 168h)
//   - TOKEN_STORE_PATH: Badger directory for refresh tokens (default: /data/tokens)
//   - BCRYPT_COST: bcrypt work factor (default: 12)
//   - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: Per-IP rate limit (default: 100 per 1m)
//   - DISABLE_RATE_LIMIT: Turn off rate limiting entirely (default: false)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	AccessTokenTTL    time.Duration `koanf:"access_token_ttl"`
	RefreshTokenTTL   time.Duration `koanf:"refresh_token_ttl"`
	TokenStorePath    string        `koanf:"token_store_path"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// WaitlistConfig holds early-access waitlist settings.
//
// Environment Variables:
//   - WAITLIST_INVITES_PER_DAY: Throughput used for wait estimates (default: 100)
//   - WAITLIST_JOIN_LIMIT_REQUESTS / WAITLIST_JOIN_LIMIT_WINDOW: Tighter per-IP
//     rate limit on the public join endpoint (default: 5 per 1h)
type WaitlistConfig struct {
	InvitesPerDay   int           `koanf:"invites_per_day"`
	JoinLimitReqs   int           `koanf:"join_limit_reqs"`
	JoinLimitWindow time.Duration `koanf:"join_limit_window"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_CACHE_TTL: How long per-user recommendations stay cached (default: 5m)
//   - RECOMMEND_DEFAULT_LIMIT: Recommendations returned by default (default: 10)
//   - RECOMMEND_MAX_LIMIT: Hard cap on requested recommendations (default: 20)
//   - RECOMMEND_QUICK_MINUTES: Total-time ceiling for quick recipes (default: 30)
type RecommendConfig struct {
	CacheTTL     time.Duration `koanf:"cache_ttl"`
	DefaultLimit int           `koanf:"default_limit"`
	MaxLimit     int           `koanf:"max_limit"`
	QuickMinutes int           `koanf:"quick_minutes"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error, fatal (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load loads configuration from defaults, optional config file, and
// environment variables. It is the single entry point used by cmd/server.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
