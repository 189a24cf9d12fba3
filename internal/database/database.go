// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

// Package database provides DuckDB-backed persistence for the recipe catalog,
// user accounts, cooking profiles, and the early-access waitlist.
//
// All operations use parameterized queries. Counter updates (popularity,
// ratings) and waitlist position assignment run as single statements so they
// stay atomic under concurrent requests.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/saucier/internal/config"
	"github.com/tomtom215/saucier/internal/logging"
)

// defaultQueryTimeout bounds database operations that arrive without a deadline.
const defaultQueryTimeout = 30 * time.Second

// DB wraps the DuckDB connection and provides data access methods.
//
// writeMu serializes all mutating statements. DuckDB uses optimistic
// concurrency: concurrent transactions touching the same rows abort with a
// write-write conflict rather than blocking, and snapshot reads inside an
// INSERT..SELECT can observe the same count from two connections. Funneling
// writes through one mutex keeps counter updates and position assignment
// exact; reads never take the lock.
type DB struct {
	conn    *sql.DB
	cfg     *config.DatabaseConfig
	writeMu sync.Mutex
}

// New creates a new database connection and initializes the schema
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure parent directory exists for database file.
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301.
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// Disable auto-install/auto-load to prevent hangs in restricted network
	// environments. No extensions are needed for the catalog schema.
	// DuckDB rejects empty option values, so optional settings are appended
	// only when configured.
	params := []string{
		"access_mode=read_write",
		fmt.Sprintf("threads=%d", numThreads),
		"autoinstall_known_extensions=false",
		"autoload_known_extensions=false",
	}
	if cfg.MaxMemory != "" {
		params = append(params, "max_memory="+cfg.MaxMemory)
	}
	connStr := cfg.Path + "?" + strings.Join(params, "&")

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn: conn,
		cfg:  cfg,
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.SeedSampleRecipes {
		if err := db.seedSampleRecipes(context.Background()); err != nil {
			logging.Warn().Err(err).Msg("Failed to seed sample recipes")
		}
	}

	return db, nil
}

// configureConnectionPool tunes the sql.DB pool for DuckDB.
// DuckDB is an embedded single-writer database; a small pool avoids
// writer contention while still allowing concurrent reads.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(4)
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
}

// initialize creates the schema
func (db *DB) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR PRIMARY KEY,
			email VARCHAR NOT NULL UNIQUE,
			username VARCHAR NOT NULL UNIQUE,
			password_hash VARCHAR NOT NULL,
			role VARCHAR NOT NULL DEFAULT 'user',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id VARCHAR PRIMARY KEY,
			dietary_prefs VARCHAR,
			favorite_cuisines VARCHAR,
			experience VARCHAR NOT NULL DEFAULT 'beginner',
			spice_ceiling VARCHAR NOT NULL DEFAULT 'medium',
			favorite_recipes VARCHAR,
			saved_recipes VARCHAR,
			streak INTEGER NOT NULL DEFAULT 0,
			last_cooked_date TIMESTAMP,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS recipes (
			id VARCHAR PRIMARY KEY,
			name VARCHAR NOT NULL UNIQUE,
			category VARCHAR NOT NULL,
			cuisine VARCHAR NOT NULL,
			difficulty VARCHAR NOT NULL,
			prep_minutes INTEGER NOT NULL,
			cook_minutes INTEGER NOT NULL,
			ingredients VARCHAR NOT NULL,
			instructions VARCHAR NOT NULL,
			is_vegetarian BOOLEAN NOT NULL DEFAULT false,
			is_vegan BOOLEAN NOT NULL DEFAULT false,
			is_gluten_free BOOLEAN NOT NULL DEFAULT false,
			spice_level VARCHAR NOT NULL,
			popularity BIGINT NOT NULL DEFAULT 0,
			rating_avg DOUBLE NOT NULL DEFAULT 0,
			rating_count BIGINT NOT NULL DEFAULT 0,
			created_by VARCHAR,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS waitlist (
			id VARCHAR PRIMARY KEY,
			email VARCHAR NOT NULL UNIQUE,
			name VARCHAR NOT NULL,
			interests VARCHAR,
			experience VARCHAR,
			referral_from VARCHAR,
			queue_position BIGINT NOT NULL,
			status VARCHAR NOT NULL DEFAULT 'waiting',
			origin_ip VARCHAR,
			client_signature VARCHAR,
			created_at TIMESTAMP NOT NULL,
			invited_at TIMESTAMP,
			registered_at TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_cuisine ON recipes (cuisine)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_popularity ON recipes (popularity)`,
		`CREATE INDEX IF NOT EXISTS idx_waitlist_status ON waitlist (status)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Close closes the database connection. It performs a CHECKPOINT before
// closing to flush the WAL to the main database file.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	if err := db.Checkpoint(ctx); err != nil {
		// Best effort - don't fail close on checkpoint problems
		logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}
	cancel()

	return db.conn.Close()
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// GetDatabasePath returns the path to the database file
func (db *DB) GetDatabasePath() string {
	return db.cfg.Path
}

// ensureContext creates a context with a default timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), defaultQueryTimeout)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, defaultQueryTimeout)
	}

	return ctx, func() {}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// isUniqueViolation reports whether the error is a unique constraint failure.
// DuckDB surfaces these as constraint errors mentioning the duplicate key.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate key") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "Constraint Error") ||
		strings.Contains(msg, "UNIQUE constraint")
}
