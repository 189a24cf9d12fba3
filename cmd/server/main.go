// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

// Package main is the entry point for the Saucier server.
//
// Saucier is a recipe catalog and cooking assistant backend: user accounts
// with cooking profiles, a recipe catalog with ingredient-based lookup,
// personalized recommendations, and an early-access waitlist.
//
// Startup order:
//
//  1. Configuration: Koanf v2 layered sources (defaults, config.yaml, env)
//  2. Logging: zerolog global logger
//  3. Database: DuckDB with the full schema, optionally seeded
//  4. Auth: JWT manager, bcrypt hasher, BadgerDB refresh-token store
//  5. Engines: waitlist manager and recommendation engine
//  6. HTTP server under a suture supervision tree
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops accepting
// connections, drains in-flight requests within the shutdown timeout, then
// checkpoints and closes the database.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/saucier/internal/api"
	"github.com/tomtom215/saucier/internal/auth"
	"github.com/tomtom215/saucier/internal/config"
	"github.com/tomtom215/saucier/internal/database"
	"github.com/tomtom215/saucier/internal/logging"
	"github.com/tomtom215/saucier/internal/metrics"
	"github.com/tomtom215/saucier/internal/recommend"
	"github.com/tomtom215/saucier/internal/supervisor"
	"github.com/tomtom215/saucier/internal/waitlist"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Saucier")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT manager: %w", err)
	}
	hasher := auth.NewPasswordHasher(cfg.Security.BcryptCost)

	tokenStore, err := auth.NewTokenStore(cfg.Security.TokenStorePath, cfg.Security.RefreshTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to open token store: %w", err)
	}
	defer func() {
		if err := tokenStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close token store")
		}
	}()

	waitlistMgr := waitlist.NewManager(db, &cfg.Waitlist)
	engine := recommend.NewEngine(db, &cfg.Recommend)

	handler := api.NewHandler(db, cfg, waitlistMgr, engine, jwtManager, hasher, tokenStore)
	chiMw := api.NewChiMiddleware(&cfg.Security, &cfg.Waitlist)
	authMw := auth.NewMiddleware(jwtManager)
	router := api.NewRouter(handler, chiMw, authMw)

	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)
	go trackUptime()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	tree := supervisor.NewTree(treeConfig)
	tree.AddAPIService(supervisor.NewHTTPServerService(server, treeConfig.ShutdownTimeout))
	tree.AddDataService(supervisor.NewCheckpointService(db, 5*time.Minute))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, draining")
		if err := <-errCh; err != nil && err != context.Canceled {
			return fmt.Errorf("supervisor shutdown error: %w", err)
		}
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("supervisor failed: %w", err)
		}
	}

	logging.Info().Msg("Saucier stopped")
	return nil
}

func trackUptime() {
	start := time.Now()
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		metrics.AppUptime.Set(time.Since(start).Seconds())
	}
}
