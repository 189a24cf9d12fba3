// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

// Package api provides the HTTP surface: Chi routing, request handlers,
// middleware wiring, and the uniform response envelope.
package api

import (
	"github.com/tomtom215/saucier/internal/auth"
	"github.com/tomtom215/saucier/internal/config"
	"github.com/tomtom215/saucier/internal/database"
	"github.com/tomtom215/saucier/internal/recommend"
	"github.com/tomtom215/saucier/internal/waitlist"
)

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	db       *database.DB
	cfg      *config.Config
	waitlist *waitlist.Manager
	engine   *recommend.Engine
	jwt      *auth.JWTManager
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenStore
}

// NewHandler wires the handler with its collaborators.
func NewHandler(
	db *database.DB,
	cfg *config.Config,
	waitlistMgr *waitlist.Manager,
	engine *recommend.Engine,
	jwtManager *auth.JWTManager,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenStore,
) *Handler {
	return &Handler{
		db:       db,
		cfg:      cfg,
		waitlist: waitlistMgr,
		engine:   engine,
		jwt:      jwtManager,
		hasher:   hasher,
		tokens:   tokens,
	}
}
