// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

// Package auth provides account authentication: JWT access tokens, bcrypt
// password hashing, a BadgerDB-backed refresh-token store, and the HTTP
// middleware that enforces both.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tomtom215/saucier/internal/config"
	"github.com/tomtom215/saucier/internal/logging"
)

// Claims are the JWT claims carried by an access token. The user ID travels
// in the registered Subject claim.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager creates and validates access tokens. Tokens are signed with
// HMAC-SHA256 and are stateless: revocation happens through the short access
// TTL plus refresh-token rotation, not a denylist.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager creates a token manager from the security configuration.
//
// In development an empty JWT_SECRET is replaced with an ephemeral random
// secret, which invalidates all tokens on restart. Production requires an
// explicit secret; config validation rejects it earlier, so the fallback here
// only ever fires in development.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate ephemeral JWT secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		logging.Warn().Msg("JWT_SECRET not set; using ephemeral secret, tokens will not survive restarts")
	}

	return &JWTManager{
		secret: []byte(secret),
		ttl:    cfg.AccessTokenTTL,
	}, nil
}

// GenerateToken creates a signed access token for an authenticated user.
func (m *JWTManager) GenerateToken(userID, username, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies a token's signature, algorithm, and time claims, and
// returns its claims. Tokens signed with anything but HMAC are rejected to
// block algorithm confusion.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
