// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/tomtom215/saucier/internal/metrics"
)

// ErrTokenNotFound is returned when a refresh token is unknown, expired, or
// already rotated.
var ErrTokenNotFound = errors.New("refresh token not found")

const refreshTokenKeyPrefix = "refresh:"

// refreshRecord is the stored value for a refresh token.
type refreshRecord struct {
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenStore persists refresh tokens in BadgerDB with per-entry TTLs, so
// expired tokens vanish without a sweeper. Tokens are single-use: a refresh
// consumes the presented token and issues a new one.
type TokenStore struct {
	db  *badger.DB
	ttl time.Duration
}

// NewTokenStore opens (or creates) the badger database at path. An empty path
// opens an in-memory store, used in tests and ephemeral deployments.
func NewTokenStore(path string, ttl time.Duration) (*TokenStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	return &TokenStore{db: db, ttl: ttl}, nil
}

// Issue creates and stores a new refresh token for the user.
func (s *TokenStore) Issue(userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	token := hex.EncodeToString(buf)

	now := time.Now().UTC()
	record := refreshRecord{
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal refresh record: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(refreshTokenKeyPrefix+token), data).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	metrics.ActiveSessions.Inc()
	return token, nil
}

// Consume validates a refresh token and removes it, returning the owning user
// ID. Unknown or expired tokens return ErrTokenNotFound.
func (s *TokenStore) Consume(token string) (string, error) {
	var record refreshRecord

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(refreshTokenKeyPrefix + token)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTokenNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read refresh token: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		}); err != nil {
			return fmt.Errorf("failed to decode refresh record: %w", err)
		}
		return txn.Delete(key)
	})
	if err != nil {
		return "", err
	}

	// Badger TTLs are the primary expiry; the timestamp check covers the
	// window between logical and physical expiration.
	if time.Now().UTC().After(record.ExpiresAt) {
		return "", ErrTokenNotFound
	}

	metrics.ActiveSessions.Dec()
	return record.UserID, nil
}

// Revoke deletes a refresh token if present. Revoking an unknown token is not
// an error.
func (s *TokenStore) Revoke(token string) error {
	existed := false
	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(refreshTokenKeyPrefix + token)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		existed = true
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if existed {
		metrics.ActiveSessions.Dec()
	}
	return nil
}

// Close flushes and closes the underlying badger database.
func (s *TokenStore) Close() error {
	return s.db.Close()
}
