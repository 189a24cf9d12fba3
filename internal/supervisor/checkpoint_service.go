// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package supervisor

import (
	"context"
	"time"

	"github.com/tomtom215/saucier/internal/logging"
)

// Checkpointer is the slice of the database layer the service needs.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService periodically flushes the DuckDB write-ahead log so an
// unclean shutdown loses at most one interval of buffered writes.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
}

// NewCheckpointService creates a checkpoint service. Non-positive intervals
// default to five minutes.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CheckpointService{db: db, interval: interval}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.db.Checkpoint(ctx); err != nil {
				logging.Warn().Err(err).Msg("Periodic database checkpoint failed")
				continue
			}
			logging.Debug().Msg("Database checkpoint completed")
		}
	}
}

// String identifies the service in supervisor logs.
func (s *CheckpointService) String() string {
	return "db-checkpoint"
}
