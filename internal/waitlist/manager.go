// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

// Package waitlist implements the early-access queue on top of the database
// layer: signups, position assignment, lifecycle transitions, and queue
// statistics.
package waitlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/saucier/internal/config"
	"github.com/tomtom215/saucier/internal/database"
	"github.com/tomtom215/saucier/internal/logging"
	"github.com/tomtom215/saucier/internal/metrics"
	"github.com/tomtom215/saucier/internal/models"
)

// Manager coordinates waitlist operations. All queue invariants that need
// atomicity (position assignment, guarded status transitions) live in the
// database layer; the manager adds policy, statistics, and instrumentation.
type Manager struct {
	db  *database.DB
	cfg *config.WaitlistConfig
}

// NewManager creates a waitlist manager.
func NewManager(db *database.DB, cfg *config.WaitlistConfig) *Manager {
	return &Manager{db: db, cfg: cfg}
}

// Join adds a new signup to the queue. The assigned position is the number of
// entries waiting at the moment of insertion plus one. Emails are matched
// case-insensitively: a duplicate is rejected with a DuplicateError and never
// changes the existing entry.
func (m *Manager) Join(ctx context.Context, req *models.JoinWaitlistRequest, originIP, clientSignature string) (*models.WaitlistEntry, error) {
	entry := &models.WaitlistEntry{
		Email:           NormalizeEmail(req.Email),
		Name:            req.Name,
		Interests:       req.Interests,
		Experience:      models.ExperienceLevel(req.Experience),
		ReferralFrom:    req.ReferralFrom,
		OriginIP:        originIP,
		ClientSignature: clientSignature,
	}
	if entry.Experience == "" {
		entry.Experience = models.ExperienceBeginner
	}

	if err := m.db.CreateWaitlistEntry(ctx, entry); err != nil {
		if models.IsDuplicate(err) {
			metrics.RecordWaitlistJoin(true)
		}
		return nil, err
	}

	metrics.RecordWaitlistJoin(false)
	m.refreshQueueDepth(ctx)
	logging.Info().
		Str("entry_id", entry.ID).
		Int("position", entry.Position).
		Msg("Waitlist signup accepted")
	return entry, nil
}

// Get returns a single entry by ID.
func (m *Manager) Get(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	return m.db.GetWaitlistEntry(ctx, id)
}

// GetByEmail returns the entry for an email, or (nil, nil) when none exists.
func (m *Manager) GetByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	return m.db.GetWaitlistEntryByEmail(ctx, NormalizeEmail(email))
}

// NormalizeEmail lowercases and trims an email so signups are matched
// case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// List returns a page of entries plus the total count for the filter.
func (m *Manager) List(ctx context.Context, opts models.WaitlistListOptions) ([]models.WaitlistEntry, int, error) {
	return m.db.ListWaitlistEntries(ctx, opts)
}

// NextInLine returns up to limit waiting entries by ascending position. A
// non-positive limit returns a single entry.
func (m *Manager) NextInLine(ctx context.Context, limit int) ([]models.WaitlistEntry, error) {
	if limit <= 0 {
		limit = 1
	}
	entries, _, err := m.db.ListWaitlistEntries(ctx, models.WaitlistListOptions{
		Page:   1,
		Limit:  limit,
		Status: models.WaitlistWaiting,
		SortBy: "position",
	})
	return entries, err
}

// Invite moves a waiting entry to invited and stamps invited_at. Entries in
// any other state are rejected with an InvalidStateError.
func (m *Manager) Invite(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	entry, err := m.db.TransitionWaitlistStatus(ctx, id, models.WaitlistInvited, models.WaitlistWaiting)
	if err != nil {
		return nil, err
	}
	metrics.RecordWaitlistTransition(string(models.WaitlistInvited))
	m.refreshQueueDepth(ctx)
	logging.Info().Str("entry_id", id).Msg("Waitlist entry invited")
	return entry, nil
}

// MarkRegistered moves an entry to registered and stamps registered_at. Any
// prior state is accepted so that signups completed through other channels
// still close out their queue entry.
func (m *Manager) MarkRegistered(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	entry, err := m.db.TransitionWaitlistStatus(ctx, id, models.WaitlistRegistered, "")
	if err != nil {
		return nil, err
	}
	metrics.RecordWaitlistTransition(string(models.WaitlistRegistered))
	m.refreshQueueDepth(ctx)
	logging.Info().Str("entry_id", id).Msg("Waitlist entry registered")
	return entry, nil
}

// Decline moves a waiting entry to declined. Entries in any other state are
// rejected with an InvalidStateError.
func (m *Manager) Decline(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	entry, err := m.db.TransitionWaitlistStatus(ctx, id, models.WaitlistDeclined, models.WaitlistWaiting)
	if err != nil {
		return nil, err
	}
	metrics.RecordWaitlistTransition(string(models.WaitlistDeclined))
	m.refreshQueueDepth(ctx)
	logging.Info().Str("entry_id", id).Msg("Waitlist entry declined")
	return entry, nil
}

// Update edits the admin-editable fields of an entry. Position, status, and
// lifecycle timestamps are never touched here.
func (m *Manager) Update(ctx context.Context, id string, req *models.UpdateWaitlistEntryRequest) (*models.WaitlistEntry, error) {
	return m.db.UpdateWaitlistEntry(ctx, id, req)
}

// Delete removes an entry. Positions of other entries are not renumbered.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.db.DeleteWaitlistEntry(ctx, id); err != nil {
		return err
	}
	m.refreshQueueDepth(ctx)
	return nil
}

// Stats returns the current queue summary. The wait estimate divides the
// waiting count by the configured daily invite rate, rounded up, so a
// non-empty queue never reports zero days.
func (m *Manager) Stats(ctx context.Context) (*models.WaitlistStats, error) {
	counts, err := m.db.CountWaitlistByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count waitlist entries: %w", err)
	}

	waiting := counts[models.WaitlistWaiting]
	metrics.WaitlistQueueDepth.Set(float64(waiting))

	return &models.WaitlistStats{
		TotalWaiting:      waiting,
		EstimatedWaitDays: m.estimateWaitDays(waiting),
		CountsByStatus:    counts,
	}, nil
}

func (m *Manager) estimateWaitDays(waiting int) int {
	rate := m.cfg.InvitesPerDay
	if rate <= 0 {
		rate = 100
	}
	if waiting <= 0 {
		return 0
	}
	return (waiting + rate - 1) / rate
}

// refreshQueueDepth updates the queue depth gauge on a best-effort basis.
func (m *Manager) refreshQueueDepth(ctx context.Context) {
	counts, err := m.db.CountWaitlistByStatus(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to refresh waitlist queue depth gauge")
		return
	}
	metrics.WaitlistQueueDepth.Set(float64(counts[models.WaitlistWaiting]))
}
