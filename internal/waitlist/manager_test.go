// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package waitlist

import (
	"context"
	"fmt"
	"testing"

	"github.com/tomtom215/saucier/internal/config"
	"github.com/tomtom215/saucier/internal/database"
	"github.com/tomtom215/saucier/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   1,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	return NewManager(db, &config.WaitlistConfig{InvitesPerDay: 100})
}

func join(t *testing.T, m *Manager, email string) *models.WaitlistEntry {
	t.Helper()
	entry, err := m.Join(context.Background(), &models.JoinWaitlistRequest{
		Email: email,
		Name:  "Test Cook",
	}, "203.0.113.7", "sig-abc")
	if err != nil {
		t.Fatalf("Join(%s) error = %v", email, err)
	}
	return entry
}

func TestJoinAssignsPositionAndDefaults(t *testing.T) {
	m := newTestManager(t)

	entry := join(t, m, "cook@example.com")
	if entry.Position != 1 {
		t.Errorf("position = %d, want 1", entry.Position)
	}
	if entry.Status != models.WaitlistWaiting {
		t.Errorf("status = %s, want waiting", entry.Status)
	}
	// Unspecified experience defaults to beginner
	if entry.Experience != models.ExperienceBeginner {
		t.Errorf("experience = %s, want beginner", entry.Experience)
	}

	// Abuse fields are persisted
	got, err := m.Get(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.OriginIP != "203.0.113.7" || got.ClientSignature != "sig-abc" {
		t.Errorf("abuse fields = %q/%q, not persisted", got.OriginIP, got.ClientSignature)
	}
}

func TestJoinDuplicateEmail(t *testing.T) {
	m := newTestManager(t)

	join(t, m, "cook@example.com")

	_, err := m.Join(context.Background(), &models.JoinWaitlistRequest{
		Email: "cook@example.com",
		Name:  "Someone Else",
	}, "", "")
	if !models.IsDuplicate(err) {
		t.Errorf("expected DuplicateError, got %v", err)
	}
}

func TestInviteLifecycle(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	entry := join(t, m, "cook@example.com")

	invited, err := m.Invite(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}
	if invited.Status != models.WaitlistInvited || invited.InvitedAt == nil {
		t.Errorf("invited = %+v, want invited status with timestamp", invited)
	}

	// Only waiting entries can be invited
	if _, err := m.Invite(ctx, entry.ID); !models.IsInvalidState(err) {
		t.Errorf("expected InvalidStateError on double invite, got %v", err)
	}

	// Registered accepts the invited state
	registered, err := m.MarkRegistered(ctx, entry.ID)
	if err != nil {
		t.Fatalf("MarkRegistered() error = %v", err)
	}
	if registered.Status != models.WaitlistRegistered || registered.RegisteredAt == nil {
		t.Errorf("registered = %+v, want registered status with timestamp", registered)
	}
}

func TestMarkRegisteredFromWaiting(t *testing.T) {
	m := newTestManager(t)

	entry := join(t, m, "cook@example.com")

	// Skipping the invite step is allowed
	registered, err := m.MarkRegistered(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("MarkRegistered() error = %v", err)
	}
	if registered.Status != models.WaitlistRegistered {
		t.Errorf("status = %s, want registered", registered.Status)
	}
}

func TestDecline(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	entry := join(t, m, "cook@example.com")

	declined, err := m.Decline(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Decline() error = %v", err)
	}
	if declined.Status != models.WaitlistDeclined {
		t.Errorf("status = %s, want declined", declined.Status)
	}

	// Declined entries cannot be invited
	if _, err := m.Invite(ctx, entry.ID); !models.IsInvalidState(err) {
		t.Errorf("expected InvalidStateError, got %v", err)
	}
}

func TestNextInLine(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	next, err := m.NextInLine(ctx, 1)
	if err != nil {
		t.Fatalf("NextInLine() error = %v", err)
	}
	if len(next) != 0 {
		t.Errorf("empty queue should return no entries, got %v", next)
	}

	first := join(t, m, "first@example.com")
	second := join(t, m, "second@example.com")
	join(t, m, "third@example.com")

	// Non-positive limit returns a single entry
	next, err = m.NextInLine(ctx, 0)
	if err != nil {
		t.Fatalf("NextInLine() error = %v", err)
	}
	if len(next) != 1 || next[0].ID != first.ID {
		t.Errorf("next = %v, want first entry only", next)
	}

	next, err = m.NextInLine(ctx, 2)
	if err != nil {
		t.Fatalf("NextInLine() error = %v", err)
	}
	if len(next) != 2 || next[0].ID != first.ID || next[1].ID != second.ID {
		t.Errorf("next two = %v, want first and second in position order", next)
	}

	// Invited entries leave the line
	if _, err := m.Invite(ctx, first.ID); err != nil {
		t.Fatalf("Invite() error = %v", err)
	}
	next, err = m.NextInLine(ctx, 1)
	if err != nil {
		t.Fatalf("NextInLine() error = %v", err)
	}
	if len(next) != 1 || next[0].ID != second.ID {
		t.Errorf("next after invite = %v, want second entry", next)
	}
}

func TestJoinNormalizesEmail(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	entry, err := m.Join(ctx, &models.JoinWaitlistRequest{
		Email: "  Cook@Example.COM ",
		Name:  "Test Cook",
	}, "", "")
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if entry.Email != "cook@example.com" {
		t.Errorf("email = %q, want normalized lowercase", entry.Email)
	}

	// Same address in a different case is a duplicate
	_, err = m.Join(ctx, &models.JoinWaitlistRequest{
		Email: "COOK@example.com",
		Name:  "Test Cook",
	}, "", "")
	if !models.IsDuplicate(err) {
		t.Errorf("expected DuplicateError for case-variant email, got %v", err)
	}

	got, err := m.GetByEmail(ctx, "Cook@EXAMPLE.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got == nil || got.ID != entry.ID {
		t.Errorf("GetByEmail = %v, want original entry", got)
	}
}

func TestStats(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	stats, err := m.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalWaiting != 0 || stats.EstimatedWaitDays != 0 {
		t.Errorf("empty stats = %+v, want zeros", stats)
	}

	first := join(t, m, "first@example.com")
	for i := 2; i <= 5; i++ {
		join(t, m, fmt.Sprintf("cook%d@example.com", i))
	}
	if _, err := m.Invite(ctx, first.ID); err != nil {
		t.Fatalf("Invite() error = %v", err)
	}

	stats, err = m.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalWaiting != 4 {
		t.Errorf("total waiting = %d, want 4", stats.TotalWaiting)
	}
	// 4 waiting at 100 invites/day rounds up to a single day
	if stats.EstimatedWaitDays != 1 {
		t.Errorf("estimated wait = %d days, want 1", stats.EstimatedWaitDays)
	}
	if stats.CountsByStatus[models.WaitlistInvited] != 1 {
		t.Errorf("invited count = %d, want 1", stats.CountsByStatus[models.WaitlistInvited])
	}
}

func TestEstimateWaitDays(t *testing.T) {
	m := &Manager{cfg: &config.WaitlistConfig{InvitesPerDay: 100}}

	tests := []struct {
		waiting int
		want    int
	}{
		{0, 0},
		{1, 1},
		{100, 1},
		{101, 2},
		{250, 3},
	}

	for _, tt := range tests {
		if got := m.estimateWaitDays(tt.waiting); got != tt.want {
			t.Errorf("estimateWaitDays(%d) = %d, want %d", tt.waiting, got, tt.want)
		}
	}
}

func TestUpdateAndDelete(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	entry := join(t, m, "cook@example.com")

	newName := "Renamed Cook"
	updated, err := m.Update(ctx, entry.ID, &models.UpdateWaitlistEntryRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != newName || updated.Position != entry.Position {
		t.Errorf("updated = %+v, want new name with stable position", updated)
	}

	if err := m.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(ctx, entry.ID); !models.IsNotFound(err) {
		t.Errorf("expected NotFoundError after delete, got %v", err)
	}
}
