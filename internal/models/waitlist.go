// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package models

import "time"

// WaitlistEntry is a single signup on the early-access waitlist.
//
// Position is assigned exactly once at creation as the count of entries that
// were waiting at that moment plus one. Positions are never renumbered when
// entries leave the queue, so they are stable but may have gaps.
//
// OriginIP and ClientSignature are persisted for abuse investigation only and
// are excluded from every listing response.
type WaitlistEntry struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	Interests    []string        `json:"interests,omitempty"`
	Experience   ExperienceLevel `json:"experience,omitempty"`
	ReferralFrom string          `json:"referral_from,omitempty"`
	Position     int             `json:"position"`
	Status       WaitlistStatus  `json:"status"`

	OriginIP        string `json:"-"`
	ClientSignature string `json:"-"`

	CreatedAt    time.Time  `json:"created_at"`
	InvitedAt    *time.Time `json:"invited_at,omitempty"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
}

// WaitlistStats summarizes the current state of the queue.
//
// EstimatedWaitDays assumes a fixed processing rate of 100 invites per day.
// It is a hard-coded planning figure, not a calibrated estimate.
type WaitlistStats struct {
	TotalWaiting      int                    `json:"total_waiting"`
	EstimatedWaitDays int                    `json:"estimated_wait_days"`
	CountsByStatus    map[WaitlistStatus]int `json:"counts_by_status"`
}

// JoinWaitlistRequest is the payload for joining the waitlist.
type JoinWaitlistRequest struct {
	Email        string   `json:"email" validate:"required,email"`
	Name         string   `json:"name" validate:"required,min=1,max=120"`
	Interests    []string `json:"interests" validate:"omitempty,max=20,dive,min=1,max=60"`
	Experience   string   `json:"experience" validate:"omitempty,oneof=beginner intermediate advanced professional"`
	ReferralFrom string   `json:"referral_from" validate:"omitempty,max=120"`
}

// UpdateWaitlistEntryRequest is the admin payload for editing an entry.
// Position, lifecycle state, and status timestamps are managed by the queue
// manager and cannot be set here.
type UpdateWaitlistEntryRequest struct {
	Name         *string   `json:"name" validate:"omitempty,min=1,max=120"`
	Interests    *[]string `json:"interests" validate:"omitempty,max=20,dive,min=1,max=60"`
	Experience   *string   `json:"experience" validate:"omitempty,oneof=beginner intermediate advanced professional"`
	ReferralFrom *string   `json:"referral_from" validate:"omitempty,max=120"`
}

// WaitlistListOptions controls waitlist listing queries.
type WaitlistListOptions struct {
	Page      int            `validate:"min=1"`
	Limit     int            `validate:"min=1,max=100"`
	Status    WaitlistStatus `validate:"omitempty,oneof=waiting invited registered declined"`
	SortBy    string         `validate:"omitempty,oneof=position created_at email"`
	SortOrder string         `validate:"omitempty,oneof=asc desc"`
}
