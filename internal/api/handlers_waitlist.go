// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package api

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tomtom215/saucier/internal/models"
)

// JoinWaitlist adds a signup to the early-access queue.
//
//	POST /api/v1/waitlist
func (h *Handler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.JoinWaitlistRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	entry, err := h.waitlist.Join(r.Context(), &req, clientIP(r), r.UserAgent())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, entry, started)
}

// WaitlistStats returns the queue summary.
//
//	GET /api/v1/waitlist/stats
func (h *Handler) WaitlistStats(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	stats, err := h.waitlist.Stats(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, stats, started)
}

// WaitlistNext returns the next waiting entries by position (admin).
//
//	GET /api/v1/waitlist/next?limit=N
func (h *Handler) WaitlistNext(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	limit := getIntParam(r, "limit", 1)
	if limit > h.cfg.API.MaxPageSize {
		limit = h.cfg.API.MaxPageSize
	}

	entries, err := h.waitlist.NextInLine(r.Context(), limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, entries, started)
}

// ListWaitlist returns a page of entries (admin).
//
//	GET /api/v1/waitlist?page=&limit=&status=&sort_by=&sort_order=
func (h *Handler) ListWaitlist(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	page, limit := h.parsePagination(r)
	opts := models.WaitlistListOptions{
		Page:      page,
		Limit:     limit,
		Status:    models.WaitlistStatus(r.URL.Query().Get("status")),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}
	if apiErr := validateRequest(&opts); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	entries, total, err := h.waitlist.List(r.Context(), opts)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.NewPaginatedResult(entries, page, limit, total), started)
}

// GetWaitlistEntry returns a single entry (admin).
//
//	GET /api/v1/waitlist/{id}
func (h *Handler) GetWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	entry, err := h.waitlist.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, entry, started)
}

// UpdateWaitlistEntry edits an entry's descriptive fields (admin). Position
// and status are immutable here.
//
//	PUT /api/v1/waitlist/{id}
func (h *Handler) UpdateWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.UpdateWaitlistEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	entry, err := h.waitlist.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, entry, started)
}

// DeleteWaitlistEntry removes an entry (admin). Remaining positions are not
// renumbered.
//
//	DELETE /api/v1/waitlist/{id}
func (h *Handler) DeleteWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	if err := h.waitlist.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"message": "entry deleted"}, started)
}

// InviteWaitlistEntry transitions a waiting entry to invited (admin).
//
//	POST /api/v1/waitlist/{id}/invite
func (h *Handler) InviteWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	entry, err := h.waitlist.Invite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, entry, started)
}

// RegisterWaitlistEntry marks an entry registered from any state (admin).
//
//	POST /api/v1/waitlist/{id}/register
func (h *Handler) RegisterWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	entry, err := h.waitlist.MarkRegistered(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, entry, started)
}

// DeclineWaitlistEntry transitions a waiting entry to declined (admin).
//
//	POST /api/v1/waitlist/{id}/decline
func (h *Handler) DeclineWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	entry, err := h.waitlist.Decline(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, entry, started)
}

// clientIP extracts the remote IP without the port. RealIP middleware has
// already resolved X-Forwarded-For when the server sits behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
