// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/saucier/internal/models"
)

// waitlistColumns is the shared SELECT column list for waitlist entries.
const waitlistColumns = `
	id, email, name, interests, experience, referral_from,
	queue_position, status, origin_ip, client_signature,
	created_at, invited_at, registered_at`

// CreateWaitlistEntry inserts a signup and assigns its queue position.
//
// The position is the count of entries currently waiting plus one, computed
// inside the INSERT. Each connection runs the INSERT against its own
// snapshot, so inserts are serialized under writeMu to keep positions unique.
// Positions are never reused or renumbered afterwards.
func (db *DB) CreateWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.Status = models.WaitlistWaiting
	entry.CreatedAt = time.Now().UTC()

	interestsJSON, err := marshalJSONField(entry.Interests, "interests")
	if err != nil {
		return err
	}

	query := `
		INSERT INTO waitlist (
			id, email, name, interests, experience, referral_from,
			queue_position, status, origin_ip, client_signature, created_at
		)
		SELECT ?, ?, ?, ?, ?, ?,
			(SELECT COUNT(*) FROM waitlist WHERE status = 'waiting') + 1,
			'waiting', ?, ?, ?
		RETURNING queue_position
	`

	row := db.conn.QueryRowContext(ctx, query,
		entry.ID,
		entry.Email,
		entry.Name,
		nullableJSON(interestsJSON),
		string(entry.Experience),
		entry.ReferralFrom,
		entry.OriginIP,
		entry.ClientSignature,
		entry.CreatedAt,
	)

	if err := row.Scan(&entry.Position); err != nil {
		if isUniqueViolation(err) {
			return models.NewDuplicateError("waitlist entry", "email", entry.Email)
		}
		return fmt.Errorf("failed to insert waitlist entry: %w", err)
	}

	return nil
}

// GetWaitlistEntry retrieves a waitlist entry by ID.
func (db *DB) GetWaitlistEntry(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := "SELECT" + waitlistColumns + " FROM waitlist WHERE id = ?"
	entry, err := scanWaitlistEntry(db.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, models.NewNotFoundError("waitlist entry", id)
	}
	return entry, nil
}

// GetWaitlistEntryByEmail retrieves a waitlist entry by email.
// Returns (nil, nil) when no entry exists.
func (db *DB) GetWaitlistEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := "SELECT" + waitlistColumns + " FROM waitlist WHERE email = ?"
	return scanWaitlistEntry(db.conn.QueryRowContext(ctx, query, email))
}

// NextWaitlistEntry returns the longest-waiting entry still in the waiting
// state, or (nil, nil) when the queue is empty.
func (db *DB) NextWaitlistEntry(ctx context.Context) (*models.WaitlistEntry, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := "SELECT" + waitlistColumns + ` FROM waitlist
		WHERE status = 'waiting'
		ORDER BY queue_position ASC
		LIMIT 1`
	return scanWaitlistEntry(db.conn.QueryRowContext(ctx, query))
}

// ListWaitlistEntries retrieves entries with optional status filtering,
// sorting, and pagination. Returns entries plus the total matching count.
func (db *DB) ListWaitlistEntries(ctx context.Context, opts models.WaitlistListOptions) ([]models.WaitlistEntry, int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	fb := newFilterBuilder()
	fb.addFilter("status", string(opts.Status))
	whereClause, filterArgs := fb.buildWhere()

	countQuery := "SELECT COUNT(*) FROM waitlist" + whereClause
	var totalCount int
	if err := db.conn.QueryRowContext(ctx, countQuery, filterArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count waitlist entries: %w", err)
	}

	orderClause := waitlistOrderClause(opts.SortBy, opts.SortOrder)
	query := "SELECT" + waitlistColumns + " FROM waitlist" + whereClause + orderClause + " LIMIT ? OFFSET ?"

	offset := (opts.Page - 1) * opts.Limit
	args := append(filterArgs, opts.Limit, offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query waitlist entries: %w", err)
	}
	defer rows.Close()

	var entries []models.WaitlistEntry
	for rows.Next() {
		entry, err := scanWaitlistEntryFromRows(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate waitlist entries: %w", err)
	}

	return entries, totalCount, nil
}

// UpdateWaitlistEntry applies admin-editable fields to an entry.
// Position, status, and lifecycle timestamps are never touched here.
func (db *DB) UpdateWaitlistEntry(ctx context.Context, id string, req *models.UpdateWaitlistEntryRequest) (*models.WaitlistEntry, error) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	entry, err := db.GetWaitlistEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		entry.Name = *req.Name
	}
	if req.Interests != nil {
		entry.Interests = *req.Interests
	}
	if req.Experience != nil {
		entry.Experience = models.ExperienceLevel(*req.Experience)
	}
	if req.ReferralFrom != nil {
		entry.ReferralFrom = *req.ReferralFrom
	}

	interestsJSON, err := marshalJSONField(entry.Interests, "interests")
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE waitlist
		SET name = ?, interests = ?, experience = ?, referral_from = ?
		WHERE id = ?
	`
	if _, err := db.conn.ExecContext(ctx, query,
		entry.Name,
		nullableJSON(interestsJSON),
		string(entry.Experience),
		entry.ReferralFrom,
		id,
	); err != nil {
		return nil, fmt.Errorf("failed to update waitlist entry: %w", err)
	}

	return entry, nil
}

// TransitionWaitlistStatus moves an entry to a new status, optionally
// requiring a current status.
//
// When requiredStatus is non-empty and the entry is in any other state the
// update matches zero rows and an InvalidStateError is returned; the check
// and the write are a single statement, so a concurrent transition cannot
// slip between them.
func (db *DB) TransitionWaitlistStatus(ctx context.Context, id string, to models.WaitlistStatus, requiredStatus models.WaitlistStatus) (*models.WaitlistEntry, error) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	now := time.Now().UTC()

	var timestampColumn string
	switch to {
	case models.WaitlistInvited:
		timestampColumn = "invited_at"
	case models.WaitlistRegistered:
		timestampColumn = "registered_at"
	}

	query := "UPDATE waitlist SET status = ?"
	args := []interface{}{string(to)}
	if timestampColumn != "" {
		query += ", " + timestampColumn + " = ?"
		args = append(args, now)
	}
	query += " WHERE id = ?"
	args = append(args, id)
	if requiredStatus != "" {
		query += " AND status = ?"
		args = append(args, string(requiredStatus))
	}

	result, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to transition waitlist entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		// Distinguish a missing entry from a wrong-state entry
		entry, getErr := db.GetWaitlistEntry(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, models.NewInvalidStateError("waitlist entry", id, string(entry.Status), string(requiredStatus))
	}

	return db.GetWaitlistEntry(ctx, id)
}

// DeleteWaitlistEntry removes an entry. Positions of other entries are left
// untouched, so the queue keeps gaps where entries were removed.
func (db *DB) DeleteWaitlistEntry(ctx context.Context, id string) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	result, err := db.conn.ExecContext(ctx, "DELETE FROM waitlist WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete waitlist entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return models.NewNotFoundError("waitlist entry", id)
	}

	return nil
}

// CountWaitlistByStatus returns per-status entry counts.
func (db *DB) CountWaitlistByStatus(ctx context.Context) (map[models.WaitlistStatus]int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, "SELECT status, COUNT(*) FROM waitlist GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count waitlist by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.WaitlistStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[models.WaitlistStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status counts: %w", err)
	}

	return counts, nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanWaitlistEntry scans a single entry from a row.
// Returns (nil, nil) on sql.ErrNoRows.
func scanWaitlistEntry(row *sql.Row) (*models.WaitlistEntry, error) {
	entry, err := scanWaitlistFields(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return entry, err
}

// scanWaitlistEntryFromRows scans an entry during rows iteration.
func scanWaitlistEntryFromRows(rows *sql.Rows) (*models.WaitlistEntry, error) {
	return scanWaitlistFields(rows)
}

func scanWaitlistFields(scanner rowScanner) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	var interestsJSON, experience, referralFrom, originIP, clientSignature sql.NullString
	var invitedAt, registeredAt sql.NullTime

	err := scanner.Scan(
		&entry.ID,
		&entry.Email,
		&entry.Name,
		&interestsJSON,
		&experience,
		&referralFrom,
		&entry.Position,
		&entry.Status,
		&originIP,
		&clientSignature,
		&entry.CreatedAt,
		&invitedAt,
		&registeredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan waitlist entry: %w", err)
	}

	entry.Experience = models.ExperienceLevel(experience.String)
	entry.ReferralFrom = referralFrom.String
	entry.OriginIP = originIP.String
	entry.ClientSignature = clientSignature.String

	if err := parseJSONFieldInto(interestsJSON, &entry.Interests, "interests"); err != nil {
		return nil, err
	}

	if invitedAt.Valid {
		t := invitedAt.Time
		entry.InvitedAt = &t
	}
	if registeredAt.Valid {
		t := registeredAt.Time
		entry.RegisteredAt = &t
	}

	return &entry, nil
}

// waitlistOrderClause maps sort options to a safe ORDER BY clause.
// Column names are chosen from a closed set; user input never reaches SQL.
func waitlistOrderClause(sortBy, sortOrder string) string {
	column := "queue_position"
	switch sortBy {
	case "created_at":
		column = "created_at"
	case "email":
		column = "email"
	}

	direction := "ASC"
	if sortOrder == "desc" {
		direction = "DESC"
	}

	return " ORDER BY " + column + " " + direction
}
