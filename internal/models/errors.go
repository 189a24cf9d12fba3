// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package models

import (
	"errors"
	"fmt"
)

// The error taxonomy surfaced to API callers. Each kind maps to exactly one
// response code; none are silently swallowed and none trigger automatic
// retries (counter updates are not safe to replay blindly).

// ValidationError indicates input rejected before any store access. Most
// payload validation is handled by the request validator; this type covers
// checks that need domain context, such as enum windows on query parameters.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError indicates an ID that references no live entity.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given resource and ID.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// DuplicateError indicates a unique-key conflict, such as an email already on
// the waitlist or a recipe name collision.
type DuplicateError struct {
	Resource string
	Field    string
	Value    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

// NewDuplicateError creates a DuplicateError for the given unique field.
func NewDuplicateError(resource, field, value string) *DuplicateError {
	return &DuplicateError{Resource: resource, Field: field, Value: value}
}

// InvalidStateError indicates an operation that is illegal in the entity's
// current lifecycle state, such as inviting an already-invited waitlist entry.
type InvalidStateError struct {
	Resource string
	ID       string
	Current  string
	Required string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %q is %s, operation requires %s", e.Resource, e.ID, e.Current, e.Required)
}

// NewInvalidStateError creates an InvalidStateError describing the required
// and actual states.
func NewInvalidStateError(resource, id, current, required string) *InvalidStateError {
	return &InvalidStateError{Resource: resource, ID: id, Current: current, Required: required}
}

// AuthorizationError indicates the caller lacks the role or ownership needed
// for a mutating operation.
type AuthorizationError struct {
	Action string
}

func (e *AuthorizationError) Error() string {
	if e.Action == "" {
		return "not authorized"
	}
	return fmt.Sprintf("not authorized to %s", e.Action)
}

// NewAuthorizationError creates an AuthorizationError for the given action.
func NewAuthorizationError(action string) *AuthorizationError {
	return &AuthorizationError{Action: action}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsDuplicate reports whether err is (or wraps) a DuplicateError.
func IsDuplicate(err error) bool {
	var target *DuplicateError
	return errors.As(err, &target)
}

// IsInvalidState reports whether err is (or wraps) an InvalidStateError.
func IsInvalidState(err error) bool {
	var target *InvalidStateError
	return errors.As(err, &target)
}

// IsAuthorization reports whether err is (or wraps) an AuthorizationError.
func IsAuthorization(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}
