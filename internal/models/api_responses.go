// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package models

import "time"

// APIResponse is the uniform envelope for every API endpoint.
//
// Success:
//
//	{
//	  "status": "success",
//	  "data": {...},
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z", "query_time_ms": 4}
//	}
//
// Error:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "email must be a valid email address",
//	    "details": {"field": "email"}
//	  },
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError carries a machine-readable code, a human-readable message, and
// optional structured details. Internal faults are reported with an opaque
// message; stack traces never reach the caller.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Machine-readable error codes used across the API.
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeDuplicate      = "DUPLICATE"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeAuthentication = "AUTHENTICATION_ERROR"
	ErrCodeAuthorization  = "AUTHORIZATION_ERROR"
	ErrCodeInvalidState   = "INVALID_STATE"
	ErrCodeInvalidJSON    = "INVALID_JSON"
	ErrCodeDatabase       = "DATABASE_ERROR"
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeRateLimited    = "RATE_LIMIT_EXCEEDED"
)

// PaginatedResult is the shape of every paginated listing response.
type PaginatedResult struct {
	Items        interface{} `json:"items"`
	CurrentPage  int         `json:"currentPage"`
	TotalPages   int         `json:"totalPages"`
	TotalItems   int         `json:"totalItems"`
	ItemsPerPage int         `json:"itemsPerPage"`
	HasNextPage  bool        `json:"hasNextPage"`
	HasPrevPage  bool        `json:"hasPrevPage"`
}

// NewPaginatedResult assembles pagination metadata for a page of items.
// totalItems is the full filtered count, not the page size.
func NewPaginatedResult(items interface{}, page, limit, totalItems int) PaginatedResult {
	totalPages := 0
	if totalItems > 0 && limit > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return PaginatedResult{
		Items:        items,
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: limit,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1 && totalItems > 0,
	}
}
