// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/saucier/internal/logging"
	"github.com/tomtom215/saucier/internal/models"
	"github.com/tomtom215/saucier/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log
// injection through attacker-controlled values.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers. The request ID
// middleware stamps X-Request-ID on the response before handlers run, so it
// is echoed into the envelope metadata for clients that only log bodies.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	response.Metadata.RequestID = w.Header().Get("X-Request-ID")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in the success envelope.
func respondSuccess(w http.ResponseWriter, status int, data interface{}, started time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(started).Milliseconds(),
		},
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses and
// machine-readable codes. Unclassified errors become an opaque 500; internal
// detail never reaches the caller.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case models.IsValidation(err):
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
	case models.IsNotFound(err):
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, err.Error(), nil)
	case models.IsDuplicate(err):
		respondError(w, http.StatusConflict, models.ErrCodeDuplicate, err.Error(), nil)
	case models.IsInvalidState(err):
		respondError(w, http.StatusConflict, models.ErrCodeInvalidState, err.Error(), nil)
	case models.IsAuthorization(err):
		respondError(w, http.StatusForbidden, models.ErrCodeAuthorization, err.Error(), nil)
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "an internal error occurred", err)
	}
}

// decodeJSON parses a request body into dst. Unknown fields are rejected so
// typos surface as errors instead of silently dropped settings.
func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// validateRequest validates a struct and converts the result to the API
// error shape. Returns nil when validation passes.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// respondValidationError sends a 400 carrying field-level details.
func respondValidationError(w http.ResponseWriter, apiErr *models.APIError) {
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: apiErr,
	})
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getBoolParam extracts an optional boolean query parameter. Absent or
// unparseable values return nil.
func getBoolParam(r *http.Request, key string) *bool {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}

// parsePagination extracts page and limit query parameters, applying the
// configured defaults and hard cap. Out-of-range values clamp rather than
// error so deep links stay usable.
func (h *Handler) parsePagination(r *http.Request) (page, limit int) {
	page = getIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}

	limit = getIntParam(r, "limit", h.cfg.API.DefaultPageSize)
	if limit < 1 {
		limit = h.cfg.API.DefaultPageSize
	}
	if limit > h.cfg.API.MaxPageSize {
		limit = h.cfg.API.MaxPageSize
	}
	return page, limit
}
