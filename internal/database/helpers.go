// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// parseJSONFieldInto unmarshals a NullString JSON field into an existing
// destination. Returns nil error if the field is not valid or empty (no-op).
func parseJSONFieldInto(field sql.NullString, dest interface{}, fieldName string) error {
	if !field.Valid || field.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(field.String), dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return nil
}

// marshalJSONField marshals a value to JSON bytes with error wrapping.
func marshalJSONField(v interface{}, fieldName string) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", fieldName, err)
	}
	return data, nil
}

// nullableJSON converts JSON bytes to a driver value, using NULL for empty data.
func nullableJSON(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}

// filterBuilder accumulates WHERE clauses and their arguments for list queries.
type filterBuilder struct {
	clauses []string
	args    []interface{}
}

// newFilterBuilder creates a new filter builder.
func newFilterBuilder() *filterBuilder {
	return &filterBuilder{
		clauses: make([]string, 0),
		args:    make([]interface{}, 0),
	}
}

// addFilter adds an equality clause if the value is non-empty (for strings).
func (fb *filterBuilder) addFilter(column, value string) *filterBuilder {
	if value != "" {
		fb.clauses = append(fb.clauses, column+" = ?")
		fb.args = append(fb.args, value)
	}
	return fb
}

// addBoolFilter adds an equality clause if the bool pointer is non-nil.
func (fb *filterBuilder) addBoolFilter(column string, value *bool) *filterBuilder {
	if value != nil {
		fb.clauses = append(fb.clauses, column+" = ?")
		fb.args = append(fb.args, *value)
	}
	return fb
}

// addInFilter adds an IN clause for a non-empty set of values.
func (fb *filterBuilder) addInFilter(column string, values []string) *filterBuilder {
	if len(values) == 0 {
		return fb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		fb.args = append(fb.args, v)
	}
	fb.clauses = append(fb.clauses, column+" IN ("+strings.Join(placeholders, ", ")+")")
	return fb
}

// likeEscaper neutralizes LIKE metacharacters so a search term matches
// literally instead of acting as a pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// addSearchFilter adds a case-insensitive substring clause. The term is
// escaped so % and _ in user input match themselves.
func (fb *filterBuilder) addSearchFilter(column, term string) *filterBuilder {
	if term != "" {
		fb.clauses = append(fb.clauses, column+` ILIKE ? ESCAPE '\'`)
		fb.args = append(fb.args, "%"+likeEscaper.Replace(term)+"%")
	}
	return fb
}

// buildWhere returns the WHERE clause string and arguments.
func (fb *filterBuilder) buildWhere() (string, []interface{}) {
	where := " WHERE 1=1"
	for _, clause := range fb.clauses {
		where += " AND " + clause
	}
	return where, fb.args
}
