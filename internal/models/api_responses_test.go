// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package models

import "testing"

func TestNewPaginatedResult(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		limit       int
		total       int
		wantPages   int
		wantHasNext bool
		wantHasPrev bool
	}{
		{
			name:  "middle page of 25 items",
			page:  2, limit: 10, total: 25,
			wantPages: 3, wantHasNext: true, wantHasPrev: true,
		},
		{
			name:  "first page",
			page:  1, limit: 10, total: 25,
			wantPages: 3, wantHasNext: true, wantHasPrev: false,
		},
		{
			name:  "last page",
			page:  3, limit: 10, total: 25,
			wantPages: 3, wantHasNext: false, wantHasPrev: true,
		},
		{
			name:  "empty result set",
			page:  1, limit: 10, total: 0,
			wantPages: 0, wantHasNext: false, wantHasPrev: false,
		},
		{
			name:  "exact multiple",
			page:  2, limit: 10, total: 20,
			wantPages: 2, wantHasNext: false, wantHasPrev: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewPaginatedResult(nil, tt.page, tt.limit, tt.total)
			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantPages)
			}
			if result.HasNextPage != tt.wantHasNext {
				t.Errorf("HasNextPage = %v, want %v", result.HasNextPage, tt.wantHasNext)
			}
			if result.HasPrevPage != tt.wantHasPrev {
				t.Errorf("HasPrevPage = %v, want %v", result.HasPrevPage, tt.wantHasPrev)
			}
			if result.CurrentPage != tt.page || result.ItemsPerPage != tt.limit || result.TotalItems != tt.total {
				t.Errorf("echoed fields mismatch: %+v", result)
			}
		})
	}
}
