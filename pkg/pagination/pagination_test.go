// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinelogapp/cinelog/pkg/pagination"
)

/*
TestNew verifies the normalization of raw count/page values into a window.
*/
func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		page      int
		wantAll   bool
		wantCount int
		wantPage  int
	}{
		{"all_pages_sentinel", 10, -1, true, 0, 0},
		{"sentinel_ignores_count", 9999, -1, true, 0, 0},
		{"count_below_minimum", 1, 0, false, 2, 0},
		{"count_zero", 0, 3, false, 2, 3},
		{"count_above_maximum", 50, 0, false, 10, 0},
		{"count_in_range", 7, 2, false, 7, 2},
		{"page_below_sentinel_is_full_set", 5, -3, true, 0, 0},
		{"deeply_negative_page_is_full_set", 5, -100, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := pagination.New(tt.count, tt.page)

			assert.Equal(t, tt.wantAll, w.All)
			assert.Equal(t, tt.wantCount, w.Count)
			assert.Equal(t, tt.wantPage, w.Page)
		})
	}
}

/*
TestWindow_Offset verifies the SQL offset derivation.
*/
func TestWindow_Offset(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		page       int
		wantOffset int
		wantLimit  int
	}{
		{"first_page", 10, 0, 0, 10},
		{"second_page", 10, 1, 10, 10},
		{"small_window_third_page", 2, 2, 4, 2},
		{"all_pages", 10, -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := pagination.New(tt.count, tt.page)

			assert.Equal(t, tt.wantOffset, w.Offset())
			assert.Equal(t, tt.wantLimit, w.Limit())
		})
	}
}

/*
TestFromRequest verifies query string parsing and fallback behavior.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantAll   bool
		wantCount int
		wantPage  int
	}{
		{"both_present", "count=5&page=2", false, 5, 2},
		{"missing_params", "", false, 2, 0},
		{"non_numeric_count", "count=abc&page=1", false, 2, 1},
		{"sentinel_page", "count=10&page=-1", true, 0, 0},
		{"page_below_sentinel", "count=10&page=-7", true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/comments?"+tt.query, nil)
			w := pagination.FromRequest(req)

			assert.Equal(t, tt.wantAll, w.All)
			assert.Equal(t, tt.wantCount, w.Count)
			assert.Equal(t, tt.wantPage, w.Page)
		})
	}
}
