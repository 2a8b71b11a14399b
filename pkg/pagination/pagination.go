// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// List endpoints accept a window described by "count" (items per page) and
// "page" (0-indexed page number). The special page value -1 disables
// windowing entirely and returns the full result set, which mobile clients
// use for short lists such as a user's own comments.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// MinCount is the lower bound for items per page.
	MinCount = 2
	// MaxCount is the upper bound for items per page to prevent system abuse.
	MaxCount = 10
	// AllPages is the sentinel page value that disables windowing.
	AllPages = -1
)

// Window holds the normalized paging parameters for a list query.
type Window struct {
	// Count is the number of items per page. Meaningless when All is true.
	Count int
	// Page is the 0-indexed page number. Meaningless when All is true.
	Page int
	// All indicates that the full result set is requested.
	All bool
}

// New normalizes raw count/page values into a [Window].
//
// # Normalization
//
//   - any negative page requests the complete result set; count is ignored.
//   - count is clamped into [MinCount, MaxCount].
func New(count, page int) Window {
	// Any negative page collapses to the full-set sentinel.
	if page < 0 {
		return Window{All: true}
	}

	if count < MinCount {
		count = MinCount
	}
	if count > MaxCount {
		count = MaxCount
	}

	return Window{Count: count, Page: page}
}

// Offset returns the SQL OFFSET value derived from [Window.Count] and [Window.Page].
func (w Window) Offset() int {
	if w.All {
		return 0
	}
	return w.Count * w.Page
}

// Limit returns the SQL LIMIT value, or 0 when the full set is requested.
func (w Window) Limit() int {
	if w.All {
		return 0
	}
	return w.Count
}

// FromRequest parses "count" and "page" query parameters from an HTTP request
// and normalizes them via [New].
func FromRequest(r *http.Request) Window {
	count := parseIntParam(r, "count", MinCount)
	page := parseIntParam(r, "page", 0)
	return New(count, page)
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
