// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

// Package timeutil centralizes how the API represents instants.
//
// All timestamps are stored in UTC and rendered to clients in a fixed
// "YYYY-MM-DD hh:mm:ss" layout, which the mobile apps parse directly.
package timeutil

import "time"

// WireLayout is the timestamp layout used in every API response.
const WireLayout = "2006-01-02 15:04:05"

// MonthLayout is the YYYYMM layout used for monthly quota bucketing.
const MonthLayout = "200601"

// DateLayout is the calendar-day layout used for attendance tracking.
const DateLayout = "2006-01-02"

// Clock supplies the current time. Services depend on this interface so
// tests can freeze or advance time deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production [Clock] backed by the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock is a test [Clock] that always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

// Now returns the configured instant.
func (c FixedClock) Now() time.Time {
	return c.Instant
}

// Format renders an instant in the wire layout, normalized to UTC.
func Format(t time.Time) string {
	return t.UTC().Format(WireLayout)
}

// Month renders the YYYYMM bucket for an instant, normalized to UTC.
func Month(t time.Time) string {
	return t.UTC().Format(MonthLayout)
}

// Date renders the calendar day for an instant, normalized to UTC.
func Date(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
