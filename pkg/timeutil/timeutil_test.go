// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

/*
TestFormat verifies wire rendering normalizes to UTC.
*/
func TestFormat(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	instant := time.Date(2026, 3, 1, 8, 30, 15, 0, seoul)

	assert.Equal(t, "2026-02-28 23:30:15", timeutil.Format(instant))
	assert.Equal(t, "202602", timeutil.Month(instant))
	assert.Equal(t, "2026-02-28", timeutil.Date(instant))
}

/*
TestFixedClock verifies the test clock reports a constant instant.
*/
func TestFixedClock(t *testing.T) {
	instant := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	clock := timeutil.FixedClock{Instant: instant}

	assert.Equal(t, instant, clock.Now())
	assert.Equal(t, instant, clock.Now())
}
