// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package ocr

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/ctxutil"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

// Service gates OCR calls behind the shared monthly quota.
type Service struct {
	usage         UsageRepository
	vendor        VendorClient
	clock         timeutil.Clock
	monthMaxQuota int
}

// NewService constructs a new [Service].
//
// A monthMaxQuota of zero (or less) disables the proxy entirely: every call
// reports quota exhaustion without touching the vendor.
func NewService(usage UsageRepository, vendor VendorClient, clock timeutil.Clock, monthMaxQuota int) *Service {
	return &Service{
		usage:         usage,
		vendor:        vendor,
		clock:         clock,
		monthMaxQuota: monthMaxQuota,
	}
}

// ErrQuotaExhausted is returned when the month's OCR budget is spent.
var ErrQuotaExhausted = apperr.RateLimited(0)

/*
Recognize runs one quota-gated OCR call for the given user.

Description: The flow is check-call-settle:

 1. Compare the current month's consumption against the configured maximum.
 2. Call the vendor with the image.
 3. Increment the month bucket — the vendor billed us whether or not the
    inference succeeded — and append a history entry either way.

Quota exhaustion and vendor failure surface as distinct errors; a history
write failure is logged but never masks the OCR outcome.

Parameters:
  - context: context.Context
  - userID: string
  - image: []byte (Raw JPEG bytes)

Returns:
  - []Result: Extracted fields of the submitted image
  - error: ErrQuotaExhausted, vendor failures, storage errors
*/
func (service *Service) Recognize(context context.Context, userID string, image []byte) ([]Result, error) {
	now := service.clock.Now()
	yearMonth, err := strconv.Atoi(timeutil.Month(now))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// ── 1. Quota Gate ─────────────────────────────────────────────────────
	if service.monthMaxQuota <= 0 {
		return nil, ErrQuotaExhausted
	}

	consumed, err := service.usage.Consumed(context, yearMonth)
	if err != nil {
		return nil, err
	}
	if consumed >= service.monthMaxQuota {
		return nil, ErrQuotaExhausted
	}

	// ── 2. Vendor Call ────────────────────────────────────────────────────
	vendorUID, results, vendorErr := service.vendor.Recognize(context, image)

	// ── 3. Settlement ─────────────────────────────────────────────────────
	if err := service.usage.Increment(context, yearMonth); err != nil {
		ctxutil.GetLogger(context).Error("ocr_usage_increment_failed",
			slog.Int("year_month", yearMonth),
			slog.String("error", err.Error()),
		)
	}

	entry := &HistoryEntry{
		UserID:    userID,
		UsedAt:    now,
		Succeeded: vendorErr == nil,
		OCRUID:    vendorUID,
	}
	if err := service.usage.RecordHistory(context, entry); err != nil {
		ctxutil.GetLogger(context).Error("ocr_history_record_failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	if vendorErr != nil {
		return nil, apperr.ServiceUnavailable("OCR service failed")
	}

	return results, nil
}
