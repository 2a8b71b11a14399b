// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package ocr proxies ticket images to the vendor OCR service.

The vendor bills per call, so usage is gated by a shared monthly quota
bucketed by calendar month (YYYYMM). Every attempt, successful or not, is
recorded in a history trail for billing reconciliation.
*/
package ocr

import (
	"context"
	"time"
)

// Result is the text extracted from one image field.
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// HistoryEntry records one OCR attempt.
type HistoryEntry struct {
	UserID    string
	UsedAt    time.Time
	Succeeded bool
	// OCRUID is the vendor-assigned request ID; empty on failure.
	OCRUID string
}

// # Collaborator Contracts

// VendorClient calls the external OCR API.
type VendorClient interface {

	/*
		Recognize submits one JPEG image and returns the extracted fields.

		Parameters:
		  - context: context.Context
		  - image: []byte (Raw JPEG bytes)

		Returns:
		  - string: Vendor request UID
		  - []Result: Extracted fields of the first image
		  - error: Transport or vendor-side failures
	*/
	Recognize(context context.Context, image []byte) (string, []Result, error)
}
