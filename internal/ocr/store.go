// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package ocr

import "context"

// UsageRepository tracks monthly OCR consumption and the attempt history.
type UsageRepository interface {

	/*
		Consumed returns the number of calls consumed in a month bucket.

		Parameters:
		  - context: context.Context
		  - yearMonth: int (YYYYMM)

		Returns:
		  - int: Consumed calls; 0 for an untouched month
		  - error: Execution failures
	*/
	Consumed(context context.Context, yearMonth int) (int, error)

	/*
		Increment adds one consumed call to a month bucket, creating it on
		first use.

		Parameters:
		  - context: context.Context
		  - yearMonth: int (YYYYMM)

		Returns:
		  - error: Execution failures
	*/
	Increment(context context.Context, yearMonth int) error

	/*
		RecordHistory appends one attempt to the history trail.

		Parameters:
		  - context: context.Context
		  - entry: *HistoryEntry

		Returns:
		  - error: Execution failures
	*/
	RecordHistory(context context.Context, entry *HistoryEntry) error
}
