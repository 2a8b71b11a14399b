// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelogapp/cinelog/internal/platform/database/schema"
)

// # PostgreSQL Repository

// usageRepository implements the [UsageRepository] interface using pgx.
type usageRepository struct {
	pool *pgxpool.Pool
}

// NewUsageRepository constructs a PostgreSQL backed usage store.
func NewUsageRepository(pool *pgxpool.Pool) UsageRepository {
	return &usageRepository{pool: pool}
}

/*
Consumed returns the calls consumed in a month bucket.

Parameters:
  - context: context.Context
  - yearMonth: int (YYYYMM)

Returns:
  - int: Consumed calls; 0 when the bucket doesn't exist yet
  - error: Execution failures
*/
func (repository *usageRepository) Consumed(context context.Context, yearMonth int) (int, error) {
	s := schema.OCRUsage
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		s.Consumed, s.Table, s.YearMonth,
	)

	var consumed int
	err := repository.pool.QueryRow(context, query, yearMonth).Scan(&consumed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("postgres_ocr_repo_consumed_failed: %w", err)
	}

	return consumed, nil
}

/*
Increment adds one consumed call to a month bucket via upsert.

Parameters:
  - context: context.Context
  - yearMonth: int (YYYYMM)

Returns:
  - error: Execution failures
*/
func (repository *usageRepository) Increment(context context.Context, yearMonth int) error {
	s := schema.OCRUsage
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, 1)
		ON CONFLICT (%s) DO UPDATE SET %s = %s.%s + 1`,
		s.Table, s.YearMonth, s.Consumed,
		s.YearMonth, s.Consumed, s.Table, s.Consumed,
	)

	if _, err := repository.pool.Exec(context, query, yearMonth); err != nil {
		return fmt.Errorf("postgres_ocr_repo_increment_failed: %w", err)
	}

	return nil
}

/*
RecordHistory appends one attempt to the history trail.

Parameters:
  - context: context.Context
  - entry: *HistoryEntry

Returns:
  - error: Execution failures
*/
func (repository *usageRepository) RecordHistory(context context.Context, entry *HistoryEntry) error {
	s := schema.OCRHistory
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)`,
		s.Table, s.UserID, s.UsedAt, s.Succeeded, s.OCRUID,
	)

	_, err := repository.pool.Exec(context, query,
		entry.UserID,
		entry.UsedAt,
		entry.Succeeded,
		entry.OCRUID,
	)
	if err != nil {
		return fmt.Errorf("postgres_ocr_repo_record_history_failed: %w", err)
	}

	return nil
}
