// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/database/schema"
)

// # Reaction Repository Implementation

/*
Toggle applies one like/dislike toggle atomically.

Description: Executes the full toggle step inside a single ACID transaction:

 1. Read the user's current reaction row (if any).
 2. Apply the state transition: insert on first touch, delete on repeat,
    rewrite on side switch.
 3. Apply both counter deltas to the comment in ONE UPDATE, clamped at zero.
 4. Read back the authoritative like count.

A zero-row counter update means the comment vanished (or never existed) and
aborts the whole step, so the marker rows can never drift from the counters.

Parameters:
  - context: context.Context
  - userID: string
  - commentID: int64
  - wantsLike: bool (true for like, false for dislike)

Returns:
  - *ReactionOutcome: Applied deltas and the resulting like count
  - error: apperr.NotFound if the comment is missing; execution failures
*/
func (repository *reactionRepository) Toggle(context context.Context, userID string, commentID int64, wantsLike bool) (*ReactionOutcome, error) {
	r := schema.CommentReaction
	c := schema.MediaComment

	// Transaction Context Instantiation
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin reaction transaction: %w", err)
	}

	// Defer Transaction State Reversal
	defer transaction.Rollback(context)

	// ── 1. Current Reaction Lookup ────────────────────────────────────────
	var existing *Reaction
	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		r.IsLike, r.Table, r.UserID, r.CommentID,
	)

	var isLike bool
	err = transaction.QueryRow(context, selectQuery, userID, commentID).Scan(&isLike)
	switch {
	case err == nil:
		existing = &Reaction{UserID: userID, CommentID: commentID, IsLike: isLike}
	case errors.Is(err, pgx.ErrNoRows):
		// First touch for this (user, comment) pair.
	default:
		return nil, fmt.Errorf("postgres_reaction_repo_toggle_select_failed: %w", err)
	}

	// ── 2. State Transition ───────────────────────────────────────────────
	likeDelta, dislikeDelta := Transition(existing, wantsLike)

	switch {
	case existing == nil:
		insertQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s)
			VALUES ($1, $2, $3)`,
			r.Table, r.UserID, r.CommentID, r.IsLike,
		)
		if _, err := transaction.Exec(context, insertQuery, userID, commentID, wantsLike); err != nil {
			return nil, fmt.Errorf("postgres_reaction_repo_toggle_insert_failed: %w", err)
		}

	case existing.IsLike == wantsLike:
		// Repeating the same side retracts the reaction entirely.
		deleteQuery := fmt.Sprintf(`
			DELETE FROM %s
			WHERE %s = $1 AND %s = $2`,
			r.Table, r.UserID, r.CommentID,
		)
		if _, err := transaction.Exec(context, deleteQuery, userID, commentID); err != nil {
			return nil, fmt.Errorf("postgres_reaction_repo_toggle_delete_failed: %w", err)
		}

	default:
		// Switching sides rewrites the marker row in place.
		updateQuery := fmt.Sprintf(`
			UPDATE %s
			SET %s = $3
			WHERE %s = $1 AND %s = $2`,
			r.Table, r.IsLike, r.UserID, r.CommentID,
		)
		if _, err := transaction.Exec(context, updateQuery, userID, commentID, wantsLike); err != nil {
			return nil, fmt.Errorf("postgres_reaction_repo_toggle_update_failed: %w", err)
		}
	}

	// ── 3. Counter Maintenance ────────────────────────────────────────────
	counterQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = GREATEST(%s + $2, 0), %s = GREATEST(%s + $3, 0)
		WHERE %s = $1`,
		c.Table,
		c.Likes, c.Likes, c.Dislikes, c.Dislikes,
		c.CommentID,
	)

	tag, err := transaction.Exec(context, counterQuery, commentID, likeDelta, dislikeDelta)
	if err != nil {
		return nil, fmt.Errorf("postgres_reaction_repo_toggle_counter_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("Comment")
	}

	// ── 4. Authoritative Like Count ───────────────────────────────────────
	likeCountQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		c.Likes, c.Table, c.CommentID,
	)

	var likeCount int
	if err := transaction.QueryRow(context, likeCountQuery, commentID).Scan(&likeCount); err != nil {
		return nil, fmt.Errorf("postgres_reaction_repo_toggle_count_failed: %w", err)
	}

	// Final Persistence
	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit reaction transaction: %w", err)
	}

	return &ReactionOutcome{
		LikeDelta:    likeDelta,
		DislikeDelta: dislikeDelta,
		LikeCount:    likeCount,
	}, nil
}

/*
ListUserReactions returns every active reaction held by one user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Reaction: Active reactions, newest comments first
  - error: Database execution failures
*/
func (repository *reactionRepository) ListUserReactions(context context.Context, userID string) ([]*Reaction, error) {
	r := schema.CommentReaction
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		r.CommentID, r.IsLike,
		r.Table, r.UserID, r.CommentID,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_reaction_repo_list_by_user_failed: %w", err)
	}
	defer rows.Close()

	reactions := make([]*Reaction, 0)
	for rows.Next() {
		reaction := &Reaction{UserID: userID}
		if err := rows.Scan(&reaction.CommentID, &reaction.IsLike); err != nil {
			return nil, fmt.Errorf("postgres_reaction_repo_list_by_user_failed: %w", err)
		}
		reactions = append(reactions, reaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_reaction_repo_list_by_user_failed: %w", err)
	}

	return reactions, nil
}

// # Report Repository Implementation

/*
Submit upserts one user's abuse report on a comment.

Description: Runs the whole flow in one transaction:

 1. Upsert the report; a repeat report overwrites the report type only.
    Whether the row was freshly inserted is taken from the upsert itself
    (xmax = 0), so two racing first reports cannot both read "no prior row".
 2. Increment the comment's report_count ONLY on a fresh insert, so each
    reporter is counted exactly once regardless of resubmissions.

Parameters:
  - context: context.Context
  - report: *Report

Returns:
  - error: apperr.NotFound if the comment is missing; execution failures
*/
func (repository *reportRepository) Submit(context context.Context, report *Report) error {
	p := schema.CommentReport
	c := schema.MediaComment

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin report transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// ── 1. Report Upsert ──────────────────────────────────────────────────
	// xmax = 0 only holds for a freshly inserted row, never for the
	// conflict-update path, which makes first-report detection atomic.
	upsertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING (xmax = 0)`,
		p.Table, p.UserID, p.CommentID, p.ReportType,
		p.UserID, p.CommentID, p.ReportType, p.ReportType,
	)

	var firstReport bool
	if err := transaction.QueryRow(context, upsertQuery, report.UserID, report.CommentID, report.ReportType).Scan(&firstReport); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperr.NotFound("Comment")
		}
		return fmt.Errorf("postgres_report_repo_submit_upsert_failed: %w", err)
	}

	// ── 2. First-Reporter Counter Bump ────────────────────────────────────
	if firstReport {
		bumpQuery := fmt.Sprintf(`
			UPDATE %s
			SET %s = %s + 1
			WHERE %s = $1`,
			c.Table, c.ReportCount, c.ReportCount, c.CommentID,
		)

		tag, err := transaction.Exec(context, bumpQuery, report.CommentID)
		if err != nil {
			return fmt.Errorf("postgres_report_repo_submit_bump_failed: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Comment")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit report transaction: %w", err)
	}

	return nil
}
