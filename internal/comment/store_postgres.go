// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package comment provides the PostgreSQL implementation for the social layer's data access.

It leans on PostgreSQL guarantees to keep the engagement counters honest:
  - ACID Transactions: Reaction toggles and report upserts mutate their
    marker row and the comment counters in one atomic step.
  - Upserts: ON CONFLICT clauses enforce the one-row-per-(user, comment)
    invariant for reactions and reports without racy read-then-write code.
  - Soft Deletes: Comments are never physically removed; listings filter on
    the deleted flag while direct lookups intentionally do not.
*/
package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/database/schema"
	"github.com/cinelogapp/cinelog/pkg/pagination"
)

// # PostgreSQL Repositories

// commentRepository implements the [Repository] interface using pgx.
type commentRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &commentRepository{pool: pool}
}

// reactionRepository implements the [ReactionRepository] interface using pgx.
type reactionRepository struct {
	pool *pgxpool.Pool
}

// NewReactionRepository constructs a PostgreSQL backed reaction store.
func NewReactionRepository(pool *pgxpool.Pool) ReactionRepository {
	return &reactionRepository{pool: pool}
}

// reportRepository implements the [ReportRepository] interface using pgx.
type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository constructs a PostgreSQL backed report store.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

// # Shared Query Fragments

// commentColumns returns the SELECT column list for hydrating a [Comment].
func commentColumns() string {
	s := schema.MediaComment
	return strings.Join([]string{
		s.CommentID, s.MediaType, s.MediaID, s.UserID, s.Grade,
		s.CommentText, s.CommentType, s.CommentLevel, s.OriginCommentID,
		s.RegisterTime, s.ModifyTime, s.Likes, s.Dislikes,
		s.ReplyCount, s.ReportCount, s.Deleted,
	}, ", ")
}

// scanComment hydrates one [Comment] from a row produced by [commentColumns].
func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.CommentID,
		&comment.MediaType,
		&comment.MediaID,
		&comment.UserID,
		&comment.Grade,
		&comment.CommentText,
		&comment.CommentType,
		&comment.CommentLevel,
		&comment.OriginCommentID,
		&comment.RegisterTime,
		&comment.ModifyTime,
		&comment.Likes,
		&comment.Dislikes,
		&comment.ReplyCount,
		&comment.ReportCount,
		&comment.Deleted,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// collectComments drains a row set produced by [commentColumns].
func collectComments(rows pgx.Rows) ([]*Comment, error) {
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// orderClause maps an [Order] to its ORDER BY expression.
// The comment ID is always the tiebreaker so windowed listings stay stable.
func orderClause(order Order) string {
	s := schema.MediaComment
	switch order {
	case OrderMostLiked:
		return fmt.Sprintf("%s DESC, %s DESC", s.Likes, s.CommentID)
	case OrderHighestGrade:
		return fmt.Sprintf("%s DESC, %s DESC", s.Grade, s.CommentID)
	default:
		return fmt.Sprintf("%s DESC, %s DESC", s.RegisterTime, s.CommentID)
	}
}

// windowClause renders LIMIT/OFFSET, or nothing when the full set is requested.
func windowClause(window pagination.Window) string {
	if window.All {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", window.Limit(), window.Offset())
}

// # Comment Repository Implementation

/*
Create persists a new comment row.

Description: The caller supplies classification, level, and register time;
the database assigns the serial identity which is written back onto the
entity via RETURNING.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *commentRepository) Create(context context.Context, comment *Comment) error {
	s := schema.MediaComment
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`,
		s.Table,
		s.MediaType, s.MediaID, s.UserID, s.Grade, s.CommentText,
		s.CommentType, s.CommentLevel, s.OriginCommentID, s.RegisterTime,
		s.CommentID,
	)

	err := repository.pool.QueryRow(context, query,
		comment.MediaType,
		comment.MediaID,
		comment.UserID,
		comment.Grade,
		comment.CommentText,
		comment.CommentType,
		comment.CommentLevel,
		comment.OriginCommentID,
		comment.RegisterTime,
	).Scan(&comment.CommentID)

	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a comment row by its identity.

Description: Soft-deleted rows are returned on purpose so moderation and
reply-thread rendering can still resolve tombstones.

Parameters:
  - context: context.Context
  - commentID: int64

Returns:
  - *Comment: Hydrated entity (possibly with Deleted set)
  - error: apperr.NotFound or database execution failure
*/
func (repository *commentRepository) FindByID(context context.Context, commentID int64) (*Comment, error) {
	s := schema.MediaComment
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		commentColumns(), s.Table, s.CommentID,
	)

	comment, err := scanComment(repository.pool.QueryRow(context, query, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_by_id_failed: %w", err)
	}

	return comment, nil
}

/*
Update rewrites the mutable fields of a live comment.

Description: The UPDATE is keyed on (comment_id, user_id, NOT deleted) so a
missing row, a soft-deleted row, and an ownership mismatch all surface the
same way: zero rows affected.

Parameters:
  - context: context.Context
  - comment: *Comment (Grade, CommentText, CommentType, ModifyTime)

Returns:
  - bool: true if exactly one row was rewritten
  - error: Database execution failures
*/
func (repository *commentRepository) Update(context context.Context, comment *Comment) (bool, error) {
	s := schema.MediaComment
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1 AND %s = $2 AND NOT %s`,
		s.Table,
		s.Grade, s.CommentText, s.CommentType, s.ModifyTime,
		s.CommentID, s.UserID, s.Deleted,
	)

	tag, err := repository.pool.Exec(context, query,
		comment.CommentID,
		comment.UserID,
		comment.Grade,
		comment.CommentText,
		comment.CommentType,
		comment.ModifyTime,
	)
	if err != nil {
		return false, fmt.Errorf("postgres_comment_repo_update_failed: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

/*
SoftDelete tombstones a live comment owned by the given user.

Parameters:
  - context: context.Context
  - commentID: int64
  - userID: string

Returns:
  - bool: true if exactly one row was tombstoned
  - error: Database execution failures
*/
func (repository *commentRepository) SoftDelete(context context.Context, commentID int64, userID string) (bool, error) {
	s := schema.MediaComment
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = TRUE
		WHERE %s = $1 AND %s = $2 AND NOT %s`,
		s.Table, s.Deleted,
		s.CommentID, s.UserID, s.Deleted,
	)

	tag, err := repository.pool.Exec(context, query, commentID, userID)
	if err != nil {
		return false, fmt.Errorf("postgres_comment_repo_soft_delete_failed: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

/*
ListByMedia returns live top-level comments attached to one media item.

Parameters:
  - context: context.Context
  - mediaType, mediaID: int
  - order: Order
  - filter: Filter
  - window: pagination.Window

Returns:
  - []*Comment: Ordered, windowed slice
  - error: Database execution failures
*/
func (repository *commentRepository) ListByMedia(context context.Context, mediaType, mediaID int, order Order, filter Filter, window pagination.Window) ([]*Comment, error) {
	s := schema.MediaComment

	var queryBuilder strings.Builder
	args := []any{mediaType, mediaID}

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL AND NOT %s`,
		commentColumns(), s.Table,
		s.MediaType, s.MediaID, s.OriginCommentID, s.Deleted,
	))

	// Comment type filter
	if filter.CommentType != TypeFilterAll {
		args = append(args, filter.CommentType)
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", s.CommentType, len(args)))
	}

	queryBuilder.WriteString(" ORDER BY " + orderClause(order))
	queryBuilder.WriteString(windowClause(window))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_by_media_failed: %w", err)
	}

	comments, err := collectComments(rows)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_by_media_failed: %w", err)
	}
	return comments, nil
}

/*
ListByUser returns live comments authored by one user.

Description: Replies are excluded by default so profile pages show only
top-level reviews; withReply widens the listing to the full history.

Parameters:
  - context: context.Context
  - userID: string
  - order: Order
  - filter: Filter
  - window: pagination.Window
  - withReply: bool

Returns:
  - []*Comment: Ordered, windowed slice
  - error: Database execution failures
*/
func (repository *commentRepository) ListByUser(context context.Context, userID string, order Order, filter Filter, window pagination.Window, withReply bool) ([]*Comment, error) {
	s := schema.MediaComment

	var queryBuilder strings.Builder
	args := []any{userID}

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND NOT %s`,
		commentColumns(), s.Table,
		s.UserID, s.Deleted,
	))

	if !withReply {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s IS NULL", s.OriginCommentID))
	}

	if filter.CommentType != TypeFilterAll {
		args = append(args, filter.CommentType)
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", s.CommentType, len(args)))
	}

	queryBuilder.WriteString(" ORDER BY " + orderClause(order))
	queryBuilder.WriteString(windowClause(window))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_by_user_failed: %w", err)
	}

	comments, err := collectComments(rows)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_by_user_failed: %w", err)
	}
	return comments, nil
}

/*
ListRecent returns the newest live top-level comments across all media.

Parameters:
  - context: context.Context
  - window: pagination.Window

Returns:
  - []*Comment: Newest-first slice
  - error: Database execution failures
*/
func (repository *commentRepository) ListRecent(context context.Context, window pagination.Window) ([]*Comment, error) {
	s := schema.MediaComment
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s IS NULL AND NOT %s
		ORDER BY %s%s`,
		commentColumns(), s.Table,
		s.OriginCommentID, s.Deleted,
		orderClause(OrderNewest), windowClause(window),
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_recent_failed: %w", err)
	}

	comments, err := collectComments(rows)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_recent_failed: %w", err)
	}
	return comments, nil
}

/*
ListReplies returns the live children of one comment, oldest first.

Parameters:
  - context: context.Context
  - originCommentID: int64

Returns:
  - []*Comment: Oldest-first slice
  - error: Database execution failures
*/
func (repository *commentRepository) ListReplies(context context.Context, originCommentID int64) ([]*Comment, error) {
	s := schema.MediaComment
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND NOT %s
		ORDER BY %s ASC, %s ASC`,
		commentColumns(), s.Table,
		s.OriginCommentID, s.Deleted,
		s.RegisterTime, s.CommentID,
	)

	rows, err := repository.pool.Query(context, query, originCommentID)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_replies_failed: %w", err)
	}

	comments, err := collectComments(rows)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_replies_failed: %w", err)
	}
	return comments, nil
}

/*
AdjustReplyCount applies a delta to a parent comment's reply counter.

Description: This statement intentionally runs OUTSIDE the transaction of
the reply insert or delete that triggered it. The counter is an eventually
consistent hint; GREATEST keeps it from ever going negative.

Parameters:
  - context: context.Context
  - commentID: int64 (Parent)
  - delta: int

Returns:
  - error: Database execution failures
*/
func (repository *commentRepository) AdjustReplyCount(context context.Context, commentID int64, delta int) error {
	s := schema.MediaComment
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = GREATEST(%s + $2, 0)
		WHERE %s = $1`,
		s.Table, s.ReplyCount, s.ReplyCount, s.CommentID,
	)

	_, err := repository.pool.Exec(context, query, commentID, delta)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_adjust_reply_count_failed: %w", err)
	}

	return nil
}
