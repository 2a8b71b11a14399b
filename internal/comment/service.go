// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package comment

import (
	"context"
	"log/slog"
	"time"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/ctxutil"
	"github.com/cinelogapp/cinelog/internal/platform/validate"
	"github.com/cinelogapp/cinelog/pkg/pagination"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

// # Validation Field Names

const (
	FieldGrade           = "grade"
	FieldCommentText     = "comment_text"
	FieldOriginCommentID = "origin_comment_id"
	FieldReportType      = "report_type"
)

// Grade bounds for a review.
const (
	GradeMin = 0
	GradeMax = 10
)

// maxCommentTextLen caps the review body length.
const maxCommentTextLen = 1000

// replyCountTimeout bounds the detached reply-counter statements.
const replyCountTimeout = 5 * time.Second

// # Collaborator Contracts

// Privileges classifies which authors produce elevated comments.
// The auth domain provides the production implementation backed by the
// configured staff ID list.
type Privileges interface {
	IsElevated(userID string) bool
}

// # Service Layer

// Service orchestrates the business logic for the social layer.
// It is the single entry point for comment lifecycle, reactions, and reports.
type Service struct {
	repo         Repository
	reactionRepo ReactionRepository
	reportRepo   ReportRepository
	privileges   Privileges
	clock        timeutil.Clock
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, reactionRepo ReactionRepository, reportRepo ReportRepository, privileges Privileges, clock timeutil.Clock) *Service {
	return &Service{
		repo:         repo,
		reactionRepo: reactionRepo,
		reportRepo:   reportRepo,
		privileges:   privileges,
		clock:        clock,
	}
}

// # Comment Lifecycle

// RegisterInput carries the caller-supplied fields of a new comment.
// Classification and level are always derived server-side.
type RegisterInput struct {
	MediaType       int
	MediaID         int
	UserID          string
	Grade           int
	CommentText     string
	OriginCommentID *int64
}

/*
Register creates a new comment or a one-level reply.

Description: Validates the payload, derives the comment type from the text
and the comment level from the author's privilege classification, then
persists the row. When the comment is a reply, the parent's reply counter
is incremented on a detached best-effort path after the insert commits.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Comment: The persisted entity with identity and register time set
  - error: Validation failures, ErrNotFound for a bad parent, storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Comment, error) {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldCommentText, input.CommentText).MaxLen(FieldCommentText, input.CommentText, maxCommentTextLen)
	validator.Range(FieldGrade, input.Grade, GradeMin, GradeMax)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Reply target validation: one level only, and the parent must be live.
	if input.OriginCommentID != nil {
		parent, err := service.repo.FindByID(context, *input.OriginCommentID)
		if err != nil {
			return nil, err
		}
		if parent.Deleted || parent.IsReply() {
			return nil, apperr.NotFound("Comment")
		}
	}

	comment := &Comment{
		MediaType:       input.MediaType,
		MediaID:         input.MediaID,
		UserID:          input.UserID,
		Grade:           input.Grade,
		CommentText:     input.CommentText,
		CommentType:     Classify(input.CommentText),
		OriginCommentID: input.OriginCommentID,
		RegisterTime:    service.clock.Now(),
	}

	// Author privilege capture (immutable afterwards)
	if service.privileges.IsElevated(input.UserID) {
		comment.CommentLevel = LevelElevated
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	// Detached parent counter maintenance
	if comment.IsReply() {
		service.adjustReplyCountAsync(ctxutil.GetLogger(context), *comment.OriginCommentID, +1)
	}

	return comment, nil
}

/*
Modify rewrites the grade and text of a caller-owned live comment.

Description: The classification is recomputed from the new text. A missing
comment, a soft-deleted comment, and an ownership mismatch are deliberately
indistinguishable: all surface as not-found.

Parameters:
  - context: context.Context
  - userID: string (Caller identity; must own the comment)
  - commentID: int64
  - grade: int
  - commentText: string

Returns:
  - *Comment: Entity carrying the new ModifyTime and CommentType
  - error: Validation failures, apperr.NotFound, storage errors
*/
func (service *Service) Modify(context context.Context, userID string, commentID int64, grade int, commentText string) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldCommentText, commentText).MaxLen(FieldCommentText, commentText, maxCommentTextLen)
	validator.Range(FieldGrade, grade, GradeMin, GradeMax)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.clock.Now()
	comment := &Comment{
		CommentID:   commentID,
		UserID:      userID,
		Grade:       grade,
		CommentText: commentText,
		CommentType: Classify(commentText),
		ModifyTime:  &now,
	}

	updated, err := service.repo.Update(context, comment)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperr.NotFound("Comment")
	}

	return comment, nil
}

/*
Delete soft-deletes a caller-owned live comment.

Description: The parent reference is read before the tombstone so a deleted
reply can still trigger the detached reply-counter decrement. The tombstone
itself is a conditional update whose affected-row count is verified.

Parameters:
  - context: context.Context
  - commentID: int64
  - userID: string

Returns:
  - error: apperr.NotFound for missing/deleted/foreign comments, storage errors
*/
func (service *Service) Delete(context context.Context, commentID int64, userID string) error {

	// Parent resolution must happen before the row is tombstoned.
	existing, err := service.repo.FindByID(context, commentID)
	if err != nil {
		return err
	}

	deleted, err := service.repo.SoftDelete(context, commentID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Comment")
	}

	if existing.IsReply() {
		service.adjustReplyCountAsync(ctxutil.GetLogger(context), *existing.OriginCommentID, -1)
	}

	return nil
}

/*
GetComment fetches a single comment by identity.

Description: Soft-deleted comments ARE returned; the Deleted flag tells the
caller it is looking at a tombstone.

Parameters:
  - context: context.Context
  - commentID: int64

Returns:
  - *Comment: The hydrated entity
  - error: apperr.NotFound only when no row exists at all
*/
func (service *Service) GetComment(context context.Context, commentID int64) (*Comment, error) {
	return service.repo.FindByID(context, commentID)
}

// # Comment Discovery

/*
ListByMedia retrieves live top-level comments for one media item.

Parameters:
  - context: context.Context
  - mediaType, mediaID: int
  - order: Order (Unrecognised values fall back to newest-first)
  - commentType: int (Use TypeFilterAll to disable)
  - window: pagination.Window

Returns:
  - []*Comment: Ordered, windowed slice
  - error: Storage errors
*/
func (service *Service) ListByMedia(context context.Context, mediaType, mediaID int, order Order, commentType int, window pagination.Window) ([]*Comment, error) {
	return service.repo.ListByMedia(context, mediaType, mediaID, normalizeOrder(order), Filter{CommentType: commentType}, window)
}

/*
ListByUser retrieves live comments authored by one user.

Parameters:
  - context: context.Context
  - userID: string
  - order: Order
  - commentType: int
  - window: pagination.Window
  - withReply: bool (Include one-level replies)

Returns:
  - []*Comment: Ordered, windowed slice
  - error: Storage errors
*/
func (service *Service) ListByUser(context context.Context, userID string, order Order, commentType int, window pagination.Window, withReply bool) ([]*Comment, error) {
	return service.repo.ListByUser(context, userID, normalizeOrder(order), Filter{CommentType: commentType}, window, withReply)
}

/*
ListRecent retrieves the newest live top-level comments across all media.

Parameters:
  - context: context.Context
  - window: pagination.Window

Returns:
  - []*Comment: Newest-first slice
  - error: Storage errors
*/
func (service *Service) ListRecent(context context.Context, window pagination.Window) ([]*Comment, error) {
	return service.repo.ListRecent(context, window)
}

/*
ListReplies retrieves the live children of one comment, oldest first.

Parameters:
  - context: context.Context
  - originCommentID: int64

Returns:
  - []*Comment: Oldest-first slice
  - error: Storage errors
*/
func (service *Service) ListReplies(context context.Context, originCommentID int64) ([]*Comment, error) {
	return service.repo.ListReplies(context, originCommentID)
}

// # Reactions

/*
ToggleReaction applies one like/dislike toggle for a user on a comment.

Description: Delegates to the transactional store. The outcome reports the
deltas that were applied plus the authoritative like count, so clients can
reconcile their optimistic UI state.

Parameters:
  - context: context.Context
  - userID: string
  - commentID: int64
  - wantsLike: bool

Returns:
  - *ReactionOutcome: Applied deltas and resulting like count
  - error: apperr.NotFound if the comment is missing, storage errors
*/
func (service *Service) ToggleReaction(context context.Context, userID string, commentID int64, wantsLike bool) (*ReactionOutcome, error) {
	return service.reactionRepo.Toggle(context, userID, commentID, wantsLike)
}

/*
UserReactions lists every active reaction of one user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Reaction: Active reactions
  - error: Storage errors
*/
func (service *Service) UserReactions(context context.Context, userID string) ([]*Reaction, error) {
	return service.reactionRepo.ListUserReactions(context, userID)
}

// # Reports

/*
Report submits or refreshes one user's abuse report on a comment.

Description: Each reporter bumps the comment's report counter exactly once;
subsequent reports from the same user only overwrite the report type.

Parameters:
  - context: context.Context
  - userID: string
  - commentID: int64
  - reportType: int

Returns:
  - error: Validation failures, apperr.NotFound, storage errors
*/
func (service *Service) Report(context context.Context, userID string, commentID int64, reportType int) error {
	validator := &validate.Validator{}
	validator.Custom(FieldReportType, reportType < 0, "must not be negative")
	if err := validator.Err(); err != nil {
		return err
	}

	return service.reportRepo.Submit(context, &Report{
		UserID:     userID,
		CommentID:  commentID,
		ReportType: reportType,
	})
}

// # Internal Helpers

// normalizeOrder maps unrecognised order values to newest-first.
func normalizeOrder(order Order) Order {
	if !order.IsValid() {
		return OrderNewest
	}
	return order
}

// adjustReplyCountAsync updates a parent's reply counter on a detached
// goroutine. Failures are logged and swallowed: the counter is a hint, and
// a stale value must never fail the request that triggered it.
func (service *Service) adjustReplyCountAsync(logger *slog.Logger, commentID int64, delta int) {
	go func() {
		detachedCtx, cancel := context.WithTimeout(context.Background(), replyCountTimeout)
		defer cancel()

		if err := service.repo.AdjustReplyCount(detachedCtx, commentID, delta); err != nil {
			logger.Error("reply_count_adjust_failed",
				slog.Int64("comment_id", commentID),
				slog.Int("delta", delta),
				slog.String("error", err.Error()),
			)
		}
	}()
}
