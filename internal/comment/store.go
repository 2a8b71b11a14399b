// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package comment

import (
	"context"

	"github.com/cinelogapp/cinelog/pkg/pagination"
)

// # Comment Data Access

// Filter narrows comment listings by comment type.
// Use [TypeFilterAll] to disable the filter.
type Filter struct {
	CommentType int
}

// Repository defines the data access contract for comment lifecycle and discovery.
type Repository interface {

	/*
		Create persists a new comment and returns it with its generated
		identity and register time populated.

		Parameters:
		  - context: context.Context
		  - comment: *Comment (Text, grade, media target, optional parent)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindByID returns the comment with the given ID.

		Soft-deleted rows ARE returned; callers needing live rows must
		check the Deleted flag themselves.

		Parameters:
		  - context: context.Context
		  - commentID: int64

		Returns:
		  - *Comment: The hydrated entity
		  - error: ErrNotFound if no row exists at all
	*/
	FindByID(context context.Context, commentID int64) (*Comment, error)

	/*
		Update rewrites grade, text, type, and modify time of a live comment
		owned by the given user.

		Parameters:
		  - context: context.Context
		  - comment: *Comment (CommentID + UserID key the conditional update)

		Returns:
		  - bool: true if exactly one row was updated
		  - error: Database execution errors
	*/
	Update(context context.Context, comment *Comment) (bool, error)

	/*
		SoftDelete marks a live comment as deleted without physical removal,
		conditional on ownership.

		Parameters:
		  - context: context.Context
		  - commentID: int64
		  - userID: string

		Returns:
		  - bool: true if exactly one row was marked
		  - error: Database execution errors
	*/
	SoftDelete(context context.Context, commentID int64, userID string) (bool, error)

	/*
		ListByMedia returns top-level live comments for one media item.

		Parameters:
		  - context: context.Context
		  - mediaType, mediaID: int (Target media)
		  - order: Order (Sort key)
		  - filter: Filter (Comment type)
		  - window: pagination.Window

		Returns:
		  - []*Comment: Ordered slice
		  - error: Database execution errors
	*/
	ListByMedia(context context.Context, mediaType, mediaID int, order Order, filter Filter, window pagination.Window) ([]*Comment, error)

	/*
		ListByUser returns live comments authored by one user.
		Replies are excluded unless withReply is set.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - order: Order
		  - filter: Filter
		  - window: pagination.Window
		  - withReply: bool

		Returns:
		  - []*Comment: Ordered slice
		  - error: Database execution errors
	*/
	ListByUser(context context.Context, userID string, order Order, filter Filter, window pagination.Window, withReply bool) ([]*Comment, error)

	/*
		ListRecent returns the newest live top-level comments across all media.

		Parameters:
		  - context: context.Context
		  - window: pagination.Window

		Returns:
		  - []*Comment: Newest-first slice
		  - error: Database execution errors
	*/
	ListRecent(context context.Context, window pagination.Window) ([]*Comment, error)

	/*
		ListReplies returns the live children of one comment, oldest first.

		Parameters:
		  - context: context.Context
		  - originCommentID: int64

		Returns:
		  - []*Comment: Oldest-first slice
		  - error: Database execution errors
	*/
	ListReplies(context context.Context, originCommentID int64) ([]*Comment, error)

	/*
		AdjustReplyCount applies a delta to a parent comment's reply counter.
		Used by the best-effort maintenance path after reply inserts/deletes.

		Parameters:
		  - context: context.Context
		  - commentID: int64 (Parent)
		  - delta: int (+1 or -1)

		Returns:
		  - error: Database execution errors
	*/
	AdjustReplyCount(context context.Context, commentID int64, delta int) error
}

// # Reaction Data Access

// ReactionRepository defines the data access contract for the reaction toggle engine.
type ReactionRepository interface {

	/*
		Toggle applies one like/dislike toggle atomically.

		The read of the previous reaction, the row mutation, the counter
		update, and the authoritative like-count read all happen inside a
		single transaction; any failure rolls the whole step back.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - commentID: int64
		  - wantsLike: bool

		Returns:
		  - *ReactionOutcome: Applied deltas and resulting like count
		  - error: ErrNotFound if the comment is missing; execution errors
	*/
	Toggle(context context.Context, userID string, commentID int64, wantsLike bool) (*ReactionOutcome, error)

	/*
		ListUserReactions returns all active reactions of one user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*Reaction: Active reactions
		  - error: Database execution errors
	*/
	ListUserReactions(context context.Context, userID string) ([]*Reaction, error)
}

// # Report Data Access

// ReportRepository defines the data access contract for the abuse report flow.
type ReportRepository interface {

	/*
		Submit upserts one user's report on a comment.

		The comment's report_count is incremented only when the user had
		no prior report; re-reports merely overwrite the report type.
		The whole step runs in a single transaction.

		Parameters:
		  - context: context.Context
		  - report: *Report

		Returns:
		  - error: ErrNotFound if the comment is missing; execution errors
	*/
	Submit(context context.Context, report *Report) error
}
