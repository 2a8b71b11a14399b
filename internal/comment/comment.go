// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package comment defines the social layer of the Cinelog domain.

It manages the lifecycle of user reviews attached to movies and series,
including one-level replies, like/dislike reactions, and abuse reports.

Core Responsibility:

  - Lifecycle: Register, modify, and soft-delete comments with ownership checks.
  - Reactions: A toggle engine keeping at most one like OR dislike per user.
  - Moderation: Report flow feeding the report_count moderation signal.
  - Discovery: Ordered, windowed listings per media, per user, and global.

This package acts as the source of truth for all comment-related data models.
*/
package comment

import (
	"strings"
	"time"
)

// # Domain Enums

// Type classifies a comment by its textual content.
type Type int

const (
	// TypePlain is an ordinary text comment.
	TypePlain Type = 0

	// TypeVideoLink is a comment whose text embeds a YouTube link.
	TypeVideoLink Type = 1
)

// Level marks the authority of a comment's author at creation time.
type Level int

const (
	// LevelNormal is a comment from a regular member.
	LevelNormal Level = 0

	// LevelElevated is a comment from a privileged (staff) account.
	// The level is captured at creation and never recomputed afterwards.
	LevelElevated Level = 1
)

// Order selects the sort key for comment listings.
type Order int

const (
	// OrderNewest sorts by register time, newest first.
	OrderNewest Order = 0

	// OrderMostLiked sorts by like count, highest first.
	OrderMostLiked Order = 1

	// OrderHighestGrade sorts by grade, highest first.
	OrderHighestGrade Order = 2
)

// IsValid reports whether o is a recognised [Order] value.
func (o Order) IsValid() bool {
	switch o {
	case OrderNewest, OrderMostLiked, OrderHighestGrade:
		return true
	}
	return false
}

// TypeFilterAll disables comment-type filtering in listings.
const TypeFilterAll = -1

// videoLinkMarkers are the URL prefixes that promote a comment to [TypeVideoLink].
var videoLinkMarkers = []string{
	"https://www.youtube.com/",
	"https://youtu.be/",
}

// Classify derives the [Type] of a comment from its text.
//
// The match is a case-insensitive substring search, so a link anywhere in
// the body (including uppercased hosts) counts. Classification depends on
// the text alone and is recomputed on every modification.
func Classify(text string) Type {
	lowered := strings.ToLower(text)
	for _, marker := range videoLinkMarkers {
		if strings.Contains(lowered, marker) {
			return TypeVideoLink
		}
	}
	return TypePlain
}

// # Core Entities

// Comment is the central aggregate of the social domain.
// It represents a single user review or a one-level reply to one.
type Comment struct {
	CommentID       int64      `json:"comment_id"`
	MediaType       int        `json:"media_type"`
	MediaID         int        `json:"media_id"`
	UserID          string     `json:"user_id"`
	Grade           int        `json:"grade"`
	CommentText     string     `json:"comment_text"`
	CommentType     Type       `json:"comment_type"`
	CommentLevel    Level      `json:"comment_level"`
	OriginCommentID *int64     `json:"origin_comment_id,omitempty"`
	RegisterTime    time.Time  `json:"-"`
	ModifyTime      *time.Time `json:"-"`

	// # Computed Metrics
	// Counters are maintained by the reaction and report flows; reply_count
	// is adjusted best-effort and may lag the true child count briefly.
	Likes       int `json:"likes"`
	Dislikes    int `json:"dislikes"`
	ReplyCount  int `json:"reply_count"`
	ReportCount int `json:"report_count"`

	Deleted bool `json:"-"`
}

// IsReply reports whether the comment is a child of another comment.
func (c *Comment) IsReply() bool {
	return c.OriginCommentID != nil
}

// Reaction is a single user's like or dislike on a comment.
// Row existence means the reaction is active; retraction deletes the row.
type Reaction struct {
	UserID    string `json:"user_id"`
	CommentID int64  `json:"comment_id"`
	IsLike    bool   `json:"is_like"`
}

// Report is a single user's abuse report on a comment.
// Re-reporting overwrites the report type without another counter bump.
type Report struct {
	UserID     string `json:"user_id"`
	CommentID  int64  `json:"comment_id"`
	ReportType int    `json:"report_type"`
}

// # Reaction Toggle Transitions

// ReactionOutcome is the result of applying one reaction toggle.
type ReactionOutcome struct {
	// LikeDelta is the change applied to the comment's like counter.
	LikeDelta int `json:"like_delta"`
	// DislikeDelta is the change applied to the comment's dislike counter.
	DislikeDelta int `json:"dislike_delta"`
	// LikeCount is the authoritative like total after the toggle committed.
	LikeCount int `json:"like_count"`
}

// Transition computes the counter deltas for one reaction toggle.
//
// # State Machine
//
// The previous state is either "no reaction" (existing == nil) or an active
// like/dislike. Repeating the same reaction retracts it; switching sides
// retracts one counter and bumps the other in the same step.
//
//	prev none    + like    => like +1
//	prev none    + dislike => dislike +1
//	prev like    + like    => like -1 (retract)
//	prev like    + dislike => like -1, dislike +1 (switch)
//	prev dislike + dislike => dislike -1 (retract)
//	prev dislike + like    => dislike -1, like +1 (switch)
func Transition(existing *Reaction, wantsLike bool) (likeDelta, dislikeDelta int) {
	if existing == nil {
		if wantsLike {
			return 1, 0
		}
		return 0, 1
	}

	if existing.IsLike == wantsLike {
		// Same side again: retract.
		if wantsLike {
			return -1, 0
		}
		return 0, -1
	}

	// Opposite side: switch.
	if wantsLike {
		return 1, -1
	}
	return -1, 1
}
