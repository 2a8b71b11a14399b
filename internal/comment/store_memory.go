// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package comment

import (
	"context"
	"sort"
	"sync"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/pkg/pagination"
)

// # In-Memory Store

// MemoryStore is a development and test implementation of the comment
// repositories. It mirrors the transactional semantics of the Postgres
// store under a single mutex.
type MemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	comments map[int64]*Comment
	// reactions is keyed comment -> user -> isLike
	reactions map[int64]map[string]bool
	// reports is keyed comment -> user -> reportType
	reports map[int64]map[string]int
}

// NewMemoryStore constructs an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:    1,
		comments:  make(map[int64]*Comment),
		reactions: make(map[int64]map[string]bool),
		reports:   make(map[int64]map[string]int),
	}
}

var (
	_ Repository         = (*MemoryStore)(nil)
	_ ReactionRepository = (*MemoryStore)(nil)
	_ ReportRepository   = (*MemoryStore)(nil)
)

// clone returns a defensive copy so callers can't mutate store state.
func clone(comment *Comment) *Comment {
	copied := *comment
	if comment.OriginCommentID != nil {
		origin := *comment.OriginCommentID
		copied.OriginCommentID = &origin
	}
	if comment.ModifyTime != nil {
		modify := *comment.ModifyTime
		copied.ModifyTime = &modify
	}
	return &copied
}

// Create assigns the next serial identity and stores the comment.
func (store *MemoryStore) Create(_ context.Context, comment *Comment) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	comment.CommentID = store.nextID
	store.nextID++
	store.comments[comment.CommentID] = clone(comment)
	return nil
}

// FindByID returns the comment, tombstoned or not.
func (store *MemoryStore) FindByID(_ context.Context, commentID int64) (*Comment, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	comment, ok := store.comments[commentID]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return clone(comment), nil
}

// Update rewrites a live owned comment; zero matches report false.
func (store *MemoryStore) Update(_ context.Context, comment *Comment) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	existing, ok := store.comments[comment.CommentID]
	if !ok || existing.Deleted || existing.UserID != comment.UserID {
		return false, nil
	}

	existing.Grade = comment.Grade
	existing.CommentText = comment.CommentText
	existing.CommentType = comment.CommentType
	existing.ModifyTime = comment.ModifyTime
	return true, nil
}

// SoftDelete tombstones a live owned comment; zero matches report false.
func (store *MemoryStore) SoftDelete(_ context.Context, commentID int64, userID string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	existing, ok := store.comments[commentID]
	if !ok || existing.Deleted || existing.UserID != userID {
		return false, nil
	}

	existing.Deleted = true
	return true, nil
}

// ListByMedia returns live top-level comments for one media item.
func (store *MemoryStore) ListByMedia(_ context.Context, mediaType, mediaID int, order Order, filter Filter, window pagination.Window) ([]*Comment, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	matched := store.collect(func(c *Comment) bool {
		return !c.Deleted && c.OriginCommentID == nil &&
			c.MediaType == mediaType && c.MediaID == mediaID &&
			matchesType(c, filter)
	})

	sortComments(matched, order)
	return applyWindow(matched, window), nil
}

// ListByUser returns live comments authored by one user.
func (store *MemoryStore) ListByUser(_ context.Context, userID string, order Order, filter Filter, window pagination.Window, withReply bool) ([]*Comment, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	matched := store.collect(func(c *Comment) bool {
		if c.Deleted || c.UserID != userID || !matchesType(c, filter) {
			return false
		}
		return withReply || c.OriginCommentID == nil
	})

	sortComments(matched, order)
	return applyWindow(matched, window), nil
}

// ListRecent returns live top-level comments, newest first.
func (store *MemoryStore) ListRecent(_ context.Context, window pagination.Window) ([]*Comment, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	matched := store.collect(func(c *Comment) bool {
		return !c.Deleted && c.OriginCommentID == nil
	})

	sortComments(matched, OrderNewest)
	return applyWindow(matched, window), nil
}

// ListReplies returns live children, oldest first.
func (store *MemoryStore) ListReplies(_ context.Context, originCommentID int64) ([]*Comment, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	matched := store.collect(func(c *Comment) bool {
		return !c.Deleted && c.OriginCommentID != nil && *c.OriginCommentID == originCommentID
	})

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].RegisterTime.Equal(matched[j].RegisterTime) {
			return matched[i].RegisterTime.Before(matched[j].RegisterTime)
		}
		return matched[i].CommentID < matched[j].CommentID
	})
	return matched, nil
}

// AdjustReplyCount applies a clamped delta to a parent's reply counter.
func (store *MemoryStore) AdjustReplyCount(_ context.Context, commentID int64, delta int) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	existing, ok := store.comments[commentID]
	if !ok {
		return apperr.NotFound("Comment")
	}

	existing.ReplyCount += delta
	if existing.ReplyCount < 0 {
		existing.ReplyCount = 0
	}
	return nil
}

// Toggle applies one reaction toggle with the same state machine as Postgres.
func (store *MemoryStore) Toggle(_ context.Context, userID string, commentID int64, wantsLike bool) (*ReactionOutcome, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	comment, ok := store.comments[commentID]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}

	var existing *Reaction
	if byUser, ok := store.reactions[commentID]; ok {
		if isLike, ok := byUser[userID]; ok {
			existing = &Reaction{UserID: userID, CommentID: commentID, IsLike: isLike}
		}
	}

	likeDelta, dislikeDelta := Transition(existing, wantsLike)

	byUser := store.reactions[commentID]
	if byUser == nil {
		byUser = make(map[string]bool)
		store.reactions[commentID] = byUser
	}

	if existing != nil && existing.IsLike == wantsLike {
		delete(byUser, userID)
	} else {
		byUser[userID] = wantsLike
	}

	comment.Likes += likeDelta
	if comment.Likes < 0 {
		comment.Likes = 0
	}
	comment.Dislikes += dislikeDelta
	if comment.Dislikes < 0 {
		comment.Dislikes = 0
	}

	return &ReactionOutcome{
		LikeDelta:    likeDelta,
		DislikeDelta: dislikeDelta,
		LikeCount:    comment.Likes,
	}, nil
}

// ListUserReactions returns the user's active reactions.
func (store *MemoryStore) ListUserReactions(_ context.Context, userID string) ([]*Reaction, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	reactions := make([]*Reaction, 0)
	for commentID, byUser := range store.reactions {
		if isLike, ok := byUser[userID]; ok {
			reactions = append(reactions, &Reaction{UserID: userID, CommentID: commentID, IsLike: isLike})
		}
	}

	sort.Slice(reactions, func(i, j int) bool {
		return reactions[i].CommentID > reactions[j].CommentID
	})
	return reactions, nil
}

// Submit upserts a report, bumping report_count only for first reports.
func (store *MemoryStore) Submit(_ context.Context, report *Report) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	comment, ok := store.comments[report.CommentID]
	if !ok {
		return apperr.NotFound("Comment")
	}

	byUser := store.reports[report.CommentID]
	if byUser == nil {
		byUser = make(map[string]int)
		store.reports[report.CommentID] = byUser
	}

	_, reportedBefore := byUser[report.UserID]
	byUser[report.UserID] = report.ReportType

	if !reportedBefore {
		comment.ReportCount++
	}
	return nil
}

// # Internal Helpers

func (store *MemoryStore) collect(keep func(*Comment) bool) []*Comment {
	matched := make([]*Comment, 0)
	for _, comment := range store.comments {
		if keep(comment) {
			matched = append(matched, clone(comment))
		}
	}
	return matched
}

func matchesType(comment *Comment, filter Filter) bool {
	return filter.CommentType == TypeFilterAll || int(comment.CommentType) == filter.CommentType
}

func sortComments(comments []*Comment, order Order) {
	sort.Slice(comments, func(i, j int) bool {
		a, b := comments[i], comments[j]
		switch order {
		case OrderMostLiked:
			if a.Likes != b.Likes {
				return a.Likes > b.Likes
			}
		case OrderHighestGrade:
			if a.Grade != b.Grade {
				return a.Grade > b.Grade
			}
		default:
			if !a.RegisterTime.Equal(b.RegisterTime) {
				return a.RegisterTime.After(b.RegisterTime)
			}
		}
		return a.CommentID > b.CommentID
	})
}

func applyWindow(comments []*Comment, window pagination.Window) []*Comment {
	if window.All {
		return comments
	}

	start := window.Offset()
	if start >= len(comments) {
		return []*Comment{}
	}

	end := start + window.Limit()
	if end > len(comments) {
		end = len(comments)
	}
	return comments[start:end]
}
