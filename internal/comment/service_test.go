// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package comment_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelogapp/cinelog/internal/comment"
	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/pkg/pagination"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

// stubPrivileges elevates a fixed set of user IDs.
type stubPrivileges struct {
	elevated map[string]bool
}

func (s stubPrivileges) IsElevated(userID string) bool {
	return s.elevated[userID]
}

// newTestService wires a service against the in-memory store.
func newTestService(elevated ...string) (*comment.Service, *comment.MemoryStore) {
	classifier := stubPrivileges{elevated: make(map[string]bool)}
	for _, userID := range elevated {
		classifier.elevated[userID] = true
	}

	store := comment.NewMemoryStore()
	clock := timeutil.FixedClock{Instant: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return comment.NewService(store, store, store, classifier, clock), store
}

func register(t *testing.T, service *comment.Service, userID, text string, grade int) *comment.Comment {
	t.Helper()
	created, err := service.Register(context.Background(), comment.RegisterInput{
		MediaType:   0,
		MediaID:     42,
		UserID:      userID,
		Grade:       grade,
		CommentText: text,
	})
	require.NoError(t, err)
	return created
}

/*
TestService_Register verifies creation, derivation, and validation.
*/
func TestService_Register(t *testing.T) {
	service, _ := newTestService("staff_1")

	t.Run("derives_type_and_level", func(t *testing.T) {
		created, err := service.Register(context.Background(), comment.RegisterInput{
			MediaID:     42,
			UserID:      "staff_1",
			Grade:       8,
			CommentText: "trailer https://youtu.be/abc",
		})
		require.NoError(t, err)

		assert.Equal(t, comment.TypeVideoLink, created.CommentType)
		assert.Equal(t, comment.LevelElevated, created.CommentLevel)
		assert.NotZero(t, created.CommentID)
		assert.False(t, created.RegisterTime.IsZero())
	})

	t.Run("normal_user_gets_normal_level", func(t *testing.T) {
		created := register(t, service, "Google_123", "plain text", 5)
		assert.Equal(t, comment.LevelNormal, created.CommentLevel)
		assert.Equal(t, comment.TypePlain, created.CommentType)
	})

	t.Run("rejects_empty_text", func(t *testing.T) {
		_, err := service.Register(context.Background(), comment.RegisterInput{
			UserID: "Google_123",
			Grade:  5,
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("rejects_out_of_range_grade", func(t *testing.T) {
		_, err := service.Register(context.Background(), comment.RegisterInput{
			UserID:      "Google_123",
			Grade:       11,
			CommentText: "x",
		})
		require.Error(t, err)
	})
}

/*
TestService_Register_Reply verifies reply constraints and the best-effort
parent counter maintenance.
*/
func TestService_Register_Reply(t *testing.T) {
	service, store := newTestService()
	parent := register(t, service, "Google_1", "parent", 5)

	t.Run("reply_bumps_parent_counter", func(t *testing.T) {
		reply, err := service.Register(context.Background(), comment.RegisterInput{
			MediaID:         42,
			UserID:          "Google_2",
			Grade:           0,
			CommentText:     "a reply",
			OriginCommentID: &parent.CommentID,
		})
		require.NoError(t, err)
		assert.Equal(t, parent.CommentID, *reply.OriginCommentID)

		// Counter maintenance is detached, so wait for it.
		require.Eventually(t, func() bool {
			fetched, err := store.FindByID(context.Background(), parent.CommentID)
			return err == nil && fetched.ReplyCount == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("rejects_reply_to_reply", func(t *testing.T) {
		replies, err := service.ListReplies(context.Background(), parent.CommentID)
		require.NoError(t, err)
		require.Len(t, replies, 1)

		_, err = service.Register(context.Background(), comment.RegisterInput{
			UserID:          "Google_3",
			CommentText:     "too deep",
			OriginCommentID: &replies[0].CommentID,
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("rejects_reply_to_missing_parent", func(t *testing.T) {
		missing := int64(9999)
		_, err := service.Register(context.Background(), comment.RegisterInput{
			UserID:          "Google_3",
			CommentText:     "orphan",
			OriginCommentID: &missing,
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_Modify verifies rewrite semantics and the uniform not-found signal.
*/
func TestService_Modify(t *testing.T) {
	service, _ := newTestService()
	created := register(t, service, "Google_1", "original text", 5)

	t.Run("rewrites_and_reclassifies", func(t *testing.T) {
		modified, err := service.Modify(context.Background(), "Google_1", created.CommentID, 9, "now with https://youtu.be/x")
		require.NoError(t, err)

		assert.Equal(t, comment.TypeVideoLink, modified.CommentType)
		require.NotNil(t, modified.ModifyTime)

		fetched, err := service.GetComment(context.Background(), created.CommentID)
		require.NoError(t, err)
		assert.Equal(t, 9, fetched.Grade)
		assert.Equal(t, comment.TypeVideoLink, fetched.CommentType)
	})

	t.Run("foreign_comment_is_not_found", func(t *testing.T) {
		_, err := service.Modify(context.Background(), "Google_2", created.CommentID, 5, "hijack")
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("missing_comment_is_not_found", func(t *testing.T) {
		_, err := service.Modify(context.Background(), "Google_1", 9999, 5, "ghost")
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("deleted_comment_is_not_found", func(t *testing.T) {
		victim := register(t, service, "Google_1", "to be deleted", 5)
		require.NoError(t, service.Delete(context.Background(), victim.CommentID, "Google_1"))

		_, err := service.Modify(context.Background(), "Google_1", victim.CommentID, 5, "necromancy")
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_Delete verifies soft deletion and tombstone visibility.
*/
func TestService_Delete(t *testing.T) {
	service, store := newTestService()

	t.Run("soft_delete_keeps_row_visible_by_id", func(t *testing.T) {
		created := register(t, service, "Google_1", "ephemeral", 5)
		require.NoError(t, service.Delete(context.Background(), created.CommentID, "Google_1"))

		fetched, err := service.GetComment(context.Background(), created.CommentID)
		require.NoError(t, err)
		assert.True(t, fetched.Deleted)
	})

	t.Run("double_delete_is_not_found", func(t *testing.T) {
		created := register(t, service, "Google_1", "once only", 5)
		require.NoError(t, service.Delete(context.Background(), created.CommentID, "Google_1"))

		err := service.Delete(context.Background(), created.CommentID, "Google_1")
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("deleted_reply_decrements_parent", func(t *testing.T) {
		parent := register(t, service, "Google_1", "parent", 5)
		reply, err := service.Register(context.Background(), comment.RegisterInput{
			UserID:          "Google_2",
			CommentText:     "short lived",
			OriginCommentID: &parent.CommentID,
		})
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			fetched, err := store.FindByID(context.Background(), parent.CommentID)
			return err == nil && fetched.ReplyCount == 1
		}, time.Second, 10*time.Millisecond)

		require.NoError(t, service.Delete(context.Background(), reply.CommentID, "Google_2"))

		require.Eventually(t, func() bool {
			fetched, err := store.FindByID(context.Background(), parent.CommentID)
			return err == nil && fetched.ReplyCount == 0
		}, time.Second, 10*time.Millisecond)
	})
}

/*
TestService_ToggleReaction verifies the toggle engine end to end: first
touch, idempotent retraction, and side switching with mutual exclusivity.
*/
func TestService_ToggleReaction(t *testing.T) {
	service, _ := newTestService()
	created := register(t, service, "Google_1", "controversial take", 5)
	ctx := context.Background()

	t.Run("first_like", func(t *testing.T) {
		outcome, err := service.ToggleReaction(ctx, "Google_2", created.CommentID, true)
		require.NoError(t, err)

		assert.Equal(t, 1, outcome.LikeDelta)
		assert.Equal(t, 0, outcome.DislikeDelta)
		assert.Equal(t, 1, outcome.LikeCount)
	})

	t.Run("repeat_like_retracts", func(t *testing.T) {
		outcome, err := service.ToggleReaction(ctx, "Google_2", created.CommentID, true)
		require.NoError(t, err)

		assert.Equal(t, -1, outcome.LikeDelta)
		assert.Equal(t, 0, outcome.DislikeDelta)
		assert.Equal(t, 0, outcome.LikeCount)
	})

	t.Run("dislike_then_switch_to_like", func(t *testing.T) {
		outcome, err := service.ToggleReaction(ctx, "Google_2", created.CommentID, false)
		require.NoError(t, err)
		assert.Equal(t, 0, outcome.LikeDelta)
		assert.Equal(t, 1, outcome.DislikeDelta)

		outcome, err = service.ToggleReaction(ctx, "Google_2", created.CommentID, true)
		require.NoError(t, err)
		assert.Equal(t, 1, outcome.LikeDelta)
		assert.Equal(t, -1, outcome.DislikeDelta)
		assert.Equal(t, 1, outcome.LikeCount)

		// Mutual exclusivity: the dislike must be gone.
		fetched, err := service.GetComment(ctx, created.CommentID)
		require.NoError(t, err)
		assert.Equal(t, 1, fetched.Likes)
		assert.Equal(t, 0, fetched.Dislikes)
	})

	t.Run("missing_comment_is_not_found", func(t *testing.T) {
		_, err := service.ToggleReaction(ctx, "Google_2", 9999, true)
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("reactions_listed_per_user", func(t *testing.T) {
		reactions, err := service.UserReactions(ctx, "Google_2")
		require.NoError(t, err)
		require.Len(t, reactions, 1)
		assert.Equal(t, created.CommentID, reactions[0].CommentID)
		assert.True(t, reactions[0].IsLike)
	})
}

/*
TestService_Report verifies the single-increment report counter.
*/
func TestService_Report(t *testing.T) {
	service, _ := newTestService()
	created := register(t, service, "Google_1", "spammy", 5)
	ctx := context.Background()

	t.Run("first_report_increments", func(t *testing.T) {
		require.NoError(t, service.Report(ctx, "Google_2", created.CommentID, 1))

		fetched, err := service.GetComment(ctx, created.CommentID)
		require.NoError(t, err)
		assert.Equal(t, 1, fetched.ReportCount)
	})

	t.Run("repeat_report_does_not_increment", func(t *testing.T) {
		require.NoError(t, service.Report(ctx, "Google_2", created.CommentID, 3))

		fetched, err := service.GetComment(ctx, created.CommentID)
		require.NoError(t, err)
		assert.Equal(t, 1, fetched.ReportCount)
	})

	t.Run("second_reporter_increments", func(t *testing.T) {
		require.NoError(t, service.Report(ctx, "Google_3", created.CommentID, 1))

		fetched, err := service.GetComment(ctx, created.CommentID)
		require.NoError(t, err)
		assert.Equal(t, 2, fetched.ReportCount)
	})

	t.Run("missing_comment_is_not_found", func(t *testing.T) {
		err := service.Report(ctx, "Google_2", 9999, 1)
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("concurrent_first_reports_count_once", func(t *testing.T) {
		target := register(t, service, "Google_1", "pile-on target", 5)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = service.Report(ctx, "Google_9", target.CommentID, 2)
			}()
		}
		wg.Wait()

		fetched, err := service.GetComment(ctx, target.CommentID)
		require.NoError(t, err)
		assert.Equal(t, 1, fetched.ReportCount)
	})
}

/*
TestService_Listings verifies ordering, windowing, and soft-delete exclusion.
*/
func TestService_Listings(t *testing.T) {
	ctx := context.Background()

	t.Run("window_selects_expected_slice", func(t *testing.T) {
		// 25 comments with strictly increasing register times.
		store := comment.NewMemoryStore()
		for i := 0; i < 25; i++ {
			require.NoError(t, store.Create(ctx, &comment.Comment{
				MediaID:      42,
				UserID:       fmt.Sprintf("Google_%d", i),
				CommentText:  fmt.Sprintf("comment %d", i),
				RegisterTime: time.Date(2026, 3, 1, 0, 0, i, 0, time.UTC),
			}))
		}
		service := comment.NewService(store, store, store, stubPrivileges{}, timeutil.SystemClock{})

		// Page 1 with count 10 over a newest-first listing: items 11..20.
		listed, err := service.ListByMedia(ctx, 0, 42, comment.OrderNewest, comment.TypeFilterAll, pagination.New(10, 1))
		require.NoError(t, err)
		require.Len(t, listed, 10)
		assert.Equal(t, "comment 14", listed[0].CommentText)
		assert.Equal(t, "comment 5", listed[9].CommentText)
	})

	t.Run("all_pages_sentinel_returns_everything", func(t *testing.T) {
		service, _ := newTestService()
		for i := 0; i < 5; i++ {
			register(t, service, "Google_1", fmt.Sprintf("c%d", i), i)
		}

		listed, err := service.ListByUser(ctx, "Google_1", comment.OrderNewest, comment.TypeFilterAll, pagination.New(2, pagination.AllPages), false)
		require.NoError(t, err)
		assert.Len(t, listed, 5)
	})

	t.Run("most_liked_ordering", func(t *testing.T) {
		service, _ := newTestService()
		first := register(t, service, "Google_1", "first", 1)
		second := register(t, service, "Google_1", "second", 2)

		_, err := service.ToggleReaction(ctx, "Google_9", first.CommentID, true)
		require.NoError(t, err)

		listed, err := service.ListByMedia(ctx, 0, 42, comment.OrderMostLiked, comment.TypeFilterAll, pagination.New(10, 0))
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, first.CommentID, listed[0].CommentID)
		assert.Equal(t, second.CommentID, listed[1].CommentID)
	})

	t.Run("highest_grade_ordering", func(t *testing.T) {
		service, _ := newTestService()
		low := register(t, service, "Google_1", "low", 2)
		high := register(t, service, "Google_1", "high", 9)
		_ = low

		listed, err := service.ListByMedia(ctx, 0, 42, comment.OrderHighestGrade, comment.TypeFilterAll, pagination.New(10, 0))
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, high.CommentID, listed[0].CommentID)
	})

	t.Run("deleted_excluded_from_listings", func(t *testing.T) {
		service, _ := newTestService()
		keep := register(t, service, "Google_1", "keep", 5)
		drop := register(t, service, "Google_1", "drop", 5)
		require.NoError(t, service.Delete(ctx, drop.CommentID, "Google_1"))

		listed, err := service.ListByMedia(ctx, 0, 42, comment.OrderNewest, comment.TypeFilterAll, pagination.New(10, 0))
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, keep.CommentID, listed[0].CommentID)
	})

	t.Run("type_filter", func(t *testing.T) {
		service, _ := newTestService()
		register(t, service, "Google_1", "plain", 5)
		video := register(t, service, "Google_1", "https://youtu.be/x", 5)

		listed, err := service.ListByMedia(ctx, 0, 42, comment.OrderNewest, int(comment.TypeVideoLink), pagination.New(10, 0))
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, video.CommentID, listed[0].CommentID)
	})

	t.Run("user_listing_excludes_replies_by_default", func(t *testing.T) {
		service, _ := newTestService()
		parent := register(t, service, "Google_1", "parent", 5)
		_, err := service.Register(ctx, comment.RegisterInput{
			UserID:          "Google_1",
			CommentText:     "my own reply",
			OriginCommentID: &parent.CommentID,
		})
		require.NoError(t, err)

		withoutReplies, err := service.ListByUser(ctx, "Google_1", comment.OrderNewest, comment.TypeFilterAll, pagination.New(10, 0), false)
		require.NoError(t, err)
		assert.Len(t, withoutReplies, 1)

		withReplies, err := service.ListByUser(ctx, "Google_1", comment.OrderNewest, comment.TypeFilterAll, pagination.New(10, 0), true)
		require.NoError(t, err)
		assert.Len(t, withReplies, 2)
	})

	t.Run("replies_oldest_first", func(t *testing.T) {
		service, store := newTestService()
		parent := register(t, service, "Google_1", "parent", 5)

		for i := 0; i < 3; i++ {
			require.NoError(t, store.Create(ctx, &comment.Comment{
				UserID:          "Google_2",
				CommentText:     fmt.Sprintf("reply %d", i),
				OriginCommentID: &parent.CommentID,
				RegisterTime:    time.Date(2026, 3, 1, 0, 0, i, 0, time.UTC),
			}))
		}

		replies, err := service.ListReplies(ctx, parent.CommentID)
		require.NoError(t, err)
		require.Len(t, replies, 3)
		assert.Equal(t, "reply 0", replies[0].CommentText)
		assert.Equal(t, "reply 2", replies[2].CommentText)
	})
}
