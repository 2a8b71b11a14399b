// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package comment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinelogapp/cinelog/internal/comment"
)

/*
TestClassify verifies the text-based comment classification.
*/
func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want comment.Type
	}{
		{"plain_text", "Great movie, loved the soundtrack.", comment.TypePlain},
		{"full_youtube_link", "watch this https://www.youtube.com/watch?v=abc123", comment.TypeVideoLink},
		{"short_youtube_link", "trailer: https://youtu.be/abc123", comment.TypeVideoLink},
		{"uppercase_host", "HTTPS://WWW.YOUTUBE.COM/watch?v=abc", comment.TypeVideoLink},
		{"link_mid_sentence", "before https://youtu.be/x after", comment.TypeVideoLink},
		{"bare_mention_of_youtube", "I saw it on youtube yesterday", comment.TypePlain},
		{"other_video_host", "https://vimeo.com/12345", comment.TypePlain},
		{"empty_text", "", comment.TypePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, comment.Classify(tt.text))
		})
	}
}

/*
TestClassify_Deterministic verifies repeated classification of the same text
always lands on the same type.
*/
func TestClassify_Deterministic(t *testing.T) {
	text := "rewatch https://youtu.be/abc123 tonight"
	first := comment.Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, comment.Classify(text))
	}
}

/*
TestTransition exercises all six rows of the reaction state machine.
*/
func TestTransition(t *testing.T) {
	like := &comment.Reaction{IsLike: true}
	dislike := &comment.Reaction{IsLike: false}

	tests := []struct {
		name             string
		existing         *comment.Reaction
		wantsLike        bool
		wantLikeDelta    int
		wantDislikeDelta int
	}{
		{"none_then_like", nil, true, 1, 0},
		{"none_then_dislike", nil, false, 0, 1},
		{"like_then_like_retracts", like, true, -1, 0},
		{"like_then_dislike_switches", like, false, -1, 1},
		{"dislike_then_dislike_retracts", dislike, false, 0, -1},
		{"dislike_then_like_switches", dislike, true, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			likeDelta, dislikeDelta := comment.Transition(tt.existing, tt.wantsLike)

			assert.Equal(t, tt.wantLikeDelta, likeDelta)
			assert.Equal(t, tt.wantDislikeDelta, dislikeDelta)
		})
	}
}

/*
TestOrder_IsValid verifies order value recognition.
*/
func TestOrder_IsValid(t *testing.T) {
	assert.True(t, comment.OrderNewest.IsValid())
	assert.True(t, comment.OrderMostLiked.IsValid())
	assert.True(t, comment.OrderHighestGrade.IsValid())
	assert.False(t, comment.Order(3).IsValid())
	assert.False(t, comment.Order(-1).IsValid())
}
