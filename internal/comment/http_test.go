// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package comment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelogapp/cinelog/internal/comment"
)

// listEnvelope mirrors the wire shape of a comment listing response.
type listEnvelope struct {
	Data []struct {
		CommentText string `json:"comment_text"`
		CommentType int    `json:"comment_type"`
	} `json:"data"`
}

// getListing issues a GET against the comment routes and decodes the body.
func getListing(t *testing.T, router chi.Router, target string) listEnvelope {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, target, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope listEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

/*
TestHandler_ListByMedia_TypeFilter verifies that the type query parameter
only engages for positive values: zero, negatives, and absence all return
the unfiltered listing.
*/
func TestHandler_ListByMedia_TypeFilter(t *testing.T) {
	service, _ := newTestService()

	register(t, service, "Google_1", "plain text", 7)
	register(t, service, "Google_2", "watch https://youtu.be/dQw4w9WgXcQ", 9)

	router := chi.NewRouter()
	router.Mount("/", comment.NewHandler(service).Routes())

	t.Run("absent_returns_all", func(t *testing.T) {
		envelope := getListing(t, router, "/media/0/42")
		assert.Len(t, envelope.Data, 2)
	})

	t.Run("zero_returns_all", func(t *testing.T) {
		envelope := getListing(t, router, "/media/0/42?type=0")
		require.Len(t, envelope.Data, 2)

		texts := []string{envelope.Data[0].CommentText, envelope.Data[1].CommentText}
		assert.Contains(t, texts, "plain text")
		assert.Contains(t, texts, "watch https://youtu.be/dQw4w9WgXcQ")
	})

	t.Run("negative_returns_all", func(t *testing.T) {
		envelope := getListing(t, router, "/media/0/42?type=-2")
		assert.Len(t, envelope.Data, 2)
	})

	t.Run("positive_filters_to_that_type", func(t *testing.T) {
		envelope := getListing(t, router, "/media/0/42?type=1")
		require.Len(t, envelope.Data, 1)
		assert.Equal(t, int(comment.TypeVideoLink), envelope.Data[0].CommentType)
	})
}
