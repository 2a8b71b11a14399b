// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package ocr_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelogapp/cinelog/internal/ocr"
	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

// fakeUsage is an in-memory usage repository.
type fakeUsage struct {
	mu      sync.Mutex
	buckets map[int]int
	history []*ocr.HistoryEntry
}

func newFakeUsage() *fakeUsage {
	return &fakeUsage{buckets: make(map[int]int)}
}

func (f *fakeUsage) Consumed(_ context.Context, yearMonth int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets[yearMonth], nil
}

func (f *fakeUsage) Increment(_ context.Context, yearMonth int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[yearMonth]++
	return nil
}

func (f *fakeUsage) RecordHistory(_ context.Context, entry *ocr.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, entry)
	return nil
}

// fakeVendor returns canned results or a failure.
type fakeVendor struct {
	uid     string
	results []ocr.Result
	err     error
	calls   int
}

func (f *fakeVendor) Recognize(_ context.Context, _ []byte) (string, []ocr.Result, error) {
	f.calls++
	return f.uid, f.results, f.err
}

// march2026 pins the quota bucket to 202603.
var march2026 = timeutil.FixedClock{Instant: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}

/*
TestService_Recognize verifies the check-call-settle quota flow.
*/
func TestService_Recognize(t *testing.T) {
	ctx := context.Background()
	image := []byte("jpeg-bytes")

	t.Run("success_consumes_and_records", func(t *testing.T) {
		usage := newFakeUsage()
		vendor := &fakeVendor{uid: "req-1", results: []ocr.Result{{Text: "CINEMA 7", Confidence: 0.98}}}
		service := ocr.NewService(usage, vendor, march2026, 10)

		results, err := service.Recognize(ctx, "Google_1", image)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "CINEMA 7", results[0].Text)

		assert.Equal(t, 1, usage.buckets[202603])
		require.Len(t, usage.history, 1)
		assert.True(t, usage.history[0].Succeeded)
		assert.Equal(t, "req-1", usage.history[0].OCRUID)
	})

	t.Run("vendor_failure_still_consumes", func(t *testing.T) {
		usage := newFakeUsage()
		vendor := &fakeVendor{err: errors.New("vendor down")}
		service := ocr.NewService(usage, vendor, march2026, 10)

		_, err := service.Recognize(ctx, "Google_1", image)
		require.Error(t, err)
		assert.Equal(t, 503, apperr.As(err).HTTPStatus)

		assert.Equal(t, 1, usage.buckets[202603])
		require.Len(t, usage.history, 1)
		assert.False(t, usage.history[0].Succeeded)
	})

	t.Run("exhausted_quota_blocks_before_vendor", func(t *testing.T) {
		usage := newFakeUsage()
		usage.buckets[202603] = 10
		vendor := &fakeVendor{}
		service := ocr.NewService(usage, vendor, march2026, 10)

		_, err := service.Recognize(ctx, "Google_1", image)
		require.Error(t, err)
		assert.Equal(t, 429, apperr.As(err).HTTPStatus)
		assert.Zero(t, vendor.calls)
		assert.Empty(t, usage.history)
	})

	t.Run("zero_quota_always_blocks", func(t *testing.T) {
		usage := newFakeUsage()
		vendor := &fakeVendor{}
		service := ocr.NewService(usage, vendor, march2026, 0)

		_, err := service.Recognize(ctx, "Google_1", image)
		require.Error(t, err)
		assert.Equal(t, 429, apperr.As(err).HTTPStatus)
		assert.Zero(t, vendor.calls)
	})
}

/*
TestHTTPClient_Recognize verifies the wire protocol against a stub vendor.
*/
func TestHTTPClient_Recognize(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "secret-key", request.Header.Get("X-OCR-SECRET"))
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var payload map[string]any
			require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
			images, ok := payload["images"].([]any)
			require.True(t, ok)
			require.Len(t, images, 1)

			_ = json.NewEncoder(writer).Encode(map[string]any{
				"requestId": "vendor-uid-1",
				"images": []map[string]any{{
					"inferResult": "SUCCESS",
					"fields": []map[string]any{
						{"inferText": "MEGAPLEX", "inferConfidence": 0.99},
						{"inferText": "2026-02-14", "inferConfidence": 0.87},
					},
				}},
			})
		}))
		defer server.Close()

		client := ocr.NewHTTPClient(server.URL, "secret-key")
		uid, results, err := client.Recognize(context.Background(), []byte("jpeg"))
		require.NoError(t, err)

		assert.Equal(t, "vendor-uid-1", uid)
		require.Len(t, results, 2)
		assert.Equal(t, "MEGAPLEX", results[0].Text)
		assert.InDelta(t, 0.99, results[0].Confidence, 0.001)
	})

	t.Run("non_200_status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := ocr.NewHTTPClient(server.URL, "wrong-key")
		_, _, err := client.Recognize(context.Background(), []byte("jpeg"))
		require.Error(t, err)
	})

	t.Run("failed_inference", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]any{
				"requestId": "vendor-uid-2",
				"images":    []map[string]any{{"inferResult": "FAILURE"}},
			})
		}))
		defer server.Close()

		client := ocr.NewHTTPClient(server.URL, "secret-key")
		uid, _, err := client.Recognize(context.Background(), []byte("jpeg"))
		require.Error(t, err)
		assert.Equal(t, "vendor-uid-2", uid)
	})
}
