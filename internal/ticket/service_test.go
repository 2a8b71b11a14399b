// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package ticket_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/ticket"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

// fakeRepo is an in-memory ticket repository.
type fakeRepo struct {
	mu      sync.Mutex
	rows    map[string]*ticket.Ticket
	failing bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]*ticket.Ticket)}
}

func (r *fakeRepo) Create(_ context.Context, t *ticket.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errors.New("insert failed")
	}
	copied := *t
	r.rows[t.TicketID] = &copied
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, userID, ticketID string) (*ticket.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[ticketID]
	if !ok || row.UserID != userID {
		return nil, apperr.NotFound("Ticket")
	}
	copied := *row
	return &copied, nil
}

func (r *fakeRepo) Delete(_ context.Context, userID, ticketID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[ticketID]
	if !ok || row.UserID != userID {
		return false, nil
	}
	delete(r.rows, ticketID)
	return true, nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID string, _ ticket.Order) ([]*ticket.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ticket.Ticket
	for _, row := range r.rows {
		if row.UserID == userID {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeBlobs records uploads and removals.
type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: make(map[string][]byte)}
}

func (b *fakeBlobs) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	b.objects[key] = data
	return nil
}

func (b *fakeBlobs) Remove(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *fakeBlobs) PresignedGetURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://blobs.example/%s?expires=%d", key, int(expiry.Seconds())), nil
}

func newTestService() (*ticket.Service, *fakeRepo, *fakeBlobs) {
	repo := newFakeRepo()
	blobs := newFakeBlobs()
	clock := timeutil.FixedClock{Instant: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return ticket.NewService(repo, blobs, clock), repo, blobs
}

/*
TestService_Register verifies the image-then-row registration flow.
*/
func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores_blob_and_row", func(t *testing.T) {
		service, repo, blobs := newTestService()

		created, err := service.Register(ctx, ticket.RegisterInput{
			MediaType:   0,
			MediaID:     7,
			UserID:      "Google_1",
			WatchedTime: time.Date(2026, 2, 14, 19, 30, 0, 0, time.UTC),
			Image:       strings.NewReader("jpeg-bytes"),
			ImageSize:   9,
			ContentType: "image/jpeg",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, created.TicketID)
		assert.Contains(t, created.TicketImagePath, "tickets/Google_1/")

		_, hasBlob := blobs.objects[created.TicketImagePath]
		assert.True(t, hasBlob)
		_, hasRow := repo.rows[created.TicketID]
		assert.True(t, hasRow)
	})

	t.Run("failed_insert_cleans_up_blob", func(t *testing.T) {
		service, repo, blobs := newTestService()
		repo.failing = true

		_, err := service.Register(ctx, ticket.RegisterInput{
			UserID: "Google_1",
			Image:  strings.NewReader("jpeg-bytes"),
		})
		require.Error(t, err)
		assert.Empty(t, blobs.objects)
	})
}

/*
TestService_Unregister verifies blob-first removal and ownership.
*/
func TestService_Unregister(t *testing.T) {
	ctx := context.Background()
	service, repo, blobs := newTestService()

	created, err := service.Register(ctx, ticket.RegisterInput{
		UserID: "Google_1",
		Image:  strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err)

	t.Run("foreign_ticket_is_not_found", func(t *testing.T) {
		err := service.Unregister(ctx, "Google_2", created.TicketID)
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("owner_removes_blob_and_row", func(t *testing.T) {
		require.NoError(t, service.Unregister(ctx, "Google_1", created.TicketID))
		assert.Empty(t, blobs.objects)
		assert.Empty(t, repo.rows)
	})
}

/*
TestService_DownloadURL verifies presign expiry clamping.
*/
func TestService_DownloadURL(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService()

	created, err := service.Register(ctx, ticket.RegisterInput{
		UserID: "Google_1",
		Image:  strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		expireSecs int
		wantSuffix string
	}{
		{"zero_uses_default", 0, "expires=300"},
		{"below_minimum_clamped", 3, "expires=10"},
		{"above_maximum_clamped", 99999, "expires=3600"},
		{"in_range_passes_through", 120, "expires=120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := service.DownloadURL(ctx, "Google_1", created.TicketID, tt.expireSecs)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(url, tt.wantSuffix), url)
		})
	}

	t.Run("missing_ticket_is_not_found", func(t *testing.T) {
		_, err := service.DownloadURL(ctx, "Google_1", "nope", 0)
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})
}
