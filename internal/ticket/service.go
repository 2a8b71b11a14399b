// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package ticket

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cinelogapp/cinelog/internal/platform/ctxutil"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
	"github.com/cinelogapp/cinelog/pkg/uuid"
)

// Presign expiry bounds, in seconds.
const (
	minDownloadExpiry     = 10
	maxDownloadExpiry     = 3600
	defaultDownloadExpiry = 300
)

// Service orchestrates ticket registration, removal, and downloads.
type Service struct {
	repo  Repository
	blobs BlobStore
	clock timeutil.Clock
}

// NewService constructs a new [Service].
func NewService(repo Repository, blobs BlobStore, clock timeutil.Clock) *Service {
	return &Service{repo: repo, blobs: blobs, clock: clock}
}

// RegisterInput carries the fields of a new ticket.
type RegisterInput struct {
	MediaType   int
	MediaID     int
	UserID      string
	WatchedTime time.Time
	Image       io.Reader
	ImageSize   int64
	ContentType string
}

/*
Register archives one ticket: image into the blob store, metadata into Postgres.

Description: The image is uploaded first under a user-scoped key. If the
metadata insert then fails, the freshly uploaded blob is removed on a
best-effort basis so the bucket doesn't accumulate orphans.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Ticket: The persisted entity with its generated identity
  - error: Upload or storage failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Ticket, error) {
	ticketID := uuid.New()
	imagePath := fmt.Sprintf("tickets/%s/%s.jpg", input.UserID, ticketID)

	if err := service.blobs.Upload(context, imagePath, input.Image, input.ImageSize, input.ContentType); err != nil {
		return nil, err
	}

	ticket := &Ticket{
		TicketID:        ticketID,
		MediaType:       input.MediaType,
		MediaID:         input.MediaID,
		UserID:          input.UserID,
		TicketImagePath: imagePath,
		WatchedTime:     input.WatchedTime.UTC(),
		UpdateTime:      service.clock.Now(),
	}

	if err := service.repo.Create(context, ticket); err != nil {
		// Orphan cleanup; the insert failure is the error that matters.
		if removeErr := service.blobs.Remove(context, imagePath); removeErr != nil {
			ctxutil.GetLogger(context).Error("ticket_orphan_cleanup_failed",
				slog.String("path", imagePath),
				slog.String("error", removeErr.Error()),
			)
		}
		return nil, err
	}

	return ticket, nil
}

/*
Unregister removes a ticket and its stored image.

Description: The blob is removed first, then the metadata row. A blob
removal failure aborts the operation so the row keeps pointing at a real
object; a row that vanished between the two steps is only logged.

Parameters:
  - context: context.Context
  - userID: string
  - ticketID: string

Returns:
  - error: apperr.NotFound, blob or storage failures
*/
func (service *Service) Unregister(context context.Context, userID, ticketID string) error {
	ticket, err := service.repo.FindByID(context, userID, ticketID)
	if err != nil {
		return err
	}

	if err := service.blobs.Remove(context, ticket.TicketImagePath); err != nil {
		return err
	}

	removed, err := service.repo.Delete(context, userID, ticketID)
	if err != nil {
		return err
	}
	if !removed {
		ctxutil.GetLogger(context).Warn("ticket_row_vanished_after_blob_removal",
			slog.String("ticket_id", ticketID),
		)
	}

	return nil
}

/*
List returns the caller's tickets under the given ordering.

Parameters:
  - context: context.Context
  - userID: string
  - order: Order (Unrecognised values fall back to watched time)

Returns:
  - []*Ticket: Ordered slice
  - error: Storage errors
*/
func (service *Service) List(context context.Context, userID string, order Order) ([]*Ticket, error) {
	if order != OrderUpdateTime {
		order = OrderWatchedTime
	}
	return service.repo.ListByUser(context, userID, order)
}

/*
DownloadURL returns a short-lived presigned GET URL for a ticket image.

Parameters:
  - context: context.Context
  - userID: string
  - ticketID: string
  - expireSecs: int (Clamped to [10, 3600]; 0 means the default 300)

Returns:
  - string: Presigned URL
  - error: apperr.NotFound, presign failures
*/
func (service *Service) DownloadURL(context context.Context, userID, ticketID string, expireSecs int) (string, error) {
	ticket, err := service.repo.FindByID(context, userID, ticketID)
	if err != nil {
		return "", err
	}

	if expireSecs <= 0 {
		expireSecs = defaultDownloadExpiry
	}
	if expireSecs < minDownloadExpiry {
		expireSecs = minDownloadExpiry
	}
	if expireSecs > maxDownloadExpiry {
		expireSecs = maxDownloadExpiry
	}

	return service.blobs.PresignedGetURL(context, ticket.TicketImagePath, time.Duration(expireSecs)*time.Second)
}
