// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package ticket manages the movie ticket stubs users photograph and keep.

Each ticket couples a metadata row in PostgreSQL with an image in the
S3-compatible blob store. Downloads are handed out as short-lived presigned
URLs so the bucket never needs public access.
*/
package ticket

import (
	"context"
	"io"
	"time"
)

// # Ordering

// Order selects the sort key for ticket listings.
type Order int

const (
	// OrderWatchedTime sorts by when the media was watched, newest first.
	OrderWatchedTime Order = 0

	// OrderUpdateTime sorts by when the ticket was registered, newest first.
	OrderUpdateTime Order = 1
)

// # Core Entities

// Ticket is one archived ticket stub.
type Ticket struct {
	TicketID        string    `json:"ticket_id"`
	MediaType       int       `json:"media_type"`
	MediaID         int       `json:"media_id"`
	UserID          string    `json:"user_id"`
	TicketImagePath string    `json:"ticket_image_path"`
	WatchedTime     time.Time `json:"-"`
	UpdateTime      time.Time `json:"-"`
}

// # Collaborator Contracts

// BlobStore is the slice of object storage the ticket domain needs.
// The platform objstore package provides the production implementation.
type BlobStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
