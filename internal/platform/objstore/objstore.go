// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package objstore provides a managed S3-compatible object storage client.

It backs binary payloads that don't belong in PostgreSQL, most notably the
ticket images captured by the mobile apps. Downloads are served to clients
via short-lived presigned URLs so the bucket itself stays private.
*/
package objstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// pingTimeout is the maximum duration for a startup health check.
const pingTimeout = 3 * time.Second

// Store wraps a minio client bound to a single bucket.
type Store struct {
	client *minio.Client
	bucket string
}

// Config holds the connection parameters for the object store.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// New creates a [Store] and validates connectivity with a bucket existence check.
//
// # Parameters
//   - ctx: Context for the initial health check.
//   - cfg: Endpoint, credentials, and target bucket.
//   - logger: Structured logger for connection events.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("objstore: invalid configuration: %w", err)
	}

	store := &Store{client: client, bucket: cfg.Bucket}

	// Validate connectivity immediately at startup.
	if err := store.Ping(ctx); err != nil {
		return nil, err
	}

	logger.Info("object store connected",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("bucket", cfg.Bucket),
	)

	return store, nil
}

// Ping verifies that the bucket is reachable and exists.
func (s *Store) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	exists, err := s.client.BucketExists(pingCtx, s.bucket)
	if err != nil {
		return fmt.Errorf("objstore: health check failed: %w", err)
	}
	if !exists {
		return fmt.Errorf("objstore: bucket %q does not exist", s.bucket)
	}

	return nil
}

// Upload streams an object into the bucket under the given key.
func (s *Store) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("objstore: upload %q failed: %w", key, err)
	}
	return nil
}

// Remove deletes an object from the bucket. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("objstore: remove %q failed: %w", key, err)
	}
	return nil
}

// PresignedGetURL returns a time-limited download URL for an object.
func (s *Store) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("objstore: presign %q failed: %w", key, err)
	}
	return signed.String(), nil
}
