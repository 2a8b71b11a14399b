// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Description: Soft-deleted rows are returned too; the caller decides
		whether a tombstone is acceptable.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, userID string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures (CONFLICT on duplicate display name)
	*/
	Create(context context.Context, user *User) error

	/*
		RecordSignIn stamps the latest sign-in time and, when the UTC date
		changed since the previous sign-in, counts one attendance.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - signinTime: time.Time
		  - attendance: bool

		Returns:
		  - bool: True when a live account row was updated
		  - error: Persistence failures
	*/
	RecordSignIn(context context.Context, userID string, signinTime time.Time, attendance bool) (bool, error)

	/*
		UpdateDisplayName replaces the display name of a live account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - displayName: string

		Returns:
		  - bool: True when a live account row was updated
		  - error: Persistence failures (CONFLICT on duplicate display name)
	*/
	UpdateDisplayName(context context.Context, userID, displayName string) (bool, error)

	/*
		DisplayNameTaken reports whether any account already owns the name.

		Parameters:
		  - context: context.Context
		  - displayName: string

		Returns:
		  - bool: True when the name is in use
		  - error: Database retrieval failures
	*/
	DisplayNameTaken(context context.Context, displayName string) (bool, error)

	/*
		SoftDelete marks the account as deleted without removing the row.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - bool: True when a live account row was marked
		  - error: Persistence failures
	*/
	SoftDelete(context context.Context, userID string) (bool, error)
}

// # Refresh Token Data Access

// RefreshTokenRepository defines the contract for the server-side half of a
// refresh token. Keys are hashes of the opaque client token; values are the
// owning user ID. Expiry is enforced by the store's TTL.
type RefreshTokenRepository interface {

	/*
		Set stores a refresh token hash with its owning user and TTL.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Execution errors
	*/
	Set(context context.Context, tokenHash, userID string, ttl time.Duration) error

	/*
		Get resolves a refresh token hash to its owning user ID.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - string: Owning user ID
		  - error: apperr.NotFound when absent or expired
	*/
	Get(context context.Context, tokenHash string) (string, error)

	/*
		Delete removes a refresh token hash. Deleting an absent token is not
		an error; logout stays idempotent.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Execution errors
	*/
	Delete(context context.Context, tokenHash string) error
}
