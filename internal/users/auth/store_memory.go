// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
)

// # In-Memory Store

// MemoryStore is a development and test implementation of the auth
// repositories. Refresh tokens honor their TTL against the wall clock.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User
	// tokens is keyed token hash -> owner + expiry
	tokens map[string]memoryToken
}

type memoryToken struct {
	userID    string
	expiresAt time.Time
}

// NewMemoryStore constructs an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]*User),
		tokens: make(map[string]memoryToken),
	}
}

var (
	_ UserRepository         = (*MemoryStore)(nil)
	_ RefreshTokenRepository = (*MemoryStore)(nil)
)

// cloneUser returns a defensive copy so callers can't mutate store state.
func cloneUser(user *User) *User {
	copied := *user
	return &copied
}

// FindByID returns the account with the given ID, tombstones included.
func (store *MemoryStore) FindByID(_ context.Context, userID string) (*User, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	user, ok := store.users[userID]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return cloneUser(user), nil
}

// Create persists a brand-new user account.
func (store *MemoryStore) Create(_ context.Context, user *User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.users {
		if existing.DisplayName == user.DisplayName {
			return apperr.Conflict("Resource already exists")
		}
	}

	store.users[user.UserID] = cloneUser(user)
	return nil
}

// RecordSignIn stamps the sign-in time and optionally counts attendance.
func (store *MemoryStore) RecordSignIn(_ context.Context, userID string, signinTime time.Time, attendance bool) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[userID]
	if !ok || user.Deleted {
		return false, nil
	}

	user.LastSigninTime = signinTime
	if attendance {
		user.AttendanceCount++
	}
	return true, nil
}

// UpdateDisplayName replaces the display name of a live account.
func (store *MemoryStore) UpdateDisplayName(_ context.Context, userID, displayName string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[userID]
	if !ok || user.Deleted {
		return false, nil
	}

	for id, existing := range store.users {
		if id != userID && existing.DisplayName == displayName {
			return false, apperr.Conflict("Resource already exists")
		}
	}

	user.DisplayName = displayName
	return true, nil
}

// DisplayNameTaken reports whether any account already owns the name.
func (store *MemoryStore) DisplayNameTaken(_ context.Context, displayName string) (bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	for _, user := range store.users {
		if user.DisplayName == displayName {
			return true, nil
		}
	}
	return false, nil
}

// SoftDelete marks the account as deleted without removing the row.
func (store *MemoryStore) SoftDelete(_ context.Context, userID string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[userID]
	if !ok || user.Deleted {
		return false, nil
	}

	user.Deleted = true
	return true, nil
}

// Set stores a refresh token hash with its owner and TTL.
func (store *MemoryStore) Set(_ context.Context, tokenHash, userID string, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.tokens[tokenHash] = memoryToken{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get resolves a refresh token hash to its owning user ID.
func (store *MemoryStore) Get(_ context.Context, tokenHash string) (string, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	token, ok := store.tokens[tokenHash]
	if !ok || time.Now().After(token.expiresAt) {
		return "", apperr.NotFound("Refresh token is invalid or expired")
	}
	return token.userID, nil
}

// Delete removes a refresh token hash. Absent tokens are ignored.
func (store *MemoryStore) Delete(_ context.Context, tokenHash string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.tokens, tokenHash)
	return nil
}
