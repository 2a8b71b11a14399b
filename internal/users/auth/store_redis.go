// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/constants"
)

// RedisRefreshTokenRepository implements [RefreshTokenRepository] using Redis.
type RedisRefreshTokenRepository struct {
	client *redis.Client
}

// NewRefreshTokenRepository creates a new Redis-backed RefreshTokenRepository.
func NewRefreshTokenRepository(client *redis.Client) *RedisRefreshTokenRepository {
	return &RedisRefreshTokenRepository{client: client}
}

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
func (repository *RedisRefreshTokenRepository) Set(context context.Context, tokenHash, userID string, ttl time.Duration) error {

	key := constants.RedisPrefixRefreshToken + tokenHash

	// Set the token with TTL
	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Get resolves a refresh token hash to its owning user ID.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - string: Owning user ID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisRefreshTokenRepository) Get(context context.Context, tokenHash string) (string, error) {

	key := constants.RedisPrefixRefreshToken + tokenHash

	// Get the token from Redis
	userID, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Refresh token is invalid or expired")
		}
		return "", fmt.Errorf("redis_refresh_token_get_failed: %w", err)
	}

	return userID, nil
}

/*
Delete removes a refresh token hash.

Description: Deleting an absent token is not an error; logout stays idempotent.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Execution errors
*/
func (repository *RedisRefreshTokenRepository) Delete(context context.Context, tokenHash string) error {

	key := constants.RedisPrefixRefreshToken + tokenHash

	// Delete the token from Redis
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_delete_failed: %w", err)
	}

	return nil
}
