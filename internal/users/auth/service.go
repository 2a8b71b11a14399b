// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/sec"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

// # Contracts

// TokenProvider abstracts access-token generation (JWT signing).
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, ttl time.Duration) (string, error)
}

// # Service Definition

// Service orchestrates account provisioning, sign-in, and session issuance.
type Service struct {
	userRepository         UserRepository
	refreshTokenRepository RefreshTokenRepository
	tokenProvider          TokenProvider
	adminIDs               map[string]struct{}
	clock                  timeutil.Clock
}

/*
NewService wires the authentication service.

Parameters:
  - userRepository: UserRepository
  - refreshTokenRepository: RefreshTokenRepository
  - tokenProvider: TokenProvider
  - adminUserIDs: []string (accounts granted elevated privileges)
  - clock: timeutil.Clock

Returns:
  - *Service: Ready-to-use instance
*/
func NewService(
	userRepository UserRepository,
	refreshTokenRepository RefreshTokenRepository,
	tokenProvider TokenProvider,
	adminUserIDs []string,
	clock timeutil.Clock,
) *Service {

	adminIDs := make(map[string]struct{}, len(adminUserIDs))
	for _, id := range adminUserIDs {
		adminIDs[id] = struct{}{}
	}

	return &Service{
		userRepository:         userRepository,
		refreshTokenRepository: refreshTokenRepository,
		tokenProvider:          tokenProvider,
		adminIDs:               adminIDs,
		clock:                  clock,
	}
}

// IsElevated reports whether the account belongs to the configured admin list.
// It satisfies the privilege classifier contract of the comment service.
func (service *Service) IsElevated(userID string) bool {
	_, ok := service.adminIDs[userID]
	return ok
}

// # Sign-Up / Sign-In

// SignUpOrSignInInput carries the identity asserted by a social provider.
type SignUpOrSignInInput struct {
	Platform       Platform
	PlatformUserID string
	Nickname       string
	Email          string
	Password       string // EMail platform only.
}

/*
SignUpOrSignIn resolves a social identity to an account and issues a session.

Description: The account is provisioned on first contact; a random lowercase
nickname is assigned when the provider supplies none. Soft-deleted accounts are
rejected. For the EMail platform the password is verified against the stored
bcrypt hash (and hashed on first contact).

Parameters:
  - context: context.Context
  - input: SignUpOrSignInInput

Returns:
  - *AuthSession: Access/refresh token pair and the resolved user
  - err: FORBIDDEN (deleted account), UNAUTHORIZED (bad password), or storage failures
*/
func (service *Service) SignUpOrSignIn(context context.Context, input SignUpOrSignInInput) (*AuthSession, error) {

	// ── 1. Resolve the stable account identifier ─────────────────────────
	userID, err := GenerateUserID(input.Platform, input.PlatformUserID)
	if err != nil {
		return nil, apperr.ValidationError("Unknown sign-in platform")
	}

	// ── 2. Look up the account; provision on first contact ──────────────
	user, err := service.userRepository.FindByID(context, userID)
	switch {
	case err == nil:
		if user.Deleted {
			return nil, apperr.Forbidden("Account has been deleted")
		}

		// EMail accounts re-prove ownership with their password.
		if input.Platform == PlatformEMail {
			if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
				return nil, apperr.Unauthorized("Invalid credentials")
			}
		}

	case apperr.IsNotFound(err):
		user, err = service.provision(context, userID, input)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	// ── 3. Issue the token pair ──────────────────────────────────────────
	return service.issueSession(context, user)
}

// provision creates the account row for a first-contact social identity.
func (service *Service) provision(context context.Context, userID string, input SignUpOrSignInInput) (*User, error) {

	nickname := strings.TrimSpace(input.Nickname)
	if nickname == "" {
		generated, err := generateRandomNickname()
		if err != nil {
			return nil, fmt.Errorf("auth_service_generate_nickname_failed: %w", err)
		}
		nickname = generated
	}

	passwordHash := ""
	if input.Platform == PlatformEMail {
		if input.Password == "" {
			return nil, apperr.ValidationError("Password is required for email sign-up")
		}

		hashed, err := sec.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("auth_service_hash_password_failed: %w", err)
		}
		passwordHash = hashed
	}

	now := service.clock.Now()
	user := &User{
		UserID:         userID,
		Platform:       input.Platform,
		DisplayName:    nickname,
		Email:          input.Email,
		PasswordHash:   passwordHash,
		SignupTime:     now,
		LastSigninTime: now,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_provision_failed: %w", err)
	}

	return user, nil
}

/*
SignIn stamps a returning visit for an already-provisioned account.

Description: Updates last_signin_time and counts one attendance when the UTC
calendar date differs from the previous sign-in. Missing or soft-deleted
accounts yield the same NOT_FOUND signal.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: apperr.NotFound or storage failures
*/
func (service *Service) SignIn(context context.Context, userID string) error {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}
	if user.Deleted {
		return apperr.NotFound("User")
	}

	now := service.clock.Now()
	attendance := timeutil.Date(user.LastSigninTime) != timeutil.Date(now)

	updated, err := service.userRepository.RecordSignIn(context, userID, now, attendance)
	if err != nil {
		return fmt.Errorf("auth_service_signin_record_failed: %w", err)
	}
	if !updated {
		return apperr.NotFound("User")
	}

	return nil
}

// # Session Issuance

// issueSession generates the access/refresh token pair for a live account.
func (service *Service) issueSession(context context.Context, user *User) (*AuthSession, error) {

	// Role is derived from the configured admin list, never stored.
	role := sec.RoleMember
	if service.IsElevated(user.UserID) {
		role = sec.RoleAdmin
	}

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.UserID, user.DisplayName, string(role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Only the hash crosses the trust boundary into the session store.
	expiresAt := service.clock.Now().Add(RefreshTokenTTL)
	if err := service.refreshTokenRepository.Set(context, sec.HashToken(refreshToken), user.UserID, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_store_failed: %w", err)
	}

	return &AuthSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

/*
RefreshSession rotates a refresh token and issues a fresh token pair.

Description: The presented token is resolved, revoked, and replaced in one
flow, so a stolen token can be replayed at most once.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *AuthSession: New access/refresh token pair
  - err: apperr.NotFound (invalid or expired token) or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*AuthSession, error) {

	tokenHash := sec.HashToken(refreshToken)

	// Resolve the owner before anything else.
	userID, err := service.refreshTokenRepository.Get(context, tokenHash)
	if err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	if user.Deleted {
		return nil, apperr.Forbidden("Account has been deleted")
	}

	// Rotation: the old token dies the moment it is used.
	if err := service.refreshTokenRepository.Delete(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_rotation_failed: %w", err)
	}

	return service.issueSession(context, user)
}

/*
Logout revokes the presented refresh token.

Description: Idempotent; logging out with an unknown token succeeds silently.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Storage failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	if err := service.refreshTokenRepository.Delete(context, sec.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Profile Management

/*
GetUser returns the live account with the given ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - err: apperr.NotFound (absent or soft-deleted) or retrieval failures
*/
func (service *Service) GetUser(context context.Context, userID string) (*User, error) {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	if user.Deleted {
		return nil, apperr.NotFound("User")
	}

	return user, nil
}

/*
UpdateDisplayName replaces the account's public display name.

Description: The name must be non-empty, outside the reserved list, and
globally unique. Reserved-name screening normalizes with NFKC, strips all
whitespace, and lowercases before comparing, so spacing and width tricks
cannot smuggle a reserved name through.

Parameters:
  - context: context.Context
  - userID: string
  - displayName: string

Returns:
  - err: VALIDATION_ERROR, CONFLICT, apperr.NotFound, or storage failures
*/
func (service *Service) UpdateDisplayName(context context.Context, userID, displayName string) error {

	// ── 1. Screen the requested name ─────────────────────────────────────
	if strings.TrimSpace(displayName) == "" {
		return apperr.ValidationError("Display name cannot be empty")
	}

	normalized := normalizeDisplayName(displayName)
	for _, banned := range bannedDisplayNames {
		if normalized == normalizeDisplayName(banned) {
			return apperr.ValidationError("Display name is not allowed")
		}
	}

	// ── 2. Enforce global uniqueness ─────────────────────────────────────
	taken, err := service.userRepository.DisplayNameTaken(context, displayName)
	if err != nil {
		return fmt.Errorf("auth_service_display_name_check_failed: %w", err)
	}
	if taken {
		return apperr.Conflict("Display name already in use")
	}

	// ── 3. Apply to the live account ─────────────────────────────────────
	updated, err := service.userRepository.UpdateDisplayName(context, userID, displayName)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound("User")
	}

	return nil
}

/*
DeleteUser soft-deletes the account.

Description: The row is kept as a tombstone; a deleted identity can never
sign in again and its user ID is never reissued.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: apperr.NotFound or storage failures
*/
func (service *Service) DeleteUser(context context.Context, userID string) error {

	deleted, err := service.userRepository.SoftDelete(context, userID)
	if err != nil {
		return fmt.Errorf("auth_service_delete_failed: %w", err)
	}
	if !deleted {
		return apperr.NotFound("User")
	}

	return nil
}

// # Helpers

// nicknameAlphabet is the character set for generated fallback nicknames.
const nicknameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// generateRandomNickname produces a random lowercase fallback display name.
func generateRandomNickname() (string, error) {

	result := make([]byte, GeneratedNicknameLength)
	max := big.NewInt(int64(len(nicknameAlphabet)))

	for i := range result {
		index, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = nicknameAlphabet[index.Int64()]
	}

	return string(result), nil
}

// normalizeDisplayName folds a name for reserved-list comparison:
// NFKC normalization, all whitespace removed, lowercased.
func normalizeDisplayName(name string) string {

	normalized := norm.NFKC.String(name)

	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, normalized)

	return strings.ToLower(stripped)
}
