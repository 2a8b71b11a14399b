// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/users/auth"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

// stubTokenProvider records the last issuance and returns a predictable token.
type stubTokenProvider struct {
	lastUserID string
	lastRole   string
	issued     int
}

func (s *stubTokenProvider) GenerateAccessToken(userID, username, role string, ttl time.Duration) (string, error) {
	s.lastUserID = userID
	s.lastRole = role
	s.issued++
	return fmt.Sprintf("access-token-%d", s.issued), nil
}

// newTestService wires a service against the in-memory store.
func newTestService(now time.Time, adminIDs ...string) (*auth.Service, *auth.MemoryStore, *stubTokenProvider) {
	store := auth.NewMemoryStore()
	provider := &stubTokenProvider{}
	service := auth.NewService(store, store, provider, adminIDs, timeutil.FixedClock{Instant: now})
	return service, store, provider
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

/*
TestGenerateUserID verifies the identifier format per platform.
*/
func TestGenerateUserID(t *testing.T) {
	testCases := []struct {
		name     string
		platform auth.Platform
		uid      string
		want     string
	}{
		{"google", auth.PlatformGoogle, "g-123", "Google_g-123"},
		{"apple", auth.PlatformApple, "a.456", "Apple_a.456"},
		{"kakao", auth.PlatformKakao, "789", "Kakao_789"},
		{"email", auth.PlatformEMail, "someone@example.com", "EMail_someone@example.com"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := auth.GenerateUserID(testCase.platform, testCase.uid)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}

	t.Run("unknown_platform", func(t *testing.T) {
		_, err := auth.GenerateUserID(auth.Platform(99), "x")
		require.Error(t, err)
	})
}

/*
TestService_SignUpOrSignIn covers provisioning and the repeat-visit path.
*/
func TestService_SignUpOrSignIn(t *testing.T) {

	t.Run("provisions_on_first_contact", func(t *testing.T) {
		service, _, provider := newTestService(testNow)

		session, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
			Platform:       auth.PlatformKakao,
			PlatformUserID: "kakao-77",
			Nickname:       "cinephile",
			Email:          "kakao77@example.com",
		})
		require.NoError(t, err)

		assert.Equal(t, "Kakao_kakao-77", session.User.UserID)
		assert.Equal(t, "cinephile", session.User.DisplayName)
		assert.Equal(t, testNow, session.User.SignupTime)
		assert.Equal(t, "access-token-1", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Equal(t, "member", provider.lastRole)
	})

	t.Run("generates_fallback_nickname", func(t *testing.T) {
		service, _, _ := newTestService(testNow)

		session, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
			Platform:       auth.PlatformGoogle,
			PlatformUserID: "g-1",
		})
		require.NoError(t, err)

		require.Len(t, session.User.DisplayName, 8)
		for _, r := range session.User.DisplayName {
			assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'), "nickname rune %q", r)
		}
	})

	t.Run("second_visit_keeps_existing_name", func(t *testing.T) {
		service, _, _ := newTestService(testNow)

		first, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
			Platform:       auth.PlatformNaver,
			PlatformUserID: "n-9",
			Nickname:       "original",
		})
		require.NoError(t, err)

		second, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
			Platform:       auth.PlatformNaver,
			PlatformUserID: "n-9",
			Nickname:       "ignored-on-revisit",
		})
		require.NoError(t, err)

		assert.Equal(t, first.User.UserID, second.User.UserID)
		assert.Equal(t, "original", second.User.DisplayName)
	})

	t.Run("admin_receives_admin_role", func(t *testing.T) {
		service, _, provider := newTestService(testNow, "Google_boss")

		_, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
			Platform:       auth.PlatformGoogle,
			PlatformUserID: "boss",
		})
		require.NoError(t, err)
		assert.Equal(t, "admin", provider.lastRole)
	})

	t.Run("rejects_unknown_platform", func(t *testing.T) {
		service, _, _ := newTestService(testNow)

		_, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
			Platform:       auth.Platform(42),
			PlatformUserID: "x",
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})

	t.Run("rejects_deleted_account", func(t *testing.T) {
		service, _, _ := newTestService(testNow)

		session, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
			Platform:       auth.PlatformTwitter,
			PlatformUserID: "t-1",
		})
		require.NoError(t, err)
		require.NoError(t, service.DeleteUser(context.Background(), session.User.UserID))

		_, err = service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
			Platform:       auth.PlatformTwitter,
			PlatformUserID: "t-1",
		})
		require.Error(t, err)
		assert.Equal(t, 403, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_SignUpOrSignIn_EMail exercises the password-bearing platform.
*/
func TestService_SignUpOrSignIn_EMail(t *testing.T) {
	service, _, _ := newTestService(testNow)

	t.Run("requires_password_on_signup", func(t *testing.T) {
		_, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
			Platform:       auth.PlatformEMail,
			PlatformUserID: "nopass@example.com",
			Email:          "nopass@example.com",
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})

	session, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
		Platform:       auth.PlatformEMail,
		PlatformUserID: "user@example.com",
		Email:          "user@example.com",
		Password:       "correct horse battery",
	})
	require.NoError(t, err)
	require.Equal(t, "EMail_user@example.com", session.User.UserID)

	t.Run("verifies_password_on_return", func(t *testing.T) {
		_, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
			Platform:       auth.PlatformEMail,
			PlatformUserID: "user@example.com",
			Password:       "correct horse battery",
		})
		require.NoError(t, err)
	})

	t.Run("rejects_wrong_password", func(t *testing.T) {
		_, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
			Platform:       auth.PlatformEMail,
			PlatformUserID: "user@example.com",
			Password:       "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, 401, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_SignIn verifies attendance counting across UTC date boundaries.
*/
func TestService_SignIn(t *testing.T) {
	store := auth.NewMemoryStore()
	provider := &stubTokenProvider{}

	signup := time.Date(2026, 3, 1, 23, 50, 0, 0, time.UTC)
	service := auth.NewService(store, store, provider, nil, timeutil.FixedClock{Instant: signup})

	session, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
		Platform:       auth.PlatformApple,
		PlatformUserID: "a-1",
	})
	require.NoError(t, err)
	userID := session.User.UserID

	t.Run("same_utc_date_no_attendance", func(t *testing.T) {
		sameDay := auth.NewService(store, store, provider, nil,
			timeutil.FixedClock{Instant: signup.Add(5 * time.Minute)})
		require.NoError(t, sameDay.SignIn(context.Background(), userID))

		user, err := sameDay.GetUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 0, user.AttendanceCount)
	})

	t.Run("new_utc_date_counts_attendance", func(t *testing.T) {
		nextDay := auth.NewService(store, store, provider, nil,
			timeutil.FixedClock{Instant: signup.Add(15 * time.Minute)}) // crosses midnight UTC
		require.NoError(t, nextDay.SignIn(context.Background(), userID))

		user, err := nextDay.GetUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 1, user.AttendanceCount)
		assert.Equal(t, signup.Add(15*time.Minute), user.LastSigninTime)
	})

	t.Run("unknown_user", func(t *testing.T) {
		service, _, _ := newTestService(testNow)
		err := service.SignIn(context.Background(), "Google_missing")
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_RefreshSession verifies token rotation semantics.
*/
func TestService_RefreshSession(t *testing.T) {
	service, _, _ := newTestService(testNow)

	session, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
		Platform:       auth.PlatformFacebook,
		PlatformUserID: "f-1",
	})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)
	assert.NotEqual(t, session.AccessToken, rotated.AccessToken)

	t.Run("old_token_is_dead_after_rotation", func(t *testing.T) {
		_, err := service.RefreshSession(context.Background(), session.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("logout_revokes_token", func(t *testing.T) {
		require.NoError(t, service.Logout(context.Background(), rotated.RefreshToken))

		_, err := service.RefreshSession(context.Background(), rotated.RefreshToken)
		require.Error(t, err)
	})

	t.Run("logout_is_idempotent", func(t *testing.T) {
		require.NoError(t, service.Logout(context.Background(), rotated.RefreshToken))
	})
}

/*
TestService_UpdateDisplayName verifies screening, uniqueness, and ownership.
*/
func TestService_UpdateDisplayName(t *testing.T) {
	service, _, _ := newTestService(testNow)

	session, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
		Platform:       auth.PlatformGoogle,
		PlatformUserID: "g-1",
		Nickname:       "first",
	})
	require.NoError(t, err)
	userID := session.User.UserID

	_, err = service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
		Platform:       auth.PlatformGoogle,
		PlatformUserID: "g-2",
		Nickname:       "second",
	})
	require.NoError(t, err)

	t.Run("accepts_new_name", func(t *testing.T) {
		require.NoError(t, service.UpdateDisplayName(context.Background(), userID, "fresh name"))

		user, err := service.GetUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, "fresh name", user.DisplayName)
	})

	t.Run("rejects_empty", func(t *testing.T) {
		err := service.UpdateDisplayName(context.Background(), userID, "   ")
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})

	t.Run("rejects_reserved_names", func(t *testing.T) {
		reserved := []string{
			"Unknown User",
			"unknownuser",
			"UNKNOWN  USER",
			"cinelog bot",
			"CineLog_Bot",
			"c i n e l o g",
			"알 수 없는 사용자",
		}
		for _, name := range reserved {
			err := service.UpdateDisplayName(context.Background(), userID, name)
			require.Error(t, err, "name %q should be rejected", name)
			assert.Equal(t, 400, apperr.As(err).HTTPStatus)
		}
	})

	t.Run("rejects_duplicate", func(t *testing.T) {
		err := service.UpdateDisplayName(context.Background(), userID, "second")
		require.Error(t, err)
		assert.Equal(t, 409, apperr.As(err).HTTPStatus)
	})

	t.Run("unknown_user", func(t *testing.T) {
		err := service.UpdateDisplayName(context.Background(), "Google_missing", "whatever")
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_DeleteUser verifies soft deletion and its downstream effects.
*/
func TestService_DeleteUser(t *testing.T) {
	service, _, _ := newTestService(testNow)

	session, err := service.SignUpOrSignIn(context.Background(), auth.SignUpOrSignInInput{
		Platform:       auth.PlatformKakao,
		PlatformUserID: "k-1",
	})
	require.NoError(t, err)
	userID := session.User.UserID

	require.NoError(t, service.DeleteUser(context.Background(), userID))

	t.Run("profile_is_gone", func(t *testing.T) {
		_, err := service.GetUser(context.Background(), userID)
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("signin_rejected", func(t *testing.T) {
		err := service.SignIn(context.Background(), userID)
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})

	t.Run("double_delete_not_found", func(t *testing.T) {
		err := service.DeleteUser(context.Background(), userID)
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_IsElevated verifies the privilege classifier contract.
*/
func TestService_IsElevated(t *testing.T) {
	service, _, _ := newTestService(testNow, "Google_admin", "Apple_root")

	assert.True(t, service.IsElevated("Google_admin"))
	assert.True(t, service.IsElevated("Apple_root"))
	assert.False(t, service.IsElevated("Google_member"))
}
