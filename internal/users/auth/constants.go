// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh token remains valid.
	// Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// GeneratedNicknameLength is the length of the fallback display name
	// assigned when a provider supplies no nickname at provisioning time.
	GeneratedNicknameLength = 8

	// MaxDisplayNameLength bounds user-chosen display names.
	MaxDisplayNameLength = 30
)

// # Reserved Display Names

// bannedDisplayNames lists names that impersonate system actors. The
// comparison is NFKC-normalized, whitespace-stripped, and case-insensitive,
// so "c i n e l o g  bot" is rejected just like "CINELOG_BOT".
var bannedDisplayNames = []string{
	"Unknown User",
	"알 수 없는 사용자",
	"CINELOG",
	"CINELOG BOT",
	"CINELOG_BOT",
	"CINELOG-BOT",
}
