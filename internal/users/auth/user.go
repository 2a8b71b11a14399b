// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, AuthSession) and the logic for
social sign-in, attendance tracking, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"fmt"
	"time"
)

// # Social Platforms

// Platform identifies the identity provider an account was created through.
type Platform int

// Supported sign-in providers. The numeric values are part of the stored
// user identifier format and must never be reordered.
const (
	PlatformGoogle   Platform = 1
	PlatformApple    Platform = 2
	PlatformKakao    Platform = 3
	PlatformNaver    Platform = 4
	PlatformTwitter  Platform = 5
	PlatformFacebook Platform = 6
	PlatformEMail    Platform = 7
)

// platformNames maps each provider to the prefix used in generated user IDs.
var platformNames = map[Platform]string{
	PlatformGoogle:   "Google",
	PlatformApple:    "Apple",
	PlatformKakao:    "Kakao",
	PlatformNaver:    "Naver",
	PlatformTwitter:  "Twitter",
	PlatformFacebook: "Facebook",
	PlatformEMail:    "EMail",
}

// IsValid reports whether the platform is a known identity provider.
func (platform Platform) IsValid() bool {
	_, ok := platformNames[platform]
	return ok
}

// Name returns the canonical provider name, or an empty string when unknown.
func (platform Platform) Name() string {
	return platformNames[platform]
}

/*
GenerateUserID derives the stable account identifier for a social identity.

Description: The identifier is "<PlatformName>_<platformUserID>", so the same
social identity always resolves to the same account regardless of sign-in order.

Parameters:
  - platform: Platform
  - platformUserID: string

Returns:
  - string: Generated account identifier
  - error: Unknown platform
*/
func GenerateUserID(platform Platform, platformUserID string) (string, error) {
	name := platform.Name()
	if name == "" {
		return "", fmt.Errorf("auth_invalid_platform: %d", platform)
	}
	return fmt.Sprintf("%s_%s", name, platformUserID), nil
}

// # Domain Entities

// User represents a registered member of the Cinelog platform.
type User struct {
	UserID          string    `json:"user_id"`
	Platform        Platform  `json:"platform"`
	DisplayName     string    `json:"display_name"`
	Email           string    `json:"email,omitempty"`
	PasswordHash    string    `json:"-"` // Explicitly omitted from JSON for security.
	SignupTime      time.Time `json:"-"`
	LastSigninTime  time.Time `json:"-"`
	AttendanceCount int       `json:"attendance_count"`
	Deleted         bool      `json:"-"`
}

// AuthSession is the token pair handed to a client after a successful sign-in.
type AuthSession struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"-"` // Delivered via secure cookie, never via body.
	RefreshTokenExpiresAt time.Time `json:"-"`
	User                  *User     `json:"user"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldPlatform       = "platform"
	FieldPlatformUserID = "platform_user_id"
	FieldNickname       = "nickname"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldDisplayName    = "display_name"
	FieldAccessToken    = "access_token"
	FieldUser           = "user"
)
