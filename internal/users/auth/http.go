// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle—from social account
provisioning to session rotation and account removal.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Handles JWT orchestration and refresh token cookie injection.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/constants"
	"github.com/cinelogapp/cinelog/internal/platform/middleware"
	requestutil "github.com/cinelogapp/cinelog/internal/platform/request"
	"github.com/cinelogapp/cinelog/internal/platform/respond"
	"github.com/cinelogapp/cinelog/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (social sign-in, session rotation, profile naming, account removal).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signin  : Resolves a social identity, provisioning on first contact.
//   - POST /refresh : Rotates the refresh token pair.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signin", handler.signIn)
	router.Post("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/attendance", handler.attendance)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
		r.Patch("/me/display-name", handler.updateDisplayName)
		r.Delete("/me", handler.deleteAccount)
	})

	return router
}

// # Request Payloads

type signInRequest struct {
	Platform       int    `json:"platform"`
	PlatformUserID string `json:"platform_user_id"`
	Nickname       string `json:"nickname"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

type updateDisplayNameRequest struct {
	DisplayName string `json:"display_name"`
}

/*
SignIn resolves a social identity to an account and establishes a session.

POST /api/v1/auth/signin

Description: Provisions the account on first contact, verifies credentials for
the email platform, generates a JWT access token, and injects a secure refresh
token cookie into the response.

Request:
  - Body: signInRequest (Platform, PlatformUserID, Nickname, Email, Password)

Response:
  - 200: AuthSession: Access token and User profile
  - 401: ErrUnauthorized: Invalid email-platform credentials
  - 403: ErrForbidden: Soft-deleted account
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldPlatformUserID, input.PlatformUserID).
		Custom(FieldPlatform, !Platform(input.Platform).IsValid(), "unknown platform").
		MaxLen(FieldNickname, input.Nickname, MaxDisplayNameLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.SignUpOrSignIn(request.Context(), SignUpOrSignInInput{
		Platform:       Platform(input.Platform),
		PlatformUserID: input.PlatformUserID,
		Nickname:       input.Nickname,
		Email:          input.Email,
		Password:       input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldUser:        session.User,
	})
}

/*
Refresh issues a new access token using a valid refresh token.

POST /api/v1/auth/refresh

Description: Rotates the session by validating the refresh token cookie
and issuing a fresh access token and an updated refresh token.

Response:
  - 200: AuthSession: New access token credentials
  - 401: ErrUnauthorized: Missing refresh token cookie
  - 404: ErrNotFound: Invalid or expired refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token in cookies"))
		return
	}

	session, err := handler.authService.RefreshSession(request.Context(), cookie.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldUser:        session.User,
	})
}

/*
Attendance stamps a returning visit for the authenticated account.

POST /api/v1/auth/attendance

Description: Updates last_signin_time and counts one attendance when the UTC
calendar date changed since the previous sign-in.

Response:
  - 200: result: true
  - 404: ErrNotFound: Unknown or soft-deleted account
*/
func (handler *Handler) attendance(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.SignIn(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"result": true})
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Invalidates the refresh token (if present) and clears the
security cookies from the client.

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)

	if err == nil && cookie != nil && cookie.Value != "" {
		_ = handler.authService.Logout(request.Context(), cookie.Value)
	}

	clearRefreshCookie(writer)

	respond.NoContent(writer)
}

/*
Me returns the authenticated user's profile.

GET /api/v1/auth/me

Response:
  - 200: User: Profile of the caller
  - 404: ErrNotFound: Unknown or soft-deleted account
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateDisplayName replaces the caller's public display name.

PATCH /api/v1/auth/me/display-name

Request:
  - Body: updateDisplayNameRequest (DisplayName)

Response:
  - 200: result: true
  - 400: ErrValidation: Empty or reserved display name
  - 409: ErrConflict: Display name already in use
*/
func (handler *Handler) updateDisplayName(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateDisplayNameRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldDisplayName, input.DisplayName).
		MaxLen(FieldDisplayName, input.DisplayName, MaxDisplayNameLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.UpdateDisplayName(request.Context(), userID, input.DisplayName); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"result": true})
}

/*
DeleteAccount soft-deletes the caller's account.

DELETE /api/v1/auth/me

Description: Marks the account as deleted, revokes the presented refresh
token, and clears the security cookies.

Response:
  - 204: No Content: Account removed
  - 404: ErrNotFound: Unknown or already-deleted account
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.DeleteUser(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		_ = handler.authService.Logout(request.Context(), cookie.Value)
	}

	clearRefreshCookie(writer)

	respond.NoContent(writer)
}

// # Cookie Helpers

// setRefreshCookie injects the session's refresh token as a secure cookie.
func setRefreshCookie(writer http.ResponseWriter, session *AuthSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearRefreshCookie expires the refresh token cookie on the client.
func clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
