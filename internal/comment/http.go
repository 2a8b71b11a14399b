// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package comment provides the HTTP interface for the social layer.

It exposes endpoints for registering reviews and replies, toggling
reactions, reporting abuse, and browsing comment listings.

# Routing Strategy

  - Public (v1): Listing and lookup endpoints accessible to all visitors.
  - Authenticated (v1): Mutative endpoints tied to the caller's identity.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package comment

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/middleware"
	requestutil "github.com/cinelogapp/cinelog/internal/platform/request"
	"github.com/cinelogapp/cinelog/internal/platform/respond"
	"github.com/cinelogapp/cinelog/pkg/pagination"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

// # Handler Implementation

// Handler implements the HTTP layer for the social domain.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the social domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listRecent)
	router.Get("/media/{mediaType}/{mediaID}", handler.listByMedia)
	router.Get("/users/{userID}", handler.listByUser)
	router.Get("/{commentID}", handler.getComment)
	router.Get("/{commentID}/replies", handler.listReplies)

	// ## Authenticated Endpoints
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.register)
		authed.Patch("/{commentID}", handler.modify)
		authed.Delete("/{commentID}", handler.delete)

		authed.Put("/{commentID}/reaction", handler.toggleReaction)
		authed.Post("/{commentID}/report", handler.report)
		authed.Get("/reactions/me", handler.myReactions)
	})

	return router
}

// # Response Payloads

// commentResponse is the wire representation of a [Comment].
type commentResponse struct {
	CommentID       int64   `json:"comment_id"`
	MediaType       int     `json:"media_type"`
	MediaID         int     `json:"media_id"`
	UserID          string  `json:"user_id"`
	Grade           int     `json:"grade"`
	CommentText     string  `json:"comment_text"`
	CommentType     Type    `json:"comment_type"`
	CommentLevel    Level   `json:"comment_level"`
	OriginCommentID *int64  `json:"origin_comment_id,omitempty"`
	RegisterTime    string  `json:"register_time"`
	ModifyTime      *string `json:"modify_time,omitempty"`
	Likes           int     `json:"likes"`
	Dislikes        int     `json:"dislikes"`
	ReplyCount      int     `json:"reply_count"`
	ReportCount     int     `json:"report_count"`
	Deleted         bool    `json:"deleted"`
}

// toResponse renders a comment for the wire, formatting timestamps.
func toResponse(comment *Comment) commentResponse {
	response := commentResponse{
		CommentID:       comment.CommentID,
		MediaType:       comment.MediaType,
		MediaID:         comment.MediaID,
		UserID:          comment.UserID,
		Grade:           comment.Grade,
		CommentText:     comment.CommentText,
		CommentType:     comment.CommentType,
		CommentLevel:    comment.CommentLevel,
		OriginCommentID: comment.OriginCommentID,
		RegisterTime:    timeutil.Format(comment.RegisterTime),
		Likes:           comment.Likes,
		Dislikes:        comment.Dislikes,
		ReplyCount:      comment.ReplyCount,
		ReportCount:     comment.ReportCount,
		Deleted:         comment.Deleted,
	}
	if comment.ModifyTime != nil {
		formatted := timeutil.Format(*comment.ModifyTime)
		response.ModifyTime = &formatted
	}
	return response
}

// toResponseList renders a slice of comments for the wire.
func toResponseList(comments []*Comment) []commentResponse {
	responses := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, toResponse(comment))
	}
	return responses
}

// # Comment Endpoints

// registerRequest is the payload for creating a comment or reply.
type registerRequest struct {
	MediaType       int    `json:"media_type"`
	MediaID         int    `json:"media_id"`
	Grade           int    `json:"grade"`
	CommentText     string `json:"comment_text"`
	OriginCommentID *int64 `json:"origin_comment_id,omitempty"`
}

/*
POST /api/v1/comments.

Description: Registers a new review, or a one-level reply when
origin_comment_id is supplied. The comment type and level are derived
server-side and never accepted from the client.

Response:
  - 201: Comment: The persisted entity
  - 400: ErrValidation: Empty text, grade out of range
  - 404: ErrNotFound: Parent comment missing, deleted, or itself a reply
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload registerRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Register(request.Context(), RegisterInput{
		MediaType:       payload.MediaType,
		MediaID:         payload.MediaID,
		UserID:          userID,
		Grade:           payload.Grade,
		CommentText:     payload.CommentText,
		OriginCommentID: payload.OriginCommentID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, toResponse(comment))
}

// modifyRequest is the payload for rewriting a comment.
type modifyRequest struct {
	Grade       int    `json:"grade"`
	CommentText string `json:"comment_text"`
}

/*
PATCH /api/v1/comments/{commentID}.

Description: Rewrites the grade and text of a comment owned by the caller.
The classification is recomputed from the new text.

Response:
  - 200: {modify_time, comment_type}
  - 404: ErrNotFound: Missing, deleted, or not owned by the caller
*/
func (handler *Handler) modify(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := parseCommentID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload modifyRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Modify(request.Context(), userID, commentID, payload.Grade, payload.CommentText)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"modify_time":  timeutil.Format(*comment.ModifyTime),
		"comment_type": comment.CommentType,
	})
}

/*
DELETE /api/v1/comments/{commentID}.

Description: Soft-deletes a comment owned by the caller. The row is
tombstoned, never physically removed.

Response:
  - 204: Deleted
  - 404: ErrNotFound: Missing, already deleted, or not owned by the caller
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := parseCommentID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), commentID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/comments/{commentID}.

Description: Retrieves a single comment by identity. Tombstoned comments
are returned with their deleted flag set.

Response:
  - 200: Comment
  - 404: ErrNotFound: No such row
*/
func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	commentID, err := parseCommentID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.GetComment(request.Context(), commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toResponse(comment))
}

// # Listing Endpoints

/*
GET /api/v1/comments.

Description: Retrieves the newest live top-level comments across all media.

Request:
  - count: int (Items per page, clamped to [2,10])
  - page: int (0-indexed; -1 returns everything)

Response:
  - 200: []Comment
*/
func (handler *Handler) listRecent(writer http.ResponseWriter, request *http.Request) {
	window := pagination.FromRequest(request)

	comments, err := handler.service.ListRecent(request.Context(), window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toResponseList(comments))
}

/*
GET /api/v1/comments/media/{mediaType}/{mediaID}.

Description: Retrieves live top-level comments for one movie or series.

Request:
  - order: int (0 newest, 1 most liked, 2 highest grade)
  - type: int (0 plain, 1 video link; omit for all)
  - count, page: Pagination window

Response:
  - 200: []Comment
*/
func (handler *Handler) listByMedia(writer http.ResponseWriter, request *http.Request) {
	mediaType, err := parseIntPathParam(request, "mediaType")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	mediaID, err := parseIntPathParam(request, "mediaID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.service.ListByMedia(
		request.Context(),
		mediaType,
		mediaID,
		parseOrder(request),
		parseTypeFilter(request),
		pagination.FromRequest(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toResponseList(comments))
}

/*
GET /api/v1/comments/users/{userID}.

Description: Retrieves live comments authored by one user. Replies are
excluded unless with_reply=true.

Request:
  - order, type, count, page: As in the media listing
  - with_reply: bool

Response:
  - 200: []Comment
*/
func (handler *Handler) listByUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")
	withReply := request.URL.Query().Get("with_reply") == "true"

	comments, err := handler.service.ListByUser(
		request.Context(),
		userID,
		parseOrder(request),
		parseTypeFilter(request),
		pagination.FromRequest(request),
		withReply,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toResponseList(comments))
}

/*
GET /api/v1/comments/{commentID}/replies.

Description: Retrieves the live replies of one comment, oldest first.

Response:
  - 200: []Comment
*/
func (handler *Handler) listReplies(writer http.ResponseWriter, request *http.Request) {
	commentID, err := parseCommentID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.service.ListReplies(request.Context(), commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toResponseList(comments))
}

// # Reaction & Report Endpoints

// reactionRequest is the payload for toggling a reaction.
type reactionRequest struct {
	IsLike bool `json:"is_like"`
}

/*
PUT /api/v1/comments/{commentID}/reaction.

Description: Toggles the caller's like or dislike on a comment. Repeating
the same side retracts it; sending the other side switches in one step.

Response:
  - 200: {like_delta, dislike_delta, like_count}
  - 404: ErrNotFound: Comment missing
*/
func (handler *Handler) toggleReaction(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := parseCommentID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload reactionRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	outcome, err := handler.service.ToggleReaction(request.Context(), userID, commentID, payload.IsLike)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, outcome)
}

// reportRequest is the payload for reporting a comment.
type reportRequest struct {
	ReportType int `json:"report_type"`
}

/*
POST /api/v1/comments/{commentID}/report.

Description: Submits or refreshes the caller's abuse report on a comment.
Each reporter counts once towards the report total.

Response:
  - 200: {result: true}
  - 404: ErrNotFound: Comment missing
*/
func (handler *Handler) report(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := parseCommentID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload reportRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Report(request.Context(), userID, commentID, payload.ReportType); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"result": true})
}

/*
GET /api/v1/comments/reactions/me.

Description: Lists every active reaction held by the caller, so clients can
paint like/dislike state across listings.

Response:
  - 200: [{comment_id, is_like}]
*/
func (handler *Handler) myReactions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reactions, err := handler.service.UserReactions(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reactions)
}

// # Request Parsing Helpers

// parseCommentID extracts and validates the {commentID} path parameter.
func parseCommentID(request *http.Request) (int64, error) {
	raw := requestutil.Param(request, "commentID")
	commentID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || commentID <= 0 {
		return 0, apperr.ValidationError("Invalid comment ID")
	}
	return commentID, nil
}

// parseIntPathParam extracts an integer path parameter.
func parseIntPathParam(request *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(requestutil.Param(request, name))
	if err != nil {
		return 0, apperr.ValidationError("Invalid " + name)
	}
	return value, nil
}

// parseOrder reads the order query parameter, defaulting to newest-first.
func parseOrder(request *http.Request) Order {
	value, err := strconv.Atoi(request.URL.Query().Get("order"))
	if err != nil {
		return OrderNewest
	}
	return Order(value)
}

// parseTypeFilter reads the type query parameter. The filter only engages
// for positive values; zero, negatives, and absence all mean no filter.
func parseTypeFilter(request *http.Request) int {
	value, err := strconv.Atoi(request.URL.Query().Get("type"))
	if err != nil || value <= 0 {
		return TypeFilterAll
	}
	return value
}
