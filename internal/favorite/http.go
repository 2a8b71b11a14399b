// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package favorite

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/middleware"
	requestutil "github.com/cinelogapp/cinelog/internal/platform/request"
	"github.com/cinelogapp/cinelog/internal/platform/respond"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

// Handler implements the HTTP layer for the favorites list.
type Handler struct {
	service *Service
}

// NewHandler constructs a new favorite [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the favorites endpoints.
// Everything here is tied to the caller's identity, so the whole router
// requires authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Put("/{mediaType}/{mediaID}", handler.register)
	router.Delete("/{mediaType}/{mediaID}", handler.unregister)

	return router
}

// favoriteResponse is the wire representation of a [Favorite].
type favoriteResponse struct {
	MediaType  int    `json:"media_type"`
	MediaID    int    `json:"media_id"`
	UpdateTime string `json:"update_time"`
}

/*
GET /api/v1/favorites.

Response:
  - 200: [{media_type, media_id, update_time}]
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorites, err := handler.service.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	responses := make([]favoriteResponse, 0, len(favorites))
	for _, favorite := range favorites {
		responses = append(responses, favoriteResponse{
			MediaType:  favorite.MediaType,
			MediaID:    favorite.MediaID,
			UpdateTime: timeutil.Format(favorite.UpdateTime),
		})
	}

	respond.OK(writer, responses)
}

/*
PUT /api/v1/favorites/{mediaType}/{mediaID}.

Response:
  - 200: {update_time}
  - 409: ErrConflict: Already favorited
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mediaType, mediaID, err := parseMediaParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorite, err := handler.service.Register(request.Context(), userID, mediaType, mediaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"update_time": timeutil.Format(favorite.UpdateTime),
	})
}

/*
DELETE /api/v1/favorites/{mediaType}/{mediaID}.

Response:
  - 204: Removed
  - 404: ErrNotFound: No such mark
*/
func (handler *Handler) unregister(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mediaType, mediaID, err := parseMediaParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unregister(request.Context(), userID, mediaType, mediaID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// parseMediaParams extracts the {mediaType}/{mediaID} path parameters.
func parseMediaParams(request *http.Request) (int, int, error) {
	mediaType, err := strconv.Atoi(requestutil.Param(request, "mediaType"))
	if err != nil {
		return 0, 0, apperr.ValidationError("Invalid mediaType")
	}
	mediaID, err := strconv.Atoi(requestutil.Param(request, "mediaID"))
	if err != nil {
		return 0, 0, apperr.ValidationError("Invalid mediaID")
	}
	return mediaType, mediaID, nil
}
