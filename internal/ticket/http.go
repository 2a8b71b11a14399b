// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package ticket

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/middleware"
	requestutil "github.com/cinelogapp/cinelog/internal/platform/request"
	"github.com/cinelogapp/cinelog/internal/platform/respond"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

// maxImageSize caps ticket image uploads at 10 MiB.
const maxImageSize = 10 << 20

// Handler implements the HTTP layer for ticket archival.
type Handler struct {
	service *Service
}

// NewHandler constructs a new ticket [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the ticket endpoints.
// All ticket data is private to the caller, hence the blanket auth gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.register)
	router.Delete("/{ticketID}", handler.unregister)
	router.Get("/{ticketID}/download", handler.downloadURL)

	return router
}

// ticketResponse is the wire representation of a [Ticket].
type ticketResponse struct {
	TicketID        string `json:"ticket_id"`
	MediaType       int    `json:"media_type"`
	MediaID         int    `json:"media_id"`
	TicketImagePath string `json:"ticket_image_path"`
	WatchedTime     string `json:"watched_time"`
	UpdateTime      string `json:"update_time"`
}

func toResponse(ticket *Ticket) ticketResponse {
	return ticketResponse{
		TicketID:        ticket.TicketID,
		MediaType:       ticket.MediaType,
		MediaID:         ticket.MediaID,
		TicketImagePath: ticket.TicketImagePath,
		WatchedTime:     timeutil.Format(ticket.WatchedTime),
		UpdateTime:      timeutil.Format(ticket.UpdateTime),
	}
}

/*
POST /api/v1/tickets.

Description: Registers a ticket stub. The image arrives as multipart form
data under "image"; watched_time, media_type, and media_id ride along as
form fields.

Request (multipart/form-data):
  - image: file (JPEG)
  - media_type, media_id: int
  - watched_time: string ("2006-01-02 15:04:05", UTC)

Response:
  - 201: Ticket
  - 400: ErrValidation: Missing image or malformed fields
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(maxImageSize); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart payload"))
		return
	}

	file, header, err := request.FormFile("image")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Missing image"))
		return
	}
	defer file.Close()

	mediaType, err := strconv.Atoi(request.FormValue("media_type"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid media_type"))
		return
	}
	mediaID, err := strconv.Atoi(request.FormValue("media_id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid media_id"))
		return
	}

	watchedTime, err := time.ParseInLocation(timeutil.WireLayout, request.FormValue("watched_time"), time.UTC)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid watched_time"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	ticket, err := handler.service.Register(request.Context(), RegisterInput{
		MediaType:   mediaType,
		MediaID:     mediaID,
		UserID:      userID,
		WatchedTime: watchedTime,
		Image:       file,
		ImageSize:   header.Size,
		ContentType: contentType,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, toResponse(ticket))
}

/*
GET /api/v1/tickets.

Request:
  - order: int (0 watched time, 1 update time; both newest first)

Response:
  - 200: []Ticket
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	order := OrderWatchedTime
	if value, err := strconv.Atoi(request.URL.Query().Get("order")); err == nil {
		order = Order(value)
	}

	tickets, err := handler.service.List(request.Context(), userID, order)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	responses := make([]ticketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		responses = append(responses, toResponse(ticket))
	}

	respond.OK(writer, responses)
}

/*
DELETE /api/v1/tickets/{ticketID}.

Response:
  - 204: Removed (blob and row)
  - 404: ErrNotFound: Missing or foreign ticket
*/
func (handler *Handler) unregister(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticketID := requestutil.Param(request, "ticketID")
	if err := handler.service.Unregister(request.Context(), userID, ticketID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/tickets/{ticketID}/download.

Request:
  - expire: int (Seconds of URL validity, clamped server-side)

Response:
  - 200: {url}
  - 404: ErrNotFound: Missing or foreign ticket
*/
func (handler *Handler) downloadURL(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticketID := requestutil.Param(request, "ticketID")
	expireSecs, _ := strconv.Atoi(request.URL.Query().Get("expire"))

	url, err := handler.service.DownloadURL(request.Context(), userID, ticketID, expireSecs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"url": url})
}
