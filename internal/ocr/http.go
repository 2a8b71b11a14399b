// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package ocr

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/middleware"
	requestutil "github.com/cinelogapp/cinelog/internal/platform/request"
	"github.com/cinelogapp/cinelog/internal/platform/respond"
)

// maxImageSize caps OCR image uploads at 5 MiB.
const maxImageSize = 5 << 20

// Handler implements the HTTP layer for the OCR proxy.
type Handler struct {
	service *Service
}

// NewHandler constructs a new OCR [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the OCR endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.recognize)

	return router
}

/*
POST /api/v1/ocr.

Description: Runs one quota-gated OCR pass over an uploaded ticket image.

Request (multipart/form-data):
  - image: file (JPEG)

Response:
  - 200: [{text, confidence}]
  - 429: ErrRateLimited: Monthly quota exhausted
  - 503: ErrServiceUnavailable: Vendor failure
*/
func (handler *Handler) recognize(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(maxImageSize); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart payload"))
		return
	}

	file, _, err := request.FormFile("image")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Missing image"))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Unreadable image"))
		return
	}

	results, err := handler.service.Recognize(request.Context(), userID, image)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, results)
}
