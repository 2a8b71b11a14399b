// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cinelogapp/cinelog/pkg/uuid"
)

// secretHeader authenticates requests against the vendor API.
const secretHeader = "X-OCR-SECRET"

// vendorTimeout bounds one vendor round trip.
const vendorTimeout = 15 * time.Second

// # HTTP Vendor Client

// HTTPClient implements [VendorClient] against the vendor's JSON API.
type HTTPClient struct {
	apiURL    string
	secretKey string
	client    *http.Client
}

// NewHTTPClient constructs a vendor client for the given endpoint.
func NewHTTPClient(apiURL, secretKey string) *HTTPClient {
	return &HTTPClient{
		apiURL:    apiURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: vendorTimeout},
	}
}

// vendorRequest is the JSON payload the vendor expects.
type vendorRequest struct {
	Version   string        `json:"version"`
	RequestID string        `json:"requestId"`
	Timestamp int64         `json:"timestamp"`
	Images    []vendorImage `json:"images"`
}

type vendorImage struct {
	Format string `json:"format"`
	Name   string `json:"name"`
	Data   string `json:"data"`
}

// vendorResponse is the subset of the vendor's reply we consume.
type vendorResponse struct {
	RequestID string `json:"requestId"`
	Images    []struct {
		InferResult string `json:"inferResult"`
		Fields      []struct {
			InferText       string  `json:"inferText"`
			InferConfidence float64 `json:"inferConfidence"`
		} `json:"fields"`
	} `json:"images"`
}

/*
Recognize submits one JPEG image to the vendor and extracts its fields.

Description: The image is base64-encoded into the vendor's JSON envelope and
authenticated via the X-OCR-SECRET header. Only the first image of the
response is consumed; the proxy never submits more than one.

Parameters:
  - context: context.Context
  - image: []byte (Raw JPEG bytes)

Returns:
  - string: Vendor request UID for the history trail
  - []Result: Extracted fields
  - error: Transport failures, non-200 statuses, or a failed inference
*/
func (c *HTTPClient) Recognize(context context.Context, image []byte) (string, []Result, error) {
	payload := vendorRequest{
		Version:   "V2",
		RequestID: uuid.New(),
		Timestamp: time.Now().UnixMilli(),
		Images: []vendorImage{{
			Format: "jpg",
			Name:   "ticket",
			Data:   base64.StdEncoding.EncodeToString(image),
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", nil, fmt.Errorf("ocr: failed to encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("ocr: failed to build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(secretHeader, c.secretKey)

	response, err := c.client.Do(request)
	if err != nil {
		return "", nil, fmt.Errorf("ocr: vendor request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("ocr: vendor returned status %d", response.StatusCode)
	}

	var decoded vendorResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", nil, fmt.Errorf("ocr: failed to decode response: %w", err)
	}

	if len(decoded.Images) == 0 {
		return decoded.RequestID, nil, fmt.Errorf("ocr: vendor returned no images")
	}

	first := decoded.Images[0]
	if first.InferResult != "SUCCESS" {
		return decoded.RequestID, nil, fmt.Errorf("ocr: inference failed with result %q", first.InferResult)
	}

	results := make([]Result, 0, len(first.Fields))
	for _, field := range first.Fields {
		results = append(results, Result{
			Text:       field.InferText,
			Confidence: field.InferConfidence,
		})
	}

	return decoded.RequestID, results, nil
}
