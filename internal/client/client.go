// Package client talks to the cargo-tracker HTTP API on behalf of operators.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cargo-tracker/internal/core/httpclient"
	"cargo-tracker/internal/features/shipments/domain"
	"cargo-tracker/internal/features/shipments/handler"
)

const userAgent = "shipctl/1.0"

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
	RayID      string
}

func (e *APIError) Error() string {
	if e.RayID != "" {
		return fmt.Sprintf("api error %d: %s (ray id %s)", e.StatusCode, e.Message, e.RayID)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client is a thin wrapper around the shipment endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.NewClient(timeout, userAgent),
	}
}

// Stages returns the stage catalog.
func (c *Client) Stages(ctx context.Context) ([]handler.StageResponse, error) {
	var out []handler.StageResponse
	err := c.do(ctx, http.MethodGet, "/api/stages", nil, &out)
	return out, err
}

// List returns every shipment.
func (c *Client) List(ctx context.Context) ([]handler.TrackingResponse, error) {
	var out []handler.TrackingResponse
	err := c.do(ctx, http.MethodGet, "/api/tracking", nil, &out)
	return out, err
}

// Create creates a shipment.
func (c *Client) Create(ctx context.Context, req handler.CreateShipmentRequest) (*handler.TrackingResponse, error) {
	var out handler.TrackingResponse
	if err := c.do(ctx, http.MethodPost, "/api/tracking", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Track looks a shipment up by tracking number.
func (c *Client) Track(ctx context.Context, trackingNumber string) (*handler.TrackingResponse, error) {
	var out handler.TrackingResponse
	if err := c.do(ctx, http.MethodGet, "/api/tracking/"+url.PathEscape(trackingNumber), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus moves one shipment to status.
func (c *Client) UpdateStatus(ctx context.Context, id, status string) (*handler.TrackingResponse, error) {
	var out handler.TrackingResponse
	path := "/api/tracking/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPut, path, handler.UpdateStatusRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BulkUpdate moves every shipment in ids to status.
func (c *Client) BulkUpdate(ctx context.Context, ids []string, status string) (*domain.BulkUpdateResult, error) {
	var out domain.BulkUpdateResult
	req := handler.BulkUpdateRequest{IDs: ids, Status: status}
	if err := c.do(ctx, http.MethodPut, "/api/tracking/bulk-update", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a shipment.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tracking/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp handler.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Message == "" {
			errResp.Message = http.StatusText(resp.StatusCode)
		}
		if errResp.RayID == "" {
			errResp.RayID = resp.Header.Get(httpclient.RayIDHeader)
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errResp.Message,
			RayID:      errResp.RayID,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
