// Package client talks to the kolam analysis service: image upload
// for analysis and server-side SVG rendering.
//
// Failures split into two kinds the UI treats differently: the
// service reporting a structured failure (*APIError, surfaced with
// the server's message) and everything else (network, bad JSON),
// surfaced generically.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/kolam/internal/pattern"
)

// ErrNotImage rejects uploads before any request is made.
var ErrNotImage = errors.New("not an image file")

// APIError is an application-level failure reported by the service.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    *pattern.Record `json:"data"`
	SVG     string          `json:"svg"`
	Error   string          `json:"error"`
}

// Analyze uploads one image as a multipart form and returns the
// pattern record the service produced.
func (c *Client) Analyze(ctx context.Context, imagePath string) (*pattern.Record, error) {
	if !pattern.IsImageFile(imagePath) {
		return nil, fmt.Errorf("%s: %w", imagePath, ErrNotImage)
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, errors.New("analysis response missing pattern data")
	}
	return env.Data, nil
}

type exportRequest struct {
	Paths    []pattern.Path  `json:"paths"`
	GridDots []pattern.Point `json:"grid_dots"`
}

// ExportSVG asks the service to render paths and grid dots and
// returns the SVG markup.
func (c *Client) ExportSVG(ctx context.Context, paths []pattern.Path, dots []pattern.Point) (string, error) {
	payload, err := json.Marshal(exportRequest{Paths: paths, GridDots: dots})
	if err != nil {
		return "", fmt.Errorf("encode export payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/export-svg", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	env, err := c.do(req)
	if err != nil {
		return "", err
	}
	if env.SVG == "" {
		return "", errors.New("export response missing svg")
	}
	return env.SVG, nil
}

// do sends the request and decodes the service's response envelope.
// A decodable envelope with success=false becomes an *APIError even
// on non-2xx statuses; anything undecodable is a transport failure.
func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("service error (status %d)", resp.StatusCode)
		}
		return nil, &APIError{Message: msg}
	}
	return &env, nil
}
