// File: internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"strata/internal/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	DefaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Recorder   *metrics.Recorder
}

// Client speaks HTTP+JSON to the remote management API. It holds no resource state
type Client struct {
	baseURL    string
	httpClient *http.Client
	recorder   *metrics.Recorder
	validate   *validator.Validate
	logger     *slog.Logger
}

func NewClient(opts Options, logger *slog.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		recorder:   opts.Recorder,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger.With("component", "api"),
	}
}

type request struct {
	route       string
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return bytes.NewReader(data), nil
}

// do sends the request and, when out is non-nil, decodes and validates the JSON response into it
func (c *Client) do(ctx context.Context, r request, out any) error {
	requestID := uuid.NewString()
	url := c.baseURL + r.path

	req, err := http.NewRequestWithContext(ctx, r.method, url, r.body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	c.logger.Debug("Sending API request", "route", r.route, "method", r.method, "path", r.path, "request_id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.Observe(r.route, 0, time.Since(start))
		return fmt.Errorf("%s %s (request %s): %w: %v", r.method, r.path, requestID, ErrTransport, err)
	}
	defer resp.Body.Close()
	c.recorder.Observe(r.route, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s %s (request %s): %w", r.method, r.path, requestID, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		})
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		return fmt.Errorf("%s %s (request %s): %w: %v", r.method, r.path, requestID, ErrMalformedPayload, err)
	}
	if err := c.validate.Struct(out); err != nil {
		return fmt.Errorf("%s %s (request %s): %w: %v", r.method, r.path, requestID, ErrMalformedPayload, err)
	}

	return nil
}
