// Package backend is an HTTP client for the external incident REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/target/incident-portal/internal/errors"
	"github.com/target/incident-portal/internal/requestid"
	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8080/api"

// sharedCallTimeout bounds a shared request when neither Config nor the http.Client set one.
const sharedCallTimeout = 30 * time.Second

const maxErrorBody = 64 << 10

// APIError is a non-2xx backend response. It unwraps to the matching *apperrors.AppError.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// StatusCode implements apperrors.StatusCoder.
func (e *APIError) StatusCode() int { return e.Status }

func (e *APIError) Unwrap() error {
	return apperrors.FromStatus(e.Status, e.Message)
}

// Config configures the client.
type Config struct {
	BaseURL string
	// Timeout bounds each request; zero leaves it to the transport.
	Timeout time.Duration
	Client  *http.Client
}

// Client calls the backend API. It is safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	me      singleflight.Group
}

// NewClient builds a Client.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = hc.Timeout
	}
	if timeout <= 0 {
		timeout = sharedCallTimeout
	}
	return &Client{baseURL: base, client: hc, timeout: timeout}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// do sends a JSON request. in may be nil; out may be nil to discard the body.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.MapTransportError(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodeError prefers a JSON "message" (or "error") field, then the raw body, then the status text.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(raw))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		switch {
		case payload.Message != "":
			msg = payload.Message
		case payload.Error != "":
			msg = payload.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
