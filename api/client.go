// Package api is the HTTP gateway to the Smart Wallet backend. One Client
// serves every endpoint; it attaches the session's bearer token to each
// outbound request and intercepts 401 responses to end the session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Debraj8301/smart-wallet/session"
)

// ErrAuthExpired marks any 401 response. By the time a caller sees it the
// session token is already cleared and the expiry hook has run; the caller
// only needs to stop its own operation.
var ErrAuthExpired = errors.New("authentication expired")

// APIError is a non-2xx backend response, carrying the backend's
// {detail: ...} message when one was provided.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
}

// Unwrap lets errors.Is(err, ErrAuthExpired) match 401 responses.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrAuthExpired
	}
	return nil
}

// Client is the configured HTTP client for the backend. Safe for concurrent
// use; the only shared mutable state between in-flight requests is the
// session's token.
type Client struct {
	baseURL string
	hc      *http.Client
	session *session.Session
	log     zerolog.Logger
}

// New creates a client for the backend at baseURL.
func New(baseURL string, sess *session.Session, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
		session: sess,
		log:     log,
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) { c.hc.Timeout = d }

// Session exposes the session this client decorates requests with.
func (c *Client) Session() *session.Session { return c.session }

// get issues a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST with an optional JSON body and decodes the response.
func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

// put issues a PUT with a JSON body and decodes the response.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// do builds, decorates, executes and decodes one request/response exchange.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("cannot encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.execute(req, out)
}

// newRequest creates a request with the bearer token (when a token is held)
// and an X-Request-ID for log correlation. A missing token is not an error
// here: the backend decides which endpoints require one.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	addr := c.baseURL + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, addr, body)
	if err != nil {
		return nil, fmt.Errorf("cannot create request %s %s: %w", method, path, err)
	}
	if tok, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// execute runs the request, intercepts 401s, and decodes a 2xx JSON body
// into out when out is non-nil.
func (c *Client) execute(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("cannot reach backend for %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", req.Header.Get("X-Request-ID")).
		Msg("request")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot read %s %s response: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Any unauthorized response ends the session. Other in-flight
		// requests run to completion on their own.
		c.session.Expire()
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, apiError(resp.StatusCode, data))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, apiError(resp.StatusCode, data))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("cannot decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// apiError builds an APIError from a response body, extracting the backend's
// detail message when the body is the usual {detail: string} shape.
func apiError(status int, body []byte) *APIError {
	var detail struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &detail)
	return &APIError{Status: status, Detail: detail.Detail}
}
