// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds a single request when no other timeout is set.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is sent when WithUserAgent is not used.
const DefaultUserAgent = "superticket"

// HeaderRequestID carries a per-request ULID.
const HeaderRequestID = "X-Request-ID"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

var tracer = otel.Tracer("superticket/apiclient")

// Response is a successful (2xx) reply with a JSON body.
type Response struct {
	Status int
	Body   []byte
}

// Client performs single JSON requests against the backend. It never
// retries; callers decide what to do with a Failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends one request. payload, when non-nil, is JSON-encoded.
//
// A 2xx reply with a JSON body (an empty body counts as {}) returns a
// Response. Everything else returns a *Failure.
func (c *Client) Do(ctx context.Context, method, path string, payload any) (*Response, error) {
	requestID := ulid.Make().String()

	ctx, span := tracer.Start(ctx, "api.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	resp, failure := c.do(ctx, method, path, payload, requestID)
	if failure != nil {
		span.RecordError(failure)
		span.SetStatus(codes.Error, failure.Kind.String())
		span.SetAttributes(attribute.String("failure.kind", failure.Kind.String()))
		if failure.Status != 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", failure.Status))
		}
		c.logger.DebugContext(ctx, "api request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"kind", failure.Kind.String(),
			"status", failure.Status,
			"error", failure.Unwrap(),
		)
		return nil, failure
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.Status))
	c.logger.DebugContext(ctx, "api request completed",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", resp.Status,
	)
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, requestID string) (*Response, *Failure) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, transportFailure(oops.With("operation", "encode request").Wrap(err))
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, transportFailure(oops.With("operation", "build request").Wrap(err))
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, requestID)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportFailure(oops.
			With("method", method).
			With("path", path).
			Wrap(err))
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportFailure(oops.With("operation", "read response").Wrap(err))
	}

	status := httpResp.StatusCode
	if status < 200 || status > 299 {
		return nil, applicationFailure(status, respBody)
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		respBody = []byte("{}")
	}
	if !json.Valid(respBody) {
		return nil, malformedFailure(status, respBody, oops.Errorf("response body is not valid JSON"))
	}
	return &Response{Status: status, Body: respBody}, nil
}

// DecodeJSON decodes the body of resp into a T. A decode error is a
// malformed failure.
func DecodeJSON[T any](resp *Response) (T, error) {
	var out T
	if resp == nil {
		return out, NewMalformed(nil, oops.Errorf("no response"))
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, NewMalformed(resp, err)
	}
	return out, nil
}
