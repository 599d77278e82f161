// Package apiclient dispatches requests to the commerce platform
// backend. It owns the one round trip every caller shares: resolve the
// URL, build headers from the session, issue the call, and normalise
// the response into the platform envelope or a typed failure.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-commerce-client/headers"
	"github.com/jrsteele09/go-commerce-client/session"
)

// RequestOptions is the per-call options bag. The zero value issues a
// GET with no body and no extra headers.
type RequestOptions struct {
	Method  string            // Defaults to GET
	Body    any               // JSON-serialised when non-nil
	Headers map[string]string // Win over default and session headers on collision
}

// Client is the request dispatcher. It is safe for concurrent use; all
// mutable state lives in the injected session provider.
//
// The dispatcher deliberately does not retry and does not enforce a
// timeout - the caller's context owns cancellation, and retry policy
// belongs to whoever understands the operation's idempotency.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Provider
	csrfToken  func() string
	logger     zerolog.Logger
	hooks      Hooks

	// clearSessionOn401 selects the authentication-expiry policy: when
	// set, a 401 clears the injected session before the error is
	// surfaced. Off by default - the error alone is surfaced and the
	// hosting page decides whether to redirect to login.
	clearSessionOn401 bool
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client. The supplied
// client is used as-is, including its cookie jar (or lack of one).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithSessionProvider attaches the session the dispatcher reads its
// bearer token from. Without one, every request goes out unauthenticated.
func WithSessionProvider(sessions session.Provider) Option {
	return func(c *Client) {
		c.sessions = sessions
	}
}

// WithCSRFTokenProvider supplies the CSRF token attached to every
// request. The provider is consulted per call, so a rotating token is
// always sent fresh.
func WithCSRFTokenProvider(provider func() string) Option {
	return func(c *Client) {
		c.csrfToken = provider
	}
}

// WithLogger routes per-request diagnostics through the given logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHooks attaches request lifecycle observers.
func WithHooks(hooks Hooks) Option {
	return func(c *Client) {
		c.hooks = hooks
	}
}

// WithClearSessionOn401 switches the authentication-expiry policy from
// surface-only to clear-session-and-surface.
func WithClearSessionOn401(clear bool) Option {
	return func(c *Client) {
		c.clearSessionOn401 = clear
	}
}

// New creates a dispatcher for the backend at baseURL. The default
// HTTP client carries a cookie jar so same-origin cookies set by the
// backend travel with every request.
func New(baseURL string, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[apiclient.New] baseURL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "[apiclient.New] cookie jar")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar},
		logger:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// Request issues one call against the backend and returns its envelope.
//
// Success: a 2xx with a body returns the parsed envelope exactly as the
// backend sent it; a 204 (or an empty 2xx body) synthesises
// {success: true}. Failure: a non-2xx raises an *APIError carrying the
// status and the backend's message when the failure body parses; a
// transport fault raises an *APIError of KindNetwork. Nothing is
// retried and no failure is swallowed.
func (c *Client) Request(ctx context.Context, path string, opts *RequestOptions) (*Envelope, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		raw, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, errors.Wrap(err, "[Client.Request] encode request body")
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Request] build request")
	}

	requestID := uuid.NewString()
	req.Header.Set(headers.RequestID, requestID)
	for k, v := range c.requestHeaders(opts.Headers) {
		req.Header.Set(k, v)
	}

	logger := c.logger.With().
		Str("method", method).
		Str("path", path).
		Str("requestID", requestID).
		Logger()
	logger.Debug().Msg("dispatching request")

	c.hooks.request(ctx, req)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := networkError(err)
		logger.Error().Err(err).Msg("request failed before a response arrived")
		c.hooks.failure(ctx, apiErr)
		return nil, apiErr
	}
	defer resp.Body.Close()

	duration := time.Since(started)
	c.hooks.response(ctx, resp, duration)
	logger.Debug().Int("status", resp.StatusCode).Dur("duration", duration).Msg("response received")

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return c.decodeSuccess(ctx, resp)
	}
	return nil, c.failure(ctx, resp, logger)
}

// Get issues a GET request to path.
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.Request(ctx, path, nil)
}

// Post issues a POST request to path with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Request(ctx, path, &RequestOptions{Method: http.MethodPost, Body: body})
}

// Put issues a PUT request to path with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Request(ctx, path, &RequestOptions{Method: http.MethodPut, Body: body})
}

// Patch issues a PATCH request to path with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Request(ctx, path, &RequestOptions{Method: http.MethodPatch, Body: body})
}

// Delete issues a DELETE request to path.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.Request(ctx, path, &RequestOptions{Method: http.MethodDelete})
}

// requestHeaders merges the default headers, the session's bearer
// token, the CSRF token, and the caller's overrides. Caller headers
// win on collision. A missing token means a missing Authorization
// header - the request still goes out and the server rules on it.
func (c *Client) requestHeaders(overrides map[string]string) map[string]string {
	cfg := headers.Config{Extra: overrides}
	if c.sessions != nil {
		cfg.AuthToken = c.sessions.Token()
	}
	if c.csrfToken != nil {
		cfg.CSRFToken = c.csrfToken()
	}
	return headers.Build(cfg)
}

func (c *Client) decodeSuccess(ctx context.Context, resp *http.Response) (*Envelope, error) {
	if resp.StatusCode == http.StatusNoContent {
		return &Envelope{Success: true}, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := networkError(err)
		c.hooks.failure(ctx, apiErr)
		return nil, apiErr
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &Envelope{Success: true}, nil
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		apiErr := decodeError(err)
		c.hooks.failure(ctx, apiErr)
		return nil, apiErr
	}
	return &envelope, nil
}

// failure turns a non-2xx response into an *APIError, pulling the
// diagnostic message out of the failure body when it parses as an
// envelope. A 401 additionally applies the configured expiry policy.
func (c *Client) failure(ctx context.Context, resp *http.Response, logger zerolog.Logger) error {
	var message string
	raw, readErr := io.ReadAll(resp.Body)
	if readErr == nil && len(raw) > 0 {
		var envelope Envelope
		if err := json.Unmarshal(raw, &envelope); err == nil {
			message = envelope.Message
		}
	}

	apiErr := httpError(resp.StatusCode, message, nil)
	logger.Warn().Int("status", resp.StatusCode).Str("message", message).Msg("request failed")

	if resp.StatusCode == http.StatusUnauthorized && c.clearSessionOn401 && c.sessions != nil {
		if err := c.sessions.ClearSession(); err != nil {
			logger.Warn().Err(err).Msg("session not cleared after 401")
		}
	}

	c.hooks.failure(ctx, apiErr)
	return apiErr
}
