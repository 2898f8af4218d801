package transport

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

	"github.com/google/uuid"

	"github.com/teamsync/sessioncore/navigate"
	"github.com/teamsync/sessioncore/telemetry"
	"github.com/teamsync/sessioncore/token"
)

// ErrMissingBaseURL indicates Config.BaseURL is empty.
var ErrMissingBaseURL = errors.New("transport: base URL is required")

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Config holds the environment-supplied pipeline settings.
type Config struct {
	// BaseURL is the API origin all request paths are resolved against.
	BaseURL string

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Client issues authenticated requests against the backend.
//
// Contract:
// - Concurrency: safe for arbitrarily many concurrent in-flight
//   requests. Concurrent unauthorized responses each request a
//   redirect; the navigator must make only the first effective.
// - Errors: every failure is either ErrSessionInvalid (terminal,
//   already redirected) or an *APIError with a non-empty ErrorCode.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  token.Store
	nav     navigate.Navigator
	inst    *telemetry.Instrument
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The bearer
// round tripper is layered on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithInstrument attaches request telemetry.
func WithInstrument(inst *telemetry.Instrument) Option {
	return func(c *Client) {
		c.inst = inst
	}
}

// NewClient creates the authenticated request pipeline. The navigator
// receives the forced redirect on unauthorized responses; wrap it with
// navigate.NewOnce when sharing it across components.
func NewClient(cfg Config, tokens token.Store, nav navigate.Navigator, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		nav:     nav,
		inst:    telemetry.Noop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Layer bearer injection over whatever transport is configured.
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http = &http.Client{
		Timeout:   c.http.Timeout,
		Transport: &bearerRoundTripper{tokens: tokens, next: base},
	}

	return c, nil
}

// bearerRoundTripper attaches the current token as a bearer credential.
// The token is read per request: a Set or Clear on the store is visible
// to the next request with no caching lag. An in-flight request that
// read a token cleared moments later simply fails its own auth check
// server-side and takes the normal unauthorized path.
type bearerRoundTripper struct {
	tokens token.Store
	next   http.RoundTripper
}

func (rt *bearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if tok := rt.tokens.Get(); tok != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return rt.next.RoundTrip(req)
}

// Do issues one request and decodes a successful JSON response into
// out (which may be nil). Error outcomes:
//   - unauthorized error code: the token is cleared, the whole
//     application is redirected to its unauthenticated entry point,
//     and ErrSessionInvalid is returned; the redirect is the terminal
//     action,
//   - any other error payload: an *APIError with the payload's code,
//     or CodeUnknown when absent,
//   - network-level failure: an *APIError with CodeUnknown; no
//     response body is read because there is none.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	meta := telemetry.RequestMeta{
		Method:    method,
		Path:      path,
		RequestID: uuid.NewString(),
	}
	ctx, done := c.inst.Start(ctx, meta)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			apiErr := &APIError{ErrorCode: CodeUnknown, Message: fmt.Sprintf("encode request body: %v", err)}
			done(apiErr)
			return apiErr
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		apiErr := NetworkError(err)
		done(apiErr)
		return apiErr
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", meta.RequestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := NetworkError(err)
		done(apiErr)
		return apiErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := NetworkError(err)
		done(apiErr)
		return apiErr
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				apiErr := &APIError{ErrorCode: CodeUnknown, Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
				done(apiErr)
				return apiErr
			}
		}
		done(nil)
		return nil
	}

	apiErr := Normalize(resp.StatusCode, respBody)
	if apiErr.ErrorCode == CodeUnauthorized {
		// Fatal session-invalid signal. Drop the dead token and
		// redirect the whole application; the caller receives no
		// outcome it can act on further.
		c.inst.Unauthorized(ctx, "pipeline")
		c.tokens.Clear()
		c.nav.Home()
		done(ErrSessionInvalid)
		return ErrSessionInvalid
	}

	done(apiErr)
	return apiErr
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}
