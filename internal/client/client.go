// Package client talks to the blogging HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"blogdeck/internal/session"
)

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 8 << 20

// Client issues requests against the API, attaching the session token.
// Requests are sent once: there is no retry, timeout or caching beyond what
// the caller's context imposes.
type Client struct {
	baseURL   string
	http      *http.Client
	session   session.Store
	userAgent string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the API at baseURL using store for the token
func New(baseURL string, store session.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: need an http or https URL with a host", baseURL)
	}
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}

	c := &Client{
		baseURL:   strings.TrimRight(u.String(), "/"),
		http:      &http.Client{},
		session:   store,
		userAgent: "blogdeck",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SignedIn reports whether a session token is currently stored
func (c *Client) SignedIn() bool {
	_, ok := c.session.Get()
	return ok
}

// request describes one API call
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	// auth marks endpoints that need a token; others still send one if present
	auth bool
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	token, hasToken := c.session.Get()
	if req.auth && !hasToken {
		return &Error{Kind: KindAuth, Op: req.op, Message: "not signed in"}
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", req.op, err)
		}
		body = bytes.NewReader(b)
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", req.op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if hasToken {
		// The API expects the raw token, without a scheme prefix
		httpReq.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: req.op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Kind: KindNetwork, Op: req.op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(req.op, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindPartialData, Op: req.op, Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}
	return nil
}

// statusError turns an error response into an *Error. A rejected token
// clears the session so the UI falls back to the signed-out state.
func (c *Client) statusError(op string, status int, data []byte) error {
	var body apiError
	_ = json.Unmarshal(data, &body)

	msg := body.text()
	if msg == "" {
		msg = http.StatusText(status)
	}

	kind := KindServer
	if status == http.StatusUnauthorized || status == http.StatusForbidden || body.Kind == string(KindAuth) {
		kind = KindAuth
		if err := c.session.Clear(); err != nil {
			log.Printf("Failed to clear rejected session: %v", err)
		}
	}

	return &Error{Kind: kind, Op: op, Status: status, Message: msg}
}

func escapeID(id string) string {
	return url.PathEscape(id)
}
