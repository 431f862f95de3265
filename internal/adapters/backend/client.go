// Package backend is the HTTP client for the marketplace REST API.
//
// All requests go through Client.Do, which attaches the bearer token when a call
// requires authentication and turns every non-2xx answer into an *APIError.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const maxErrorBody = 64 << 10

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.com/api".
	BaseURL string
	// Timeout bounds each request when HTTPClient is nil.
	Timeout time.Duration
	// HTTPClient overrides the underlying client (cookie jars, test servers).
	HTTPClient *http.Client
	UserAgent  string
	Logger     *slog.Logger
}

// Client talks to the marketplace API.
type Client struct {
	base      *url.URL
	hc        *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("backend base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend base url must be http or https, got %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "haulmatch-admin-console"
	}

	return &Client{base: base, hc: hc, userAgent: ua, logger: logger.With("component", "backend")}, nil
}

// Request describes one API call.
type Request struct {
	Path        string
	Method      string // defaults to GET
	Query       url.Values
	Body        any // JSON-encoded when non-nil
	RequireAuth bool
	Token       string
}

// Do performs req and decodes a successful JSON response into out (which may be nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	op := method + " " + req.Path

	if req.RequireAuth && strings.TrimSpace(req.Token) == "" {
		return &APIError{Op: op, Status: http.StatusUnauthorized, Message: "missing bearer token"}
	}

	httpReq, err := c.newRequest(ctx, method, req)
	if err != nil {
		return err
	}

	hc := c.hc
	if req.RequireAuth {
		hc = c.authorized(req.Token)
	}

	start := time.Now()
	resp, err := hc.Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "backend request failed", "op", op, "error", err)
		return &APIError{Op: op, Status: http.StatusInternalServerError, Message: "network error", Cause: err}
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "backend request",
		"op", op, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(op, resp)
	}
	return decodeSuccess(op, resp, out)
}

func (c *Client) newRequest(ctx context.Context, method string, req Request) (*http.Request, error) {
	u := c.base.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		buf, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, req.Path, err)
		}
		body = bytes.NewReader(buf)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, req.Path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

// authorized wraps the base transport so every request carries the bearer token.
func (c *Client) authorized(token string) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   c.hc.Transport,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		},
		CheckRedirect: c.hc.CheckRedirect,
		Jar:           c.hc.Jar,
		Timeout:       c.hc.Timeout,
	}
}

func decodeSuccess(op string, resp *http.Response, out any) error {
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &APIError{Op: op, Status: http.StatusInternalServerError, Message: "malformed response", Cause: err}
	}
	return nil
}
