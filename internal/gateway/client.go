package gateway

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

	"github.com/rs/zerolog"
)

const maxErrorBody = 64 * 1024

// Client issues credentialed requests against the backend gateway. Every
// client owns a cookie jar, so the session cookie set by /auth/login is
// replayed on later calls the way a browser would with withCredentials.
type Client struct {
	baseURL string
	base    *url.URL
	http    *http.Client
	jar     *sessionJar
	log     zerolog.Logger
}

type Option func(*Client)

// WithTransport swaps the round tripper, keeping the client's own jar.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("gateway: base url required")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar := newSessionJar()

	c := &Client{
		baseURL: baseURL,
		base:    base,
		http:    &http.Client{Timeout: timeout, Jar: jar},
		jar:     jar,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BuildURL resolves a relative API path against the configured base.
// Absolute URLs pass through untouched.
func (c *Client) BuildURL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) Get(ctx context.Context, path string, out any) (Envelope, error) {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) (Envelope, error) {
	return c.call(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body any, out any) (Envelope, error) {
	return c.call(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any) (Envelope, error) {
	return c.call(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) (Envelope, error) {
	return c.call(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) call(ctx context.Context, method, path string, body any, out any) (Envelope, error) {
	env, err := c.Do(ctx, method, path, body)
	if err != nil {
		return env, err
	}
	if out != nil {
		if err := env.Decode(out); err != nil {
			return env, fmt.Errorf("%s %s: %w", method, path, err)
		}
	}
	return env, nil
}

// Do sends a JSON request and normalises the response into an Envelope.
func (c *Client) Do(ctx context.Context, method, path string, body any) (Envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BuildURL(path), reader)
	if err != nil {
		return Envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req)
}

func (c *Client) send(req *http.Request) (Envelope, error) {
	stampRequestID(req)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Msg("gateway request failed")
		return Envelope{}, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("gateway request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Envelope{}, newAPIError(resp.StatusCode, raw)
	}
	return parseEnvelope(raw)
}

// Cookie returns a cookie currently held for the gateway host.
func (c *Client) Cookie(name string) (*http.Cookie, bool) {
	for _, cookie := range c.jar.Cookies(c.base) {
		if cookie.Name == name {
			return cookie, true
		}
	}
	return nil, false
}

// ForgetCookies drops every cookie held for the gateway host.
func (c *Client) ForgetCookies() {
	c.jar.Reset()
}
