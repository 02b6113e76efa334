package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/confportal/internal/common"
	"github.com/dmitrijs2005/confportal/internal/logging"
)

// TokenSource yields the bearer token for the next request. An empty token
// means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

const maxErrorBody = 64 << 10

// bearerTransport reads the current token on every request, so a token saved
// by login is used by the very next call without rebuilding the client.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
	log    logging.Logger
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	r := req.Clone(ctx)

	if t.tokens != nil {
		tok, err := t.tokens.Token(ctx)
		if err != nil {
			t.log.Warn(ctx, "token read failed, sending unauthenticated", "err", err)
		}
		if tok != "" {
			r.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)
		}
	}
	if r.Header.Get(common.RequestIDHeader) == "" {
		r.Header.Set(common.RequestIDHeader, uuid.NewString())
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(r)
	args := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", r.Header.Get(common.RequestIDHeader),
		"duration", time.Since(start),
	}
	if err != nil {
		t.log.Debug(ctx, "http request failed", append(args, "err", err)...)
		return nil, err
	}
	t.log.Debug(ctx, "http request", append(args, "status", resp.StatusCode)...)
	return resp, nil
}

type Option func(*HTTPClient)

// WithTransport replaces the underlying round tripper (default http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.base = rt }
}

// HTTPClient is the REST implementation of Client.
type HTTPClient struct {
	baseURL *url.URL
	base    http.RoundTripper
	hc      *http.Client
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, tokens TokenSource, log logging.Logger, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if log == nil {
		log = logging.Discard()
	}

	c := &HTTPClient{baseURL: u, base: http.DefaultTransport, log: log}
	for _, o := range opts {
		o(c)
	}
	// Timeout 0: no client-side deadline, cancellation comes from ctx.
	c.hc = &http.Client{
		Transport: &bearerTransport{base: c.base, tokens: tokens, log: log},
	}
	return c, nil
}

// BaseURL returns the configured backend address.
func (c *HTTPClient) BaseURL() string { return c.baseURL.String() }

func (c *HTTPClient) url(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Do sends a JSON request and decodes a JSON answer into out (when non-nil).
func (c *HTTPClient) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeBody(resp.Body, out)
}

// Upload posts r as the multipart part field/filename.
func (c *HTTPClient) Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("read upload %q: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeBody(resp.Body, out)
}

// Download fetches a binary resource. name comes from Content-Disposition and
// is empty when the backend does not send one.
func (c *HTTPClient) Download(ctx context.Context, path string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, nil), nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := c.send(ctx, req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	var name string
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		name = params["filename"]
	}
	return name, data, nil
}

// send performs req and turns transport failures and non-2xx answers into
// errors. On success the caller owns resp.Body.
func (c *HTTPClient) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, &APIError{
		Status:  resp.StatusCode,
		Message: errorMessage(b),
		Kind:    kindOf(resp.StatusCode),
	}
}

// errorMessage extracts "message" or "error" from a JSON body, or returns the
// trimmed text body.
func errorMessage(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if b[0] == '{' {
		if err := json.Unmarshal(b, &payload); err != nil {
			return ""
		}
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	if b[0] == '<' {
		// HTML error pages are not worth showing.
		return ""
	}
	return string(b)
}

func decodeBody(r io.Reader, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, r)
		return nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	// some endpoints answer text/plain
	if s, ok := out.(*string); ok && b[0] != '"' {
		*s = string(b)
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsAuthFailure reports whether err means the session is not (or no longer)
// allowed to perform the call.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
