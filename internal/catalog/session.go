package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/utcatalog/coursecrawl/internal/ratelimit"
)

// Transport defaults.
const (
	// DefaultBaseURL is the catalogue's public address.
	DefaultBaseURL = "https://catalog.he.u-tokyo.ac.jp"

	// DefaultUserAgent identifies coursecrawl in HTTP requests. A
	// descriptive User-Agent lets the site's operators see what is
	// hitting them.
	DefaultUserAgent = "coursecrawl/1.0 (+https://github.com/utcatalog/coursecrawl)"

	// DefaultMaxBodySize caps how much of a response body is read.
	// Catalogue pages are well under 1MB; the cap only guards against
	// pathological responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Getter is the narrow transport interface the fetcher consumes: one GET
// against the catalogue, returning the raw body.
type Getter interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// Session is the shared HTTP session for one crawl run. Every request it
// issues first passes the rate limiter, so the limiter's spacing applies to
// all traffic regardless of which goroutine sends it.
//
// Design decision: We require an external *http.Client because:
//  1. The caller owns connection-pool lifetime, one pool per crawl run
//  2. Tests can substitute a client pointed at httptest servers
//  3. Timeout policy stays in one place, the caller's client
type Session struct {
	client    *http.Client
	limiter   *ratelimit.Limiter
	baseURL   string
	userAgent string
	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64
	logger      *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithBaseURL overrides the catalogue address, mainly for tests.
func WithBaseURL(baseURL string) SessionOption {
	return func(s *Session) {
		s.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) SessionOption {
	return func(s *Session) {
		s.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) SessionOption {
	return func(s *Session) {
		s.maxBodySize = size
	}
}

// WithSessionLogger sets the session's logger.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a Session over the given client and rate limiter.
func NewSession(client *http.Client, limiter *ratelimit.Limiter, opts ...SessionOption) *Session {
	s := &Session{
		client:      client,
		limiter:     limiter,
		baseURL:     DefaultBaseURL,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Get fetches one catalogue page. It blocks in the rate limiter first, then
// issues the request and reads at most maxBodySize bytes of the body.
// Non-200 responses return ErrUnexpectedStatus.
func (s *Session) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := s.baseURL + "/" + strings.TrimPrefix(path, "/")
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	s.logger.Debug("fetching catalogue page", "path", path, "query", query.Encode())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Read errors surface below

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return nil, err
	}
	return body, nil
}
