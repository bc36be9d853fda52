// Package fetch implements the HTTP fetch client used by the discovery
// pipeline. It retries transient failures with a fixed backoff and never
// returns an error to the caller: a URL either yields a body or it does not.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/orchestrarfp/gotender/internal/logger"
)

// maxResponseBodyBytes limits the size of fetched portal pages.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// defaultUserAgent mimics a standard browser client. Several portals serve
// reduced markup to obvious bots.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options configures the client.
type Options struct {
	// MaxAttempts is the total number of tries per URL, including the first.
	MaxAttempts int
	// Backoff is the fixed delay between attempts.
	Backoff time.Duration
	// Timeout bounds a single request.
	Timeout time.Duration
	// UserAgent overrides the default browser-like user agent.
	UserAgent string
}

// WithDefaults fills unset options with the standard bounds.
func (o Options) WithDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.Backoff <= 0 {
		o.Backoff = 2 * time.Second
	}
	if o.Timeout <= 0 {
		o.Timeout = 12 * time.Second
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	return o
}

// Client fetches portal pages over HTTP.
type Client struct {
	httpClient  *http.Client
	log         logger.Interface
	userAgent   string
	maxAttempts int
	backoff     time.Duration
}

// NewClient creates a fetch client with the given options.
func NewClient(opts Options, log logger.Interface) *Client {
	opts = opts.WithDefaults()

	return &Client{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		log:         log,
		userAgent:   opts.UserAgent,
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.Backoff,
	}
}

// Fetch issues a GET for the URL, retrying on any non-2xx status or
// transport error. It returns the body and true on success, or nil and false
// once attempts are exhausted or the context is done.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, bool) {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, err := c.fetchOnce(ctx, url)
		if err == nil {
			return body, true
		}

		c.log.Debug("fetch attempt failed",
			"url", url,
			"attempt", attempt,
			"error", err.Error(),
		)

		if attempt == c.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, false
		case <-time.After(c.backoff):
		}
	}

	c.log.Warn("fetch exhausted retries", "url", url, "attempts", c.maxAttempts)

	return nil, false
}

// fetchOnce performs a single GET attempt.
func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)

	return io.ReadAll(limited)
}

// setHeaders applies the fixed outbound header set.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}
