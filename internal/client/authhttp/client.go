package authhttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/mindmate-client/internal/logging"
	"github.com/google/uuid"
)

// RequestOptions configures a single fetch. The zero value is a GET with no
// extra headers and no body.
type RequestOptions struct {
	Method string
	Header http.Header
	Body   io.Reader
}

// Client performs authenticated requests against one server.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

// NewClient returns a Client resolving relative targets against baseURL and
// authenticating with tokens from source. base may be nil.
func NewClient(baseURL string, source TokenSource, base http.RoundTripper, logger logging.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Transport: &Transport{Source: source, Base: base}},
		logger:  logger.With("module", "authhttp"),
	}, nil
}

// FetchWithAuth sends a request to target (absolute, or relative to the base
// URL) carrying the caller's headers plus the bearer token, if one is stored.
// The response is returned as is, whatever its status; the caller closes its
// body. Transport failures are returned wrapped.
func (c *Client) FetchWithAuth(ctx context.Context, target string, opts *RequestOptions) (*http.Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := c.baseURL.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse target %q: %w", target, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), opts.Body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if opts.Header != nil {
		req.Header = opts.Header.Clone()
	}

	log := c.logger.With("request_id", uuid.NewString(), "method", method, "url", u.String())

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("fetch: %w", err)
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode)
	return resp, nil
}

// FetchWithCredentials is the former name of FetchWithAuth.
//
// Deprecated: call (*Client).FetchWithAuth.
var FetchWithCredentials = (*Client).FetchWithAuth
