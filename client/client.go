package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fynex/netmodel/model"
)

// Option configures a Client
type Option func(*Client)

// Client is a minimal REST client. Every request method returns the fully
// read response as a model.Response, leaving interpretation to the caller.
type Client struct {
	// BaseURL is prepended to every request path
	BaseURL    string
	HTTPClient *http.Client

	headers http.Header
}

// WithHTTPClient allows supplying a custom HTTP client when constructing a
// Client via New
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = httpClient
	}
}

// WithTimeout applies an HTTP client timeout when constructing via New
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if c.HTTPClient == nil {
			c.HTTPClient = &http.Client{}
		}
		c.HTTPClient.Timeout = d
	}
}

// WithHeader adds a header sent with every request, e.g. an Authorization
// token
func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.headers.Set(name, value)
	}
}

// New creates a client for the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    normalizeBaseURL(baseURL),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		headers:    http.Header{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	return c
}

func normalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

// Do performs one request and fully reads the response. A non-2xx status is
// not an error here; the model classifies statuses itself.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*model.Response, error) {
	u := c.BaseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	for name, values := range c.headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	return &model.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*model.Response, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Head performs a HEAD request
func (c *Client) Head(ctx context.Context, path string, query url.Values) (*model.Response, error) {
	return c.Do(ctx, http.MethodHead, path, query, nil)
}

// Post performs a POST request with the given body
func (c *Client) Post(ctx context.Context, path string, body []byte) (*model.Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, bytes.NewReader(body))
}

// Put performs a PUT request with the given body
func (c *Client) Put(ctx context.Context, path string, body []byte) (*model.Response, error) {
	return c.Do(ctx, http.MethodPut, path, nil, bytes.NewReader(body))
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) (*model.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
