// Package youtrack is a client for the YouTrack REST API.
//
// A Client authenticates with a personal access token and maps named
// methods onto REST calls: issues, comments, time tracking, agile boards,
// sprints, issue links, queries, and commands. Credentials can be passed
// directly to New or loaded from ~/.youtrack.toml via FromConfig.
package youtrack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// DefaultTop is the page size used when ListOptions.Top is zero.
const DefaultTop = 20

// Client is a YouTrack REST API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request-level debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for the YouTrack instance at baseURL, authenticating
// with the given personal access token (perm:... format). A trailing slash
// on baseURL is trimmed.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured instance URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// ListOptions controls pagination for list operations.
// Top and Skip map to the $top and $skip query parameters.
type ListOptions struct {
	Top  int
	Skip int
}

// apply sets $top and $skip on q. Top defaults to DefaultTop so unbounded
// listings never hit the server.
func (o ListOptions) apply(q url.Values) {
	top := o.Top
	if top <= 0 {
		top = DefaultTop
	}
	q.Set("$top", strconv.Itoa(top))
	q.Set("$skip", strconv.Itoa(o.Skip))
}

// do performs a single API call. Body (if non-nil) is sent as JSON and the
// response is decoded into out (if non-nil). Non-2xx responses are returned
// as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("youtrack request", "method", method, "path", path, "status", resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodPut, path, query, nil, out)
}

// fieldsQuery builds a url.Values holding only a fields selector.
func fieldsQuery(fields string) url.Values {
	q := url.Values{}
	q.Set("fields", fields)
	return q
}
