// Package ytclient provides authenticated REST access to a YouTrack
// instance. It owns transport concerns only: request construction, bearer
// auth, JSON decoding, and typed errors carrying the response body.
package ytclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/tidwall/gjson"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/youtrack-mcp", "ytclient")

// Error is returned on non-2xx responses. It keeps the raw body so that
// callers can surface tracker diagnostics to the agent.
type Error struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("request failed with status %s", e.Status)
	if len(e.Body) > 0 {
		msg = msg + ": " + e.BodyMessage()
	}
	return msg
}

// BodyMessage returns the human-readable part of the response body:
// YouTrack reports `error_description` or `error` in its JSON error
// payloads; anything else is returned verbatim.
func (e *Error) BodyMessage() string {
	if desc := gjson.GetBytes(e.Body, "error_description"); desc.Exists() {
		return desc.String()
	}
	if desc := gjson.GetBytes(e.Body, "error"); desc.Exists() {
		return desc.String()
	}
	return string(e.Body)
}

// Client is a YouTrack REST API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the given configuration.
func New(cfg *Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("ytclient: base URL is not set")
	}
	if cfg.Token == "" {
		return nil, errors.New("ytclient: API token is not set")
	}

	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}

	return &Client{
		baseURL:    base,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// WithHTTPClient overrides the underlying HTTP client, used in tests.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// Get performs a GET request and decodes the JSON response into v.
func (c *Client) Get(ctx context.Context, path string, params url.Values, v any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, v)
}

// Post performs a POST request with a JSON body and decodes the response into v.
func (c *Client) Post(ctx context.Context, path string, params url.Values, body, v any) error {
	return c.do(ctx, http.MethodPost, path, params, body, v)
}

// Close releases the client's idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, v any) error {
	apiURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		reqBody = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to execute request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		bodyBytes, _ := io.ReadAll(resp.Body)
		herr := &Error{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       bodyBytes,
		}
		logger.ContextKV(ctx, xlog.DEBUG,
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"err", herr.BodyMessage(),
		)
		return errors.WithStack(herr)
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return errors.Wrap(err, "failed to decode response")
		}
	}
	return nil
}
