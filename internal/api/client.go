// Package api is the HTTP client for the Waymark roadmap backend.
// This file provides the request plumbing: JSON bodies, token injection,
// request IDs, and the global 401 hook.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource returns the current bearer credential, or "" when no session
// exists. It is consulted on every request.
type TokenSource func() string

// Client talks to the roadmap REST API.
type Client struct {
	baseURL        string
	http           *http.Client
	token          TokenSource
	onUnauthorized func()
}

// NewClient creates a Client for the given base URL, e.g.
// "http://localhost:8000/api". The timeout applies per request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetTokenSource installs the credential lookup attached to every request.
func (c *Client) SetTokenSource(fn TokenSource) {
	c.token = fn
}

// SetUnauthorizedHook installs a callback fired whenever any request comes
// back 401, regardless of which operation triggered it.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// do issues one JSON request and returns the raw response body.
// Non-2xx responses become classified *Error values; transport failures
// become network-kind errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: marshalling request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("api: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpError(resp.StatusCode, data)
	}

	return data, nil
}

// decodeInto unmarshals data into out when both are non-empty.
func decodeInto(data []byte, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: unmarshalling response: %w", err)
	}
	return nil
}

// decodeList accepts both the paginated {"results": [...]} shape and a bare
// JSON array, which the backend serves interchangeably on list endpoints.
func decodeList[T any](data []byte) ([]T, error) {
	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &page); err == nil && page.Results != nil {
		return page.Results, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("api: unmarshalling list response: %w", err)
	}
	return items, nil
}
