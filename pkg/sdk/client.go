// Package sdk is a small HTTP client for the docdex server API. It
// mirrors the /documents wire format so callers do not hand-roll
// requests.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 30 * time.Second

// Document is the wire form of a flat document.
type Document struct {
	Fields []Field          `json:"fields"`
	Counts map[string][]int `json:"counts,omitempty"`
	Empty  []string         `json:"empty,omitempty"`
	Boost  float32          `json:"boost,omitempty"`
}

// Field is one named entry of a wire document.
type Field struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	Analyzed   bool    `json:"analyzed,omitempty"`
	Stored     bool    `json:"stored,omitempty"`
	Compressed bool    `json:"compressed,omitempty"`
	Boost      float32 `json:"boost,omitempty"`
}

// APIError is a non-2xx server response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("docdex api: %d %s", e.StatusCode, e.Message)
}

// Client talks to a docdex server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Health checks server liveness.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// Put stores a document under id. Returns true if created.
func (c *Client) Put(ctx context.Context, id string, doc Document) (bool, error) {
	var out struct {
		Created bool `json:"created"`
	}
	err := c.do(ctx, http.MethodPut, "/documents/"+url.PathEscape(id), doc, &out)
	if err != nil {
		return false, err
	}
	return out.Created, nil
}

// Get retrieves the document stored under id.
func (c *Client) Get(ctx context.Context, id string) (Document, error) {
	var out Document
	err := c.do(ctx, http.MethodGet, "/documents/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Delete removes the document stored under id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/documents/"+url.PathEscape(id), nil, nil)
}

// Count returns the number of stored documents.
func (c *Client) Count(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodGet, "/documents/", nil, &out)
	return out.Count, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return parseAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}
