// Package client is the authenticated request facade over the pocketbook
// API. It attaches the bearer token, classifies failures, and invalidates the
// session globally whenever any call comes back 401.
package client

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
)

// CredentialSource supplies the bearer token and absorbs the global
// invalidation side effect. Implemented by the session manager.
type CredentialSource interface {
	// Token returns the current bearer token, or "" when anonymous.
	Token() string
	// Invalidate is called synchronously whenever any request is rejected
	// with 401, regardless of which endpoint was hit.
	Invalidate()
}

// Envelope is the {message, data} wrapper around every API response.
type Envelope struct {
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetCredentials wires the token source. Constructed separately because the
// session manager itself needs the client to talk to the auth endpoints.
func (c *Client) SetCredentials(creds CredentialSource) {
	c.creds = creds
}

// Do issues a single request and decodes the envelope's data field into out
// when out is non-nil. body, when non-nil, is serialized as JSON. There are
// no retries; delivery is at most once per call.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader

	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}

		reqBody = bytes.NewReader(buf)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.creds != nil {
			c.creds.Invalidate()
		}

		return ErrUnauthorized
	}

	var env Envelope
	if decErr := json.NewDecoder(resp.Body).Decode(&env); decErr != nil && !errors.Is(decErr, io.EOF) {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return fmt.Errorf("decoding response: %w", decErr)
		}
		// Fall through with an empty envelope so the status still classifies.
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}

	return nil
}
