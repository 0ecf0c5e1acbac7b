// Package client is the Go SDK for the planets API. It bundles an HTTP
// wrapper that injects bearer tokens and reacts to rejections, a
// session state manager, and a route guard for UI consumers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a typed non-2xx response.
type APIError struct {
	Status int
	Code   string
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// NetworkError wraps a transport failure where no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client wraps HTTP access to the API. If the token store holds a
// token, every request carries it as a bearer header; requests proceed
// bare otherwise and the server decides whether the endpoint needs auth.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenStore
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenStore overrides the token slot implementation.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

// New builds a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		tokens:     NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TokenStore exposes the client's token slot.
func (c *Client) TokenStore() TokenStore {
	return c.tokens
}

// bindUnauthorized registers the hook fired on a 401 response. The
// hook must not perform HTTP calls, which keeps the forced-logout path
// from re-entering the client.
func (c *Client) bindUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Login exchanges credentials for a token. It does not touch the token
// slot; the session manager owns persistence.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the identity for the stored token.
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var out Identity
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPlanets fetches all planets. Public.
func (c *Client) ListPlanets(ctx context.Context) ([]Planet, error) {
	var out []Planet
	if err := c.do(ctx, http.MethodGet, "/planets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPlanet fetches one planet by id. Public.
func (c *Client) GetPlanet(ctx context.Context, id int64) (*Planet, error) {
	var out Planet
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/planets/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePlanet stores a new planet. Requires authentication.
func (c *Client) CreatePlanet(ctx context.Context, input PlanetInput) (*Planet, error) {
	var out Planet
	if err := c.do(ctx, http.MethodPost, "/planets", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePlanet applies a partial update. Requires authentication.
func (c *Client) UpdatePlanet(ctx context.Context, id int64, patch PlanetPatch) (*Planet, error) {
	var out Planet
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/planets/%d", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePlanet removes a planet. Requires authentication.
func (c *Client) DeletePlanet(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/planets/%d", id), nil, nil)
}

// Health fetches the health status.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, _ := c.tokens.Load(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
		return apiErrorFrom(resp)
	}
	if resp.StatusCode >= 400 {
		return apiErrorFrom(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// handleUnauthorized clears the token slot and fires the registered
// hook exactly once per 401 response.
func (c *Client) handleUnauthorized() {
	_ = c.tokens.Clear()
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func apiErrorFrom(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var envelope struct {
		Detail string `json:"detail"`
		Code   string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Detail = envelope.Detail
		apiErr.Code = envelope.Code
	}
	if apiErr.Detail == "" {
		apiErr.Detail = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
