package platform

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

	"github.com/verilocal/admin-gateway/pkg/config"
	"github.com/verilocal/admin-gateway/pkg/metrics"
)

const (
	apiKeyHeader             = "X-Verilocal-Api-Key"
	errorBodyReadLimit int64 = 2048
)

var errBaseURLRequired = errors.New("platform base url is required")

// Client wraps every upstream platform endpoint the gateway consumes:
// geographic reference data, pricing, packages, organizations, and payment
// initialization. The backend owns all persistence; the client only forwards
// validated payloads and decodes the {success, data|message} envelope.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	metrics    *metrics.PlatformMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured platform base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithMetrics records per-endpoint call durations and outcomes.
func WithMetrics(m *metrics.PlatformMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the platform client from configuration.
func NewClient(cfg config.PlatformConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}

	return client, nil
}

// Error carries the upstream HTTP status and the backend's message so
// callers can surface it verbatim.
type Error struct {
	status   int
	message  string
	endpoint string
}

// NewError builds a platform error from an upstream response.
func NewError(status int, message, endpoint string) *Error {
	return &Error{status: status, message: message, endpoint: endpoint}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.message == "" {
		return fmt.Sprintf("platform %s: status %d", e.endpoint, e.status)
	}
	return fmt.Sprintf("platform %s: status %d: %s", e.endpoint, e.status, e.message)
}

// HTTPStatus returns the upstream response status.
func (e *Error) HTTPStatus() int {
	if e == nil {
		return 0
	}
	return e.status
}

// UpstreamMessage returns the backend's message field, if any.
func (e *Error) UpstreamMessage() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Endpoint returns the path the failed call targeted.
func (e *Error) Endpoint() string {
	if e == nil {
		return ""
	}
	return e.endpoint
}

// AsError extracts a platform error from an error chain.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}

// Message returns the backend's verbatim message when the chain holds one.
func Message(err error) string {
	if typed := AsError(err); typed != nil {
		return typed.UpstreamMessage()
	}
	return ""
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, nil, body, out)
}

func (c *Client) put(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, nil, body, out)
}

func (c *Client) delete(ctx context.Context, endpoint string) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, nil)
}

// do issues one request and decodes the envelope. A non-2xx status or a
// success=false envelope becomes an *Error carrying the backend message.
// out may be nil when the caller only needs the success flag; when the
// envelope has no data for a non-nil out, out is left untouched.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	if c == nil {
		return errors.New("platform client not configured")
	}

	target := c.buildURL(endpoint)
	if len(query) > 0 {
		target = target + "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.Observe(endpoint, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("execute %s request: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			status:   resp.StatusCode,
			message:  readErrorMessage(resp.Body),
			endpoint: endpoint,
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	if !env.Success {
		return &Error{
			status:   resp.StatusCode,
			message:  env.Message,
			endpoint: endpoint,
		}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", endpoint, err)
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, errorBodyReadLimit))
	if err != nil {
		return ""
	}
	var env envelope
	if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil && env.Message != "" {
		return env.Message
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) buildURL(endpoint string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	endpoint = strings.TrimLeft(endpoint, "/")
	return fmt.Sprintf("%s/%s", trimmed, endpoint)
}
