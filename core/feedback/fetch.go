package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// MessageRequestFailed is shown when an error envelope carries no text.
	MessageRequestFailed = "Request failed"
	// MessageNetworkError is shown when the server cannot be reached.
	MessageNetworkError = "Network error: unable to reach the server"
	// MessageUnexpected is shown for failures that are neither network nor API errors.
	MessageUnexpected = "An unexpected error occurred"
)

// Envelope is the JSON shape every API endpoint responds with.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// DecodeData unmarshals the envelope's data into v.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// RequestError is returned when the API answers with a failure envelope or a
// non-2xx status. Its message is exactly the text shown to the user.
type RequestError struct {
	StatusCode int
	Message    string
	Envelope   *Envelope
}

func (e *RequestError) Error() string {
	return e.Message
}

// RequestOptions describes the outgoing request.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	Header http.Header
	// Body is sent as is. JSON is used instead when Body is nil.
	Body io.Reader
	// JSON is encoded as the request body with a JSON content type.
	JSON any
}

// Client issues API calls and reports their outcome through a Notifier.
type Client struct {
	http     *http.Client
	notifier *Notifier
	logger   *zap.Logger
	baseURL  string
	header   http.Header
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithBaseURL prefixes relative endpoints.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithHeader adds a header to every request, e.g. the API key.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) { c.header.Set(key, value) }
}

// WithClientLogger sets the logger.
func WithClientLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client that reports through n.
func NewClient(n *Notifier, opts ...ClientOption) *Client {
	c := &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		notifier: n,
		logger:   zap.NewNop(),
		header:   make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchWithFeedback calls endpoint with target in the busy state for the
// whole call. A 2xx response with success true shows successMessage, when not
// empty, and returns the envelope. Any other response shows the envelope's
// error or message and returns a *RequestError. Transport failures show a
// network error toast and return the transport error unchanged.
func (c *Client) FetchWithFeedback(ctx context.Context, endpoint string, opts RequestOptions, target *Control, successMessage string) (*Envelope, error) {
	SetLoading(target, true)
	defer SetLoading(target, false)

	req, err := c.newRequest(ctx, endpoint, opts)
	if err != nil {
		c.notifier.Error(MessageUnexpected)
		return nil, err
	}

	l := c.logger.With(zap.String("method", req.Method), zap.String("url", req.URL.String()))

	resp, err := c.http.Do(req)
	if err != nil {
		l.Warn("Request did not reach the server", zap.Error(err))
		c.notifier.Error(MessageNetworkError)
		return nil, err
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		l.Error("Failed to decode response envelope", zap.Int("status", resp.StatusCode), zap.Error(err))
		c.notifier.Error(MessageUnexpected)
		return nil, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && env.Success {
		if successMessage != "" {
			c.notifier.Success(successMessage)
		}
		return &env, nil
	}

	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	if msg == "" {
		msg = MessageRequestFailed
	}
	l.Info("Request rejected", zap.Int("status", resp.StatusCode), zap.String("error", msg))
	c.notifier.Error(msg)
	return nil, &RequestError{StatusCode: resp.StatusCode, Message: msg, Envelope: &env}
}

func (c *Client) newRequest(ctx context.Context, endpoint string, opts RequestOptions) (*http.Request, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body := opts.Body
	jsonBody := body == nil && opts.JSON != nil
	if jsonBody {
		raw, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	url := endpoint
	if c.baseURL != "" && strings.HasPrefix(endpoint, "/") {
		url = c.baseURL + endpoint
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range c.header {
		req.Header[k] = v
	}
	for k, v := range opts.Header {
		req.Header[k] = v
	}
	if jsonBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
