package ollamaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const chatPath = "/api/chat"

// HTTPDoer is the transport interface the client issues requests through.
// *http.Client satisfies it; tests and callers can inject their own.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds configuration options for the client.
type Config struct {
	// BaseURL is the server base URL (default: http://127.0.0.1:11434).
	BaseURL string

	// Model is the default model applied when a request leaves Model empty.
	Model string

	// Timeout bounds non-streaming requests (default: 30s). Streaming calls
	// are bounded by their context instead.
	Timeout time.Duration

	// HTTPClient overrides the transport. When nil, an *http.Client with
	// Timeout is used.
	HTTPClient HTTPDoer
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://127.0.0.1:11434",
		Timeout: 30 * time.Second,
	}
}

// Client issues chat completion calls against one server. It holds no
// conversation state; wrap it in a HistoryClient for history-aware calls.
//
// Construct clients explicitly and pass them where needed; there is no
// package-level default instance.
type Client struct {
	config       *Config
	httpClient   HTTPDoer
	streamClient HTTPDoer
}

// NewClient creates a client with the default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with a custom configuration.
// Zero-value fields fall back to their defaults.
func NewClientWithConfig(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://127.0.0.1:11434"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := &Client{config: &cfg}
	if cfg.HTTPClient != nil {
		c.httpClient = cfg.HTTPClient
		c.streamClient = cfg.HTTPClient
	} else {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
		// No client-level timeout on the streaming transport; a generation
		// can legitimately outlast any fixed deadline. Context cancellation
		// still applies.
		c.streamClient = &http.Client{}
	}
	return c
}

// BaseURL returns the configured server base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// WithHistory wraps the client with conversation history tracking backed by
// the given store. A nil store selects an in-memory store.
func (c *Client) WithHistory(store HistoryStore) *HistoryClient {
	return NewHistoryClient(c, store)
}

// Chat sends a chat completion request and returns the complete response.
// The transmitted request always has the streaming flag forced off,
// regardless of what the caller set.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	r := *req
	r.Stream = false
	if r.Model == "" {
		r.Model = c.config.Model
	}

	resp, err := c.post(ctx, c.httpClient, &r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &chatResp, nil
}

// post serializes the request and performs the HTTP exchange, returning the
// raw response. The caller owns the response body.
func (c *Client) post(ctx context.Context, doer HTTPDoer, r *ChatRequest) (*http.Response, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("ollamaclient: encode request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + chatPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ollamaclient: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := doer.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: "send", Err: err}
	}
	return resp, nil
}

// newStatusError builds a StatusError from a non-success response, carrying
// the body text when it can be read.
func newStatusError(resp *http.Response) *StatusError {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       "read response body: " + err.Error(),
		}
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
