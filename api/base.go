package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultPollInterval is the default delay between confirmation polls
const DefaultPollInterval = 5 * time.Second

// rpcRequestID is the fixed JSON-RPC request id. The node echoes it back
// but the client never correlates responses by id, so concurrent in-flight
// RPC calls must not rely on it.
const rpcRequestID = 64

// Client handles API calls against one TRON full node. It holds no mutable
// state after construction and is safe to share across goroutines.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient sets a custom http.Client instance
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPollInterval sets a custom confirmation poll interval (default 5s)
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
	}
}

// NewClient creates a new API client for the given full node endpoint
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, baseURL)
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the configured full node endpoint
func (c *Client) BaseURL() string {
	return c.baseURL
}

// postJSON sends a POST request with a JSON payload and returns the raw
// response body
func (c *Client) postJSON(path string, payload interface{}) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, &RequestError{Op: path, Err: err}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, &RequestError{Op: path, Err: fmt.Errorf("failed to marshal payload: %w", err)}
	}

	resp, err := c.httpClient.Post(endpoint, "application/json", strings.NewReader(string(jsonData)))
	if err != nil {
		return nil, &RequestError{Op: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Op: path, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}
	return body, nil
}

// get sends a GET request and returns the raw response body
func (c *Client) get(path string) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, &RequestError{Op: path, Err: err}
	}

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, &RequestError{Op: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Op: path, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}
	return body, nil
}

// rpcCall sends a JSON-RPC 2.0 request to the node's jsonrpc endpoint and
// returns the raw result field
func (c *Client) rpcCall(method string, params interface{}) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      rpcRequestID,
		"method":  method,
		"params":  params,
	}

	body, err := c.postJSON("/jsonrpc", payload)
	if err != nil {
		return nil, err
	}

	var rpcResp RPCResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, &RequestError{Op: method, Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if rpcResp.Error != nil {
		return nil, &UnknownResponseError{Detail: fmt.Sprintf("RPC error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)}
	}
	if rpcResp.Result == nil {
		return nil, &UnknownResponseError{Detail: "no result in RPC response"}
	}
	return rpcResp.Result, nil
}
