// Package healthcheck is the HTTP client for the health check server: the
// one-time topology fetch and the repeated status refresh.
package healthcheck

import (
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

// DefaultTimeout bounds every request made by the client.
const DefaultTimeout = 30 * time.Second

// Client represents a health check server API client
type Client struct {
	host       string
	port       int
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new health check server client.
// token is optional; when set it is sent as a bearer token.
func NewClient(host string, port int, token string) (*Client, error) {
	if host == "" {
		return nil, fmt.Errorf("host cannot be empty")
	}

	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}

	return &Client{
		host:    host,
		port:    port,
		token:   token,
		baseURL: BaseURL(host, port),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}, nil
}

// BaseURL returns the root URL of the health check server, with a trailing
// slash. A host that already carries a scheme is kept as is.
func BaseURL(host string, port int) string {
	scheme := "http"
	if i := strings.Index(host, "://"); i >= 0 {
		scheme = host[:i]
		host = host[i+3:]
	}
	host = strings.TrimSuffix(host, "/")
	return fmt.Sprintf("%s://%s:%d/", scheme, host, port)
}

// GetHost returns the configured host.
func (c *Client) GetHost() string {
	return c.host
}

// GetPort returns the configured port.
func (c *Client) GetPort() int {
	return c.port
}

// FetchTopology lists the groups and servers that make up serverSet.
// Servers carry no status yet.
func (c *Client) FetchTopology(ctx context.Context, serverSet string) ([]ServerGroup, error) {
	body, err := c.get(ctx, "servers/"+url.PathEscape(serverSet))
	if err != nil {
		return nil, err
	}

	var groups []ServerGroup
	if err := json.Unmarshal(body, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse topology response: %w", err)
	}

	return groups, nil
}

// RefreshStatus fetches the current status of every server in serverSet along
// with the server's suggested time for the next refresh.
func (c *Client) RefreshStatus(ctx context.Context, serverSet string) (*RefreshResult, error) {
	body, err := c.get(ctx, url.PathEscape(serverSet))
	if err != nil {
		return nil, err
	}

	var result RefreshResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse status response: %w", err)
	}

	return &result, nil
}

// get performs a GET request relative to the base URL
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newRequestError(resp.StatusCode, body)
	}

	return body, nil
}

// RequestError is returned for transport failures and non-2xx responses.
// Message holds the server supplied explanation, if the error body had one.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("HTTP request failed with status %d", e.StatusCode)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "health check request failed"
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// errorBody is the JSON shape of an error response.
type errorBody struct {
	Error string `json:"error"`
}

func newRequestError(status int, body []byte) *RequestError {
	re := &RequestError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		re.Message = strings.TrimSpace(eb.Error)
	}

	return re
}

// ErrorMessage extracts the human readable message carried by err, if any.
func ErrorMessage(err error) (string, bool) {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message, true
	}
	return "", false
}
