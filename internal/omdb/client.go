// Package omdb provides a client for the Open Movie Database ratings API.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lepinkainen/holocron/internal/errors"
)

const (
	defaultBaseURL = "https://www.omdbapi.com"
	defaultTimeout = 10 * time.Second
	serviceName    = "omdb"

	requestLimitMessage = "Request limit reached!"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an OMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// NewClient creates a new OMDB client. The API key is sent with every request.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OMDB API key is required (set omdb.api_key in config or OMDB_API_KEY)")
	}

	client := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the OMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithTimeout replaces the default HTTP client with one using the given timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// FetchByTitle retrieves rating data from OMDB for an exact title.
// A title OMDB does not know returns (nil, nil).
func (c *Client) FetchByTitle(ctx context.Context, title string) (*Response, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	slog.Debug("Fetching OMDB data by title", "title", title)

	params := url.Values{}
	params.Set("t", title)
	params.Set("apikey", c.apiKey)
	endpoint := c.baseURL + "/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(io.LimitReader(resp.Body, 512))
		if err != nil {
			slog.Warn("Failed to read error response body", "error", err)
		} else {
			var errorResp struct {
				Response string `json:"Response"`
				Error    string `json:"Error"`
			}
			if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
				if errorResp.Error == requestLimitMessage {
					return nil, errors.NewRateLimitError(serviceName, errorResp.Error)
				}
				return nil, errors.NewAPIError(serviceName, resp.StatusCode, errorResp.Error)
			}
		}
		return nil, errors.NewAPIError(serviceName, resp.StatusCode, "")
	}

	var omdbResp Response
	if err := json.NewDecoder(resp.Body).Decode(&omdbResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if omdbResp.Response != "True" {
		if strings.Contains(strings.ToLower(omdbResp.Error), "not found") {
			slog.Debug("Movie not found in OMDB", "title", title)
			return nil, nil
		}
		if omdbResp.Error == requestLimitMessage {
			return nil, errors.NewRateLimitError(serviceName, omdbResp.Error)
		}
		if omdbResp.Error == "" {
			omdbResp.Error = "unexpected response"
		}
		return nil, errors.NewAPIError(serviceName, 0, omdbResp.Error)
	}

	return &omdbResp, nil
}
