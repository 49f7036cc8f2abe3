package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/tessro/ytplay/internal/errors"
)

const (
	// BaseURL is the YouTube Data API v3 base URL.
	BaseURL = "https://www.googleapis.com/youtube/v3"

	// Retry configuration for transient errors
	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client is a YouTube Data API client authenticated with an API key.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	retryWait  time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithRetryWait sets the base wait between retries.
func WithRetryWait(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryWait = d
	}
}

// NewClient creates a Data API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    BaseURL,
		apiKey:     apiKey,
		retryWait:  baseRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request against path with the given query
// parameters and decodes the JSON response into result.
func (c *Client) Get(ctx context.Context, path string, params map[string]string, result any) error {
	withKey := make(map[string]string, len(params)+1)
	for k, v := range params {
		withKey[k] = v
	}
	withKey["key"] = c.apiKey
	fullURL := BuildURL(c.baseURL+path, withKey)

	log.Debug().Str("path", path).Interface("params", params).Msg("youtube api request")

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.retryWait * time.Duration(1<<(attempt-1))
			log.Debug().Int("attempt", attempt).Dur("wait", wait).Err(lastErr).Msg("retrying youtube api request")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %v", apperrors.ErrNetworkError, err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = decodeAPIError(resp.StatusCode, body)
			continue
		}

		if resp.StatusCode >= 400 {
			return decodeAPIError(resp.StatusCode, body)
		}

		if result != nil && len(body) > 0 {
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
		}
		return nil
	}

	return fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// APIError represents a Data API error response.
type APIError struct {
	ErrorInfo struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("YouTube API error %d: %s", e.ErrorInfo.Code, e.ErrorInfo.Message)
}

// Reason returns the first machine-readable reason, if any.
func (e *APIError) Reason() string {
	if len(e.ErrorInfo.Errors) == 0 {
		return ""
	}
	return e.ErrorInfo.Errors[0].Reason
}

// Unwrap maps quota and not-found reasons onto the shared sentinels.
func (e *APIError) Unwrap() error {
	switch e.Reason() {
	case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
		return apperrors.ErrQuotaExceeded
	case "playlistNotFound":
		return apperrors.ErrEmptyPlaylist
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.ErrorInfo.Message != "" {
		if apiErr.ErrorInfo.Code == 0 {
			apiErr.ErrorInfo.Code = status
		}
		return &apiErr
	}
	return fmt.Errorf("API error: status %d, body: %s", status, string(body))
}

// BuildURL builds a URL with query parameters.
func BuildURL(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}

	u, _ := url.Parse(path)
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
