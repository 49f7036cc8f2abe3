// Package lyrics looks up song lyrics on lrclib.net.
package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tessro/ytplay/internal/core"
	apperrors "github.com/tessro/ytplay/internal/errors"
)

const (
	// BaseURL is the lrclib.net API base URL.
	BaseURL   = "https://lrclib.net/api"
	userAgent = "ytplay (https://github.com/tessro/ytplay)"
)

// Client is an lrclib.net API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ core.LyricsSource = (*Client)(nil)

// New creates a new lrclib client. An empty baseURL uses BaseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Result is one search hit.
type Result struct {
	ID           int     `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// Search searches for lyrics matching the query.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var results []Result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return results, nil
}

// Lyrics returns the plain lyrics of the first search hit that has any.
// Instrumental tracks report that instead of lyrics.
func (c *Client) Lyrics(ctx context.Context, title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", apperrors.ErrLyricsUnavailable
	}

	results, err := c.Search(ctx, title)
	if err != nil {
		return "", err
	}
	for _, r := range results {
		if r.PlainLyrics != "" {
			return strings.TrimSpace(r.PlainLyrics), nil
		}
		if r.SyncedLyrics != "" {
			return stripTimestamps(r.SyncedLyrics), nil
		}
	}
	for _, r := range results {
		if r.Instrumental {
			return "[Instrumental]", nil
		}
	}
	return "", apperrors.ErrLyricsUnavailable
}

// stripTimestamps removes LRC "[mm:ss.xx]" prefixes.
func stripTimestamps(lrc string) string {
	lines := strings.Split(lrc, "\n")
	for i, line := range lines {
		for strings.HasPrefix(line, "[") {
			end := strings.Index(line, "]")
			if end < 0 {
				break
			}
			line = line[end+1:]
		}
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
