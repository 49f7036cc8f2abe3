// Package youtube loads playlists and resolves audio streams, through
// yt-dlp or the YouTube Data API.
package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tessro/ytplay/internal/core"
)

var playlistIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{10,}$`)

// ParsePlaylistID extracts the playlist ID from a playlist URL. A bare
// ID is returned as is.
func ParsePlaylistID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if playlistIDPattern.MatchString(raw) {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid playlist URL %q: %w", raw, err)
	}
	if id := u.Query().Get("list"); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no playlist ID in %q", raw)
}

// PlaylistURL returns the canonical URL for a playlist ID.
func PlaylistURL(id string) string {
	return "https://www.youtube.com/playlist?list=" + id
}

// ParseISODuration converts an ISO 8601 duration such as "PT1H2M3S"
// into the "HH:MM:SS" form items carry.
func ParseISODuration(s string) (string, error) {
	if !strings.HasPrefix(s, "P") {
		return "", fmt.Errorf("invalid duration %q", s)
	}

	var total int
	var num strings.Builder
	inTime := false
	for _, r := range s[1:] {
		switch {
		case r == 'T':
			inTime = true
		case r >= '0' && r <= '9':
			num.WriteRune(r)
		default:
			n, err := strconv.Atoi(num.String())
			if err != nil {
				return "", fmt.Errorf("invalid duration %q", s)
			}
			num.Reset()
			switch {
			case r == 'D' && !inTime:
				total += n * 86400
			case r == 'H' && inTime:
				total += n * 3600
			case r == 'M' && inTime:
				total += n * 60
			case r == 'S' && inTime:
				total += n
			default:
				return "", fmt.Errorf("invalid duration %q", s)
			}
		}
	}
	if num.Len() > 0 {
		return "", fmt.Errorf("invalid duration %q", s)
	}
	return clock(total), nil
}

func clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// publishedDate converts an RFC 3339 timestamp into "YYYY-MM-DD HH:MM:SS".
func publishedDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

func videoToItem(v Video) core.Item {
	item := core.Item{
		ID:        v.ID,
		Title:     v.Snippet.Title,
		Author:    v.Snippet.ChannelTitle,
		Published: publishedDate(v.Snippet.PublishedAt),
	}
	if d, err := ParseISODuration(v.ContentDetails.Duration); err == nil {
		item.Duration = d
	}
	if n, err := strconv.ParseInt(v.Statistics.ViewCount, 10, 64); err == nil {
		item.ViewCount = n
	}
	return item
}
