package display

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

var (
	bracketed   = regexp.MustCompile(`\s*[\(\[\{][^\)\]\}]*[\)\]\}]`)
	featuring   = regexp.MustCompile(`(?i)\s+(ft\.?|feat\.?|featuring)\s+.*$`)
	decorations = regexp.MustCompile(`(?i)\s*[-|]\s*(official\s+(music\s+)?video|official\s+audio|lyrics?|audio|hd|hq|4k)\s*$`)
	spaces      = regexp.MustCompile(`\s+`)
)

// CleanTitle strips the decorations video titles carry so the result is
// usable as a lyrics search query.
func CleanTitle(title string) string {
	s := bracketed.ReplaceAllString(title, "")
	s = featuring.ReplaceAllString(s, "")
	s = decorations.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.Trim(s, " -|")
}

// FormatDuration turns a raw "HH:MM:SS" duration into "M:SS", or
// "H:MM:SS" when the item is an hour or longer. Input it cannot parse is
// returned unchanged.
func FormatDuration(raw string) string {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) == 0 || len(parts) > 3 {
		return raw
	}

	var total int
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return raw
		}
		total = total*60 + n
	}

	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// SecondsToDuration renders a second count in the raw "HH:MM:SS" form
// items carry.
func SecondsToDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FormatDate turns a raw "YYYY-MM-DD ..." publish date into
// "Jan 2, 2006 (3 years ago)" relative to now.
func FormatDate(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if len(raw) < 10 {
		return raw
	}
	t, err := time.Parse("2006-01-02", raw[:10])
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%s (%s)", t.Format("Jan 2, 2006"), humanize.RelTime(t, now, "ago", "from now"))
}

// FormatViews renders a view count with thousands separators.
func FormatViews(n int64) string {
	return humanize.Comma(n)
}

// FormatRating rounds a rating to two decimal places.
func FormatRating(r float64) string {
	return strconv.FormatFloat(math.Round(r*100)/100, 'f', -1, 64)
}

// Truncate shortens s to fit within width terminal cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
