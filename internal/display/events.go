package display

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/ytplay/internal/playback"
)

// Formatter renders playback events as single lines. It is used when the
// full information panel is turned off.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template. An invalid template is
// ignored.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e playback.Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e playback.Event) string {
	var parts []string
	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}
	parts = append(parts, describe(e))
	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e playback.Event) string {
	data := templateData{
		Type:      e.Type.String(),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
		Title:     e.Item.Title,
		Channel:   e.Item.Author,
		Duration:  FormatDuration(e.Item.Duration),
		URL:       e.Item.URL(),
		Mode:      e.Mode.String(),
		Position:  e.Index + 1,
		Total:     e.Total,
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Title     string
	Channel   string
	Duration  string
	URL       string
	Mode      string
	Position  int
	Total     int
}

func describe(e playback.Event) string {
	switch e.Type {
	case playback.EventNowPlaying:
		return fmt.Sprintf("Now playing [%d/%d]: %s (%s)",
			e.Index+1, e.Total, e.Item.Title, FormatDuration(e.Item.Duration))
	case playback.EventFinished:
		return "Finished: " + e.Item.Title
	case playback.EventSkipped:
		return "Skipped: " + e.Item.Title
	case playback.EventHistoryReset:
		return "Every song has played, starting a new cycle"
	case playback.EventHistoryExhausted:
		return "No songs remaining in history."
	case playback.EventLoadFailed:
		if e.Err != nil {
			return fmt.Sprintf("Could not play %s: %v", e.Item.Title, e.Err)
		}
		return "Could not play " + e.Item.Title
	default:
		return "Unknown event"
	}
}

func eventEmoji(t playback.EventType) string {
	switch t {
	case playback.EventNowPlaying:
		return "🎵"
	case playback.EventFinished:
		return "✅"
	case playback.EventSkipped:
		return "⏭️"
	case playback.EventHistoryReset:
		return "🔁"
	case playback.EventHistoryExhausted:
		return "⏮️"
	case playback.EventLoadFailed:
		return "⚠️"
	default:
		return "❓"
	}
}
