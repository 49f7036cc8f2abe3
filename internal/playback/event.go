package playback

import (
	"time"

	"github.com/tessro/ytplay/internal/core"
	"github.com/tessro/ytplay/internal/navigator"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventNowPlaying EventType = iota
	EventFinished
	EventSkipped
	EventHistoryReset
	EventHistoryExhausted
	EventLoadFailed
)

// String returns the event name used in logs and templates.
func (t EventType) String() string {
	switch t {
	case EventNowPlaying:
		return "now_playing"
	case EventFinished:
		return "finished"
	case EventSkipped:
		return "skipped"
	case EventHistoryReset:
		return "history_reset"
	case EventHistoryExhausted:
		return "history_exhausted"
	case EventLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

// Event describes a transition of the playback loop.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Index     int
	Total     int
	Item      core.Item
	Mode      navigator.Mode
	Err       error
}
