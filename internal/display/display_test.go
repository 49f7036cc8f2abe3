package display

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tessro/ytplay/internal/core"
	"github.com/tessro/ytplay/internal/navigator"
	"github.com/tessro/ytplay/internal/playback"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Daft Punk - Around the World (Official Video)", "Daft Punk - Around the World"},
		{"Artist - Song [Lyrics]", "Artist - Song"},
		{"Artist - Song ft. Someone Else", "Artist - Song"},
		{"Artist - Song feat. Other (Remastered 2011) [HD]", "Artist - Song"},
		{"Artist - Song | Official Audio", "Artist - Song"},
		{"Plain Title", "Plain Title"},
		{"  spaced   out  ", "spaced out"},
	}

	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:03:25", "3:25"},
		{"01:02:03", "1:02:03"},
		{"00:00:07", "0:07"},
		{"4:05", "4:05"},
		{"12:00:00", "12:00:00"},
		{"not a time", "not a time"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSecondsToDuration(t *testing.T) {
	if got := SecondsToDuration(205); got != "00:03:25" {
		t.Errorf("SecondsToDuration(205) = %q, want 00:03:25", got)
	}
	if got := SecondsToDuration(-4); got != "00:00:00" {
		t.Errorf("SecondsToDuration(-4) = %q, want 00:00:00", got)
	}
}

func TestFormatDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	got := FormatDate("2019-05-01 12:00:00", now)
	if !strings.HasPrefix(got, "May 1, 2019 (") || !strings.HasSuffix(got, "ago)") {
		t.Errorf("FormatDate() = %q", got)
	}

	if got := FormatDate("garbage", now); got != "garbage" {
		t.Errorf("FormatDate(garbage) = %q, want unchanged", got)
	}
}

func TestFormatViewsAndRating(t *testing.T) {
	if got := FormatViews(1234567); got != "1,234,567" {
		t.Errorf("FormatViews() = %q, want 1,234,567", got)
	}
	if got := FormatRating(4.8765); got != "4.88" {
		t.Errorf("FormatRating() = %q, want 4.88", got)
	}
	if got := FormatRating(0); got != "0" {
		t.Errorf("FormatRating(0) = %q, want 0", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate() = %q, want short", got)
	}
	if got := Truncate("a very long title indeed", 10); got != "a very ..." {
		t.Errorf("Truncate() = %q, want %q", got, "a very ...")
	}
}

func TestNowPlaying(t *testing.T) {
	item := core.Item{
		ID:        "abc",
		Title:     "Song Title",
		Author:    "Channel",
		Duration:  "00:03:25",
		ViewCount: 1500,
		Rating:    4.5,
		Published: "2020-01-01",
	}

	out := NowPlaying(item, 80, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	for _, want := range []string{"Song Title", "Channel", "3:25", "1,500", "4.5", "Jan 1, 2020"} {
		if !strings.Contains(out, want) {
			t.Errorf("NowPlaying() missing %q:\n%s", want, out)
		}
	}
}

func TestHelp(t *testing.T) {
	entries := []HelpEntry{
		{Aliases: []string{"skip", "s"}, Description: "Skips song(s)."},
	}
	out := Help(entries, true, false)
	for _, want := range []string{"skip, s", "Skips song(s).", "Looping:", "Enabled", "Shuffling:", "Disabled"} {
		if !strings.Contains(out, want) {
			t.Errorf("Help() missing %q", want)
		}
	}
}

func TestFormatterLine(t *testing.T) {
	e := playback.Event{
		Type:      playback.EventNowPlaying,
		Timestamp: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Index:     1,
		Total:     3,
		Item:      core.Item{Title: "Song B", Duration: "00:04:00"},
	}

	f := NewFormatter(WithEmoji(false), WithTimestamp(true))
	want := "09:30:00 Now playing [2/3]: Song B (4:00)"
	if got := f.Format(e); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatterTemplate(t *testing.T) {
	e := playback.Event{
		Type:  playback.EventSkipped,
		Index: 0,
		Total: 2,
		Item:  core.Item{ID: "xyz", Title: "Song A"},
		Mode:  navigator.ModeShuffle,
	}

	f := NewFormatter(WithTemplate("{{.Type}} {{.Position}}/{{.Total}} {{.Title}} {{.Mode}} {{.URL}}"))
	want := "skipped 1/2 Song A shuffle https://www.youtube.com/watch?v=xyz"
	if got := f.Format(e); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatterInvalidTemplateFallsBack(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Broken"), WithEmoji(false))
	e := playback.Event{Type: playback.EventLoadFailed, Item: core.Item{Title: "X"}, Err: errors.New("boom")}
	if got := f.Format(e); got != "Could not play X: boom" {
		t.Errorf("Format() = %q", got)
	}
}
