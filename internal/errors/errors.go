package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	// Input validation
	ErrBadInput     = errors.New("bad input")
	ErrVolumeRange  = errors.New("volume out of range")
	ErrSkipAmount   = errors.New("skip amount must be greater than 0")
	ErrUnknownInput = errors.New("invalid command")

	// History
	ErrNoHistory        = errors.New("no songs in history")
	ErrHistoryExhausted = errors.New("no songs remaining in history")
	ErrHistoryEmpty     = errors.New("history offset beyond length")

	// Soft failures from collaborators
	ErrLyricsUnavailable    = errors.New("lyrics unavailable")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	ErrBrowserUnavailable   = errors.New("could not open a browser")
	ErrNothingPlaying       = errors.New("nothing is playing")

	// Startup
	ErrEmptyPlaylist    = errors.New("playlist has no items")
	ErrPlayerNotFound   = errors.New("mpv not found")
	ErrResolverNotFound = errors.New("yt-dlp not found")
	ErrNoStoredPlaylist = errors.New("no playlist stored")
	ErrConfigNotFound   = errors.New("config file not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrNetworkError     = errors.New("network error")
	ErrQuotaExceeded    = errors.New("api quota exceeded")

	// Invariant violations
	ErrOutOfRange = errors.New("index out of range")
)

// YtplayError wraps an error with a user-friendly suggestion.
type YtplayError struct {
	Err        error
	Suggestion string
}

func (e *YtplayError) Error() string {
	return e.Err.Error()
}

func (e *YtplayError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &YtplayError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// IsRecoverable reports whether err is one the command loop reports and
// moves past without touching navigation state.
func IsRecoverable(err error) bool {
	switch {
	case errors.Is(err, ErrBadInput),
		errors.Is(err, ErrVolumeRange),
		errors.Is(err, ErrSkipAmount),
		errors.Is(err, ErrUnknownInput),
		errors.Is(err, ErrNoHistory),
		errors.Is(err, ErrHistoryExhausted),
		errors.Is(err, ErrLyricsUnavailable),
		errors.Is(err, ErrClipboardUnavailable),
		errors.Is(err, ErrNothingPlaying):
		return true
	}
	return false
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var ytErr *YtplayError
	if errors.As(err, &ytErr) && ytErr.Suggestion != "" {
		return ytErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, ErrVolumeRange):
		return "Range: 0 - 100"
	case errors.Is(err, ErrSkipAmount):
		return "Enter a value greater than 0"
	case errors.Is(err, ErrBadInput):
		return "Enter a whole number"
	case errors.Is(err, ErrUnknownInput):
		return "Enter help to view a list of commands"
	case errors.Is(err, ErrPlayerNotFound):
		return "Install mpv or pass its directory with --player-dir"
	case errors.Is(err, ErrResolverNotFound):
		return "Install yt-dlp (pip install yt-dlp) and make sure it is on your PATH"
	case errors.Is(err, ErrNoStoredPlaylist):
		return "Run 'ytplay <playlist-url>' once to store a playlist"
	case errors.Is(err, ErrEmptyPlaylist):
		return "Check that the playlist is public and has at least one video"
	case errors.Is(err, ErrQuotaExceeded) || strings.Contains(errStr, "quota"):
		return "YouTube API quota exhausted. Try again tomorrow or drop --api-key to use yt-dlp"
	}

	if errors.Is(err, ErrNetworkError) || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "timeout") || strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and try again"
	}

	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'ytplay config init' to create a fresh configuration"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// Inline returns a one-line message suitable for the interactive prompt.
func Inline(err error) string {
	if err == nil {
		return ""
	}
	if suggestion := GetSuggestion(err); suggestion != "" {
		return fmt.Sprintf("%s. %s.", capitalize(err.Error()), suggestion)
	}
	return capitalize(err.Error()) + "."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
