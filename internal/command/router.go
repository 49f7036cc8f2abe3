// Package command reads user commands and applies them to the navigation
// state and the engine.
package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tessro/ytplay/internal/core"
	"github.com/tessro/ytplay/internal/display"
	apperrors "github.com/tessro/ytplay/internal/errors"
	"github.com/tessro/ytplay/internal/navigator"
)

const (
	defaultLyricsTimeout = 10 * time.Second

	// maxLineLength bounds a single line of command input.
	maxLineLength = 4096
)

// Router executes commands on behalf of the input reader.
type Router struct {
	state     *navigator.State
	engine    core.Engine
	clipboard core.Clipboard
	lyrics    core.LyricsSource
	browser   core.Browser

	out           io.Writer
	now           func() time.Time
	lyricsTimeout time.Duration
}

// Option configures a Router.
type Option func(*Router)

// WithClipboard sets the clipboard used by copy-url.
func WithClipboard(c core.Clipboard) Option {
	return func(r *Router) {
		r.clipboard = c
	}
}

// WithLyrics sets the lyrics source used by the lyrics command.
func WithLyrics(l core.LyricsSource) Option {
	return func(r *Router) {
		r.lyrics = l
	}
}

// WithBrowser sets the browser used by the open command.
func WithBrowser(b core.Browser) Option {
	return func(r *Router) {
		r.browser = b
	}
}

// WithOutput sets where command output is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Router) {
		if w != nil {
			r.out = w
		}
	}
}

// WithLyricsTimeout bounds a single lyrics lookup.
func WithLyricsTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.lyricsTimeout = d
		}
	}
}

// New creates a router over state and engine.
func New(state *navigator.State, engine core.Engine, opts ...Option) *Router {
	r := &Router{
		state:         state,
		engine:        engine,
		out:           os.Stdout,
		now:           time.Now,
		lyricsTimeout: defaultLyricsTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads commands from in until EOF, an exit command, or ctx is
// cancelled. Errors from individual commands are reported and reading
// continues.
func (r *Router) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(r.out, display.Muted.Render("===Enter help to view a list of commands==="))

	br := bufio.NewReader(in)
	r.prompt()
	for {
		line, tooLong, err := readLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if tooLong {
			r.report(apperrors.WithSuggestion(apperrors.ErrBadInput, "Enter help to view a list of commands"))
			r.prompt()
			continue
		}

		cmd, ok := Parse(line)
		if !ok {
			r.prompt()
			continue
		}

		log.Debug().Str("command", cmd.Kind.String()).Str("value", cmd.Value).Msg("command received")
		if err := r.Execute(ctx, cmd); err != nil {
			r.report(err)
		}
		if cmd.Kind == KindExit {
			return nil
		}
		r.prompt()
	}
}

// readLine returns the next line from br without its line ending. A line
// longer than maxLineLength is consumed in full and reported as too long.
func readLine(br *bufio.Reader) (string, bool, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > maxLineLength {
				tooLong = true
				buf = nil
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// Execute runs a single command. The returned errors are all
// recoverable: the caller reports them and keeps reading.
func (r *Router) Execute(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case KindHelp:
		loop, shuffle := r.state.Modes()
		fmt.Fprintln(r.out, display.Help(HelpEntries(), loop, shuffle))
		return nil
	case KindVolume:
		return r.volume(ctx, cmd)
	case KindSkip:
		return r.skip(cmd)
	case KindPlayPause:
		return r.engine.Pause(ctx)
	case KindRepeat:
		return r.engine.SeekToStart(ctx)
	case KindBack:
		return r.state.Back()
	case KindLoop:
		fmt.Fprintf(r.out, "Looping %s.\n", enabledText(r.state.ToggleLoop()))
		return nil
	case KindShuffle:
		fmt.Fprintf(r.out, "Shuffle %s.\n", enabledText(r.state.ToggleShuffle()))
		return nil
	case KindCopyURL:
		return r.copyURL()
	case KindLyrics:
		return r.showLyrics(ctx)
	case KindInfo:
		return r.info()
	case KindOpen:
		return r.open()
	case KindExit:
		r.state.RequestExit()
		return nil
	default:
		return apperrors.ErrUnknownInput
	}
}

func (r *Router) volume(ctx context.Context, cmd Command) error {
	if !cmd.HasValue() {
		v, err := r.engine.Volume(ctx)
		if err != nil {
			return fmt.Errorf("get volume: %w", err)
		}
		fmt.Fprintf(r.out, "Volume: %d\n", v)
		return nil
	}

	v, err := strconv.Atoi(cmd.Value)
	if err != nil {
		return apperrors.WithSuggestion(apperrors.ErrBadInput, "Enter an integer from 0 - 100")
	}
	if v < 0 || v > 100 {
		return apperrors.ErrVolumeRange
	}
	if err := r.engine.SetVolume(ctx, v); err != nil {
		return fmt.Errorf("set volume: %w", err)
	}
	fmt.Fprintf(r.out, "Volume set to %s\n", display.Enabled.Render(strconv.Itoa(v)))
	return nil
}

func (r *Router) skip(cmd Command) error {
	amount := 1
	if cmd.HasValue() {
		n, err := strconv.Atoi(cmd.Value)
		if err != nil {
			return apperrors.WithSuggestion(apperrors.ErrBadInput, "Enter a number")
		}
		amount = n
	}
	return r.state.Skip(amount)
}

func (r *Router) copyURL() error {
	item, ok := r.state.Current()
	if !ok {
		return apperrors.ErrNothingPlaying
	}
	if r.clipboard == nil {
		return apperrors.ErrClipboardUnavailable
	}
	url := item.URL()
	if err := r.clipboard.Copy(url); err != nil {
		log.Warn().Err(err).Msg("error copying to clipboard")
		return fmt.Errorf("%w: %v", apperrors.ErrClipboardUnavailable, err)
	}
	fmt.Fprintf(r.out, "Copied %s\n", url)
	return nil
}

func (r *Router) open() error {
	item, ok := r.state.Current()
	if !ok {
		return apperrors.ErrNothingPlaying
	}
	if r.browser == nil {
		return apperrors.ErrBrowserUnavailable
	}
	if err := r.browser.Open(item.URL()); err != nil {
		log.Warn().Err(err).Msg("error opening browser")
		return fmt.Errorf("%w: %v", apperrors.ErrBrowserUnavailable, err)
	}
	fmt.Fprintf(r.out, "Opened %s\n", item.URL())
	return nil
}

func (r *Router) showLyrics(ctx context.Context) error {
	item, ok := r.state.Current()
	if !ok {
		return apperrors.ErrNothingPlaying
	}
	if r.lyrics == nil {
		return apperrors.ErrLyricsUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, r.lyricsTimeout)
	defer cancel()

	title := display.CleanTitle(item.Title)
	text, err := r.lyrics.Lyrics(ctx, title)
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("error fetching lyrics")
		return fmt.Errorf("%w for %q", apperrors.ErrLyricsUnavailable, title)
	}
	fmt.Fprintln(r.out, display.Heading.Render(title))
	fmt.Fprintln(r.out, text)
	return nil
}

func (r *Router) info() error {
	item, ok := r.state.Current()
	if !ok {
		return apperrors.ErrNothingPlaying
	}
	fmt.Fprintln(r.out, display.NowPlaying(item, display.Width(r.out), r.now()))
	return nil
}

func (r *Router) report(err error) {
	fmt.Fprintln(r.out, display.ErrorText(apperrors.Inline(err)))
}

func (r *Router) prompt() {
	fmt.Fprint(r.out, display.Prompt)
}

func enabledText(on bool) string {
	if on {
		return display.Enabled.Render("enabled")
	}
	return display.Disabled.Render("disabled")
}
