// Package playback runs the main control loop: select an item, load it
// into the engine, then wait for it to finish or be interrupted.
package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tessro/ytplay/internal/core"
	"github.com/tessro/ytplay/internal/navigator"
)

// DefaultPollInterval is how often the loop checks the engine while an
// item plays.
const DefaultPollInterval = 500 * time.Millisecond

// minLoadAttempts is the fewest consecutive load failures tolerated
// before the loop gives up, however short the playlist.
const minLoadAttempts = 3

// ErrNothingPlayable is returned when every item in a row failed to load.
var ErrNothingPlayable = errors.New("no playlist item could be played")

type outcome int

const (
	outcomeFinished outcome = iota
	outcomeSkipped
	outcomeExit
)

// Loop drives the engine from the navigation state.
type Loop struct {
	state    *navigator.State
	engine   core.Engine
	resolver core.Resolver

	interval   time.Duration
	observer   func(Event)
	startInput func()
	inputOnce  sync.Once
	now        func() time.Time
}

// Option configures a Loop.
type Option func(*Loop)

// WithPollInterval sets how often the engine is polled while playing.
func WithPollInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithObserver registers a callback for playback events. It runs on the
// loop's goroutine.
func WithObserver(fn func(Event)) Option {
	return func(l *Loop) {
		l.observer = fn
	}
}

// WithInputStarter sets the function that starts the command reader. It
// is called once, right after the first item starts.
func WithInputStarter(fn func()) Option {
	return func(l *Loop) {
		l.startInput = fn
	}
}

// New creates a playback loop.
func New(state *navigator.State, engine core.Engine, resolver core.Resolver, opts ...Option) *Loop {
	l := &Loop{
		state:    state,
		engine:   engine,
		resolver: resolver,
		interval: DefaultPollInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run plays items until exit is requested, ctx is cancelled, or every
// item fails to load in a row. It returns nil on a requested exit.
func (l *Loop) Run(ctx context.Context) error {
	failures := 0

	for {
		if l.state.ExitRequested() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		sel := l.state.SelectNext()
		log.Debug().
			Int("index", sel.Index).
			Str("mode", sel.Mode.String()).
			Str("id", sel.Item.ID).
			Msg("selected item")
		if sel.Exhausted {
			l.emit(EventHistoryExhausted, sel, nil)
		}

		if err := l.load(ctx, sel.Item); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Str("id", sel.Item.ID).Msg("error loading item")
			l.emit(EventLoadFailed, sel, err)

			failures++
			if failures >= max(l.state.Total(), minLoadAttempts) {
				return fmt.Errorf("%w: last error: %w", ErrNothingPlayable, err)
			}
			continue
		}
		failures = 0

		if l.state.MarkStarted() {
			log.Debug().Msg("every item played, history reset")
			l.emit(EventHistoryReset, sel, nil)
		}
		l.emit(EventNowPlaying, sel, nil)

		if l.startInput != nil {
			l.inputOnce.Do(l.startInput)
		}

		out, err := l.wait(ctx)
		if err != nil {
			return err
		}
		switch out {
		case outcomeExit:
			log.Info().Msg("exit requested")
			return nil
		case outcomeSkipped:
			l.emit(EventSkipped, sel, nil)
		default:
			l.emit(EventFinished, sel, nil)
		}
	}
}

func (l *Loop) load(ctx context.Context, item core.Item) error {
	stream, err := l.resolver.StreamURL(ctx, item)
	if err != nil {
		return fmt.Errorf("resolve stream: %w", err)
	}
	if err := l.engine.Load(ctx, stream, core.LoadOptions{NoVideo: true}); err != nil {
		return fmt.Errorf("load stream: %w", err)
	}
	return nil
}

// wait blocks while the engine reports the item as playing or paused.
// Skip, back and exit requests wake it before the next tick.
func (l *Loop) wait(ctx context.Context) (outcome, error) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return outcomeFinished, ctx.Err()
		case <-ticker.C:
		case <-l.state.Wake():
		}

		if l.state.ExitRequested() {
			return outcomeExit, nil
		}

		active, err := l.active(ctx)
		if err != nil {
			return outcomeFinished, fmt.Errorf("poll engine: %w", err)
		}
		if !active {
			return outcomeFinished, nil
		}

		if l.state.ConsumeSkip() {
			if err := l.engine.Stop(ctx); err != nil {
				log.Warn().Err(err).Msg("error stopping engine")
			}
			return outcomeSkipped, nil
		}
	}
}

func (l *Loop) active(ctx context.Context) (bool, error) {
	playing, err := l.engine.IsPlaying(ctx)
	if err != nil || playing {
		return playing, err
	}
	return l.engine.IsPaused(ctx)
}

func (l *Loop) emit(t EventType, sel navigator.Selection, err error) {
	if l.observer == nil {
		return
	}
	l.observer(Event{
		Type:      t,
		Timestamp: l.now(),
		Index:     sel.Index,
		Total:     l.state.Total(),
		Item:      sel.Item,
		Mode:      sel.Mode,
		Err:       err,
	})
}
