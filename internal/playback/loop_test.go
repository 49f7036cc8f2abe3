package playback

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/ytplay/internal/core/coretest"
	"github.com/tessro/ytplay/internal/navigator"
	"github.com/tessro/ytplay/internal/playlist"
)

func newState(t *testing.T, n int, opts ...navigator.Option) *navigator.State {
	t.Helper()
	index, err := playlist.NewIndex(coretest.Items(n))
	require.NoError(t, err)
	return navigator.New(index, opts...)
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func runLoop(t *testing.T, l *Loop) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return l.Run(ctx)
}

func TestLoopPlaysSequentiallyToNaturalEnd(t *testing.T) {
	state := newState(t, 3)
	engine := coretest.NewEngine()
	engine.PlayFor = 2
	engine.OnLoad = func(n int) {
		if n == 4 {
			state.RequestExit()
		}
	}

	l := New(state, engine, &coretest.Resolver{}, WithPollInterval(time.Millisecond))
	require.NoError(t, runLoop(t, l))

	assert.Equal(t, []string{"stream:A", "stream:B", "stream:C", "stream:A"}, engine.Loaded())
	assert.Zero(t, engine.Stops())
}

func TestLoopSkipInterruptsPlayback(t *testing.T) {
	state := newState(t, 3)
	engine := coretest.NewEngine()
	engine.OnLoad = func(n int) {
		switch n {
		case 1:
			require.NoError(t, state.Skip(2))
		case 2:
			state.RequestExit()
		}
	}

	rec := &recorder{}
	l := New(state, engine, &coretest.Resolver{},
		WithPollInterval(time.Millisecond),
		WithObserver(rec.observe),
	)
	require.NoError(t, runLoop(t, l))

	assert.Equal(t, []string{"stream:A", "stream:C"}, engine.Loaded())
	assert.Equal(t, 1, engine.Stops())
	assert.Contains(t, rec.types(), EventSkipped)
}

func TestLoopBackReplaysPrevious(t *testing.T) {
	state := newState(t, 4)
	engine := coretest.NewEngine()
	engine.OnLoad = func(n int) {
		switch n {
		case 1:
			require.NoError(t, state.Skip(1))
		case 2:
			require.NoError(t, state.Back())
		case 3:
			state.RequestExit()
		}
	}

	l := New(state, engine, &coretest.Resolver{}, WithPollInterval(time.Millisecond))
	require.NoError(t, runLoop(t, l))

	// A single skip moves past the pending item, so C follows A.
	assert.Equal(t, []string{"stream:A", "stream:C", "stream:A"}, engine.Loaded())
}

func TestLoopPausedItemKeepsWaiting(t *testing.T) {
	state := newState(t, 2)
	engine := coretest.NewEngine()
	ctx := context.Background()
	engine.OnLoad = func(n int) {
		if n == 1 {
			require.NoError(t, engine.Pause(ctx))
			go func() {
				time.Sleep(20 * time.Millisecond)
				state.RequestExit()
			}()
		}
	}

	l := New(state, engine, &coretest.Resolver{}, WithPollInterval(time.Millisecond))
	require.NoError(t, runLoop(t, l))

	assert.Equal(t, []string{"stream:A"}, engine.Loaded())
}

func TestLoopStartsInputOnce(t *testing.T) {
	state := newState(t, 2)
	engine := coretest.NewEngine()
	engine.PlayFor = 1
	engine.OnLoad = func(n int) {
		if n == 5 {
			state.RequestExit()
		}
	}

	var starts int
	l := New(state, engine, &coretest.Resolver{},
		WithPollInterval(time.Millisecond),
		WithInputStarter(func() { starts++ }),
	)
	require.NoError(t, runLoop(t, l))

	assert.Equal(t, 1, starts)
}

func TestLoopInputStartsAfterFirstItem(t *testing.T) {
	state := newState(t, 2)
	engine := coretest.NewEngine()
	rec := &recorder{}

	var seenAtStart []EventType
	l := New(state, engine, &coretest.Resolver{},
		WithPollInterval(time.Millisecond),
		WithObserver(rec.observe),
		WithInputStarter(func() {
			seenAtStart = rec.types()
			state.RequestExit()
		}),
	)
	require.NoError(t, runLoop(t, l))

	assert.Equal(t, []EventType{EventNowPlaying}, seenAtStart)
}

func TestLoopSkipsItemsThatFailToLoad(t *testing.T) {
	state := newState(t, 3)
	engine := coretest.NewEngine()
	engine.OnLoad = func(n int) { state.RequestExit() }

	rec := &recorder{}
	l := New(state, engine, &coretest.Resolver{Fail: map[string]bool{"A": true}},
		WithPollInterval(time.Millisecond),
		WithObserver(rec.observe),
	)
	require.NoError(t, runLoop(t, l))

	assert.Equal(t, []string{"stream:B"}, engine.Loaded())
	require.NotEmpty(t, rec.types())
	assert.Equal(t, EventLoadFailed, rec.types()[0])
}

func TestLoopGivesUpWhenNothingLoads(t *testing.T) {
	state := newState(t, 3)
	engine := coretest.NewEngine()
	resolver := &coretest.Resolver{Fail: map[string]bool{"A": true, "B": true, "C": true}}

	l := New(state, engine, resolver, WithPollInterval(time.Millisecond))
	err := runLoop(t, l)

	require.ErrorIs(t, err, ErrNothingPlayable)
	assert.ErrorIs(t, err, coretest.ErrResolve)
	assert.Empty(t, engine.Loaded())
}

func TestLoopRetriesSingleItemPlaylist(t *testing.T) {
	state := newState(t, 1)
	engine := coretest.NewEngine()
	engine.OnLoad = func(int) { state.RequestExit() }
	resolver := &coretest.Resolver{FailTimes: map[string]int{"A": 2}}

	rec := &recorder{}
	l := New(state, engine, resolver,
		WithPollInterval(time.Millisecond),
		WithObserver(rec.observe),
	)
	require.NoError(t, runLoop(t, l))

	assert.Equal(t, []string{"stream:A"}, engine.Loaded())
	types := rec.types()
	require.NotEmpty(t, types)
	assert.Equal(t, []EventType{EventLoadFailed, EventLoadFailed}, types[:2])
	assert.Equal(t, EventNowPlaying, types[len(types)-1])
}

func TestLoopGivesUpOnSingleItemAfterMinimumAttempts(t *testing.T) {
	state := newState(t, 1)
	engine := coretest.NewEngine()
	resolver := &coretest.Resolver{Fail: map[string]bool{"A": true}}

	rec := &recorder{}
	l := New(state, engine, resolver,
		WithPollInterval(time.Millisecond),
		WithObserver(rec.observe),
	)
	err := runLoop(t, l)

	require.ErrorIs(t, err, ErrNothingPlayable)
	assert.Equal(t, []EventType{EventLoadFailed, EventLoadFailed, EventLoadFailed}, rec.types())
	assert.Empty(t, engine.Loaded())
}

func TestLoopHistoryResetEvent(t *testing.T) {
	state := newState(t, 2)
	engine := coretest.NewEngine()
	engine.PlayFor = 1
	engine.OnLoad = func(n int) {
		if n == 2 {
			state.RequestExit()
		}
	}

	rec := &recorder{}
	l := New(state, engine, &coretest.Resolver{},
		WithPollInterval(time.Millisecond),
		WithObserver(rec.observe),
	)
	require.NoError(t, runLoop(t, l))

	assert.Contains(t, rec.types(), EventHistoryReset)
	assert.Len(t, state.Snapshot().History, 1)
}

func TestLoopContextCancel(t *testing.T) {
	state := newState(t, 2)
	engine := coretest.NewEngine()

	ctx, cancel := context.WithCancel(context.Background())
	engine.OnLoad = func(n int) { cancel() }

	l := New(state, engine, &coretest.Resolver{}, WithPollInterval(time.Millisecond))
	err := l.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoopExitBeforeFirstItem(t *testing.T) {
	state := newState(t, 2)
	state.RequestExit()
	engine := coretest.NewEngine()

	l := New(state, engine, &coretest.Resolver{})
	require.NoError(t, l.Run(context.Background()))
	assert.Empty(t, engine.Loaded())
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "now_playing", EventNowPlaying.String())
	assert.Equal(t, "skipped", EventSkipped.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
