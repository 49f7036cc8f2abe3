// Package navigator decides which playlist item plays next.
//
// A single State is shared by the playback loop and the command router.
// Every field is guarded by one mutex, so a command that updates several
// fields at once (a skip sets the next index and arms the skip flag) is
// observed atomically by the loop.
package navigator

import (
	"math/rand/v2"
	"sync"

	"github.com/tessro/ytplay/internal/core"
	apperrors "github.com/tessro/ytplay/internal/errors"
	"github.com/tessro/ytplay/internal/playlist"
)

// Mode identifies which rule chose the next item.
type Mode int

const (
	ModeSequential Mode = iota
	ModeBack
	ModeLoop
	ModeShuffle
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBack:
		return "back"
	case ModeLoop:
		return "loop"
	case ModeShuffle:
		return "shuffle"
	default:
		return "sequential"
	}
}

// Selection is the outcome of SelectNext.
type Selection struct {
	Index int
	Item  core.Item
	Mode  Mode

	// Exhausted is set when a back request found no earlier history;
	// the current item is selected again.
	Exhausted bool
}

// Snapshot is a point-in-time copy of the navigation state.
type Snapshot struct {
	SongIndex   int
	SongCounter int
	BackAmount  int
	SkipPending bool
	BackPending bool
	Loop        bool
	Shuffle     bool
	Exit        bool
	Current     int // -1 before the first item plays
	History     []int
}

// State is the shared navigation state.
type State struct {
	mu      sync.Mutex
	index   *playlist.Index
	history *playlist.History
	intn    func(n int) int
	wake    chan struct{}

	songIndex   int
	songCounter int
	backAmount  int
	skipPending bool
	backPending bool
	loop        bool
	shuffle     bool
	exit        bool
	current     int
}

// Option configures a State.
type Option func(*State)

// WithRand sets the random source used by shuffle. intn must return a
// value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(s *State) {
		if intn != nil {
			s.intn = intn
		}
	}
}

// WithLoop starts the state with loop mode enabled.
func WithLoop(enabled bool) Option {
	return func(s *State) {
		s.loop = enabled
	}
}

// WithShuffle starts the state with shuffle mode enabled.
func WithShuffle(enabled bool) Option {
	return func(s *State) {
		s.shuffle = enabled
	}
}

// New creates a navigation state over index.
func New(index *playlist.Index, opts ...Option) *State {
	if index.Len() == 0 {
		panic(apperrors.ErrEmptyPlaylist)
	}
	s := &State{
		index:   index,
		history: playlist.NewHistory(),
		intn:    rand.IntN,
		wake:    make(chan struct{}, 1),
		current: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Total returns the number of items in the playlist.
func (s *State) Total() int {
	return s.index.Len()
}

// Wake returns a channel that receives after a skip, back or exit
// request so a waiting loop can react before its next poll tick.
func (s *State) Wake() <-chan struct{} {
	return s.wake
}

func (s *State) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		SongIndex:   s.songIndex,
		SongCounter: s.songCounter,
		BackAmount:  s.backAmount,
		SkipPending: s.skipPending,
		BackPending: s.backPending,
		Loop:        s.loop,
		Shuffle:     s.shuffle,
		Exit:        s.exit,
		Current:     s.current,
		History:     s.history.Entries(),
	}
}

// Current returns the item most recently selected, if any.
func (s *State) Current() (core.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current < 0 {
		return core.Item{}, false
	}
	return s.index.Resolve(s.current), true
}

// MarkStarted records that the selected item began playing. It bumps the
// play counter and compacts the history once its length reaches the
// playlist size. It reports whether a cycle reset happened.
func (s *State) MarkStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.songCounter++
	if s.history.Len() >= s.index.Len() {
		s.history.ResetToLast()
		s.songCounter = 0
		return true
	}
	return false
}
