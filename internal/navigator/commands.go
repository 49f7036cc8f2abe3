package navigator

import (
	apperrors "github.com/tessro/ytplay/internal/errors"
)

// Skip advances the pending index by amount items, wrapping round-robin
// past the end of the playlist, and arms the skip flag so the item now
// playing ends early.
func (s *State) Skip(amount int) error {
	if amount <= 0 {
		return apperrors.ErrSkipAmount
	}

	s.mu.Lock()
	s.songIndex = skipTarget(s.songIndex, amount, s.index.Len())
	s.skipPending = true
	s.mu.Unlock()

	s.notify()
	return nil
}

// skipTarget computes the next index after skipping amount items from
// songIndex in a playlist of n items. The result is always in [0, n).
func skipTarget(songIndex, amount, n int) int {
	if amount == 1 {
		if songIndex+1 < n {
			return songIndex + 1
		}
		return 0
	}

	target := songIndex + amount
	if target <= n {
		return songIndex + amount - 1
	}
	// (target-1) mod n; target/n multiples of the playlist are dropped.
	return (target - 1) % n
}

// Back queues a step backward through history. It fails when nothing has
// played yet.
func (s *State) Back() error {
	s.mu.Lock()
	if s.history.Len() == 0 {
		s.mu.Unlock()
		return apperrors.ErrNoHistory
	}
	s.backPending = true
	s.skipPending = true
	s.mu.Unlock()

	s.notify()
	return nil
}

// ToggleLoop flips loop mode and returns the new value.
func (s *State) ToggleLoop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = !s.loop
	return s.loop
}

// ToggleShuffle flips shuffle mode and returns the new value.
func (s *State) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffle = !s.shuffle
	return s.shuffle
}

// Modes returns the loop and shuffle flags.
func (s *State) Modes() (loop, shuffle bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop, s.shuffle
}

// RequestExit asks the playback loop to stop.
func (s *State) RequestExit() {
	s.mu.Lock()
	s.exit = true
	s.mu.Unlock()

	s.notify()
}

// ExitRequested reports whether exit has been requested.
func (s *State) ExitRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exit
}

// ConsumeSkip clears a pending skip and reports whether one was set.
func (s *State) ConsumeSkip() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.skipPending {
		return false
	}
	s.skipPending = false
	return true
}
