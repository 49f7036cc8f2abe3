package navigator

import (
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/tessro/ytplay/internal/core"
	apperrors "github.com/tessro/ytplay/internal/errors"
	"github.com/tessro/ytplay/internal/playlist"
)

func newTestState(t *testing.T, n int, opts ...Option) *State {
	t.Helper()
	items := make([]core.Item, n)
	for i := range items {
		items[i] = core.Item{ID: string(rune('A' + i)), Title: "Song " + string(rune('A'+i))}
	}
	index, err := playlist.NewIndex(items)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	return New(index, opts...)
}

// play selects the next item and marks it started, like one loop iteration.
func play(s *State) Selection {
	sel := s.SelectNext()
	s.MarkStarted()
	return sel
}

// sequence returns a rand source that replays values in order.
func sequence(values ...int) func(int) int {
	var i int
	return func(n int) int {
		v := values[i%len(values)]
		i++
		return v % n
	}
}

func TestSequentialAdvanceWraps(t *testing.T) {
	s := newTestState(t, 3)

	want := []int{0, 1, 2, 0, 1, 2, 0}
	for i, w := range want {
		sel := play(s)
		if sel.Index != w {
			t.Fatalf("play %d: Index = %d, want %d", i, sel.Index, w)
		}
		if sel.Mode != ModeSequential {
			t.Errorf("play %d: Mode = %v, want sequential", i, sel.Mode)
		}
	}
}

func TestHistoryGrowsThenResets(t *testing.T) {
	for n := 1; n <= 5; n++ {
		s := newTestState(t, n)
		for call := 1; call <= 3*n; call++ {
			sel := s.SelectNext()
			before := len(s.Snapshot().History)
			reset := s.MarkStarted()
			after := s.Snapshot().History

			if before == n {
				if !reset {
					t.Fatalf("n=%d call=%d: MarkStarted() = false at full history", n, call)
				}
				if len(after) != 1 || after[0] != sel.Index {
					t.Fatalf("n=%d call=%d: history after reset = %v, want [%d]", n, call, after, sel.Index)
				}
				if got := s.Snapshot().SongCounter; got != 0 {
					t.Errorf("n=%d: SongCounter = %d after reset, want 0", n, got)
				}
			} else if reset {
				t.Fatalf("n=%d call=%d: unexpected reset with %d entries", n, call, before)
			}
		}
	}
}

func TestSkipTargetAlwaysInRange(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for songIndex := 0; songIndex < n; songIndex++ {
			for amount := 1; amount <= 4*n+3; amount++ {
				got := skipTarget(songIndex, amount, n)
				if got < 0 || got >= n {
					t.Fatalf("skipTarget(%d, %d, %d) = %d, out of range", songIndex, amount, n, got)
				}
			}
		}
	}
}

func TestSkipTarget(t *testing.T) {
	tests := []struct {
		name      string
		songIndex int
		amount    int
		n         int
		want      int
	}{
		{"one advances", 0, 1, 3, 1},
		{"one wraps at end", 2, 1, 3, 0},
		{"one after last item played", 3, 1, 3, 0},
		{"several within range", 1, 2, 5, 2},
		{"exactly to end", 0, 3, 3, 2},
		{"round robin", 0, 5, 3, 1},
		{"round robin from pending C", 2, 2, 3, 0},
		{"multiple of length", 2, 4, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := skipTarget(tt.songIndex, tt.amount, tt.n); got != tt.want {
				t.Errorf("skipTarget(%d, %d, %d) = %d, want %d", tt.songIndex, tt.amount, tt.n, got, tt.want)
			}
		})
	}
}

func TestSkipRejectsNonPositive(t *testing.T) {
	s := newTestState(t, 3)
	play(s)
	before := s.Snapshot()

	for _, amount := range []int{0, -1} {
		if err := s.Skip(amount); !errors.Is(err, apperrors.ErrSkipAmount) {
			t.Errorf("Skip(%d) error = %v, want ErrSkipAmount", amount, err)
		}
	}

	after := s.Snapshot()
	if after.SongIndex != before.SongIndex || after.SkipPending {
		t.Errorf("state changed after rejected skip: %+v", after)
	}
}

func TestSkipArmsFlagAndMovesIndex(t *testing.T) {
	s := newTestState(t, 3)

	if err := s.Skip(5); err != nil {
		t.Fatalf("Skip() error = %v", err)
	}
	snap := s.Snapshot()
	if snap.SongIndex != 1 {
		t.Errorf("SongIndex = %d, want 1", snap.SongIndex)
	}
	if !snap.SkipPending {
		t.Error("SkipPending = false, want true")
	}

	select {
	case <-s.Wake():
	default:
		t.Error("Skip() did not signal Wake()")
	}

	if !s.ConsumeSkip() {
		t.Error("ConsumeSkip() = false, want true")
	}
	if s.ConsumeSkip() {
		t.Error("second ConsumeSkip() = true, want false")
	}

	// The next iteration takes the already-advanced index.
	if sel := play(s); sel.Index != 1 {
		t.Errorf("Index after skip = %d, want 1", sel.Index)
	}
}

func TestBackRequiresHistory(t *testing.T) {
	s := newTestState(t, 3)
	if err := s.Back(); !errors.Is(err, apperrors.ErrNoHistory) {
		t.Fatalf("Back() error = %v, want ErrNoHistory", err)
	}
	if snap := s.Snapshot(); snap.BackPending || snap.SkipPending {
		t.Errorf("flags set after rejected back: %+v", snap)
	}
}

func TestBackRestoresPreviousIndex(t *testing.T) {
	s := newTestState(t, 3)
	play(s) // A
	play(s) // B

	if err := s.Back(); err != nil {
		t.Fatalf("Back() error = %v", err)
	}
	snap := s.Snapshot()
	if !snap.BackPending || !snap.SkipPending {
		t.Fatalf("Back() flags = back:%v skip:%v, want both set", snap.BackPending, snap.SkipPending)
	}

	sel := s.SelectNext()
	if sel.Index != 0 || sel.Mode != ModeBack || sel.Exhausted {
		t.Fatalf("SelectNext() = %+v, want index 0 via back", sel)
	}

	snap = s.Snapshot()
	if !slices.Equal(snap.History, []int{1, 0}) {
		t.Errorf("History = %v, want [1 0]", snap.History)
	}
	if snap.SongIndex != 0 {
		t.Errorf("SongIndex = %d, want 0", snap.SongIndex)
	}
	if snap.BackPending {
		t.Error("BackPending still set after back navigation")
	}
}

func TestRepeatedBackWalksEarlierThenExhausts(t *testing.T) {
	s := newTestState(t, 5)
	play(s) // 0
	play(s) // 1
	play(s) // 2

	steps := []int{1, 0}
	for i, want := range steps {
		if err := s.Back(); err != nil {
			t.Fatalf("Back() #%d error = %v", i+1, err)
		}
		sel := play(s)
		if sel.Index != want || sel.Exhausted {
			t.Fatalf("back #%d: %+v, want index %d", i+1, sel, want)
		}
	}

	before := s.Snapshot()
	if err := s.Back(); err != nil {
		t.Fatalf("Back() error = %v", err)
	}
	sel := s.SelectNext()
	if !sel.Exhausted {
		t.Fatalf("third back Exhausted = false, want true (history %v)", before.History)
	}
	if sel.Index != before.Current {
		t.Errorf("exhausted back Index = %d, want current %d", sel.Index, before.Current)
	}

	after := s.Snapshot()
	if after.SongIndex != before.SongIndex || after.BackAmount != before.BackAmount {
		t.Errorf("state changed on exhaustion: before %+v after %+v", before, after)
	}
	if !slices.Equal(after.History, before.History) {
		t.Errorf("History = %v, want %v", after.History, before.History)
	}
}

func TestForwardResetsBackAmount(t *testing.T) {
	s := newTestState(t, 5)
	play(s)
	play(s)
	_ = s.Back()
	play(s)
	if got := s.Snapshot().BackAmount; got != -1 {
		t.Fatalf("BackAmount = %d, want -1", got)
	}
	play(s)
	if got := s.Snapshot().BackAmount; got != 0 {
		t.Errorf("BackAmount after forward = %d, want 0", got)
	}
}

func TestBackAmountAccumulatesUntilSkip(t *testing.T) {
	s := newTestState(t, 5)
	play(s)
	play(s)
	play(s)
	for i := 0; i < 2; i++ {
		if err := s.Back(); err != nil {
			t.Fatalf("Back() #%d error = %v", i+1, err)
		}
		play(s)
	}
	if got := s.Snapshot().BackAmount; got != -2 {
		t.Fatalf("BackAmount after two backs = %d, want -2", got)
	}

	if err := s.Skip(1); err != nil {
		t.Fatalf("Skip() error = %v", err)
	}
	play(s)
	if got := s.Snapshot().BackAmount; got != 0 {
		t.Errorf("BackAmount after skip = %d, want 0", got)
	}
}

func TestLoopRepeatsCurrent(t *testing.T) {
	s := newTestState(t, 4)
	first := play(s)

	if !s.ToggleLoop() {
		t.Fatal("ToggleLoop() = false, want true")
	}
	s.ToggleShuffle()
	_ = s.Skip(2)

	for i := 0; i < 5; i++ {
		sel := play(s)
		if sel.Index != first.Index || sel.Mode != ModeLoop {
			t.Fatalf("loop iteration %d: %+v, want index %d", i, sel, first.Index)
		}
	}
}

func TestLoopBeforeFirstItemFallsThrough(t *testing.T) {
	s := newTestState(t, 3, WithLoop(true))
	sel := play(s)
	if sel.Index != 0 || sel.Mode != ModeSequential {
		t.Errorf("first selection = %+v, want sequential 0", sel)
	}
	if sel := play(s); sel.Index != 0 || sel.Mode != ModeLoop {
		t.Errorf("second selection = %+v, want loop 0", sel)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	s := newTestState(t, 2)

	if !s.ToggleLoop() || s.ToggleLoop() {
		t.Error("ToggleLoop twice did not return to disabled")
	}
	if !s.ToggleShuffle() || s.ToggleShuffle() {
		t.Error("ToggleShuffle twice did not return to disabled")
	}
	loop, shuffle := s.Modes()
	if loop || shuffle {
		t.Errorf("Modes() = %v, %v, want false, false", loop, shuffle)
	}
}

func TestShuffleVisitsEveryIndexOncePerCycle(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 13} {
		r := rand.New(rand.NewPCG(uint64(n), 42))
		s := newTestState(t, n, WithShuffle(true), WithRand(r.IntN))

		for cycle := 0; cycle < 3; cycle++ {
			seen := make(map[int]bool)
			for i := 0; i < n; i++ {
				sel := play(s)
				if sel.Mode != ModeShuffle {
					t.Fatalf("n=%d: Mode = %v, want shuffle", n, sel.Mode)
				}
				if cycle == 0 && seen[sel.Index] {
					t.Fatalf("n=%d: index %d repeated within first cycle", n, sel.Index)
				}
				seen[sel.Index] = true
			}
			if cycle == 0 && len(seen) != n {
				t.Fatalf("n=%d: first cycle visited %d indices, want %d", n, len(seen), n)
			}
		}
	}
}

func TestShuffleNeverRepeatsHistory(t *testing.T) {
	s := newTestState(t, 4, WithShuffle(true), WithRand(sequence(2, 2, 2, 0, 0, 3, 1)))

	var got []int
	for i := 0; i < 4; i++ {
		got = append(got, play(s).Index)
	}
	want := []int{2, 0, 3, 1}
	if !slices.Equal(got, want) {
		t.Errorf("shuffle order = %v, want %v", got, want)
	}
}

func TestShuffleSingleItem(t *testing.T) {
	s := newTestState(t, 1, WithShuffle(true))
	for i := 0; i < 3; i++ {
		if sel := play(s); sel.Index != 0 {
			t.Fatalf("Index = %d, want 0", sel.Index)
		}
	}
}

func TestShuffleResetsBackAmount(t *testing.T) {
	s := newTestState(t, 4, WithRand(sequence(3, 1, 2)))
	play(s)
	play(s)
	_ = s.Back()
	play(s)
	s.ToggleShuffle()
	play(s)
	if got := s.Snapshot().BackAmount; got != 0 {
		t.Errorf("BackAmount = %d, want 0", got)
	}
}

func TestScenarioThreeItems(t *testing.T) {
	s := newTestState(t, 3)

	if sel := play(s); sel.Item.ID != "A" {
		t.Fatalf("first = %s, want A", sel.Item.ID)
	}
	if sel := play(s); sel.Item.ID != "B" {
		t.Fatalf("second = %s, want B", sel.Item.ID)
	}

	_ = s.Back()
	if sel := play(s); sel.Item.ID != "A" {
		t.Fatalf("back = %s, want A", sel.Item.ID)
	}

	s2 := newTestState(t, 3)
	if err := s2.Skip(5); err != nil {
		t.Fatal(err)
	}
	if sel := s2.SelectNext(); sel.Item.ID != "B" {
		t.Errorf("skip 5 from start = %s, want B", sel.Item.ID)
	}
}

func TestExitRequest(t *testing.T) {
	s := newTestState(t, 2)
	if s.ExitRequested() {
		t.Fatal("ExitRequested() = true on new state")
	}
	s.RequestExit()
	if !s.ExitRequested() {
		t.Error("ExitRequested() = false after RequestExit")
	}
}

func TestConcurrentCommandsAndSelection(t *testing.T) {
	s := newTestState(t, 6, WithRand(rand.New(rand.NewPCG(7, 7)).IntN))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = s.Skip(i%4 + 1)
			_ = s.Back()
			if i%50 == 0 {
				s.ToggleShuffle()
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			sel := play(s)
			if sel.Index < 0 || sel.Index >= s.Total() {
				t.Errorf("Index = %d out of range", sel.Index)
				return
			}
			s.ConsumeSkip()
		}
	}()
	wg.Wait()
}

func TestNewPanicsOnEmptyIndex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New() with empty index did not panic")
		}
	}()
	New(&playlist.Index{})
}
