package playlist

import (
	"slices"

	apperrors "github.com/tessro/ytplay/internal/errors"
)

// History records previously played indices in play order.
// Duplicates are allowed. It is not safe for concurrent use; the
// navigator guards it with its own lock.
type History struct {
	entries []int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{entries: make([]int, 0)}
}

// Append pushes an index onto the end.
func (h *History) Append(index int) {
	h.entries = append(h.entries, index)
}

// ResetToLast replaces the history with a single entry holding its
// current last element. An empty history stays empty.
func (h *History) ResetToLast() {
	if len(h.entries) == 0 {
		return
	}
	last := h.entries[len(h.entries)-1]
	h.entries = append(h.entries[:0], last)
}

// PopAtOffsetFromEnd removes and returns the element offset positions
// before the last one (offset 0 is the last element).
func (h *History) PopAtOffsetFromEnd(offset int) (int, error) {
	if offset < 0 || offset >= len(h.entries) {
		return 0, apperrors.ErrHistoryEmpty
	}
	pos := len(h.entries) - 1 - offset
	value := h.entries[pos]
	h.entries = slices.Delete(h.entries, pos, pos+1)
	return value, nil
}

// Contains reports whether index has been played since the last reset.
func (h *History) Contains(index int) bool {
	return slices.Contains(h.entries, index)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Last returns the most recent entry, or false if the history is empty.
func (h *History) Last() (int, bool) {
	if len(h.entries) == 0 {
		return 0, false
	}
	return h.entries[len(h.entries)-1], true
}

// Entries returns a copy of the history in play order.
func (h *History) Entries() []int {
	return slices.Clone(h.entries)
}
