package playlist

import (
	"fmt"

	"github.com/tessro/ytplay/internal/core"
	apperrors "github.com/tessro/ytplay/internal/errors"
)

// Index is the fixed-length ordered collection of playlist items.
// Its length never changes after construction.
type Index struct {
	items []core.Item
}

// NewIndex creates an Index from the given items. It rejects an empty
// playlist, since navigation arithmetic is undefined without items.
func NewIndex(items []core.Item) (*Index, error) {
	if len(items) == 0 {
		return nil, apperrors.ErrEmptyPlaylist
	}
	copied := make([]core.Item, len(items))
	copy(copied, items)
	return &Index{items: copied}, nil
}

// Resolve returns the item at index i. An out-of-range index means the
// navigator computed an impossible position, so Resolve panics.
func (x *Index) Resolve(i int) core.Item {
	if i < 0 || i >= len(x.items) {
		panic(fmt.Errorf("%w: resolve %d with %d items", apperrors.ErrOutOfRange, i, len(x.items)))
	}
	return x.items[i]
}

// Len returns the number of items.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.items)
}
