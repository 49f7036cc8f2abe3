// Package clip copies text to the system clipboard.
package clip

import (
	"github.com/atotto/clipboard"

	"github.com/tessro/ytplay/internal/core"
	apperrors "github.com/tessro/ytplay/internal/errors"
)

// Clipboard is the system clipboard.
type Clipboard struct{}

var _ core.Clipboard = Clipboard{}

// Available reports whether a clipboard utility was found. On Linux this
// needs xclip, xsel or wl-copy.
func Available() bool {
	return !clipboard.Unsupported
}

// Copy writes text to the clipboard.
func (Clipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return apperrors.ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}
