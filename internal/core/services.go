package core

import "context"

// Catalog loads the ordered items of a remote playlist.
type Catalog interface {
	LoadPlaylist(ctx context.Context, url string) ([]Item, error)
}

// Resolver finds the best available audio stream for an item.
type Resolver interface {
	StreamURL(ctx context.Context, item Item) (string, error)
}

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	Copy(text string) error
}

// LyricsSource looks up lyrics for a cleaned song title.
type LyricsSource interface {
	Lyrics(ctx context.Context, title string) (string, error)
}

// Browser opens a URL in the user's web browser.
type Browser interface {
	Open(url string) error
}
