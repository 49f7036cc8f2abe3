package core

import "context"

// LoadOptions configures how the engine opens a stream.
type LoadOptions struct {
	NoVideo bool
}

// Engine defines the media player used by the playback loop and the
// command router. Implementations must be safe for concurrent use: the
// router issues volume, pause and seek calls while the loop polls state.
type Engine interface {
	// Transport
	Load(ctx context.Context, streamURL string, opts LoadOptions) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Stop(ctx context.Context) error
	SeekToStart(ctx context.Context) error

	// State queries
	IsPlaying(ctx context.Context) (bool, error)
	IsPaused(ctx context.Context) (bool, error)

	// Volume control
	Volume(ctx context.Context) (int, error)
	SetVolume(ctx context.Context, percent int) error

	// Lifecycle
	Close() error
}
