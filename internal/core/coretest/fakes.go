// Package coretest provides in-memory implementations of the core
// interfaces for tests.
package coretest

import (
	"context"
	"errors"
	"sync"

	"github.com/tessro/ytplay/internal/core"
)

// Engine is an in-memory core.Engine. By default a loaded stream plays
// until Stop is called or PlayFor polls have elapsed.
type Engine struct {
	mu sync.Mutex

	// PlayFor is the number of IsPlaying polls a loaded stream reports
	// as playing before it ends on its own. Zero plays forever.
	PlayFor int
	// OnLoad runs after each successful Load with the 1-based load count.
	OnLoad func(n int)
	// LoadErr is returned from Load when set.
	LoadErr error

	loaded  []string
	loading bool
	paused  bool
	polls   int
	volume  int
	seeks   int
	stops   int
	toggles int
	closed  bool
}

var _ core.Engine = (*Engine)(nil)

// NewEngine creates a fake engine at volume 100.
func NewEngine() *Engine {
	return &Engine{volume: 100}
}

func (e *Engine) Load(ctx context.Context, streamURL string, opts core.LoadOptions) error {
	e.mu.Lock()
	if e.LoadErr != nil {
		e.mu.Unlock()
		return e.LoadErr
	}
	e.loaded = append(e.loaded, streamURL)
	e.loading = true
	e.paused = false
	e.polls = 0
	n := len(e.loaded)
	hook := e.OnLoad
	e.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	return nil
}

func (e *Engine) Play(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = false
	return nil
}

// Pause toggles the paused state.
func (e *Engine) Pause(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loading {
		e.paused = !e.paused
	}
	e.toggles++
	return nil
}

func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	e.paused = false
	e.stops++
	return nil
}

func (e *Engine) SeekToStart(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seeks++
	e.polls = 0
	return nil
}

func (e *Engine) IsPlaying(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loading || e.paused {
		return false, nil
	}
	e.polls++
	if e.PlayFor > 0 && e.polls > e.PlayFor {
		e.loading = false
		return false, nil
	}
	return true, nil
}

func (e *Engine) IsPaused(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading && e.paused, nil
}

func (e *Engine) Volume(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume, nil
}

func (e *Engine) SetVolume(ctx context.Context, percent int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = percent
	return nil
}

func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// Loaded returns the stream URLs passed to Load, in order.
func (e *Engine) Loaded() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.loaded...)
}

// Stops returns how many times Stop was called.
func (e *Engine) Stops() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stops
}

// Seeks returns how many times SeekToStart was called.
func (e *Engine) Seeks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seeks
}

// Toggles returns how many times Pause was called.
func (e *Engine) Toggles() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toggles
}

// Closed reports whether Close was called.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Resolver maps an item to "stream:<id>" unless its ID is listed in Fail.
// An ID listed in FailTimes fails that many times before resolving.
type Resolver struct {
	Fail      map[string]bool
	FailTimes map[string]int

	mu    sync.Mutex
	calls map[string]int
}

var _ core.Resolver = (*Resolver)(nil)

// ErrResolve is returned for items listed in Resolver.Fail.
var ErrResolve = errors.New("stream unavailable")

func (r *Resolver) StreamURL(ctx context.Context, item core.Item) (string, error) {
	if r == nil {
		return "stream:" + item.ID, nil
	}
	if r.Fail[item.ID] {
		return "", ErrResolve
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[item.ID]++
	if r.calls[item.ID] <= r.FailTimes[item.ID] {
		return "", ErrResolve
	}
	return "stream:" + item.ID, nil
}

// Clipboard records copied text.
type Clipboard struct {
	mu     sync.Mutex
	Err    error
	copied []string
}

var _ core.Clipboard = (*Clipboard)(nil)

func (c *Clipboard) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.copied = append(c.copied, text)
	return nil
}

// Copied returns everything copied so far.
func (c *Clipboard) Copied() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.copied...)
}

// Browser records opened URLs.
type Browser struct {
	mu     sync.Mutex
	Err    error
	opened []string
}

var _ core.Browser = (*Browser)(nil)

func (b *Browser) Open(url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	b.opened = append(b.opened, url)
	return nil
}

// Opened returns every URL opened so far.
func (b *Browser) Opened() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.opened...)
}

// Lyrics returns canned lyrics keyed by title.
type Lyrics struct {
	ByTitle map[string]string
	Err     error

	mu      sync.Mutex
	queries []string
}

var _ core.LyricsSource = (*Lyrics)(nil)

func (l *Lyrics) Lyrics(ctx context.Context, title string) (string, error) {
	l.mu.Lock()
	l.queries = append(l.queries, title)
	l.mu.Unlock()

	if l.Err != nil {
		return "", l.Err
	}
	text, ok := l.ByTitle[title]
	if !ok {
		return "", errors.New("not found")
	}
	return text, nil
}

// Queries returns the titles looked up so far.
func (l *Lyrics) Queries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.queries...)
}

// Catalog returns a fixed item list.
type Catalog struct {
	Items []core.Item
	Err   error
}

var _ core.Catalog = (*Catalog)(nil)

func (c *Catalog) LoadPlaylist(ctx context.Context, url string) ([]core.Item, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Items, nil
}

// Items builds n items with IDs "A", "B", ... and matching titles.
func Items(n int) []core.Item {
	items := make([]core.Item, n)
	for i := range items {
		id := string(rune('A' + i))
		items[i] = core.Item{ID: id, Title: "Song " + id, Duration: "00:03:25"}
	}
	return items
}
