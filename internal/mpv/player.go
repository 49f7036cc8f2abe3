// Package mpv drives an mpv process over its JSON IPC socket.
package mpv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tessro/ytplay/internal/core"
	apperrors "github.com/tessro/ytplay/internal/errors"
)

const (
	defaultStartTimeout = 5 * time.Second
	defaultLoadTimeout  = 15 * time.Second
	dialInterval        = 50 * time.Millisecond
)

// Options configures how mpv is started.
type Options struct {
	// Path is the mpv binary, or the directory containing it. Empty
	// means look it up on PATH.
	Path string
	// SocketPath is where the IPC socket is created. Empty picks a
	// path in the temp directory.
	SocketPath string
	// ExtraArgs are appended to the mpv command line.
	ExtraArgs []string
	// Volume is the starting volume, 0 to 100. Negative leaves mpv's
	// default.
	Volume int
	// StartTimeout bounds waiting for the IPC socket to appear.
	StartTimeout time.Duration
	// LoadTimeout bounds waiting for a loaded stream to start.
	LoadTimeout time.Duration
}

// Player is a core.Engine backed by mpv. It is safe for concurrent use.
type Player struct {
	cmd         *exec.Cmd
	conn        *conn
	socket      string
	ownSocket   bool
	loadTimeout time.Duration
}

var _ core.Engine = (*Player)(nil)

// Binary resolves the mpv executable from a configured path, which may
// name the binary itself or the directory holding it.
func Binary(path string) (string, error) {
	if path == "" {
		p, err := exec.LookPath("mpv")
		if err != nil {
			return "", apperrors.ErrPlayerNotFound
		}
		return p, nil
	}

	if !strings.ContainsRune(path, filepath.Separator) {
		if p, err := exec.LookPath(path); err == nil {
			return p, nil
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrPlayerNotFound, path)
	}
	if info.IsDir() {
		path = filepath.Join(path, "mpv")
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", apperrors.ErrPlayerNotFound, path)
		}
	}
	return path, nil
}

// Start launches an idle, audio-only mpv and connects to it.
func Start(ctx context.Context, opts Options) (*Player, error) {
	bin, err := Binary(opts.Path)
	if err != nil {
		return nil, err
	}

	socket := opts.SocketPath
	own := socket == ""
	if own {
		socket = filepath.Join(os.TempDir(), "ytplay-mpv-"+strconv.Itoa(os.Getpid())+".sock")
	}
	_ = os.Remove(socket)

	args := []string{
		"--idle=yes",
		"--no-terminal",
		"--no-video",
		"--input-ipc-server=" + socket,
	}
	if opts.Volume >= 0 {
		args = append(args, "--volume="+strconv.Itoa(opts.Volume))
	}
	args = append(args, opts.ExtraArgs...)

	cmd := exec.Command(bin, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}
	log.Info().Str("bin", bin).Str("socket", socket).Int("pid", cmd.Process.Pid).Msg("started mpv")

	timeout := opts.StartTimeout
	if timeout <= 0 {
		timeout = defaultStartTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	p, err := dial(dialCtx, socket)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	p.cmd = cmd
	p.ownSocket = own
	if opts.LoadTimeout > 0 {
		p.loadTimeout = opts.LoadTimeout
	}
	return p, nil
}

// Dial connects to an mpv instance that is already listening on socket.
func Dial(ctx context.Context, socket string) (*Player, error) {
	return dial(ctx, socket)
}

func dial(ctx context.Context, socket string) (*Player, error) {
	var d net.Dialer
	for {
		nc, err := d.DialContext(ctx, "unix", socket)
		if err == nil {
			return &Player{
				conn:        newConn(nc),
				socket:      socket,
				loadTimeout: defaultLoadTimeout,
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect to mpv at %s: %w", socket, err)
		case <-time.After(dialInterval):
		}
	}
}

// Load replaces the current stream and waits until mpv has opened it.
func (p *Player) Load(ctx context.Context, streamURL string, opts core.LoadOptions) error {
	video := "auto"
	if opts.NoVideo {
		video = "no"
	}
	if _, err := p.conn.call(ctx, "set_property", "vid", video); err != nil {
		return err
	}
	if _, err := p.conn.call(ctx, "loadfile", streamURL, "replace"); err != nil {
		return err
	}
	// mpv keeps the pause state across loadfile.
	if err := p.Play(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.loadTimeout)
	defer cancel()
	ticker := time.NewTicker(dialInterval)
	defer ticker.Stop()
	for {
		idle, err := p.getBool(ctx, "idle-active")
		if err != nil {
			return err
		}
		if !idle {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("mpv did not start %s: %w", streamURL, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (p *Player) Play(ctx context.Context) error {
	_, err := p.conn.call(ctx, "set_property", "pause", false)
	return err
}

// Pause toggles between paused and playing.
func (p *Player) Pause(ctx context.Context) error {
	_, err := p.conn.call(ctx, "cycle", "pause")
	return err
}

func (p *Player) Stop(ctx context.Context) error {
	_, err := p.conn.call(ctx, "stop")
	return err
}

func (p *Player) SeekToStart(ctx context.Context) error {
	_, err := p.conn.call(ctx, "seek", 0, "absolute")
	return err
}

// IsPlaying reports whether a stream is loaded and not paused.
func (p *Player) IsPlaying(ctx context.Context) (bool, error) {
	idle, err := p.getBool(ctx, "idle-active")
	if err != nil || idle {
		return false, err
	}
	paused, err := p.getBool(ctx, "pause")
	if err != nil {
		return false, err
	}
	return !paused, nil
}

// IsPaused reports whether a stream is loaded and paused.
func (p *Player) IsPaused(ctx context.Context) (bool, error) {
	idle, err := p.getBool(ctx, "idle-active")
	if err != nil || idle {
		return false, err
	}
	return p.getBool(ctx, "pause")
}

func (p *Player) Volume(ctx context.Context) (int, error) {
	data, err := p.conn.call(ctx, "get_property", "volume")
	if err != nil {
		return 0, err
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("decode volume: %w", err)
	}
	return int(math.Round(v)), nil
}

func (p *Player) SetVolume(ctx context.Context, percent int) error {
	_, err := p.conn.call(ctx, "set_property", "volume", percent)
	return err
}

// Close asks mpv to quit and releases the connection. A process that
// does not exit promptly is killed.
func (p *Player) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := p.conn.call(ctx, "quit"); err != nil && !errors.Is(err, ErrClosed) {
		log.Debug().Err(err).Msg("error sending quit to mpv")
	}
	err := p.conn.close()

	if p.cmd != nil {
		done := make(chan struct{})
		go func() {
			_ = p.cmd.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			_ = p.cmd.Process.Kill()
			<-done
		}
	}
	if p.ownSocket {
		_ = os.Remove(p.socket)
	}
	return err
}

func (p *Player) getBool(ctx context.Context, name string) (bool, error) {
	data, err := p.conn.call(ctx, "get_property", name)
	if err != nil {
		return false, err
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return v, nil
}
