package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tessro/ytplay/internal/browser"
	"github.com/tessro/ytplay/internal/clip"
	"github.com/tessro/ytplay/internal/command"
	"github.com/tessro/ytplay/internal/config"
	"github.com/tessro/ytplay/internal/core"
	"github.com/tessro/ytplay/internal/display"
	apperrors "github.com/tessro/ytplay/internal/errors"
	"github.com/tessro/ytplay/internal/lyrics"
	"github.com/tessro/ytplay/internal/mpv"
	"github.com/tessro/ytplay/internal/navigator"
	"github.com/tessro/ytplay/internal/playback"
	"github.com/tessro/ytplay/internal/playlist"
	"github.com/tessro/ytplay/internal/session"
	"github.com/tessro/ytplay/internal/youtube"
)

var (
	playAPIKey    string
	playPlayerDir string
	playLoop      bool
	playShuffle   bool
	playNoInfo    bool
)

func init() {
	rootCmd.Flags().StringVarP(&playAPIKey, "api-key", "y", "", "YouTube Data API v3 key (default: use yt-dlp)")
	rootCmd.Flags().StringVarP(&playPlayerDir, "player-dir", "p", "", "directory containing the mpv binary")
	rootCmd.Flags().BoolVar(&playLoop, "loop", false, "start with looping enabled")
	rootCmd.Flags().BoolVar(&playShuffle, "shuffle", false, "start with shuffle enabled")
	rootCmd.Flags().BoolVar(&playNoInfo, "no-info", false, "print one line per song instead of the info panel")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := session.NewStore("")
	if err != nil {
		return err
	}

	sess, err := resolveSession(store, args, playAPIKey, playPlayerDir)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		if wrote, err := store.Save(sess); err != nil {
			log.Warn().Err(err).Msg("error saving session")
		} else if wrote {
			log.Debug().Str("path", store.Path()).Msg("session saved")
		}
	}

	dlp := youtube.NewDLP(youtube.DLPOptions{
		Executable: cfg.YouTube.YtdlpPath,
		Format:     cfg.YouTube.Format,
		Proxy:      cfg.YouTube.Proxy,
	})
	if err := dlp.Check(); err != nil {
		return err
	}

	catalog := newCatalog(cfg, sess, dlp)
	fmt.Println(display.Muted.Render("Loading playlist..."))
	items, err := catalog.LoadPlaylist(ctx, sess.PlaylistURL)
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}
	index, err := playlist.NewIndex(items)
	if err != nil {
		return err
	}
	log.Info().Int("items", index.Len()).Str("url", sess.PlaylistURL).Msg("playlist loaded")

	state := navigator.New(index,
		navigator.WithLoop(playLoop || cfg.Playback.Loop),
		navigator.WithShuffle(playShuffle || cfg.Playback.Shuffle),
	)

	player, err := mpv.Start(ctx, playerOptions(cfg, sess))
	if err != nil {
		return err
	}
	defer func() {
		if err := player.Close(); err != nil {
			log.Debug().Err(err).Msg("error closing player")
		}
	}()

	router := command.New(state, player, routerOptions(cfg, os.Stdout)...)
	loop := playback.New(state, player, dlp,
		playback.WithPollInterval(time.Duration(cfg.Playback.PollInterval)*time.Millisecond),
		playback.WithObserver(newObserver(os.Stdout, cfg.Playback, !playNoInfo)),
		playback.WithInputStarter(func() {
			go func() {
				if err := router.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
					log.Error().Err(err).Msg("error reading commands")
				}
			}()
		}),
	)

	err = loop.Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// resolveSession combines the playlist argument and flags with the stored
// session. Flags override stored values.
func resolveSession(store *session.Store, args []string, apiKey, playerDir string) (*session.Session, error) {
	sess := &session.Session{}
	if len(args) > 0 {
		sess.PlaylistURL = args[0]
	} else {
		stored, err := store.Load()
		if err != nil {
			return nil, err
		}
		if stored.Empty() {
			stored, err = promptSession()
			if err != nil {
				return nil, err
			}
			if _, err := store.Save(stored); err != nil {
				log.Warn().Err(err).Msg("error saving session")
			}
		}
		sess = stored
	}

	if apiKey != "" {
		sess.APIKey = apiKey
	}
	if playerDir != "" {
		sess.PlayerDir = playerDir
	}

	if _, err := youtube.ParsePlaylistID(sess.PlaylistURL); err != nil {
		return nil, apperrors.WithSuggestion(err, "Pass a playlist URL containing list=, or a bare playlist ID")
	}
	return sess, nil
}

func newCatalog(cfg *config.Config, sess *session.Session, dlp *youtube.DLP) core.Catalog {
	key := sess.APIKey
	if key == "" {
		key = cfg.YouTube.APIKey
	}
	if key == "" {
		return dlp
	}
	return youtube.NewAPI(youtube.NewClient(key))
}

func playerOptions(cfg *config.Config, sess *session.Session) mpv.Options {
	path := cfg.Player.Path
	if sess.PlayerDir != "" {
		path = sess.PlayerDir
	}
	return mpv.Options{
		Path:         path,
		SocketPath:   cfg.Player.Socket,
		ExtraArgs:    cfg.Player.ExtraArgs,
		Volume:       cfg.Player.Volume,
		StartTimeout: time.Duration(cfg.Player.StartTimeout) * time.Second,
		LoadTimeout:  time.Duration(cfg.Player.LoadTimeout) * time.Second,
	}
}

func routerOptions(cfg *config.Config, out io.Writer) []command.Option {
	opts := []command.Option{
		command.WithOutput(out),
		command.WithBrowser(browser.Browser{}),
		command.WithLyricsTimeout(time.Duration(cfg.Lyrics.Timeout) * time.Second),
	}
	if clip.Available() {
		opts = append(opts, command.WithClipboard(clip.Clipboard{}))
	}
	if cfg.Lyrics.IsEnabled() {
		opts = append(opts, command.WithLyrics(lyrics.New(cfg.Lyrics.BaseURL, time.Duration(cfg.Lyrics.Timeout)*time.Second)))
	}
	return opts
}

// newObserver renders playback events. With the info panel enabled, each new
// item clears the screen and shows its details; other events, and every
// event in compact mode, print a single line.
func newObserver(out io.Writer, pc config.PlaybackConfig, panel bool) func(playback.Event) {
	formatter := display.NewFormatter(
		display.WithEmoji(pc.Emoji),
		display.WithTimestamp(pc.Timestamps),
		display.WithTemplate(pc.Format),
	)
	panel = panel && pc.InfoEnabled()

	return func(e playback.Event) {
		if !panel {
			fmt.Fprintln(out, formatter.Format(e))
			return
		}
		switch e.Type {
		case playback.EventNowPlaying:
			display.ClearScreen(out)
			fmt.Fprintln(out, display.NowPlaying(e.Item, display.Width(out), time.Now()))
			fmt.Fprint(out, display.Prompt)
		case playback.EventFinished, playback.EventSkipped:
		default:
			fmt.Fprintln(out, formatter.Format(e))
		}
	}
}
