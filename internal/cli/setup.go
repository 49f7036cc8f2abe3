package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	apperrors "github.com/tessro/ytplay/internal/errors"
	"github.com/tessro/ytplay/internal/session"
	"github.com/tessro/ytplay/internal/youtube"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose the playlist to play by default",
	Long: `Asks for a playlist URL, an optional YouTube API key and an optional mpv
directory, and stores them for runs without arguments.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// canInteract returns true if both stdin and stdout are terminals.
func canInteract() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runSetup(cmd *cobra.Command, args []string) error {
	if !canInteract() {
		return fmt.Errorf("setup needs an interactive terminal")
	}

	store, err := session.NewStore("")
	if err != nil {
		return err
	}
	prev, err := store.Load()
	if err != nil {
		return err
	}

	sess, err := runSessionForm(prev)
	if err != nil {
		return err
	}
	if _, err := store.Save(sess); err != nil {
		return err
	}

	fmt.Printf("Saved session to %s\n", store.Path())
	fmt.Println("Run 'ytplay' to start playing.")
	return nil
}

// promptSession asks for a session when none is stored. It fails with
// ErrNoStoredPlaylist when the terminal is not interactive.
func promptSession() (*session.Session, error) {
	if !canInteract() {
		return nil, apperrors.ErrNoStoredPlaylist
	}
	return runSessionForm(nil)
}

func runSessionForm(prev *session.Session) (*session.Session, error) {
	sess := &session.Session{}
	if prev != nil {
		*sess = *prev
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Playlist URL").
				Description("A YouTube playlist URL or playlist ID").
				Placeholder("https://www.youtube.com/playlist?list=...").
				Value(&sess.PlaylistURL).
				Validate(validatePlaylistURL),
			huh.NewInput().
				Title("YouTube API key").
				Description("Optional. Leave empty to read the playlist with yt-dlp").
				EchoMode(huh.EchoModePassword).
				Value(&sess.APIKey),
			huh.NewInput().
				Title("mpv directory").
				Description("Optional. Leave empty to find mpv on PATH").
				Value(&sess.PlayerDir),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, apperrors.ErrNoStoredPlaylist
		}
		return nil, fmt.Errorf("setup cancelled: %w", err)
	}

	sess.PlaylistURL = strings.TrimSpace(sess.PlaylistURL)
	sess.APIKey = strings.TrimSpace(sess.APIKey)
	sess.PlayerDir = strings.TrimSpace(sess.PlayerDir)
	return sess, nil
}

func validatePlaylistURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a playlist URL is required")
	}
	if _, err := youtube.ParsePlaylistID(strings.TrimSpace(s)); err != nil {
		return errors.New("not a playlist URL")
	}
	return nil
}
