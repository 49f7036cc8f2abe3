package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/ytplay/internal/clip"
	"github.com/tessro/ytplay/internal/display"
	"github.com/tessro/ytplay/internal/mpv"
	"github.com/tessro/ytplay/internal/session"
	"github.com/tessro/ytplay/internal/youtube"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that external tools are available",
	Long:  `Reports whether mpv, yt-dlp, a clipboard utility and a YouTube API key can be found.`,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

type checkResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	var sess session.Session
	if store, err := session.NewStore(""); err == nil {
		if stored, err := store.Load(); err == nil && stored != nil {
			sess = *stored
		}
	}

	results := runChecks(&sess)

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	table := NewTable("", "CHECK", "DETAIL")
	for _, r := range results {
		table.Row(display.StatusIcon(r.OK), r.Name, r.Detail)
	}
	table.Flush()
	return nil
}

func runChecks(sess *session.Session) []checkResult {
	var results []checkResult

	opts := playerOptions(cfg, sess)
	if bin, err := mpv.Binary(opts.Path); err != nil {
		results = append(results, checkResult{"mpv", false, err.Error()})
	} else {
		results = append(results, checkResult{"mpv", true, bin})
	}

	dlp := youtube.NewDLP(youtube.DLPOptions{Executable: cfg.YouTube.YtdlpPath})
	if err := dlp.Check(); err != nil {
		results = append(results, checkResult{"yt-dlp", false, err.Error()})
	} else {
		results = append(results, checkResult{"yt-dlp", true, cfg.YouTube.YtdlpPath})
	}

	if clip.Available() {
		results = append(results, checkResult{"clipboard", true, "copy-url available"})
	} else {
		results = append(results, checkResult{"clipboard", false, "install xclip, xsel or wl-clipboard for copy-url"})
	}

	switch {
	case sess.APIKey != "":
		results = append(results, checkResult{"api key", true, "from session " + maskKey(sess.APIKey)})
	case cfg.YouTube.APIKey != "":
		results = append(results, checkResult{"api key", true, "from config " + maskKey(cfg.YouTube.APIKey)})
	default:
		results = append(results, checkResult{"api key", false, "none, playlists are read with yt-dlp"})
	}

	return results
}
