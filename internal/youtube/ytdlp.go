package youtube

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog/log"

	"github.com/tessro/ytplay/internal/core"
	apperrors "github.com/tessro/ytplay/internal/errors"
)

// DefaultFormat selects the best audio-only stream, falling back to the
// best combined stream.
const DefaultFormat = "bestaudio/best"

const flatPrint = "%(id)s\t%(title)s\t%(duration)s\t%(view_count)s\t%(upload_date)s\t%(uploader)s"

// DLPOptions configures the yt-dlp backend.
type DLPOptions struct {
	// Executable is the yt-dlp binary. Empty means look it up on PATH.
	Executable string
	// Format is the yt-dlp format selector for streams.
	Format string
	// Proxy is passed to yt-dlp when set.
	Proxy string
}

// DLP loads playlists and resolves streams by running yt-dlp. It serves
// as both core.Catalog and core.Resolver.
type DLP struct {
	opts DLPOptions
}

var (
	_ core.Catalog  = (*DLP)(nil)
	_ core.Resolver = (*DLP)(nil)
)

// NewDLP creates a yt-dlp backend.
func NewDLP(opts DLPOptions) *DLP {
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	return &DLP{opts: opts}
}

// Check reports whether the yt-dlp executable can be found.
func (d *DLP) Check() error {
	bin := d.opts.Executable
	if bin == "" {
		bin = "yt-dlp"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return apperrors.ErrResolverNotFound
	}
	return nil
}

func (d *DLP) command() *ytdlp.Command {
	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		IgnoreConfig()
	if d.opts.Executable != "" {
		cmd.SetExecutable(d.opts.Executable)
	}
	if d.opts.Proxy != "" {
		cmd.Proxy(d.opts.Proxy)
	}
	return cmd
}

// LoadPlaylist lists the playlist's entries without resolving streams.
func (d *DLP) LoadPlaylist(ctx context.Context, playlistURL string) ([]core.Item, error) {
	res, err := d.command().
		FlatPlaylist().
		YesPlaylist().
		Print(flatPrint).
		Run(ctx, playlistURL)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp playlist: %w", dlpError(err))
	}

	items := parseFlatPlaylist(res.Stdout)
	log.Debug().Int("items", len(items)).Str("url", playlistURL).Msg("loaded playlist with yt-dlp")
	if len(items) == 0 {
		return nil, apperrors.ErrEmptyPlaylist
	}
	return items, nil
}

// StreamURL returns the direct media URL of the item's best audio stream.
func (d *DLP) StreamURL(ctx context.Context, item core.Item) (string, error) {
	res, err := d.command().
		Format(d.opts.Format).
		NoPlaylist().
		Print("urls").
		Run(ctx, item.URL())
	if err != nil {
		return "", fmt.Errorf("yt-dlp stream %s: %w", item.ID, dlpError(err))
	}

	for _, line := range strings.Split(res.Stdout, "\n") {
		if line = strings.TrimSpace(line); strings.HasPrefix(line, "http") {
			return line, nil
		}
	}
	return "", fmt.Errorf("yt-dlp returned no stream for %s", item.ID)
}

func dlpError(err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return apperrors.ErrResolverNotFound
	}
	return err
}

// parseFlatPlaylist parses yt-dlp --print output produced with flatPrint.
// Unavailable entries, which yt-dlp prints with an "NA" title or a
// bracketed placeholder, are skipped.
func parseFlatPlaylist(out string) []core.Item {
	var items []core.Item
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[0] == "" || fields[0] == "NA" {
			continue
		}
		title := fields[1]
		if title == "NA" || title == "[Private video]" || title == "[Deleted video]" {
			continue
		}

		item := core.Item{ID: fields[0], Title: title}
		if len(fields) > 2 {
			if secs, err := strconv.ParseFloat(fields[2], 64); err == nil {
				item.Duration = clock(int(secs))
			}
		}
		if len(fields) > 3 {
			if n, err := strconv.ParseInt(fields[3], 10, 64); err == nil {
				item.ViewCount = n
			}
		}
		if len(fields) > 4 {
			item.Published = uploadDate(fields[4])
		}
		if len(fields) > 5 && fields[5] != "NA" {
			item.Author = fields[5]
		}
		items = append(items, item)
	}
	return items
}

// uploadDate turns yt-dlp's YYYYMMDD into YYYY-MM-DD.
func uploadDate(s string) string {
	if len(s) != 8 {
		return ""
	}
	if _, err := strconv.Atoi(s); err != nil {
		return ""
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:]
}
