package youtube

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tessro/ytplay/internal/core"
	apperrors "github.com/tessro/ytplay/internal/errors"
)

const batchSize = 50

// API is a core.Catalog backed by the Data API.
type API struct {
	client *Client
}

var _ core.Catalog = (*API)(nil)

// NewAPI creates a catalog over client.
func NewAPI(client *Client) *API {
	return &API{client: client}
}

// LoadPlaylist lists every video in the playlist, in playlist order.
// Videos that are private or deleted are skipped. A failed detail batch
// drops only that batch's videos.
func (a *API) LoadPlaylist(ctx context.Context, playlistURL string) ([]core.Item, error) {
	id, err := ParsePlaylistID(playlistURL)
	if err != nil {
		return nil, err
	}

	ids, err := a.videoIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, apperrors.ErrEmptyPlaylist
	}

	result := a.videos(ctx, ids)
	if result.HasErrors() {
		if len(result.Data) == 0 {
			return nil, fmt.Errorf("load playlist details: %s", result.ErrorSummary())
		}
		log.Warn().Int("loaded", len(result.Data)).Str("errors", result.ErrorSummary()).Msg("some playlist items could not be loaded")
	}
	if len(result.Data) == 0 {
		return nil, apperrors.ErrEmptyPlaylist
	}
	return result.Data, nil
}

func (a *API) videoIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	pageToken := ""
	for {
		params := map[string]string{
			"part":       "contentDetails",
			"playlistId": playlistID,
			"maxResults": "50",
		}
		if pageToken != "" {
			params["pageToken"] = pageToken
		}

		var resp PlaylistItemsResponse
		if err := a.client.Get(ctx, "/playlistItems", params, &resp); err != nil {
			return nil, fmt.Errorf("list playlist items: %w", err)
		}
		for _, it := range resp.Items {
			if it.ContentDetails.VideoID != "" {
				ids = append(ids, it.ContentDetails.VideoID)
			}
		}

		if resp.NextPageToken == "" {
			return ids, nil
		}
		pageToken = resp.NextPageToken
	}
}

func (a *API) videos(ctx context.Context, ids []string) apperrors.PartialResult[[]core.Item] {
	var result apperrors.PartialResult[[]core.Item]

	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))
		batch := ids[start:end]

		var resp VideosResponse
		err := a.client.Get(ctx, "/videos", map[string]string{
			"part": "snippet,contentDetails,statistics",
			"id":   strings.Join(batch, ","),
		}, &resp)
		if err != nil {
			result.AddError(fmt.Errorf("videos %d-%d: %w", start+1, end, err))
			continue
		}

		// videos.list does not promise request order.
		byID := make(map[string]Video, len(resp.Items))
		for _, v := range resp.Items {
			byID[v.ID] = v
		}
		for _, id := range batch {
			if v, ok := byID[id]; ok {
				result.Data = append(result.Data, videoToItem(v))
			}
		}
	}
	return result
}
