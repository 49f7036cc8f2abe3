package youtube

// PlaylistItemsResponse is the response from playlistItems.list.
type PlaylistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	PageInfo      struct {
		TotalResults int `json:"totalResults"`
	} `json:"pageInfo"`
	Items []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// VideosResponse is the response from videos.list.
type VideosResponse struct {
	Items []Video `json:"items"`
}

// Video is a single videos.list resource.
type Video struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		ChannelTitle string `json:"channelTitle"`
		PublishedAt  string `json:"publishedAt"`
	} `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"` // ISO 8601, e.g. PT3M25S
	} `json:"contentDetails"`
	Statistics struct {
		ViewCount string `json:"viewCount"` // decimal string
		LikeCount string `json:"likeCount"`
	} `json:"statistics"`
}
