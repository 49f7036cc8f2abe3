package core

// WatchURLPrefix is the canonical URL prefix for a playlist item.
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// Item represents one playable entry of a playlist.
type Item struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Duration  string  `json:"duration"`  // HH:MM:SS
	Published string  `json:"published"` // YYYY-MM-DD ...
	ViewCount int64   `json:"view_count"`
	Rating    float64 `json:"rating"`
}

// URL returns the canonical watch URL for the item.
func (i *Item) URL() string {
	if i == nil || i.ID == "" {
		return ""
	}
	return WatchURLPrefix + i.ID
}
