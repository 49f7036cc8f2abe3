package config

// Config represents the complete ytplay configuration.
type Config struct {
	Player   PlayerConfig   `toml:"player" json:"player"`
	YouTube  YouTubeConfig  `toml:"youtube" json:"youtube"`
	Playback PlaybackConfig `toml:"playback" json:"playback"`
	Lyrics   LyricsConfig   `toml:"lyrics" json:"lyrics"`
	Log      LogConfig      `toml:"log" json:"log"`
}

// PlayerConfig holds mpv settings.
type PlayerConfig struct {
	Path         string   `toml:"path" json:"path"`
	Socket       string   `toml:"socket" json:"socket"`
	ExtraArgs    []string `toml:"extra_args" json:"extra_args"`
	Volume       int      `toml:"volume" json:"volume"`
	StartTimeout int      `toml:"start_timeout" json:"start_timeout"` // seconds
	LoadTimeout  int      `toml:"load_timeout" json:"load_timeout"`   // seconds
}

// YouTubeConfig holds playlist and stream resolution settings.
type YouTubeConfig struct {
	APIKey    string `toml:"api_key" json:"api_key"`
	YtdlpPath string `toml:"ytdlp_path" json:"ytdlp_path"`
	Format    string `toml:"format" json:"format"`
	Proxy     string `toml:"proxy" json:"proxy"`
}

// PlaybackConfig holds the starting navigation modes and output settings.
type PlaybackConfig struct {
	PollInterval int    `toml:"poll_interval_ms" json:"poll_interval_ms"`
	Shuffle      bool   `toml:"shuffle" json:"shuffle"`
	Loop         bool   `toml:"loop" json:"loop"`
	ShowInfo     *bool  `toml:"show_info" json:"show_info"`
	Format       string `toml:"format" json:"format"`
	Timestamps   bool   `toml:"timestamps" json:"timestamps"`
	Emoji        bool   `toml:"emoji" json:"emoji"`
}

// InfoEnabled reports whether the now-playing panel is shown.
func (c *PlaybackConfig) InfoEnabled() bool {
	return c.ShowInfo == nil || *c.ShowInfo
}

// LyricsConfig holds lyrics lookup settings.
type LyricsConfig struct {
	Enabled *bool  `toml:"enabled" json:"enabled"`
	Timeout int    `toml:"timeout_seconds" json:"timeout_seconds"`
	BaseURL string `toml:"base_url" json:"base_url"`
}

// IsEnabled reports whether the lyrics command may reach the network.
func (c *LyricsConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}
