package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			Path:         "mpv",
			Volume:       100,
			StartTimeout: 5,
			LoadTimeout:  30,
		},
		YouTube: YouTubeConfig{
			YtdlpPath: "yt-dlp",
			Format:    "bestaudio/best",
		},
		Playback: PlaybackConfig{
			PollInterval: 500,
		},
		Lyrics: LyricsConfig{
			Timeout: 10,
			BaseURL: "https://lrclib.net/api",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Player
	if c.Player.Path == "" {
		c.Player.Path = d.Player.Path
	}
	if c.Player.Volume == 0 {
		c.Player.Volume = d.Player.Volume
	}
	if c.Player.StartTimeout == 0 {
		c.Player.StartTimeout = d.Player.StartTimeout
	}
	if c.Player.LoadTimeout == 0 {
		c.Player.LoadTimeout = d.Player.LoadTimeout
	}

	// YouTube
	if c.YouTube.YtdlpPath == "" {
		c.YouTube.YtdlpPath = d.YouTube.YtdlpPath
	}
	if c.YouTube.Format == "" {
		c.YouTube.Format = d.YouTube.Format
	}

	// Playback
	if c.Playback.PollInterval == 0 {
		c.Playback.PollInterval = d.Playback.PollInterval
	}

	// Lyrics
	if c.Lyrics.Timeout == 0 {
		c.Lyrics.Timeout = d.Lyrics.Timeout
	}
	if c.Lyrics.BaseURL == "" {
		c.Lyrics.BaseURL = d.Lyrics.BaseURL
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
