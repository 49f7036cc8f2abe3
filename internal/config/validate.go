package config

import (
	"errors"
	"fmt"
	"net/url"
	"text/template"

	"github.com/rs/zerolog"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := c.YouTube.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("youtube: %w", err))
	}
	if err := c.Playback.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("playback: %w", err))
	}
	if err := c.Lyrics.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("lyrics: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks PlayerConfig for errors.
func (c *PlayerConfig) Validate() error {
	if c.Volume < 0 || c.Volume > 100 {
		return errors.New("volume must be between 0 and 100")
	}
	if c.StartTimeout < 0 {
		return errors.New("start_timeout must be non-negative")
	}
	if c.LoadTimeout < 0 {
		return errors.New("load_timeout must be non-negative")
	}
	return nil
}

// Validate checks YouTubeConfig for errors.
func (c *YouTubeConfig) Validate() error {
	if c.Proxy != "" {
		if _, err := url.Parse(c.Proxy); err != nil {
			return fmt.Errorf("invalid proxy: %w", err)
		}
	}
	return nil
}

// Validate checks PlaybackConfig for errors.
func (c *PlaybackConfig) Validate() error {
	if c.PollInterval < 50 {
		return errors.New("poll_interval_ms must be at least 50")
	}
	if c.Format != "" {
		if _, err := template.New("event").Parse(c.Format); err != nil {
			return fmt.Errorf("invalid format: %w", err)
		}
	}
	return nil
}

// Validate checks LyricsConfig for errors.
func (c *LyricsConfig) Validate() error {
	if c.Timeout < 0 {
		return errors.New("timeout_seconds must be non-negative")
	}
	if c.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid level %q", c.Level)
	}
	return nil
}
