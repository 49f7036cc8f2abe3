package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[youtube]
api_key = "abc"

[playback]
shuffle = true
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.YouTube.APIKey != "abc" {
		t.Errorf("APIKey = %q, want abc", cfg.YouTube.APIKey)
	}
	if !cfg.Playback.Shuffle {
		t.Error("Shuffle = false, want true")
	}
	if cfg.Playback.PollInterval != 500 {
		t.Errorf("PollInterval = %d, want 500", cfg.Playback.PollInterval)
	}
	if cfg.Player.Volume != 100 {
		t.Errorf("Volume = %d, want 100", cfg.Player.Volume)
	}
	if cfg.YouTube.Format != "bestaudio/best" {
		t.Errorf("Format = %q", cfg.YouTube.Format)
	}
	if !cfg.Playback.InfoEnabled() {
		t.Error("InfoEnabled() = false, want true by default")
	}
	if !cfg.Lyrics.IsEnabled() {
		t.Error("Lyrics.IsEnabled() = false, want true by default")
	}
}

func TestLoadFromExplicitFalse(t *testing.T) {
	path := writeConfig(t, `
[playback]
show_info = false

[lyrics]
enabled = false
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Playback.InfoEnabled() {
		t.Error("InfoEnabled() = true, want false")
	}
	if cfg.Lyrics.IsEnabled() {
		t.Error("Lyrics.IsEnabled() = true, want false")
	}
}

func TestLoadFromMalformed(t *testing.T) {
	path := writeConfig(t, "[player\nvolume = ")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() error = nil, want parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("YTPLAY_API_KEY", "from-env")
	t.Setenv("YTPLAY_PLAYER_VOLUME", "40")
	t.Setenv("YTPLAY_LOG_LEVEL", "debug")
	t.Setenv("YTPLAY_POLL_INTERVAL", "not-a-number")

	path := writeConfig(t, `
[youtube]
api_key = "from-file"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.YouTube.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.YouTube.APIKey)
	}
	if cfg.Player.Volume != 40 {
		t.Errorf("Volume = %d, want 40", cfg.Player.Volume)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Playback.PollInterval != 500 {
		t.Errorf("PollInterval = %d, want default 500", cfg.Playback.PollInterval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"volume high", func(c *Config) { c.Player.Volume = 150 }, "player: volume"},
		{"volume negative", func(c *Config) { c.Player.Volume = -1 }, "player: volume"},
		{"poll too fast", func(c *Config) { c.Playback.PollInterval = 10 }, "poll_interval_ms"},
		{"bad template", func(c *Config) { c.Playback.Format = "{{.Title" }, "playback: invalid format"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log: invalid level"},
		{"bad lyrics url", func(c *Config) { c.Lyrics.BaseURL = "not a url" }, "lyrics: invalid base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Player.Volume = 101
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil")
	}
	if !strings.Contains(err.Error(), "player:") || !strings.Contains(err.Error(), "log:") {
		t.Errorf("Validate() = %q, want both sections reported", err)
	}
}
