package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.ytplayrc, $XDG_CONFIG_HOME/ytplay/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Path returns the file Load would read, or the default location for a new
// config file when none exists yet.
func Path() string {
	if p := findConfigFile(); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, "ytplay", "config.toml")
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	var paths []string

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".ytplayrc"))
	}
	paths = append(paths, filepath.Join(xdg.ConfigHome, "ytplay", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Player
	if v := os.Getenv("YTPLAY_PLAYER_PATH"); v != "" {
		cfg.Player.Path = v
	}
	if v := os.Getenv("YTPLAY_PLAYER_VOLUME"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Player.Volume = i
		}
	}

	// YouTube
	if v := os.Getenv("YTPLAY_API_KEY"); v != "" {
		cfg.YouTube.APIKey = v
	}
	if v := os.Getenv("YTPLAY_YTDLP_PATH"); v != "" {
		cfg.YouTube.YtdlpPath = v
	}
	if v := os.Getenv("YTPLAY_PROXY"); v != "" {
		cfg.YouTube.Proxy = v
	}

	// Playback
	if v := os.Getenv("YTPLAY_POLL_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Playback.PollInterval = i
		}
	}

	// Log
	if v := os.Getenv("YTPLAY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("YTPLAY_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
