// Package session persists the playlist and options of the last run so that
// ytplay can be started again with no arguments.
package session

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/mitchellh/hashstructure/v2"
)

const (
	appName = "ytplay"

	// DefaultFileName is the default name for the session file.
	DefaultFileName = "session.toml"
)

// Session holds the values reused when ytplay runs without arguments.
type Session struct {
	PlaylistURL string `toml:"playlist_url" json:"playlist_url"`
	APIKey      string `toml:"api_key,omitempty" json:"api_key,omitempty"`
	PlayerDir   string `toml:"player_dir,omitempty" json:"player_dir,omitempty"`
}

// Empty reports whether no playlist has been recorded.
func (s *Session) Empty() bool {
	return s == nil || s.PlaylistURL == ""
}

// Store handles persisting a session to disk.
type Store struct {
	path string
}

// NewStore creates a session store at the specified path.
// If path is empty, uses $XDG_DATA_HOME/ytplay/session.toml.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := xdg.DataFile(filepath.Join(appName, DefaultFileName))
		if err != nil {
			return nil, fmt.Errorf("failed to get data directory: %w", err)
		}
		path = p
	}

	return &Store{path: path}, nil
}

// Load reads the stored session. It returns nil with no error when nothing
// has been stored yet.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if _, err := toml.Decode(string(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return &sess, nil
}

// Save persists sess, skipping the write when the stored session already
// holds the same values. It reports whether the file was written.
func (s *Store) Save(sess *Session) (bool, error) {
	if sess.Empty() {
		return false, fmt.Errorf("session has no playlist url")
	}

	if prev, err := s.Load(); err == nil && prev != nil {
		same, err := equal(prev, sess)
		if err != nil {
			return false, err
		}
		if same {
			return false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return false, fmt.Errorf("failed to create data directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(sess); err != nil {
		return false, fmt.Errorf("failed to encode session: %w", err)
	}

	// The API key is a credential; owner only.
	if err := os.WriteFile(s.path, buf.Bytes(), 0600); err != nil {
		return false, fmt.Errorf("failed to write session file: %w", err)
	}

	return true, nil
}

// Clear removes the stored session.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// Exists returns true if a session file exists.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the path to the session file.
func (s *Store) Path() string {
	return s.path
}

func equal(a, b *Session) (bool, error) {
	ha, err := hashstructure.Hash(a, hashstructure.FormatV2, nil)
	if err != nil {
		return false, fmt.Errorf("failed to hash session: %w", err)
	}
	hb, err := hashstructure.Hash(b, hashstructure.FormatV2, nil)
	if err != nil {
		return false, fmt.Errorf("failed to hash session: %w", err)
	}
	return ha == hb, nil
}
