package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Paths locates the three persisted files inside the data directory.
type Paths struct {
	Dir string
}

// GetDataDir returns $HOME/.config/mupl.
func GetDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ConfigDir), nil
}

// DefaultPaths resolves Paths under the user's home directory.
func DefaultPaths() (Paths, error) {
	dir, err := GetDataDir()
	if err != nil {
		return Paths{}, err
	}
	return Paths{Dir: dir}, nil
}

func (p Paths) ConfigPath() string {
	return filepath.Join(p.Dir, ConfigFileName)
}

func (p Paths) MetadataPath() string {
	return filepath.Join(p.Dir, MetadataFileName)
}

func (p Paths) PlaylistPath() string {
	return filepath.Join(p.Dir, PlaylistFileName)
}

// EnsureDefaultFiles creates the data directory and any of the three files
// that does not exist yet, each holding an empty JSON object. Existing files
// are left untouched.
func (p Paths) EnsureDefaultFiles() error {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	for _, path := range []string{p.ConfigPath(), p.MetadataPath(), p.PlaylistPath()} {
		if err := createDefaultFile(path); err != nil {
			return err
		}
	}
	return nil
}

func createDefaultFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.WriteString("{}\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	log.Debug().Str("file", path).Msg("Created default file")
	return nil
}

// MetadataEntry is one record of the catalog-metadata file.
type MetadataEntry struct {
	Name   string   `json:"name"`
	Artist []string `json:"artist"`
}

// PrimaryArtist returns the first listed artist, or "".
func (m MetadataEntry) PrimaryArtist() string {
	if len(m.Artist) == 0 {
		return ""
	}
	return m.Artist[0]
}

// Metadata maps a track stem to its display metadata.
type Metadata map[string]MetadataEntry

// LoadMetadata reads the catalog-metadata file. A missing file yields an
// empty mapping; a malformed one is an error.
func LoadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, nil
		}
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	md := Metadata{}
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file %s: %w", path, err)
	}
	return md, nil
}
