// Package playlist persists named playlists and models the playlist the
// session is following or editing.
package playlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var (
	ErrNotFound = errors.New("playlist not found")
	ErrExists   = errors.New("playlist already exists")
)

// Store is the name → track-name mapping backed by a single JSON file.
// Every accepted mutation rewrites the whole file.
type Store struct {
	path  string
	lists map[string][]string
}

// Open loads the store at path. A missing file yields an empty store; a
// malformed one is an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path, lists: map[string][]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read playlist file: %w", err)
	}

	if err := json.Unmarshal(data, &s.lists); err != nil {
		return nil, fmt.Errorf("failed to parse playlist file %s: %w", path, err)
	}
	if s.lists == nil {
		s.lists = map[string][]string{}
	}
	for name, tracks := range s.lists {
		if tracks == nil {
			s.lists[name] = []string{}
		}
	}

	log.Debug().Int("playlists", len(s.lists)).Str("file", path).Msg("Playlists loaded")
	return s, nil
}

// Names returns the playlist names in sorted order.
func (s *Store) Names() []string {
	names := lo.Keys(s.lists)
	slices.Sort(names)
	return names
}

func (s *Store) Has(name string) bool {
	_, ok := s.lists[name]
	return ok
}

// Tracks returns a copy of the named playlist.
func (s *Store) Tracks(name string) ([]string, error) {
	tracks, ok := s.lists[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return slices.Clone(tracks), nil
}

// Append adds trackName to the end of an existing playlist.
func (s *Store) Append(name, trackName string) error {
	tracks, ok := s.lists[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	updated := append(slices.Clone(tracks), trackName)
	return s.commit(name, updated)
}

// Overwrite replaces the contents of an existing playlist.
func (s *Store) Overwrite(name string, tracks []string) error {
	if !s.Has(name) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.commit(name, slices.Clone(tracks))
}

// Create adds an empty playlist. An existing playlist is only replaced when
// overwrite is set.
func (s *Store) Create(name string, overwrite bool) error {
	if s.Has(name) && !overwrite {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}
	return s.commit(name, []string{})
}

// commit writes the mapping with name set to tracks and only then updates
// the in-memory copy.
func (s *Store) commit(name string, tracks []string) error {
	next := lo.Assign(s.lists, map[string][]string{name: tracks})

	if err := s.write(next); err != nil {
		return err
	}

	s.lists = next
	log.Debug().Str("playlist", name).Int("tracks", len(tracks)).Msg("Playlist saved")
	return nil
}

// write saves the mapping atomically using temp file + rename.
func (s *Store) write(lists map[string][]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create playlist directory: %w", err)
	}

	data, err := json.MarshalIndent(lists, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal playlists: %w", err)
	}
	data = append(data, '\n')

	tmpFile, err := os.CreateTemp(dir, ".playlist-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to rename playlist file: %w", err)
	}

	tmpPath = ""
	return nil
}
