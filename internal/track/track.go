// Package track defines the immutable catalog entry played by mupl.
package track

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Track is a single playable file. Identity is the file path.
type Track struct {
	Name     string `json:"name"`             // File base name, also the key stored in playlists
	Title    string `json:"title,omitempty"`  // Optional display title from tags or catalog metadata
	Artist   string `json:"artist,omitempty"` // Optional display artist
	Duration uint32 `json:"duration"`         // Whole seconds
	Path     string `json:"path"`
}

// New creates a Track for path with the given duration in seconds.
func New(path string, duration uint32) Track {
	return Track{
		Name:     filepath.Base(path),
		Duration: duration,
		Path:     path,
	}
}

// Stem returns the file name without its extension.
// Catalog metadata is keyed by stem.
func (t Track) Stem() string {
	return strings.TrimSuffix(t.Name, filepath.Ext(t.Name))
}

// DisplayName returns "Artist - Title" when both are known, the title alone
// when only it is known, and the file name otherwise.
func (t Track) DisplayName() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return fmt.Sprintf("%s - %s", t.Artist, t.Title)
	case t.Title != "":
		return t.Title
	default:
		return t.Name
	}
}

// IsZero reports whether t is the empty Track.
func (t Track) IsZero() bool {
	return t.Path == ""
}

// TimeLayout selects the width of FormatTime's output.
type TimeLayout int

const (
	LayoutFull    TimeLayout = iota // HH:MM:SS
	LayoutCompact                   // M:SS, or H:MM:SS from one hour up
)

// FormatTime renders seconds in the given layout.
func FormatTime(seconds uint32, layout TimeLayout) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if layout == LayoutCompact {
		if hours > 0 {
			return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
		}
		return fmt.Sprintf("%d:%02d", minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
