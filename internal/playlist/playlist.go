package playlist

import "slices"

// Playlist is a loaded copy of a stored playlist with a cursor. The session
// uses one to follow a playlist during playback and another while editing.
type Playlist struct {
	Name   string
	Tracks []string
	Cursor int

	// Saved is the track count at load time, used to detect edits.
	Saved int
}

// Source is anything that can return a stored playlist by name.
type Source interface {
	Tracks(name string) ([]string, error)
}

// Load copies the named playlist out of src.
func Load(src Source, name string) (*Playlist, error) {
	tracks, err := src.Tracks(name)
	if err != nil {
		return nil, err
	}
	return &Playlist{Name: name, Tracks: tracks, Saved: len(tracks)}, nil
}

func (p *Playlist) Len() int {
	return len(p.Tracks)
}

// Current returns the track name under the cursor.
func (p *Playlist) Current() (string, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Tracks) {
		return "", false
	}
	return p.Tracks[p.Cursor], true
}

// Advance moves the cursor one step and reports whether it still points at
// a track.
func (p *Playlist) Advance() bool {
	if p.Cursor < len(p.Tracks) {
		p.Cursor++
	}
	return p.Cursor < len(p.Tracks)
}

// Next and Prev move the edit cursor, wrapping at both ends.
func (p *Playlist) Next() {
	if len(p.Tracks) == 0 {
		return
	}
	p.Cursor = (p.Cursor + 1) % len(p.Tracks)
}

func (p *Playlist) Prev() {
	if len(p.Tracks) == 0 {
		return
	}
	p.Cursor = (p.Cursor - 1 + len(p.Tracks)) % len(p.Tracks)
}

// RemoveCurrent deletes the entry under the cursor. The cursor stays on the
// same position, or the new last entry.
func (p *Playlist) RemoveCurrent() (string, bool) {
	removed, ok := p.Current()
	if !ok {
		return "", false
	}

	p.Tracks = slices.Delete(p.Tracks, p.Cursor, p.Cursor+1)
	if p.Cursor >= len(p.Tracks) && p.Cursor > 0 {
		p.Cursor = len(p.Tracks) - 1
	}
	return removed, true
}

// Changed reports whether the track count differs from the stored one.
func (p *Playlist) Changed() bool {
	return len(p.Tracks) != p.Saved
}
