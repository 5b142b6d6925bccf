package playlist

import (
	"errors"
	"testing"
)

func TestLoad(t *testing.T) {
	s, _ := newStore(t, `{"chill": ["a.mp3", "b.mp3"]}`)

	p, err := Load(s, "chill")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Len() != 2 || p.Saved != 2 || p.Cursor != 0 {
		t.Errorf("Load() = %+v", p)
	}

	if _, err := Load(s, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
}

func TestAdvance(t *testing.T) {
	p := &Playlist{Tracks: []string{"a", "b"}}

	if cur, _ := p.Current(); cur != "a" {
		t.Fatalf("Current() = %q, want a", cur)
	}
	if !p.Advance() {
		t.Fatal("Advance() to second track reported exhausted")
	}
	if cur, _ := p.Current(); cur != "b" {
		t.Errorf("Current() = %q, want b", cur)
	}
	if p.Advance() {
		t.Error("Advance() past the end should report exhausted")
	}
	if _, ok := p.Current(); ok {
		t.Error("Current() on exhausted playlist should report false")
	}
	if p.Advance() {
		t.Error("Advance() stays exhausted")
	}
}

func TestEditCursorWraps(t *testing.T) {
	p := &Playlist{Tracks: []string{"a", "b", "c"}}

	p.Prev()
	if p.Cursor != 2 {
		t.Errorf("Prev() from 0: Cursor = %d, want 2", p.Cursor)
	}
	p.Next()
	if p.Cursor != 0 {
		t.Errorf("Next() from last: Cursor = %d, want 0", p.Cursor)
	}

	empty := &Playlist{}
	empty.Next()
	empty.Prev()
	if empty.Cursor != 0 {
		t.Errorf("empty playlist Cursor = %d, want 0", empty.Cursor)
	}
}

func TestRemoveCurrent(t *testing.T) {
	tests := []struct {
		name       string
		tracks     []string
		cursor     int
		wantTracks []string
		wantCursor int
		wantOK     bool
	}{
		{"middle", []string{"a", "b", "c"}, 1, []string{"a", "c"}, 1, true},
		{"last", []string{"a", "b", "c"}, 2, []string{"a", "b"}, 1, true},
		{"only", []string{"a"}, 0, []string{}, 0, true},
		{"empty", []string{}, 0, []string{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Playlist{Tracks: tt.tracks, Cursor: tt.cursor, Saved: len(tt.tracks)}
			_, ok := p.RemoveCurrent()

			if ok != tt.wantOK {
				t.Fatalf("RemoveCurrent() ok = %v, want %v", ok, tt.wantOK)
			}
			if len(p.Tracks) != len(tt.wantTracks) {
				t.Fatalf("Tracks = %v, want %v", p.Tracks, tt.wantTracks)
			}
			for i := range tt.wantTracks {
				if p.Tracks[i] != tt.wantTracks[i] {
					t.Errorf("Tracks = %v, want %v", p.Tracks, tt.wantTracks)
				}
			}
			if p.Cursor != tt.wantCursor {
				t.Errorf("Cursor = %d, want %d", p.Cursor, tt.wantCursor)
			}
			if p.Changed() != tt.wantOK {
				t.Errorf("Changed() = %v, want %v", p.Changed(), tt.wantOK)
			}
		})
	}
}
