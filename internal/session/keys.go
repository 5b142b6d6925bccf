package session

import (
	"fmt"
	"strings"

	"github.com/glebovdev/mupl/internal/config"
	"github.com/glebovdev/mupl/internal/fuzzy"
	"github.com/glebovdev/mupl/internal/playlist"
	"github.com/rs/zerolog/log"
)

// HandleKey applies one key press to the active mode. Unknown keys are
// no-ops. A returned error is not recoverable: the store or the audio queue
// failed.
func (s *Session) HandleKey(k Key) error {
	switch s.mode {
	case ModeMain:
		return s.handleMain(k)
	case ModeTextPrompt:
		return s.handlePrompt(k)
	case ModeConfirmation:
		return s.handleConfirmation(k)
	case ModeFuzzyFind, ModeAddToPlaylist, ModePlayPlaylist:
		return s.handleFinder(k)
	case ModeModifyPlaylist:
		return s.handleModify(k)
	}
	return nil
}

func (s *Session) handleMain(k Key) error {
	switch {
	case k.is('q'):
		s.quit = true
	case k.is('j') || k.Code == KeyDown:
		s.moveSelection(1)
	case k.is('k') || k.Code == KeyUp:
		s.moveSelection(-1)
	case k.is('h') || k.is('l'):
		s.selected = -1
	case k.Code == KeyEnter:
		if s.selected < 0 {
			return nil
		}
		s.playing = nil
		return s.play(s.selected)
	case k.is('w') || k.is('+'):
		return s.setVolume(s.volume + config.VolumeStep)
	case k.is('b') || k.is('-'):
		return s.setVolume(s.volume - config.VolumeStep)
	case k.is(' '):
		return s.togglePause()
	case k.is('a'):
		if s.selected < 0 {
			s.Logf("Select a track to add first")
			return nil
		}
		s.openFinder(ModeAddToPlaylist, "Add Track to Playlist", AddTrackToPlaylist{Track: s.catalog[s.selected]})
	case k.is('p'):
		s.openFinder(ModePlayPlaylist, "Play Playlist", PlayPlaylist{})
	case k.is('n'):
		s.prompt = &Prompt{Title: "New Playlist"}
		s.pending = CreatePlaylist{}
		s.setMode(ModeTextPrompt)
	case k.is('m'):
		s.openFinder(ModeFuzzyFind, "Modify Playlist", EditPlaylist{})
	}
	return nil
}

// moveSelection steps the catalog selection, wrapping at both ends. With no
// selection either direction selects the first track.
func (s *Session) moveSelection(delta int) {
	n := len(s.catalog)
	if n == 0 {
		return
	}
	if s.selected < 0 {
		s.selected = 0
		return
	}
	s.selected = (s.selected + delta + n) % n
}

func (s *Session) openFinder(mode Mode, title string, pending Action) {
	s.finder = &Finder{Title: title, Matcher: fuzzy.New(s.store.Names())}
	s.pending = pending
	s.setMode(mode)
}

func (s *Session) handleFinder(k Key) error {
	m := s.finder.Matcher

	switch k.Code {
	case KeyRune:
		m.Insert(k.Rune)
	case KeyBackspace:
		m.Backspace()
	case KeyTab, KeyDown:
		m.Next()
	case KeyBacktab, KeyUp:
		m.Prev()
	case KeyEsc:
		s.toMain()
	case KeyEnter:
		choice, ok := m.Selection()
		if !ok {
			return nil
		}
		pending := s.pending
		s.toMain()
		return s.invoke(pending, choice)
	}
	return nil
}

func (s *Session) handlePrompt(k Key) error {
	p := s.prompt

	switch k.Code {
	case KeyRune:
		p.Input = append(p.Input, k.Rune)
	case KeyBackspace:
		if len(p.Input) > 0 {
			p.Input = p.Input[:len(p.Input)-1]
		}
	case KeyEsc:
		s.toMain()
	case KeyEnter:
		text := strings.TrimSpace(string(p.Input))
		if text == "" {
			return nil
		}
		pending := s.pending
		s.toMain()
		return s.invoke(pending, text)
	}
	return nil
}

func (s *Session) openConfirmation(title string, yes, no Action) {
	s.confirm = &Confirmation{Title: title, Positive: true, yes: yes, no: no}
	s.setMode(ModeConfirmation)
}

func (s *Session) handleConfirmation(k Key) error {
	c := s.confirm

	switch {
	case k.is('h') || k.Code == KeyLeft:
		c.Positive = false
	case k.is('l') || k.Code == KeyRight:
		c.Positive = true
	case k.Code == KeyTab || k.Code == KeyBacktab:
		c.Positive = !c.Positive
	case k.Code == KeyEnter:
		return s.resolveConfirmation(c.Positive)
	case k.Code == KeyEsc || k.is('q'):
		return s.resolveConfirmation(false)
	}
	return nil
}

func (s *Session) resolveConfirmation(positive bool) error {
	action := s.confirm.no
	if positive {
		action = s.confirm.yes
	}
	s.toMain()
	return s.invoke(action, "")
}

func (s *Session) handleModify(k Key) error {
	p := s.editing

	switch {
	case k.is('j') || k.Code == KeyDown:
		p.Next()
	case k.is('k') || k.Code == KeyUp:
		p.Prev()
	case k.is('d') || k.is('x') || k.Code == KeyDelete:
		if removed, ok := p.RemoveCurrent(); ok {
			log.Debug().Str("playlist", p.Name).Str("track", removed).Msg("Removed from edit")
		}
	case k.is('q') || k.Code == KeyEsc:
		if p.Changed() {
			s.openConfirmation(fmt.Sprintf("Save changes to %s?", p.Name), SavePlaylistEdit{}, DiscardPlaylistEdit{})
			return nil
		}
		s.editing = nil
		s.toMain()
	}
	return nil
}

// invoke runs a resolved modal action. input is the finder choice or the
// prompt text.
func (s *Session) invoke(action Action, input string) error {
	switch a := action.(type) {
	case AddTrackToPlaylist:
		if err := s.store.Append(input, a.Track.Name); err != nil {
			return s.storeError("add to playlist", err)
		}
		s.Logf("Added %s to %s", a.Track.Name, input)

	case PlayPlaylist:
		p, err := playlist.Load(s.store, input)
		if err != nil {
			return s.storeError("load playlist", err)
		}
		return s.startPlaylist(p)

	case EditPlaylist:
		p, err := playlist.Load(s.store, input)
		if err != nil {
			return s.storeError("load playlist", err)
		}
		s.editing = p
		s.setMode(ModeModifyPlaylist)

	case CreatePlaylist:
		if s.store.Has(input) {
			s.openConfirmation(fmt.Sprintf("Playlist %s exists. Overwrite?", input), OverwritePlaylist{Name: input}, ReturnToMain{})
			return nil
		}
		if err := s.store.Create(input, false); err != nil {
			return s.storeError("create playlist", err)
		}
		s.Logf("Created playlist %s", input)

	case OverwritePlaylist:
		if err := s.store.Create(a.Name, true); err != nil {
			return s.storeError("overwrite playlist", err)
		}
		s.Logf("Overwrote playlist %s", a.Name)

	case SavePlaylistEdit:
		p := s.editing
		s.editing = nil
		if err := s.store.Overwrite(p.Name, p.Tracks); err != nil {
			return s.storeError("save playlist", err)
		}
		s.Logf("Saved playlist %s", p.Name)

	case DiscardPlaylistEdit:
		s.editing = nil

	case ReturnToMain:
	}
	return nil
}

// storeError turns absent or duplicate playlists into a message and passes
// anything else up.
func (s *Session) storeError(op string, err error) error {
	if recoverable(err) {
		s.Logf("Cannot %s: %v", op, err)
		return nil
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func (s *Session) toMain() {
	s.prompt = nil
	s.confirm = nil
	s.finder = nil
	s.pending = nil
	s.setMode(ModeMain)
}

func (s *Session) setMode(mode Mode) {
	if s.mode != mode {
		log.Debug().Msgf("Mode: %s -> %s", s.mode, mode)
		s.mode = mode
	}
}
