// Package session holds the state of a running player and the controller
// state machine that mutates it. A Session is owned by the UI goroutine and
// is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"

	"github.com/glebovdev/mupl/internal/audio"
	"github.com/glebovdev/mupl/internal/config"
	"github.com/glebovdev/mupl/internal/fuzzy"
	"github.com/glebovdev/mupl/internal/playlist"
	"github.com/glebovdev/mupl/internal/track"
	"github.com/rs/zerolog/log"
)

// MaxMessages is the number of log lines kept for the message panel.
const MaxMessages = 10

// Sender delivers commands to the audio actor.
type Sender interface {
	Send(cmd audio.Command) error
}

// Library is the loaded catalog. *service.LibraryService satisfies it.
type Library interface {
	Tracks() []track.Track
	FindIndexByName(name string) int
}

// Playlists is the subset of the playlist store the session needs.
type Playlists interface {
	Names() []string
	Has(name string) bool
	Tracks(name string) ([]string, error)
	Append(name, trackName string) error
	Overwrite(name string, tracks []string) error
	Create(name string, overwrite bool) error
}

// Prompt is the state of the text prompt modal.
type Prompt struct {
	Title string
	Input []rune
}

// Confirmation is the state of the yes/no modal.
type Confirmation struct {
	Title    string
	Positive bool
	yes      Action
	no       Action
}

// Finder is the state of a fuzzy finder modal.
type Finder struct {
	Title   string
	Matcher *fuzzy.Matcher
}

// Options configures a new Session.
type Options struct {
	Library   Library
	Playlists Playlists
	Audio     Sender
	Volume    int
}

type Session struct {
	library Library
	catalog []track.Track
	store   Playlists
	audio   Sender

	mode     Mode
	selected int // -1 when nothing is selected
	active   int // catalog index of the playing track, -1 if none
	current  track.Track
	progress uint32
	volume   int
	paused   bool
	quit     bool

	playing *playlist.Playlist
	editing *playlist.Playlist

	prompt  *Prompt
	confirm *Confirmation
	finder  *Finder
	pending Action

	messages []string
}

func New(opts Options) *Session {
	return &Session{
		library:  opts.Library,
		catalog:  opts.Library.Tracks(),
		store:    opts.Playlists,
		audio:    opts.Audio,
		mode:     ModeMain,
		selected: -1,
		active:   -1,
		volume:   config.ClampVolume(opts.Volume),
	}
}

// Start pushes the initial volume to the audio actor and, with autoplay,
// starts the first catalog track. It must be called after the actor is ready.
func (s *Session) Start(autoplay bool) error {
	if err := s.send(audio.SetVolume{Level: s.volume}); err != nil {
		return err
	}
	if autoplay && len(s.catalog) > 0 {
		return s.play(0)
	}
	return nil
}

func (s *Session) send(cmd audio.Command) error {
	if err := s.audio.Send(cmd); err != nil {
		return fmt.Errorf("failed to send %s: %w", cmd, err)
	}
	return nil
}

// play makes catalog[index] the active track.
func (s *Session) play(index int) error {
	t := s.catalog[index]
	s.active = index
	s.current = t
	s.progress = 0

	log.Debug().Str("track", t.Name).Int("index", index).Msg("Play")
	return s.send(audio.PlayTrack{Track: t})
}

func (s *Session) setVolume(volume int) error {
	volume = config.ClampVolume(volume)
	if volume == s.volume {
		return nil
	}
	s.volume = volume
	return s.send(audio.SetVolume{Level: volume})
}

func (s *Session) togglePause() error {
	if s.current.IsZero() {
		return nil
	}
	s.paused = !s.paused
	return s.send(audio.TogglePause{})
}

// Tick advances the progress counter by one second of playback.
func (s *Session) Tick() error {
	if s.paused || s.current.IsZero() {
		return nil
	}

	s.progress++
	if s.progress <= s.current.Duration {
		return nil
	}

	s.progress = 0
	return s.advance()
}

// advance moves to the next track once the current one has ended.
func (s *Session) advance() error {
	if s.playing != nil {
		return s.advancePlaylist()
	}

	if s.active < 0 {
		return nil
	}
	return s.play(min(s.active+1, len(s.catalog)-1))
}

func (s *Session) advancePlaylist() error {
	for s.playing.Advance() {
		if played, err := s.playPlaylistCurrent(); played || err != nil {
			return err
		}
	}

	s.Logf("Playlist %s finished", s.playing.Name)
	s.playing = nil
	s.current = track.Track{}
	s.active = -1
	return nil
}

// playPlaylistCurrent plays the playlist entry under the cursor. played is
// false when the entry does not resolve to a catalog track.
func (s *Session) playPlaylistCurrent() (played bool, err error) {
	name, ok := s.playing.Current()
	if !ok {
		return false, nil
	}

	index := s.library.FindIndexByName(name)
	if index < 0 || index >= len(s.catalog) {
		s.Logf("Skipping %s: not in catalog", name)
		return false, nil
	}
	return true, s.play(index)
}

// startPlaylist begins following p from its first resolvable entry.
func (s *Session) startPlaylist(p *playlist.Playlist) error {
	if p.Len() == 0 {
		s.Logf("Playlist %s is empty", p.Name)
		return nil
	}

	s.playing = p
	s.Logf("Playing playlist %s", p.Name)
	if played, err := s.playPlaylistCurrent(); played || err != nil {
		return err
	}
	return s.advancePlaylist()
}

// Logf appends a line to the message panel, dropping the oldest beyond
// MaxMessages.
func (s *Session) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Debug().Str("message", msg).Msg("Session message")

	s.messages = append(s.messages, msg)
	if len(s.messages) > MaxMessages {
		s.messages = s.messages[len(s.messages)-MaxMessages:]
	}
}

// recoverable reports whether err comes from a user-reachable absent or
// duplicate playlist rather than I/O.
func recoverable(err error) bool {
	return errors.Is(err, playlist.ErrNotFound) || errors.Is(err, playlist.ErrExists)
}

func (s *Session) Mode() Mode                          { return s.mode }
func (s *Session) Catalog() []track.Track              { return s.catalog }
func (s *Session) Current() track.Track                { return s.current }
func (s *Session) Active() int                         { return s.active }
func (s *Session) Progress() uint32                    { return s.progress }
func (s *Session) Volume() int                         { return s.volume }
func (s *Session) Paused() bool                        { return s.paused }
func (s *Session) Quit() bool                          { return s.quit }
func (s *Session) Messages() []string                  { return s.messages }
func (s *Session) Prompt() *Prompt                     { return s.prompt }
func (s *Session) Confirmation() *Confirmation         { return s.confirm }
func (s *Session) Finder() *Finder                     { return s.finder }
func (s *Session) PlayingPlaylist() *playlist.Playlist { return s.playing }
func (s *Session) EditingPlaylist() *playlist.Playlist { return s.editing }

// Selected returns the highlighted catalog index.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

// RequestQuit ends the session from outside the key map, e.g. on interrupt.
func (s *Session) RequestQuit() {
	s.quit = true
}
