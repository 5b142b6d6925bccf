// Package audio owns the output device. A single actor goroutine consumes
// commands from an unbounded queue and drives a Sink.
package audio

import (
	"fmt"

	"github.com/glebovdev/mupl/internal/track"
)

// Command is a message sent from the UI to the audio actor. The set of
// implementations is closed.
type Command interface {
	command()
	String() string
}

// PlayTrack stops whatever is rendering and starts Track.
type PlayTrack struct {
	Track track.Track
}

// SetVolume sets the sink attenuation to Level/100.
type SetVolume struct {
	Level int
}

// TogglePause flips between paused and playing.
type TogglePause struct{}

func (PlayTrack) command()   {}
func (SetVolume) command()   {}
func (TogglePause) command() {}

func (c PlayTrack) String() string   { return fmt.Sprintf("PlayTrack(%s)", c.Track.Name) }
func (c SetVolume) String() string   { return fmt.Sprintf("SetVolume(%d)", c.Level) }
func (c TogglePause) String() string { return "TogglePause" }
