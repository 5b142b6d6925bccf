package audio

import (
	"fmt"

	"github.com/glebovdev/mupl/internal/track"
	"github.com/rs/zerolog/log"
)

// Sink is the output device as seen by the actor. Only the actor goroutine
// calls into it.
type Sink interface {
	// Stop drops whatever is rendering. Stopping an idle sink is a no-op.
	Stop()
	// Append decodes t and starts rendering it.
	Append(t track.Track) error
	// SetVolume sets linear attenuation in 0..1.
	SetVolume(level float64)
	TogglePause()
	Close() error
}

// OpenFunc opens the output device. It runs on the actor goroutine.
type OpenFunc func() (Sink, error)

// Actor is the handle to the audio goroutine.
type Actor struct {
	queue *Queue
	done  chan struct{}
}

// Spawn starts the audio goroutine and waits for it to open the device. A
// device-open failure is returned here and no goroutine is left running.
func Spawn(open OpenFunc) (*Actor, error) {
	a := &Actor{
		queue: NewQueue(),
		done:  make(chan struct{}),
	}

	ready := make(chan error, 1)
	go a.run(open, ready)

	if err := <-ready; err != nil {
		<-a.done
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}

	log.Debug().Msg("Audio actor ready")
	return a, nil
}

func (a *Actor) run(open OpenFunc, ready chan<- error) {
	defer close(a.done)

	sink, err := open()
	ready <- err
	if err != nil {
		return
	}
	defer func() {
		sink.Stop()
		if err := sink.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close audio device")
		}
	}()

	for {
		cmd, ok := a.queue.Receive()
		if !ok {
			log.Debug().Msg("Command queue closed, audio actor exiting")
			return
		}
		a.handle(sink, cmd)
	}
}

func (a *Actor) handle(sink Sink, cmd Command) {
	log.Debug().Str("command", cmd.String()).Msg("Audio command")

	switch c := cmd.(type) {
	case PlayTrack:
		sink.Stop()
		if err := sink.Append(c.Track); err != nil {
			// Skip the track; the sink stays stopped until the next PlayTrack.
			log.Error().Err(err).Str("track", c.Track.Name).Msg("Failed to play track")
		}
	case SetVolume:
		sink.SetVolume(float64(c.Level) / 100.0)
	case TogglePause:
		sink.TogglePause()
	}
}

// Send enqueues cmd. It fails only with ErrClosed.
func (a *Actor) Send(cmd Command) error {
	return a.queue.Send(cmd)
}

// Close closes the queue. Commands already sent are still executed before
// the goroutine exits.
func (a *Actor) Close() {
	a.queue.Close()
}

// Done is closed when the audio goroutine has returned.
func (a *Actor) Done() <-chan struct{} {
	return a.done
}
