package audio

import (
	"fmt"
	"time"

	"github.com/glebovdev/mupl/internal/track"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog/log"
)

const (
	DefaultSampleRate = beep.SampleRate(44100)
	SpeakerBufferSize = time.Millisecond * 100
	ResampleQuality   = 4
)

// Speaker renders to the default output device through beep/speaker.
type Speaker struct {
	sampleRate beep.SampleRate
	streamer   beep.StreamSeekCloser
	ctrl       *beep.Ctrl
	gain       *effects.Gain
	level      float64
	paused     bool
}

// OpenSpeaker initializes the device at DefaultSampleRate.
func OpenSpeaker() (Sink, error) {
	if err := speaker.Init(DefaultSampleRate, DefaultSampleRate.N(SpeakerBufferSize)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	log.Debug().Msgf("Speaker initialized with sample rate: %d Hz, buffer: %v", DefaultSampleRate, SpeakerBufferSize)

	return &Speaker{
		sampleRate: DefaultSampleRate,
		level:      1,
	}, nil
}

func (s *Speaker) Stop() {
	if s.streamer == nil {
		return
	}

	speaker.Clear()
	if err := s.streamer.Close(); err != nil {
		log.Debug().Err(err).Msg("Failed to close stream")
	}
	s.streamer = nil
	s.ctrl = nil
	s.gain = nil
}

func (s *Speaker) Append(t track.Track) error {
	streamer, format, err := DecodeFile(t.Path)
	if err != nil {
		return err
	}

	resampled := beep.Resample(ResampleQuality, format.SampleRate, s.sampleRate, streamer)
	ctrl := &beep.Ctrl{Streamer: resampled, Paused: s.paused}
	gain := &effects.Gain{Streamer: ctrl, Gain: s.level - 1}

	s.streamer = streamer
	s.ctrl = ctrl
	s.gain = gain

	speaker.Play(gain)
	log.Debug().Str("track", t.Name).Int("rate", int(format.SampleRate)).Msg("Playback started")
	return nil
}

func (s *Speaker) SetVolume(level float64) {
	s.level = level

	if s.gain == nil {
		return
	}

	speaker.Lock()
	s.gain.Gain = level - 1
	speaker.Unlock()
}

// TogglePause flips the paused flag. The flag carries over to the next
// appended track.
func (s *Speaker) TogglePause() {
	s.paused = !s.paused

	if s.ctrl != nil {
		speaker.Lock()
		s.ctrl.Paused = s.paused
		speaker.Unlock()
	}

	if s.paused {
		log.Debug().Msg("Playback paused")
	} else {
		log.Debug().Msg("Playback resumed")
	}
}

func (s *Speaker) Close() error {
	s.Stop()
	speaker.Close()
	return nil
}
