package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// fileStreamer makes Close release the underlying file for decoders that
// only take an io.Reader.
type fileStreamer struct {
	beep.StreamSeekCloser
	file *os.File
}

func (s *fileStreamer) Close() error {
	err := s.StreamSeekCloser.Close()
	if cerr := s.file.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) && err == nil {
		err = cerr
	}
	return err
}

// DecodeFile opens path and returns a seekable stream picked by extension.
// The caller must Close the stream.
func DecodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3", ".flac", ".wav", ".ogg":
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open %s: %w", path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &fileStreamer{StreamSeekCloser: streamer, file: f}, format, nil
}
