package catalog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/glebovdev/mupl/internal/audio"
	"github.com/rs/zerolog/log"
)

// Info is what probing a single file yields.
type Info struct {
	Duration uint32 // Whole seconds
	Title    string
	Artist   string
}

// Prober maps a file path to its probe Info.
type Prober interface {
	Probe(path string) (Info, error)
}

// FileProber decodes the stream header for the duration and reads embedded
// tags for display enrichment.
type FileProber struct{}

func (FileProber) Probe(path string) (Info, error) {
	streamer, format, err := audio.DecodeFile(path)
	if err != nil {
		return Info{}, err
	}
	length := streamer.Len()
	streamer.Close()

	if length < 0 {
		return Info{}, fmt.Errorf("unknown length for %s", path)
	}

	info := Info{
		Duration: uint32(format.SampleRate.D(length) / time.Second),
	}

	info.Title, info.Artist = readTags(path)
	return info, nil
}

func readTags(path string) (title, artist string) {
	f, err := os.Open(path)
	if err != nil {
		return "", ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if err != tag.ErrNoTagsFound {
			log.Debug().Err(err).Str("file", path).Msg("Failed to read tags")
		}
		return "", ""
	}

	return strings.TrimSpace(m.Title()), strings.TrimSpace(m.Artist())
}
