// Package service builds the track catalog from the music folder.
package service

import (
	"context"
	"errors"
	"os"
	"runtime"
	"sync"

	"github.com/glebovdev/mupl/internal/cache"
	"github.com/glebovdev/mupl/internal/catalog"
	"github.com/glebovdev/mupl/internal/config"
	"github.com/glebovdev/mupl/internal/track"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// ErrEmptyCatalog is returned when the music folder holds no playable file.
var ErrEmptyCatalog = errors.New("no playable tracks found in music folder")

// LibraryService scans, probes and enriches tracks. The result is read-only
// once Load returns.
type LibraryService struct {
	prober     catalog.Prober
	probeCache *cache.Cache
	metadata   config.Metadata
	workers    int

	tracks []track.Track
	byName map[string]int
	mu     sync.RWMutex
}

// NewLibraryService creates a LibraryService. probeCache may be nil.
func NewLibraryService(prober catalog.Prober, probeCache *cache.Cache, metadata config.Metadata) *LibraryService {
	if probeCache != nil {
		go func() {
			if err := probeCache.CleanExpired(); err != nil {
				log.Debug().Err(err).Msg("Failed to clean expired cache")
			}
		}()
	}

	return &LibraryService{
		prober:     prober,
		probeCache: probeCache,
		metadata:   metadata,
		workers:    runtime.NumCPU(),
	}
}

type probeResult struct {
	track track.Track
	ok    bool
}

// Load scans root and probes every file. Files that fail to probe are skipped
// with a warning. The catalog keeps scan order.
func (s *LibraryService) Load(ctx context.Context, root string, exts []string) ([]track.Track, error) {
	files, err := catalog.Scan(root, exts)
	if err != nil {
		return nil, err
	}

	results := make([]probeResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < max(1, s.workers); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.probe(files[i])
			}
		}()
	}

feed:
	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tracks := lo.FilterMap(results, func(r probeResult, _ int) (track.Track, bool) {
		return r.track, r.ok
	})
	if len(tracks) == 0 {
		return nil, ErrEmptyCatalog
	}

	s.mu.Lock()
	s.tracks = tracks
	s.byName = make(map[string]int, len(tracks))
	for i, t := range tracks {
		if _, dup := s.byName[t.Name]; !dup {
			s.byName[t.Name] = i
		}
	}
	s.mu.Unlock()

	log.Info().Int("tracks", len(tracks)).Int("skipped", len(files)-len(tracks)).Msg("Catalog loaded")
	return tracks, nil
}

func (s *LibraryService) probe(path string) probeResult {
	info, err := os.Stat(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Skipping unreadable file")
		return probeResult{}
	}

	var entry cache.Entry
	hit := false
	if s.probeCache != nil {
		entry, hit = s.probeCache.Get(path, info)
	}

	if !hit {
		probed, err := s.prober.Probe(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Skipping file that failed to probe")
			return probeResult{}
		}

		entry = cache.Entry{
			Path:     path,
			Size:     info.Size(),
			ModTime:  info.ModTime().UnixNano(),
			Duration: probed.Duration,
			Title:    probed.Title,
			Artist:   probed.Artist,
		}
		if s.probeCache != nil {
			if err := s.probeCache.Save(entry); err != nil {
				log.Debug().Err(err).Str("file", path).Msg("Failed to cache probe result")
			}
		}
	}

	t := track.New(path, entry.Duration)
	t.Title = entry.Title
	t.Artist = entry.Artist

	// Catalog metadata wins over embedded tags.
	if md, ok := s.metadata[t.Stem()]; ok {
		if md.Name != "" {
			t.Title = md.Name
		}
		if artist := md.PrimaryArtist(); artist != "" {
			t.Artist = artist
		}
	}

	return probeResult{track: t, ok: true}
}

// Tracks returns a copy of the loaded catalog.
func (s *LibraryService) Tracks() []track.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]track.Track, len(s.tracks))
	copy(result, s.tracks)
	return result
}

// FindIndexByName returns the catalog index of the first track whose file
// name is name, or -1.
func (s *LibraryService) FindIndexByName(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.byName[name]; ok {
		return i
	}
	return -1
}
