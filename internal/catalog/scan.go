// Package catalog finds audio files under the music folder and probes them
// for duration and display tags.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Scan walks root recursively and returns every regular file whose extension
// is in exts, sorted by path. Unreadable subdirectories are skipped.
func Scan(root string, exts []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open music folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("music folder %s is not a directory", root)
	}

	allowed := lo.SliceToMap(exts, func(ext string) (string, struct{}) {
		return strings.ToLower(ext), struct{}{}
	})

	var (
		files []string
		mu    sync.Mutex
	)

	conf := &fastwalk.Config{Follow: true}
	err = fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("Skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		mu.Lock()
		files = append(files, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan music folder: %w", err)
	}

	sort.Strings(files)
	log.Debug().Int("count", len(files)).Str("root", root).Msg("Music folder scanned")
	return files, nil
}
