// Package cache keeps probe results on disk so restarts do not decode every
// file in the music folder again.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultExpiry is how long an unused probe entry is kept (30 days).
	DefaultExpiry = 30 * 24 * time.Hour
	// ProbeSubdir is the subdirectory for cached probe results.
	ProbeSubdir = "probe"
	// AppName is used for the cache directory name.
	AppName = "mupl"
)

// Entry is the cached result of probing one audio file.
type Entry struct {
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	ModTime  int64  `json:"mod_time"`
	Duration uint32 `json:"duration"`
	Title    string `json:"title,omitempty"`
	Artist   string `json:"artist,omitempty"`
}

// Cache manages disk-based caching of probe results.
type Cache struct {
	baseDir string
	expiry  time.Duration
}

// NewCache creates a new Cache instance with the default expiry.
func NewCache() (*Cache, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return nil, err
	}

	return &Cache{
		baseDir: cacheDir,
		expiry:  DefaultExpiry,
	}, nil
}

// NewCacheAt creates a Cache rooted at dir.
func NewCacheAt(dir string, expiry time.Duration) *Cache {
	return &Cache{baseDir: dir, expiry: expiry}
}

// GetCacheDir returns the platform-specific cache directory for the application.
func GetCacheDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}

	cacheDir := filepath.Join(userCacheDir, AppName)
	return cacheDir, nil
}

func (c *Cache) ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func hashKey(path string) string {
	hash := md5.Sum([]byte(path))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) entryPath(path string) string {
	return filepath.Join(c.baseDir, ProbeSubdir, hashKey(path)+".json")
}

// Get returns the cached entry for the file described by info. The entry is
// discarded when the file's size or modification time changed.
func (c *Cache) Get(path string, info os.FileInfo) (Entry, bool) {
	entryPath := c.entryPath(path)

	data, err := os.ReadFile(entryPath)
	if err != nil {
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Debug().Err(err).Str("file", entryPath).Msg("Failed to decode cached probe entry")
		return Entry{}, false
	}

	if entry.Path != path || entry.Size != info.Size() || entry.ModTime != info.ModTime().UnixNano() {
		return Entry{}, false
	}

	// Touch so CleanExpired keeps entries that are still in use.
	now := time.Now()
	if err := os.Chtimes(entryPath, now, now); err != nil {
		log.Debug().Err(err).Str("file", entryPath).Msg("Failed to touch cache entry")
	}

	return entry, true
}

// Save stores an entry, keyed by its path.
func (c *Cache) Save(entry Entry) error {
	dir := filepath.Join(c.baseDir, ProbeSubdir)

	if err := c.ensureDir(dir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := os.WriteFile(c.entryPath(entry.Path), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// CleanExpired removes cache files older than the expiry duration.
func (c *Cache) CleanExpired() error {
	dir := filepath.Join(c.baseDir, ProbeSubdir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	now := time.Now()
	var removed, failed int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Debug().Err(err).Str("file", entry.Name()).Msg("Failed to get file info")
			continue
		}

		if now.Sub(info.ModTime()) > c.expiry {
			filePath := filepath.Join(dir, entry.Name())
			if err := os.Remove(filePath); err != nil {
				log.Debug().Err(err).Str("file", filePath).Msg("Failed to remove expired cache file")
				failed++
			} else {
				removed++
			}
		}
	}

	if removed > 0 || failed > 0 {
		log.Debug().Int("removed", removed).Int("failed", failed).Msg("Cache cleanup completed")
	}

	return nil
}
