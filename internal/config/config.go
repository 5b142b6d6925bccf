package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

const (
	AppName        = "mupl"
	AppDescription = "A keyboard-driven terminal music player"

	ConfigDir        = ".config/mupl"
	ConfigFileName   = "config.json"
	MetadataFileName = "data.json"
	PlaylistFileName = "playlist.json"

	DefaultVolume = 50
	MinVolume     = 0
	MaxVolume     = 100
	VolumeStep    = 5
)

// AppVersion can be overridden at build time using ldflags:
// go build -ldflags "-X github.com/glebovdev/mupl/internal/config.AppVersion=1.0.0"
var AppVersion = "dev"

// DefaultExtensions is the audio allow-list used when the config does not set one.
var DefaultExtensions = []string{".mp3", ".flac", ".wav", ".ogg"}

var ErrNoMusicFolder = errors.New("music-folder is not set")

// ClampVolume ensures volume is within the valid range [0, 100].
func ClampVolume(volume int) int {
	if volume < MinVolume {
		return MinVolume
	}
	if volume > MaxVolume {
		return MaxVolume
	}
	return volume
}

type Theme struct {
	Background      string `yaml:"background"`
	Foreground      string `yaml:"foreground"`
	Borders         string `yaml:"borders"`
	Highlight       string `yaml:"highlight"`
	ModalBackground string `yaml:"modal_background"`
	HelpBackground  string `yaml:"help_background"`
	HelpForeground  string `yaml:"help_foreground"`
	HelpHotkey      string `yaml:"help_hotkey"`
}

// Config mirrors config.json. The file is JSON; it is decoded with yaml.v3,
// which accepts JSON documents unchanged.
type Config struct {
	MusicFolder string   `yaml:"music-folder"`
	Volume      int      `yaml:"volume"`
	Autoplay    bool     `yaml:"autoplay"`
	Extensions  []string `yaml:"extensions"`
	Theme       Theme    `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		MusicFolder: "",
		Volume:      DefaultVolume,
		Autoplay:    true,
		Extensions:  append([]string(nil), DefaultExtensions...),
		Theme: Theme{
			Background:      "#1a1b25",
			Foreground:      "#a3aacb",
			Borders:         "#40445b",
			Highlight:       "#ff9d65",
			ModalBackground: "#282a36",
			HelpBackground:  "#322f45",
			HelpForeground:  "#9aa3c6",
			HelpHotkey:      "#ff9d65",
		},
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// a malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Volume = ClampVolume(cfg.Volume)
	cfg.Extensions = normalizeExtensions(cfg.Extensions)
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}

	return cfg, nil
}

// ResolveMusicFolder returns the absolute scan root, expanding a leading "~/".
func (c *Config) ResolveMusicFolder() (string, error) {
	folder := strings.TrimSpace(c.MusicFolder)
	if folder == "" {
		return "", ErrNoMusicFolder
	}

	if strings.HasPrefix(folder, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		folder = filepath.Join(home, folder[2:])
	}

	abs, err := filepath.Abs(folder)
	if err != nil {
		return "", fmt.Errorf("failed to resolve music folder: %w", err)
	}
	return abs, nil
}

func normalizeExtensions(exts []string) []string {
	result := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		result = append(result, ext)
	}
	return result
}

func GetColor(colorStr string) tcell.Color {
	if colorStr == "" || colorStr == "default" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(colorStr)
}
