package main

import (
	"path/filepath"
	"testing"
)

func TestRootCmdFlags(t *testing.T) {
	cmd := rootCmd()
	cmd.InitDefaultVersionFlag()

	for _, name := range []string{"debug", "music-folder", "data-dir", "version"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s is not defined", name)
		}
	}
}

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()

	paths, err := resolvePaths(dir)
	if err != nil {
		t.Fatalf("resolvePaths() error = %v", err)
	}
	if paths.Dir != dir {
		t.Errorf("Dir = %q, want %q", paths.Dir, dir)
	}
	if paths.PlaylistPath() != filepath.Join(dir, "playlist.json") {
		t.Errorf("PlaylistPath() = %q", paths.PlaylistPath())
	}
}

func TestResolvePathsDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	paths, err := resolvePaths("")
	if err != nil {
		t.Fatalf("resolvePaths() error = %v", err)
	}
	if want := filepath.Join(home, ".config", "mupl"); paths.Dir != want {
		t.Errorf("Dir = %q, want %q", paths.Dir, want)
	}
}
