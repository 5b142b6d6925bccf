package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/glebovdev/mupl/internal/audio"
	"github.com/glebovdev/mupl/internal/config"
	"github.com/glebovdev/mupl/internal/playlist"
	"github.com/glebovdev/mupl/internal/session"
	"github.com/glebovdev/mupl/internal/track"
)

func TestJoinParts(t *testing.T) {
	tests := []struct {
		name     string
		parts    []string
		expected string
	}{
		{"empty", []string{}, ""},
		{"single", []string{"IDLE"}, "IDLE"},
		{"two", []string{"PLAYING", "VOL 50%"}, "PLAYING │ VOL 50%"},
		{"three", []string{"a", "b", "c"}, "a │ b │ c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinParts(tt.parts); got != tt.expected {
				t.Errorf("joinParts(%v) = %q, want %q", tt.parts, got, tt.expected)
			}
		})
	}
}

func TestProgressRatio(t *testing.T) {
	tests := []struct {
		name     string
		progress uint32
		duration uint32
		expected float64
	}{
		{"start", 0, 100, 0},
		{"half", 50, 100, 0.5},
		{"end", 100, 100, 1},
		{"past end clamps", 101, 100, 1},
		{"zero duration", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progressRatio(tt.progress, tt.duration); got != tt.expected {
				t.Errorf("progressRatio(%d, %d) = %v, want %v", tt.progress, tt.duration, got, tt.expected)
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	bar := progressBar(5, 10, 10)
	if utf8.RuneCountInString(bar) != 10 {
		t.Fatalf("bar width = %d, want 10", utf8.RuneCountInString(bar))
	}
	if strings.Count(bar, "━") != 5 {
		t.Errorf("progressBar(5, 10, 10) = %q, want 5 filled cells", bar)
	}
}

func TestProgressLabel(t *testing.T) {
	if got := progressLabel(65, 3600); got != "00:01:05 / 01:00:00" {
		t.Errorf("progressLabel() = %q", got)
	}
}

func TestVolumeBar(t *testing.T) {
	tests := []struct {
		volume int
		filled int
	}{
		{0, 0},
		{50, 10},
		{100, 20},
		{150, 20},
		{-10, 0},
	}

	for _, tt := range tests {
		bar := volumeBar(tt.volume, 20)
		if utf8.RuneCountInString(bar) != 20 {
			t.Errorf("volumeBar(%d) width = %d, want 20", tt.volume, utf8.RuneCountInString(bar))
		}
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("volumeBar(%d) filled = %d, want %d", tt.volume, got, tt.filled)
		}
	}
}

func TestPromptLine(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		width      int
		wantLine   string
		wantCursor int
	}{
		{"empty", "", 10, "", 0},
		{"fits", "rock", 10, "rock", 4},
		{"keeps the tail", "abcdefghij", 5, "ghij", 4},
		{"wide runes", "日本語", 5, "本語", 4},
		{"no room", "abc", 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, cursor := promptLine([]rune(tt.input), tt.width)
			if line != tt.wantLine || cursor != tt.wantCursor {
				t.Errorf("promptLine(%q, %d) = %q, %d, want %q, %d",
					tt.input, tt.width, line, cursor, tt.wantLine, tt.wantCursor)
			}
		})
	}
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		name                string
		n, cursor, rows     int
		wantFirst, wantLast int
	}{
		{"fits", 3, 2, 10, 0, 3},
		{"cursor at top", 20, 0, 5, 0, 5},
		{"cursor past window", 20, 7, 5, 3, 8},
		{"cursor at end", 20, 19, 5, 15, 20},
		{"no rows", 5, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := visibleWindow(tt.n, tt.cursor, tt.rows)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("visibleWindow(%d, %d, %d) = %d, %d, want %d, %d",
					tt.n, tt.cursor, tt.rows, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestHelpTextCoversEveryMode(t *testing.T) {
	modes := []session.Mode{
		session.ModeMain,
		session.ModeTextPrompt,
		session.ModeConfirmation,
		session.ModeFuzzyFind,
		session.ModeAddToPlaylist,
		session.ModePlayPlaylist,
		session.ModeModifyPlaylist,
	}

	for _, mode := range modes {
		text := helpText(mode, "#ff9d65")
		if strings.TrimSpace(text) == "" {
			t.Errorf("helpText(%s) is empty", mode)
		}
		if !strings.Contains(text, "[#ff9d65]") {
			t.Errorf("helpText(%s) = %q, missing key color", mode, text)
		}
	}
}

func TestConfirmButtons(t *testing.T) {
	yes := confirmButtons(true, "red")
	if !strings.Contains(yes, "[black:red] Yes ") {
		t.Errorf("positive buttons = %q, want Yes highlighted", yes)
	}
	no := confirmButtons(false, "red")
	if !strings.Contains(no, "[black:red] No ") {
		t.Errorf("negative buttons = %q, want No highlighted", no)
	}
}

func TestEditTitle(t *testing.T) {
	if got := editTitle("road", 3, false); got != " Editing road (3) " {
		t.Errorf("editTitle() = %q", got)
	}
	if got := editTitle("road", 2, true); !strings.Contains(got, "*") {
		t.Errorf("editTitle() = %q, want change marker", got)
	}
}

func TestPlayingIcon(t *testing.T) {
	if playingIcon(false) != PlayIcon {
		t.Error("playingIcon(false) should be the play icon")
	}
	if playingIcon(true) != PauseIcon {
		t.Error("playingIcon(true) should be the pause icon")
	}
}

func TestKeyFromEvent(t *testing.T) {
	tests := []struct {
		name   string
		event  *tcell.EventKey
		want   session.Key
		wantOK bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), session.Rune('x'), true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), session.Rune(' '), true},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), session.Key{Code: session.KeyBackspace}, true},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), session.Key{Code: session.KeyBackspace}, true},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), session.Key{Code: session.KeyBacktab}, true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), session.Key{Code: session.KeyTab}, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), session.Key{Code: session.KeyEnter}, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), session.Key{Code: session.KeyEsc}, true},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), session.Key{Code: session.KeyDelete}, true},
		{"unmapped", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), session.Key{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyFromEvent(tt.event)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("keyFromEvent() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

type catalogLibrary []track.Track

func (l catalogLibrary) Tracks() []track.Track { return l }

func (l catalogLibrary) FindIndexByName(name string) int {
	for i, t := range l {
		if t.Name == name {
			return i
		}
	}
	return -1
}

type discardSender struct{}

func (discardSender) Send(audio.Command) error { return nil }

// startLoop runs a UI over a simulation screen and returns the screen and a
// channel that receives Run's result.
func startLoop(t *testing.T, ctx context.Context, period time.Duration, autoplay bool, before ...rune) (tcell.SimulationScreen, *session.Session, <-chan error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "playlist.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := playlist.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	s := session.New(session.Options{
		Library:   catalogLibrary{track.New("/music/long.mp3", 1000)},
		Playlists: store,
		Audio:     discardSender{},
		Volume:    50,
	})
	if err := s.Start(autoplay); err != nil {
		t.Fatal(err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(120, 40)
	t.Cleanup(screen.Fini)

	for _, r := range before {
		screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}

	ui := NewUI(s, config.DefaultConfig())
	ui.tickPeriod = period

	done := make(chan error, 1)
	go func() {
		done <- ui.Run(ctx, screen)
	}()
	return screen, s, done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestRunQuitKey(t *testing.T) {
	screen, s, done := startLoop(t, context.Background(), 10*time.Millisecond, false)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !s.Quit() {
		t.Error("q did not reach the session")
	}
}

func TestRunCtrlCQuits(t *testing.T) {
	screen, s, done := startLoop(t, context.Background(), 10*time.Millisecond, false)

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !s.Quit() {
		t.Error("Ctrl-C should request quit")
	}
}

func TestRunTicksProgress(t *testing.T) {
	screen, s, done := startLoop(t, context.Background(), 10*time.Millisecond, true)

	time.Sleep(200 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if s.Progress() == 0 {
		t.Error("Progress() = 0, want ticks while playing")
	}
	if s.Active() != 0 {
		t.Errorf("Active() = %d, want 0", s.Active())
	}
}

func TestRunPausedDoesNotTick(t *testing.T) {
	// Space is queued before the loop starts, so it is handled well before
	// the first tick is due.
	screen, s, done := startLoop(t, context.Background(), 50*time.Millisecond, true, ' ')

	time.Sleep(300 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !s.Paused() {
		t.Fatal("space did not pause")
	}
	if s.Progress() != 0 {
		t.Errorf("Progress() = %d while paused, want 0", s.Progress())
	}
}

func TestRunContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, s, done := startLoop(t, ctx, 10*time.Millisecond, false)

	cancel()

	if err := waitRun(t, done); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if s.Quit() {
		t.Error("cancel should not set the quit flag")
	}
}
