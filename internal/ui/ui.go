package ui

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/glebovdev/mupl/internal/config"
	"github.com/glebovdev/mupl/internal/session"
	"github.com/glebovdev/mupl/internal/tick"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	HeaderHeight       = 3
	FooterHeightWide   = 3 // Wide: 1 row with padding (top + text + bottom)
	FooterHeightNarrow = 6 // Narrow: 2 rows × 3 lines each
	FooterBreakpoint   = 110
	MessagePanelHeight = 8
	ModalWidth         = 50
)

// PauseIcon uses platform-specific character (Windows renders ⏸ as emoji)
var PauseIcon = func() string {
	if runtime.GOOS == "windows" {
		return "❚❚"
	}
	return "⏸"
}()

// UI draws a Session on a tcell screen and feeds it key presses and ticks.
// All Session access happens on the goroutine running Run.
type UI struct {
	session *session.Session
	config  *config.Config

	root        *tview.Pages
	mainLayout  *tview.Flex
	leftPages   *tview.Pages
	trackList   *tview.Table
	editList    *tview.Table
	playerPanel *tview.TextView
	messageLog  *tview.TextView
	footer      *tview.Box

	finderModal  tview.Primitive
	promptModal  tview.Primitive
	confirmModal tview.Primitive
	finderBox    *tview.Box
	promptBox    *tview.Box

	// Screen position for the prompt cursor, set while drawing.
	cursorX, cursorY int
	showCursor       bool

	tickPeriod time.Duration

	lastFooterWidth int
	shownRow        int
	shownActive     int
	shownPaused     bool

	colors struct {
		background      tcell.Color
		foreground      tcell.Color
		borders         tcell.Color
		highlight       tcell.Color
		modalBackground tcell.Color
		helpBackground  tcell.Color
		helpForeground  tcell.Color
		helpHotkey      tcell.Color
	}
}

func NewUI(s *session.Session, cfg *config.Config) *UI {
	ui := &UI{
		session:     s,
		config:      cfg,
		tickPeriod:  tick.DefaultPeriod,
		shownRow:    -1,
		shownActive: -1,
	}

	ui.colors.background = config.GetColor(cfg.Theme.Background)
	ui.colors.foreground = config.GetColor(cfg.Theme.Foreground)
	ui.colors.borders = config.GetColor(cfg.Theme.Borders)
	ui.colors.highlight = config.GetColor(cfg.Theme.Highlight)
	ui.colors.modalBackground = config.GetColor(cfg.Theme.ModalBackground)
	ui.colors.helpBackground = config.GetColor(cfg.Theme.HelpBackground)
	ui.colors.helpForeground = config.GetColor(cfg.Theme.HelpForeground)
	ui.colors.helpHotkey = config.GetColor(cfg.Theme.HelpHotkey)

	ui.setupUI()
	return ui
}

// Run owns screen until the session quits, ctx is done, or a session
// operation fails. The screen must already be initialized; Run does not
// call Fini.
func (ui *UI) Run(ctx context.Context, screen tcell.Screen) error {
	screen.SetStyle(tcell.StyleDefault.Background(ui.colors.background).Foreground(ui.colors.foreground))

	stop := make(chan struct{})
	defer close(stop)
	events := make(chan tcell.Event)
	go pollEvents(screen, events, stop)

	scheduler := tick.New(ui.tickPeriod, time.Now())
	timer := time.NewTimer(scheduler.Timeout(time.Now()))
	defer timer.Stop()

	for !ui.session.Quit() {
		ui.draw(screen)

		resetTimer(timer, scheduler.Timeout(time.Now()))
		select {
		case <-ctx.Done():
			log.Debug().Msg("Context done, leaving UI loop")
			return nil
		case ev := <-events:
			if err := ui.handleEvent(screen, ev); err != nil {
				return err
			}
		case <-timer.C:
		}

		if scheduler.Due(time.Now()) {
			if err := ui.session.Tick(); err != nil {
				return fmt.Errorf("tick: %w", err)
			}
		}
	}

	log.Debug().Msg("Quit requested")
	return nil
}

func resetTimer(timer *time.Timer, d time.Duration) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(d)
}

// pollEvents forwards terminal events until the screen is finalized or
// stop is closed. It never touches the session.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, stop <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

func (ui *UI) handleEvent(screen tcell.Screen, ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			ui.session.RequestQuit()
			return nil
		}
		key, ok := keyFromEvent(ev)
		if !ok {
			return nil
		}
		if err := ui.session.HandleKey(key); err != nil {
			return fmt.Errorf("key %v: %w", key, err)
		}
	}
	return nil
}

// keyFromEvent maps a terminal key to a session key. Keys the session has no
// use for report false.
func keyFromEvent(ev *tcell.EventKey) (session.Key, bool) {
	code, ok := keyCodes[ev.Key()]
	if !ok {
		return session.Key{}, false
	}
	if code == session.KeyRune {
		return session.Rune(ev.Rune()), true
	}
	return session.Key{Code: code}, true
}

var keyCodes = map[tcell.Key]session.KeyCode{
	tcell.KeyRune:       session.KeyRune,
	tcell.KeyEnter:      session.KeyEnter,
	tcell.KeyEscape:     session.KeyEsc,
	tcell.KeyBackspace:  session.KeyBackspace,
	tcell.KeyBackspace2: session.KeyBackspace,
	tcell.KeyDelete:     session.KeyDelete,
	tcell.KeyTab:        session.KeyTab,
	tcell.KeyBacktab:    session.KeyBacktab,
	tcell.KeyUp:         session.KeyUp,
	tcell.KeyDown:       session.KeyDown,
	tcell.KeyLeft:       session.KeyLeft,
	tcell.KeyRight:      session.KeyRight,
}

func (ui *UI) draw(screen tcell.Screen) {
	ui.sync()

	width, height := screen.Size()
	screen.Clear()
	ui.showCursor = false
	ui.root.SetRect(0, 0, width, height)
	ui.root.Draw(screen)

	if ui.showCursor {
		screen.ShowCursor(ui.cursorX, ui.cursorY)
	} else {
		screen.HideCursor()
	}
	screen.Show()
}
