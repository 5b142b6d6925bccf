package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/glebovdev/mupl/internal/session"
	"github.com/rivo/tview"
)

type hint struct {
	key    string
	action string
}

var modeHints = map[session.Mode][]hint{
	session.ModeMain: {
		{"j/k", "move"},
		{"Enter", "play"},
		{"Space", "pause"},
		{"+/-", "vol"},
		{"a", "add"},
		{"n", "new"},
		{"p", "playlist"},
		{"m", "modify"},
		{"q", "quit"},
	},
	session.ModeTextPrompt: {
		{"Enter", "confirm"},
		{"Esc", "cancel"},
	},
	session.ModeConfirmation: {
		{"h/l", "choose"},
		{"Enter", "confirm"},
		{"Esc", "no"},
	},
	session.ModeFuzzyFind: {
		{"Tab", "next"},
		{"S-Tab", "prev"},
		{"Enter", "open"},
		{"Esc", "cancel"},
	},
	session.ModeAddToPlaylist: {
		{"Tab", "next"},
		{"S-Tab", "prev"},
		{"Enter", "add"},
		{"Esc", "cancel"},
	},
	session.ModePlayPlaylist: {
		{"Tab", "next"},
		{"S-Tab", "prev"},
		{"Enter", "play"},
		{"Esc", "cancel"},
	},
	session.ModeModifyPlaylist: {
		{"j/k", "move"},
		{"d", "remove"},
		{"q", "done"},
	},
}

func helpText(mode session.Mode, keyColor string) string {
	hints := modeHints[mode]
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = fmt.Sprintf("[%s]%s[-] %s", keyColor, h.key, h.action)
	}
	return " " + strings.Join(parts, "  ") + " "
}

func joinParts(parts []string) string {
	return strings.Join(parts, " │ ")
}

func (ui *UI) statusText() string {
	current := ui.session.Current()

	var parts []string
	switch {
	case current.IsZero():
		parts = append(parts, "○ IDLE")
	case ui.session.Paused():
		parts = append(parts, PauseIcon+" PAUSED")
	default:
		parts = append(parts, fmt.Sprintf("[%s]●[-] PLAYING", ui.colors.highlight.String()))
	}

	if !current.IsZero() {
		parts = append(parts, progressLabel(ui.session.Progress(), current.Duration))
	}
	parts = append(parts, fmt.Sprintf("VOL %d%%", ui.session.Volume()))
	parts = append(parts, fmt.Sprintf("%d tracks", len(ui.session.Catalog())))

	return joinParts(parts)
}

func (ui *UI) handleFooterResize(width int) {
	isWide := width >= FooterBreakpoint
	wasWide := ui.lastFooterWidth >= FooterBreakpoint

	if ui.lastFooterWidth > 0 && isWide != wasWide && ui.mainLayout != nil {
		newHeight := FooterHeightWide
		if !isWide {
			newHeight = FooterHeightNarrow
		}
		ui.mainLayout.ResizeItem(ui.footer, newHeight, 0)
	}
	ui.lastFooterWidth = width
}

func (ui *UI) fill(screen tcell.Screen, x, y, width, height int, bg tcell.Color) {
	style := tcell.StyleDefault.Background(bg)
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (ui *UI) drawWideFooter(screen tcell.Screen, x, y, width, height int, help, status string) {
	helpWidth := width / 2
	statusWidth := width - helpWidth

	ui.fill(screen, x, y, helpWidth, height, ui.colors.helpBackground)
	ui.fill(screen, x+helpWidth, y, statusWidth, height, ui.colors.background)

	centerY := y + height/2
	tview.Print(screen, help, x, centerY, helpWidth, tview.AlignCenter, ui.colors.helpForeground)
	tview.Print(screen, status, x+helpWidth, centerY, statusWidth-2, tview.AlignRight, ui.colors.foreground)
}

func (ui *UI) drawNarrowFooter(screen tcell.Screen, x, y, width, height int, help, status string) {
	helpHeight := max(height/2, 1)
	statusHeight := height - helpHeight
	helpBoxEnd := y + helpHeight

	ui.fill(screen, x, y, width, helpHeight, ui.colors.helpBackground)
	ui.fill(screen, x, helpBoxEnd, width, statusHeight, ui.colors.background)

	tview.Print(screen, help, x, y+helpHeight/2, width, tview.AlignCenter, ui.colors.helpForeground)
	if statusHeight > 0 {
		tview.Print(screen, status, x, helpBoxEnd+statusHeight/2, width-2, tview.AlignRight, ui.colors.foreground)
	}
}

func (ui *UI) createFooter() *tview.Box {
	box := tview.NewBox().SetBackgroundColor(ui.colors.background)

	box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		ui.handleFooterResize(width)

		help := helpText(ui.session.Mode(), ui.colors.helpHotkey.String())
		status := " " + ui.statusText() + " "

		if width >= FooterBreakpoint {
			ui.drawWideFooter(screen, x, y, width, min(height, FooterHeightWide), help, status)
		} else {
			ui.drawNarrowFooter(screen, x, y, width, height, help, status)
		}

		return x, y, width, height
	})

	return box
}
