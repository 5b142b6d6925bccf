package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

const (
	finderModalHeight  = 16
	promptModalHeight  = 5
	confirmModalHeight = 7
)

// centered places content in the middle of the screen like the other
// modals; the nil items leave the main layout visible around it.
func centered(content tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(content, height, 0, true).
			AddItem(nil, 0, 1, false),
			width, 0, true).
		AddItem(nil, 0, 1, false)
}

func (ui *UI) modalBox() *tview.Box {
	box := tview.NewBox()
	box.SetBorder(true).
		SetBorderColor(ui.colors.highlight).
		SetBackgroundColor(ui.colors.modalBackground).
		SetTitleColor(ui.colors.highlight).
		SetTitleAlign(tview.AlignCenter)
	return box
}

// inner returns the text area inside a bordered modal box.
func inner(x, y, width, height int) (int, int, int, int) {
	return x + 2, y + 1, max(width-4, 0), max(height-2, 0)
}

func (ui *UI) createFinderModal() tview.Primitive {
	box := ui.modalBox()
	ui.finderBox = box

	box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		f := ui.session.Finder()
		if f == nil {
			return x, y, width, height
		}
		ix, iy, iw, ih := inner(x, y, width, height)

		hl := ui.colors.highlight.String()
		line, cursor := promptLine([]rune(f.Matcher.Query()), iw-2)
		tview.Print(screen, fmt.Sprintf("[%s]>[-] %s", hl, tview.Escape(line)), ix, iy, iw, tview.AlignLeft, ui.colors.foreground)
		ui.placeCursor(ix+2+cursor, iy)

		ranked := f.Matcher.Ranked()
		rows := ih - 2
		if len(ranked) == 0 {
			tview.Print(screen, "[::d]no matches[::-]", ix, iy+2, iw, tview.AlignLeft, ui.colors.foreground)
			return x, y, width, height
		}

		first, last := visibleWindow(len(ranked), f.Matcher.Cursor(), rows)
		for i := first; i < last; i++ {
			row := iy + 2 + i - first
			text := tview.Escape(runewidth.Truncate(ranked[i], iw-2, "…"))
			if i == f.Matcher.Cursor() {
				ui.fill(screen, ix, row, iw, 1, ui.colors.highlight)
				tview.Print(screen, "  "+text, ix, row, iw, tview.AlignLeft, ui.colors.modalBackground)
				continue
			}
			tview.Print(screen, "  "+text, ix, row, iw, tview.AlignLeft, ui.colors.foreground)
		}
		return x, y, width, height
	})

	return centered(box, ModalWidth, finderModalHeight)
}

// visibleWindow returns the slice [first, last) of n rows that fits in
// height rows and keeps cursor in view.
func visibleWindow(n, cursor, height int) (int, int) {
	if height <= 0 {
		return 0, 0
	}
	if n <= height {
		return 0, n
	}
	first := max(cursor-height+1, 0)
	return first, first + height
}

func (ui *UI) createPromptModal() tview.Primitive {
	box := ui.modalBox()
	ui.promptBox = box

	box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		p := ui.session.Prompt()
		if p == nil {
			return x, y, width, height
		}
		ix, iy, iw, _ := inner(x, y, width, height)

		line, cursor := promptLine(p.Input, iw)
		tview.Print(screen, tview.Escape(line), ix, iy+1, iw, tview.AlignLeft, ui.colors.foreground)
		ui.placeCursor(ix+cursor, iy+1)
		return x, y, width, height
	})

	return centered(box, ModalWidth, promptModalHeight)
}

// promptLine fits input into width cells, dropping leading runes so the end
// of the input stays visible. cursor is the cell offset just past the text.
func promptLine(input []rune, width int) (string, int) {
	if width <= 0 {
		return "", 0
	}
	start := 0
	for start < len(input) && runewidth.StringWidth(string(input[start:])) >= width {
		start++
	}
	line := string(input[start:])
	return line, runewidth.StringWidth(line)
}

func (ui *UI) placeCursor(x, y int) {
	ui.cursorX, ui.cursorY = x, y
	ui.showCursor = true
}

func (ui *UI) createConfirmModal() tview.Primitive {
	box := ui.modalBox()
	box.SetTitle(" Confirm ")

	box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		c := ui.session.Confirmation()
		if c == nil {
			return x, y, width, height
		}
		ix, iy, iw, _ := inner(x, y, width, height)

		tview.Print(screen, tview.Escape(c.Title), ix, iy+1, iw, tview.AlignCenter, ui.colors.foreground)
		tview.Print(screen, confirmButtons(c.Positive, ui.colors.highlight.String()), ix, iy+3, iw, tview.AlignCenter, ui.colors.foreground)
		return x, y, width, height
	})

	return centered(box, ModalWidth, confirmModalHeight)
}

// confirmButtons renders both choices with the chosen one highlighted.
func confirmButtons(positive bool, color string) string {
	yes, no := " Yes ", " No "
	if positive {
		yes = fmt.Sprintf("[black:%s] Yes [-:-]", color)
	} else {
		no = fmt.Sprintf("[black:%s] No [-:-]", color)
	}
	return yes + "    " + no
}
