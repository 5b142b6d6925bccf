package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/glebovdev/mupl/internal/track"
	"github.com/rivo/tview"
)

const PlayIcon = "➤"

func (ui *UI) createTrackListTable() *tview.Table {
	table := tview.NewTable().
		SetBorders(false).
		SetSeparator(' ').
		SetSelectable(false, false).
		SetFixed(1, 0)

	table.SetBorder(true).
		SetTitle(fmt.Sprintf("Tracks (%d)", len(ui.session.Catalog()))).
		SetBorderColor(ui.colors.borders).
		SetTitleColor(ui.colors.foreground).
		SetBackgroundColor(ui.colors.background).
		SetBorderPadding(1, 0, 1, 1)

	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(ui.colors.background).
		Background(ui.colors.highlight))

	ui.setHeaderRow(table, "Track", "Length")

	for i, t := range ui.session.Catalog() {
		ui.setTrackRow(table, i+1, t)
	}

	return table
}

func (ui *UI) setHeaderRow(table *tview.Table, name, length string) {
	table.SetCell(0, 0, tview.NewTableCell(" ").
		SetTextColor(ui.colors.helpForeground).
		SetMaxWidth(2).
		SetSelectable(false))

	table.SetCell(0, 1, tview.NewTableCell(name).
		SetTextColor(ui.colors.helpForeground).
		SetExpansion(1).
		SetSelectable(false))

	table.SetCell(0, 2, tview.NewTableCell(length).
		SetTextColor(ui.colors.helpForeground).
		SetAlign(tview.AlignRight).
		SetSelectable(false))
}

func (ui *UI) setTrackRow(table *tview.Table, row int, t track.Track) {
	table.SetCell(row, 0, tview.NewTableCell(" ").
		SetTextColor(ui.colors.highlight).
		SetMaxWidth(2))

	table.SetCell(row, 1, tview.NewTableCell(tview.Escape(t.DisplayName())).
		SetTextColor(ui.colors.foreground).
		SetMaxWidth(70).
		SetExpansion(1))

	table.SetCell(row, 2, tview.NewTableCell(track.FormatTime(t.Duration, track.LayoutCompact)).
		SetTextColor(ui.colors.foreground).
		SetAlign(tview.AlignRight))
}

// syncTrackList moves the highlight and the play icon to match the session.
// Rows are only touched when something changed.
func (ui *UI) syncTrackList() {
	row, ok := ui.session.Selected()
	if !ok {
		row = -1
	}
	if row != ui.shownRow {
		if row < 0 {
			ui.trackList.SetSelectable(false, false)
		} else {
			ui.trackList.SetSelectable(true, false)
			ui.trackList.Select(row+1, 0)
		}
		ui.shownRow = row
	}

	active, paused := ui.session.Active(), ui.session.Paused()
	if active == ui.shownActive && paused == ui.shownPaused {
		return
	}
	if ui.shownActive >= 0 {
		ui.trackList.GetCell(ui.shownActive+1, 0).SetText(" ")
	}
	if active >= 0 {
		ui.trackList.GetCell(active+1, 0).SetText(playingIcon(paused))
	}
	ui.shownActive, ui.shownPaused = active, paused
}

func playingIcon(paused bool) string {
	if paused {
		return PauseIcon
	}
	return PlayIcon
}

func (ui *UI) createEditListTable() *tview.Table {
	table := tview.NewTable().
		SetBorders(false).
		SetSeparator(' ').
		SetSelectable(true, false)

	table.SetBorder(true).
		SetBorderColor(ui.colors.highlight).
		SetTitleColor(ui.colors.highlight).
		SetBackgroundColor(ui.colors.background).
		SetBorderPadding(1, 0, 1, 1)

	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(ui.colors.background).
		Background(ui.colors.highlight))

	return table
}

// syncEditList rebuilds the playlist being edited. Playlists are short, so
// the rows are recreated on every frame.
func (ui *UI) syncEditList() {
	p := ui.session.EditingPlaylist()
	if p == nil {
		return
	}

	ui.editList.Clear()
	ui.editList.SetTitle(editTitle(p.Name, p.Len(), p.Changed()))

	if p.Len() == 0 {
		ui.editList.SetSelectable(false, false)
		ui.editList.SetCell(0, 0, tview.NewTableCell("(empty)").
			SetTextColor(ui.colors.borders).
			SetSelectable(false))
		return
	}

	for i, name := range p.Tracks {
		ui.editList.SetCell(i, 0, tview.NewTableCell(fmt.Sprintf("%3d.", i+1)).
			SetTextColor(ui.colors.borders).
			SetAlign(tview.AlignRight))
		ui.editList.SetCell(i, 1, tview.NewTableCell(tview.Escape(name)).
			SetTextColor(ui.colors.foreground).
			SetExpansion(1))
	}
	ui.editList.SetSelectable(true, false)
	ui.editList.Select(p.Cursor, 0)
}

func editTitle(name string, count int, changed bool) string {
	title := fmt.Sprintf(" Editing %s (%d) ", name, count)
	if changed {
		title = fmt.Sprintf(" Editing %s (%d) * ", name, count)
	}
	return title
}
