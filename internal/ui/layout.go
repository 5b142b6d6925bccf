package ui

import (
	"fmt"
	"strings"

	"github.com/glebovdev/mupl/internal/config"
	"github.com/glebovdev/mupl/internal/session"
	"github.com/rivo/tview"
)

const (
	pageMain    = "main"
	pageFinder  = "finder"
	pagePrompt  = "prompt"
	pageConfirm = "confirm"

	pageTracks = "tracks"
	pageEdit   = "edit"
)

func (ui *UI) setupUI() {
	ui.trackList = ui.createTrackListTable()
	ui.editList = ui.createEditListTable()

	ui.leftPages = tview.NewPages().
		AddPage(pageTracks, ui.trackList, true, true).
		AddPage(pageEdit, ui.editList, true, false)

	ui.playerPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	ui.playerPanel.SetBorder(true).
		SetTitle(" Now Playing ").
		SetBorderColor(ui.colors.borders).
		SetTitleColor(ui.colors.foreground).
		SetBackgroundColor(ui.colors.background).
		SetBorderPadding(1, 0, 2, 2)
	ui.playerPanel.SetTextColor(ui.colors.foreground)

	ui.messageLog = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)
	ui.messageLog.SetBorder(true).
		SetTitle(" Messages ").
		SetBorderColor(ui.colors.borders).
		SetTitleColor(ui.colors.foreground).
		SetBackgroundColor(ui.colors.background).
		SetBorderPadding(0, 0, 1, 1)
	ui.messageLog.SetTextColor(ui.colors.foreground)

	rightColumn := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.playerPanel, 0, 1, false).
		AddItem(ui.messageLog, MessagePanelHeight, 0, false)

	content := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(ui.leftPages, 0, 3, false).
		AddItem(rightColumn, 0, 2, false)

	ui.footer = ui.createFooter()

	mainLayout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.createHeader(), HeaderHeight, 0, false).
		AddItem(content, 0, 1, false).
		AddItem(ui.footer, FooterHeightWide, 0, false)
	ui.mainLayout = mainLayout

	ui.finderModal = ui.createFinderModal()
	ui.promptModal = ui.createPromptModal()
	ui.confirmModal = ui.createConfirmModal()

	ui.root = tview.NewPages().
		AddPage(pageMain, mainLayout, true, true).
		AddPage(pageFinder, ui.finderModal, true, false).
		AddPage(pagePrompt, ui.promptModal, true, false).
		AddPage(pageConfirm, ui.confirmModal, true, false)
}

func (ui *UI) createHeader() tview.Primitive {
	titleView := tview.NewTextView()
	titleView.SetText(" " + config.AppName)
	titleView.SetTextAlign(tview.AlignLeft)
	titleView.SetTextColor(ui.colors.foreground)
	titleView.SetBackgroundColor(ui.colors.helpBackground)

	versionView := tview.NewTextView()
	versionView.SetText("v" + config.AppVersion + " ")
	versionView.SetTextAlign(tview.AlignRight)
	versionView.SetTextColor(ui.colors.foreground)
	versionView.SetBackgroundColor(ui.colors.helpBackground)

	textFlex := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(titleView, 0, 1, false).
		AddItem(versionView, 10, 0, false)

	spacer := func() *tview.Box {
		return tview.NewBox().SetBackgroundColor(ui.colors.helpBackground)
	}

	textWithPadding := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(spacer(), 1, 0, false).
		AddItem(textFlex, 0, 1, false).
		AddItem(spacer(), 1, 0, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(spacer(), 1, 0, false).
		AddItem(textWithPadding, 1, 0, false).
		AddItem(spacer(), 1, 0, false)
}

// sync copies session state into the primitives before a draw.
func (ui *UI) sync() {
	mode := ui.session.Mode()

	ui.syncTrackList()
	if mode == session.ModeModifyPlaylist {
		ui.syncEditList()
		ui.leftPages.SwitchToPage(pageEdit)
	} else {
		ui.leftPages.SwitchToPage(pageTracks)
	}

	ui.playerPanel.SetText(ui.playerText())
	ui.messageLog.SetText(messageText(ui.session.Messages()))
	ui.messageLog.ScrollToEnd()

	if f := ui.session.Finder(); f != nil {
		ui.finderBox.SetTitle(" " + f.Title + " ")
	}
	if p := ui.session.Prompt(); p != nil {
		ui.promptBox.SetTitle(" " + p.Title + " ")
	}

	ui.showModal(pageFinder, mode.IsFinder())
	ui.showModal(pagePrompt, mode == session.ModeTextPrompt)
	ui.showModal(pageConfirm, mode == session.ModeConfirmation)
}

func (ui *UI) showModal(name string, visible bool) {
	if visible {
		ui.root.ShowPage(name)
	} else {
		ui.root.HidePage(name)
	}
}

func (ui *UI) playerText() string {
	var b strings.Builder
	hl := ui.colors.highlight.String()
	current := ui.session.Current()

	if current.IsZero() {
		b.WriteString("[::d]Nothing playing[::-]\n\n")
		b.WriteString("Select a track and press Enter,\nor press p to play a playlist.\n\n")
	} else {
		fmt.Fprintf(&b, "[%s::b]%s[-::-]\n", hl, tview.Escape(current.DisplayName()))
		fmt.Fprintf(&b, "[::d]%s[::-]\n\n", tview.Escape(current.Name))

		state := PlayIcon + " Playing"
		if ui.session.Paused() {
			state = PauseIcon + " Paused"
		}
		fmt.Fprintf(&b, "%s\n", state)

		progress := ui.session.Progress()
		fmt.Fprintf(&b, "[%s]%s[-]\n", hl, progressBar(progress, current.Duration, progressBarWidth))
		fmt.Fprintf(&b, "%s\n\n", progressLabel(progress, current.Duration))
	}

	fmt.Fprintf(&b, "Volume  [%s]%s[-] %3d%%\n", hl, volumeBar(ui.session.Volume(), volumeBarWidth), ui.session.Volume())

	if p := ui.session.PlayingPlaylist(); p != nil {
		fmt.Fprintf(&b, "\nPlaylist [%s]%s[-]  %d/%d\n", hl, tview.Escape(p.Name), min(p.Cursor+1, p.Len()), p.Len())
	}

	return b.String()
}

func messageText(messages []string) string {
	escaped := make([]string, len(messages))
	for i, m := range messages {
		escaped[i] = tview.Escape(m)
	}
	return strings.Join(escaped, "\n")
}
