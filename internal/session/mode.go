package session

import "fmt"

// Mode is the active controller state.
type Mode int

const (
	ModeMain Mode = iota
	ModeTextPrompt
	ModeConfirmation
	ModeFuzzyFind
	ModeAddToPlaylist
	ModePlayPlaylist
	ModeModifyPlaylist
)

func (m Mode) String() string {
	switch m {
	case ModeMain:
		return "MAIN"
	case ModeTextPrompt:
		return "TEXT_PROMPT"
	case ModeConfirmation:
		return "CONFIRMATION"
	case ModeFuzzyFind:
		return "FUZZY_FIND"
	case ModeAddToPlaylist:
		return "ADD_TO_PLAYLIST"
	case ModePlayPlaylist:
		return "PLAY_PLAYLIST"
	case ModeModifyPlaylist:
		return "MODIFY_PLAYLIST"
	default:
		return "UNKNOWN"
	}
}

// IsFinder reports whether the mode is driven by a fuzzy finder.
func (m Mode) IsFinder() bool {
	return m == ModeFuzzyFind || m == ModeAddToPlaylist || m == ModePlayPlaylist
}

// KeyCode identifies a key independent of the terminal library.
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyRune
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyTab
	KeyBacktab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Key is a single key press. Rune is set only for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// Rune returns the Key for a printable character.
func Rune(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

func (k Key) is(r rune) bool {
	return k.Code == KeyRune && k.Rune == r
}

func (k Key) String() string {
	if k.Code == KeyRune {
		return fmt.Sprintf("%q", k.Rune)
	}
	return fmt.Sprintf("key(%d)", k.Code)
}
