package session

import "github.com/glebovdev/mupl/internal/track"

// Action is the operation a modal runs when it resolves. The set of
// implementations is closed.
type Action interface {
	action()
}

// AddTrackToPlaylist appends Track to the playlist picked in the finder.
type AddTrackToPlaylist struct {
	Track track.Track
}

// PlayPlaylist starts following the playlist picked in the finder.
type PlayPlaylist struct{}

// EditPlaylist opens the picked playlist in ModifyPlaylist.
type EditPlaylist struct{}

// CreatePlaylist creates an empty playlist named by the prompt input.
type CreatePlaylist struct{}

// OverwritePlaylist replaces Name with an empty playlist.
type OverwritePlaylist struct {
	Name string
}

// SavePlaylistEdit writes the playlist being edited back to the store.
type SavePlaylistEdit struct{}

// DiscardPlaylistEdit drops the playlist being edited.
type DiscardPlaylistEdit struct{}

// ReturnToMain does nothing besides resolving the modal.
type ReturnToMain struct{}

func (AddTrackToPlaylist) action()  {}
func (PlayPlaylist) action()        {}
func (EditPlaylist) action()        {}
func (CreatePlaylist) action()      {}
func (OverwritePlaylist) action()   {}
func (SavePlaylistEdit) action()    {}
func (DiscardPlaylistEdit) action() {}
func (ReturnToMain) action()        {}
