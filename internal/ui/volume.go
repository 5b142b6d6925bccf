package ui

import (
	"fmt"
	"strings"

	"github.com/glebovdev/mupl/internal/config"
	"github.com/glebovdev/mupl/internal/track"
)

const (
	progressBarWidth = 30
	volumeBarWidth   = 20
)

// volumeBar draws volume as a horizontal meter of width cells.
func volumeBar(volume, width int) string {
	filled := (config.ClampVolume(volume) * width) / config.MaxVolume
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// progressRatio is the played fraction of a track, clamped to [0, 1].
// Zero-length tracks report 0.
func progressRatio(progress, duration uint32) float64 {
	if duration == 0 {
		return 0
	}
	return min(float64(progress)/float64(duration), 1)
}

func progressBar(progress, duration uint32, width int) string {
	filled := int(progressRatio(progress, duration) * float64(width))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

// progressLabel renders "elapsed / total".
func progressLabel(progress, duration uint32) string {
	return fmt.Sprintf("%s / %s", track.FormatTime(progress, track.LayoutFull), track.FormatTime(duration, track.LayoutFull))
}
