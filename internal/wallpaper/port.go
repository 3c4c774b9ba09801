// Package wallpaper coordinates apply cycles: it enumerates monitors,
// drives the render pipeline once per monitor, serializes concurrent
// apply attempts, debounces trigger bursts, and issues the OS wallpaper
// installation calls through a platform port.
package wallpaper

import (
	"fmt"

	"github.com/versepaper/versepaper/internal/render"
)

// FitMode selects how the OS scales the installed image.
type FitMode int

const (
	FitFill FitMode = iota
	FitFit
	FitStretch
	FitCenter
	FitTile
)

// String returns the settings-file name of the mode.
func (m FitMode) String() string {
	switch m {
	case FitFill:
		return "fill"
	case FitFit:
		return "fit"
	case FitStretch:
		return "stretch"
	case FitCenter:
		return "center"
	case FitTile:
		return "tile"
	default:
		return fmt.Sprintf("FitMode(%d)", int(m))
	}
}

// ParseFitMode parses a settings-file fit mode name.
func ParseFitMode(s string) (FitMode, error) {
	switch s {
	case "fill", "":
		return FitFill, nil
	case "fit":
		return FitFit, nil
	case "stretch":
		return FitStretch, nil
	case "center":
		return FitCenter, nil
	case "tile":
		return FitTile, nil
	default:
		return FitFill, fmt.Errorf("wallpaper: unknown fit mode %q", s)
	}
}

// MonitorWallpaperPort is the platform capability set the coordinator
// needs: enumerate monitors with their geometry, install an image, and
// set the fill mode. Concrete adapters live outside the core render
// logic.
type MonitorWallpaperPort interface {
	// Monitors returns the current monitor list, ordered. It is queried
	// fresh on every apply.
	Monitors() ([]render.MonitorTarget, error)

	// SetWallpaper installs the image at path on the given monitor.
	// An empty monitorID installs it on all monitors.
	SetWallpaper(monitorID, path string) error

	// SetFillMode sets how installed images are scaled.
	SetFillMode(mode FitMode) error
}
