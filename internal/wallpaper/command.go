package wallpaper

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/versepaper/versepaper/internal/paint"
	"github.com/versepaper/versepaper/internal/render"
)

// CommandPort installs wallpapers by running an external setter command,
// for example "feh --bg-fill %s" or "swaybg -i %s". The template's %s is
// replaced with the image path; a template with no %s gets the path
// appended as the final argument.
//
// External setters generally apply one image desktop-wide, so the port
// reports a single virtual monitor and ignores monitor IDs.
type CommandPort struct {
	template string
	timeout  time.Duration

	// Width and Height describe the virtual monitor. Zero values fall
	// back to 1920x1080.
	Width, Height int
}

// NewCommandPort creates a port around the given command template.
func NewCommandPort(template string) (*CommandPort, error) {
	if strings.TrimSpace(template) == "" {
		return nil, fmt.Errorf("wallpaper: empty command template")
	}
	return &CommandPort{template: template, timeout: 15 * time.Second}, nil
}

// Monitors implements MonitorWallpaperPort.
func (p *CommandPort) Monitors() ([]render.MonitorTarget, error) {
	w, h := p.Width, p.Height
	if w <= 0 || h <= 0 {
		w, h = 1920, 1080
	}
	return []render.MonitorTarget{{
		ID:          "desktop",
		DeviceRect:  render.Rect{Right: w, Bottom: h},
		PixelWidth:  w,
		PixelHeight: h,
		ScaleX:      1,
		ScaleY:      1,
	}}, nil
}

// SetWallpaper implements MonitorWallpaperPort.
func (p *CommandPort) SetWallpaper(monitorID, path string) error {
	args := p.buildArgs(path)
	if len(args) == 0 {
		return fmt.Errorf("wallpaper: command template produced no arguments")
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		paint.Logger().Error("wallpaper command failed",
			"command", args[0],
			"output", strings.TrimSpace(string(out)),
			"error", err)
		return fmt.Errorf("wallpaper: running %q: %w", args[0], err)
	}
	return nil
}

// SetFillMode implements MonitorWallpaperPort. Fill behavior is baked
// into the command template, so this is a no-op.
func (p *CommandPort) SetFillMode(FitMode) error { return nil }

func (p *CommandPort) buildArgs(path string) []string {
	fields := strings.Fields(p.template)
	substituted := false
	for i, f := range fields {
		if strings.Contains(f, "%s") {
			fields[i] = strings.ReplaceAll(f, "%s", path)
			substituted = true
		}
	}
	if !substituted {
		fields = append(fields, path)
	}
	return fields
}
