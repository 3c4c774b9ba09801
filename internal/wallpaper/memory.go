package wallpaper

import (
	"sync"

	"github.com/versepaper/versepaper/internal/render"
)

// MemoryPort is an in-process MonitorWallpaperPort. It backs dry runs
// when no platform adapter is configured, and the coordinator tests.
type MemoryPort struct {
	mu       sync.Mutex
	monitors []render.MonitorTarget
	applied  map[string]string
	fillMode FitMode

	// InstallErr, when non-nil, is consulted per install so tests can
	// fail specific monitors.
	InstallErr func(monitorID string) error
}

// NewMemoryPort creates a port reporting the given monitors.
func NewMemoryPort(monitors ...render.MonitorTarget) *MemoryPort {
	return &MemoryPort{
		monitors: monitors,
		applied:  make(map[string]string),
	}
}

// SetMonitors replaces the reported monitor list.
func (p *MemoryPort) SetMonitors(monitors ...render.MonitorTarget) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.monitors = monitors
}

// Monitors implements MonitorWallpaperPort.
func (p *MemoryPort) Monitors() ([]render.MonitorTarget, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]render.MonitorTarget, len(p.monitors))
	copy(out, p.monitors)
	return out, nil
}

// SetWallpaper implements MonitorWallpaperPort. The empty monitorID is
// the broadcast form: the path is recorded against every enumerated
// monitor, or under "" when none are known.
func (p *MemoryPort) SetWallpaper(monitorID, path string) error {
	p.mu.Lock()
	failer := p.InstallErr
	p.mu.Unlock()

	if failer != nil {
		if err := failer(monitorID); err != nil {
			return err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if monitorID == "" {
		if len(p.monitors) == 0 {
			p.applied[""] = path
			return nil
		}
		for _, m := range p.monitors {
			p.applied[m.ID] = path
		}
		return nil
	}
	p.applied[monitorID] = path
	return nil
}

// SetFillMode implements MonitorWallpaperPort.
func (p *MemoryPort) SetFillMode(mode FitMode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fillMode = mode
	return nil
}

// Applied returns a copy of the installed monitorID → path map.
func (p *MemoryPort) Applied() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]string, len(p.applied))
	for k, v := range p.applied {
		out[k] = v
	}
	return out
}

// FillMode returns the last fill mode set on the port.
func (p *MemoryPort) FillMode() FitMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fillMode
}
