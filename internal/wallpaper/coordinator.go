package wallpaper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/versepaper/versepaper/internal/effect"
	"github.com/versepaper/versepaper/internal/paint"
	"github.com/versepaper/versepaper/internal/render"
)

const (
	// DefaultDebounce coalesces bursts of change requests into one apply.
	DefaultDebounce = 250 * time.Millisecond
	// DefaultTempMaxAge is how old an orphaned temp file must be before
	// the pre-apply sweep removes it.
	DefaultTempMaxAge = 5 * time.Minute
)

// Job is one requested apply: the base render inputs plus install
// options. Inputs.Offset is the desktop-wide variation offset; the
// coordinator perturbs it per monitor before rendering.
type Job struct {
	Inputs  render.Inputs
	FitMode FitMode

	// Silent suppresses the completion notification, for periodic
	// refreshes and other background triggers.
	Silent bool
}

// Options configures a Coordinator. Zero values take the defaults.
type Options struct {
	Debounce   time.Duration
	TempMaxAge time.Duration
	OutputDir  string

	// Notifier receives user-facing status messages. Nil discards them.
	Notifier func(msg string)
}

// Coordinator owns the request-to-installed pipeline: it debounces
// bursts of requests, serializes applies so two batches never interleave
// their file writes, renders one image per monitor, and installs the
// batch only after every image has been written.
type Coordinator struct {
	port     MonitorWallpaperPort
	pipeline *render.Pipeline
	opts     Options

	sem *semaphore.Weighted

	// writeTemp is render.WriteTemp, swappable in tests to fail
	// selected paths.
	writeTemp func(pm *paint.Pixmap, tempPath string) error

	mu      sync.Mutex
	timer   *time.Timer
	pending Job
}

// NewCoordinator wires a coordinator to a monitor port and a render
// pipeline.
func NewCoordinator(port MonitorWallpaperPort, pipeline *render.Pipeline, opts Options) *Coordinator {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.TempMaxAge <= 0 {
		opts.TempMaxAge = DefaultTempMaxAge
	}
	if opts.OutputDir == "" {
		opts.OutputDir = os.TempDir()
	}
	return &Coordinator{
		port:      port,
		pipeline:  pipeline,
		opts:      opts,
		sem:       semaphore.NewWeighted(1),
		writeTemp: render.WriteTemp,
	}
}

// Request schedules an apply after the debounce window. A request
// arriving while the window is open replaces the pending job and
// restarts the window, so a burst of settings changes produces exactly
// one apply carrying the last job.
func (c *Coordinator) Request(job Job) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = job
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.opts.Debounce, func() {
		c.mu.Lock()
		j := c.pending
		c.timer = nil
		c.mu.Unlock()

		if err := c.Apply(context.Background(), j); err != nil {
			paint.Logger().Error("wallpaper apply failed", "error", err)
			// Background refreshes fail into the log only; surfacing
			// is reserved for explicit requests.
			if !j.Silent {
				c.notify(fmt.Sprintf("wallpaper apply failed: %v", err))
			}
		}
	})
}

// Stop cancels any pending debounced apply. An apply already in flight
// runs to completion.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Apply runs one batch immediately, waiting for any in-flight batch to
// finish first. Exactly one Apply is ever inside the render-and-install
// section at a time.
func (c *Coordinator) Apply(ctx context.Context, job Job) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.sem.Release(1)

	if err := os.MkdirAll(c.opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("wallpaper: output dir: %w", err)
	}
	PurgeStale(c.opts.OutputDir, c.opts.TempMaxAge)

	monitors, err := c.port.Monitors()
	if err != nil || len(monitors) == 0 {
		if err != nil {
			paint.Logger().Warn("monitor enumeration failed, using desktop fallback", "error", err)
		}
		return c.applySingle(job, fallbackTarget())
	}

	if len(distinctRects(monitors)) > 1 {
		if err := c.applyPerMonitor(job, monitors); err != nil {
			// Degraded broadcast: a failed per-monitor batch falls back
			// to one shared image rather than leaving the desktop
			// untouched.
			paint.Logger().Warn("per-monitor apply failed, falling back to shared image", "error", err)
			if !job.Silent {
				c.notify("per-monitor wallpaper failed, applying a single image")
			}
			return c.applySingle(job, monitors[0])
		}
		return nil
	}
	return c.applySingle(job, monitors[0])
}

// applyPerMonitor renders one image per monitor with a perturbed
// variation offset, writes every temp file before replacing any final
// file, and only then installs. A failed install on one monitor is
// logged and skipped; the remaining monitors still get their image.
func (c *Coordinator) applyPerMonitor(job Job, monitors []render.MonitorTarget) error {
	batch := uuid.NewString()

	// Rendering shares the pipeline's face cache, so it stays
	// sequential. A fault is confined to its monitor: the rest of the
	// batch still renders and installs. Encoding and writing are
	// independent per image.
	pixmaps := make([]*paint.Pixmap, 0, len(monitors))
	targets := make([]render.MonitorTarget, 0, len(monitors))
	for _, m := range monitors {
		in := job.Inputs
		in.Offset = effect.PerturbForMonitor(job.Inputs.Offset, m.ID, m.DeviceRect.Array())
		pm, err := c.pipeline.Render(in, m)
		if err != nil {
			paint.Logger().Error("monitor render skipped", "monitor", m.ID, "error", err)
			continue
		}
		pixmaps = append(pixmaps, pm)
		targets = append(targets, m)
	}
	if len(targets) == 0 {
		return fmt.Errorf("wallpaper: every monitor render failed in batch %s", batch)
	}

	temps := make([]string, len(targets))
	finals := make([]string, len(targets))
	for i, m := range targets {
		name := fmt.Sprintf("wall-%s.png", sanitizeID(m.ID))
		finals[i] = filepath.Join(c.opts.OutputDir, name)
		temps[i] = filepath.Join(c.opts.OutputDir, fmt.Sprintf("%s.%s.tmp", name, batch))
	}

	// A failed write drops only its monitor from the batch; the
	// goroutines report through writeErrs so one failure does not stop
	// the siblings.
	writeErrs := make([]error, len(targets))
	var g errgroup.Group
	for i := range targets {
		i := i
		g.Go(func() error {
			writeErrs[i] = c.writeTemp(pixmaps[i], temps[i])
			return nil
		})
	}
	g.Wait()

	var (
		written []render.MonitorTarget
		wtemps  []string
		wfinals []string
	)
	for i, err := range writeErrs {
		if err != nil {
			paint.Logger().Error("monitor write skipped", "monitor", targets[i].ID, "error", err)
			os.Remove(temps[i])
			continue
		}
		written = append(written, targets[i])
		wtemps = append(wtemps, temps[i])
		wfinals = append(wfinals, finals[i])
	}
	if len(written) == 0 {
		return fmt.Errorf("wallpaper: every write failed in batch %s", batch)
	}
	targets, temps, finals = written, wtemps, wfinals

	// Every surviving write completed, so the batch commits together.
	for i := range targets {
		if err := render.Replace(temps[i], finals[i]); err != nil {
			for _, t := range temps {
				os.Remove(t)
			}
			return fmt.Errorf("wallpaper: installing %s: %w", finals[i], err)
		}
	}

	if err := c.port.SetFillMode(job.FitMode); err != nil {
		paint.Logger().Warn("fill mode not applied", "mode", job.FitMode, "error", err)
	}

	installed := 0
	for i, m := range targets {
		if err := c.port.SetWallpaper(m.ID, finals[i]); err != nil {
			paint.Logger().Warn("wallpaper install skipped", "monitor", m.ID, "error", err)
			continue
		}
		installed++
	}
	if installed == 0 {
		return fmt.Errorf("wallpaper: no monitor accepted batch %s", batch)
	}

	if !job.Silent {
		c.notify(fmt.Sprintf("wallpaper updated on %d of %d monitors", installed, len(monitors)))
	}
	return nil
}

// applySingle renders one image sized for the given target and installs
// it identically on every monitor via the port's broadcast form.
func (c *Coordinator) applySingle(job Job, target render.MonitorTarget) error {
	pm, err := c.pipeline.Render(job.Inputs, target)
	if err != nil {
		return fmt.Errorf("wallpaper: rendering: %w", err)
	}

	final := filepath.Join(c.opts.OutputDir, "wallpaper.png")
	temp := final + "." + uuid.NewString() + ".tmp"
	if err := c.writeTemp(pm, temp); err != nil {
		return fmt.Errorf("wallpaper: writing: %w", err)
	}
	if err := render.Replace(temp, final); err != nil {
		os.Remove(temp)
		return fmt.Errorf("wallpaper: installing: %w", err)
	}

	if err := c.port.SetFillMode(job.FitMode); err != nil {
		paint.Logger().Warn("fill mode not applied", "mode", job.FitMode, "error", err)
	}
	if err := c.port.SetWallpaper("", final); err != nil {
		return fmt.Errorf("wallpaper: broadcasting install: %w", err)
	}

	if !job.Silent {
		c.notify("wallpaper updated")
	}
	return nil
}

// StartPeriodic refreshes the wallpaper every `minutes` minutes using a
// fresh job from snapshot, until ctx is done. Zero or negative disables
// the ticker entirely and returns immediately.
func (c *Coordinator) StartPeriodic(ctx context.Context, minutes int, snapshot func() Job) {
	if minutes <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(time.Duration(minutes) * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				job := snapshot()
				job.Silent = true
				c.Request(job)
			}
		}
	}()
}

func (c *Coordinator) notify(msg string) {
	if c.opts.Notifier != nil {
		c.opts.Notifier(msg)
	}
}

// distinctRects returns the set of unique device rectangles, used to
// decide between the per-monitor and shared-image paths. Mirrored
// displays report the same rect and count once.
func distinctRects(monitors []render.MonitorTarget) map[[4]int]struct{} {
	set := make(map[[4]int]struct{}, len(monitors))
	for _, m := range monitors {
		set[m.DeviceRect.Array()] = struct{}{}
	}
	return set
}

func fallbackTarget() render.MonitorTarget {
	return render.MonitorTarget{
		ID:          "",
		DeviceRect:  render.Rect{Right: 1920, Bottom: 1080},
		PixelWidth:  1920,
		PixelHeight: 1080,
		ScaleX:      1,
		ScaleY:      1,
	}
}

func sanitizeID(id string) string {
	if id == "" {
		return "primary"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
