package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versepaper/versepaper/internal/compose"
	"github.com/versepaper/versepaper/internal/effect"
	"github.com/versepaper/versepaper/internal/paint"
	"github.com/versepaper/versepaper/internal/poem"
	"github.com/versepaper/versepaper/internal/render"
)

func testMonitor(id string, left, top, right, bottom int) render.MonitorTarget {
	return render.MonitorTarget{
		ID:          id,
		DeviceRect:  render.Rect{Left: left, Top: top, Right: right, Bottom: bottom},
		PixelWidth:  right - left,
		PixelHeight: bottom - top,
		ScaleX:      1,
		ScaleY:      1,
	}
}

func testJob(seed int64) Job {
	return Job{
		Inputs: render.Inputs{
			Poem:       poem.PickBySeed(seed),
			Options:    compose.DefaultOptions(200),
			Background: paint.Hex("#425066"),
			Kind:       effect.Blobs,
			Tuning:     effect.DefaultTuning(),
			Seed:       seed,
			Offset:     effect.VariationOffset(seed, 0),
		},
		FitMode: FitFill,
		Silent:  true,
	}
}

func newTestCoordinator(t *testing.T, port MonitorWallpaperPort) *Coordinator {
	t.Helper()
	return NewCoordinator(port, render.NewPipeline(nil), Options{
		Debounce:  30 * time.Millisecond,
		OutputDir: t.TempDir(),
	})
}

func TestApplySingleMonitor(t *testing.T) {
	port := NewMemoryPort(testMonitor("DP-1", 0, 0, 320, 200))
	coord := newTestCoordinator(t, port)

	require.NoError(t, coord.Apply(context.Background(), testJob(42)))

	applied := port.Applied()
	require.Len(t, applied, 1)
	path := applied["DP-1"]
	assert.Equal(t, "wallpaper.png", filepath.Base(path))
	assert.FileExists(t, path)
	assert.Equal(t, FitFill, port.FillMode())
}

func TestApplyPerMonitorDistinctImages(t *testing.T) {
	port := NewMemoryPort(
		testMonitor("DP-1", 0, 0, 320, 200),
		testMonitor("DP-2", 320, 0, 640, 240),
	)
	coord := newTestCoordinator(t, port)

	require.NoError(t, coord.Apply(context.Background(), testJob(42)))

	applied := port.Applied()
	require.Len(t, applied, 2)
	assert.NotEqual(t, applied["DP-1"], applied["DP-2"])

	a, err := os.ReadFile(applied["DP-1"])
	require.NoError(t, err)
	b, err := os.ReadFile(applied["DP-2"])
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "monitors received identical images")
}

func TestApplyDualMonitorDesktop(t *testing.T) {
	if testing.Short() {
		t.Skip("renders two full-size monitors")
	}

	port := NewMemoryPort(
		testMonitor("DP-1", 0, 0, 1920, 1080),
		testMonitor("DP-2", 1920, 0, 3840, 1200),
	)
	var installs atomic.Int32
	port.InstallErr = func(string) error {
		installs.Add(1)
		return nil
	}
	coord := newTestCoordinator(t, port)

	require.NoError(t, coord.Apply(context.Background(), testJob(42)))

	assert.Equal(t, int32(2), installs.Load(), "install call count")
	applied := port.Applied()
	require.Len(t, applied, 2)
	assert.NotEqual(t, applied["DP-1"], applied["DP-2"])

	a, err := os.ReadFile(applied["DP-1"])
	require.NoError(t, err)
	b, err := os.ReadFile(applied["DP-2"])
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "monitors received identical pixels")
}

func TestApplyMirroredMonitorsShareOneImage(t *testing.T) {
	// Same device rect on both: a cloned desktop gets the single path,
	// and the broadcast install reaches every monitor.
	port := NewMemoryPort(
		testMonitor("DP-1", 0, 0, 320, 200),
		testMonitor("DP-2", 0, 0, 320, 200),
	)
	coord := newTestCoordinator(t, port)

	require.NoError(t, coord.Apply(context.Background(), testJob(7)))

	applied := port.Applied()
	require.Len(t, applied, 2)
	assert.Equal(t, "wallpaper.png", filepath.Base(applied["DP-1"]))
	assert.Equal(t, applied["DP-1"], applied["DP-2"])
}

func TestApplyDropsMonitorWhoseWriteFails(t *testing.T) {
	port := NewMemoryPort(
		testMonitor("DP-1", 0, 0, 320, 200),
		testMonitor("DP-2", 320, 0, 640, 240),
	)
	coord := newTestCoordinator(t, port)
	coord.writeTemp = func(pm *paint.Pixmap, path string) error {
		if strings.Contains(path, "DP-1") {
			return errors.New("disk full")
		}
		return render.WriteTemp(pm, path)
	}

	require.NoError(t, coord.Apply(context.Background(), testJob(4)))

	applied := port.Applied()
	require.Len(t, applied, 1)
	assert.Contains(t, applied, "DP-2")
	assert.FileExists(t, applied["DP-2"])
}

func TestApplyFallsBackToSharedImageOnBatchFailure(t *testing.T) {
	// Every per-monitor install is refused but the broadcast form still
	// works, so the batch downgrades to one shared image instead of
	// leaving the desktop untouched.
	port := NewMemoryPort(
		testMonitor("DP-1", 0, 0, 320, 200),
		testMonitor("DP-2", 320, 0, 640, 240),
	)
	port.InstallErr = func(id string) error {
		if id != "" {
			return errors.New("per-monitor install unsupported")
		}
		return nil
	}

	var mu sync.Mutex
	var msgs []string
	coord := NewCoordinator(port, render.NewPipeline(nil), Options{
		Debounce:  30 * time.Millisecond,
		OutputDir: t.TempDir(),
		Notifier: func(m string) {
			mu.Lock()
			msgs = append(msgs, m)
			mu.Unlock()
		},
	})

	job := testJob(8)
	job.Silent = false
	require.NoError(t, coord.Apply(context.Background(), job))

	applied := port.Applied()
	require.Len(t, applied, 2)
	assert.Equal(t, applied["DP-1"], applied["DP-2"])
	assert.Equal(t, "wallpaper.png", filepath.Base(applied["DP-1"]))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[0], "single image")
}

func TestApplySkipsFailedInstalls(t *testing.T) {
	port := NewMemoryPort(
		testMonitor("DP-1", 0, 0, 320, 200),
		testMonitor("DP-2", 320, 0, 640, 240),
	)
	port.InstallErr = func(id string) error {
		if id == "DP-1" {
			return errors.New("monitor unplugged")
		}
		return nil
	}
	coord := newTestCoordinator(t, port)

	require.NoError(t, coord.Apply(context.Background(), testJob(3)))

	applied := port.Applied()
	require.Len(t, applied, 1)
	assert.Contains(t, applied, "DP-2")
}

func TestApplyIsolatesRenderFaults(t *testing.T) {
	broken := render.MonitorTarget{
		ID:         "DP-1",
		DeviceRect: render.Rect{Right: 320, Bottom: 200},
		// Zero pixel size makes the pipeline reject this target.
	}
	port := NewMemoryPort(
		broken,
		testMonitor("DP-2", 320, 0, 640, 240),
	)
	coord := newTestCoordinator(t, port)

	require.NoError(t, coord.Apply(context.Background(), testJob(6)))

	applied := port.Applied()
	require.Len(t, applied, 1)
	assert.Contains(t, applied, "DP-2")
}

func TestApplyFailsWhenNoMonitorAccepts(t *testing.T) {
	// Refusing every install form, broadcast included, exhausts the
	// shared-image fallback too and surfaces the error.
	port := NewMemoryPort(
		testMonitor("DP-1", 0, 0, 320, 200),
		testMonitor("DP-2", 320, 0, 640, 240),
	)
	port.InstallErr = func(string) error { return errors.New("down") }
	coord := newTestCoordinator(t, port)

	assert.Error(t, coord.Apply(context.Background(), testJob(3)))
	assert.Empty(t, port.Applied())
}

func TestApplyFallsBackWithoutMonitors(t *testing.T) {
	port := NewMemoryPort()
	coord := newTestCoordinator(t, port)

	require.NoError(t, coord.Apply(context.Background(), testJob(5)))

	applied := port.Applied()
	require.Len(t, applied, 1)
	assert.Contains(t, applied, "")
}

func TestApplyLeavesNoTempFiles(t *testing.T) {
	port := NewMemoryPort(
		testMonitor("DP-1", 0, 0, 320, 200),
		testMonitor("DP-2", 320, 0, 640, 240),
	)
	dir := t.TempDir()
	coord := NewCoordinator(port, render.NewPipeline(nil), Options{OutputDir: dir})

	require.NoError(t, coord.Apply(context.Background(), testJob(9)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotRegexp(t, `\.tmp$`, e.Name(), "temp file left behind")
	}
}

func TestRequestCoalescesBursts(t *testing.T) {
	port := NewMemoryPort(testMonitor("DP-1", 0, 0, 320, 200))
	var installs atomic.Int32
	port.InstallErr = func(string) error {
		installs.Add(1)
		return nil
	}
	coord := newTestCoordinator(t, port)
	defer coord.Stop()

	for i := 0; i < 5; i++ {
		coord.Request(testJob(int64(i)))
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return installs.Load() == 1
	}, 2*time.Second, 10*time.Millisecond, "burst did not coalesce into one apply")

	// No further applies arrive after the window closes.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), installs.Load())
}

func TestRequestCarriesLatestJob(t *testing.T) {
	port := NewMemoryPort(testMonitor("DP-1", 0, 0, 320, 200))
	coord := newTestCoordinator(t, port)
	defer coord.Stop()

	coord.Request(testJob(1))
	coord.Request(testJob(2))

	assert.Eventually(t, func() bool {
		return len(port.Applied()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// The installed image must match a direct render of the last job,
	// not the first.
	applied := port.Applied()["DP-1"]
	got, err := os.ReadFile(applied)
	require.NoError(t, err)

	want2 := renderReference(t, testJob(2))
	want1 := renderReference(t, testJob(1))
	assert.Equal(t, want2, got)
	assert.NotEqual(t, want1, got)
}

func renderReference(t *testing.T, job Job) []byte {
	t.Helper()
	pm, err := render.NewPipeline(nil).Render(job.Inputs, testMonitor("DP-1", 0, 0, 320, 200))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "ref.png")
	require.NoError(t, pm.SavePNG(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestRequestFailureNotifiesOnlyLoudJobs(t *testing.T) {
	// A regular file where the output directory should be makes every
	// apply fail at MkdirAll.
	blocked := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(blocked, nil, 0o644))

	var mu sync.Mutex
	var msgs []string
	coord := NewCoordinator(NewMemoryPort(testMonitor("DP-1", 0, 0, 320, 200)),
		render.NewPipeline(nil), Options{
			Debounce:  30 * time.Millisecond,
			OutputDir: blocked,
			Notifier: func(m string) {
				mu.Lock()
				msgs = append(msgs, m)
				mu.Unlock()
			},
		})
	defer coord.Stop()

	coord.Request(testJob(1)) // silent
	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	assert.Empty(t, msgs, "silent job surfaced its failure")
	mu.Unlock()

	loud := testJob(2)
	loud.Silent = false
	coord.Request(loud)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(msgs) == 1 && strings.Contains(msgs[0], "apply failed")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStopCancelsPendingApply(t *testing.T) {
	port := NewMemoryPort(testMonitor("DP-1", 0, 0, 320, 200))
	coord := newTestCoordinator(t, port)

	coord.Request(testJob(1))
	coord.Stop()

	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, port.Applied())
}

func TestAppliesAreSerialized(t *testing.T) {
	port := NewMemoryPort(testMonitor("DP-1", 0, 0, 320, 200))
	var inFlight, maxInFlight atomic.Int32
	port.InstallErr = func(string) error {
		cur := inFlight.Add(1)
		for {
			max := maxInFlight.Load()
			if cur <= max || maxInFlight.CompareAndSwap(max, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	}
	coord := newTestCoordinator(t, port)

	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		i := i
		go func() {
			done <- coord.Apply(context.Background(), testJob(int64(i)))
		}()
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, <-done)
	}

	assert.Equal(t, int32(1), maxInFlight.Load(), "applies overlapped")
}

func TestStartPeriodicDisabled(t *testing.T) {
	port := NewMemoryPort(testMonitor("DP-1", 0, 0, 320, 200))
	coord := newTestCoordinator(t, port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	coord.StartPeriodic(ctx, 0, func() Job {
		calls++
		return testJob(1)
	})

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, calls)
	assert.Empty(t, port.Applied())
}

func TestPurgeStale(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "wall-DP-1.png.abc.tmp")
	fresh := filepath.Join(dir, "wall-DP-2.png.def.tmp")
	final := filepath.Join(dir, "wall-DP-1.png")
	for _, p := range []string{old, fresh, final} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	stale := time.Now().Add(-10 * time.Minute)
	require.NoError(t, os.Chtimes(old, stale, stale))
	require.NoError(t, os.Chtimes(final, stale, stale))

	PurgeStale(dir, 5*time.Minute)

	assert.NoFileExists(t, old, "stale temp survived")
	assert.FileExists(t, fresh, "fresh temp removed")
	assert.FileExists(t, final, "final image removed")
}

func TestPurgeStaleMissingDir(t *testing.T) {
	// Must not panic or create anything.
	PurgeStale(filepath.Join(t.TempDir(), "nope"), time.Minute)
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DP-1", "DP-1"},
		{`\\.\DISPLAY1`, "____DISPLAY1"},
		{"", "primary"},
		{"eDP/1:0", "eDP_1_0"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeID(tt.in))
		})
	}
}
