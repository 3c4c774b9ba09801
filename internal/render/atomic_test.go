package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/versepaper/versepaper/internal/paint"
)

func TestWriteTempAndReplace(t *testing.T) {
	dir := t.TempDir()
	temp := filepath.Join(dir, "wall.png.tmp")
	final := filepath.Join(dir, "wall.png")

	pm := paint.NewPixmap(8, 8)
	pm.Clear(paint.Hex("#425066"))

	if err := WriteTemp(pm, temp); err != nil {
		t.Fatalf("WriteTemp: %v", err)
	}
	if err := Replace(temp, final); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if _, err := os.Stat(temp); !os.IsNotExist(err) {
		t.Error("temp file survived the replace")
	}

	f, err := os.Open(final)
	if err != nil {
		t.Fatalf("opening final: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("final file is not a valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("decoded %dx%d, want 8x8", b.Dx(), b.Dy())
	}
}

func TestReplaceOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	final := filepath.Join(dir, "wall.png")
	if err := os.WriteFile(final, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	pm := paint.NewPixmap(4, 4)
	pm.Clear(paint.White)
	temp := filepath.Join(dir, "wall.png.tmp")
	if err := WriteTemp(pm, temp); err != nil {
		t.Fatal(err)
	}
	if err := Replace(temp, final); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(final)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "stale" {
		t.Error("final file not overwritten")
	}
}

func TestWriteTempCleansUpOnError(t *testing.T) {
	pm := paint.NewPixmap(4, 4)
	err := WriteTemp(pm, filepath.Join(t.TempDir(), "missing", "wall.png.tmp"))
	if err == nil {
		t.Error("write into a missing directory succeeded")
	}
}

func TestLogicalSize(t *testing.T) {
	tests := []struct {
		name   string
		target MonitorTarget
		wantW  float64
		wantH  float64
	}{
		{
			name:   "hidpi",
			target: MonitorTarget{PixelWidth: 3840, PixelHeight: 2160, ScaleX: 2, ScaleY: 2},
			wantW:  1920, wantH: 1080,
		},
		{
			name:   "unit scale",
			target: MonitorTarget{PixelWidth: 1920, PixelHeight: 1080, ScaleX: 1, ScaleY: 1},
			wantW:  1920, wantH: 1080,
		},
		{
			name:   "zero scale guarded",
			target: MonitorTarget{PixelWidth: 800, PixelHeight: 600},
			wantW:  800, wantH: 600,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.target.LogicalSize()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("LogicalSize() = (%v,%v), want (%v,%v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
