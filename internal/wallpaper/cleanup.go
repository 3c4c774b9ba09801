package wallpaper

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/versepaper/versepaper/internal/paint"
)

// PurgeStale removes leftover temporary render files from dir. Only
// files matching the coordinator's temp naming (".tmp" suffix) and
// older than maxAge are touched, so a concurrent batch in flight keeps
// its temps. Removal failures are logged and skipped.
func PurgeStale(dir string, maxAge time.Duration) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmp") {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if err := os.Remove(full); err != nil {
			paint.Logger().Warn("stale temp removal failed", "path", full, "error", err)
		}
	}
}
