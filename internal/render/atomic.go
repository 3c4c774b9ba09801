package render

import (
	"fmt"
	"io"
	"os"

	"github.com/versepaper/versepaper/internal/paint"
)

// WriteTemp encodes a pixmap as PNG to the given temporary path.
// The data is synced to disk before the file closes so a later rename
// installs fully durable content.
func WriteTemp(pm *paint.Pixmap, tempPath string) error {
	f, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("render: create temp %s: %w", tempPath, err)
	}

	if err := pm.EncodePNG(f); err != nil {
		f.Close()
		os.Remove(tempPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("render: sync temp %s: %w", tempPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("render: close temp %s: %w", tempPath, err)
	}
	return nil
}

// Replace installs tempPath at finalPath. The rename is atomic on the
// same filesystem, so no reader ever observes a truncated file; when
// rename is unsupported (cross-device temp dirs) it degrades to
// copy-then-delete of the temp file.
func Replace(tempPath, finalPath string) error {
	if err := os.Rename(tempPath, finalPath); err == nil {
		return nil
	}

	src, err := os.Open(tempPath)
	if err != nil {
		return fmt.Errorf("render: open temp %s: %w", tempPath, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(finalPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", finalPath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("render: copy to %s: %w", finalPath, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("render: close %s: %w", finalPath, err)
	}

	os.Remove(tempPath)
	return nil
}
