package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/versepaper/versepaper/internal/compose"
	"github.com/versepaper/versepaper/internal/effect"
	"github.com/versepaper/versepaper/internal/paint"
	"github.com/versepaper/versepaper/internal/poem"
	"github.com/versepaper/versepaper/internal/render"
	"github.com/versepaper/versepaper/internal/settings"
	"github.com/versepaper/versepaper/internal/text"
	"github.com/versepaper/versepaper/internal/wallpaper"
)

// buildJob turns a settings snapshot into a render job. The poem and
// all layout choices derive from the settings alone, so repeated calls
// with the same snapshot describe the same image.
func buildJob(s settings.Settings, timePos float64) (wallpaper.Job, error) {
	kind, err := effect.ParseKind(s.Effect)
	if err != nil {
		return wallpaper.Job{}, err
	}
	fit, err := wallpaper.ParseFitMode(s.FitMode)
	if err != nil {
		return wallpaper.Job{}, err
	}

	background := paint.Hex(s.Background)
	chosen := poem.PickBySeed(s.Seed)

	opts := compose.DefaultOptions(0)
	opts.FontSize = s.Layout.FontSize
	opts.CharSpacing = s.Layout.CharSpacing
	opts.LineSpacing = s.Layout.LineSpacing
	opts.TitleOffset = s.Layout.TitleOffset
	opts.AuthorOffset = s.Layout.AuthorOffset
	if s.Layout.Orientation == "horizontal" {
		opts.Orientation = compose.Horizontal
	} else {
		opts.Orientation = compose.Vertical
	}
	if s.Watermark {
		if tc, ok := effect.FindTraditional(s.Background); ok {
			opts.Watermark = true
			opts.WatermarkText = tc.Name
		}
	}

	return wallpaper.Job{
		Inputs: render.Inputs{
			Poem:       chosen,
			Options:    opts,
			Background: background,
			DarkTheme:  s.DarkTheme,
			Kind:       kind,
			Tuning:     effect.DefaultTuning(),
			Seed:       s.Seed,
			Offset:     effect.VariationOffset(s.Seed, s.Variation),
			TimePos:    timePos,
		},
		FitMode: fit,
	}, nil
}

// buildPipeline loads the configured font and wires the render
// pipeline. An empty font path produces a text-less pipeline.
func buildPipeline(s settings.Settings) (*render.Pipeline, error) {
	if s.Layout.FontFile == "" {
		return render.NewPipeline(nil), nil
	}
	source, err := text.NewFontSourceFromFile(s.Layout.FontFile)
	if err != nil {
		return nil, fmt.Errorf("loading font %s: %w", s.Layout.FontFile, err)
	}
	// Real fonts get HarfBuzz shaping for correct CJK glyph placement.
	text.SetShaper(text.NewGoTextShaper())
	return render.NewPipeline(source), nil
}

// buildPort selects the wallpaper port for the settings: the external
// command when configured, otherwise the in-memory dry-run port.
func buildPort(s settings.Settings) (wallpaper.MonitorWallpaperPort, bool, error) {
	if s.WallpaperCommand != "" {
		port, err := wallpaper.NewCommandPort(s.WallpaperCommand)
		if err != nil {
			return nil, false, err
		}
		return port, false, nil
	}
	return wallpaper.NewMemoryPort(), true, nil
}

// outputDir resolves the image output directory, defaulting next to the
// user cache dir.
func outputDir(s settings.Settings) (string, error) {
	if s.OutputDir != "" {
		return s.OutputDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache dir: %w", err)
	}
	return filepath.Join(base, "versepaper"), nil
}
