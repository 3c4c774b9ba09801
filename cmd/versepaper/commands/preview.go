package commands

import (
	"github.com/spf13/cobra"

	"github.com/versepaper/versepaper/internal/printer"
	"github.com/versepaper/versepaper/internal/render"
)

var (
	previewWidth   int
	previewHeight  int
	previewScale   float64
	previewTimePos float64
	previewOut     string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a single wallpaper image to a file",
	Long: `Render one wallpaper image at the given size and write it as a PNG,
without touching the desktop. Useful for checking a seed, palette, or
layout change before applying it.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewWidth, "width", 1920, "image width in logical pixels")
	previewCmd.Flags().IntVar(&previewHeight, "height", 1080, "image height in logical pixels")
	previewCmd.Flags().Float64Var(&previewScale, "scale", 1, "DPI scale factor")
	previewCmd.Flags().Float64Var(&previewTimePos, "time", 0, "shape animation time position in seconds")
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "preview.png", "output PNG path")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	s, _, err := loadSettings()
	if err != nil {
		return printer.Errorf("loading settings: %v", err)
	}
	if previewWidth <= 0 || previewHeight <= 0 || previewScale <= 0 {
		return printer.Errorf("width, height and scale must be positive")
	}

	pipeline, err := buildPipeline(s)
	if err != nil {
		return printer.Errorf("%v", err)
	}
	job, err := buildJob(s, previewTimePos)
	if err != nil {
		return printer.Errorf("%v", err)
	}

	target := render.MonitorTarget{
		ID: "preview",
		DeviceRect: render.Rect{
			Right:  previewWidth,
			Bottom: previewHeight,
		},
		PixelWidth:  int(float64(previewWidth) * previewScale),
		PixelHeight: int(float64(previewHeight) * previewScale),
		ScaleX:      previewScale,
		ScaleY:      previewScale,
	}

	pm, err := pipeline.Render(job.Inputs, target)
	if err != nil {
		return printer.Errorf("render failed: %v", err)
	}

	temp := previewOut + ".tmp"
	if err := render.WriteTemp(pm, temp); err != nil {
		return printer.Errorf("writing image: %v", err)
	}
	if err := render.Replace(temp, previewOut); err != nil {
		return printer.Errorf("writing image: %v", err)
	}

	printer.Success("preview written to %s", previewOut)
	printer.Detail("seed %d, effect %s, %dx%d @%gx",
		s.Seed, s.Effect, previewWidth, previewHeight, previewScale)
	return nil
}
