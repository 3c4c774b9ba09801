package commands

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/versepaper/versepaper/internal/printer"
	"github.com/versepaper/versepaper/internal/settings"
	"github.com/versepaper/versepaper/internal/wallpaper"
)

var (
	applyTimePos float64
	applyShuffle bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Render and install the wallpaper once",
	Long: `Render the poem wallpaper for every connected monitor and install
the images through the configured wallpaper command.

Without a wallpaper_command in the settings file this is a dry run:
the images are written to the output directory but nothing is
installed on the desktop.`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().Float64Var(&applyTimePos, "time", 0, "shape animation time position in seconds")
	applyCmd.Flags().BoolVar(&applyShuffle, "shuffle", false, "advance the variation before rendering and persist it")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	s, path, err := loadSettings()
	if err != nil {
		return printer.Errorf("loading settings: %v", err)
	}

	if applyShuffle {
		s.Variation += 1.0 / 16
		if s.Variation >= 1 {
			s.Variation -= 1
		}
		if err := settings.Save(path, s); err != nil {
			return printer.Errorf("persisting variation: %v", err)
		}
	}

	pipeline, err := buildPipeline(s)
	if err != nil {
		return printer.Errorf("%v", err)
	}
	port, dry, err := buildPort(s)
	if err != nil {
		return printer.Errorf("%v", err)
	}
	dir, err := outputDir(s)
	if err != nil {
		return printer.Errorf("%v", err)
	}

	job, err := buildJob(s, applyTimePos)
	if err != nil {
		return printer.Errorf("%v", err)
	}
	job.Silent = true

	coord := wallpaper.NewCoordinator(port, pipeline, wallpaper.Options{
		OutputDir: dir,
	})
	if err := coord.Apply(cmd.Context(), job); err != nil {
		return printer.Errorf("apply failed: %v", err)
	}

	printer.Success("wallpaper rendered to %s", dir)
	if dry {
		printer.Warning("no wallpaper_command configured, nothing was installed")
		if mem, ok := port.(*wallpaper.MemoryPort); ok {
			applied := mem.Applied()
			ids := make([]string, 0, len(applied))
			for id := range applied {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				printer.Detail("%s -> %s", id, applied[id])
			}
		}
	}
	return nil
}
