package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/versepaper/versepaper/internal/printer"
	"github.com/versepaper/versepaper/internal/settings"
	"github.com/versepaper/versepaper/internal/wallpaper"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run in the background, refreshing the wallpaper periodically",
	Long: `Apply the wallpaper once, then keep running and re-render on the
refresh_minutes interval from the settings file. Each refresh advances
the shape animation, so the background drifts slowly over the day.

SIGHUP reloads the settings file and re-applies; a burst of reloads is
debounced into a single apply. Stop with Ctrl-C or SIGTERM.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	s, cfgPath, err := loadSettings()
	if err != nil {
		return printer.Errorf("loading settings: %v", err)
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

	coord := wallpaper.NewCoordinator(port, pipeline, wallpaper.Options{
		OutputDir: dir,
		Notifier:  func(msg string) { printer.Info("%s", msg) },
	})
	defer coord.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := settings.NewStore(s)
	store.Subscribe(func(next settings.Settings) {
		job, err := buildJob(next, 0)
		if err != nil {
			printer.Warning("settings change ignored: %v", err)
			return
		}
		coord.Request(job)
	})

	// SIGHUP reloads the settings file through the store, which requests
	// a debounced apply via the subscription above.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				next, err := settings.Load(cfgPath)
				if err != nil {
					printer.Warning("reload failed: %v", err)
					continue
				}
				store.Update(func(cur *settings.Settings) { *cur = next })
				printer.Info("settings reloaded from %s", cfgPath)
			}
		}
	}()

	job, err := buildJob(s, 0)
	if err != nil {
		return printer.Errorf("%v", err)
	}
	if err := coord.Apply(ctx, job); err != nil {
		return printer.Errorf("initial apply failed: %v", err)
	}
	printer.Success("wallpaper applied, daemon running")
	if dry {
		printer.Warning("no wallpaper_command configured, running in dry-run mode")
	}

	// Each refresh nudges the animation clock forward by the interval,
	// so consecutive images differ while staying seeded.
	elapsed := 0.0
	coord.StartPeriodic(ctx, s.RefreshMinutes, func() wallpaper.Job {
		elapsed += float64(s.RefreshMinutes) * 60
		snapshot := store.Get()
		job, err := buildJob(snapshot, elapsed)
		if err != nil {
			job, _ = buildJob(s, elapsed)
		}
		return job
	})

	<-ctx.Done()
	printer.Info("shutting down")
	return nil
}
