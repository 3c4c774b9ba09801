package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/versepaper/versepaper/internal/paint"
	"github.com/versepaper/versepaper/internal/settings"
)

var (
	version string
	commit  string
	date    string

	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "versepaper",
	Short: "Versepaper - classical poetry wallpapers",
	Long: `Versepaper renders classical Chinese poems over procedurally
generated backgrounds and installs the result as your wallpaper,
one DPI-correct image per monitor.

The background, poem, and layout are reproducible: the same seed and
settings always produce the same pixels.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			paint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

// Execute runs the root command. Errors are printed by the printer
// package, so cobra's own reporting stays silent.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// resolveConfigPath returns the settings file path, honoring --config.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(base, "versepaper", "settings.yaml"), nil
}

// loadSettings reads the settings file, creating it with defaults and a
// fresh random seed on first run.
func loadSettings() (settings.Settings, string, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return settings.Settings{}, "", err
	}

	s, err := settings.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		s = settings.Default()
		s.EnsureSeed(func() int64 { return time.Now().UnixNano() })
		if err := settings.Save(path, s); err != nil {
			return settings.Settings{}, "", fmt.Errorf("writing default settings: %w", err)
		}
		return s, path, nil
	}
	if err != nil {
		return settings.Settings{}, "", err
	}

	if s.EnsureSeed(func() int64 { return time.Now().UnixNano() }) {
		if err := settings.Save(path, s); err != nil {
			return settings.Settings{}, "", fmt.Errorf("persisting seed: %w", err)
		}
	}
	if err := s.Validate(); err != nil {
		return settings.Settings{}, "", fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, path, nil
}
