// Package main provides the CLI entrypoint for earcon.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/earcon/internal/accessibility"
	"github.com/jmylchreest/earcon/internal/audio"
	"github.com/jmylchreest/earcon/internal/catalog"
	"github.com/jmylchreest/earcon/internal/cue"
	"github.com/jmylchreest/earcon/internal/settings"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	globalOpts struct {
		verbose      bool
		settingsPath string
		overlayPath  string
	}
	logger *slog.Logger

	store   *settings.Store
	cat     *catalog.Catalog
	monitor *accessibility.Monitor
	service *cue.Service
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "earcon",
	Short: "Audio cue engine for Linux desktops",
	Long: `earcon plays short audio cues for desktop events.

Each cue is bound to a sound and a setting that decides when it plays:
always (on), never on its own (off), or only while a screen reader is
attached (auto). A deprecated umbrella setting is still honored for users
who have not migrated to per-cue settings.

Running earcon without a subcommand launches the interactive TUI.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		store, err = settings.Load(globalOpts.settingsPath)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		overlayPath := globalOpts.overlayPath
		if overlayPath == "" {
			overlayPath = settings.OverlayPath()
		}
		overlay, err := catalog.LoadOverlay(overlayPath)
		if err != nil {
			logger.Warn("failed to load cue overlay", "path", overlayPath, "error", err)
			overlay = nil
		}
		cat = catalog.BuiltinWith(overlay, logger)

		monitor = accessibility.NewMonitor(logger)
		if err := monitor.Start(); err != nil {
			logger.Warn("accessibility state unavailable, assuming no screen reader", "error", err)
		}

		player := audio.NewPlayer(audio.NewResolver(), logger)
		service = cue.NewService(cat, store, monitor, player, logger)
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.settingsPath, "settings", "",
		"Path to settings file (default: ~/.config/earcon/settings.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.overlayPath, "cues", "",
		"Path to cue overlay file (default: ~/.config/earcon/cues.yaml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}
