// Package main is the entry point for the earcond cue daemon.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/earcon/internal/accessibility"
	"github.com/jmylchreest/earcon/internal/audio"
	"github.com/jmylchreest/earcon/internal/catalog"
	"github.com/jmylchreest/earcon/internal/cue"
	"github.com/jmylchreest/earcon/internal/dbus"
	"github.com/jmylchreest/earcon/internal/settings"
)

// Build-time variables
var version = "dev"

func main() {
	settingsPath := flag.String("settings", "", "Path to settings file (default: XDG config dir)")
	overlayPath := flag.String("cues", "", "Path to cue overlay file (default: next to settings)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("earcond version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting earcond", "version", version)

	// Settings store and live reload
	store, err := settings.Load(*settingsPath)
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	watcher, err := settings.NewWatcher(store, logger)
	if err != nil {
		logger.Error("failed to create settings watcher", "error", err)
		os.Exit(1)
	}
	if err := watcher.Start(); err != nil {
		logger.Warn("settings watcher unavailable, edits require restart", "error", err)
	}

	// Catalog with user overlay
	oPath := *overlayPath
	if oPath == "" {
		oPath = settings.OverlayPath()
	}
	overlay, err := catalog.LoadOverlay(oPath)
	if err != nil {
		logger.Warn("failed to load cue overlay", "path", oPath, "error", err)
		overlay = nil
	}
	cat := catalog.BuiltinWith(overlay, logger)
	logger.Info("catalog built", "cues", len(cat.Cues()), "sounds", len(cat.Sounds()))

	// Screen-reader signal; degrade to "not attached" if the bus refuses
	monitor := accessibility.NewMonitor(logger)
	if err := monitor.Start(); err != nil {
		logger.Warn("accessibility monitor unavailable", "error", err)
	}

	player := audio.NewPlayer(audio.NewResolver(), logger)
	service := cue.NewService(cat, store, monitor, player, logger)

	server := dbus.NewServer(service, logger)
	if err := server.Start(); err != nil {
		logger.Error("failed to start D-Bus server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Warm the decode cache so the first cue is not late.
		for _, snd := range cat.Sounds() {
			if err := player.Preload(snd.File); err != nil {
				logger.Debug("failed to preload sound", "sound", snd.ID, "error", err)
			}
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := server.Stop(); err != nil {
			logger.Warn("failed to stop D-Bus server", "error", err)
		}
		monitor.Stop()
		if err := watcher.Stop(); err != nil {
			logger.Warn("failed to stop settings watcher", "error", err)
		}
		player.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("daemon error", "error", err)
		os.Exit(1)
	}
}
