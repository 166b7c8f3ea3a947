package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/earcon/internal/catalog"
	"github.com/jmylchreest/earcon/internal/cue"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show engine status",
	Long: `Show the inputs the cue engine derives enablement from: the
screen-reader state, the deprecated umbrella setting, the configured
volume, and where settings are read from.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	legacy := cue.ModeAuto
	if v, ok := store.Value(catalog.LegacyEnabledKey); ok {
		legacy = cue.ParseMode(v)
	}

	volume := float64(cue.DefaultVolumePercent)
	volumeNote := " (default)"
	if v, ok := store.Number(catalog.VolumeKey); ok {
		volume = v
		volumeNote = ""
	}

	enabled := 0
	for _, c := range cat.Cues() {
		if service.IsEnabled(c) {
			enabled++
		}
	}

	fmt.Printf("settings file:   %s\n", store.FilePath())
	fmt.Printf("screen reader:   %v\n", monitor.Attached())
	fmt.Printf("legacy setting:  %s\n", legacy)
	fmt.Printf("volume:          %.0f%%%s\n", volume, volumeNote)
	fmt.Printf("cues enabled:    %d/%d\n", enabled, len(cat.Cues()))
	return nil
}
