package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/earcon/internal/catalog"
)

var setCmd = &cobra.Command{
	Use:   "set <cue> on|off|auto",
	Short: "Change a cue setting",
	Long: `Change a cue's setting and persist it to the settings file.

Valid values are on (always play), off (never play on the cue's own tier),
and auto (play only while a screen reader is attached).

The pseudo-cues "legacy" and "volume" address the deprecated umbrella
setting and the playback volume.

Examples:
  # Always play the task-completed cue
  earcon set task-completed on

  # Restore the default screen-reader-gated behavior
  earcon set task-completed auto

  # Set playback volume to 80%
  earcon set volume 80

  # Turn the deprecated umbrella setting off
  earcon set legacy off`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	target, value := args[0], args[1]

	switch target {
	case "volume":
		percent, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("volume must be a number, got %q", value)
		}
		if percent < 0 || percent > 100 {
			return fmt.Errorf("volume must be between 0 and 100, got %v", percent)
		}
		store.Set(catalog.VolumeKey, percent)

	case "legacy":
		if err := validMode(value); err != nil {
			return err
		}
		store.Set(catalog.LegacyEnabledKey, value)

	default:
		c, ok := cat.Cue(target)
		if !ok {
			return fmt.Errorf("unknown cue %q", target)
		}
		if err := validMode(value); err != nil {
			return err
		}
		store.Set(c.SettingKey, value)
	}

	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Printf("%s = %s\n", target, value)
	return nil
}

func validMode(s string) error {
	switch s {
	case "on", "off", "auto":
		return nil
	}
	return fmt.Errorf("invalid value %q: must be on, off, or auto", s)
}
