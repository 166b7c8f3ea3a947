package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/earcon/internal/catalog"
)

var playOpts struct {
	sound           bool // Treat arguments as sound ids, bypassing cues
	force           bool // Ignore enablement
	allowConcurrent bool
}

var playCmd = &cobra.Command{
	Use:   "play <cue>...",
	Short: "Play one or more cues",
	Long: `Play the sounds bound to the given cues, honoring each cue's
enablement. Multiple cues play concurrently; cues sharing a sound play it
only once.

Examples:
  # Play a single cue (silent unless the cue is enabled)
  earcon play task-completed

  # Play several cues at once
  earcon play error warning

  # Audition a cue regardless of its setting
  earcon play task-failed --force

  # Play a raw sound from the catalog
  earcon play complete --sound`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().BoolVar(&playOpts.sound, "sound", false,
		"Treat arguments as sound ids and play them directly")
	playCmd.Flags().BoolVar(&playOpts.force, "force", false,
		"Play even when the cue is disabled")
	playCmd.Flags().BoolVar(&playOpts.allowConcurrent, "allow-concurrent", false,
		"Allow overlapping playback of the same sound")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if playOpts.sound {
		for _, id := range args {
			snd, ok := cat.Sound(id)
			if !ok {
				return fmt.Errorf("unknown sound %q", id)
			}
			service.PlaySound(ctx, snd, playOpts.allowConcurrent)
		}
		return nil
	}

	cues := make([]*catalog.Cue, 0, len(args))
	for _, id := range args {
		c, ok := cat.Cue(id)
		if !ok {
			return fmt.Errorf("unknown cue %q", id)
		}
		cues = append(cues, c)
	}

	if playOpts.force {
		for _, c := range cues {
			service.PlaySound(ctx, c.Sound, playOpts.allowConcurrent)
		}
		return nil
	}

	if len(cues) == 1 {
		service.PlayCue(ctx, cues[0], playOpts.allowConcurrent)
		return nil
	}
	service.PlayCues(ctx, cues)
	return nil
}
