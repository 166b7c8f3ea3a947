package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/earcon/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive cue browser",
	Long: `Launch the interactive terminal user interface for browsing cues.

Key bindings:
  j/k, ↑/↓    Navigate list
  enter       Preview the cue's sound
  m           Cycle the cue setting (auto → on → off)
  L           Cycle the deprecated umbrella setting
  /           Filter cues
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(service, store)
}
