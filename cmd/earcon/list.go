package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/earcon/internal/audio"
	"github.com/jmylchreest/earcon/internal/cue"
)

var listOpts struct {
	sounds bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cues and their enablement",
	Long: `List registered cues with their bound sound, configured setting,
and whether each cue would currently play. With --sounds, list the sound
catalog with resolved asset paths instead.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listOpts.sounds, "sounds", false,
		"List sounds instead of cues")
}

func runList(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	if listOpts.sounds {
		return listSounds(w)
	}
	return listCues(w)
}

func listCues(w *tabwriter.Writer) error {
	fmt.Fprintln(w, "CUE\tNAME\tSOUND\tSETTING\tENABLED")
	for _, c := range cat.Cues() {
		mode := cue.ModeAuto
		if v, ok := store.Value(c.SettingKey); ok {
			mode = cue.ParseMode(v)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n",
			c.ID, c.Name, c.Sound.ID, mode, service.IsEnabled(c))
	}
	return nil
}

func listSounds(w *tabwriter.Writer) error {
	resolver := audio.NewResolver()

	fmt.Fprintln(w, "SOUND\tFILE\tPATH\tSIZE\tMODIFIED")
	for _, snd := range cat.Sounds() {
		path, err := resolver.Resolve(snd.File)
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\t(not found)\t-\t-\n", snd.ID, snd.File)
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\t%s\t-\t-\n", snd.ID, snd.File, path)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			snd.ID, snd.File, path,
			humanize.Bytes(uint64(info.Size())),
			humanize.Time(info.ModTime()))
	}
	return nil
}
