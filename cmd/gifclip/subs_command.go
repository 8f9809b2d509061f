package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gifclip/internal/subtitle"
	"gifclip/internal/timecode"
)

func newSubsCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var subsOverride string

	cmd := &cobra.Command{
		Use:   "subs <url-or-file>",
		Short: "Resolve and print the subtitle track for a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			pipeline, store, err := buildPipeline(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			language := valueOr(lang, cfg.Defaults.Language)
			track, err := pipeline.ResolveSubtitles(cmd.Context(), args[0], language, strings.TrimSpace(subsOverride))
			if err != nil {
				return err
			}
			if track == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No subtitles found")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Origin: %s\n", track.Origin)
			fmt.Fprintln(cmd.OutOrStdout(), renderCueTable(track.Cues))
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Subtitle language")
	cmd.Flags().StringVar(&subsOverride, "subs", "", "Explicit subtitle file or URL")
	return cmd
}

func renderCueTable(cues []subtitle.Cue) string {
	rows := make([][]string, 0, len(cues))
	for i, cue := range cues {
		text := strings.ReplaceAll(cue.Text, "\n", " ")
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			timecode.Format(cue.Start),
			timecode.Format(cue.End),
			text,
		})
	}
	return renderTable(
		[]string{"#", "Start", "End", "Text"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
	)
}
