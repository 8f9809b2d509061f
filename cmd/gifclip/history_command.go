package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gifclip/internal/history"
	"gifclip/internal/timecode"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously rendered clips",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled in the configuration")
				return nil
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			clips, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(clips) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clips recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(clips))
			for _, clip := range clips {
				rows = append(rows, []string{
					clip.CreatedAt.Local().Format("2006-01-02 15:04"),
					clip.Title,
					fmt.Sprintf("%s - %s", timecode.Format(clip.Start), timecode.Format(clip.End)),
					clip.Format,
					clip.Output,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"When", "Title", "Range", "Format", "Output"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of clips to list")
	return cmd
}
