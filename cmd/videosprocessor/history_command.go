package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Journal is disabled in the configuration")
				return nil
			}

			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			headers := []string{"Started", "Title", "Base Name", "Audio", "Video", "Status"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.DateTime),
					run.Title,
					run.BaseName,
					dash(run.AudioOutcome),
					dash(run.VideoOutcome),
					string(run.Status),
				})
			}

			if isTerminal(out) {
				fmt.Fprintln(out, renderTable(headers, rows))
				return nil
			}
			for _, row := range rows {
				fmt.Fprintln(out, strings.Join(row, "\t"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
