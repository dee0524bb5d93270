package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Required(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(!status.Optional),
					state,
					status.Detail,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Dependency", "Command", "Required", "Status", "Details"},
				rows,
			))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required dependencies: %v", missing)
			}
			return nil
		},
	}
}
