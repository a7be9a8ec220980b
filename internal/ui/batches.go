package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) batchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batches",
		Short: "List stored batches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			batches, err := a.repo.ListBatches(context.Background())
			if err != nil {
				return fmt.Errorf("listing batches: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(batches) == 0 {
				fmt.Fprintln(out, "No batches stored.")
				return nil
			}

			for _, b := range batches {
				fmt.Fprintf(out, "%s  %s  %4d periods  %s\n",
					b.ID,
					formatMuted(b.CreatedAt.Local().Format("2006-01-02 15:04")),
					b.Periods,
					b.Source,
				)
			}
			return nil
		},
	}
}
