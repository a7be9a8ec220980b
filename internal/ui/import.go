package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelog/internal/timesheet"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [csv_path]",
		Short: "Store a CSV timesheet as a batch",
		Long: `Read a CSV timesheet and store its periods as a new batch, so later
commands can refer to it with --batch.

Example:
  timelog import january.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			days, err := readSheet(path)
			if err != nil {
				return err
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}

			id, count, err := importDays(context.Background(), a.repo, path, days)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d periods from %s as batch %s\n", count, path, id)
			return nil
		},
	}

	return cmd
}

func importDays(ctx context.Context, dest timesheet.Repository, source string, days []timesheet.Day) (string, int, error) {
	count := 0
	for _, d := range days {
		count += len(d.Periods)
	}

	id, err := dest.CreateBatch(ctx, source, days)
	if err != nil {
		return "", 0, fmt.Errorf("storing batch: %w", err)
	}
	return id, count, nil
}
