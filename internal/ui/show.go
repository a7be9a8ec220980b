package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) showCmd() *cobra.Command {
	var (
		source      sourceFlags
		plain       bool
		verbose     bool
		noColor     bool
		showSummary bool
		asJSON      bool
		width       int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the days of a timesheet or stored batch",
		Long: `Display the logged periods of a CSV timesheet or a stored batch
as they are, without rearranging anything.`,
		Example: `  timelog show --src january.csv
  timelog show --batch 0b7e... --start 2025-01-13 --end 2025-01-17
  timelog show --src january.csv --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			days, err := a.load(context.Background(), &source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return PrintJSON(out, days)
			}
			if len(days) == 0 {
				fmt.Fprintln(out, "No periods found.")
				return nil
			}

			opts := PrintOpts{
				Plain:        plain,
				Verbose:      verbose,
				MaxDescWidth: width,
				Capacity:     a.config.CapacityDuration(),
			}
			PrintDays(out, days, opts)
			if showSummary {
				PrintSummary(out, days, opts.CalcMaxDescWidth(50))
			}
			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "Print one line per period")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full descriptions")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "Print weekly totals per task")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the days as JSON")
	cmd.Flags().IntVar(&width, "width", 0, "Maximum description width (0 = auto)")
	return cmd
}
