package ui

import (
	"bytes"
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelog/internal/config"
	"github.com/javiermolinar/timelog/internal/logger"
	"github.com/javiermolinar/timelog/internal/rebalance"
	"github.com/javiermolinar/timelog/internal/scheduler"
	"github.com/javiermolinar/timelog/internal/sheet"
	"github.com/javiermolinar/timelog/internal/timesheet"
	"github.com/javiermolinar/timelog/internal/workday"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func (a *App) doubleCmd() *cobra.Command {
	var (
		source      sourceFlags
		skipTask    string
		factor      int
		outPath     string
		save        bool
		copyCSV     bool
		plain       bool
		noColor     bool
		showSummary bool
		asJSON      bool
		width       int
	)

	cmd := &cobra.Command{
		Use:   "double",
		Short: "Stretch logged work onto packed working days",
		Long: `Re-plan a timesheet: periods of the skipped task stay where they were
logged, every other period is multiplied by the factor and placed as early
as possible from its logged start. Work that does not fit a day moves to
the next business day.`,
		Example: `  timelog double --src january.csv --skip-task MEET
  timelog double --batch 0b7e... --skip-task MEET --factor 3 --out stretched.csv
  timelog double --src january.csv --save --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			ctx := context.Background()
			days, err := a.load(ctx, &source)
			if err != nil {
				return err
			}

			set := workday.NewSet(engineConfig(a.config))
			if err := rebalance.Scale(set, days, skipTask, factor); err != nil {
				return fmt.Errorf("rebalancing %s: %w", source.name(), err)
			}
			result := set.LogDays()
			logger.Info("rebalanced timesheet",
				"source", source.name(),
				"factor", factor,
				"before", timesheet.TotalDuration(days),
				"after", timesheet.TotalDuration(result),
				"days", set.Len())

			out := cmd.OutOrStdout()
			if asJSON {
				if err := PrintJSON(out, result); err != nil {
					return err
				}
				// Status lines go to stderr after JSON.
				out = cmd.ErrOrStderr()
			} else {
				opts := PrintOpts{Plain: plain, MaxDescWidth: width, Capacity: a.config.CapacityDuration()}
				PrintDays(out, result, opts)
				if showSummary {
					PrintSummary(out, result, opts.CalcMaxDescWidth(50))
				}
			}

			if outPath != "" {
				if err := writeSheet(outPath, result); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", outPath)
			}

			if save {
				if err := a.ensureRepo(); err != nil {
					return err
				}
				id, err := a.repo.CreateBatch(ctx, fmt.Sprintf("%s x%d", source.name(), factor), result)
				if err != nil {
					return fmt.Errorf("saving batch: %w", err)
				}
				fmt.Fprintf(out, "Saved batch %s\n", id)
			}

			if copyCSV {
				var buf bytes.Buffer
				if err := sheet.Write(&buf, result); err != nil {
					return err
				}
				if err := copyToClipboard(buf.String()); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, "Copied CSV to clipboard")
			}

			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().StringVar(&skipTask, "skip-task", "", "Task ID whose periods keep their logged time")
	cmd.Flags().IntVar(&factor, "factor", 2, "Duration multiplier for every other period")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the result as CSV")
	cmd.Flags().BoolVar(&save, "save", false, "Store the result as a new batch")
	cmd.Flags().BoolVar(&copyCSV, "copy", false, "Copy the result as CSV to the clipboard")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print one line per period")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "Print weekly totals per task")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().IntVar(&width, "width", 0, "Maximum description width (0 = auto)")
	return cmd
}

// engineConfig builds the allocation settings from the loaded configuration.
func engineConfig(cfg *config.Config) workday.Config {
	return workday.Config{
		DayStart:            cfg.DayStartOffset(),
		Capacity:            cfg.CapacityDuration(),
		RelocationGuardDays: cfg.Schedule.RelocationGuardDays,
		Calendar:            scheduler.New(cfg.Schedule.Workdays),
		Logger:              logger.Logger,
	}
}
