package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelog/internal/dateutil"
	"github.com/javiermolinar/timelog/internal/sheet"
	"github.com/javiermolinar/timelog/internal/timesheet"
)

// sourceFlags selects the days a command works on: a CSV file or a stored batch.
type sourceFlags struct {
	src       string
	batch     string
	startDate string
	endDate   string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.src, "src", "", "CSV timesheet to read")
	cmd.Flags().StringVar(&f.batch, "batch", "", "Stored batch ID to read")
	cmd.Flags().StringVar(&f.startDate, "start", "", "Only days on or after this date (YYYY-MM-DD or DD.MM.YYYY)")
	cmd.Flags().StringVar(&f.endDate, "end", "", "Only days on or before this date")
	cmd.MarkFlagsMutuallyExclusive("src", "batch")
	cmd.MarkFlagsOneRequired("src", "batch")
}

// name describes the source for messages and batch records.
func (f *sourceFlags) name() string {
	if f.batch != "" {
		return "batch " + f.batch
	}
	return f.src
}

// load reads the selected days, restricted to the requested date range.
func (a *App) load(ctx context.Context, f *sourceFlags) ([]timesheet.Day, error) {
	dateRange, err := dateutil.NewDateRange(f.startDate, f.endDate)
	if err != nil {
		return nil, err
	}

	if f.batch != "" {
		if err := a.ensureRepo(); err != nil {
			return nil, err
		}
		days, err := a.repo.ListDays(ctx, f.batch, dateRange)
		if err != nil {
			return nil, fmt.Errorf("loading batch: %w", err)
		}
		return days, nil
	}

	days, err := readSheet(f.src)
	if err != nil {
		return nil, err
	}
	return timesheet.FilterRange(days, dateRange), nil
}

func readSheet(path string) ([]timesheet.Day, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("timesheet does not exist: %s", path)
		}
		return nil, fmt.Errorf("opening timesheet: %w", err)
	}
	defer func() { _ = file.Close() }()

	days, err := sheet.Read(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return days, nil
}

func writeSheet(path string, days []timesheet.Day) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := sheet.Write(file, days); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
