package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timelog/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	var (
		initFile bool
		edit     bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Print the effective configuration: defaults, overlaid by the config
file, overlaid by TIMELOG_* environment variables.

--init writes the defaults to the config file if it does not exist yet.
--edit prompts for every value and saves the result.`,
		Example: `  timelog config
  timelog config --init
  timelog config --edit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n\n", a.configPath)

			if initFile {
				if err := initConfig(out, a.configPath); err != nil {
					return err
				}
			}

			if edit {
				reader := bufio.NewReader(cmd.InOrStdin())
				if err := editConfig(out, reader, a.config); err != nil {
					return err
				}
				if err := a.config.SaveTo(a.configPath); err != nil {
					return fmt.Errorf("saving config: %w", err)
				}
				fmt.Fprintln(out, "\nConfiguration saved!")
				fmt.Fprintln(out)
			}

			printConfig(out, a.config)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write the default configuration if no file exists")
	cmd.Flags().BoolVar(&edit, "edit", false, "Edit the configuration interactively")
	return cmd
}

func initConfig(out io.Writer, path string) error {
	_, err := os.Stat(path)
	if err == nil {
		fmt.Fprintln(out, "Config file already exists, leaving it untouched.")
		fmt.Fprintln(out)
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	if err := config.Default().SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(out, "Created %s\n\n", path)
	return nil
}

func editConfig(out io.Writer, reader *bufio.Reader, cfg *config.Config) error {
	cfg.Schedule.DayStart = promptValue(out, reader, "Day start", cfg.Schedule.DayStart)
	cfg.Schedule.Capacity = promptValue(out, reader, "Capacity", cfg.Schedule.Capacity)
	guard := promptValue(out, reader, "Relocation guard (days)", strconv.Itoa(cfg.Schedule.RelocationGuardDays))
	days, err := strconv.Atoi(guard)
	if err != nil {
		return fmt.Errorf("relocation guard must be a number, got %q", guard)
	}
	cfg.Schedule.RelocationGuardDays = days
	cfg.Schedule.Workdays = promptSlice(out, reader, "Workdays (comma-separated)", cfg.Schedule.Workdays)
	cfg.Storage.DBPath = promptValue(out, reader, "Database path", cfg.Storage.DBPath)
	cfg.Log.Dir = promptValue(out, reader, "Log directory", cfg.Log.Dir)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[schedule]")
	fmt.Fprintf(out, "  day_start             = %s\n", cfg.Schedule.DayStart)
	fmt.Fprintf(out, "  capacity              = %s\n", cfg.Schedule.Capacity)
	fmt.Fprintf(out, "  relocation_guard_days = %d\n", cfg.Schedule.RelocationGuardDays)
	fmt.Fprintf(out, "  workdays              = %s\n", strings.Join(cfg.Schedule.Workdays, ", "))
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path               = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  dir                   = %s\n", cfg.Log.Dir)
}

func promptValue(out io.Writer, reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptSlice(out io.Writer, reader *bufio.Reader, label string, current []string) []string {
	currentStr := strings.Join(current, ", ")
	fmt.Fprintf(out, "  %s [%s]: ", label, currentStr)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
