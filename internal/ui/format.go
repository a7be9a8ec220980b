package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/timelog/internal/summary"
	"github.com/javiermolinar/timelog/internal/timesheet"
)

// PrintOpts configures day printing behavior.
type PrintOpts struct {
	Plain        bool          // one line per period instead of tables
	Verbose      bool          // show full descriptions
	MaxDescWidth int           // maximum description width (0 = auto)
	Capacity     time.Duration // days above this are flagged (0 = never)
}

// CalcMaxDescWidth calculates the maximum description width based on options.
func (o PrintOpts) CalcMaxDescWidth(defaultWidth int) int {
	if o.MaxDescWidth > 0 {
		return o.MaxDescWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// Borders plus "HH:MM", "HH:MM", duration and task columns.
	available := termWidth() - 40
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintDays writes every day followed by a grand total.
func PrintDays(w io.Writer, days []timesheet.Day, opts PrintOpts) {
	maxDescWidth := opts.CalcMaxDescWidth(50)
	for i, d := range days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if opts.Plain {
			printPlainDay(w, d)
		} else {
			printDayTable(w, d, opts, maxDescWidth)
		}
	}

	if len(days) > 0 && !opts.Plain {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s across %d days\n",
			formatStats(timesheet.FormatDuration(timesheet.TotalDuration(days))), len(days))
	}
}

// printPlainDay prints a day as a date line followed by tab-indented periods.
func printPlainDay(w io.Writer, d timesheet.Day) {
	fmt.Fprintln(w, d.Date.Format("02.01.2006"))
	for _, p := range d.Periods {
		fmt.Fprintf(w, "\t %s-%s %s\n", p.StartClock(), p.EndClock(), p.Description)
	}
}

func printDayTable(w io.Writer, d timesheet.Day, opts PrintOpts, maxDescWidth int) {
	total := d.TotalDuration()
	summary := formatMuted(timesheet.FormatDuration(total))
	if opts.Capacity > 0 && total > opts.Capacity {
		summary = formatWarn(timesheet.FormatDuration(total) + " over capacity")
	}
	fmt.Fprintf(w, "=== %s === %s\n", formatHeader(d.Date.Format("Monday, January 2, 2006")), summary)

	rows := make([][]string, 0, len(d.Periods))
	for _, p := range d.Periods {
		rows = append(rows, []string{
			p.StartClock(),
			p.EndClock(),
			timesheet.FormatDuration(p.Duration()),
			formatTask(p.TaskID),
			truncate(p.Description, maxDescWidth),
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Headers("Start", "End", "Time", "Task", "Description").
		Border(lipgloss.RoundedBorder()).
		BorderRow(false).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
}

// PrintSummary writes weekly totals and the time per task of each week.
func PrintSummary(w io.Writer, days []timesheet.Day, maxDescWidth int) {
	for _, week := range summary.SummarizeWeeks(days) {
		fmt.Fprintf(w, "\n%s  %s in %d days\n",
			formatHeader(fmt.Sprintf("Week %s - %s", week.Start.Format("Jan 2"), week.End.Format("Jan 2, 2006"))),
			formatStats(timesheet.FormatDuration(week.Total)),
			week.Days)
		for _, task := range week.Tasks {
			label := task.Description
			if task.TaskID != "" {
				label = task.TaskID + " " + label
			}
			fmt.Fprintf(w, "  %7s  %s %s\n",
				timesheet.FormatDuration(task.Duration),
				truncate(label, maxDescWidth),
				formatMuted(fmt.Sprintf("(%d)", task.Periods)))
		}
	}
}

// truncate shortens s to width display cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
