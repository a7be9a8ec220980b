// Package sheet reads and writes timesheets in the CSV layout exported by
// the time tracking tool: one row per period with German column names.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/timelog/internal/dateutil"
	"github.com/javiermolinar/timelog/internal/timesheet"
)

// Column names.
const (
	ColDate        = "Datum"
	ColStart       = "Arbeitszeit von"
	ColEnd         = "Arbeitszeit bis"
	ColDescription = "Beschreibung"
	ColTask        = "Aufgabe"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing column")

var required = []string{ColDate, ColStart, ColEnd, ColDescription}

// RowError reports the line of a malformed row.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Read parses a timesheet. Header names are matched after trimming
// whitespace and the task column is optional. Rows sharing a date are
// collected into one day, days in order of first appearance.
func Read(r io.Reader) ([]timesheet.Day, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	var days []timesheet.Day
	index := make(map[string]int)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if blank(record) {
			continue
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		date, err := dateutil.ParseDate(field(ColDate))
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		p, err := timesheet.NewPeriod(date, field(ColStart), field(ColEnd), field(ColDescription), field(ColTask))
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}

		key := date.Format(dateutil.LayoutISO)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, timesheet.Day{Date: date})
		}
		days[i].Periods = append(days[i].Periods, p)
	}

	return days, nil
}

// Write emits days in the layout Read accepts, task column included.
func Write(w io.Writer, days []timesheet.Day) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{ColDate, ColStart, ColEnd, ColDescription, ColTask}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, d := range days {
		date := d.Date.Format(dateutil.LayoutDotted)
		for _, p := range d.Periods {
			if err := writer.Write([]string{date, p.StartClock(), p.EndClock(), p.Description, p.TaskID}); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
