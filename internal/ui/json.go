package ui

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/javiermolinar/timelog/internal/dateutil"
	"github.com/javiermolinar/timelog/internal/timesheet"
)

type jsonDay struct {
	Date    string       `json:"date"`
	Total   string       `json:"total"`
	Periods []jsonPeriod `json:"periods"`
}

type jsonPeriod struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	TaskID      string `json:"task_id,omitempty"`
}

// PrintJSON writes the days as an indented JSON array.
func PrintJSON(w io.Writer, days []timesheet.Day) error {
	out := make([]jsonDay, 0, len(days))
	for _, day := range days {
		jd := jsonDay{
			Date:    day.Date.Format(dateutil.LayoutISO),
			Total:   timesheet.FormatDuration(day.TotalDuration()),
			Periods: make([]jsonPeriod, 0, len(day.Periods)),
		}
		for _, p := range day.Periods {
			jd.Periods = append(jd.Periods, jsonPeriod{
				Start:       p.StartClock(),
				End:         p.EndClock(),
				Duration:    timesheet.FormatDuration(p.Duration()),
				Description: p.Description,
				TaskID:      p.TaskID,
			})
		}
		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
