// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/timelog/internal/dateutil"
	"github.com/javiermolinar/timelog/internal/timesheet"
)

// timestampLayout keeps fractional seconds fixed-width so stored
// timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite implements timesheet.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateBatch stores days under a new batch in a single transaction.
func (s *SQLite) CreateBatch(ctx context.Context, source string, days []timesheet.Day) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO batches (id, source, created_at) VALUES (?, ?, ?)`,
		id, source, time.Now().UTC().Format(timestampLayout),
	); err != nil {
		return "", fmt.Errorf("inserting batch: %w", err)
	}

	query := `
		INSERT INTO periods (
			batch_id, position, work_date, start_time, end_time, description, task_id
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return "", fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	position := 0
	for _, d := range days {
		for _, p := range d.Periods {
			_, err := stmt.ExecContext(ctx,
				id,
				position,
				d.Date.Format(dateutil.LayoutISO),
				p.StartClock(),
				p.EndClock(),
				p.Description,
				p.TaskID,
			)
			if err != nil {
				return "", fmt.Errorf("inserting period %q: %w", p.Description, err)
			}
			position++
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing transaction: %w", err)
	}

	return id, nil
}

// ListBatches returns all batches, newest first.
func (s *SQLite) ListBatches(ctx context.Context) ([]timesheet.Batch, error) {
	query := `
		SELECT b.id, b.source, b.created_at, COUNT(p.id)
		FROM batches b
		LEFT JOIN periods p ON p.batch_id = b.id
		GROUP BY b.id
		ORDER BY b.created_at DESC, b.rowid DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var batches []timesheet.Batch
	for rows.Next() {
		var (
			b         timesheet.Batch
			createdAt string
		)
		if err := rows.Scan(&b.ID, &b.Source, &createdAt, &b.Periods); err != nil {
			return nil, fmt.Errorf("scanning batch: %w", err)
		}
		b.CreatedAt, err = parseTimestamp(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating batches: %w", err)
	}

	return batches, nil
}

// ListDays returns the days of a batch within r, ordered by date.
// Returns timesheet.ErrBatchNotFound if the batch does not exist.
func (s *SQLite) ListDays(ctx context.Context, batchID string, r dateutil.DateRange) ([]timesheet.Day, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM batches WHERE id = ?`, batchID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", timesheet.ErrBatchNotFound, batchID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying batch: %w", err)
	}

	query := `
		SELECT work_date, start_time, end_time, description, task_id
		FROM periods
		WHERE batch_id = ?
	`
	args := []any{batchID}
	if !r.Start.IsZero() {
		query += ` AND work_date >= ?`
		args = append(args, r.Start.Format(dateutil.LayoutISO))
	}
	if !r.End.IsZero() {
		query += ` AND work_date <= ?`
		args = append(args, r.End.Format(dateutil.LayoutISO))
	}
	query += ` ORDER BY work_date, position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying periods: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var days []timesheet.Day
	for rows.Next() {
		var workDate, start, end, description, taskID string
		if err := rows.Scan(&workDate, &start, &end, &description, &taskID); err != nil {
			return nil, fmt.Errorf("scanning period: %w", err)
		}

		date, err := parseDate(workDate)
		if err != nil {
			return nil, fmt.Errorf("parsing work date: %w", err)
		}
		p, err := timesheet.NewPeriod(date, start, end, description, taskID)
		if err != nil {
			return nil, fmt.Errorf("loading period %q: %w", description, err)
		}

		if n := len(days); n == 0 || !dateutil.SameDay(days[n-1].Date, date) {
			days = append(days, timesheet.Day{Date: date})
		}
		days[len(days)-1].Periods = append(days[len(days)-1].Periods, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating periods: %w", err)
	}

	return days, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// parseDate parses a work date. Dates are stored without a zone and read
// back as UTC midnight, matching the CSV reader.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateutil.LayoutISO, s); err == nil {
		return t, nil
	}

	// SQLite may hand DATE columns back as "2006-01-02T00:00:00Z".
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.Parse(dateutil.LayoutISO, s[:10]); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		timestampLayout,
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
