package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS batches (
			id          TEXT PRIMARY KEY,
			source      TEXT NOT NULL,
			created_at  DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS periods (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id    TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
			position    INTEGER NOT NULL,
			work_date   DATE NOT NULL,
			start_time  TIME NOT NULL,
			end_time    TIME NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			task_id     TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_periods_batch ON periods(batch_id, work_date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
