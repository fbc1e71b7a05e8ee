package postgresql

import (
	"context"
	"fmt"

	"github.com/motorph/payroll-backend-go/internal/pkg/database"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS workers (
		id                      INTEGER PRIMARY KEY,
		last_name               TEXT NOT NULL,
		first_name              TEXT NOT NULL,
		birthday                TEXT NOT NULL DEFAULT '',
		address                 TEXT NOT NULL DEFAULT '',
		phone_number            TEXT NOT NULL DEFAULT '',
		sss_number              TEXT NOT NULL DEFAULT '',
		philhealth_number       TEXT NOT NULL DEFAULT '',
		tin_number              TEXT NOT NULL DEFAULT '',
		pagibig_number          TEXT NOT NULL DEFAULT '',
		status                  TEXT NOT NULL,
		position                TEXT NOT NULL DEFAULT '',
		supervisor              TEXT NOT NULL DEFAULT '',
		department              TEXT NOT NULL DEFAULT 'IT Department',
		basic_salary            NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (basic_salary >= 0),
		rice_subsidy            NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (rice_subsidy >= 0),
		phone_allowance         NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (phone_allowance >= 0),
		clothing_allowance      NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (clothing_allowance >= 0),
		gross_semi_monthly_rate NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (gross_semi_monthly_rate >= 0),
		hourly_rate             NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (hourly_rate >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_records (
		worker_id INTEGER NOT NULL,
		work_date DATE NOT NULL,
		time_in   TIME,
		time_out  TIME,
		PRIMARY KEY (worker_id, work_date)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		username  TEXT PRIMARY KEY,
		password  TEXT NOT NULL,
		user_type TEXT NOT NULL CHECK (user_type IN ('admin', 'user'))
	)`,
}

// EnsureSchema creates the payroll tables when they do not exist.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(tx pgxTx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
}
