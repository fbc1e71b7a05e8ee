package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func toPgTime(c *attendance.Clock) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(*c) * int64(time.Minute/time.Microsecond), Valid: true}
}

func fromPgTime(t pgtype.Time) *attendance.Clock {
	if !t.Valid {
		return nil
	}
	c := attendance.Clock(t.Microseconds / int64(time.Minute/time.Microsecond))
	return &c
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var (
		workerID int
		date     time.Time
		in, out  pgtype.Time
	)
	if err := row.Scan(&workerID, &date, &in, &out); err != nil {
		return attendance.Record{}, err
	}
	return attendance.NewRecord(workerID, date, fromPgTime(in), fromPgTime(out)), nil
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance: %w", err)
	}
	return records, nil
}

// GetAll implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetAll(ctx context.Context) ([]attendance.Record, error) {
	return r.list(ctx, `
		SELECT worker_id, work_date, time_in, time_out
		FROM attendance_records
		ORDER BY worker_id, work_date
	`)
}

// GetByWorkerID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByWorkerID(ctx context.Context, workerID int) ([]attendance.Record, error) {
	return r.list(ctx, `
		SELECT worker_id, work_date, time_in, time_out
		FROM attendance_records
		WHERE worker_id = $1
		ORDER BY work_date
	`, workerID)
}

// GetByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByDateRange(ctx context.Context, workerID int, start, end time.Time) ([]attendance.Record, error) {
	return r.list(ctx, `
		SELECT worker_id, work_date, time_in, time_out
		FROM attendance_records
		WHERE worker_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date
	`, workerID, attendance.DateOf(start), attendance.DateOf(end))
}

// Get implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Get(ctx context.Context, workerID int, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanRecord(q.QueryRow(ctx, `
		SELECT worker_id, work_date, time_in, time_out
		FROM attendance_records
		WHERE worker_id = $1 AND work_date = $2
	`, workerID, attendance.DateOf(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// Add implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Add(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO attendance_records (worker_id, work_date, time_in, time_out)
		VALUES ($1, $2, $3, $4)
	`, rec.WorkerID, attendance.DateOf(rec.Date), toPgTime(rec.TimeIn), toPgTime(rec.TimeOut))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.ErrAttendanceExists
		}
		return fmt.Errorf("failed to insert attendance: %w", err)
	}
	return nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE attendance_records
		SET time_in = $3, time_out = $4
		WHERE worker_id = $1 AND work_date = $2
	`, rec.WorkerID, attendance.DateOf(rec.Date), toPgTime(rec.TimeIn), toPgTime(rec.TimeOut))
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, workerID int, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		DELETE FROM attendance_records WHERE worker_id = $1 AND work_date = $2
	`, workerID, attendance.DateOf(date))
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Save implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Save(ctx context.Context) error {
	return nil
}
