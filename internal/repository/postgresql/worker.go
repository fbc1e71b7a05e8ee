package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/motorph/payroll-backend-go/internal/pkg/database"
)

const workerColumns = `id, last_name, first_name, birthday, address, phone_number,
	sss_number, philhealth_number, tin_number, pagibig_number,
	status, position, supervisor, department,
	basic_salary, rice_subsidy, phone_allowance, clothing_allowance,
	gross_semi_monthly_rate, hourly_rate`

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	var status string
	err := row.Scan(
		&w.ID,
		&w.LastName,
		&w.FirstName,
		&w.Birthday,
		&w.Address,
		&w.PhoneNumber,
		&w.SSSNumber,
		&w.PhilHealthNumber,
		&w.TINNumber,
		&w.PagIBIGNumber,
		&status,
		&w.Position,
		&w.Supervisor,
		&w.Department,
		&w.BasicSalary,
		&w.RiceSubsidy,
		&w.PhoneAllowance,
		&w.ClothingAllowance,
		&w.GrossSemiMonthlyRate,
		&w.HourlyRate,
	)
	if err != nil {
		return worker.Worker{}, err
	}
	w.Status, err = worker.ParseStatus(status)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("worker %d: %w", w.ID, err)
	}
	return w, nil
}

// GetAll implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetAll(ctx context.Context) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+workerColumns+` FROM workers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	workers := make([]worker.Worker, 0)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}
	return workers, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id int) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	w, err := scanWorker(q.QueryRow(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by id: %w", err)
	}
	return w, nil
}

// Add implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Add(ctx context.Context, w worker.Worker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (` + workerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	_, err := q.Exec(ctx, query, workerArgs(w)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return worker.ErrWorkerIDExists
		}
		return fmt.Errorf("failed to insert worker: %w", err)
	}
	return nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers SET
			last_name = $2, first_name = $3, birthday = $4, address = $5, phone_number = $6,
			sss_number = $7, philhealth_number = $8, tin_number = $9, pagibig_number = $10,
			status = $11, position = $12, supervisor = $13, department = $14,
			basic_salary = $15, rice_subsidy = $16, phone_allowance = $17, clothing_allowance = $18,
			gross_semi_monthly_rate = $19, hourly_rate = $20
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, workerArgs(w)...)
	if err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

// Delete removes the worker and their attendance in one transaction.
func (r *workerRepositoryImpl) Delete(ctx context.Context, id int) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		commandTag, err := tx.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete worker: %w", err)
		}
		if commandTag.RowsAffected() == 0 {
			return worker.ErrWorkerNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM attendance_records WHERE worker_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete worker attendance: %w", err)
		}
		return nil
	})
}

// Save implements worker.WorkerRepository. Writes are already durable.
func (r *workerRepositoryImpl) Save(ctx context.Context) error {
	return nil
}

func workerArgs(w worker.Worker) []any {
	return []any{
		w.ID, w.LastName, w.FirstName, w.Birthday, w.Address, w.PhoneNumber,
		w.SSSNumber, w.PhilHealthNumber, w.TINNumber, w.PagIBIGNumber,
		string(w.Status), w.Position, w.Supervisor, w.Department,
		w.BasicSalary, w.RiceSubsidy, w.PhoneAllowance, w.ClothingAllowance,
		w.GrossSemiMonthlyRate, w.HourlyRate,
	}
}
