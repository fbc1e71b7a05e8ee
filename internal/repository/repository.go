// Package repository opens the configured store and hands out its repositories.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/user"
	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/motorph/payroll-backend-go/internal/pkg/database"
	"github.com/motorph/payroll-backend-go/internal/repository/csvfile"
	"github.com/motorph/payroll-backend-go/internal/repository/postgresql"
)

type Set struct {
	Workers    worker.WorkerRepository
	Attendance attendance.AttendanceRepository
	Users      user.UserRepository

	db *database.DB
}

// Open builds the repositories for cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Set, error) {
	switch cfg.Storage.Driver {
	case config.DriverCSV:
		return openCSV(cfg.Storage)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DatabaseURL())
	default:
		return nil, fmt.Errorf("unsupported repository driver %q", cfg.Storage.Driver)
	}
}

func openCSV(cfg config.StorageConfig) (*Set, error) {
	workers, err := csvfile.NewWorkerRepository(cfg.EmployeesFile)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	records, err := csvfile.NewAttendanceRepository(cfg.AttendanceFile)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	users, err := csvfile.NewUserRepository(cfg.UsersFile)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	slog.Info("CSV repositories loaded",
		"employees", cfg.EmployeesFile,
		"attendance", cfg.AttendanceFile,
		"users", cfg.UsersFile,
	)
	return &Set{Workers: workers, Attendance: records, Users: users}, nil
}

func openPostgres(ctx context.Context, dsn string) (*Set, error) {
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := postgresql.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("PostgreSQL repositories ready")
	return &Set{
		Workers:    postgresql.NewWorkerRepository(db),
		Attendance: postgresql.NewAttendanceRepository(db),
		Users:      postgresql.NewUserRepository(db),
		db:         db,
	}, nil
}

// SaveAll flushes every repository, attempting all before reporting.
func (s *Set) SaveAll(ctx context.Context) error {
	return errors.Join(
		s.Workers.Save(ctx),
		s.Attendance.Save(ctx),
		s.Users.Save(ctx),
	)
}

// Close releases the database pool, if any.
func (s *Set) Close() {
	if s.db != nil {
		s.db.Close()
	}
}
