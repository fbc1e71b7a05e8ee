package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// A record is keyed by worker ID and calendar day.
type AttendanceRepository interface {
	// GetAll returns every record in storage order.
	GetAll(ctx context.Context) ([]Record, error)

	// GetByWorkerID returns every record of one worker.
	GetByWorkerID(ctx context.Context, workerID int) ([]Record, error)

	// GetByDateRange returns the worker's records with start <= date <= end.
	// An empty range yields an empty, non-nil slice.
	GetByDateRange(ctx context.Context, workerID int, start, end time.Time) ([]Record, error)

	// Get returns the record for a worker on a day, or ErrAttendanceNotFound.
	Get(ctx context.Context, workerID int, date time.Time) (Record, error)

	Add(ctx context.Context, record Record) error
	Update(ctx context.Context, record Record) error
	Delete(ctx context.Context, workerID int, date time.Time) error

	// Save flushes pending changes to the backing store.
	Save(ctx context.Context) error
}
