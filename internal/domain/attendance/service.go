package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn records today's time in for a worker
	ClockIn(ctx context.Context, workerID int) (AttendanceResponse, error)

	// ClockOut records today's time out for a worker
	ClockOut(ctx context.Context, workerID int) (AttendanceResponse, error)

	// GetToday returns today's record, or ErrAttendanceNotFound
	GetToday(ctx context.Context, workerID int) (AttendanceResponse, error)

	// ListAttendance retrieves records matching the filter, sorted by date
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// AddAttendance creates a manual record (admin)
	AddAttendance(ctx context.Context, req RecordRequest) (AttendanceResponse, error)

	// UpdateAttendance replaces an existing record (admin)
	UpdateAttendance(ctx context.Context, req RecordRequest) (AttendanceResponse, error)

	// DeleteAttendance removes a worker's record for a day (admin)
	DeleteAttendance(ctx context.Context, workerID int, date string) error
}
