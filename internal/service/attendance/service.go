package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	worker.WorkerRepository
	loc *time.Location
	now func() time.Time
}

// NewAttendanceService returns the attendance service. Clock punches are
// taken in loc; nil means UTC.
func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, workerRepo worker.WorkerRepository, loc *time.Location) attendance.AttendanceService {
	return newAttendanceService(attendanceRepo, workerRepo, loc, time.Now)
}

func newAttendanceService(attendanceRepo attendance.AttendanceRepository, workerRepo worker.WorkerRepository, loc *time.Location, now func() time.Time) *AttendanceServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		WorkerRepository:     workerRepo,
		loc:                  loc,
		now:                  now,
	}
}

func (a *AttendanceServiceImpl) localNow() time.Time {
	return a.now().In(a.loc)
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, workerID int) (attendance.AttendanceResponse, error) {
	if _, err := a.WorkerRepository.GetByID(ctx, workerID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.localNow()
	today := attendance.DateOf(nowLocal)
	punch := attendance.ClockOf(nowLocal)

	existing, err := a.AttendanceRepository.Get(ctx, workerID, today)
	switch {
	case err == nil && existing.TimeIn != nil:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	case err == nil:
		existing.TimeIn = &punch
		if err := a.AttendanceRepository.Update(ctx, existing); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
		}
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		existing = attendance.NewRecord(workerID, today, &punch, nil)
		if err := a.AttendanceRepository.Add(ctx, existing); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
		}
	default:
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}

	if err := a.AttendanceRepository.Save(ctx); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to persist attendance: %w", err)
	}

	slog.Info("Worker clocked in", "worker_id", workerID, "time_in", punch.String(), "late_minutes", existing.LateMinutes())
	return attendance.NewAttendanceResponse(existing), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, workerID int) (attendance.AttendanceResponse, error) {
	nowLocal := a.localNow()
	today := attendance.DateOf(nowLocal)
	punch := attendance.ClockOf(nowLocal)

	rec, err := a.AttendanceRepository.Get(ctx, workerID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if rec.TimeIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	}
	if rec.TimeOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}
	if punch <= *rec.TimeIn {
		return attendance.AttendanceResponse{}, attendance.ErrClockOutBeforeClockIn
	}

	rec.TimeOut = &punch
	if err := a.AttendanceRepository.Update(ctx, rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if err := a.AttendanceRepository.Save(ctx); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to persist attendance: %w", err)
	}

	slog.Info("Worker clocked out", "worker_id", workerID, "time_out", punch.String(), "total_hours", rec.TotalHours())
	return attendance.NewAttendanceResponse(rec), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, workerID int) (attendance.AttendanceResponse, error) {
	rec, err := a.AttendanceRepository.Get(ctx, workerID, attendance.DateOf(a.localNow()))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(rec), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	start, end := filter.Range()

	var records []attendance.Record
	var err error
	if filter.WorkerID != nil {
		records, err = a.AttendanceRepository.GetByDateRange(ctx, *filter.WorkerID, start, end)
	} else {
		records, err = a.AttendanceRepository.GetAll(ctx)
	}
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := attendance.ListAttendanceResponse{Records: make([]attendance.AttendanceResponse, 0)}
	for _, rec := range records {
		if !rec.InRange(start, end) {
			continue
		}
		if filter.Status != nil && string(rec.Status()) != *filter.Status {
			continue
		}
		resp.TotalCount++
		resp.TotalHours += rec.TotalHours()
		resp.OvertimeHours += rec.OvertimeHours()
		resp.LateMinutes += rec.LateMinutes()
		resp.Records = append(resp.Records, attendance.NewAttendanceResponse(rec))
	}
	sortResponses(resp.Records)
	return resp, nil
}

// AddAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) AddAttendance(ctx context.Context, req attendance.RecordRequest) (attendance.AttendanceResponse, error) {
	rec, err := a.recordFrom(ctx, req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.AttendanceRepository.Add(ctx, rec); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.AttendanceRepository.Save(ctx); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to persist attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(rec), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.RecordRequest) (attendance.AttendanceResponse, error) {
	rec, err := a.recordFrom(ctx, req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.AttendanceRepository.Update(ctx, rec); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.AttendanceRepository.Save(ctx); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to persist attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(rec), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, workerID int, date string) error {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	if err := a.AttendanceRepository.Delete(ctx, workerID, day); err != nil {
		return err
	}
	if err := a.AttendanceRepository.Save(ctx); err != nil {
		return fmt.Errorf("failed to persist attendance: %w", err)
	}
	return nil
}

func (a *AttendanceServiceImpl) recordFrom(ctx context.Context, req attendance.RecordRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	if _, err := a.WorkerRepository.GetByID(ctx, req.WorkerID); err != nil {
		return attendance.Record{}, err
	}
	return req.ToRecord()
}

// sortResponses orders by date, then worker. Dates are YYYY-MM-DD so string
// order is chronological.
func sortResponses(records []attendance.AttendanceResponse) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].WorkerID < records[j].WorkerID
	})
}
