package attendance

import (
	"time"

	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// RecordRequest adds or replaces the punches of one worker on one day.
type RecordRequest struct {
	WorkerID int     `json:"worker_id"`
	Date     string  `json:"date"`     // YYYY-MM-DD
	TimeIn   *string `json:"time_in"`  // HH:mm, null when absent
	TimeOut  *string `json:"time_out"` // HH:mm, null when absent
}

func (r *RecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkerID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id must be a positive number",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.TimeIn != nil && !validator.IsValidClock(*r.TimeIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_in",
			Message: "time_in must be in HH:mm format",
		})
	}

	if r.TimeOut != nil && !validator.IsValidClock(*r.TimeOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_out",
			Message: "time_out must be in HH:mm format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToRecord converts a validated request. Punch ordering is checked here so
// handlers and the CLI share one rule.
func (r *RecordRequest) ToRecord() (Record, error) {
	date, _ := validator.IsValidDate(r.Date)

	var timeIn, timeOut *Clock
	if r.TimeIn != nil {
		c, err := ParseClock(*r.TimeIn)
		if err != nil {
			return Record{}, err
		}
		timeIn = &c
	}
	if r.TimeOut != nil {
		c, err := ParseClock(*r.TimeOut)
		if err != nil {
			return Record{}, err
		}
		timeOut = &c
	}

	if timeOut != nil && timeIn == nil {
		return Record{}, ErrClockOutWithoutClockIn
	}
	if timeIn != nil && timeOut != nil && *timeOut <= *timeIn {
		return Record{}, ErrClockOutBeforeClockIn
	}

	return NewRecord(r.WorkerID, date, timeIn, timeOut), nil
}

type AttendanceFilter struct {
	WorkerID  *int    `json:"worker_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil {
		validStatuses := []string{string(StatusPresent), string(StatusLate), string(StatusAbsent)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: PRESENT, LATE, ABSENT",
			})
		}
	}

	var start, end time.Time
	if f.StartDate != nil && *f.StartDate != "" {
		d, valid := validator.IsValidDate(*f.StartDate)
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
		start = d
	}

	if f.EndDate != nil && *f.EndDate != "" {
		d, valid := validator.IsValidDate(*f.EndDate)
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		end = d
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Range returns the filter bounds, open ends widened to cover all records.
func (f *AttendanceFilter) Range() (time.Time, time.Time) {
	start := time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if f.StartDate != nil {
		if d, ok := validator.IsValidDate(*f.StartDate); ok {
			start = d
		}
	}
	if f.EndDate != nil {
		if d, ok := validator.IsValidDate(*f.EndDate); ok {
			end = d
		}
	}
	return start, end
}

type AttendanceResponse struct {
	WorkerID      int     `json:"worker_id"`
	Date          string  `json:"date"`
	TimeIn        *string `json:"time_in"`
	TimeOut       *string `json:"time_out"`
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	LateMinutes   float64 `json:"late_minutes"`
	Status        string  `json:"status"`
}

func NewAttendanceResponse(r Record) AttendanceResponse {
	resp := AttendanceResponse{
		WorkerID:      r.WorkerID,
		Date:          r.Date.Format("2006-01-02"),
		TotalHours:    r.TotalHours(),
		OvertimeHours: r.OvertimeHours(),
		LateMinutes:   r.LateMinutes(),
		Status:        string(r.Status()),
	}
	if r.TimeIn != nil {
		s := r.TimeIn.String()
		resp.TimeIn = &s
	}
	if r.TimeOut != nil {
		s := r.TimeOut.String()
		resp.TimeOut = &s
	}
	return resp
}

type ListAttendanceResponse struct {
	TotalCount    int                  `json:"total_count"`
	TotalHours    float64              `json:"total_hours"`
	OvertimeHours float64              `json:"overtime_hours"`
	LateMinutes   float64              `json:"late_minutes"`
	Records       []AttendanceResponse `json:"records"`
}
