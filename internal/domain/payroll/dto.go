package payroll

import (
	"time"

	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD SELECTION ==========

// PeriodRequest selects a pay period either by explicit dates or by name.
// Explicit dates win when both are given.
type PeriodRequest struct {
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Period    string `json:"period,omitempty"`     // first-half, second-half, previous-month
}

func (r *PeriodRequest) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	hasDates := r.StartDate != "" || r.EndDate != ""
	if !hasDates {
		if r.Period == "" {
			errs = append(errs, validator.ValidationError{Field: "period", Message: "either period or start_date and end_date is required"})
		} else if !validator.IsInSlice(r.Period, []string{PeriodFirstHalf, PeriodSecondHalf, PeriodPreviousMonth}) {
			errs = append(errs, validator.ValidationError{Field: "period", Message: ErrUnknownPeriod.Error()})
		}
		return errs
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	return errs
}

// Resolve turns the request into a Period relative to now.
func (r *PeriodRequest) Resolve(now time.Time) (Period, error) {
	if r.StartDate == "" && r.EndDate == "" {
		return PeriodFor(r.Period, now)
	}
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		return Period{}, ErrInvalidPeriod
	}
	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		return Period{}, ErrInvalidPeriod
	}
	return NewPeriod(start, end)
}

// ========== PAYSLIP DTOs ==========

type PayslipRequest struct {
	WorkerID int  `json:"worker_id"`
	Save     bool `json:"save"`
	PeriodRequest
}

func (r *PayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkerID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "worker_id must be a positive number"})
	}
	errs = r.PeriodRequest.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkPayslipRequest struct {
	// WorkerIDs empty means every worker on file.
	WorkerIDs []int `json:"worker_ids,omitempty"`
	PeriodRequest
}

func (r *BulkPayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, id := range r.WorkerIDs {
		if id <= 0 {
			errs = append(errs, validator.ValidationError{Field: "worker_ids", Message: "worker_ids must contain positive numbers"})
			break
		}
	}
	errs = r.PeriodRequest.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RESPONSE DTOs ==========

type SummaryResponse struct {
	WorkerID        int                             `json:"worker_id"`
	WorkerName      string                          `json:"worker_name"`
	Position        string                          `json:"position"`
	Status          string                          `json:"status"`
	StartDate       string                          `json:"start_date"`
	EndDate         string                          `json:"end_date"`
	DaysPresent     int                             `json:"days_present"`
	DaysLate        int                             `json:"days_late"`
	DaysAbsent      int                             `json:"days_absent"`
	TotalHours      float64                         `json:"total_hours"`
	OvertimeHours   float64                         `json:"overtime_hours"`
	LateMinutes     float64                         `json:"late_minutes"`
	GrossPay        decimal.Decimal                 `json:"gross_pay"`
	SSS             decimal.Decimal                 `json:"sss"`
	PhilHealth      decimal.Decimal                 `json:"philhealth"`
	PagIBIG         decimal.Decimal                 `json:"pagibig"`
	TaxableIncome   decimal.Decimal                 `json:"taxable_income"`
	WithholdingTax  decimal.Decimal                 `json:"withholding_tax"`
	TotalDeductions decimal.Decimal                 `json:"total_deductions"`
	NetPay          decimal.Decimal                 `json:"net_pay"`
	Records         []attendance.AttendanceResponse `json:"records"`
}

func NewSummaryResponse(s Summary) SummaryResponse {
	w := s.Worker()
	records := s.Records()
	counts := statusCounts(records)

	resp := SummaryResponse{
		WorkerID:        w.ID,
		WorkerName:      w.FullName(),
		Position:        w.Position,
		Status:          string(w.Status),
		StartDate:       s.Period().Start.Format("2006-01-02"),
		EndDate:         s.Period().End.Format("2006-01-02"),
		DaysPresent:     s.DaysPresent(),
		DaysLate:        counts[attendance.StatusLate],
		DaysAbsent:      counts[attendance.StatusAbsent],
		TotalHours:      s.TotalHours(),
		OvertimeHours:   s.OvertimeHours(),
		LateMinutes:     s.LateMinutes(),
		GrossPay:        s.GrossPay(),
		SSS:             s.SSS(),
		PhilHealth:      s.PhilHealth(),
		PagIBIG:         s.PagIBIG(),
		TaxableIncome:   s.TaxableIncome(),
		WithholdingTax:  s.WithholdingTax(),
		TotalDeductions: s.TotalDeductions(),
		NetPay:          s.NetPay(),
		Records:         make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, attendance.NewAttendanceResponse(r))
	}
	return resp
}

type PayslipResponse struct {
	Summary  SummaryResponse `json:"summary"`
	Payslip  string          `json:"payslip"`
	Filename string          `json:"filename"`
	Saved    bool            `json:"saved"`
}

type BulkPayslipError struct {
	WorkerID int    `json:"worker_id"`
	Message  string `json:"message"`
}

type BulkPayslipResponse struct {
	RunID        string             `json:"run_id"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	SuccessCount int                `json:"success_count"`
	ErrorCount   int                `json:"error_count"`
	Files        []string           `json:"files"`
	Errors       []BulkPayslipError `json:"errors"`
}

type TaxTableResponse struct {
	Schedule string       `json:"schedule"`
	Brackets []TaxBracket `json:"brackets"`
}
