package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/motorph/payroll-backend-go/internal/pkg/storage"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	workerService  worker.WorkerService
	storage        storage.FileStorage
	loc            *time.Location
	now            func() time.Time
}

// NewPayrollService resolves named periods against the wall clock in loc;
// nil means UTC.
func NewPayrollService(
	attendanceRepo attendance.AttendanceRepository,
	workerService worker.WorkerService,
	fileStorage storage.FileStorage,
	loc *time.Location,
) payroll.PayrollService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollServiceImpl{
		attendanceRepo: attendanceRepo,
		workerService:  workerService,
		storage:        fileStorage,
		loc:            loc,
		now:            time.Now,
	}
}

func (s *PayrollServiceImpl) localNow() time.Time {
	return s.now().In(s.loc)
}

// ========== ENGINE ==========

// CalculatePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) CalculatePayroll(ctx context.Context, w worker.Worker, start, end time.Time) (payroll.Summary, error) {
	period, err := payroll.NewPeriod(start, end)
	if err != nil {
		return payroll.Summary{}, err
	}
	if w.BasicSalary.IsNegative() || w.GrossSemiMonthlyRate.IsNegative() {
		return payroll.Summary{}, payroll.ErrNegativeSalary
	}

	records, err := s.attendanceRepo.GetByDateRange(ctx, w.ID, period.Start, period.End)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to load attendance for worker %d: %w", w.ID, err)
	}

	grossPay := w.GrossPay()
	d := payroll.Deductions{
		SSS:        s.SSSDeduction(w.BasicSalary),
		PhilHealth: s.PhilHealthDeduction(w.BasicSalary),
		PagIBIG:    s.PagIBIGDeduction(w.BasicSalary),
	}
	d.WithholdingTax = s.WithholdingTax(grossPay.Sub(d.Contributions()))

	return payroll.NewSummary(w, period, records, grossPay, d), nil
}

// SSSDeduction implements payroll.PayrollService.
func (s *PayrollServiceImpl) SSSDeduction(monthlySalary decimal.Decimal) decimal.Decimal {
	return payroll.SSSDeduction(monthlySalary)
}

// PhilHealthDeduction implements payroll.PayrollService.
func (s *PayrollServiceImpl) PhilHealthDeduction(monthlySalary decimal.Decimal) decimal.Decimal {
	return payroll.PhilHealthDeduction(monthlySalary)
}

// PagIBIGDeduction implements payroll.PayrollService.
func (s *PayrollServiceImpl) PagIBIGDeduction(monthlySalary decimal.Decimal) decimal.Decimal {
	return payroll.PagIBIGDeduction(monthlySalary)
}

// WithholdingTax implements payroll.PayrollService.
func (s *PayrollServiceImpl) WithholdingTax(taxableIncome decimal.Decimal) decimal.Decimal {
	return payroll.WithholdingTax(taxableIncome)
}

// SavePayslipToFile implements payroll.PayrollService.
func (s *PayrollServiceImpl) SavePayslipToFile(ctx context.Context, summary payroll.Summary, filename string) bool {
	if filename == "" {
		p := summary.Period()
		filename = payroll.PayslipFilename(summary.Worker().ID, p.Start, p.End)
	}
	path, err := s.storage.Upload(ctx, strings.NewReader(payroll.Payslip(summary)), filename, storage.ContentTypeText)
	if err != nil {
		slog.Error("Failed to save payslip", "worker_id", summary.Worker().ID, "filename", filename, "error", err)
		return false
	}
	slog.Info("Payslip saved", "worker_id", summary.Worker().ID, "path", path)
	return true
}

// ========== PAYSLIPS ==========

// GeneratePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, req payroll.PayslipRequest) (payroll.PayslipResponse, error) {
	summary, err := s.summaryFor(ctx, req)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	p := summary.Period()
	resp := payroll.PayslipResponse{
		Summary:  payroll.NewSummaryResponse(summary),
		Payslip:  payroll.Payslip(summary),
		Filename: payroll.PayslipFilename(req.WorkerID, p.Start, p.End),
	}
	if req.Save {
		if !s.SavePayslipToFile(ctx, summary, resp.Filename) {
			return payroll.PayslipResponse{}, payroll.ErrPayslipNotSaved
		}
		resp.Saved = true
	}
	return resp, nil
}

// GenerateBulkPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) GenerateBulkPayslips(ctx context.Context, req payroll.BulkPayslipRequest) (payroll.BulkPayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkPayslipResponse{}, err
	}
	period, err := req.Resolve(s.localNow())
	if err != nil {
		return payroll.BulkPayslipResponse{}, err
	}
	ids, err := s.workerIDs(ctx, req.WorkerIDs)
	if err != nil {
		return payroll.BulkPayslipResponse{}, err
	}

	resp := payroll.BulkPayslipResponse{
		RunID:     uuid.NewString(),
		StartDate: period.Start.Format("2006-01-02"),
		EndDate:   period.End.Format("2006-01-02"),
		Files:     make([]string, 0, len(ids)),
		Errors:    make([]payroll.BulkPayslipError, 0),
	}
	logger := slog.With("run_id", resp.RunID)
	logger.Info("Bulk payslip run started", "workers", len(ids), "start", resp.StartDate, "end", resp.EndDate)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		summary, err := s.calculateFor(ctx, id, period)
		if err != nil {
			resp.ErrorCount++
			resp.Errors = append(resp.Errors, payroll.BulkPayslipError{WorkerID: id, Message: err.Error()})
			logger.Warn("Skipping worker in bulk payslip run", "worker_id", id, "error", err)
			continue
		}

		filename := payroll.PayslipFilename(id, period.Start, period.End)
		if !s.SavePayslipToFile(ctx, summary, filename) {
			resp.ErrorCount++
			resp.Errors = append(resp.Errors, payroll.BulkPayslipError{WorkerID: id, Message: payroll.ErrPayslipNotSaved.Error()})
			continue
		}
		resp.SuccessCount++
		resp.Files = append(resp.Files, filename)
	}

	logger.Info("Bulk payslip run finished", "success", resp.SuccessCount, "errors", resp.ErrorCount)
	return resp, nil
}

// ========== REPORTS ==========

// AttendanceReport implements payroll.PayrollService.
func (s *PayrollServiceImpl) AttendanceReport(ctx context.Context, req payroll.PayslipRequest) (string, error) {
	summary, err := s.summaryFor(ctx, req)
	if err != nil {
		return "", err
	}
	return payroll.AttendanceReport(summary), nil
}

// AttendanceStatus implements payroll.PayrollService.
func (s *PayrollServiceImpl) AttendanceStatus(ctx context.Context, req payroll.PayslipRequest) (string, error) {
	summary, err := s.summaryFor(ctx, req)
	if err != nil {
		return "", err
	}
	return payroll.AttendanceStatusReport(summary), nil
}

// TaxTable implements payroll.PayrollService.
func (s *PayrollServiceImpl) TaxTable() payroll.TaxTableResponse {
	return payroll.TaxTableResponse{
		Schedule: "semi-monthly",
		Brackets: payroll.TaxBrackets(),
	}
}

// ========== HELPERS ==========

func (s *PayrollServiceImpl) summaryFor(ctx context.Context, req payroll.PayslipRequest) (payroll.Summary, error) {
	if err := req.Validate(); err != nil {
		return payroll.Summary{}, err
	}
	period, err := req.Resolve(s.localNow())
	if err != nil {
		return payroll.Summary{}, err
	}
	return s.calculateFor(ctx, req.WorkerID, period)
}

func (s *PayrollServiceImpl) calculateFor(ctx context.Context, workerID int, period payroll.Period) (payroll.Summary, error) {
	w, err := s.workerService.Find(ctx, workerID)
	if err != nil {
		return payroll.Summary{}, err
	}
	return s.CalculatePayroll(ctx, w, period.Start, period.End)
}

// workerIDs returns the requested IDs, or every worker on file when none are given.
func (s *PayrollServiceImpl) workerIDs(ctx context.Context, requested []int) ([]int, error) {
	if len(requested) > 0 {
		return requested, nil
	}
	workers, err := s.workerService.ListWorkers(ctx)
	if err != nil {
		return nil, err
	}
	if len(workers) == 0 {
		return nil, payroll.ErrNoWorkers
	}
	ids := make([]int, 0, len(workers))
	for _, w := range workers {
		ids = append(ids, w.ID)
	}
	return ids, nil
}
