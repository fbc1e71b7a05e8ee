package payroll

import (
	"context"
	"time"

	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// PayrollService computes payroll summaries and renders payslips.
type PayrollService interface {
	// CalculatePayroll aggregates attendance in [start, end] and applies the
	// statutory deductions. No attendance yields an empty summary, not an error.
	CalculatePayroll(ctx context.Context, w worker.Worker, start, end time.Time) (Summary, error)

	SSSDeduction(monthlySalary decimal.Decimal) decimal.Decimal
	PhilHealthDeduction(monthlySalary decimal.Decimal) decimal.Decimal
	PagIBIGDeduction(monthlySalary decimal.Decimal) decimal.Decimal
	WithholdingTax(taxableIncome decimal.Decimal) decimal.Decimal

	// SavePayslipToFile writes the payslip text and reports success.
	SavePayslipToFile(ctx context.Context, s Summary, filename string) bool

	// GeneratePayslip resolves the worker and period, optionally saving the file
	GeneratePayslip(ctx context.Context, req PayslipRequest) (PayslipResponse, error)

	// GenerateBulkPayslips saves one payslip per worker; a failure for one
	// worker is recorded and the batch continues
	GenerateBulkPayslips(ctx context.Context, req BulkPayslipRequest) (BulkPayslipResponse, error)

	// ExportPayrollRegister builds an XLSX register for the selected workers
	ExportPayrollRegister(ctx context.Context, req BulkPayslipRequest) ([]byte, string, error)

	// AttendanceReport renders every record of a worker in the period
	AttendanceReport(ctx context.Context, req PayslipRequest) (string, error)

	// AttendanceStatus renders per-day status for a worker in the period
	AttendanceStatus(ctx context.Context, req PayslipRequest) (string, error)

	TaxTable() TaxTableResponse
}
