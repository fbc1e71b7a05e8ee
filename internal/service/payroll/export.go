package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/motorph/payroll-backend-go/internal/pkg/export"
	"github.com/shopspring/decimal"
)

var registerColumns = []export.Column{
	{Header: "Employee #", Width: 12},
	{Header: "Name", Width: 28},
	{Header: "Position", Width: 28},
	{Header: "Status", Width: 14},
	{Header: "Days Present", Width: 13},
	{Header: "Total Hours", Width: 12},
	{Header: "OT Hours", Width: 10},
	{Header: "Late Minutes", Width: 13},
	{Header: "Gross Pay", Width: 14, Money: true},
	{Header: "SSS", Width: 12, Money: true},
	{Header: "PhilHealth", Width: 12, Money: true},
	{Header: "Pag-IBIG", Width: 12, Money: true},
	{Header: "Withholding Tax", Width: 16, Money: true},
	{Header: "Total Deductions", Width: 17, Money: true},
	{Header: "Net Pay", Width: 14, Money: true},
}

// ExportPayrollRegister implements payroll.PayrollService. Workers that
// cannot be calculated are listed on a second sheet.
func (s *PayrollServiceImpl) ExportPayrollRegister(ctx context.Context, req payroll.BulkPayslipRequest) ([]byte, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}
	period, err := req.Resolve(s.localNow())
	if err != nil {
		return nil, "", err
	}
	ids, err := s.workerIDs(ctx, req.WorkerIDs)
	if err != nil {
		return nil, "", err
	}

	register := export.Sheet{Name: "Payroll Register", Columns: registerColumns}
	failures := export.Sheet{
		Name:    "Errors",
		Columns: []export.Column{{Header: "Employee #", Width: 12}, {Header: "Message", Width: 60}},
	}

	var gross, deductions, net decimal.Decimal
	for _, id := range ids {
		summary, err := s.calculateFor(ctx, id, period)
		if err != nil {
			failures.Rows = append(failures.Rows, []any{id, err.Error()})
			continue
		}
		w := summary.Worker()
		register.Rows = append(register.Rows, []any{
			w.ID,
			w.DisplayName(),
			w.Position,
			string(w.Status),
			summary.DaysPresent(),
			summary.TotalHours(),
			summary.OvertimeHours(),
			summary.LateMinutes(),
			summary.GrossPay().InexactFloat64(),
			summary.SSS().InexactFloat64(),
			summary.PhilHealth().InexactFloat64(),
			summary.PagIBIG().InexactFloat64(),
			summary.WithholdingTax().InexactFloat64(),
			summary.TotalDeductions().InexactFloat64(),
			summary.NetPay().InexactFloat64(),
		})
		gross = gross.Add(summary.GrossPay())
		deductions = deductions.Add(summary.TotalDeductions())
		net = net.Add(summary.NetPay())
	}
	register.Totals = []any{
		"TOTAL", "", "", "", "", "", "", "",
		gross.InexactFloat64(), "", "", "", "",
		deductions.InexactFloat64(), net.InexactFloat64(),
	}

	sheets := []export.Sheet{register}
	if len(failures.Rows) > 0 {
		sheets = append(sheets, failures)
	}
	data, err := export.XLSXBytes(sheets...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build payroll register: %w", err)
	}

	filename := fmt.Sprintf("PayrollRegister_%s_%s.xlsx", period.Start.Format("01022006"), period.End.Format("01022006"))
	slog.Info("Payroll register exported", "filename", filename, "workers", len(register.Rows), "errors", len(failures.Rows))
	return data, filename, nil
}
