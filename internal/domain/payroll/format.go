package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

const (
	CurrencyLabel = "PHP"

	longDateLayout   = "January 02, 2006"
	recordDateLayout = "01/02/2006"
	fileDateLayout   = "01022006"
)

// FormatCurrency renders an amount as "PHP 1,234.56".
func FormatCurrency(amount decimal.Decimal) string {
	return CurrencyLabel + " " + groupThousands(amount.StringFixed(2))
}

func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + b.String()
}

// PayslipFilename is Payslip_<id>_<MMddyyyy>_<MMddyyyy>.txt.
func PayslipFilename(workerID int, start, end time.Time) string {
	return fmt.Sprintf("Payslip_%d_%s_%s.txt", workerID, start.Format(fileDateLayout), end.Format(fileDateLayout))
}

// Payslip renders the full payslip text for a summary.
func Payslip(s Summary) string {
	var b strings.Builder
	w := s.Worker()
	p := s.Period()

	b.WriteString("================ MOTORPH PAYROLL SYSTEM ================\n")
	b.WriteString("                    PAYSLIP DETAIL\n")
	b.WriteString("========================================================\n")
	fmt.Fprintf(&b, "Pay Period: %s - %s\n", p.Start.Format(longDateLayout), p.End.Format(longDateLayout))

	b.WriteString("\nEmployee Details:\n")
	fmt.Fprintf(&b, "ID: %d\n", w.ID)
	fmt.Fprintf(&b, "Name: %s\n", w.DisplayName())
	fmt.Fprintf(&b, "Position: %s\n", w.Position)
	fmt.Fprintf(&b, "Department: %s\n", w.Department)
	fmt.Fprintf(&b, "Status: %s\n", w.Status)

	b.WriteString("\nGovernment Numbers:\n")
	fmt.Fprintf(&b, "SSS: %s\n", w.SSSNumber)
	fmt.Fprintf(&b, "PhilHealth: %s\n", w.PhilHealthNumber)
	fmt.Fprintf(&b, "TIN: %s\n", w.TINNumber)
	fmt.Fprintf(&b, "Pag-IBIG: %s\n", w.PagIBIGNumber)

	b.WriteString("\nAttendance Summary:\n")
	fmt.Fprintf(&b, "Days Present:       %d days\n", s.DaysPresent())
	fmt.Fprintf(&b, "Total Hours Worked: %.2f hours\n", s.TotalHours())
	fmt.Fprintf(&b, "Overtime Hours:     %.2f hours\n", s.OvertimeHours())
	fmt.Fprintf(&b, "Late Minutes:       %.2f minutes\n", s.LateMinutes())

	b.WriteString("\nDetailed Attendance Records:\n")
	fmt.Fprintf(&b, "%-12s %-9s %-9s %-12s %s\n", "Date", "Time In", "Time Out", "Total Hours", "OT Hours")
	b.WriteString("--------------------------------------------------------\n")
	for _, r := range s.Records() {
		fmt.Fprintf(&b, "%-12s %-9s %-9s %-12.2f %.2f\n",
			r.Date.Format(recordDateLayout), r.FormattedTimeIn(), r.FormattedTimeOut(),
			r.TotalHours(), r.OvertimeHours())
	}

	b.WriteString("\nEarnings:\n")
	fmt.Fprintf(&b, "Basic Salary:       %s\n", FormatCurrency(w.BasicSalary))
	fmt.Fprintf(&b, "Rice Subsidy:       %s\n", FormatCurrency(w.RiceSubsidy))
	fmt.Fprintf(&b, "Phone Allowance:    %s\n", FormatCurrency(w.PhoneAllowance))
	fmt.Fprintf(&b, "Clothing Allowance: %s\n", FormatCurrency(w.ClothingAllowance))
	fmt.Fprintf(&b, "Gross Pay:          %s\n", FormatCurrency(s.GrossPay()))

	b.WriteString("\nDeductions:\n")
	fmt.Fprintf(&b, "SSS:                %s\n", FormatCurrency(s.SSS()))
	fmt.Fprintf(&b, "PhilHealth:         %s\n", FormatCurrency(s.PhilHealth()))
	fmt.Fprintf(&b, "Pag-IBIG:           %s\n", FormatCurrency(s.PagIBIG()))
	fmt.Fprintf(&b, "Withholding Tax:    %s\n", FormatCurrency(s.WithholdingTax()))
	fmt.Fprintf(&b, "Total Deductions:   %s\n", FormatCurrency(s.TotalDeductions()))

	b.WriteString("--------------------------------------------------------\n")
	fmt.Fprintf(&b, "NET PAY:            %s\n", FormatCurrency(s.NetPay()))
	b.WriteString("========================================================\n")
	b.WriteString("          This is a system-generated payslip.\n")

	return b.String()
}

// AttendanceStatusReport renders per-day status for the summary's period.
func AttendanceStatusReport(s Summary) string {
	var b strings.Builder
	w := s.Worker()

	b.WriteString("================ ATTENDANCE STATUS ================\n")
	fmt.Fprintf(&b, "Employee ID: %d\n", w.ID)
	fmt.Fprintf(&b, "Name: %s\n", w.DisplayName())
	fmt.Fprintf(&b, "Position: %s\n", w.Position)
	fmt.Fprintf(&b, "Status: %s\n", w.Status)
	b.WriteString("===================================================\n")

	records := s.Records()
	if len(records) == 0 {
		b.WriteString("No attendance records found for this period.\n")
		b.WriteString("===================================================\n")
		return b.String()
	}

	b.WriteString("\nAttendance Summary:\n")
	fmt.Fprintf(&b, "Days Present: %d days\n", s.DaysPresent())
	fmt.Fprintf(&b, "Total Hours: %.2f hours\n", s.TotalHours())
	fmt.Fprintf(&b, "Overtime Hours: %.2f hours\n", s.OvertimeHours())
	fmt.Fprintf(&b, "Late Minutes: %.2f minutes\n", s.LateMinutes())

	b.WriteString("\nDetailed Records:\n")
	fmt.Fprintf(&b, "%-12s | %-8s | %-8s | %-6s | %-8s | %s\n",
		"Date", "Time In", "Time Out", "Hours", "OT Hours", "Status")
	b.WriteString("------------------------------------------------------------\n")
	for _, r := range records {
		fmt.Fprintf(&b, "%-12s | %-8s | %-8s | %6.2f | %8.2f | %s\n",
			r.Date.Format(recordDateLayout), r.FormattedTimeIn(), r.FormattedTimeOut(),
			r.TotalHours(), r.OvertimeHours(), r.Status())
	}
	b.WriteString("===================================================\n")

	return b.String()
}

// AttendanceReport lists every record with lateness and a totals line.
func AttendanceReport(s Summary) string {
	var b strings.Builder
	w := s.Worker()

	b.WriteString("================ ALL ATTENDANCE RECORDS ================\n")
	fmt.Fprintf(&b, "Employee ID: %d\n", w.ID)
	fmt.Fprintf(&b, "Name: %s\n", w.DisplayName())
	fmt.Fprintf(&b, "Position: %s\n", w.Position)
	b.WriteString("========================================================\n")

	records := s.Records()
	if len(records) == 0 {
		b.WriteString("No attendance records found for this employee.\n")
		b.WriteString("========================================================\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%-12s | %-8s | %-8s | %-6s | %-8s | %-10s | %s\n",
		"Date", "Time In", "Time Out", "Hours", "OT Hours", "Late (min)", "Status")
	b.WriteString("----------------------------------------------------------------------\n")
	for _, r := range records {
		fmt.Fprintf(&b, "%-12s | %-8s | %-8s | %6.2f | %8.2f | %10.0f | %s\n",
			r.Date.Format(recordDateLayout), r.FormattedTimeIn(), r.FormattedTimeOut(),
			r.TotalHours(), r.OvertimeHours(), r.LateMinutes(), r.Status())
	}
	b.WriteString("----------------------------------------------------------------------\n")
	fmt.Fprintf(&b, "TOTAL: %d records | %.2f hours | %.2f OT hours | %.0f late minutes\n",
		len(records), s.TotalHours(), s.OvertimeHours(), s.LateMinutes())
	b.WriteString("========================================================\n")

	return b.String()
}

// statusCounts tallies records per derived status.
func statusCounts(records []attendance.Record) map[attendance.Status]int {
	counts := make(map[attendance.Status]int, 3)
	for _, r := range records {
		counts[r.Status()]++
	}
	return counts
}
