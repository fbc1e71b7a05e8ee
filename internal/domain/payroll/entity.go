package payroll

import (
	"sort"

	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// Deductions are the four amounts withheld from gross pay.
type Deductions struct {
	SSS            decimal.Decimal
	PhilHealth     decimal.Decimal
	PagIBIG        decimal.Decimal
	WithholdingTax decimal.Decimal
}

// Contributions is SSS plus PhilHealth plus Pag-IBIG.
func (d Deductions) Contributions() decimal.Decimal {
	return d.SSS.Add(d.PhilHealth).Add(d.PagIBIG)
}

func (d Deductions) Total() decimal.Decimal {
	return d.Contributions().Add(d.WithholdingTax)
}

// Summary is the immutable result of one payroll computation for one worker
// and period. Aggregates and totals are fixed at construction.
type Summary struct {
	worker        worker.Worker
	records       []attendance.Record
	period        Period
	totalHours    float64
	overtimeHours float64
	lateMinutes   float64
	daysPresent   int
	grossPay      decimal.Decimal
	deductions    Deductions
}

// NewSummary aggregates the records and derives totals so that
// NetPay = GrossPay - TotalDeductions always holds.
func NewSummary(w worker.Worker, period Period, records []attendance.Record, grossPay decimal.Decimal, d Deductions) Summary {
	rs := attendance.CloneRecords(records)
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Date.Before(rs[j].Date) })

	s := Summary{
		worker:     w,
		records:    rs,
		period:     period,
		grossPay:   grossPay,
		deductions: d,
	}
	for _, r := range rs {
		s.totalHours += r.TotalHours()
		s.overtimeHours += r.OvertimeHours()
		s.lateMinutes += r.LateMinutes()
		if r.Status() != attendance.StatusAbsent {
			s.daysPresent++
		}
	}
	return s
}

func (s Summary) Worker() worker.Worker  { return s.worker }
func (s Summary) Period() Period         { return s.period }
func (s Summary) TotalHours() float64    { return s.totalHours }
func (s Summary) OvertimeHours() float64 { return s.overtimeHours }
func (s Summary) LateMinutes() float64   { return s.lateMinutes }
func (s Summary) DaysPresent() int       { return s.daysPresent }

// Records returns a deep copy of the attendance records, sorted by date.
func (s Summary) Records() []attendance.Record {
	return attendance.CloneRecords(s.records)
}

func (s Summary) GrossPay() decimal.Decimal        { return s.grossPay }
func (s Summary) SSS() decimal.Decimal             { return s.deductions.SSS }
func (s Summary) PhilHealth() decimal.Decimal      { return s.deductions.PhilHealth }
func (s Summary) PagIBIG() decimal.Decimal         { return s.deductions.PagIBIG }
func (s Summary) WithholdingTax() decimal.Decimal  { return s.deductions.WithholdingTax }
func (s Summary) Deductions() Deductions           { return s.deductions }
func (s Summary) TotalDeductions() decimal.Decimal { return s.deductions.Total() }

func (s Summary) NetPay() decimal.Decimal {
	return s.grossPay.Sub(s.TotalDeductions())
}

// TaxableIncome is gross pay less the statutory contributions.
func (s Summary) TaxableIncome() decimal.Decimal {
	return s.grossPay.Sub(s.deductions.Contributions())
}
