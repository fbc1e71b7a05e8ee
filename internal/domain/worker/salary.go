package worker

import "github.com/shopspring/decimal"

// SalaryRule computes a worker's gross pay for one semi-monthly period.
type SalaryRule func(w Worker) decimal.Decimal

// SemiMonthlyRate pays the stored gross semi-monthly rate regardless of hours.
func SemiMonthlyRate(w Worker) decimal.Decimal {
	return w.GrossSemiMonthlyRate
}

var salaryRules = map[Status]SalaryRule{
	StatusRegular:      SemiMonthlyRate,
	StatusProbationary: SemiMonthlyRate,
	StatusContractual:  SemiMonthlyRate,
	// Part-time workers are also paid the flat rate; hourly scaling is not applied.
	StatusPartTime: SemiMonthlyRate,
}

// RuleFor returns the salary rule for a status, defaulting to SemiMonthlyRate.
func RuleFor(s Status) SalaryRule {
	if rule, ok := salaryRules[s]; ok {
		return rule
	}
	return SemiMonthlyRate
}

// GrossPay applies the rule registered for the worker's status.
func (w Worker) GrossPay() decimal.Decimal {
	return RuleFor(w.Status)(w)
}
