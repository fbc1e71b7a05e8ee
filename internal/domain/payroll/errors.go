package payroll

import "errors"

var (
	ErrInvalidPeriod   = errors.New("invalid payroll period: end date is before start date")
	ErrUnknownPeriod   = errors.New("period must be one of: first-half, second-half, previous-month")
	ErrNegativeSalary  = errors.New("worker salary and rates must not be negative")
	ErrPayslipNotSaved = errors.New("payslip could not be saved")
	ErrNoWorkers       = errors.New("no workers selected for payroll")
)
