package worker

import (
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultDepartment = "IT Department"

type Worker struct {
	ID          int
	LastName    string
	FirstName   string
	Birthday    string // MM/dd/yyyy as kept in the employee file
	Address     string
	PhoneNumber string

	// Government numbers
	SSSNumber        string
	PhilHealthNumber string
	TINNumber        string
	PagIBIGNumber    string

	Status     Status
	Position   string
	Supervisor string
	Department string

	BasicSalary          decimal.Decimal
	RiceSubsidy          decimal.Decimal
	PhoneAllowance       decimal.Decimal
	ClothingAllowance    decimal.Decimal
	GrossSemiMonthlyRate decimal.Decimal
	HourlyRate           decimal.Decimal
}

func (w Worker) FullName() string {
	return w.FirstName + " " + w.LastName
}

// DisplayName is the "Last, First" form used on payslips.
func (w Worker) DisplayName() string {
	return w.LastName + ", " + w.FirstName
}

// HasNegativeMoney reports whether any monetary field is below zero.
func (w Worker) HasNegativeMoney() bool {
	for _, d := range []decimal.Decimal{
		w.BasicSalary, w.RiceSubsidy, w.PhoneAllowance,
		w.ClothingAllowance, w.GrossSemiMonthlyRate, w.HourlyRate,
	} {
		if d.IsNegative() {
			return true
		}
	}
	return false
}

// TotalAllowances is rice subsidy plus phone and clothing allowances.
func (w Worker) TotalAllowances() decimal.Decimal {
	return w.RiceSubsidy.Add(w.PhoneAllowance).Add(w.ClothingAllowance)
}

type Status string

const (
	StatusRegular      Status = "Regular"
	StatusProbationary Status = "Probationary"
	StatusContractual  Status = "Contractual"
	StatusPartTime     Status = "Part-Time"
)

var Statuses = []Status{StatusRegular, StatusProbationary, StatusContractual, StatusPartTime}

// ParseStatus accepts display names case-insensitively, including the
// "Part Time" and "parttime" spellings found in older files.
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", " ", "", "_", "").Replace(key)
	switch key {
	case "regular":
		return StatusRegular, nil
	case "probationary", "probation":
		return StatusProbationary, nil
	case "contractual", "contract":
		return StatusContractual, nil
	case "parttime":
		return StatusPartTime, nil
	}
	return "", ErrInvalidStatus
}
