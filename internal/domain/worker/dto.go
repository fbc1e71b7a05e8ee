package worker

import (
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// WorkerRequest is the body of create and update calls. ID is optional on
// create; zero means "assign the next free ID".
type WorkerRequest struct {
	ID                   int             `json:"id"`
	LastName             string          `json:"last_name"`
	FirstName            string          `json:"first_name"`
	Birthday             string          `json:"birthday"`
	Address              string          `json:"address"`
	PhoneNumber          string          `json:"phone_number"`
	SSSNumber            string          `json:"sss_number"`
	PhilHealthNumber     string          `json:"philhealth_number"`
	TINNumber            string          `json:"tin_number"`
	PagIBIGNumber        string          `json:"pagibig_number"`
	Status               string          `json:"status"`
	Position             string          `json:"position"`
	Supervisor           string          `json:"supervisor"`
	Department           string          `json:"department"`
	BasicSalary          decimal.Decimal `json:"basic_salary"`
	RiceSubsidy          decimal.Decimal `json:"rice_subsidy"`
	PhoneAllowance       decimal.Decimal `json:"phone_allowance"`
	ClothingAllowance    decimal.Decimal `json:"clothing_allowance"`
	GrossSemiMonthlyRate decimal.Decimal `json:"gross_semi_monthly_rate"`
	HourlyRate           decimal.Decimal `json:"hourly_rate"`
}

func (r *WorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a positive number",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if _, err := ParseStatus(r.Status); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: err.Error(),
		})
	}
	if !validator.IsEmpty(r.PhoneNumber) && !validator.IsValidPhoneNumber(r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "phone_number must be 9-12 digits",
		})
	}
	if !validator.IsEmpty(r.SSSNumber) && !validator.IsValidSSSNumber(r.SSSNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "sss_number",
			Message: "sss_number must look like 00-0000000-0",
		})
	}
	if !validator.IsEmpty(r.TINNumber) && !validator.IsValidTIN(r.TINNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "tin_number",
			Message: "tin_number must look like 000-000-000-000",
		})
	}
	if !validator.IsEmpty(r.PhilHealthNumber) && !validator.IsValidTwelveDigitNumber(r.PhilHealthNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "philhealth_number",
			Message: "philhealth_number must be 12 digits",
		})
	}
	if !validator.IsEmpty(r.PagIBIGNumber) && !validator.IsValidTwelveDigitNumber(r.PagIBIGNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "pagibig_number",
			Message: "pagibig_number must be 12 digits",
		})
	}

	money := []struct {
		field string
		value decimal.Decimal
	}{
		{"basic_salary", r.BasicSalary},
		{"rice_subsidy", r.RiceSubsidy},
		{"phone_allowance", r.PhoneAllowance},
		{"clothing_allowance", r.ClothingAllowance},
		{"gross_semi_monthly_rate", r.GrossSemiMonthlyRate},
		{"hourly_rate", r.HourlyRate},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   m.field,
				Message: m.field + " must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToWorker converts a validated request.
func (r *WorkerRequest) ToWorker() Worker {
	status, _ := ParseStatus(r.Status)
	department := r.Department
	if validator.IsEmpty(department) {
		department = DefaultDepartment
	}
	return Worker{
		ID:                   r.ID,
		LastName:             r.LastName,
		FirstName:            r.FirstName,
		Birthday:             r.Birthday,
		Address:              r.Address,
		PhoneNumber:          r.PhoneNumber,
		SSSNumber:            r.SSSNumber,
		PhilHealthNumber:     r.PhilHealthNumber,
		TINNumber:            r.TINNumber,
		PagIBIGNumber:        r.PagIBIGNumber,
		Status:               status,
		Position:             r.Position,
		Supervisor:           r.Supervisor,
		Department:           department,
		BasicSalary:          r.BasicSalary,
		RiceSubsidy:          r.RiceSubsidy,
		PhoneAllowance:       r.PhoneAllowance,
		ClothingAllowance:    r.ClothingAllowance,
		GrossSemiMonthlyRate: r.GrossSemiMonthlyRate,
		HourlyRate:           r.HourlyRate,
	}
}

type WorkerResponse struct {
	ID                   int             `json:"id"`
	LastName             string          `json:"last_name"`
	FirstName            string          `json:"first_name"`
	FullName             string          `json:"full_name"`
	Birthday             string          `json:"birthday"`
	Address              string          `json:"address"`
	PhoneNumber          string          `json:"phone_number"`
	SSSNumber            string          `json:"sss_number"`
	PhilHealthNumber     string          `json:"philhealth_number"`
	TINNumber            string          `json:"tin_number"`
	PagIBIGNumber        string          `json:"pagibig_number"`
	Status               string          `json:"status"`
	Position             string          `json:"position"`
	Supervisor           string          `json:"supervisor"`
	Department           string          `json:"department"`
	BasicSalary          decimal.Decimal `json:"basic_salary"`
	RiceSubsidy          decimal.Decimal `json:"rice_subsidy"`
	PhoneAllowance       decimal.Decimal `json:"phone_allowance"`
	ClothingAllowance    decimal.Decimal `json:"clothing_allowance"`
	GrossSemiMonthlyRate decimal.Decimal `json:"gross_semi_monthly_rate"`
	HourlyRate           decimal.Decimal `json:"hourly_rate"`
}

func NewWorkerResponse(w Worker) WorkerResponse {
	return WorkerResponse{
		ID:                   w.ID,
		LastName:             w.LastName,
		FirstName:            w.FirstName,
		FullName:             w.FullName(),
		Birthday:             w.Birthday,
		Address:              w.Address,
		PhoneNumber:          w.PhoneNumber,
		SSSNumber:            w.SSSNumber,
		PhilHealthNumber:     w.PhilHealthNumber,
		TINNumber:            w.TINNumber,
		PagIBIGNumber:        w.PagIBIGNumber,
		Status:               string(w.Status),
		Position:             w.Position,
		Supervisor:           w.Supervisor,
		Department:           w.Department,
		BasicSalary:          w.BasicSalary,
		RiceSubsidy:          w.RiceSubsidy,
		PhoneAllowance:       w.PhoneAllowance,
		ClothingAllowance:    w.ClothingAllowance,
		GrossSemiMonthlyRate: w.GrossSemiMonthlyRate,
		HourlyRate:           w.HourlyRate,
	}
}
