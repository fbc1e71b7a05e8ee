package response

import (
	"errors"
	"net/http"

	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/auth"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/motorph/payroll-backend-go/internal/domain/user"
	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/motorph/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccountNotLinked):
		Forbidden(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already exists")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrInvalidUserType):
		BadRequest(w, err.Error(), nil)

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrWorkerIDExists):
		Conflict(w, "Worker ID already exists")
	case errors.Is(err, worker.ErrInvalidWorkerID),
		errors.Is(err, worker.ErrEmptySearchQuery),
		errors.Is(err, worker.ErrInvalidStatus),
		errors.Is(err, worker.ErrNegativeAmount):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceExists),
		errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrClockOutBeforeClockIn),
		errors.Is(err, attendance.ErrClockOutWithoutClockIn),
		errors.Is(err, attendance.ErrInvalidClock):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrUnknownPeriod),
		errors.Is(err, payroll.ErrNegativeSalary),
		errors.Is(err, payroll.ErrNoWorkers):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrPayslipNotSaved):
		InternalServerError(w, "Payslip could not be saved")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
