package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/domain/attendance"
	"github.com/motorph/payroll-backend-go/internal/domain/user"
	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/motorph/payroll-backend-go/internal/pkg/jwt"
	"github.com/motorph/payroll-backend-go/internal/pkg/storage"
	"github.com/motorph/payroll-backend-go/internal/repository/csvfile"
	attendanceService "github.com/motorph/payroll-backend-go/internal/service/attendance"
	authService "github.com/motorph/payroll-backend-go/internal/service/auth"
	payrollService "github.com/motorph/payroll-backend-go/internal/service/payroll"
	workerService "github.com/motorph/payroll-backend-go/internal/service/worker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestAccessExp = "1h"
	handlerTestSecret    = "test-secret-key-for-jwt"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		TotalItems int `json:"total_items"`
	} `json:"meta"`
}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	workerRepo, err := csvfile.NewWorkerRepository(filepath.Join(dir, "employees.csv"))
	require.NoError(t, err)
	require.NoError(t, workerRepo.Add(ctx, worker.Worker{
		ID: 10001, LastName: "Garcia", FirstName: "Manuel III", Status: worker.StatusRegular,
		Position: "Chief Executive Officer", Department: worker.DefaultDepartment,
		BasicSalary:          decimal.RequireFromString("90000"),
		GrossSemiMonthlyRate: decimal.RequireFromString("45000"),
		HourlyRate:           decimal.RequireFromString("535.71"),
	}))

	attendanceRepo, err := csvfile.NewAttendanceRepository(filepath.Join(dir, "attendance.csv"))
	require.NoError(t, err)
	march := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, attendanceRepo.Add(ctx, attendance.NewRecord(10001, march(4), attendance.NewClock(8, 0).Ptr(), attendance.NewClock(17, 0).Ptr())))
	require.NoError(t, attendanceRepo.Add(ctx, attendance.NewRecord(10001, march(5), attendance.NewClock(8, 30).Ptr(), attendance.NewClock(19, 0).Ptr())))

	userRepo, err := csvfile.NewUserRepository(filepath.Join(dir, "user.csv"))
	require.NoError(t, err)
	require.NoError(t, userRepo.Add(ctx, user.User{Username: "admin", Password: "admin123", Type: user.TypeAdmin}))
	require.NoError(t, userRepo.Add(ctx, user.User{Username: "10001", Password: "password", Type: user.TypeUser}))

	store, err := storage.NewLocalStorage(filepath.Join(dir, "payslips"))
	require.NoError(t, err)

	jwtSvc, err := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	require.NoError(t, err)

	workerSvc := workerService.NewWorkerService(workerRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, workerRepo, time.UTC)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, workerSvc, store, nil)
	authSvc := authService.NewAuthService(userRepo, workerRepo, jwtSvc)

	cfg := &config.Config{App: config.AppConfig{Env: "test", LogLevel: "error"}}
	return NewRouter(cfg, jwtSvc,
		NewAuthHandler(authSvc),
		NewWorkerHandler(workerSvc),
		NewAttendanceHandler(attendanceSvc),
		NewPayrollHandler(payrollSvc),
	)
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

// ===== AUTH =====

func TestAuthHandler_Login(t *testing.T) {
	router := newTestRouter(t)

	t.Run("admin", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": "admin", "password": "admin123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var token struct {
			Role     string `json:"role"`
			WorkerID *int   `json:"worker_id"`
		}
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &token))
		assert.Equal(t, "admin", token.Role)
		assert.Nil(t, token.WorkerID)
	})

	t.Run("employee carries worker id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": "10001", "password": "password",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var token struct {
			Role     string `json:"role"`
			WorkerID *int   `json:"worker_id"`
		}
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &token))
		assert.Equal(t, "employee", token.Role)
		require.NotNil(t, token.WorkerID)
		assert.Equal(t, 10001, *token.WorkerID)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": "admin", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decode(t, rec)
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Details, "username")
		assert.Contains(t, resp.Error.Details, "password")
	})
}

func TestAuthHandler_LogoutRevokesToken(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin123")

	rec := doRequest(t, router, http.MethodGet, "/api/v1/workers", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/workers", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Accounts(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin123")

	rec := doRequest(t, router, http.MethodPost, "/api/v1/accounts", token, map[string]string{
		"username": "payroll", "password": "s3cret", "user_type": "admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/api/v1/accounts", token, map[string]string{
		"username": "payroll", "password": "s3cret", "user_type": "admin",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// new accounts are hashed and can log in
	login(t, router, "payroll", "s3cret")

	rec = doRequest(t, router, http.MethodGet, "/api/v1/accounts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalItems)

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/accounts/payroll", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/accounts/payroll", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ===== ACCESS CONTROL =====

func TestRouter_AccessControl(t *testing.T) {
	router := newTestRouter(t)
	adminToken := login(t, router, "admin", "admin123")
	employeeToken := login(t, router, "10001", "password")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token", http.MethodGet, "/api/v1/workers", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/v1/workers", "not-a-jwt", http.StatusUnauthorized},
		{"employee on admin route", http.MethodGet, "/api/v1/workers", employeeToken, http.StatusForbidden},
		{"employee on payroll run", http.MethodGet, "/api/v1/payroll/tax-table", employeeToken, http.StatusForbidden},
		{"admin without worker on self service", http.MethodGet, "/api/v1/me", adminToken, http.StatusForbidden},
		{"employee profile", http.MethodGet, "/api/v1/me", employeeToken, http.StatusOK},
		{"admin tax table", http.MethodGet, "/api/v1/payroll/tax-table", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

// ===== WORKERS =====

func TestWorkerHandler_CRUD(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin123")

	rec := doRequest(t, router, http.MethodGet, "/api/v1/workers/next-id", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var next struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &next))
	assert.Equal(t, 10002, next.ID)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/workers", token, map[string]any{
		"last_name":               "Lim",
		"first_name":              "Antonio",
		"status":                  "Probationary",
		"position":                "Account Manager",
		"basic_salary":            "20000",
		"gross_semi_monthly_rate": "10000",
		"hourly_rate":             "119.05",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/v1/workers/10002", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var created worker.WorkerResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, "Antonio Lim", created.FullName)
	assert.Equal(t, worker.DefaultDepartment, created.Department)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/workers/search?q=lim", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode(t, rec).Meta.TotalItems)

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/workers/10002", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/workers/10002", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkerHandler_Errors(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin123")

	rec := doRequest(t, router, http.MethodGet, "/api/v1/workers/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/workers", token, map[string]any{"status": "Intern"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/workers/search", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ===== ATTENDANCE =====

func TestAttendanceHandler_ClockInOut(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "10001", "password")

	rec := doRequest(t, router, http.MethodGet, "/api/v1/me/attendance/today", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/me/clock-out", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/me/clock-in", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/api/v1/me/clock-in", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/me/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var today attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &today))
	assert.Equal(t, 10001, today.WorkerID)
	assert.NotNil(t, today.TimeIn)
	assert.Nil(t, today.TimeOut)
}

func TestAttendanceHandler_AdminManagement(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin123")

	in, out := "08:15", "17:00"
	rec := doRequest(t, router, http.MethodPost, "/api/v1/attendance", token, attendance.RecordRequest{
		WorkerID: 10001, Date: "2024-03-06", TimeIn: &in, TimeOut: &out,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, "LATE", created.Status)
	assert.Equal(t, 15.0, created.LateMinutes)

	early := "07:00"
	rec = doRequest(t, router, http.MethodPut, "/api/v1/attendance/10001/2024-03-06", token, attendance.RecordRequest{
		TimeIn: &in, TimeOut: &early,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/attendance?worker_id=10001&start_date=2024-03-01&end_date=2024-03-15", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list attendance.ListAttendanceResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &list))
	assert.Equal(t, 3, list.TotalCount)

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/attendance/10001/2024-03-06", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/attendance?status=BOGUS", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAttendanceHandler_Report(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin123")

	rec := doRequest(t, router, http.MethodGet, "/api/v1/attendance/10001/report?start_date=2024-03-01&end_date=2024-03-15", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "TOTAL: 2 records")
}

// ===== PAYROLL =====

func TestPayrollHandler_Calculate(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin123")

	rec := doRequest(t, router, http.MethodPost, "/api/v1/payroll/calculate", token, map[string]any{
		"worker_id":  10001,
		"start_date": "2024-03-01",
		"end_date":   "2024-03-15",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Summary struct {
			DaysPresent    int             `json:"days_present"`
			GrossPay       decimal.Decimal `json:"gross_pay"`
			WithholdingTax decimal.Decimal `json:"withholding_tax"`
			NetPay         decimal.Decimal `json:"net_pay"`
		} `json:"summary"`
		Saved bool `json:"saved"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &resp))
	assert.Equal(t, 2, resp.Summary.DaysPresent)
	assert.True(t, resp.Summary.GrossPay.Equal(decimal.RequireFromString("45000")))
	assert.True(t, resp.Summary.WithholdingTax.Equal(decimal.RequireFromString("8009.27")))
	assert.True(t, resp.Summary.NetPay.Equal(decimal.RequireFromString("33965.73")))
	assert.False(t, resp.Saved)
}

func TestPayrollHandler_CalculateErrors(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin123")

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"unknown worker", map[string]any{"worker_id": 99999, "period": "first-half"}, http.StatusNotFound},
		{"reversed dates", map[string]any{"worker_id": 10001, "start_date": "2024-03-15", "end_date": "2024-03-01"}, http.StatusUnprocessableEntity},
		{"unknown period", map[string]any{"worker_id": 10001, "period": "weekly"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/v1/payroll/calculate", token, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestPayrollHandler_EmptyPeriod(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin123")

	rec := doRequest(t, router, http.MethodPost, "/api/v1/payroll/calculate", token, map[string]any{
		"worker_id":  10001,
		"start_date": "2024-04-01",
		"end_date":   "2024-04-15",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No attendance records in the selected period", decode(t, rec).Message)
}

func TestPayrollHandler_PayslipsAndExport(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin123")

	rec := doRequest(t, router, http.MethodPost, "/api/v1/payroll/payslips", token, map[string]any{
		"worker_id":  10001,
		"start_date": "2024-03-01",
		"end_date":   "2024-03-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, decode(t, rec).Message, "Payslip_10001_03012024_03152024.txt")

	rec = doRequest(t, router, http.MethodPost, "/api/v1/payroll/payslips/bulk", token, map[string]any{
		"worker_ids": []int{10001, 99999},
		"start_date": "2024-03-01",
		"end_date":   "2024-03-15",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var bulk struct {
		SuccessCount int `json:"success_count"`
		ErrorCount   int `json:"error_count"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &bulk))
	assert.Equal(t, 1, bulk.SuccessCount)
	assert.Equal(t, 1, bulk.ErrorCount)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/payroll/export", token, map[string]any{
		"start_date": "2024-03-01",
		"end_date":   "2024-03-15",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, storage.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "PayrollRegister_03012024_03152024.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestPayrollHandler_MyPayslip(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "10001", "password")

	rec := doRequest(t, router, http.MethodGet, "/api/v1/me/payslip?start_date=2024-03-01&end_date=2024-03-15&format=text", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.Contains(t, body, "PAYSLIP DETAIL")
	assert.Contains(t, body, "ID: 10001")
	assert.Contains(t, body, "Garcia, Manuel III")
}
