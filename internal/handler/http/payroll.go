package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/motorph/payroll-backend-go/internal/handler/http/response"
	"github.com/motorph/payroll-backend-go/internal/pkg/storage"
)

type PayrollHandler interface {
	// Payroll runs
	Calculate(w http.ResponseWriter, r *http.Request)
	GeneratePayslip(w http.ResponseWriter, r *http.Request)
	GenerateBulkPayslips(w http.ResponseWriter, r *http.Request)
	ExportRegister(w http.ResponseWriter, r *http.Request)
	GetTaxTable(w http.ResponseWriter, r *http.Request)

	// Reports
	GetAttendanceReport(w http.ResponseWriter, r *http.Request)

	// Self service
	GetMyPayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func parsePeriodRequest(r *http.Request) payroll.PeriodRequest {
	q := r.URL.Query()
	return payroll.PeriodRequest{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Period:    q.Get("period"),
	}
}

// writePayslip answers with JSON, or the rendered text when format=text.
func writePayslip(w http.ResponseWriter, r *http.Request, resp payroll.PayslipResponse) {
	if r.URL.Query().Get("format") == "text" {
		response.Text(w, resp.Payslip)
		return
	}
	if len(resp.Summary.Records) == 0 {
		response.SuccessWithMessage(w, "No attendance records in the selected period", resp)
		return
	}
	response.Success(w, resp)
}

// ========== PAYROLL RUNS ==========

// Calculate implements PayrollHandler. Nothing is written to disk.
func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.PayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Save = false

	resp, err := h.payrollService.GeneratePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writePayslip(w, r, resp)
}

// GeneratePayslip implements PayrollHandler. The payslip is saved.
func (h *payrollHandlerImpl) GeneratePayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.PayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Save = true

	resp, err := h.payrollService.GeneratePayslip(r.Context(), req)
	if err != nil {
		slog.Error("GeneratePayslip service error", "worker_id", req.WorkerID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip saved to "+resp.Filename, resp)
}

// GenerateBulkPayslips implements PayrollHandler.
func (h *payrollHandlerImpl) GenerateBulkPayslips(w http.ResponseWriter, r *http.Request) {
	var req payroll.BulkPayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payrollService.GenerateBulkPayslips(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk payslip generation finished", resp)
}

// ExportRegister implements PayrollHandler.
func (h *payrollHandlerImpl) ExportRegister(w http.ResponseWriter, r *http.Request) {
	var req payroll.BulkPayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	data, filename, err := h.payrollService.ExportPayrollRegister(r.Context(), req)
	if err != nil {
		slog.Error("ExportPayrollRegister service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.File(w, filename, storage.ContentTypeXLSX, data)
}

// GetTaxTable implements PayrollHandler.
func (h *payrollHandlerImpl) GetTaxTable(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.payrollService.TaxTable())
}

// ========== REPORTS ==========

// GetAttendanceReport implements PayrollHandler. view=status renders the
// per-day status listing instead of the detailed report.
func (h *payrollHandlerImpl) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	workerID, err := workerIDParam(r, "workerID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := payroll.PayslipRequest{WorkerID: workerID, PeriodRequest: parsePeriodRequest(r)}

	var report string
	if r.URL.Query().Get("view") == "status" {
		report, err = h.payrollService.AttendanceStatus(r.Context(), req)
	} else {
		report, err = h.payrollService.AttendanceReport(r.Context(), req)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Text(w, report)
}

// ========== SELF SERVICE ==========

// GetMyPayslip implements PayrollHandler.
func (h *payrollHandlerImpl) GetMyPayslip(w http.ResponseWriter, r *http.Request) {
	workerID, err := callerWorkerID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := payroll.PayslipRequest{WorkerID: workerID, PeriodRequest: parsePeriodRequest(r)}
	resp, err := h.payrollService.GeneratePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writePayslip(w, r, resp)
}
