package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/motorph/payroll-backend-go/internal/domain/worker"
	"github.com/motorph/payroll-backend-go/internal/handler/http/response"
)

type WorkerHandler interface {
	ListWorkers(w http.ResponseWriter, r *http.Request)
	SearchWorkers(w http.ResponseWriter, r *http.Request)
	GetWorker(w http.ResponseWriter, r *http.Request)
	CreateWorker(w http.ResponseWriter, r *http.Request)
	UpdateWorker(w http.ResponseWriter, r *http.Request)
	DeleteWorker(w http.ResponseWriter, r *http.Request)
	NextWorkerID(w http.ResponseWriter, r *http.Request)
	GetMyProfile(w http.ResponseWriter, r *http.Request)
}

type workerHandlerImpl struct {
	workerService worker.WorkerService
}

func NewWorkerHandler(workerService worker.WorkerService) WorkerHandler {
	return &workerHandlerImpl{
		workerService: workerService,
	}
}

// workerIDParam reads a positive worker ID from the named URL parameter.
func workerIDParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, worker.ErrInvalidWorkerID
	}
	return id, nil
}

// ListWorkers implements WorkerHandler.
func (h *workerHandlerImpl) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workerService.ListWorkers(r.Context())
	if err != nil {
		slog.Error("ListWorkers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, workers, &response.Meta{TotalItems: len(workers)})
}

// SearchWorkers implements WorkerHandler - matches ID or name
func (h *workerHandlerImpl) SearchWorkers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		query = r.URL.Query().Get("query")
	}

	workers, err := h.workerService.SearchWorkers(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, workers, &response.Meta{TotalItems: len(workers)})
}

// GetWorker implements WorkerHandler.
func (h *workerHandlerImpl) GetWorker(w http.ResponseWriter, r *http.Request) {
	id, err := workerIDParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.workerService.GetWorker(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// CreateWorker implements WorkerHandler.
func (h *workerHandlerImpl) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req worker.WorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateWorker decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.workerService.CreateWorker(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker created", resp)
}

// UpdateWorker implements WorkerHandler.
func (h *workerHandlerImpl) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	id, err := workerIDParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req worker.WorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateWorker decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.workerService.UpdateWorker(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker updated", resp)
}

// DeleteWorker implements WorkerHandler.
func (h *workerHandlerImpl) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	id, err := workerIDParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.workerService.DeleteWorker(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker deleted", nil)
}

// NextWorkerID implements WorkerHandler.
func (h *workerHandlerImpl) NextWorkerID(w http.ResponseWriter, r *http.Request) {
	id, err := h.workerService.GenerateNewWorkerID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"id": id})
}

// GetMyProfile implements WorkerHandler.
func (h *workerHandlerImpl) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	id, err := callerWorkerID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.workerService.GetWorker(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
