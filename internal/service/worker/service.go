package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/motorph/payroll-backend-go/internal/domain/worker"
)

type WorkerServiceImpl struct {
	worker.WorkerRepository
}

func NewWorkerService(workerRepo worker.WorkerRepository) worker.WorkerService {
	return &WorkerServiceImpl{WorkerRepository: workerRepo}
}

// ListWorkers implements worker.WorkerService.
func (s *WorkerServiceImpl) ListWorkers(ctx context.Context) ([]worker.WorkerResponse, error) {
	workers, err := s.sorted(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(workers), nil
}

// GetWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) GetWorker(ctx context.Context, id int) (worker.WorkerResponse, error) {
	w, err := s.Find(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.NewWorkerResponse(w), nil
}

// SearchWorkers implements worker.WorkerService. A numeric query matches the
// ID exactly; anything else is a case-insensitive substring of either name.
func (s *WorkerServiceImpl) SearchWorkers(ctx context.Context, query string) ([]worker.WorkerResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, worker.ErrEmptySearchQuery
	}

	workers, err := s.sorted(ctx)
	if err != nil {
		return nil, err
	}

	id, idErr := strconv.Atoi(query)
	needle := strings.ToLower(query)

	matches := make([]worker.Worker, 0)
	for _, w := range workers {
		if idErr == nil && w.ID == id {
			matches = append(matches, w)
			continue
		}
		if strings.Contains(strings.ToLower(w.FirstName), needle) ||
			strings.Contains(strings.ToLower(w.LastName), needle) ||
			strings.Contains(strings.ToLower(w.FullName()), needle) {
			matches = append(matches, w)
		}
	}
	return toResponses(matches), nil
}

// CreateWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) CreateWorker(ctx context.Context, req worker.WorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w := req.ToWorker()
	if w.ID == 0 {
		id, err := s.GenerateNewWorkerID(ctx)
		if err != nil {
			return worker.WorkerResponse{}, err
		}
		w.ID = id
	}

	if err := s.WorkerRepository.Add(ctx, w); err != nil {
		return worker.WorkerResponse{}, err
	}
	if err := s.WorkerRepository.Save(ctx); err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to persist workers: %w", err)
	}

	slog.Info("Worker created", "worker_id", w.ID, "status", w.Status)
	return worker.NewWorkerResponse(w), nil
}

// UpdateWorker implements worker.WorkerService. The path ID wins over the body.
func (s *WorkerServiceImpl) UpdateWorker(ctx context.Context, id int, req worker.WorkerRequest) (worker.WorkerResponse, error) {
	if id <= 0 {
		return worker.WorkerResponse{}, worker.ErrInvalidWorkerID
	}
	req.ID = id
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w := req.ToWorker()
	if err := s.WorkerRepository.Update(ctx, w); err != nil {
		return worker.WorkerResponse{}, err
	}
	if err := s.WorkerRepository.Save(ctx); err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to persist workers: %w", err)
	}

	slog.Info("Worker updated", "worker_id", w.ID)
	return worker.NewWorkerResponse(w), nil
}

// DeleteWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) DeleteWorker(ctx context.Context, id int) error {
	if id <= 0 {
		return worker.ErrInvalidWorkerID
	}
	if err := s.WorkerRepository.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.WorkerRepository.Save(ctx); err != nil {
		return fmt.Errorf("failed to persist workers: %w", err)
	}

	slog.Info("Worker deleted", "worker_id", id)
	return nil
}

// GenerateNewWorkerID implements worker.WorkerService. An empty roster starts at 10001.
func (s *WorkerServiceImpl) GenerateNewWorkerID(ctx context.Context) (int, error) {
	workers, err := s.WorkerRepository.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list workers: %w", err)
	}

	next := firstWorkerID
	for _, w := range workers {
		if w.ID >= next {
			next = w.ID + 1
		}
	}
	return next, nil
}

// Find implements worker.WorkerService.
func (s *WorkerServiceImpl) Find(ctx context.Context, id int) (worker.Worker, error) {
	if id <= 0 {
		return worker.Worker{}, worker.ErrInvalidWorkerID
	}
	w, err := s.WorkerRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return worker.Worker{}, err
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker %d: %w", id, err)
	}
	return w, nil
}

const firstWorkerID = 10001

func (s *WorkerServiceImpl) sorted(ctx context.Context) ([]worker.Worker, error) {
	workers, err := s.WorkerRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	sort.Slice(workers, func(i, j int) bool { return workers[i].ID < workers[j].ID })
	return workers, nil
}

func toResponses(workers []worker.Worker) []worker.WorkerResponse {
	out := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		out = append(out, worker.NewWorkerResponse(w))
	}
	return out
}
