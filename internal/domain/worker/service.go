package worker

import (
	"context"
)

// WorkerService defines business logic for worker records
type WorkerService interface {
	// ListWorkers returns every worker ordered by ID
	ListWorkers(ctx context.Context) ([]WorkerResponse, error)

	// GetWorker retrieves a single worker by ID
	GetWorker(ctx context.Context, id int) (WorkerResponse, error)

	// SearchWorkers matches the query against ID and names
	SearchWorkers(ctx context.Context, query string) ([]WorkerResponse, error)

	// CreateWorker adds a worker, assigning the next ID when none is given (admin only)
	CreateWorker(ctx context.Context, req WorkerRequest) (WorkerResponse, error)

	// UpdateWorker replaces an existing worker (admin only)
	UpdateWorker(ctx context.Context, id int, req WorkerRequest) (WorkerResponse, error)

	// DeleteWorker removes a worker (admin only)
	DeleteWorker(ctx context.Context, id int) error

	// GenerateNewWorkerID returns the highest existing ID plus one
	GenerateNewWorkerID(ctx context.Context) (int, error)

	// Find returns the domain value for payroll runs
	Find(ctx context.Context, id int) (Worker, error)
}
