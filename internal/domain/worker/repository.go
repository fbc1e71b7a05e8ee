package worker

import "context"

type WorkerRepository interface {
	GetAll(ctx context.Context) ([]Worker, error)
	GetByID(ctx context.Context, id int) (Worker, error)
	Add(ctx context.Context, w Worker) error
	Update(ctx context.Context, w Worker) error
	Delete(ctx context.Context, id int) error
	Save(ctx context.Context) error
}
