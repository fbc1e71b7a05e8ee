package worker

import "errors"

var (
	ErrWorkerNotFound   = errors.New("worker not found")
	ErrWorkerIDExists   = errors.New("worker id already exists")
	ErrInvalidStatus    = errors.New("status must be one of: Regular, Probationary, Contractual, Part-Time")
	ErrNegativeAmount   = errors.New("monetary fields must not be negative")
	ErrInvalidWorkerID  = errors.New("worker id must be a positive number")
	ErrEmptySearchQuery = errors.New("search query must not be empty")
)
