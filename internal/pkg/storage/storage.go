package storage

import (
	"context"
	"io"
)

// FileStorage persists generated documents such as payslips and registers.
type FileStorage interface {
	// Upload writes the content under path and returns the stored path
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download opens a stored file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)

	// List returns stored file names with the given prefix, sorted
	List(ctx context.Context, prefix string) ([]string, error)
}

const (
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
