package store

import "context"

// Store persists the outcome of check runs.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	RecordRun(ctx context.Context, run Run) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}
