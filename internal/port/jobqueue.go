package port

import (
	"context"
	"time"
)

type JobQueue interface {
	Enqueue(ctx context.Context, jobID string) error
	// Dequeue waits up to timeout for an id. It returns "" and a nil error
	// when nothing arrived in time.
	Dequeue(ctx context.Context, timeout time.Duration) (string, error)
}
