package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bnema/framer/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/bnema/framer/internal/port"
)

const queuePollInterval = 25 * time.Millisecond

type JobQueue struct {
	queries *sqlitedb.Queries
}

func NewJobQueue(store *Store) *JobQueue {
	return &JobQueue{
		queries: store.queries,
	}
}

func (q *JobQueue) Enqueue(ctx context.Context, jobID string) error {
	err := q.queries.PushQueue(ctx, sqlitedb.PushQueueParams{
		JobID:      jobID,
		EnqueuedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// Dequeue polls the queue table until an id is popped or timeout elapses.
func (q *JobQueue) Dequeue(ctx context.Context, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for {
		id, err := q.queries.PopQueue(ctx)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", unavailable(err)
		}

		wait := time.Until(deadline)
		if wait <= 0 {
			return "", nil
		}
		if wait > queuePollInterval {
			wait = queuePollInterval
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (q *JobQueue) Len(ctx context.Context) (int, error) {
	n, err := q.queries.CountQueue(ctx)
	if err != nil {
		return 0, unavailable(err)
	}
	return int(n), nil
}

var _ port.JobQueue = (*JobQueue)(nil)
