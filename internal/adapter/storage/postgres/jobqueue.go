package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/framer/internal/port"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const queuePollInterval = 50 * time.Millisecond

type JobQueue struct {
	pool *pgxpool.Pool
}

func NewJobQueue(store *Store) *JobQueue {
	return &JobQueue{pool: store.pool}
}

func (q *JobQueue) Enqueue(ctx context.Context, jobID string) error {
	if _, err := q.pool.Exec(ctx, `INSERT INTO job_queue (job_id) VALUES ($1);`, jobID); err != nil {
		return unavailable(err)
	}
	return nil
}

// Dequeue claims the oldest row. SKIP LOCKED lets concurrent consumers on
// other instances pop different rows without blocking each other.
func (q *JobQueue) Dequeue(ctx context.Context, timeout time.Duration) (string, error) {
	query := `
DELETE FROM job_queue
WHERE seq = (
    SELECT seq FROM job_queue
    ORDER BY seq
    FOR UPDATE SKIP LOCKED
    LIMIT 1
)
RETURNING job_id;
`
	deadline := time.Now().Add(timeout)
	for {
		var id string
		err := q.pool.QueryRow(ctx, query).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
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
	var n int
	if err := q.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_queue;`).Scan(&n); err != nil {
		return 0, unavailable(err)
	}
	return n, nil
}

var _ port.JobQueue = (*JobQueue)(nil)
