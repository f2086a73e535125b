package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/framer/internal/port"
	goredis "github.com/redis/go-redis/v9"
)

// JobQueue is a redis list: producers LPUSH, consumers BRPOP.
type JobQueue struct {
	client *goredis.Client
}

func NewJobQueue(store *Store) *JobQueue {
	return &JobQueue{client: store.client}
}

func (q *JobQueue) Enqueue(ctx context.Context, jobID string) error {
	if err := q.client.LPush(ctx, queueKey, jobID).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

// Dequeue blocks for at most timeout, rounded up to whole seconds. BRPOP
// treats zero as "block forever" and the client truncates sub-second values.
func (q *JobQueue) Dequeue(ctx context.Context, timeout time.Duration) (string, error) {
	res, err := q.client.BRPop(ctx, blockTimeout(timeout), queueKey).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", unavailable(err)
	}
	// [key, value]
	if len(res) != 2 {
		return "", nil
	}
	return res[1], nil
}

func (q *JobQueue) Len(ctx context.Context) (int, error) {
	n, err := q.client.LLen(ctx, queueKey).Result()
	if err != nil {
		return 0, unavailable(err)
	}
	return int(n), nil
}

func blockTimeout(d time.Duration) time.Duration {
	if d <= time.Second {
		return time.Second
	}
	return ((d + time.Second - 1) / time.Second) * time.Second
}

var _ port.JobQueue = (*JobQueue)(nil)
