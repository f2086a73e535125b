package service

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/port"
	"github.com/sethvargo/go-retry"
)

const (
	defaultRetryBase = 100 * time.Millisecond
	maxWriteRetries  = 5
)

// JobRecorder is the single write path for job state: store first, then the
// cache and the event bus, so readers never see a state the store lacks.
type JobRecorder struct {
	store     port.JobStore
	cache     *ActiveJobCache
	events    EventPublisher
	retryBase time.Duration
}

func NewJobRecorder(store port.JobStore, cache *ActiveJobCache, events EventPublisher) *JobRecorder {
	return &JobRecorder{
		store:     store,
		cache:     cache,
		events:    events,
		retryBase: defaultRetryBase,
	}
}

// Record writes job once, creating or replacing it. Only used for the
// initial write of a submitted job.
func (r *JobRecorder) Record(ctx context.Context, job *domain.Job) error {
	if err := r.store.Put(ctx, job); err != nil {
		return err
	}
	r.publish(job)
	return nil
}

// Update writes job once, and only over a record that is not yet terminal.
// It returns domain.ErrJobFinished when the stored record already is.
func (r *JobRecorder) Update(ctx context.Context, job *domain.Job) error {
	if err := r.store.Update(ctx, job); err != nil {
		return err
	}
	r.publish(job)
	return nil
}

// UpdateWithRetry is Update with transient store failures retried under
// exponential backoff. Used by execution units, where a lost write leaves
// the job stuck.
func (r *JobRecorder) UpdateWithRetry(ctx context.Context, job *domain.Job) error {
	err := r.retry(ctx, func(ctx context.Context) error {
		return r.store.Update(ctx, job)
	})
	if err != nil {
		return err
	}
	r.publish(job)
	return nil
}

// retry runs fn until it succeeds, fails with anything other than
// domain.ErrStoreUnavailable, or runs out of attempts.
func (r *JobRecorder) retry(ctx context.Context, fn func(context.Context) error) error {
	backoff := retry.WithMaxRetries(maxWriteRetries, retry.NewExponential(r.retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (r *JobRecorder) publish(job *domain.Job) {
	if r.cache != nil {
		r.cache.Put(job)
	}
	if r.events != nil {
		r.events.Publish(job.ID, Event{Type: "job", Job: *job})
	}
}
