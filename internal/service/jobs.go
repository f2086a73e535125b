package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/infrastructure/logger"
	"github.com/bnema/framer/internal/port"
)

// Interrupter stops in-process execution of a job.
type Interrupter interface {
	Interrupt(jobID string) bool
}

type JobService struct {
	store       port.JobStore
	queue       port.JobQueue
	cache       *ActiveJobCache
	recorder    *JobRecorder
	interrupter Interrupter
	now         func() time.Time
}

func NewJobService(
	store port.JobStore,
	queue port.JobQueue,
	cache *ActiveJobCache,
	recorder *JobRecorder,
	interrupter Interrupter,
) *JobService {
	return &JobService{
		store:       store,
		queue:       queue,
		cache:       cache,
		recorder:    recorder,
		interrupter: interrupter,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Submit persists a pending job and enqueues it. If the enqueue fails the
// record is cancelled so it does not linger as pending forever.
func (s *JobService) Submit(ctx context.Context, inputRef string) (*domain.Job, error) {
	if err := domain.ValidateInputRef(inputRef); err != nil {
		return nil, err
	}

	job := domain.NewJob(inputRef)
	if err := s.recorder.Record(ctx, job); err != nil {
		logger.Error.Printf("failed to save job %s: %v", job.ID, err)
		return nil, fmt.Errorf("save job: %w", err)
	}

	if err := s.queue.Enqueue(ctx, job.ID); err != nil {
		logger.Error.Printf("failed to enqueue job %s: %v", job.ID, err)
		if cerr := job.Cancel(s.now()); cerr == nil {
			if werr := s.recorder.Update(context.WithoutCancel(ctx), job); werr != nil {
				logger.Error.Printf("failed to cancel unqueued job %s: %v", job.ID, werr)
			}
		}
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	logger.Info.Printf("job submitted: id=%s, input=%s", job.ID, logger.SanitizeForLog(inputRef))
	return job, nil
}

// Get serves from the active-job cache when possible.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	if job, ok := s.cache.Get(id); ok {
		return job, nil
	}
	return s.store.Get(ctx, id)
}

// List returns every live job, newest first.
func (s *JobService) List(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// Cancel reads the store, not the cache, and writes through Update, so a job
// that reached a terminal state in between is reported as not cancellable.
// A running unit has its next write refused by the store; when it runs in
// this process it is also interrupted right away.
func (s *JobService) Cancel(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := job.Cancel(s.now()); err != nil {
		return nil, err
	}
	if err := s.recorder.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrJobFinished) {
			return nil, domain.ErrNotCancellable
		}
		return nil, fmt.Errorf("save cancelled job: %w", err)
	}

	if s.interrupter != nil && s.interrupter.Interrupt(id) {
		logger.Info.Printf("interrupted running job %s", id)
	}
	logger.Info.Printf("job cancelled: id=%s", id)
	return job, nil
}
