package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/infrastructure/logger"
	"github.com/bnema/framer/internal/port"
	"golang.org/x/sync/semaphore"
)

var errStalled = errors.New("stalled: processing exceeded stall timeout")

type SchedulerConfig struct {
	PollInterval   time.Duration
	DequeueTimeout time.Duration
	MaxConcurrent  int
	// StallTimeout of zero disables stalled-job recovery.
	StallTimeout time.Duration
}

// Scheduler polls the queue once per tick and hands each dequeued id to its
// own execution unit. At most MaxConcurrent units run at once; a tick with
// no free slot does not touch the queue.
type Scheduler struct {
	queue    port.JobQueue
	store    port.JobStore
	recorder *JobRecorder
	executor Executor
	cfg      SchedulerConfig

	sem      *semaphore.Weighted
	wg       sync.WaitGroup
	inFlight atomic.Int64

	// Units run detached from the polling context so a stop lets them
	// finish; Shutdown cancels them once its grace period runs out.
	unitCtx     context.Context
	cancelUnits context.CancelFunc

	now func() time.Time
}

func NewScheduler(queue port.JobQueue, store port.JobStore, recorder *JobRecorder, executor Executor, cfg SchedulerConfig) *Scheduler {
	unitCtx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		queue:       queue,
		store:       store,
		recorder:    recorder,
		executor:    executor,
		cfg:         cfg,
		sem:         semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		unitCtx:     unitCtx,
		cancelUnits: cancel,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Run polls until ctx is cancelled. It does not wait for running units.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.cfg.MaxConcurrent < 1 {
		return fmt.Errorf("scheduler: max concurrent jobs must be at least 1, got %d", s.cfg.MaxConcurrent)
	}

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	logger.Info.Printf("scheduler started: max_concurrent=%d, poll_interval=%s", s.cfg.MaxConcurrent, s.cfg.PollInterval)

	for {
		select {
		case <-ctx.Done():
			logger.Info.Printf("scheduler stopping, %d jobs in flight", s.InFlight())
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if !s.sem.TryAcquire(1) {
		return
	}

	jobID, err := s.queue.Dequeue(ctx, s.cfg.DequeueTimeout)
	if err != nil {
		s.sem.Release(1)
		if ctx.Err() == nil {
			logger.Warn.Printf("dequeue failed, retrying next tick: %v", err)
		}
		return
	}
	if jobID == "" {
		s.sem.Release(1)
		return
	}

	s.dispatch(jobID)
}

func (s *Scheduler) dispatch(jobID string) {
	s.wg.Add(1)
	s.inFlight.Add(1)

	go func() {
		defer s.wg.Done()
		defer s.inFlight.Add(-1)
		defer s.sem.Release(1)
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error.Printf("execution unit for job %s panicked: %v\n%s", jobID, rec, debug.Stack())
				s.executor.Abort(s.unitCtx, jobID, fmt.Errorf("panic: %v", rec))
			}
		}()

		s.executor.Execute(s.unitCtx, jobID)
	}()
}

// InFlight is the number of execution units currently running.
func (s *Scheduler) InFlight() int {
	return int(s.inFlight.Load())
}

// Wait blocks until every dispatched unit has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Shutdown waits for running units until ctx is done, then cancels them and
// waits for them to record their outcome.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancelUnits()
		return nil
	case <-ctx.Done():
		logger.Warn.Printf("shutdown grace period over, interrupting %d jobs", s.InFlight())
		s.cancelUnits()
		<-done
		return ctx.Err()
	}
}

// RecoverStalled fails jobs left in processing by a previous process for
// longer than the stall timeout. It returns the number of jobs failed.
func (s *Scheduler) RecoverStalled(ctx context.Context) (int, error) {
	if s.cfg.StallTimeout <= 0 {
		return 0, nil
	}

	jobs, err := s.store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list jobs: %w", err)
	}

	now := s.now()
	cutoff := now.Add(-s.cfg.StallTimeout)
	recovered := 0
	for _, job := range jobs {
		if job.Status != domain.JobStatusProcessing || job.StartedAt == nil || job.StartedAt.After(cutoff) {
			continue
		}
		if err := job.Fail(errStalled, now); err != nil {
			continue
		}
		if err := s.recorder.UpdateWithRetry(ctx, job); err != nil {
			if !errors.Is(err, domain.ErrJobFinished) {
				logger.Error.Printf("failed to recover stalled job %s: %v", job.ID, err)
			}
			continue
		}
		logger.Warn.Printf("recovered stalled job %s (started %s)", job.ID, job.StartedAt.Format(time.RFC3339))
		recovered++
	}
	return recovered, nil
}
