package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/infrastructure/logger"
	"github.com/bnema/framer/internal/port"
)

const (
	notifyTimeout        = 10 * time.Second
	terminalWriteTimeout = 30 * time.Second
)

// Executor runs a single dequeued job to a terminal state.
type Executor interface {
	Execute(ctx context.Context, jobID string)
	// Abort fails a job whose execution unit died without finishing it.
	Abort(ctx context.Context, jobID string, cause error)
}

// JobRunner owns a job from dispatch to its terminal write. Every write it
// makes goes through JobRecorder.UpdateWithRetry, so once the stored record
// is terminal (a cancel won) the store refuses the rest of them.
type JobRunner struct {
	store     port.JobStore
	queue     port.JobQueue
	recorder  *JobRecorder
	processor *Processor
	notifier  port.Notifier

	mu     sync.Mutex
	active map[string]context.CancelFunc

	notifications sync.WaitGroup
	now           func() time.Time
}

func NewJobRunner(store port.JobStore, queue port.JobQueue, recorder *JobRecorder, processor *Processor, notifier port.Notifier) *JobRunner {
	return &JobRunner{
		store:     store,
		queue:     queue,
		recorder:  recorder,
		processor: processor,
		notifier:  notifier,
		active:    make(map[string]context.CancelFunc),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *JobRunner) Execute(ctx context.Context, jobID string) {
	log := logger.Job(jobID)

	job, err := r.load(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Msg("dequeued job has no record, skipping")
			return
		}
		log.Error().Err(err).Msg("failed to load dequeued job")
		r.requeue(ctx, jobID)
		return
	}
	if job.Status != domain.JobStatusPending {
		log.Info().Str("status", string(job.Status)).Msg("skipping job that is no longer pending")
		return
	}

	jobCtx, cancel := context.WithCancel(ctx)
	r.track(jobID, cancel)
	defer r.untrack(jobID)

	if err := job.Start(r.now()); err != nil {
		log.Error().Err(err).Msg("failed to start job")
		return
	}
	if err := r.recorder.UpdateWithRetry(jobCtx, job); err != nil {
		switch {
		case errors.Is(err, domain.ErrJobFinished):
			log.Info().Msg("job cancelled before it started")
		case errors.Is(err, domain.ErrNotFound):
			log.Warn().Msg("job record expired before it started")
		default:
			log.Error().Err(err).Msg("failed to mark job processing")
			r.requeue(ctx, jobID)
		}
		return
	}
	log.Info().Str("input_ref", logger.SanitizeForLog(job.InputRef)).Msg("processing job")

	report := func(ctx context.Context, progress int) error {
		if err := job.ReportProgress(progress); err != nil {
			return err
		}
		err := r.recorder.UpdateWithRetry(ctx, job)
		if errors.Is(err, domain.ErrJobFinished) {
			return domain.ErrCancelled
		}
		return err
	}

	result, procErr := r.processor.Process(jobCtx, job, report)
	r.finish(ctx, job, result, procErr)
}

// load reads the dequeued record, retrying transient store failures.
func (r *JobRunner) load(ctx context.Context, jobID string) (*domain.Job, error) {
	var job *domain.Job
	err := r.recorder.retry(ctx, func(ctx context.Context) error {
		var err error
		job, err = r.store.Get(ctx, jobID)
		return err
	})
	return job, err
}

// requeue hands back a job that was dequeued but never started, so a store
// outage does not strand it as pending with no queue entry.
func (r *JobRunner) requeue(ctx context.Context, jobID string) {
	log := logger.Job(jobID)
	if r.queue == nil {
		log.Error().Msg("job left pending with no queue entry")
		return
	}

	enqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), terminalWriteTimeout)
	defer cancel()

	if err := r.queue.Enqueue(enqCtx, jobID); err != nil {
		log.Error().Err(err).Msg("failed to requeue job, it stays pending with no queue entry")
		return
	}
	log.Warn().Msg("job requeued")
}

func (r *JobRunner) finish(ctx context.Context, job *domain.Job, result Result, procErr error) {
	log := logger.Job(job.ID)

	if errors.Is(procErr, domain.ErrCancelled) {
		log.Info().Msg("job cancelled, stopping")
		return
	}

	// The terminal write must land even when the unit's context is gone.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), terminalWriteTimeout)
	defer cancel()

	now := r.now()
	if procErr == nil {
		procErr = job.Complete(result.OutputRef, result.FrameCount, now)
	}
	if procErr != nil {
		if errors.Is(procErr, context.Canceled) {
			procErr = fmt.Errorf("interrupted: %w", procErr)
		}
		if err := job.Fail(procErr, now); err != nil {
			log.Error().Err(err).Msg("failed to record job failure")
			return
		}
	}

	if err := r.recorder.UpdateWithRetry(writeCtx, job); err != nil {
		if errors.Is(err, domain.ErrJobFinished) {
			log.Info().Str("status", string(job.Status)).Msg("job cancelled, discarding its outcome")
			return
		}
		log.Error().Err(err).Str("status", string(job.Status)).Msg("terminal write failed, job is stuck in processing")
		return
	}

	if job.Status == domain.JobStatusFailed {
		log.Warn().Str("error", job.Error).Int("progress", job.Progress).Msg("job failed")
		return
	}
	log.Info().Int("frames", job.FrameCount).Str("output_ref", job.OutputRef).Msg("job completed")
	r.notify(*job)
}

// Abort is called after an execution unit panicked.
func (r *JobRunner) Abort(ctx context.Context, jobID string, cause error) {
	log := logger.Job(jobID)

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), terminalWriteTimeout)
	defer cancel()

	job, err := r.store.Get(writeCtx, jobID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load aborted job")
		return
	}

	now := r.now()
	if job.Status == domain.JobStatusPending {
		_ = job.Start(now)
	}
	if err := job.Fail(cause, now); err != nil {
		// Already terminal.
		return
	}
	if err := r.recorder.UpdateWithRetry(writeCtx, job); err != nil && !errors.Is(err, domain.ErrJobFinished) {
		log.Error().Err(err).Msg("failed to record aborted job")
	}
}

// Interrupt stops the in-process execution of jobID, if any.
func (r *JobRunner) Interrupt(jobID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cancel, ok := r.active[jobID]
	if ok {
		cancel()
	}
	return ok
}

// WaitNotifications blocks until in-flight completion notifications finish.
func (r *JobRunner) WaitNotifications() {
	r.notifications.Wait()
}

func (r *JobRunner) notify(job domain.Job) {
	if r.notifier == nil {
		return
	}
	r.notifications.Add(1)
	go func() {
		defer r.notifications.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := r.notifier.NotifyCompleted(ctx, job); err != nil {
			logger.Warn.Printf("completion notification for job %s failed: %v", job.ID, err)
		}
	}()
}

func (r *JobRunner) track(jobID string, cancel context.CancelFunc) {
	r.mu.Lock()
	r.active[jobID] = cancel
	r.mu.Unlock()
}

func (r *JobRunner) untrack(jobID string) {
	r.mu.Lock()
	if cancel, ok := r.active[jobID]; ok {
		cancel()
		delete(r.active, jobID)
	}
	r.mu.Unlock()
}
