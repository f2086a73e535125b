package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/port/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type runnerFixture struct {
	*processorFixture
	store    *memStore
	queue    *chanQueue
	cache    *ActiveJobCache
	notifier *mocks.NotifierMock
	runner   *JobRunner
}

func newRunnerFixture(t *testing.T) *runnerFixture {
	store := newMemStore()
	queue := newChanQueue()
	rec, cache, _ := newTestRecorder(store)
	pf := newProcessorFixture(t, time.Minute)
	notifier := mocks.NewNotifierMock(t)
	return &runnerFixture{
		processorFixture: pf,
		store:            store,
		queue:            queue,
		cache:            cache,
		notifier:         notifier,
		runner:           NewJobRunner(store, queue, rec, pf.processor, notifier),
	}
}

func (f *runnerFixture) jobService() *JobService {
	return NewJobService(f.store, f.queue, f.cache, f.runner.recorder, f.runner)
}

func (f *runnerFixture) expectExtraction(frames int) {
	f.locator.EXPECT().Locate(mock.Anything, mock.Anything).Return("/in.mp4", nil).Once()
	f.extractor.EXPECT().ExtractFrames(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, dir string) error { return writeFrames(dir, frames) }).
		Once()
}

func TestJobRunner_Execute_Completes(t *testing.T) {
	f := newRunnerFixture(t)
	job := pendingJob(f.store)
	f.expectExtraction(3)
	f.archiver.EXPECT().Archive(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	notified := make(chan domain.Job, 1)
	f.notifier.EXPECT().NotifyCompleted(mock.Anything, mock.Anything).
		Run(func(_ context.Context, job domain.Job) { notified <- job }).
		Return(nil).
		Once()

	f.runner.Execute(context.Background(), job.ID)
	f.runner.WaitNotifications()

	got, err := f.store.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, 3, got.FrameCount)
	assert.Equal(t, domain.ArchiveName(job.ID), got.OutputRef)
	require.NotNil(t, got.StartedAt)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, got.CompletedAt.Before(*got.StartedAt))

	cached, ok := f.cache.Get(job.ID)
	require.True(t, ok)
	assert.Equal(t, domain.JobStatusCompleted, cached.Status)

	select {
	case n := <-notified:
		assert.Equal(t, job.ID, n.ID)
		assert.Equal(t, domain.JobStatusCompleted, n.Status)
	default:
		t.Fatal("notifier not called")
	}
}

func TestJobRunner_Execute_Fails(t *testing.T) {
	f := newRunnerFixture(t)
	job := pendingJob(f.store)
	f.locator.EXPECT().Locate(mock.Anything, mock.Anything).Return("/in.mp4", nil).Once()
	f.extractor.EXPECT().ExtractFrames(mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: exit status 1", domain.ErrExtractionFailed)).
		Once()

	f.runner.Execute(context.Background(), job.ID)

	got, err := f.store.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Contains(t, got.Error, "frame extraction failed")
	assert.Equal(t, 10, got.Progress, "progress stays at the last reported value")
	assert.Empty(t, got.OutputRef)
	assert.NotNil(t, got.CompletedAt)
}

func TestJobRunner_Execute_Skips(t *testing.T) {
	t.Run("cancelled before dispatch", func(t *testing.T) {
		f := newRunnerFixture(t)
		job := domain.NewJob("clip.mp4")
		require.NoError(t, job.Cancel(time.Now()))
		f.store.seed(job)

		f.runner.Execute(context.Background(), job.ID)

		assert.Equal(t, domain.JobStatusCancelled, f.store.status(t, job.ID))
		assert.Zero(t, f.store.puts)
	})

	t.Run("already processing", func(t *testing.T) {
		f := newRunnerFixture(t)
		job := domain.NewJob("clip.mp4")
		require.NoError(t, job.Start(time.Now()))
		f.store.seed(job)

		f.runner.Execute(context.Background(), job.ID)

		assert.Zero(t, f.store.puts)
	})

	t.Run("record missing", func(t *testing.T) {
		f := newRunnerFixture(t)

		f.runner.Execute(context.Background(), "gone")

		assert.Zero(t, f.store.puts)
	})
}

func TestJobRunner_Execute_CancelledMidRun(t *testing.T) {
	f := newRunnerFixture(t)
	job := pendingJob(f.store)

	f.locator.EXPECT().Locate(mock.Anything, mock.Anything).Return("/in.mp4", nil).Once()
	f.extractor.EXPECT().ExtractFrames(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, dir string) error {
			// Another process cancels while ffmpeg runs.
			current, err := f.store.Get(context.Background(), job.ID)
			require.NoError(t, err)
			require.NoError(t, current.Cancel(time.Now()))
			f.store.seed(current)
			return writeFrames(dir, 2)
		}).
		Once()

	f.runner.Execute(context.Background(), job.ID)

	got, err := f.store.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCancelled, got.Status)
	assert.Equal(t, 10, got.Progress)
	assert.Empty(t, got.OutputRef)
}

func TestJobRunner_CancelDuringWrites(t *testing.T) {
	t.Run("cancel lands while the start is written", func(t *testing.T) {
		f := newRunnerFixture(t)
		job := pendingJob(f.store)
		svc := f.jobService()

		var cancelErr error
		fired := false
		f.store.setBeforeUpdate(func(next domain.Job) {
			if fired || next.Status != domain.JobStatusProcessing {
				return
			}
			fired = true
			_, cancelErr = svc.Cancel(context.Background(), job.ID)
		})

		// No locator or extractor expectations: the unit must not run.
		f.runner.Execute(context.Background(), job.ID)

		require.True(t, fired)
		require.NoError(t, cancelErr)
		got, err := f.store.Get(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusCancelled, got.Status)
		assert.Zero(t, got.Progress)
		assert.Empty(t, f.queue.ids)
	})

	t.Run("cancel lands while progress is written", func(t *testing.T) {
		f := newRunnerFixture(t)
		job := pendingJob(f.store)
		svc := f.jobService()
		f.locator.EXPECT().Locate(mock.Anything, mock.Anything).Return("/in.mp4", nil).Once()

		var cancelErr error
		fired := false
		f.store.setBeforeUpdate(func(next domain.Job) {
			if fired || next.Status != domain.JobStatusProcessing || next.Progress != domain.ProgressLocated {
				return
			}
			fired = true
			_, cancelErr = svc.Cancel(context.Background(), job.ID)
		})

		f.runner.Execute(context.Background(), job.ID)

		require.True(t, fired)
		require.NoError(t, cancelErr)
		got, err := f.store.Get(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusCancelled, got.Status)
		assert.Empty(t, got.OutputRef)
		assert.Empty(t, got.Error)
		assert.False(t, f.runner.Interrupt(job.ID))
	})
}

func TestJobRunner_Execute_StoreOutageOnDispatch(t *testing.T) {
	t.Run("transient read failure is retried", func(t *testing.T) {
		f := newRunnerFixture(t)
		job := pendingJob(f.store)
		f.store.failGets = 2
		f.expectExtraction(2)
		f.archiver.EXPECT().Archive(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.notifier.EXPECT().NotifyCompleted(mock.Anything, mock.Anything).Return(nil).Once()

		f.runner.Execute(context.Background(), job.ID)
		f.runner.WaitNotifications()

		assert.Equal(t, domain.JobStatusCompleted, f.store.status(t, job.ID))
		assert.Empty(t, f.queue.ids)
	})

	t.Run("unreadable record is requeued", func(t *testing.T) {
		f := newRunnerFixture(t)
		job := pendingJob(f.store)
		f.store.getErr = fmt.Errorf("%w: down", domain.ErrStoreUnavailable)

		f.runner.Execute(context.Background(), job.ID)

		f.store.getErr = nil
		assert.Equal(t, domain.JobStatusPending, f.store.status(t, job.ID))
		require.Len(t, f.queue.ids, 1)
		assert.Equal(t, job.ID, <-f.queue.ids)
	})

	t.Run("lost start write is requeued", func(t *testing.T) {
		f := newRunnerFixture(t)
		job := pendingJob(f.store)
		f.store.setPutErr(fmt.Errorf("%w: down", domain.ErrStoreUnavailable))

		f.runner.Execute(context.Background(), job.ID)

		assert.Equal(t, domain.JobStatusPending, f.store.status(t, job.ID))
		assert.Equal(t, maxWriteRetries+1, f.store.writes())
		require.Len(t, f.queue.ids, 1)
		assert.Equal(t, job.ID, <-f.queue.ids)
		_, cached := f.cache.Get(job.ID)
		assert.False(t, cached)
	})
}

func TestJobRunner_Interrupt(t *testing.T) {
	f := newRunnerFixture(t)
	job := pendingJob(f.store)
	started := make(chan struct{})

	f.locator.EXPECT().Locate(mock.Anything, mock.Anything).Return("/in.mp4", nil).Once()
	f.extractor.EXPECT().ExtractFrames(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ string, _ string) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		}).
		Once()

	done := make(chan struct{})
	go func() {
		f.runner.Execute(context.Background(), job.ID)
		close(done)
	}()
	<-started

	_, err := f.jobService().Cancel(context.Background(), job.ID)
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("interrupt did not stop the unit")
	}
	assert.Equal(t, domain.JobStatusCancelled, f.store.status(t, job.ID))
	assert.False(t, f.runner.Interrupt(job.ID), "finished unit is no longer tracked")
}

func TestJobRunner_Execute_ShutdownInterrupts(t *testing.T) {
	f := newRunnerFixture(t)
	job := pendingJob(f.store)
	ctx, cancel := context.WithCancel(context.Background())

	f.locator.EXPECT().Locate(mock.Anything, mock.Anything).Return("/in.mp4", nil).Once()
	f.extractor.EXPECT().ExtractFrames(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ string, _ string) error {
			cancel()
			<-ctx.Done()
			return ctx.Err()
		}).
		Once()

	f.runner.Execute(ctx, job.ID)

	got, err := f.store.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Contains(t, got.Error, "interrupted")
}

func TestJobRunner_Execute_RetriesTerminalWrite(t *testing.T) {
	f := newRunnerFixture(t)
	job := pendingJob(f.store)
	f.expectExtraction(1)
	f.archiver.EXPECT().Archive(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, []string, string) error {
			f.store.mu.Lock()
			f.store.failPuts = 2
			f.store.mu.Unlock()
			return nil
		}).
		Once()
	f.notifier.EXPECT().NotifyCompleted(mock.Anything, mock.Anything).Return(errors.New("notification service down")).Once()

	f.runner.Execute(context.Background(), job.ID)
	f.runner.WaitNotifications()

	assert.Equal(t, domain.JobStatusCompleted, f.store.status(t, job.ID))
}

func TestJobRunner_Execute_TerminalWriteLost(t *testing.T) {
	f := newRunnerFixture(t)
	job := pendingJob(f.store)
	f.expectExtraction(1)
	f.archiver.EXPECT().Archive(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, []string, string) error {
			f.store.setPutErr(fmt.Errorf("%w: gone", domain.ErrStoreUnavailable))
			return nil
		}).
		Once()

	f.runner.Execute(context.Background(), job.ID)

	// Neither completed nor notified: the record is left for stall recovery.
	assert.Equal(t, domain.JobStatusProcessing, f.store.status(t, job.ID))
}

func TestJobRunner_Abort(t *testing.T) {
	t.Run("pending job is failed", func(t *testing.T) {
		f := newRunnerFixture(t)
		job := pendingJob(f.store)

		f.runner.Abort(context.Background(), job.ID, errors.New("panic: nil map"))

		got, err := f.store.Get(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusFailed, got.Status)
		assert.Equal(t, "panic: nil map", got.Error)
	})

	t.Run("terminal job is left alone", func(t *testing.T) {
		f := newRunnerFixture(t)
		job := domain.NewJob("clip.mp4")
		require.NoError(t, job.Cancel(time.Now()))
		f.store.seed(job)

		f.runner.Abort(context.Background(), job.ID, errors.New("panic"))

		assert.Equal(t, domain.JobStatusCancelled, f.store.status(t, job.ID))
		assert.Zero(t, f.store.puts)
	})
}

func TestJobRunner_WorkDirIsJobScoped(t *testing.T) {
	f := newRunnerFixture(t)
	job := pendingJob(f.store)

	f.locator.EXPECT().Locate(mock.Anything, mock.Anything).Return("/in.mp4", nil).Once()
	f.extractor.EXPECT().ExtractFrames(mock.Anything, mock.Anything, filepath.Join(f.tempDir, job.ID)).
		Return(domain.ErrExtractionFailed).
		Once()

	f.runner.Execute(context.Background(), job.ID)

	assert.Equal(t, domain.JobStatusFailed, f.store.status(t, job.ID))
}
