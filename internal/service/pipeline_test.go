package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// pipeline wires the real scheduler, runner, processor and job service over
// an in-memory store and queue. Only the locator, extractor and archiver are
// mocked.
type pipeline struct {
	*processorFixture
	store     *memStore
	svc       *JobService
	scheduler *Scheduler

	// frames maps an input ref to the number of frames its extraction yields.
	frames map[string]int

	mu         sync.Mutex
	running    int
	maxRunning int
	bothIn     chan struct{}
}

func newPipeline(t *testing.T, frames map[string]int) *pipeline {
	t.Helper()
	store := newMemStore()
	queue := newChanQueue()
	rec, cache, _ := newTestRecorder(store)
	pf := newProcessorFixture(t, time.Minute)
	runner := NewJobRunner(store, queue, rec, pf.processor, nil)

	p := &pipeline{
		processorFixture: pf,
		store:            store,
		svc:              NewJobService(store, queue, cache, rec, runner),
		scheduler:        NewScheduler(queue, store, rec, runner, testSchedulerConfig(2)),
		frames:           frames,
		bothIn:           make(chan struct{}),
	}

	pf.locator.EXPECT().Locate(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, ref string) (string, error) {
			return filepath.Join("/uploads", ref), nil
		}).
		Times(len(frames))
	pf.extractor.EXPECT().ExtractFrames(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(p.extract).
		Times(len(frames))
	pf.archiver.EXPECT().Archive(mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Times(len(frames))
	return p
}

// extract holds each call until two extractions overlap, so the test sees
// both execution units running at once.
func (p *pipeline) extract(ctx context.Context, inputPath, workDir string) error {
	p.mu.Lock()
	p.running++
	if p.running > p.maxRunning {
		p.maxRunning = p.running
	}
	if p.running == 2 {
		close(p.bothIn)
	}
	p.mu.Unlock()

	select {
	case <-p.bothIn:
	case <-time.After(2 * time.Second):
	case <-ctx.Done():
		return ctx.Err()
	}
	time.Sleep(20 * time.Millisecond)

	p.mu.Lock()
	p.running--
	p.mu.Unlock()
	return writeFrames(workDir, p.frames[filepath.Base(inputPath)])
}

func (p *pipeline) peak() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxRunning
}

// poll reads id through the job service until it is terminal and returns
// every progress value it saw, in order.
func (p *pipeline) poll(t *testing.T, id string) []int {
	t.Helper()
	var seen []int
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := p.svc.Get(context.Background(), id)
		if err == nil {
			seen = append(seen, job.Progress)
			if job.Status.IsTerminal() {
				return seen
			}
		}
		time.Sleep(time.Millisecond)
	}
	t.Errorf("job %s did not finish", id)
	return seen
}

func TestPipeline_ConcurrentJobsComplete(t *testing.T) {
	frames := map[string]int{"first.mp4": 3, "second.mp4": 5}
	p := newPipeline(t, frames)
	startScheduler(t, p.scheduler)

	a, err := p.svc.Submit(context.Background(), "first.mp4")
	require.NoError(t, err)
	b, err := p.svc.Submit(context.Background(), "second.mp4")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, id := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.poll(t, id)
		}()
	}
	wg.Wait()
	p.scheduler.Wait()

	assert.Equal(t, 2, p.peak(), "both jobs should run at the same time")
	for _, job := range []*domain.Job{a, b} {
		got, err := p.store.Get(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusCompleted, got.Status, job.InputRef)
		assert.Equal(t, domain.ProgressPackaged, got.Progress, job.InputRef)
		assert.Equal(t, frames[job.InputRef], got.FrameCount, job.InputRef)
		assert.Equal(t, domain.ArchiveName(job.ID), got.OutputRef, job.InputRef)
		assert.Empty(t, got.Error)
	}
}

func TestPipeline_ProgressNeverMovesBackwards(t *testing.T) {
	frames := map[string]int{"first.mp4": 2, "second.mp4": 4}
	p := newPipeline(t, frames)
	startScheduler(t, p.scheduler)

	var ids []string
	for ref := range frames {
		job, err := p.svc.Submit(context.Background(), ref)
		require.NoError(t, err)
		ids = append(ids, job.ID)
	}

	// Several readers per job, as concurrent status requests would be.
	var (
		wg        sync.WaitGroup
		resultsMu sync.Mutex
	)
	results := make(map[string][][]int)
	for _, id := range ids {
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				seen := p.poll(t, id)
				resultsMu.Lock()
				results[id] = append(results[id], seen)
				resultsMu.Unlock()
			}()
		}
	}
	wg.Wait()
	p.scheduler.Wait()

	require.Len(t, results, 2)
	for id, runs := range results {
		require.Len(t, runs, 3, id)
		for _, seen := range runs {
			require.NotEmpty(t, seen, id)
			for i := 1; i < len(seen); i++ {
				assert.GreaterOrEqual(t, seen[i], seen[i-1], "job %s progress went %v", id, seen)
			}
			assert.Equal(t, domain.ProgressPackaged, seen[len(seen)-1], id)
		}
	}
}
