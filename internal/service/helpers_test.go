package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory JobStore with failure injection. puts counts
// both Put and Update calls.
type memStore struct {
	mu       sync.Mutex
	jobs     map[string]domain.Job
	puts     int
	failPuts int   // next n writes fail with ErrStoreUnavailable
	putErr   error // every write fails with this when set
	getErr   error
	failGets int // next n gets fail with ErrStoreUnavailable

	// beforeUpdate runs outside the lock ahead of every Update, with the
	// record about to be written.
	beforeUpdate func(job domain.Job)
}

func newMemStore() *memStore {
	return &memStore{jobs: make(map[string]domain.Job)}
}

func (s *memStore) Put(_ context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.injectWriteErr(); err != nil {
		return err
	}
	s.jobs[job.ID] = *job
	return nil
}

func (s *memStore) Update(_ context.Context, job *domain.Job) error {
	s.mu.Lock()
	hook := s.beforeUpdate
	s.mu.Unlock()
	if hook != nil {
		hook(*job)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.injectWriteErr(); err != nil {
		return err
	}
	current, ok := s.jobs[job.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Status.IsTerminal() {
		return domain.ErrJobFinished
	}
	s.jobs[job.ID] = *job
	return nil
}

// injectWriteErr must be called with mu held.
func (s *memStore) injectWriteErr() error {
	s.puts++
	if s.putErr != nil {
		return s.putErr
	}
	if s.failPuts > 0 {
		s.failPuts--
		return fmt.Errorf("%w: injected", domain.ErrStoreUnavailable)
	}
	return nil
}

func (s *memStore) Get(_ context.Context, id string) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.failGets > 0 {
		s.failGets--
		return nil, fmt.Errorf("%w: injected", domain.ErrStoreUnavailable)
	}
	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &job, nil
}

func (s *memStore) ListAll(_ context.Context) ([]*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	jobs := make([]*domain.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		job := j
		jobs = append(jobs, &job)
	}
	return jobs, nil
}

func (s *memStore) Ping(context.Context) error { return nil }

func (s *memStore) seed(job *domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = *job
}

func (s *memStore) status(t *testing.T, id string) domain.JobStatus {
	t.Helper()
	job, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	return job.Status
}

func (s *memStore) setBeforeUpdate(hook func(job domain.Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beforeUpdate = hook
}

func (s *memStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

func (s *memStore) setPutErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putErr = err
}

// chanQueue is a JobQueue over a buffered channel.
type chanQueue struct {
	ids chan string

	mu  sync.Mutex
	err error
}

func newChanQueue() *chanQueue {
	return &chanQueue{ids: make(chan string, 64)}
}

func (q *chanQueue) Enqueue(_ context.Context, id string) error {
	q.mu.Lock()
	err := q.err
	q.mu.Unlock()
	if err != nil {
		return err
	}
	q.ids <- id
	return nil
}

func (q *chanQueue) Dequeue(ctx context.Context, timeout time.Duration) (string, error) {
	q.mu.Lock()
	err := q.err
	q.mu.Unlock()
	if err != nil {
		return "", err
	}

	select {
	case id := <-q.ids:
		return id, nil
	case <-time.After(timeout):
		return "", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (q *chanQueue) setErr(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.err = err
}

// writeFrames creates n fake PNG frames in dir.
func writeFrames(dir string, n int) error {
	for i := 1; i <= n; i++ {
		name := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		if err := os.WriteFile(name, []byte("png"), 0644); err != nil {
			return err
		}
	}
	return nil
}

func pendingJob(store *memStore) *domain.Job {
	job := domain.NewJob("clip.mp4")
	store.seed(job)
	return job
}
