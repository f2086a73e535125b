package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/port"
)

type entry struct {
	Job       domain.Job `json:"job"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type snapshot struct {
	Jobs  []entry  `json:"jobs"`
	Queue []string `json:"queue"`
}

// Store keeps jobs and the pending queue in a single JSON file. Every
// mutation rewrites the file through a temp file and rename.
type Store struct {
	mu    sync.RWMutex
	path  string
	ttl   time.Duration
	jobs  map[string]entry
	queue []string

	// wake has capacity 1 and is signalled on every enqueue.
	wake chan struct{}
	now  func() time.Time
}

func NewStore(dataDir string, ttl time.Duration) (*Store, error) {
	path := filepath.Join(dataDir, "jobs.json")

	store := &Store{
		path: path,
		ttl:  ttl,
		jobs: make(map[string]entry),
		wake: make(chan struct{}, 1),
		now:  time.Now,
	}

	if err := store.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return store, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		return nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode %s: %w", s.path, err)
	}

	for _, e := range snap.Jobs {
		s.jobs[e.Job.ID] = e
	}
	s.queue = snap.Queue

	return nil
}

// save must be called with mu held for writing.
func (s *Store) save() error {
	tmpPath := s.path + ".tmp"

	snap := snapshot{
		Jobs:  make([]entry, 0, len(s.jobs)),
		Queue: s.queue,
	}
	for _, e := range s.jobs {
		snap.Jobs = append(snap.Jobs, e)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) Put(_ context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(job)
}

func (s *Store) Update(_ context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.jobs[job.ID]
	if !ok || !s.now().Before(e.ExpiresAt) {
		return domain.ErrNotFound
	}
	if e.Job.Status.IsTerminal() {
		return domain.ErrJobFinished
	}
	return s.write(job)
}

// write stores job and persists the snapshot, restoring the previous
// in-memory entry when the file cannot be written. mu must be held.
func (s *Store) write(job *domain.Job) error {
	prev, existed := s.jobs[job.ID]
	s.jobs[job.ID] = entry{Job: *job, ExpiresAt: s.now().Add(s.ttl)}
	if err := s.save(); err != nil {
		if existed {
			s.jobs[job.ID] = prev
		} else {
			delete(s.jobs, job.ID)
		}
		return err
	}
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.jobs[id]
	if !ok || !s.now().Before(e.ExpiresAt) {
		return nil, domain.ErrNotFound
	}

	job := e.Job
	return &job, nil
}

func (s *Store) ListAll(_ context.Context) ([]*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	jobs := make([]*domain.Job, 0, len(s.jobs))
	for _, e := range s.jobs {
		if !now.Before(e.ExpiresAt) {
			continue
		}
		job := e.Job
		jobs = append(jobs, &job)
	}

	return jobs, nil
}

func (s *Store) PurgeExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for id, e := range s.jobs {
		if !now.Before(e.ExpiresAt) {
			delete(s.jobs, id)
			purged++
		}
	}
	if purged == 0 {
		return 0, nil
	}
	return purged, s.save()
}

func (s *Store) Ping(_ context.Context) error {
	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) Enqueue(_ context.Context, jobID string) error {
	s.mu.Lock()
	s.queue = append(s.queue, jobID)
	err := s.save()
	if err != nil {
		s.queue = s.queue[:len(s.queue)-1]
	}
	s.mu.Unlock()

	if err == nil {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
	return err
}

func (s *Store) Dequeue(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		id, err := s.pop()
		if err != nil || id != "" {
			return id, err
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
			return "", nil
		case <-s.wake:
		}
	}
}

func (s *Store) pop() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return "", nil
	}

	id := s.queue[0]
	rest := s.queue[1:]
	prev := s.queue
	s.queue = rest
	if err := s.save(); err != nil {
		s.queue = prev
		return "", err
	}

	// Another waiter may still have work to pick up.
	if len(s.queue) > 0 {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
	return id, nil
}

var (
	_ port.JobStore      = (*Store)(nil)
	_ port.JobQueue      = (*Store)(nil)
	_ port.ExpiredPurger = (*Store)(nil)
)
