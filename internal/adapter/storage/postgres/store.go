package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/port"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const jobColumns = `id, input_ref, status, progress, created_at, started_at, completed_at, output_ref, frame_count, error`

// Store is the shared-database driver. Several framer instances may point
// at the same database; the queue hands each id to exactly one of them.
type Store struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func NewStore(ctx context.Context, databaseURL string, ttl time.Duration) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := migrate(pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool, ttl: ttl}, nil
}

func migrate(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *Store) Put(ctx context.Context, job *domain.Job) error {
	query := `
INSERT INTO jobs (id, input_ref, status, progress, created_at, started_at, completed_at, output_ref, frame_count, error, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW() + $11::interval)
ON CONFLICT (id) DO UPDATE SET
    status = EXCLUDED.status,
    progress = EXCLUDED.progress,
    started_at = EXCLUDED.started_at,
    completed_at = EXCLUDED.completed_at,
    output_ref = EXCLUDED.output_ref,
    frame_count = EXCLUDED.frame_count,
    error = EXCLUDED.error,
    expires_at = EXCLUDED.expires_at;
`
	_, err := s.pool.Exec(ctx, query,
		job.ID,
		job.InputRef,
		string(job.Status),
		job.Progress,
		job.CreatedAt,
		job.StartedAt,
		job.CompletedAt,
		job.OutputRef,
		job.FrameCount,
		job.Error,
		s.ttl,
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, job *domain.Job) error {
	query := `
UPDATE jobs SET
    status = $2,
    progress = $3,
    started_at = $4,
    completed_at = $5,
    output_ref = $6,
    frame_count = $7,
    error = $8,
    expires_at = NOW() + $9::interval
WHERE id = $1 AND expires_at > NOW()
  AND status NOT IN ('completed', 'failed', 'cancelled');
`
	tag, err := s.pool.Exec(ctx, query,
		job.ID,
		string(job.Status),
		job.Progress,
		job.StartedAt,
		job.CompletedAt,
		job.OutputRef,
		job.FrameCount,
		job.Error,
		s.ttl,
	)
	if err != nil {
		return unavailable(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if _, err := s.Get(ctx, job.ID); err != nil {
		return err
	}
	return domain.ErrJobFinished
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND expires_at > NOW();`

	job, err := scanJob(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, unavailable(err)
	}
	return job, nil
}

func (s *Store) ListAll(ctx context.Context) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE expires_at > NOW();`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	jobs := []*domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return jobs, nil
}

func (s *Store) PurgeExpired(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE expires_at <= NOW();`)
	if err != nil {
		return 0, unavailable(err)
	}
	return int(tag.RowsAffected()), nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		job    domain.Job
		status string
	)
	if err := row.Scan(
		&job.ID,
		&job.InputRef,
		&status,
		&job.Progress,
		&job.CreatedAt,
		&job.StartedAt,
		&job.CompletedAt,
		&job.OutputRef,
		&job.FrameCount,
		&job.Error,
	); err != nil {
		return nil, err
	}
	job.Status = domain.JobStatus(status)
	job.CreatedAt = job.CreatedAt.UTC()
	return &job, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

var (
	_ port.JobStore      = (*Store)(nil)
	_ port.ExpiredPurger = (*Store)(nil)
)
