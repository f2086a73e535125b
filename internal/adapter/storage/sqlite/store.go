package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/framer/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/port"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store keeps each job as a JSON document with an absolute expiry. Expired
// rows are invisible to reads and removed by PurgeExpired.
type Store struct {
	db      *sql.DB
	queries *sqlitedb.Queries
	ttl     time.Duration
	now     func() time.Time
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

func NewStore(dataDir string, ttl time.Duration) (*Store, error) {
	registerHook()

	dbPath := filepath.Join(dataDir, "framer.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection: the queue pop relies on serialized writers.
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{
		db:      db,
		queries: sqlitedb.New(db),
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *Store) Put(ctx context.Context, job *domain.Job) error {
	doc, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job %s: %w", job.ID, err)
	}

	err = s.queries.UpsertJob(ctx, sqlitedb.UpsertJobParams{
		ID:        job.ID,
		Status:    string(job.Status),
		Document:  string(doc),
		CreatedAt: job.CreatedAt.UnixMilli(),
		ExpiresAt: s.now().Add(s.ttl).UnixMilli(),
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, job *domain.Job) error {
	doc, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job %s: %w", job.ID, err)
	}

	now := s.now()
	n, err := s.queries.UpdateLiveJob(ctx, sqlitedb.UpdateLiveJobParams{
		Status:    string(job.Status),
		Document:  string(doc),
		ExpiresAt: now.Add(s.ttl).UnixMilli(),
		ID:        job.ID,
		Now:       now.UnixMilli(),
	})
	if err != nil {
		return unavailable(err)
	}
	if n > 0 {
		return nil
	}

	// Nothing replaced: tell a missing row from a terminal one.
	if _, err := s.Get(ctx, job.ID); err != nil {
		return err
	}
	return domain.ErrJobFinished
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Job, error) {
	row, err := s.queries.GetLiveJob(ctx, sqlitedb.GetLiveJobParams{
		ID:        id,
		ExpiresAt: s.now().UnixMilli(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, unavailable(err)
	}
	return jobFromRow(row)
}

func (s *Store) ListAll(ctx context.Context) ([]*domain.Job, error) {
	rows, err := s.queries.ListLiveJobs(ctx, s.now().UnixMilli())
	if err != nil {
		return nil, unavailable(err)
	}

	jobs := make([]*domain.Job, 0, len(rows))
	for _, row := range rows {
		job, err := jobFromRow(row)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (s *Store) PurgeExpired(ctx context.Context) (int, error) {
	n, err := s.queries.DeleteExpiredJobs(ctx, s.now().UnixMilli())
	if err != nil {
		return 0, unavailable(err)
	}
	return int(n), nil
}

func jobFromRow(row sqlitedb.Job) (*domain.Job, error) {
	var job domain.Job
	if err := json.Unmarshal([]byte(row.Document), &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", row.ID, err)
	}
	return &job, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

var (
	_ port.JobStore      = (*Store)(nil)
	_ port.ExpiredPurger = (*Store)(nil)
)
