// Package sqlitedb holds the typed queries over the jobs and job_queue tables.
package sqlitedb

import (
	"context"
)

const countQueue = `
SELECT COUNT(*) FROM job_queue
`

func (q *Queries) CountQueue(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countQueue)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteExpiredJobs = `
DELETE FROM jobs
WHERE expires_at <= ?
`

func (q *Queries) DeleteExpiredJobs(ctx context.Context, expiresAt int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpiredJobs, expiresAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getLiveJob = `
SELECT id, status, document, created_at, expires_at
FROM jobs
WHERE id = ? AND expires_at > ?
`

type GetLiveJobParams struct {
	ID        string
	ExpiresAt int64
}

func (q *Queries) GetLiveJob(ctx context.Context, arg GetLiveJobParams) (Job, error) {
	row := q.db.QueryRowContext(ctx, getLiveJob, arg.ID, arg.ExpiresAt)
	var i Job
	err := row.Scan(
		&i.ID,
		&i.Status,
		&i.Document,
		&i.CreatedAt,
		&i.ExpiresAt,
	)
	return i, err
}

const listLiveJobs = `
SELECT id, status, document, created_at, expires_at
FROM jobs
WHERE expires_at > ?
`

func (q *Queries) ListLiveJobs(ctx context.Context, expiresAt int64) ([]Job, error) {
	rows, err := q.db.QueryContext(ctx, listLiveJobs, expiresAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Job
	for rows.Next() {
		var i Job
		if err := rows.Scan(
			&i.ID,
			&i.Status,
			&i.Document,
			&i.CreatedAt,
			&i.ExpiresAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const popQueue = `
DELETE FROM job_queue
WHERE seq = (SELECT seq FROM job_queue ORDER BY seq LIMIT 1)
RETURNING job_id
`

func (q *Queries) PopQueue(ctx context.Context) (string, error) {
	row := q.db.QueryRowContext(ctx, popQueue)
	var job_id string
	err := row.Scan(&job_id)
	return job_id, err
}

const pushQueue = `
INSERT INTO job_queue (job_id, enqueued_at)
VALUES (?, ?)
`

type PushQueueParams struct {
	JobID      string
	EnqueuedAt int64
}

func (q *Queries) PushQueue(ctx context.Context, arg PushQueueParams) error {
	_, err := q.db.ExecContext(ctx, pushQueue, arg.JobID, arg.EnqueuedAt)
	return err
}

const updateLiveJob = `
UPDATE jobs
SET status = ?, document = ?, expires_at = ?
WHERE id = ? AND expires_at > ?
  AND status NOT IN ('completed', 'failed', 'cancelled')
`

type UpdateLiveJobParams struct {
	Status    string
	Document  string
	ExpiresAt int64
	ID        string
	Now       int64
}

// UpdateLiveJob reports the number of rows replaced: zero when the row is
// missing, expired or already terminal.
func (q *Queries) UpdateLiveJob(ctx context.Context, arg UpdateLiveJobParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateLiveJob,
		arg.Status,
		arg.Document,
		arg.ExpiresAt,
		arg.ID,
		arg.Now,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const upsertJob = `
INSERT INTO jobs (id, status, document, created_at, expires_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    status = excluded.status,
    document = excluded.document,
    expires_at = excluded.expires_at
`

type UpsertJobParams struct {
	ID        string
	Status    string
	Document  string
	CreatedAt int64
	ExpiresAt int64
}

func (q *Queries) UpsertJob(ctx context.Context, arg UpsertJobParams) error {
	_, err := q.db.ExecContext(ctx, upsertJob,
		arg.ID,
		arg.Status,
		arg.Document,
		arg.CreatedAt,
		arg.ExpiresAt,
	)
	return err
}
