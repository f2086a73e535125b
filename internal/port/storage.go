package port

import (
	"context"

	"github.com/bnema/framer/internal/domain"
)

// JobStore is the system of record for job documents. Put always writes the
// full record and refreshes its TTL.
//
// Update replaces a live record only while its stored status is not
// terminal, as one atomic step. It returns domain.ErrJobFinished when the
// stored record is terminal and domain.ErrNotFound when there is none.
type JobStore interface {
	Put(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	Get(ctx context.Context, id string) (*domain.Job, error)
	ListAll(ctx context.Context) ([]*domain.Job, error)
	Ping(ctx context.Context) error
}

// ExpiredPurger is implemented by stores without native key expiry.
type ExpiredPurger interface {
	PurgeExpired(ctx context.Context) (int, error)
}
