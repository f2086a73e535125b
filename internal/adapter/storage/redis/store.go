package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/port"
	goredis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "job:"
	queueKey  = "processing_queue"
	scanCount = 100
)

// updateScript replaces the record only while its stored status is not
// terminal. Returns 0 for a missing key, -1 for a terminal record.
var updateScript = goredis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if not cur then
	return 0
end
local status = cjson.decode(cur).status
if status == 'completed' or status == 'failed' or status == 'cancelled' then
	return -1
end
local ttl = tonumber(ARGV[2])
if ttl > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ttl)
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// Store keeps one key per job with the record TTL applied on every write.
// Expiry is enforced by redis itself.
type Store struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewStore(redisURL string, ttl time.Duration) (*Store, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewStoreWithClient(goredis.NewClient(opts), ttl), nil
}

func NewStoreWithClient(client *goredis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *Store) Put(ctx context.Context, job *domain.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job %s: %w", job.ID, err)
	}
	if err := s.client.Set(ctx, keyPrefix+job.ID, data, s.ttl).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, job *domain.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job %s: %w", job.ID, err)
	}

	res, err := updateScript.Run(ctx, s.client, []string{keyPrefix + job.ID}, data, s.ttl.Milliseconds()).Int()
	if err != nil {
		return unavailable(err)
	}
	switch res {
	case 0:
		return domain.ErrNotFound
	case -1:
		return domain.ErrJobFinished
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Job, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, unavailable(err)
	}
	return decode(id, data)
}

// ListAll scans the job keyspace. Keys that expire between the scan and the
// fetch are skipped.
func (s *Store) ListAll(ctx context.Context) ([]*domain.Job, error) {
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", scanCount).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, unavailable(err)
	}
	if len(keys) == 0 {
		return []*domain.Job{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable(err)
	}

	jobs := make([]*domain.Job, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		job, err := decode(strings.TrimPrefix(keys[i], keyPrefix), []byte(raw))
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func decode(id string, data []byte) (*domain.Job, error) {
	var job domain.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	return &job, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

var _ port.JobStore = (*Store)(nil)
