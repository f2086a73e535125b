package service

import (
	"time"

	"github.com/bnema/framer/internal/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ActiveJobCache holds copies of recently written jobs so status polling
// does not hit the store for every request. Entries expire after ttl and
// the least recently used entry is evicted beyond size.
type ActiveJobCache struct {
	lru *expirable.LRU[string, domain.Job]
}

func NewActiveJobCache(size int, ttl time.Duration) *ActiveJobCache {
	return &ActiveJobCache{
		lru: expirable.NewLRU[string, domain.Job](size, nil, ttl),
	}
}

func (c *ActiveJobCache) Put(job *domain.Job) {
	c.lru.Add(job.ID, *job)
}

func (c *ActiveJobCache) Get(id string) (*domain.Job, bool) {
	job, ok := c.lru.Get(id)
	if !ok {
		return nil, false
	}
	return &job, true
}

func (c *ActiveJobCache) Remove(id string) {
	c.lru.Remove(id)
}

func (c *ActiveJobCache) Len() int {
	return c.lru.Len()
}
