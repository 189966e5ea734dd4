// Package profilecache caches computed spending profiles per user and day.
//
// A profile is valid for the calendar day it was computed on, but the TTL
// is not the real freshness mechanism: whoever records a new transaction
// must call Invalidate so insights never ignore a just-logged entry.
package profilecache

import (
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/spendy-ai/spendy/internal/model"
)

const dayLayout = "2006-01-02"

type entry struct {
	day     string
	profile model.SpendingProfile
}

// Cache is a day-scoped spending-profile cache.
type Cache struct {
	c *ristretto.Cache
}

// New builds a cache sized for a modest number of active users.
func New() (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

// Get returns the cached profile for the user if one was computed on the
// same calendar day as now.
func (c *Cache) Get(userID string, now time.Time) (model.SpendingProfile, bool) {
	v, ok := c.c.Get(userID)
	if !ok {
		return model.SpendingProfile{}, false
	}
	e, ok := v.(entry)
	if !ok || e.day != now.Format(dayLayout) {
		return model.SpendingProfile{}, false
	}
	return e.profile, true
}

// Put stores a profile computed at now.
func (c *Cache) Put(userID string, now time.Time, p model.SpendingProfile) {
	c.c.Set(userID, entry{day: now.Format(dayLayout), profile: p}, 1)
}

// Invalidate drops the user's cached profile. Call on every new
// transaction for the user.
func (c *Cache) Invalidate(userID string) {
	c.c.Del(userID)
}

// Wait blocks until pending writes are applied. Intended for tests;
// ristretto applies Set asynchronously.
func (c *Cache) Wait() {
	c.c.Wait()
}

// Close releases the underlying cache.
func (c *Cache) Close() {
	c.c.Close()
}
