package fx

import (
	"sync/atomic"
	"time"

	"github.com/etnz/vitals"
)

// Cache memoizes the last fetched rate for TTL.
//
// It is owned by the caller and safe for concurrent use. Two callers seeing an expired
// rate at the same time both refresh it, the last write wins.
type Cache struct {
	TTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time

	last atomic.Pointer[vitals.ExchangeRate]
}

// NewCache returns an empty cache.
func NewCache(ttl time.Duration) *Cache { return &Cache{TTL: ttl} }

func (c *Cache) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Get returns the cached rate, and whether it is younger than TTL.
// ok is false when nothing was ever cached.
func (c *Cache) Get() (rate vitals.ExchangeRate, fresh, ok bool) {
	r := c.last.Load()
	if r == nil {
		return vitals.ExchangeRate{}, false, false
	}
	return *r, c.now().Sub(r.Timestamp) < c.TTL, true
}

// Put replaces the cached rate.
func (c *Cache) Put(rate vitals.ExchangeRate) { c.last.Store(&rate) }
