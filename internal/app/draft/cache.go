package draft

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

// Cache memoizes ranked sets per roster key so rerolls against the same
// ten players do not rerun the combination search. Unlike the single
// most-recent-roster slot this replaces, entries for distinct rosters
// coexist, so concurrent pools do not evict each other.
type Cache struct {
	entries *gocache.Cache
}

// NewCache builds a roster cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{entries: gocache.New(ttl, 2*ttl)}
}

// Get returns the ranked set stored for the roster key.
func (c *Cache) Get(key string) (domain.RankedSet, bool) {
	if c == nil {
		return domain.RankedSet{}, false
	}
	raw, ok := c.entries.Get(key)
	if !ok {
		return domain.RankedSet{}, false
	}
	set, ok := raw.(domain.RankedSet)
	return set, ok
}

// Put stores a ranked set under its roster key with the default TTL.
func (c *Cache) Put(set domain.RankedSet) {
	if c == nil {
		return
	}
	c.entries.Set(set.Key, set, gocache.DefaultExpiration)
}
