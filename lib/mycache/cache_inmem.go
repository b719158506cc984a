package mycache

import (
	"context"
	"sync"
	"time"

	"github.com/MarcGrol/storefront/lib/mytime"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

type InMemoryCache struct {
	sync.Mutex
	nower   mytime.Nower
	entries map[string]entry
}

func NewInMemoryCache(nower mytime.Nower) *InMemoryCache {
	return &InMemoryCache{
		nower:   nower,
		entries: map[string]entry{},
	}
}

func (mc *InMemoryCache) Get(c context.Context, key string) ([]byte, bool, error) {
	mc.Lock()
	defer mc.Unlock()

	e, found := mc.entries[key]
	if !found {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !mc.nower.Now().Before(e.expiresAt) {
		delete(mc.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set with a ttl of zero keeps the value forever.
func (mc *InMemoryCache) Set(c context.Context, key string, value []byte, ttl time.Duration) error {
	mc.Lock()
	defer mc.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = mc.nower.Now().Add(ttl)
	}
	mc.entries[key] = e
	return nil
}
