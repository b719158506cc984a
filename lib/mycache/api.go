package mycache

import (
	"context"
	"time"

	"github.com/MarcGrol/storefront/lib/mytime"
)

//go:generate mockgen -source=api.go -package mycache -destination cache_mock.go Cache
type Cache interface {
	Get(c context.Context, key string) ([]byte, bool, error)
	Set(c context.Context, key string, value []byte, ttl time.Duration) error
}

// New uses redis when an address is given and an in-process cache otherwise.
func New(c context.Context, redisAddr string) (Cache, func(), error) {
	if redisAddr != "" {
		return newRedisCache(c, redisAddr)
	}
	return NewInMemoryCache(mytime.RealNower{}), func() {}, nil
}
