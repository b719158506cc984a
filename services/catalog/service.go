package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MarcGrol/storefront/lib/mycache"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mymetrics"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

type service struct {
	client storefrontclient.StorefrontClient
	cache  mycache.Cache
	ttl    time.Duration
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(client storefrontclient.StorefrontClient, cache mycache.Cache, ttl time.Duration, logger mylog.Logger) *service {
	return &service{
		client: client,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// cached serves the value from the cache or loads and stores it. Results that were not found are not cached.
// A broken cache degrades to always loading.
func cached[T any](c context.Context, s *service, key string, load func() (T, bool, error)) (T, bool, error) {
	data, found, err := s.cache.Get(c, key)
	if err != nil {
		mymetrics.CatalogCacheTotal.WithLabelValues("error").Inc()
		s.logger.Log(c, key, mylog.SeverityWarn, "Error reading %s from cache: %s", key, err)
	} else if found {
		var value T
		err = json.Unmarshal(data, &value)
		if err == nil {
			mymetrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return value, true, nil
		}
		s.logger.Log(c, key, mylog.SeverityWarn, "Error decoding cached %s: %s", key, err)
	} else {
		mymetrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	}

	value, found, err := load()
	if err != nil || !found {
		return value, found, err
	}

	data, err = json.Marshal(value)
	if err == nil {
		err = s.cache.Set(c, key, data, s.ttl)
	}
	if err != nil {
		s.logger.Log(c, key, mylog.SeverityWarn, "Error caching %s: %s", key, err)
	}

	return value, true, nil
}
