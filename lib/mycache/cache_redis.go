package mycache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:"

type redisCache struct {
	client *redis.Client
}

func newRedisCache(c context.Context, addr string) (*redisCache, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	err := client.Ping(c).Err()
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("error connecting to redis at %s: %w", addr, err)
	}
	return newRedisCacheFromClient(client), func() {
		client.Close()
	}, nil
}

func newRedisCacheFromClient(client *redis.Client) *redisCache {
	return &redisCache{
		client: client,
	}
}

func (rc *redisCache) Get(c context.Context, key string) ([]byte, bool, error) {
	value, err := rc.client.Get(c, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error getting %s from redis: %w", key, err)
	}
	return value, true, nil
}

func (rc *redisCache) Set(c context.Context, key string, value []byte, ttl time.Duration) error {
	err := rc.client.Set(c, keyPrefix+key, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("error setting %s in redis: %w", key, err)
	}
	return nil
}
