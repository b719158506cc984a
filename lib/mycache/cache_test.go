package mycache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/mytime"
)

func TestInMemoryCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	nower := mytime.NewMockNower(ctrl)
	sut := NewInMemoryCache(nower)

	t.Run("miss", func(t *testing.T) {
		_, found, err := sut.Get(c, "product:shirt")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("hit before expiry", func(t *testing.T) {
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		nower.EXPECT().Now().Return(mytime.ExampleTime.Add(4 * time.Minute))

		err := sut.Set(c, "product:shirt", []byte(`{"handle":"shirt"}`), 5*time.Minute)
		assert.NoError(t, err)

		value, found, err := sut.Get(c, "product:shirt")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `{"handle":"shirt"}`, string(value))
	})

	t.Run("miss after expiry", func(t *testing.T) {
		nower.EXPECT().Now().Return(mytime.ExampleTime.Add(5 * time.Minute))

		_, found, err := sut.Get(c, "product:shirt")
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	c := context.Background()
	if err := client.Ping(c).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer client.Close()

	sut := newRedisCacheFromClient(client)
	client.Del(c, keyPrefix+"test:product")

	_, found, err := sut.Get(c, "test:product")
	assert.NoError(t, err)
	assert.False(t, found)

	err = sut.Set(c, "test:product", []byte("value"), time.Minute)
	assert.NoError(t, err)

	value, found, err := sut.Get(c, "test:product")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", string(value))
}
