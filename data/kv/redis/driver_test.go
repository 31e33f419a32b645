package redis

import (
	"context"
	"os"
	"testing"

	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/data/kv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRequiresAddr(t *testing.T) {
	_, err := kv.Open(context.Background(), &config.Session{Driver: "redis", Redis: &config.SessionRedis{}})
	assert.ErrorContains(t, err, "address is empty")
}

func TestKeyPrefix(t *testing.T) {
	s := New(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "taskmate:")
	defer s.Close()
	assert.Equal(t, "taskmate:userData", s.key("userData"))
}

// Runs against a live server when TASKMATE_TEST_REDIS_ADDR is set.
func TestStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("TASKMATE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TASKMATE_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := kv.Open(ctx, &config.Session{
		Driver: "redis",
		Redis:  &config.SessionRedis{Addr: addr, Prefix: "taskmate-test:"},
	})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "userData", "v1"))
	got, err := s.Get(ctx, "userData")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	require.NoError(t, s.Delete(ctx, "userData"))
	_, err = s.Get(ctx, "userData")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}
