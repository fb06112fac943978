package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitInvalidURL(t *testing.T) {
	err := Init("://invalid-url", "")
	assert.Error(t, err)
}

func TestInit_PingFailureKeepsPreviousClient(t *testing.T) {
	prev := GetClient()
	origPing := pingClient
	t.Cleanup(func() {
		pingClient = origPing
		SetClient(prev)
	})
	pingClient = func(context.Context, *goredis.Client) error {
		return errors.New("ping failed")
	}

	err := Init("redis://127.0.0.1:6379/0", "secret")
	assert.Error(t, err)
	assert.Equal(t, prev, GetClient())
}

func TestInit_Success(t *testing.T) {
	srv := useMiniredis(t)
	require.NoError(t, Init("redis://"+srv.Addr()+"/0", ""))
	assert.True(t, Enabled())
	assert.NoError(t, Ping(context.Background()))
}

func TestBasicOps(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()

	require.NoError(t, Set(ctx, "k", "v", time.Minute))
	v, err := Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	ok, err := SetNX(ctx, "k", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, Del(ctx, "k"))
	_, err = Get(ctx, "k")
	assert.True(t, IsNil(err))
}

func TestSetClientAndBasicOpsWithUnreachableRedis(t *testing.T) {
	cli := goredis.NewClient(&goredis.Options{
		Addr:         "127.0.0.1:0",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
	})
	prev := GetClient()
	SetClient(cli)
	t.Cleanup(func() {
		SetClient(prev)
		_ = cli.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.Error(t, Set(ctx, "k", "v", time.Second))
	_, err := Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, IsNil(err))
	assert.Error(t, Del(ctx, "k"))
	_, err = SetNX(ctx, "k", "v", time.Second)
	assert.Error(t, err)
}
