package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientIsNoop(t *testing.T) {
	c := NewSettingsCache(nil, time.Minute)
	ctx := context.Background()

	m, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, m)
	require.NoError(t, c.Set(ctx, api.DefaultMenuSettings()))
	require.NoError(t, c.Invalidate(ctx))
}

// closedAddr returns an address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	assert.Nil(t, NewRedisClient(context.Background(), "", ""))
	assert.Nil(t, NewRedisClient(context.Background(), closedAddr(t), ""))
}

func TestErrorsAreWrapped(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        closedAddr(t),
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	defer client.Close()
	c := NewSettingsCache(client, time.Minute)
	ctx := context.Background()

	_, _, err := c.Get(ctx)
	assert.ErrorContains(t, err, "redis get")
	assert.ErrorContains(t, c.Set(ctx, api.DefaultMenuSettings()), "redis set")
	assert.ErrorContains(t, c.Invalidate(ctx), "redis del")
}
