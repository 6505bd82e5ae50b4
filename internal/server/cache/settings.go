// Package cache keeps a short-lived copy of the menu settings in Redis so the
// landing page does not hit PostgreSQL on every render.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/redis/go-redis/v9"
)

const settingsKey = "focusgroup:menu_settings"

// SettingsCache is safe to use with a nil client; every call is then a miss
// or a no-op.
type SettingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSettingsCache(client *redis.Client, ttl time.Duration) *SettingsCache {
	return &SettingsCache{client: client, ttl: ttl}
}

// Get reports ok=false on a miss.
func (c *SettingsCache) Get(ctx context.Context) (m *api.MenuSettings, ok bool, err error) {
	if c.client == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, settingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	m = &api.MenuSettings{}
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, false, fmt.Errorf("decode cached settings: %w", err)
	}
	return m, true, nil
}

func (c *SettingsCache) Set(ctx context.Context, m api.MenuSettings) error {
	if c.client == nil {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := c.client.Set(ctx, settingsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *SettingsCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// NewRedisClient pings addr and returns nil when Redis is unreachable so
// callers degrade to no caching.
func NewRedisClient(ctx context.Context, addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
