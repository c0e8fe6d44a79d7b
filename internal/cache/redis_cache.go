package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"go-retail-pos/internal/model"
)

const (
	settingsKey = "retail:settings"
	settingsTTL = 5 * time.Minute
	opTimeout   = 2 * time.Second
)

type RedisSettingsCache struct {
	client *redis.Client
}

func NewRedisSettingsCache(addr, password string, db int) *RedisSettingsCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisSettingsCache{client: client}
}

func (c *RedisSettingsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisSettingsCache) Close() error {
	return c.client.Close()
}

func (c *RedisSettingsCache) Get() (*model.Settings, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := c.client.Get(ctx, settingsKey).Result()
	if err != nil {
		return nil, false
	}

	var settings model.Settings
	if err := json.Unmarshal([]byte(val), &settings); err != nil {
		return nil, false
	}
	return &settings, true
}

func (c *RedisSettingsCache) Set(settings *model.Settings) {
	if settings == nil {
		return
	}
	payload, err := json.Marshal(settings)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	c.client.Set(ctx, settingsKey, payload, settingsTTL)
}

func (c *RedisSettingsCache) Invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	c.client.Del(ctx, settingsKey)
}
