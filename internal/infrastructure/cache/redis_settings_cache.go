// Package cache mantiene en Redis una copia de la tabla settings.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
	"github.com/jhoicas/Orcamentos-api/pkg/config"
)

const settingsKey = "orcamentos:settings"

// RedisSettingsCache implementa ports.SettingsCache con un único valor JSON.
type RedisSettingsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ ports.SettingsCache = (*RedisSettingsCache)(nil)

// NewRedisClient abre el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
		ReadTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// NewRedisSettingsCache ttl <= 0 guarda sin expiración.
func NewRedisSettingsCache(rdb *redis.Client, ttl time.Duration) *RedisSettingsCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisSettingsCache{rdb: rdb, ttl: ttl}
}

func (c *RedisSettingsCache) Get(ctx context.Context) (map[string]*string, bool, error) {
	raw, err := c.rdb.Get(ctx, settingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: leer settings: %w", err)
	}
	settings, err := decodeSettings(raw)
	if err != nil {
		return nil, false, err
	}
	return settings, true, nil
}

func (c *RedisSettingsCache) Set(ctx context.Context, settings map[string]*string) error {
	raw, err := encodeSettings(settings)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, settingsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar settings: %w", err)
	}
	return nil
}

func (c *RedisSettingsCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("redis: invalidar settings: %w", err)
	}
	return nil
}

// Los valores nil viajan como null y vuelven como nil.
func encodeSettings(settings map[string]*string) ([]byte, error) {
	if settings == nil {
		settings = map[string]*string{}
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("redis: codificar settings: %w", err)
	}
	return raw, nil
}

func decodeSettings(raw []byte) (map[string]*string, error) {
	out := map[string]*string{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("redis: decodificar settings: %w", err)
	}
	return out, nil
}
