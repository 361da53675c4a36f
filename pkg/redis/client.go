package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/daycarehub/backend/config"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Client wraps the redis connection used for search and metadata caching.
type Client struct {
	rdb *redis.Client
}

// NewClient connects to redis and verifies the connection.
func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddress(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolTimeout:  cfg.Redis.PoolTimeout,
	})

	client := &Client{rdb: rdb}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		logger.Error("Failed to connect to Redis").
			String("address", cfg.RedisAddress()).
			Err(err).
			Log()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis").
		String("address", cfg.RedisAddress()).
		Int("database", cfg.Redis.Database).
		Log()

	return client, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// SetJSON marshals value and stores it under key with the given TTL.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Error("Failed to set cache").
			String("key", key).
			Duration(ttl).
			Err(err).
			Log()
		return fmt.Errorf("failed to set cache: %w", err)
	}

	logger.Debug("Cache set").
		String("key", key).
		Duration(ttl).
		Int("data_size", len(data)).
		Log()

	return nil
}

// GetJSON loads the value stored under key into dest. It returns false
// on a cache miss.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		logger.Error("Failed to get cache").
			String("key", key).
			Err(err).
			Log()
		return false, fmt.Errorf("failed to get cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		logger.Error("Failed to unmarshal cache value").
			String("key", key).
			Err(err).
			Log()
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	logger.Debug("Cache hit").
		String("key", key).
		Log()

	return true, nil
}

// Delete removes a cache entry.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		logger.Error("Failed to delete cache").
			String("key", key).
			Err(err).
			Log()
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// DeleteByPattern removes cache entries matching pattern.
func (c *Client) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get keys by pattern: %w", err)
	}

	if len(keys) == 0 {
		return 0, nil
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Error("Failed to delete cache by pattern").
			String("pattern", pattern).
			Err(err).
			Log()
		return 0, fmt.Errorf("failed to delete cache by pattern: %w", err)
	}

	logger.Info("Cache deleted by pattern").
		String("pattern", pattern).
		Int("deleted_count", len(keys)).
		Log()

	return len(keys), nil
}

// Exists checks whether a key is present.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	result, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return result > 0, nil
}

// GetStats returns redis server and pool statistics.
func (c *Client) GetStats(ctx context.Context) (map[string]interface{}, error) {
	info, err := c.rdb.Info(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get Redis info: %w", err)
	}

	stats := make(map[string]interface{})
	stats["info"] = info
	stats["memory_info"] = c.rdb.Info(ctx, "memory").Val()

	poolStats := c.rdb.PoolStats()
	stats["pool_stats"] = map[string]interface{}{
		"hits":        poolStats.Hits,
		"misses":      poolStats.Misses,
		"total_conns": poolStats.TotalConns,
		"idle_conns":  poolStats.IdleConns,
		"stale_conns": poolStats.StaleConns,
	}

	return stats, nil
}

// FlushAll clears the whole cache database. Use with caution.
func (c *Client) FlushAll(ctx context.Context) error {
	if err := c.rdb.FlushAll(ctx).Err(); err != nil {
		return fmt.Errorf("failed to flush all cache: %w", err)
	}

	logger.Warn("All cache flushed").Log()
	return nil
}
