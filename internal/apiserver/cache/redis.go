package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisListingCache stores listings as JSON under <prefix>listing:<id>
type RedisListingCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisListingCache connects to Redis and verifies the connection
func NewRedisListingCache(cfg *config.CacheConfig, logger *zap.Logger) (*RedisListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisListingCache{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
		logger: logger.Named("cache.listing"),
	}, nil
}

func (c *RedisListingCache) key(id database.ID) string {
	return c.prefix + "listing:" + id.String()
}

func (c *RedisListingCache) Get(ctx context.Context, id database.ID) (*database.Listing, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("failed to read cached listing", zap.String("id", id.String()), zap.Error(err))
		}
		return nil, false
	}

	var listing database.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		c.logger.Warn("dropping undecodable cached listing", zap.String("id", id.String()), zap.Error(err))
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &listing, true
}

func (c *RedisListingCache) Set(ctx context.Context, listing *database.Listing) {
	data, err := json.Marshal(listing)
	if err != nil {
		c.logger.Warn("failed to encode listing", zap.String("id", listing.ID.String()), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(listing.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache listing", zap.String("id", listing.ID.String()), zap.Error(err))
	}
}

func (c *RedisListingCache) Invalidate(ctx context.Context, id database.ID) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.logger.Warn("failed to invalidate cached listing", zap.String("id", id.String()), zap.Error(err))
	}
}

func (c *RedisListingCache) Close() error {
	return c.client.Close()
}
