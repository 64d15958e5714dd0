package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisKeyPrefix = "mealplan:"

// Redis 以 redis 作為快取後端，TTL 交由 redis 處理
type Redis struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

// NewRedis 連線 redis 並確認可用
func NewRedis(cfg config.CacheConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("redis cache initialized",
		zap.String("addr", cfg.RedisAddr),
		zap.Int("db", cfg.RedisDB),
		zap.Duration("ttl", cfg.TTL),
	)
	return NewRedisWithClient(client, cfg.TTL), nil
}

// NewRedisWithClient 以既有 client 建立後端
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get 取得快取值
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.misses.Add(1)
			common.LogCacheMiss("redis", key)
			return nil, common.ErrCacheMiss
		}
		r.errors.Add(1)
		return nil, common.ErrServiceUnavailable.Wrap(fmt.Errorf("failed to get cache: %w", err))
	}
	r.hits.Add(1)
	common.LogCacheHit("redis", key)
	return data, nil
}

// Set 寫入快取值
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, r.ttl).Err(); err != nil {
		r.errors.Add(1)
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats 取得快取統計，Size 為目前資料庫的鍵數
func (r *Redis) Stats() Stats {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	size, err := r.client.DBSize(ctx).Result()
	if err != nil {
		size = -1
	}
	hits, misses := r.hits.Load(), r.misses.Load()
	return Stats{
		Backend:  "redis",
		Size:     int(size),
		Hits:     hits,
		Misses:   misses,
		Errors:   r.errors.Load(),
		HitRatio: hitRatio(hits, misses),
	}
}

// Close 關閉連線
func (r *Redis) Close() error {
	return r.client.Close()
}
