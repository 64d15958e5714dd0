package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"
)

// Cache 快取後端介面，找不到時回傳 common.ErrCacheMiss
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Stats() Stats
	Close() error
}

// Stats 快取統計
type Stats struct {
	Backend   string  `json:"backend"`
	Size      int     `json:"size"`
	MaxSize   int     `json:"max_size,omitempty"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Errors    int64   `json:"errors"`
	HitRatio  float64 `json:"hit_ratio"`
}

func hitRatio(hits, misses int64) float64 {
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}

// New 依設定建立快取後端，停用時回傳 Noop
func New(cfg config.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		common.LogInfo("cache disabled")
		return Noop{}, nil
	}

	switch cfg.Backend {
	case "", "memory":
		return NewManager(cfg), nil
	case "redis":
		r, err := NewRedis(cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// GetJSON 讀取並解碼 JSON 值
func GetJSON(ctx context.Context, c Cache, key string, v interface{}) error {
	data, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := common.ParseJSONBytes(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal cached value: %w", err)
	}
	return nil
}

// SetJSON 編碼並寫入 JSON 值
func SetJSON(ctx context.Context, c Cache, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return c.Set(ctx, key, data)
}

// Noop 停用快取時使用，所有讀取都未命中
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, common.ErrCacheMiss }
func (Noop) Set(context.Context, string, []byte) error { return nil }
func (Noop) Stats() Stats { return Stats{Backend: "disabled"} }
func (Noop) Close() error { return nil }
