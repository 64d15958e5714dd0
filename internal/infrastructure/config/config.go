package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Log         LogConfig       `mapstructure:"log"`
	Cache       CacheConfig     `mapstructure:"cache"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Queue       QueueConfig     `mapstructure:"queue"`
	Catalog     CatalogConfig   `mapstructure:"catalog"`
	Planner     PlannerConfig   `mapstructure:"planner"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	MaxBodySize int64           `mapstructure:"max_body_size"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LogConfig 日誌設定
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	Mode  string `mapstructure:"mode"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"` // memory | redis
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
	Burst    int           `mapstructure:"burst"`
}

// QueueConfig 菜單產生工作隊列配置
type QueueConfig struct {
	Workers int `mapstructure:"workers"`
	MaxSize int `mapstructure:"max_size"`
}

// CatalogConfig 優惠與食譜資料來源設定
type CatalogConfig struct {
	Dir            string        `mapstructure:"dir"`
	DealSources    string        `mapstructure:"deal_sources"`   // "Coop=TilbudCoop.csv;Lidl=TilbudLidl.csv"
	RecipeSources  string        `mapstructure:"recipe_sources"` // "Arla=arla_recipes.csv"
	ReloadInterval time.Duration `mapstructure:"reload_interval"`
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	UseSamples     bool          `mapstructure:"use_samples"`
}

// PlannerConfig 菜單產生引擎參數
type PlannerConfig struct {
	MaxRecipeCost          float64 `mapstructure:"max_recipe_cost"`
	MaxDealPrice           float64 `mapstructure:"max_deal_price"`
	RealStoreProbability   float64 `mapstructure:"real_store_probability"`
	DefaultPrice           float64 `mapstructure:"default_price"`
	DistributionWeight     float64 `mapstructure:"distribution_weight"`
	PriceWeight            float64 `mapstructure:"price_weight"`
	ZeroPriceScore         float64 `mapstructure:"zero_price_score"`
	Seed                   int64   `mapstructure:"seed"`
	ExcludePantry          bool    `mapstructure:"exclude_pantry"`
	RecommendationMinScore int     `mapstructure:"recommendation_min_score"`
	RecommendationLimit    int     `mapstructure:"recommendation_limit"`
}

// Source 單一資料來源（名稱 + 檔案路徑或 URL）
type Source struct {
	Name string
	Path string
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 不存在時不視為錯誤
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定常用環境變量
	v.BindEnv("log.level", "APP_LOG_LEVEL", "LOG_LEVEL")
	v.BindEnv("log.mode", "APP_LOG_MODE", "LOG_MODE")
	v.BindEnv("cache.enabled", "APP_CACHE_ENABLED", "CACHE_ENABLED")
	v.BindEnv("cache.redis_addr", "APP_CACHE_REDIS_ADDR", "REDIS_ADDR")
	v.BindEnv("cache.redis_password", "APP_CACHE_REDIS_PASSWORD", "REDIS_PASSWORD")
	v.BindEnv("rate_limit.enabled", "APP_RATE_LIMIT_ENABLED", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "APP_RATE_LIMIT_REQUESTS", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "APP_RATE_LIMIT_WINDOW", "RATE_LIMIT_WINDOW")
	v.BindEnv("queue.workers", "APP_QUEUE_WORKERS", "QUEUE_WORKERS")
	v.BindEnv("dedup_window", "APP_DEDUP_WINDOW", "DEDUP_WINDOW")
	v.BindEnv("catalog.dir", "APP_CATALOG_DIR", "CATALOG_DIR")
	v.BindEnv("planner.seed", "APP_PLANNER_SEED", "PLANNER_SEED")
	v.BindEnv("server.port", "APP_SERVER_PORT", "PORT")

	// 設定檔（可選）
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "meal-planner")

	// 伺服器設定
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "30s")

	// 日誌設定
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.mode", "")

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.burst", 20)

	// 隊列設定
	v.SetDefault("queue.workers", 4)
	v.SetDefault("queue.max_size", 100)

	// 資料來源設定
	v.SetDefault("catalog.dir", ".")
	v.SetDefault("catalog.deal_sources", "Coop=TilbudCoop.csv;Lidl=TilbudLidl.csv;Netto=TilbudNetto.csv;REMA 1000=TilbudRema.csv;Føtex=TilbudFoetex.csv")
	v.SetDefault("catalog.recipe_sources", "Arla=arla_recipes.csv;Valdemarsro=valdemarsro_recipes.csv")
	v.SetDefault("catalog.reload_interval", "0s")
	v.SetDefault("catalog.fetch_timeout", "15s")
	v.SetDefault("catalog.use_samples", true)

	// 菜單引擎設定
	v.SetDefault("planner.max_recipe_cost", 200)
	v.SetDefault("planner.max_deal_price", 200)
	v.SetDefault("planner.real_store_probability", 0.7)
	v.SetDefault("planner.default_price", 15)
	v.SetDefault("planner.distribution_weight", 0.6)
	v.SetDefault("planner.price_weight", 0.4)
	v.SetDefault("planner.zero_price_score", 0)
	v.SetDefault("planner.seed", 0)
	v.SetDefault("planner.exclude_pantry", true)
	v.SetDefault("planner.recommendation_min_score", 40)
	v.SetDefault("planner.recommendation_limit", 6)

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("max_body_size", 1<<20) // 1MB
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Cache.Enabled {
		switch config.Cache.Backend {
		case "memory":
			if config.Cache.MaxSize <= 0 {
				return fmt.Errorf("invalid cache max size")
			}
			if config.Cache.CleanupInterval <= 0 {
				return fmt.Errorf("invalid cache cleanup interval")
			}
		case "redis":
			if config.Cache.RedisAddr == "" {
				return fmt.Errorf("redis address is required for redis cache backend")
			}
		default:
			return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit settings")
	}

	if config.Queue.Workers <= 0 || config.Queue.MaxSize <= 0 {
		return fmt.Errorf("invalid queue settings")
	}

	p := config.Planner
	if p.RealStoreProbability < 0 || p.RealStoreProbability > 1 {
		return fmt.Errorf("planner real store probability must be within [0,1]")
	}
	if p.DistributionWeight < 0 || p.PriceWeight < 0 {
		return fmt.Errorf("planner weights must not be negative")
	}
	if p.MaxRecipeCost <= 0 {
		return fmt.Errorf("planner max recipe cost must be positive")
	}
	if p.DefaultPrice < 0 {
		return fmt.Errorf("planner default price must not be negative")
	}

	if _, err := ParseSources(config.Catalog.DealSources); err != nil {
		return fmt.Errorf("deal sources: %w", err)
	}
	if _, err := ParseSources(config.Catalog.RecipeSources); err != nil {
		return fmt.Errorf("recipe sources: %w", err)
	}

	return nil
}

// ParseSources 解析 "名稱=路徑" 以分號分隔的來源清單
func ParseSources(raw string) ([]Source, error) {
	var sources []Source
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, path, ok := strings.Cut(part, "=")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("malformed source %q, expected Name=path", part)
		}
		sources = append(sources, Source{Name: name, Path: path})
	}
	return sources, nil
}
