package api

import (
	"context"
	"time"

	catalogHandler "meal-planner/internal/api/handlers/catalog"
	"meal-planner/internal/api/handlers/health"
	planHandler "meal-planner/internal/api/handlers/plan"
	"meal-planner/internal/api/middleware"
	"meal-planner/internal/core/cache"
	"meal-planner/internal/core/catalog"
	"meal-planner/internal/core/mealplan"
	"meal-planner/internal/core/queue"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由，背景清理工作在 ctx 結束時停止
func SetupRouter(ctx context.Context, cfg *config.Config, store *catalog.Store, planner *mealplan.Planner, c cache.Cache, q *queue.Manager) *gin.Engine {
	common.LogInfo("starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) { middleware.Abort(c, common.ErrNotFound) })
	router.NoMethod(func(c *gin.Context) { middleware.Abort(c, common.ErrMethodNotAllowed) })

	// 基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.MaxBodySize))

	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Burst)
		go rl.Run(ctx)
		router.Use(rl.Middleware())
	}

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	go dedup.Run(ctx)
	router.Use(dedup.Middleware())

	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	healthH := health.NewHandler(cfg, store, c, q)
	router.GET("/health", healthH.HealthCheck)
	router.GET("/ready", healthH.ReadinessCheck)
	router.GET("/live", healthH.LivenessCheck)

	plans := planHandler.NewHandler(planner, store, c, q)
	catalogs := catalogHandler.NewHandler(planner, store, c)

	v1 := router.Group("/api/v1")
	{
		mealPlans := v1.Group("/meal-plans")
		{
			mealPlans.POST("", plans.Generate)
			mealPlans.POST("/quick", plans.Quick)
			mealPlans.GET("/:id", plans.Get)
			mealPlans.GET("/:id/shopping-list", plans.ShoppingList)
		}

		v1.GET("/deals", catalogs.Deals)
		v1.GET("/stores", catalogs.Stores)
		v1.GET("/recipes", catalogs.Recipes)
		v1.GET("/recipes/recommendations", catalogs.Recommendations)
	}

	common.LogInfo("router setup completed",
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.String("cache_backend", c.Stats().Backend),
		zap.Int("queue_workers", q.Status().Workers),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.MaxBodySize),
	)

	return router
}
