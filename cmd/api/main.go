package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner/internal/api"
	"meal-planner/internal/core/cache"
	"meal-planner/internal/core/catalog"
	"meal-planner/internal/core/mealplan"
	"meal-planner/internal/core/queue"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.Log.Level, cfg.Log.File, cfg.Log.Mode); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("starting application",
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.Bool("debug", cfg.App.Debug),
		zap.Int("port", cfg.Server.Port),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 載入優惠與食譜資料
	loader, err := catalog.NewLoader(cfg.Catalog)
	if err != nil {
		common.LogFatal("failed to create catalog loader", zap.Error(err))
	}
	store := catalog.NewStore(nil)
	reloader := catalog.NewReloader(loader, store, cfg.Catalog.ReloadInterval)
	if err := reloader.Reload(ctx); err != nil {
		// 服務仍啟動，/ready 會回報尚未就緒直到下次重新載入成功
		common.LogError("initial catalog load failed", zap.Error(err))
	}
	go reloader.Run(ctx)

	// 初始化快取
	planCache, err := cache.New(cfg.Cache)
	if err != nil {
		common.LogFatal("failed to initialize cache", zap.Error(err))
	}
	defer planCache.Close()

	planQueue := queue.NewManager(cfg.Queue)
	defer planQueue.Close()

	planner := mealplan.NewPlanner(cfg.Planner, nil, nil)
	router := api.SetupRouter(ctx, cfg, store, planner, planCache, planQueue)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("failed to start server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	common.LogInfo("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("server exited")
}
