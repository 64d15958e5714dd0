package health

import (
	"net/http"
	"runtime"
	"time"

	"meal-planner/internal/core/cache"
	"meal-planner/internal/core/catalog"
	"meal-planner/internal/core/queue"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   *CatalogStatus         `json:"catalog,omitempty"`
	Cache     cache.Stats            `json:"cache"`
	Queue     queue.Status           `json:"queue"`
}

// CatalogStatus 資料快照狀態
type CatalogStatus struct {
	Version  string    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
	Deals    int       `json:"deals"`
	Recipes  int       `json:"recipes"`
	Stores   int       `json:"stores"`
}

// Handler 健康檢查處理程序
type Handler struct {
	cfg   *config.Config
	store *catalog.Store
	cache cache.Cache
	queue *queue.Manager
}

// NewHandler 創建健康檢查處理程序
func NewHandler(cfg *config.Config, store *catalog.Store, c cache.Cache, q *queue.Manager) *Handler {
	return &Handler{
		cfg:   cfg,
		store: store,
		cache: c,
		queue: q,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Cache: h.cache.Stats(),
		Queue: h.queue.Status(),
	}

	if snap := h.store.Current(); snap != nil {
		response.Catalog = &CatalogStatus{
			Version:  snap.Version,
			LoadedAt: snap.LoadedAt,
			Deals:    len(snap.Deals),
			Recipes:  len(snap.Recipes),
			Stores:   len(snap.Stores()),
		}
	} else {
		response.Status = "degraded"
	}

	common.LogDebug("health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("status", response.Status),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，資料尚未載入時回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	snap := h.store.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "catalog not loaded",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "ready",
		"catalog_version": snap.Version,
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
