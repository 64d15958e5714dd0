package catalog

import (
	"context"
	"time"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Reloader 定期重新載入資料並替換快照
type Reloader struct {
	loader   *Loader
	store    *Store
	interval time.Duration
}

// NewReloader 創建重新載入器
func NewReloader(loader *Loader, store *Store, interval time.Duration) *Reloader {
	return &Reloader{
		loader:   loader,
		store:    store,
		interval: interval,
	}
}

// Reload 立即重新載入一次，失敗時保留舊快照
func (r *Reloader) Reload(ctx context.Context) error {
	snap, err := r.loader.Load(ctx)
	if err != nil {
		common.LogWarn("catalog reload failed, keeping previous snapshot", zap.Error(err))
		return err
	}
	r.store.Swap(snap)
	return nil
}

// Run 依 interval 重新載入直到 ctx 結束，interval <= 0 時直接返回
func (r *Reloader) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	common.LogInfo("catalog reloader started", zap.Duration("interval", r.interval))
	for {
		select {
		case <-ctx.Done():
			common.LogInfo("catalog reloader stopped")
			return
		case <-ticker.C:
			_ = r.Reload(ctx)
		}
	}
}
