package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Job 在工作者中執行的任務
type Job func(ctx context.Context) error

type request struct {
	ctx    context.Context
	job    Job
	result chan error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	RejectedCount  int64 `json:"rejected_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Manager 固定數量工作者的隊列管理器，限制同時進行的菜單計算
type Manager struct {
	workers int
	maxSize int
	queue   chan *request
	done    chan struct{}
	wg      sync.WaitGroup

	processed atomic.Int64
	rejected  atomic.Int64
	closeOnce sync.Once
}

// NewManager 創建隊列管理器並啟動工作者
func NewManager(cfg config.QueueConfig) *Manager {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 1
	}

	m := &Manager{
		workers: workers,
		maxSize: maxSize,
		queue:   make(chan *request, maxSize),
		done:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}

	common.LogInfo("queue manager started",
		zap.Int("workers", workers),
		zap.Int("max_queue_size", maxSize),
	)
	return m
}

func (m *Manager) worker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.done:
			return
		case req := <-m.queue:
			// 等待期間已取消的請求不再計算
			if err := req.ctx.Err(); err != nil {
				req.result <- err
				continue
			}
			err := req.job(req.ctx)
			m.processed.Add(1)
			req.result <- err
		}
	}
}

// Do 將任務加入隊列並等待完成；隊列已滿時立即回傳 ErrQueueFull
func (m *Manager) Do(ctx context.Context, job Job) error {
	select {
	case <-m.done:
		return common.ErrQueueClosed
	default:
	}

	req := &request{
		ctx:    ctx,
		job:    job,
		result: make(chan error, 1),
	}

	select {
	case m.queue <- req:
	default:
		m.rejected.Add(1)
		common.LogWarn("queue is full",
			zap.Int("queue_length", len(m.queue)),
			zap.Int("max_queue_size", m.maxSize),
		)
		return common.ErrQueueFull
	}

	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-m.done:
		return common.ErrQueueClosed
	}
}

// Status 獲取隊列狀態
func (m *Manager) Status() Status {
	return Status{
		QueueLength:    len(m.queue),
		ProcessedCount: m.processed.Load(),
		RejectedCount:  m.rejected.Load(),
		MaxQueueSize:   m.maxSize,
		Workers:        m.workers,
	}
}

// Close 停止工作者，進行中的任務會先完成
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()
}
