package catalog

import (
	"sync/atomic"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 持有目前的資料快照，重新載入時整份替換
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore 創建資料存放區
func NewStore(initial *Snapshot) *Store {
	s := &Store{}
	if initial != nil {
		s.current.Store(initial)
	}
	return s
}

// Current 取得目前快照，尚未載入時為 nil
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap 以新快照取代舊快照並回傳舊快照
func (s *Store) Swap(next *Snapshot) *Snapshot {
	prev := s.current.Swap(next)
	fields := []zap.Field{
		zap.String("version", next.Version),
		zap.Int("deals", len(next.Deals)),
		zap.Int("recipes", len(next.Recipes)),
		zap.Int("stores", len(next.stores)),
	}
	if prev != nil {
		fields = append(fields, zap.String("previous_version", prev.Version))
	}
	common.LogInfo("catalog snapshot swapped", fields...)
	return prev
}
