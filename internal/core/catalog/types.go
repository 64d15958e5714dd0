package catalog

import (
	"sort"
	"strings"
	"time"
)

// UnknownStore 資料來源無法辨識商店時的名稱，不列入已知商店
const UnknownStore = "Unknown"

// Deal 單一超市優惠商品，載入後不可變，(Name, Store) 為識別
type Deal struct {
	Name       string `json:"name"`
	AmountText string `json:"amount"`
	PriceText  string `json:"price"`
	Category   string `json:"category"`
	Store      string `json:"store"`
}

// Recipe 外部食譜資料
type Recipe struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	IngredientsText string `json:"ingredients"`
	Servings        int    `json:"servings"`
	Source          string `json:"source"`
}

// Snapshot 某一時間點的完整優惠與食譜資料，建立後只讀
type Snapshot struct {
	Version  string
	LoadedAt time.Time
	Deals    []Deal
	Recipes  []Recipe
	stores   []string
}

// NewSnapshot 建立快照並預先計算商店清單
func NewSnapshot(version string, deals []Deal, recipes []Recipe) *Snapshot {
	s := &Snapshot{
		Version:  version,
		LoadedAt: time.Now(),
		Deals:    deals,
		Recipes:  recipes,
	}
	seen := make(map[string]bool)
	for _, d := range deals {
		if d.Store == "" || strings.EqualFold(strings.TrimSpace(d.Store), UnknownStore) || seen[d.Store] {
			continue
		}
		seen[d.Store] = true
		s.stores = append(s.stores, d.Store)
	}
	return s
}

// Stores 依出現順序回傳所有商店名稱
func (s *Snapshot) Stores() []string {
	out := make([]string, len(s.stores))
	copy(out, s.stores)
	return out
}

// StoreStat 商店統計
type StoreStat struct {
	Name       string `json:"name"`
	DealCount  int    `json:"deal_count"`
	Categories int    `json:"categories"`
}

// StoreStats 統計每家商店的優惠數量與分類數
func (s *Snapshot) StoreStats() []StoreStat {
	counts := make(map[string]int)
	categories := make(map[string]map[string]bool)
	for _, d := range s.Deals {
		counts[d.Store]++
		if categories[d.Store] == nil {
			categories[d.Store] = make(map[string]bool)
		}
		categories[d.Store][d.Category] = true
	}

	stats := make([]StoreStat, 0, len(s.stores))
	for _, name := range s.stores {
		stats = append(stats, StoreStat{
			Name:       name,
			DealCount:  counts[name],
			Categories: len(categories[name]),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].DealCount > stats[j].DealCount
	})
	return stats
}
