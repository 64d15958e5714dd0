package mealplan

// StoreUsage 單次菜單產生中各商店被指派的食材數，只增不減
type StoreUsage struct {
	order  []string
	counts map[string]int
}

// NewStoreUsage 所有已知商店從 0 開始
func NewStoreUsage(stores []string) *StoreUsage {
	u := &StoreUsage{counts: make(map[string]int, len(stores))}
	for _, s := range stores {
		if _, ok := u.counts[s]; ok || s == "" {
			continue
		}
		u.order = append(u.order, s)
		u.counts[s] = 0
	}
	return u
}

// Count 商店目前的使用次數
func (u *StoreUsage) Count(store string) int {
	return u.counts[store]
}

// Increment 使用次數加一，未知商店會加入追蹤
func (u *StoreUsage) Increment(store string) {
	if _, ok := u.counts[store]; !ok {
		u.order = append(u.order, store)
	}
	u.counts[store]++
}

// LeastUsed 使用次數最少的商店，同數時取較早加入者
func (u *StoreUsage) LeastUsed() (string, bool) {
	best, found := "", false
	for _, s := range u.order {
		if !found || u.counts[s] < u.counts[best] {
			best, found = s, true
		}
	}
	return best, found
}

// Snapshot 目前計數的複本
func (u *StoreUsage) Snapshot() map[string]int {
	out := make(map[string]int, len(u.counts))
	for k, v := range u.counts {
		out[k] = v
	}
	return out
}
