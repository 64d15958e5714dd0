package mealplan

import (
	"strings"

	"meal-planner/internal/core/catalog"
)

// FilterOptions 優惠篩選的額外限制
type FilterOptions struct {
	// MaxDealPrice 超過此價格的優惠視為非日常食品，0 表示不限制
	MaxDealPrice float64
}

var organicMarkers = []string{"økologisk", "organic"}

// FilterDeals 保留食品分類的優惠，依序套用 organic、lessMeat、preferredStores
// 條件皆為 AND，結果可為空
func FilterDeals(deals []catalog.Deal, prefs Preferences, opts FilterOptions) []catalog.Deal {
	allowed := make(map[string]struct{}, len(FoodCategories))
	for _, c := range FoodCategories {
		allowed[c] = struct{}{}
	}

	stores := make(map[string]struct{}, len(prefs.PreferredStores))
	for _, s := range prefs.PreferredStores {
		if s = normalizeName(s); s != "" {
			stores[s] = struct{}{}
		}
	}

	result := make([]catalog.Deal, 0, len(deals))
	for _, d := range deals {
		if _, ok := allowed[strings.TrimSpace(d.Category)]; !ok {
			continue
		}
		if opts.MaxDealPrice > 0 && ParsePrice(d.PriceText) > opts.MaxDealPrice {
			continue
		}
		if prefs.Organic && !isOrganic(d) {
			continue
		}
		if prefs.LessMeat && strings.TrimSpace(d.Category) == meatCategory {
			continue
		}
		if len(stores) > 0 {
			if _, ok := stores[normalizeName(d.Store)]; !ok {
				continue
			}
		}
		result = append(result, d)
	}
	return result
}

func isOrganic(d catalog.Deal) bool {
	if strings.TrimSpace(d.Category) == organicCategory {
		return true
	}
	name := normalizeName(d.Name)
	for _, marker := range organicMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
