package mealplan

import (
	"sort"

	"meal-planner/internal/pkg/common"
)

// SelectOptions 選擇食譜的限制
type SelectOptions struct {
	// MaxCost 單一食譜成本上限，0 表示不限制
	MaxCost float64
	Tables  *Tables
}

// maxCategoryRepeats 同一蛋白質分類可出現的次數
func maxCategoryRepeats(days int) int {
	if days <= 5 {
		return 1
	}
	return 2
}

// SelectRecipes 挑選 days 道食譜
// 先依 dealRatio、商店數、成本排序，再在打亂後的順序中挑選不重複且分類不過量的食譜
// 不足時依排序結果循環補齊
func SelectRecipes(processed []ProcessedRecipe, days int, rng RandomSource, opts SelectOptions) ([]ProcessedRecipe, error) {
	eligible := make([]ProcessedRecipe, 0, len(processed))
	for _, r := range processed {
		if opts.MaxCost > 0 && r.Cost > opts.MaxCost {
			continue
		}
		eligible = append(eligible, r)
	}
	if len(eligible) == 0 {
		return nil, common.ErrEmptyCatalog
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.DealRatio != b.DealRatio {
			return a.DealRatio > b.DealRatio
		}
		if len(a.StoresUsed) != len(b.StoresUsed) {
			return len(a.StoresUsed) > len(b.StoresUsed)
		}
		return a.Cost < b.Cost
	})

	shuffled := make([]ProcessedRecipe, len(eligible))
	copy(shuffled, eligible)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	tables := opts.Tables
	if tables == nil {
		tables = DefaultTables()
	}
	maxRepeats := maxCategoryRepeats(days)

	selected := make([]ProcessedRecipe, 0, days)
	usedIDs := make(map[string]struct{}, days)
	categoryCount := make(map[string]int)
	for _, r := range shuffled {
		if len(selected) >= days {
			break
		}
		if _, ok := usedIDs[r.Recipe.ID]; ok {
			continue
		}
		category := tables.ProteinOf(r.Ingredients)
		if categoryCount[category] >= maxRepeats {
			continue
		}
		selected = append(selected, r)
		usedIDs[r.Recipe.ID] = struct{}{}
		categoryCount[category]++
	}

	for len(selected) < days {
		selected = append(selected, eligible[len(selected)%len(eligible)])
	}
	return selected, nil
}
