package mealplan

import (
	"meal-planner/internal/core/catalog"
	"meal-planner/internal/infrastructure/config"
)

// fixedRandom 依序回傳固定數值，Shuffle 不改變順序
type fixedRandom struct {
	values []float64
	i      int
}

func (f *fixedRandom) Float64() float64 {
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func (f *fixedRandom) Shuffle(n int, swap func(i, j int)) {}

// reverseRandom Shuffle 反轉順序
type reverseRandom struct{ fixedRandom }

func (r *reverseRandom) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func testPlannerConfig() config.PlannerConfig {
	return config.PlannerConfig{
		MaxRecipeCost:          200,
		MaxDealPrice:           200,
		RealStoreProbability:   0.7,
		DefaultPrice:           15,
		DistributionWeight:     0.6,
		PriceWeight:            0.4,
		ZeroPriceScore:         0,
		Seed:                   42,
		ExcludePantry:          true,
		RecommendationMinScore: 40,
		RecommendationLimit:    6,
	}
}

func deal(name, price, category, store string) catalog.Deal {
	return catalog.Deal{Name: name, PriceText: price, Category: category, Store: store}
}
