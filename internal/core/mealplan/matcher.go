package mealplan

import (
	"strings"
	"unicode/utf8"

	"meal-planner/internal/core/catalog"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// 首字比對時忽略過短的單字
const minFirstWordLen = 3

// Matcher 將食材對應到優惠，找不到時估價並分配商店
type Matcher struct {
	tables               *Tables
	distributionWeight   float64
	priceWeight          float64
	zeroPriceScore       float64
	defaultPrice         float64
	realStoreProbability float64
}

// NewMatcher 創建比對器
func NewMatcher(cfg config.PlannerConfig, tables *Tables) *Matcher {
	return &Matcher{
		tables:               tables,
		distributionWeight:   cfg.DistributionWeight,
		priceWeight:          cfg.PriceWeight,
		zeroPriceScore:       cfg.ZeroPriceScore,
		defaultPrice:         cfg.DefaultPrice,
		realStoreProbability: cfg.RealStoreProbability,
	}
}

// candidate 預先處理過的優惠
type candidate struct {
	deal      catalog.Deal
	name      string
	firstWord string
	price     float64
}

// prepareDeals 每個請求只解析一次價格，無法辨識的價格記錄警告
func prepareDeals(deals []catalog.Deal) []candidate {
	out := make([]candidate, 0, len(deals))
	for _, d := range deals {
		price, ok := parsePriceChecked(d.PriceText)
		if !ok {
			common.LogWarn("unparseable deal price, treating as 0",
				zap.String("deal", d.Name),
				zap.String("store", d.Store),
				zap.String("price", d.PriceText),
			)
		}
		name := normalizeName(d.Name)
		c := candidate{deal: d, name: name, price: price}
		if fields := strings.Fields(name); len(fields) > 0 {
			c.firstWord = fields[0]
		}
		out = append(out, c)
	}
	return out
}

// Match 對單一食材比對優惠並更新商店使用次數
func (m *Matcher) Match(ing Ingredient, deals []catalog.Deal, usage *StoreUsage, rng RandomSource) MatchedIngredient {
	return m.match(ing, prepareDeals(deals), usage, rng)
}

func (m *Matcher) match(ing Ingredient, deals []candidate, usage *StoreUsage, rng RandomSource) MatchedIngredient {
	item := normalizeName(ing.Name)

	best := -1
	bestScore := 0.0
	for i := range deals {
		if !m.matches(item, &deals[i]) {
			continue
		}
		score := m.score(&deals[i], usage)
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}

	if best >= 0 {
		c := deals[best]
		usage.Increment(c.deal.Store)
		result := MatchedIngredient{
			Ingredient: ing,
			Price:      c.price,
			OnSale:     true,
			Store:      c.deal.Store,
			DealInfo: &DealInfo{
				OriginalPriceText: c.deal.PriceText,
				DealName:          c.deal.Name,
				Category:          c.deal.Category,
			},
		}
		if c.price <= 0 {
			result.OnSale = false
			result.Price = m.tables.EstimatePrice(item, m.defaultPrice)
		}
		return result
	}

	common.LogDebug("no deal found for ingredient", zap.String("ingredient", ing.Name))

	result := MatchedIngredient{
		Ingredient: ing,
		Price:      m.tables.EstimatePrice(item, m.defaultPrice),
		Store:      PseudoStore,
	}
	if rng.Float64() < m.realStoreProbability {
		if store, ok := usage.LeastUsed(); ok {
			usage.Increment(store)
			result.Store = store
		}
	}
	return result
}

// matches 依序嘗試直接包含、首字包含、同義詞
func (m *Matcher) matches(item string, c *candidate) bool {
	if item == "" || c.name == "" {
		return false
	}
	if strings.Contains(c.name, item) || strings.Contains(item, c.name) {
		return true
	}
	if utf8.RuneCountInString(c.firstWord) >= minFirstWordLen && strings.Contains(item, c.firstWord) {
		return true
	}
	if fields := strings.Fields(item); len(fields) > 0 &&
		utf8.RuneCountInString(fields[0]) >= minFirstWordLen && strings.Contains(c.name, fields[0]) {
		return true
	}
	return m.tables.synonymMatch(item, c.name)
}

// score 分散度與價格的加權分數，越高越好
func (m *Matcher) score(c *candidate, usage *StoreUsage) float64 {
	distribution := 1 / float64(usage.Count(c.deal.Store)+1)
	priceScore := m.zeroPriceScore
	if c.price > 0 {
		priceScore = 1 / c.price
	}
	return m.distributionWeight*distribution + m.priceWeight*priceScore
}
