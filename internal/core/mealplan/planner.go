package mealplan

import (
	"context"
	"fmt"
	"math"
	"time"

	"meal-planner/internal/core/catalog"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Planner 菜單產生引擎，可同時服務多個請求
type Planner struct {
	cfg       config.PlannerConfig
	tables    *Tables
	matcher   *Matcher
	tokenizer Tokenizer
	newRand   RandomFactory
	now       func() time.Time
}

// NewPlanner 創建菜單產生引擎，tables 為 nil 時使用預設表
func NewPlanner(cfg config.PlannerConfig, tables *Tables, newRand RandomFactory) *Planner {
	if tables == nil {
		tables = DefaultTables()
	}
	if newRand == nil {
		newRand = NewRandomFactory(cfg.Seed)
	}

	var tokenizer Tokenizer
	if cfg.ExcludePantry {
		tokenizer.Exclusions = tables.PantryStaples
	}

	return &Planner{
		cfg:       cfg,
		tables:    tables,
		matcher:   NewMatcher(cfg, tables),
		tokenizer: tokenizer,
		newRand:   newRand,
		now:       time.Now,
	}
}

// Tokenizer 目前使用的食材切分設定
func (p *Planner) Tokenizer() Tokenizer {
	return p.tokenizer
}

// Tables 目前使用的設定表
func (p *Planner) Tables() *Tables {
	return p.tables
}

func validateRequest(req Request) error {
	if req.FamilySize <= 0 {
		return common.NewValidationError("family_size must be a positive integer")
	}
	if req.Budget <= 0 || math.IsNaN(req.Budget) || math.IsInf(req.Budget, 0) {
		return common.NewValidationError("budget must be a positive number")
	}
	if req.Days <= 0 {
		return common.NewValidationError("days must be a positive integer")
	}
	return nil
}

// GeneratePlan 產生菜單
// 每次呼叫使用獨立的 StoreUsage 與亂數來源，快照只會被讀取
func (p *Planner) GeneratePlan(ctx context.Context, snap *catalog.Snapshot, req Request) (*Plan, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, common.ErrCatalogNotReady
	}

	deals := FilterDeals(snap.Deals, req.Preferences, FilterOptions{MaxDealPrice: p.cfg.MaxDealPrice})
	rng := p.newRand()

	processed, err := p.processRecipes(ctx, snap, deals, rng)
	if err != nil {
		return nil, err
	}

	selected, err := SelectRecipes(processed, req.Days, rng, SelectOptions{
		MaxCost: p.cfg.MaxRecipeCost,
		Tables:  p.tables,
	})
	if err != nil {
		common.LogWarn("cannot generate plan",
			zap.Int("recipes", len(snap.Recipes)),
			zap.Int("processed", len(processed)),
			zap.Int("deals", len(deals)),
		)
		return nil, err
	}

	plan := &Plan{
		ID:             common.GenerateUUID(),
		MealPlanDays:   make([]MealPlanDay, 0, req.Days),
		FamilySize:     req.FamilySize,
		Budget:         req.Budget,
		GeneratedAt:    p.now().UTC(),
		DealCount:      len(deals),
		StoresCount:    len(snap.Stores()),
		CatalogVersion: snap.Version,
	}

	seenStores := make(map[string]struct{})
	totalCost := 0.0
	for i, r := range selected {
		dealMatches := r.DealMatches()
		plan.MealPlanDays = append(plan.MealPlanDays, MealPlanDay{
			Day:            i + 1,
			RecipeID:       r.Recipe.ID,
			RecipeTitle:    r.Recipe.Title,
			Source:         r.Recipe.Source,
			Servings:       req.FamilySize,
			Ingredients:    r.Ingredients,
			Cost:           r.Cost,
			DealMatchCount: dealMatches,
			StealthUpgrade: r.StealthUpgrade,
			Instructions:   r.Instructions,
			StoresUsed:     r.StoresUsed,
		})

		totalCost += r.Cost
		plan.TotalDealMatches += dealMatches
		plan.TotalIngredients += len(r.Ingredients)
		for _, s := range r.StoresUsed {
			if _, ok := seenStores[s]; !ok {
				seenStores[s] = struct{}{}
				plan.StoresUsed = append(plan.StoresUsed, s)
			}
		}
	}

	plan.TotalCost = common.RoundTo(totalCost, 2)
	plan.Savings = common.RoundTo(req.Budget-totalCost, 2)
	if plan.TotalIngredients > 0 {
		plan.DealPercentage = int(math.Round(100 * float64(plan.TotalDealMatches) / float64(plan.TotalIngredients)))
	}
	plan.ShoppingList = BuildShoppingList(plan.MealPlanDays, p.tables)
	plan.Summary = fmt.Sprintf("Smart %d-dages madplan med %d%% tilbuds-match fra %d butikskæder og skjulte sundhedsopgraderinger",
		req.Days, plan.DealPercentage, len(plan.StoresUsed))

	common.LogInfo("meal plan generated",
		zap.String("plan_id", plan.ID),
		zap.Int("days", req.Days),
		zap.Float64("total_cost", plan.TotalCost),
		zap.Int("deal_matches", plan.TotalDealMatches),
		zap.Int("ingredients", plan.TotalIngredients),
		zap.Strings("stores", plan.StoresUsed),
	)
	return plan, nil
}

// processRecipes 切分並比對所有食譜，整個請求共用同一個 StoreUsage
func (p *Planner) processRecipes(ctx context.Context, snap *catalog.Snapshot, deals []catalog.Deal, rng RandomSource) ([]ProcessedRecipe, error) {
	candidates := prepareDeals(deals)
	usage := NewStoreUsage(snap.Stores())

	processed := make([]ProcessedRecipe, 0, len(snap.Recipes))
	for _, recipe := range snap.Recipes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if recipe.Title == "" {
			continue
		}
		ingredients := p.tokenizer.Tokenize(recipe.IngredientsText)
		if len(ingredients) == 0 {
			continue
		}
		processed = append(processed, p.processRecipe(recipe, ingredients, candidates, usage, rng))
	}
	return processed, nil
}

func (p *Planner) processRecipe(recipe catalog.Recipe, ingredients []Ingredient, deals []candidate, usage *StoreUsage, rng RandomSource) ProcessedRecipe {
	matched := make([]MatchedIngredient, 0, len(ingredients))
	cost := 0.0
	onSale := 0
	var stores []string
	seen := make(map[string]struct{})
	for _, ing := range ingredients {
		m := p.matcher.match(ing, deals, usage, rng)
		matched = append(matched, m)
		cost += m.Price
		if m.OnSale {
			onSale++
		}
		if _, ok := seen[m.Store]; !ok {
			seen[m.Store] = struct{}{}
			stores = append(stores, m.Store)
		}
	}

	return ProcessedRecipe{
		Recipe:         recipe,
		Ingredients:    matched,
		Cost:           common.RoundTo(cost, 2),
		DealRatio:      float64(onSale) / float64(len(matched)),
		StoresUsed:     stores,
		StealthUpgrade: p.tables.StealthUpgradeFor(recipe.Title),
		Instructions:   p.tables.InstructionsFor(recipe.Title),
	}
}
