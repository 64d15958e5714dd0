package mealplan

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"meal-planner/internal/core/catalog"
	"meal-planner/internal/pkg/common"
)

func sampleSnapshot() *catalog.Snapshot {
	return catalog.NewSnapshot("test", catalog.SampleDeals(), catalog.SampleRecipes())
}

func newTestPlanner(seed int64) *Planner {
	return NewPlanner(testPlannerConfig(), DefaultTables(), NewRandomFactory(seed))
}

func TestGeneratePlanProperties(t *testing.T) {
	snap := sampleSnapshot()
	for _, seed := range []int64{1, 7, 42} {
		for days := 1; days <= 10; days++ {
			t.Run(fmt.Sprintf("seed%d/days%d", seed, days), func(t *testing.T) {
				plan, err := newTestPlanner(seed).GeneratePlan(context.Background(), snap, Request{
					FamilySize: 4,
					Budget:     750,
					Days:       days,
				})
				if err != nil {
					t.Fatalf("GeneratePlan returned error: %v", err)
				}
				checkPlan(t, plan, days)
			})
		}
	}
}

func checkPlan(t *testing.T, plan *Plan, days int) {
	t.Helper()

	if len(plan.MealPlanDays) != days {
		t.Fatalf("expected %d days, got %d", days, len(plan.MealPlanDays))
	}
	if plan.TotalDealMatches > plan.TotalIngredients {
		t.Errorf("deal matches %d exceed ingredients %d", plan.TotalDealMatches, plan.TotalIngredients)
	}
	if plan.DealPercentage < 0 || plan.DealPercentage > 100 {
		t.Errorf("deal percentage out of range: %d", plan.DealPercentage)
	}

	total := 0.0
	for i, day := range plan.MealPlanDays {
		if day.Day != i+1 {
			t.Errorf("expected day %d, got %d", i+1, day.Day)
		}
		if day.Servings != plan.FamilySize {
			t.Errorf("expected servings %d, got %d", plan.FamilySize, day.Servings)
		}
		if len(day.Instructions) == 0 || day.StealthUpgrade == "" {
			t.Errorf("day %d is missing instructions or upgrade", day.Day)
		}
		for _, ing := range day.Ingredients {
			if ing.Price < 0 {
				t.Errorf("negative price for %s: %v", ing.Name, ing.Price)
			}
			if ing.Store == "" || ing.Name == "" {
				t.Errorf("incomplete ingredient %+v", ing)
			}
		}
		total += day.Cost
	}
	if plan.TotalCost != common.RoundTo(total, 2) {
		t.Errorf("total cost %v does not match day costs %v", plan.TotalCost, total)
	}
	if plan.Savings != common.RoundTo(plan.Budget-total, 2) {
		t.Errorf("unexpected savings %v", plan.Savings)
	}

	for key, items := range plan.ShoppingList {
		if len(items) == 0 {
			t.Errorf("shopping list section %s is empty", key)
		}
	}
	if !strings.Contains(plan.Summary, fmt.Sprintf("%d-dages", days)) ||
		!strings.Contains(plan.Summary, fmt.Sprintf("%d%%", plan.DealPercentage)) ||
		!strings.Contains(plan.Summary, fmt.Sprintf("fra %d butikskæder", len(plan.StoresUsed))) {
		t.Errorf("unexpected summary %q", plan.Summary)
	}
}

func TestProcessedRecipeDealRatio(t *testing.T) {
	p := newTestPlanner(3)
	snap := sampleSnapshot()
	processed, err := p.processRecipes(context.Background(), snap, snap.Deals, &fixedRandom{values: []float64{0.5}})
	if err != nil {
		t.Fatal(err)
	}
	if len(processed) != len(snap.Recipes) {
		t.Fatalf("expected %d processed recipes, got %d", len(snap.Recipes), len(processed))
	}
	for _, r := range processed {
		if r.DealRatio < 0 || r.DealRatio > 1 {
			t.Errorf("%s: deal ratio %v out of range", r.Recipe.ID, r.DealRatio)
		}
		if want := float64(r.DealMatches()) / float64(len(r.Ingredients)); r.DealRatio != want {
			t.Errorf("%s: deal ratio %v, want %v", r.Recipe.ID, r.DealRatio, want)
		}
	}
}

func TestGeneratePlanDeterministic(t *testing.T) {
	snap := sampleSnapshot()
	req := Request{FamilySize: 2, Budget: 500, Days: 5, Preferences: Preferences{LessMeat: true}}
	p := newTestPlanner(99)

	first, err := p.GeneratePlan(context.Background(), snap, req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.GeneratePlan(context.Background(), snap, req)
	if err != nil {
		t.Fatal(err)
	}

	first.ID, second.ID = "", ""
	first.GeneratedAt, second.GeneratedAt = time.Time{}, time.Time{}
	if !reflect.DeepEqual(first, second) {
		t.Error("plans generated with the same seed differ")
	}
}

func TestGeneratePlanPadding(t *testing.T) {
	recipes := catalog.SampleRecipes()[:3]
	snap := catalog.NewSnapshot("three", catalog.SampleDeals(), recipes)

	plan, err := newTestPlanner(5).GeneratePlan(context.Background(), snap, Request{FamilySize: 3, Budget: 1000, Days: 7})
	if err != nil {
		t.Fatalf("GeneratePlan returned error: %v", err)
	}
	if len(plan.MealPlanDays) != 7 {
		t.Fatalf("expected 7 days, got %d", len(plan.MealPlanDays))
	}
	counts := map[string]int{}
	for _, d := range plan.MealPlanDays {
		counts[d.RecipeID]++
	}
	if len(counts) != 3 {
		t.Errorf("expected all 3 recipes to be used, got %v", counts)
	}
}

func TestGeneratePlanInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"MissingFamilySize", Request{Budget: 500, Days: 3}},
		{"NegativeFamilySize", Request{FamilySize: -1, Budget: 500, Days: 3}},
		{"MissingBudget", Request{FamilySize: 2, Days: 3}},
		{"NegativeBudget", Request{FamilySize: 2, Budget: -10, Days: 3}},
		{"MissingDays", Request{FamilySize: 2, Budget: 500}},
	}

	p := newTestPlanner(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := p.GeneratePlan(context.Background(), sampleSnapshot(), tt.req)
			if !common.IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if plan != nil {
				t.Error("expected no partial plan")
			}
		})
	}
}

func TestGeneratePlanEmptyCatalog(t *testing.T) {
	req := Request{FamilySize: 2, Budget: 500, Days: 3}

	t.Run("NoRecipes", func(t *testing.T) {
		snap := catalog.NewSnapshot("empty", catalog.SampleDeals(), nil)
		if _, err := newTestPlanner(1).GeneratePlan(context.Background(), snap, req); !errors.Is(err, common.ErrEmptyCatalog) {
			t.Errorf("expected ErrEmptyCatalog, got %v", err)
		}
	})

	t.Run("OnlyPantryIngredients", func(t *testing.T) {
		snap := catalog.NewSnapshot("pantry", catalog.SampleDeals(), []catalog.Recipe{
			{ID: "r1", Title: "Krydderi", IngredientsText: "salt, peber, olie", Servings: 4},
		})
		if _, err := newTestPlanner(1).GeneratePlan(context.Background(), snap, req); !errors.Is(err, common.ErrEmptyCatalog) {
			t.Errorf("expected ErrEmptyCatalog, got %v", err)
		}
	})

	t.Run("NotLoaded", func(t *testing.T) {
		if _, err := newTestPlanner(1).GeneratePlan(context.Background(), nil, req); !errors.Is(err, common.ErrCatalogNotReady) {
			t.Errorf("expected ErrCatalogNotReady, got %v", err)
		}
	})
}

func TestGeneratePlanCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestPlanner(1).GeneratePlan(ctx, sampleSnapshot(), Request{FamilySize: 2, Budget: 500, Days: 3})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGeneratePlanPreferredStores(t *testing.T) {
	plan, err := newTestPlanner(11).GeneratePlan(context.Background(), sampleSnapshot(), Request{
		FamilySize:  2,
		Budget:      600,
		Days:        3,
		Preferences: Preferences{PreferredStores: []string{"Netto"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, day := range plan.MealPlanDays {
		for _, ing := range day.Ingredients {
			if ing.OnSale && ing.Store != "Netto" {
				t.Errorf("on-sale ingredient %s from %s", ing.Name, ing.Store)
			}
		}
	}
	if plan.DealCount != 2 {
		t.Errorf("expected 2 Netto deals, got %d", plan.DealCount)
	}
}

func TestStealthUpgradeFor(t *testing.T) {
	tables := DefaultTables()
	tests := []struct {
		title string
		key   string
	}{
		{"Boller i karry", "boller i karry"},
		{"Kylling i karry med ris", "kylling i karry"},
		{"Lasagne", "lasagne"},
		{"Pasta carbonara", "carbonara"},
	}
	for _, tt := range tests {
		if got := tables.StealthUpgradeFor(tt.title); got != tables.StealthUpgrades[tt.key] {
			t.Errorf("StealthUpgradeFor(%q) = %q", tt.title, got)
		}
	}
	if got := tables.StealthUpgradeFor("Pandekager"); got != tables.DefaultStealthUpgrade {
		t.Errorf("expected default upgrade, got %q", got)
	}
}

func TestRecommend(t *testing.T) {
	p := newTestPlanner(8)
	recs, err := p.Recommend(context.Background(), sampleSnapshot(), 3)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if len(recs) > 3 {
		t.Errorf("expected at most 3 recommendations, got %d", len(recs))
	}
	for i, r := range recs {
		if r.MatchScore < 40 {
			t.Errorf("%s: score %d below threshold", r.RecipeID, r.MatchScore)
		}
		if r.MatchedIngredients > r.TotalIngredients {
			t.Errorf("%s: matched %d > total %d", r.RecipeID, r.MatchedIngredients, r.TotalIngredients)
		}
		if i > 0 && recs[i-1].MatchScore < r.MatchScore {
			t.Errorf("recommendations not sorted: %+v", recs)
		}
	}

	if _, err := p.Recommend(context.Background(), nil, 3); !errors.Is(err, common.ErrCatalogNotReady) {
		t.Errorf("expected ErrCatalogNotReady, got %v", err)
	}
}
