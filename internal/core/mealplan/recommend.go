package mealplan

import (
	"context"
	"math"
	"sort"

	"meal-planner/internal/core/catalog"
	"meal-planner/internal/pkg/common"
)

// Recommend 依特價食材比例推薦食譜，每道食譜各自從零開始計算商店分配
func (p *Planner) Recommend(ctx context.Context, snap *catalog.Snapshot, limit int) ([]Recommendation, error) {
	if snap == nil {
		return nil, common.ErrCatalogNotReady
	}
	if limit <= 0 {
		limit = p.cfg.RecommendationLimit
	}

	candidates := prepareDeals(FilterDeals(snap.Deals, Preferences{}, FilterOptions{MaxDealPrice: p.cfg.MaxDealPrice}))
	rng := p.newRand()

	recs := make([]Recommendation, 0, len(snap.Recipes))
	for _, recipe := range snap.Recipes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ingredients := p.tokenizer.Tokenize(recipe.IngredientsText)
		if recipe.Title == "" || len(ingredients) == 0 {
			continue
		}

		r := p.processRecipe(recipe, ingredients, candidates, NewStoreUsage(snap.Stores()), rng)
		matched := r.DealMatches()
		score := int(math.Round(100 * float64(matched) / float64(len(r.Ingredients))))
		if score < p.cfg.RecommendationMinScore {
			continue
		}

		realStores := 0
		for _, s := range r.StoresUsed {
			if s != PseudoStore {
				realStores++
			}
		}

		recs = append(recs, Recommendation{
			RecipeID:           recipe.ID,
			Title:              recipe.Title,
			Source:             recipe.Source,
			Servings:           recipe.Servings,
			MatchScore:         score,
			MatchedIngredients: matched,
			TotalIngredients:   len(r.Ingredients),
			StoresUsed:         realStores,
			StealthUpgrade:     r.StealthUpgrade,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].MatchScore != recs[j].MatchScore {
			return recs[i].MatchScore > recs[j].MatchScore
		}
		return recs[i].StoresUsed > recs[j].StoresUsed
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}
