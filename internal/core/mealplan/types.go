package mealplan

import (
	"time"

	"meal-planner/internal/core/catalog"
)

// Ingredient 從食譜文字切出的單一食材
type Ingredient struct {
	OriginalText string `json:"original_text"`
	Name         string `json:"item"`
	QuantityText string `json:"amount"`
}

// DealInfo 對應到的優惠資訊
type DealInfo struct {
	OriginalPriceText string `json:"original_price"`
	DealName          string `json:"deal_name"`
	Category          string `json:"category"`
}

// MatchedIngredient 已估價並指派商店的食材
type MatchedIngredient struct {
	Ingredient
	Price    float64   `json:"price"`
	OnSale   bool      `json:"on_sale"`
	Store    string    `json:"store"`
	DealInfo *DealInfo `json:"deal_info,omitempty"`
}

// ProcessedRecipe 單次請求內計算過成本的食譜
type ProcessedRecipe struct {
	Recipe         catalog.Recipe
	Ingredients    []MatchedIngredient
	Cost           float64
	DealRatio      float64
	StoresUsed     []string
	StealthUpgrade string
	Instructions   []string
}

// DealMatches 特價食材數
func (r ProcessedRecipe) DealMatches() int {
	n := 0
	for _, ing := range r.Ingredients {
		if ing.OnSale {
			n++
		}
	}
	return n
}

// MealPlanDay 菜單中的一天
type MealPlanDay struct {
	Day            int                 `json:"day"`
	RecipeID       string              `json:"recipe_id"`
	RecipeTitle    string              `json:"recipe"`
	Source         string              `json:"source"`
	Servings       int                 `json:"servings"`
	Ingredients    []MatchedIngredient `json:"ingredients"`
	Cost           float64             `json:"cost"`
	DealMatchCount int                 `json:"deal_matches"`
	StealthUpgrade string              `json:"stealth_upgrade"`
	Instructions   []string            `json:"instructions"`
	StoresUsed     []string            `json:"stores_used"`
}

// ShoppingItem 購物清單項目，同名食材已合併
type ShoppingItem struct {
	Item            string    `json:"item"`
	Price           float64   `json:"price"`
	OnSale          bool      `json:"on_sale"`
	OccurrenceCount int       `json:"occurrence_count"`
	DealInfo        *DealInfo `json:"deal_info,omitempty"`
}

// ShoppingList 以商店區段分組的購物清單，不含空區段
type ShoppingList map[string][]ShoppingItem

// Preferences 飲食偏好
type Preferences struct {
	Organic         bool     `json:"organic"`
	LessMeat        bool     `json:"less_meat"`
	PreferredStores []string `json:"preferred_stores"`
}

// Request 產生菜單的參數
type Request struct {
	FamilySize  int         `json:"family_size"`
	Budget      float64     `json:"budget"`
	Days        int         `json:"days"`
	Preferences Preferences `json:"preferences"`
}

// Plan 產生的菜單
type Plan struct {
	ID               string        `json:"id"`
	MealPlanDays     []MealPlanDay `json:"meal_plan"`
	TotalCost        float64       `json:"total_cost"`
	TotalDealMatches int           `json:"total_deal_matches"`
	TotalIngredients int           `json:"total_ingredients"`
	DealPercentage   int           `json:"deal_percentage"`
	ShoppingList     ShoppingList  `json:"shopping_list"`
	Savings          float64       `json:"savings"`
	StoresUsed       []string      `json:"stores_used"`
	Summary          string        `json:"summary"`
	FamilySize       int           `json:"family_size"`
	Budget           float64       `json:"budget"`
	GeneratedAt      time.Time     `json:"generated_at"`
	DealCount        int           `json:"deal_count"`
	StoresCount      int           `json:"stores_count"`
	CatalogVersion   string        `json:"catalog_version"`
}

// Recommendation 依特價比例推薦的食譜
type Recommendation struct {
	RecipeID           string `json:"recipe_id"`
	Title              string `json:"name"`
	Source             string `json:"source"`
	Servings           int    `json:"serves"`
	MatchScore         int    `json:"match_score"`
	MatchedIngredients int    `json:"matched_ingredients"`
	TotalIngredients   int    `json:"total_ingredients"`
	StoresUsed         int    `json:"stores_used"`
	StealthUpgrade     string `json:"stealth_upgrade"`
}
