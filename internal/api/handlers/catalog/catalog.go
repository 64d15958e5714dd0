package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"meal-planner/internal/api/handlers"
	"meal-planner/internal/core/cache"
	"meal-planner/internal/core/catalog"
	"meal-planner/internal/core/mealplan"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	dealPageSize   = 50
	maxRecommended = 50
	filterAll      = "all"
)

// DealsResponse 優惠列表
type DealsResponse struct {
	Deals  []catalog.Deal `json:"deals"`
	Total  int            `json:"total"`
	Stores []string       `json:"stores"`
}

// StoresResponse 商店統計
type StoresResponse struct {
	Stores      []catalog.StoreStat `json:"stores"`
	TotalStores int                 `json:"total_stores"`
}

// RecipeView 食譜與拆解後的食材
type RecipeView struct {
	catalog.Recipe
	ParsedIngredients []mealplan.Ingredient `json:"parsed_ingredients"`
}

// RecipesResponse 食譜列表
type RecipesResponse struct {
	Recipes []RecipeView `json:"recipes"`
	Total   int          `json:"total"`
}

// RecommendationsResponse 推薦食譜
type RecommendationsResponse struct {
	Recommendations []mealplan.Recommendation `json:"recommendations"`
	Total           int                       `json:"total"`
	CatalogVersion  string                    `json:"catalog_version"`
}

// Handler 優惠與食譜資料的查詢
type Handler struct {
	planner *mealplan.Planner
	store   *catalog.Store
	cache   cache.Cache
}

// NewHandler 創建資料查詢處理程序
func NewHandler(planner *mealplan.Planner, store *catalog.Store, c cache.Cache) *Handler {
	return &Handler{
		planner: planner,
		store:   store,
		cache:   c,
	}
}

func (h *Handler) snapshot(c *gin.Context) (*catalog.Snapshot, bool) {
	snap := h.store.Current()
	if snap == nil {
		handlers.RespondError(c, common.ErrCatalogNotReady)
		return nil, false
	}
	return snap, true
}

// Deals GET /api/v1/deals?category=&store=
func (h *Handler) Deals(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	var prefs mealplan.Preferences
	if store := strings.TrimSpace(c.Query("store")); store != "" && !strings.EqualFold(store, filterAll) {
		prefs.PreferredStores = []string{store}
	}
	category := strings.TrimSpace(c.Query("category"))
	if strings.EqualFold(category, filterAll) {
		category = ""
	}

	deals := mealplan.FilterDeals(snap.Deals, prefs, mealplan.FilterOptions{})
	if category != "" {
		filtered := deals[:0]
		for _, d := range deals {
			if strings.EqualFold(strings.TrimSpace(d.Category), category) {
				filtered = append(filtered, d)
			}
		}
		deals = filtered
	}

	total := len(deals)
	if len(deals) > dealPageSize {
		deals = deals[:dealPageSize]
	}

	c.JSON(http.StatusOK, DealsResponse{
		Deals:  deals,
		Total:  total,
		Stores: snap.Stores(),
	})
}

// Stores GET /api/v1/stores
func (h *Handler) Stores(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	stats := snap.StoreStats()
	c.JSON(http.StatusOK, StoresResponse{
		Stores:      stats,
		TotalStores: len(stats),
	})
}

// Recipes GET /api/v1/recipes
func (h *Handler) Recipes(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	tokenizer := h.planner.Tokenizer()
	views := make([]RecipeView, 0, len(snap.Recipes))
	for _, r := range snap.Recipes {
		views = append(views, RecipeView{
			Recipe:            r,
			ParsedIngredients: tokenizer.Tokenize(r.IngredientsText),
		})
	}

	c.JSON(http.StatusOK, RecipesResponse{
		Recipes: views,
		Total:   len(views),
	})
}

// Recommendations GET /api/v1/recipes/recommendations?limit=
// 結果依快照版本快取，資料重新載入後自然失效
func (h *Handler) Recommendations(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxRecommended {
			handlers.RespondError(c, common.NewValidationError("limit must be an integer between 0 and 50"))
			return
		}
		limit = n
	}

	key := "recommendations:" + snap.Version + ":" + strconv.Itoa(limit)
	var recs []mealplan.Recommendation
	err := cache.GetJSON(c.Request.Context(), h.cache, key, &recs)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrCacheMiss):
		recs, err = h.planner.Recommend(c.Request.Context(), snap, limit)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		if err := cache.SetJSON(c.Request.Context(), h.cache, key, recs); err != nil {
			common.LogWarn("failed to cache recommendations", zap.String("key", key), zap.Error(err))
		}
	default:
		common.LogWarn("recommendation cache unavailable", zap.Error(err))
		recs, err = h.planner.Recommend(c.Request.Context(), snap, limit)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, RecommendationsResponse{
		Recommendations: recs,
		Total:           len(recs),
		CatalogVersion:  snap.Version,
	})
}
