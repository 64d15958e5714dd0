package plan

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"meal-planner/internal/api/handlers"
	"meal-planner/internal/core/cache"
	"meal-planner/internal/core/catalog"
	"meal-planner/internal/core/mealplan"
	"meal-planner/internal/core/queue"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// MaxDays 單次請求允許的最多天數
	MaxDays = 31

	quickFamilySize = 2
	quickBudget     = 750.0
	quickDays       = 5

	planKeyPrefix = "plan:"
)

var errPlanNotFound = common.NewError(common.ErrCodeNotFound, "plan not found or expired", http.StatusNotFound, nil)

// GenerateRequest 產生菜單請求
type GenerateRequest struct {
	FamilySize  int                  `json:"family_size"`
	Budget      float64              `json:"budget"`
	Days        int                  `json:"days"`
	Preferences mealplan.Preferences `json:"preferences"`
}

// QuickRequest 快速產生菜單，只需家庭人數與預算
type QuickRequest struct {
	FamilySize int     `json:"family_size"`
	Budget     float64 `json:"budget"`
}

// PlanResponse 菜單響應
type PlanResponse struct {
	RequestID string `json:"request_id,omitempty"`
	*mealplan.Plan
}

// ShoppingListResponse 購物清單響應
type ShoppingListResponse struct {
	PlanID      string                `json:"plan_id"`
	TotalCost   float64               `json:"total_cost"`
	TotalItems  int                   `json:"total_items"`
	StoresCount int                   `json:"stores_count"`
	Items       mealplan.ShoppingList `json:"shopping_list"`
}

// Handler 菜單處理程序
type Handler struct {
	planner *mealplan.Planner
	store   *catalog.Store
	cache   cache.Cache
	queue   *queue.Manager
}

// NewHandler 創建菜單處理程序
func NewHandler(planner *mealplan.Planner, store *catalog.Store, c cache.Cache, q *queue.Manager) *Handler {
	return &Handler{
		planner: planner,
		store:   store,
		cache:   c,
		queue:   q,
	}
}

// Generate POST /api/v1/meal-plans
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	h.generate(c, mealplan.Request{
		FamilySize:  req.FamilySize,
		Budget:      req.Budget,
		Days:        req.Days,
		Preferences: req.Preferences,
	})
}

// Quick POST /api/v1/meal-plans/quick，空的請求體使用預設值
func (h *Handler) Quick(c *gin.Context) {
	var req QuickRequest
	if err := common.DecodeJSONStrict(c.Request.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	if req.FamilySize == 0 {
		req.FamilySize = quickFamilySize
	}
	if req.Budget == 0 {
		req.Budget = quickBudget
	}

	h.generate(c, mealplan.Request{
		FamilySize: req.FamilySize,
		Budget:     req.Budget,
		Days:       quickDays,
	})
}

func (h *Handler) generate(c *gin.Context, req mealplan.Request) {
	if req.Days > MaxDays {
		handlers.RespondError(c, common.NewValidationError("days must not exceed 31"))
		return
	}

	snap := h.store.Current()
	var plan *mealplan.Plan
	err := h.queue.Do(c.Request.Context(), func(ctx context.Context) error {
		var err error
		plan, err = h.planner.GeneratePlan(ctx, snap, req)
		return err
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	if err := cache.SetJSON(c.Request.Context(), h.cache, planKeyPrefix+plan.ID, plan); err != nil {
		common.LogWarn("failed to cache plan",
			zap.String("plan_id", plan.ID),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, PlanResponse{
		RequestID: requestid.Get(c),
		Plan:      plan,
	})
}

// Get GET /api/v1/meal-plans/:id
func (h *Handler) Get(c *gin.Context) {
	plan, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, PlanResponse{
		RequestID: requestid.Get(c),
		Plan:      plan,
	})
}

// ShoppingList GET /api/v1/meal-plans/:id/shopping-list
func (h *Handler) ShoppingList(c *gin.Context) {
	plan, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ShoppingListResponse{
		PlanID:      plan.ID,
		TotalCost:   plan.TotalCost,
		TotalItems:  plan.ShoppingList.ItemCount(),
		StoresCount: len(plan.ShoppingList),
		Items:       plan.ShoppingList,
	})
}

func (h *Handler) load(c *gin.Context) (*mealplan.Plan, bool) {
	id := strings.TrimSpace(c.Param("id"))
	var plan mealplan.Plan
	err := cache.GetJSON(c.Request.Context(), h.cache, planKeyPrefix+id, &plan)
	switch {
	case err == nil:
		return &plan, true
	case errors.Is(err, common.ErrCacheMiss):
		handlers.RespondError(c, errPlanNotFound)
	default:
		handlers.RespondError(c, err)
	}
	return nil, false
}
