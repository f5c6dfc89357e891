package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrZaiter32/atelierpro/internal/http/middleware"
	"github.com/MrZaiter32/atelierpro/internal/model"
	"github.com/MrZaiter32/atelierpro/internal/service"
)

func (h *Handler) listBudgets(c *gin.Context) {
	var status *model.BudgetStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := parseBudgetStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}

	budgets, err := h.budgets.List(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

func (h *Handler) getBudget(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	budget, err := h.budgets.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

type vehicleRequest struct {
	VIN           string          `json:"vin" binding:"required"`
	Trim          string          `json:"trim"`
	AgeYears      int             `json:"age_years"`
	ResidualValue decimal.Decimal `json:"residual_value"`
}

type budgetItemRequest struct {
	Kind              string          `json:"kind" binding:"required"`
	Code              string          `json:"code" binding:"required"`
	Description       string          `json:"description"`
	Quantity          int             `json:"quantity"`
	Hours             float64         `json:"hours"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	AdjustmentPercent decimal.Decimal `json:"adjustment_percent"`

	RequiresPaint         bool `json:"requires_paint"`
	RequiresDoubleRemoval bool `json:"requires_double_removal"`
	RequiresAlignment     bool `json:"requires_alignment"`
}

type createBudgetRequest struct {
	ClientID *uuid.UUID          `json:"client_id,omitempty"`
	Vehicle  *vehicleRequest     `json:"vehicle,omitempty"`
	Items    []budgetItemRequest `json:"items" binding:"required"`
	Notes    string              `json:"notes"`
}

func (h *Handler) createBudget(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateBudgetInput{
		ClientID: req.ClientID,
		Notes:    req.Notes,
		UserID:   principal.UserID,
	}
	if req.Vehicle != nil {
		input.Vehicle = &service.VehicleInput{
			VIN:           req.Vehicle.VIN,
			Trim:          req.Vehicle.Trim,
			AgeYears:      req.Vehicle.AgeYears,
			ResidualValue: req.Vehicle.ResidualValue,
		}
	}
	for _, item := range req.Items {
		kind, err := parseItemKind(item.Kind)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item kind"})
			return
		}
		input.Items = append(input.Items, service.BudgetItemInput{
			Kind:                  kind,
			Code:                  item.Code,
			Description:           item.Description,
			Quantity:              item.Quantity,
			Hours:                 item.Hours,
			UnitPrice:             item.UnitPrice,
			AdjustmentPercent:     item.AdjustmentPercent,
			RequiresPaint:         item.RequiresPaint,
			RequiresDoubleRemoval: item.RequiresDoubleRemoval,
			RequiresAlignment:     item.RequiresAlignment,
		})
	}

	budget, err := h.budgets.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, budget)
}

func (h *Handler) addBudgetItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req budgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind, err := parseItemKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item kind"})
		return
	}

	budget, err := h.budgets.AddItem(c.Request.Context(), id, service.BudgetItemInput{
		Kind:                  kind,
		Code:                  req.Code,
		Description:           req.Description,
		Quantity:              req.Quantity,
		Hours:                 req.Hours,
		UnitPrice:             req.UnitPrice,
		AdjustmentPercent:     req.AdjustmentPercent,
		RequiresPaint:         req.RequiresPaint,
		RequiresDoubleRemoval: req.RequiresDoubleRemoval,
		RequiresAlignment:     req.RequiresAlignment,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (h *Handler) recalculateBudget(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	budget, err := h.budgets.Recalculate(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

func (h *Handler) changeBudgetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := parseBudgetStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	budget, err := h.budgets.ChangeStatus(c.Request.Context(), id, status, req.Reason)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (h *Handler) budgetQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.budgets.Quote(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func parseBudgetStatus(raw string) (model.BudgetStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(model.BudgetStatusDraft):
		return model.BudgetStatusDraft, nil
	case string(model.BudgetStatusApproved):
		return model.BudgetStatusApproved, nil
	case string(model.BudgetStatusRejected):
		return model.BudgetStatusRejected, nil
	case string(model.BudgetStatusClosed):
		return model.BudgetStatusClosed, nil
	case string(model.BudgetStatusInvoiced):
		return model.BudgetStatusInvoiced, nil
	default:
		return "", service.ErrInvalidInput
	}
}

func parseItemKind(raw string) (model.ItemKind, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(model.ItemKindPart):
		return model.ItemKindPart, nil
	case string(model.ItemKindLabor):
		return model.ItemKindLabor, nil
	case string(model.ItemKindPaint):
		return model.ItemKindPaint, nil
	default:
		return "", service.ErrInvalidInput
	}
}
