package http

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MrZaiter32/atelierpro/internal/http/middleware"
	"github.com/MrZaiter32/atelierpro/internal/model"
	"github.com/MrZaiter32/atelierpro/internal/service"
)

func (h *Handler) listParts(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	parts, err := h.inventory.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *Handler) getPart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	part, err := h.inventory.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

type partRequest struct {
	SKU         string          `json:"sku" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	StockMin    int             `json:"stock_min"`
	StockMax    int             `json:"stock_max"`
	AvgCost     decimal.Decimal `json:"avg_cost"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Category    string          `json:"category"`
	Location    string          `json:"location"`
}

func (h *Handler) createPart(c *gin.Context) {
	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	part, err := h.inventory.Create(c.Request.Context(), model.Part{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		StockMin:    req.StockMin,
		StockMax:    req.StockMax,
		AvgCost:     req.AvgCost,
		SalePrice:   req.SalePrice,
		Category:    req.Category,
		Location:    req.Location,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, part)
}

func (h *Handler) updatePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	part, err := h.inventory.Update(c.Request.Context(), model.Part{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		StockMin:    req.StockMin,
		StockMax:    req.StockMax,
		AvgCost:     req.AvgCost,
		SalePrice:   req.SalePrice,
		Category:    req.Category,
		Location:    req.Location,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (h *Handler) deactivatePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.inventory.Deactivate(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type movementRequest struct {
	Kind     string `json:"kind" binding:"required"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason" binding:"required"`
}

func (h *Handler) registerMovement(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req movementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind, err := parseMovementKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movement kind"})
		return
	}

	movement, err := h.inventory.RegisterMovement(c.Request.Context(), service.MovementInput{
		PartID:   id,
		Kind:     kind,
		Quantity: req.Quantity,
		Reason:   req.Reason,
		UserID:   principal.UserID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movement)
}

func (h *Handler) listMovements(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		to = &parsed
	}

	movements, err := h.inventory.Movements(c.Request.Context(), id, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, movements)
}

func (h *Handler) lowStockParts(c *gin.Context) {
	parts, err := h.inventory.LowStock(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *Handler) criticalParts(c *gin.Context) {
	parts, err := h.inventory.Critical(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *Handler) inventoryTotalValue(c *gin.Context) {
	value, err := h.inventory.TotalValue(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_value": value})
}

func (h *Handler) importPriceList(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}

	result, err := h.inventory.ImportPriceList(c.Request.Context(), content)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseMovementKind(raw string) (model.MovementKind, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(model.MovementKindIn):
		return model.MovementKindIn, nil
	case string(model.MovementKindOut):
		return model.MovementKindOut, nil
	case string(model.MovementKindAdjust):
		return model.MovementKindAdjust, nil
	case string(model.MovementKindReturn):
		return model.MovementKindReturn, nil
	default:
		return "", service.ErrInvalidInput
	}
}
