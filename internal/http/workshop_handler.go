package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrZaiter32/atelierpro/internal/model"
	"github.com/MrZaiter32/atelierpro/internal/service"
)

func (h *Handler) listWorkOrders(c *gin.Context) {
	var status *model.WorkOrderStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := parseWorkOrderStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}

	orders, err := h.workshop.List(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getWorkOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.workshop.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type createWorkOrderRequest struct {
	BudgetID     uuid.UUID  `json:"budget_id" binding:"required"`
	TechnicianID *uuid.UUID `json:"technician_id,omitempty"`
	Priority     string     `json:"priority"`
	Notes        string     `json:"notes"`
}

func (h *Handler) createWorkOrder(c *gin.Context) {
	var req createWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.workshop.CreateFromBudget(c.Request.Context(), service.CreateWorkOrderInput{
		BudgetID:     req.BudgetID,
		TechnicianID: req.TechnicianID,
		Priority:     req.Priority,
		Notes:        req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) startWorkOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.workshop.Start(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type logHoursRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Hours  float64   `json:"hours"`
	Done   bool      `json:"done"`
}

func (h *Handler) logWorkOrderHours(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req logHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.workshop.LogHours(c.Request.Context(), id, service.LogHoursInput{
		ItemID: req.ItemID,
		Hours:  req.Hours,
		Done:   req.Done,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) completeWorkOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.workshop.Complete(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) cancelWorkOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.workshop.Cancel(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) listTechnicians(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	technicians, err := h.workshop.ListTechnicians(c.Request.Context(), activeOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, technicians)
}

type technicianRequest struct {
	FirstName    string          `json:"first_name" binding:"required"`
	LastName     string          `json:"last_name" binding:"required"`
	Speciality   string          `json:"speciality"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	HoursPerWeek float64         `json:"hours_per_week"`
	CostPerHour  decimal.Decimal `json:"cost_per_hour"`
}

func (h *Handler) createTechnician(c *gin.Context) {
	var req technicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	technician, err := h.workshop.CreateTechnician(c.Request.Context(), model.Technician{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Speciality:   req.Speciality,
		Phone:        req.Phone,
		Email:        req.Email,
		HoursPerWeek: req.HoursPerWeek,
		CostPerHour:  req.CostPerHour,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, technician)
}

func parseWorkOrderStatus(raw string) (model.WorkOrderStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(model.WorkOrderPending):
		return model.WorkOrderPending, nil
	case string(model.WorkOrderInProgress):
		return model.WorkOrderInProgress, nil
	case string(model.WorkOrderCompleted):
		return model.WorkOrderCompleted, nil
	case string(model.WorkOrderCancelled):
		return model.WorkOrderCancelled, nil
	default:
		return "", service.ErrInvalidInput
	}
}
