package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MrZaiter32/atelierpro/internal/http/middleware"
	"github.com/MrZaiter32/atelierpro/internal/model"
	"github.com/MrZaiter32/atelierpro/internal/service"
	"github.com/MrZaiter32/atelierpro/internal/workflow"
)

type Handler struct {
	budgets    *service.BudgetService
	clients    *service.ClientService
	inventory  *service.InventoryService
	purchasing *service.PurchasingService
	workshop   *service.WorkshopService
	tariffs    *service.TariffService
	dashboard  *service.DashboardService
	log        zerolog.Logger
}

func NewHandler(
	budgets *service.BudgetService,
	clients *service.ClientService,
	inventory *service.InventoryService,
	purchasing *service.PurchasingService,
	workshop *service.WorkshopService,
	tariffs *service.TariffService,
	dashboard *service.DashboardService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		budgets:    budgets,
		clients:    clients,
		inventory:  inventory,
		purchasing: purchasing,
		workshop:   workshop,
		tariffs:    tariffs,
		dashboard:  dashboard,
		log:        log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	budgets := protected.Group("/budgets", middleware.RequireRole(model.RoleAdvisor))
	budgets.GET("", h.listBudgets)
	budgets.POST("", h.createBudget)
	budgets.GET("/:id", h.getBudget)
	budgets.POST("/:id/items", h.addBudgetItem)
	budgets.POST("/:id/recalculate", h.recalculateBudget)
	budgets.POST("/:id/status", h.changeBudgetStatus)
	budgets.GET("/:id/quote", h.budgetQuote)

	clients := protected.Group("/clients", middleware.RequireRole(model.RoleAdvisor))
	clients.GET("", h.listClients)
	clients.POST("", h.createClient)
	clients.GET("/:id", h.getClient)
	clients.PUT("/:id", h.updateClient)
	clients.DELETE("/:id", h.deleteClient)
	clients.POST("/:id/interactions", h.recordInteraction)

	parts := protected.Group("/parts", middleware.RequireRole(model.RoleWarehouse))
	parts.GET("", h.listParts)
	parts.POST("", h.createPart)
	parts.GET("/low-stock", h.lowStockParts)
	parts.GET("/critical", h.criticalParts)
	parts.GET("/total-value", h.inventoryTotalValue)
	parts.POST("/import", h.importPriceList)
	parts.GET("/:id", h.getPart)
	parts.PUT("/:id", h.updatePart)
	parts.DELETE("/:id", h.deactivatePart)
	parts.POST("/:id/movements", h.registerMovement)
	parts.GET("/:id/movements", h.listMovements)

	suppliers := protected.Group("/suppliers", middleware.RequireRole(model.RoleWarehouse))
	suppliers.GET("", h.listSuppliers)
	suppliers.POST("", h.createSupplier)
	suppliers.PUT("/:id", h.updateSupplier)

	orders := protected.Group("/purchase-orders", middleware.RequireRole(model.RoleWarehouse))
	orders.GET("", h.listPurchaseOrders)
	orders.POST("", h.createPurchaseOrder)
	orders.GET("/:id", h.getPurchaseOrder)
	orders.POST("/:id/send", h.sendPurchaseOrder)
	orders.POST("/:id/cancel", h.cancelPurchaseOrder)
	orders.POST("/:id/receive", h.receivePurchaseOrder)

	workshop := protected.Group("/work-orders", middleware.RequireRole(model.RoleAdvisor, model.RoleTechnician))
	workshop.GET("", h.listWorkOrders)
	workshop.POST("", h.createWorkOrder)
	workshop.GET("/:id", h.getWorkOrder)
	workshop.POST("/:id/start", h.startWorkOrder)
	workshop.POST("/:id/hours", h.logWorkOrderHours)
	workshop.POST("/:id/complete", h.completeWorkOrder)
	workshop.POST("/:id/cancel", h.cancelWorkOrder)

	technicians := protected.Group("/technicians", middleware.RequireRole(model.RoleAdvisor))
	technicians.GET("", h.listTechnicians)
	technicians.POST("", h.createTechnician)

	tariffs := protected.Group("/tariffs")
	tariffs.GET("/active", middleware.RequireRole(model.RoleAdvisor, model.RoleWarehouse), h.activeTariff)
	tariffs.POST("", middleware.RequireRole(), h.publishTariff)

	protected.GET("/dashboard/kpis", middleware.RequireRole(), h.dashboardKPIs)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var transition *workflow.InvalidTransitionError
	switch {
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
