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

func (h *Handler) listSuppliers(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	suppliers, err := h.purchasing.ListSuppliers(c.Request.Context(), activeOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

type supplierRequest struct {
	Name         string `json:"name" binding:"required"`
	TaxID        string `json:"tax_id"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Contact      string `json:"contact"`
	PaymentTerms string `json:"payment_terms"`
	Active       bool   `json:"active"`
}

func (h *Handler) createSupplier(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier, err := h.purchasing.CreateSupplier(c.Request.Context(), model.Supplier{
		Name:         req.Name,
		TaxID:        req.TaxID,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Contact:      req.Contact,
		PaymentTerms: req.PaymentTerms,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *Handler) updateSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier, err := h.purchasing.UpdateSupplier(c.Request.Context(), model.Supplier{
		ID:           id,
		Name:         req.Name,
		TaxID:        req.TaxID,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Contact:      req.Contact,
		PaymentTerms: req.PaymentTerms,
		Active:       req.Active,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *Handler) listPurchaseOrders(c *gin.Context) {
	var status *model.PurchaseOrderStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := parsePurchaseOrderStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}

	orders, err := h.purchasing.ListOrders(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getPurchaseOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.purchasing.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type purchaseOrderItemRequest struct {
	PartID    uuid.UUID       `json:"part_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type createPurchaseOrderRequest struct {
	SupplierID uuid.UUID                  `json:"supplier_id" binding:"required"`
	Items      []purchaseOrderItemRequest `json:"items" binding:"required"`
	Notes      string                     `json:"notes"`
}

func (h *Handler) createPurchaseOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreatePurchaseOrderInput{
		SupplierID: req.SupplierID,
		Notes:      req.Notes,
		UserID:     principal.UserID,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.PurchaseOrderItemInput{
			PartID:    item.PartID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order, err := h.purchasing.CreateOrder(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) sendPurchaseOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.purchasing.SendOrder(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) cancelPurchaseOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.purchasing.CancelOrder(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type receiveItemsRequest struct {
	Items []struct {
		ItemID   uuid.UUID `json:"item_id" binding:"required"`
		Quantity int       `json:"quantity" binding:"required"`
	} `json:"items" binding:"required"`
}

func (h *Handler) receivePurchaseOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req receiveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inputs := make([]service.ReceiveItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, service.ReceiveItemInput{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		})
	}

	order, err := h.purchasing.ReceiveItems(c.Request.Context(), id, principal.UserID, inputs)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func parsePurchaseOrderStatus(raw string) (model.PurchaseOrderStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(model.PurchaseOrderCreated):
		return model.PurchaseOrderCreated, nil
	case string(model.PurchaseOrderSent):
		return model.PurchaseOrderSent, nil
	case string(model.PurchaseOrderPartial):
		return model.PurchaseOrderPartial, nil
	case string(model.PurchaseOrderReceived):
		return model.PurchaseOrderReceived, nil
	case string(model.PurchaseOrderCancelled):
		return model.PurchaseOrderCancelled, nil
	default:
		return "", service.ErrInvalidInput
	}
}
