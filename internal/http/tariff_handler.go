package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

func (h *Handler) activeTariff(c *gin.Context) {
	tariff, err := h.tariffs.Active(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tariff)
}

type tariffRequest struct {
	LaborRatePerHour decimal.Decimal `json:"labor_rate_per_hour"`
	PaintRatePerHour decimal.Decimal `json:"paint_rate_per_hour"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	SurchargeFactor  decimal.Decimal `json:"surcharge_factor"`
	DiscountFactor   decimal.Decimal `json:"discount_factor"`
}

func (h *Handler) publishTariff(c *gin.Context) {
	var req tariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tariff, err := h.tariffs.Publish(c.Request.Context(), model.Tariff{
		LaborRatePerHour: req.LaborRatePerHour,
		PaintRatePerHour: req.PaintRatePerHour,
		TaxRate:          req.TaxRate,
		SurchargeFactor:  req.SurchargeFactor,
		DiscountFactor:   req.DiscountFactor,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tariff)
}
