package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) dashboardKPIs(c *gin.Context) {
	kpis, err := h.dashboard.KPIs(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}
