package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

func (h *Handler) listClients(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *Handler) getClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

type clientRequest struct {
	Name          string  `json:"name" binding:"required"`
	History       string  `json:"history"`
	Preferences   string  `json:"preferences"`
	NPS           float64 `json:"nps"`
	RetentionRate float64 `json:"retention_rate"`
}

func (h *Handler) createClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.clients.Create(c.Request.Context(), model.Client{
		Name:          req.Name,
		History:       req.History,
		Preferences:   req.Preferences,
		NPS:           req.NPS,
		RetentionRate: req.RetentionRate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) updateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.clients.Update(c.Request.Context(), model.Client{
		ID:            id,
		Name:          req.Name,
		History:       req.History,
		Preferences:   req.Preferences,
		NPS:           req.NPS,
		RetentionRate: req.RetentionRate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) deleteClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type interactionRequest struct {
	Kind    string `json:"kind" binding:"required"`
	Outcome string `json:"outcome"`
	Date    string `json:"date"`
}

func (h *Handler) recordInteraction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Time{}
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		date = parsed
	}

	interaction, err := h.clients.RecordInteraction(c.Request.Context(), id, req.Kind, req.Outcome, date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, interaction)
}
