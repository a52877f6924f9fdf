package handler

import (
	"net/http"
	"strconv"

	"pcxpress/internal/service"

	"github.com/gin-gonic/gin"
)

type InsightsHandler struct{ svc service.InsightsService }

func NewInsightsHandler(svc service.InsightsService) *InsightsHandler {
	return &InsightsHandler{svc: svc}
}

func (h *InsightsHandler) Forecast(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	resp, err := h.svc.Forecast(c.Request.Context(), owner, id, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InsightsHandler) StockOptimization(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.StockOptimization(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InsightsHandler) Overview(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Overview(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
