package handler

import (
	"net/http"

	"pcxpress/internal/dto"
	"pcxpress/internal/service"

	"github.com/gin-gonic/gin"
)

type SimulationHandler struct{ sim *service.Simulator }

func NewSimulationHandler(sim *service.Simulator) *SimulationHandler {
	return &SimulationHandler{sim: sim}
}

func (h *SimulationHandler) Start(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.StartSimulationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.sim.Start(owner, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "simulation started"})
}

func (h *SimulationHandler) Stop(c *gin.Context) {
	if _, ok := ownerID(c); !ok {
		return
	}
	if err := h.sim.Stop(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "simulation stopped"})
}

func (h *SimulationHandler) Status(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	resp, err := h.sim.Status(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
