package handler

import (
	"net/http"

	"pcxpress/internal/service"

	"github.com/gin-gonic/gin"
)

type RestockHandler struct {
	svc      service.RestockService
	products service.ProductService
}

func NewRestockHandler(svc service.RestockService, products service.ProductService) *RestockHandler {
	return &RestockHandler{svc: svc, products: products}
}

func (h *RestockHandler) Analysis(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Analysis(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RestockHandler) RestockAll(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	resp, err := h.svc.RestockAll(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RestockHandler) RestockProduct(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.RestockProduct(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alerts lists products at or below their reorder threshold.
func (h *RestockHandler) Alerts(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	resp, err := h.products.ListLowStock(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
