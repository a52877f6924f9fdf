package handler

import (
	"net/http"

	"pcxpress/internal/apierror"
	"pcxpress/internal/config"
	"pcxpress/internal/dto"
	"pcxpress/internal/infra"
	"pcxpress/internal/model"
	"pcxpress/internal/repository"
	"pcxpress/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchaseOrdersHandler struct {
	svc  service.PurchaseOrderService
	repo repository.PurchaseOrderRepository
	cfg  *config.Config
}

func NewPurchaseOrdersHandler(svc service.PurchaseOrderService, repo repository.PurchaseOrderRepository, cfg *config.Config) *PurchaseOrdersHandler {
	return &PurchaseOrdersHandler{svc: svc, repo: repo, cfg: cfg}
}

func (h *PurchaseOrdersHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.CreatePurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PurchaseOrdersHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var filter dto.PurchaseOrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	orders, total, err := h.svc.List(c.Request.Context(), owner, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders, "total": total})
}

func (h *PurchaseOrdersHandler) Get(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseOrdersHandler) Update(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), owner, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseOrdersHandler) Delete(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PurchaseOrdersHandler) Approve(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Approve(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseOrdersHandler) Reject(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RejectPurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reject(c.Request.Context(), owner, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseOrdersHandler) Receive(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReceivePurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Receive(c.Request.Context(), owner, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseOrdersHandler) AutoGenerate(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.AutoGeneratePurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AutoGenerate(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PurchaseOrdersHandler) Statistics(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Statistics(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Document renders the order as a PDF and streams it back.
func (h *PurchaseOrdersHandler) Document(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	po, err := h.repo.FindByID(c.Request.Context(), owner, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("purchase order not found"))
		return
	}

	path, err := h.generateDocument(po)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "purchase_order_"+po.ID.String()+".pdf")
}

func (h *PurchaseOrdersHandler) generateDocument(po *model.PurchaseOrder) (string, error) {
	return infra.GeneratePurchaseOrderPDF(po, h.cfg.PDFStoragePath)
}
