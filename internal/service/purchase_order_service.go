package service

import (
	"context"
	"fmt"
	"time"

	"pcxpress/internal/apierror"
	"pcxpress/internal/dto"
	"pcxpress/internal/model"
	"pcxpress/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseOrderService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.PurchaseOrderResponse, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.PurchaseOrderFilter) ([]dto.PurchaseOrderResponse, int64, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Approve(ctx context.Context, ownerID, id uuid.UUID) (*dto.PurchaseOrderResponse, error)
	Reject(ctx context.Context, ownerID, id uuid.UUID, req dto.RejectPurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	Receive(ctx context.Context, ownerID, id uuid.UUID, req dto.ReceivePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	AutoGenerate(ctx context.Context, ownerID uuid.UUID, req dto.AutoGeneratePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	Statistics(ctx context.Context, ownerID uuid.UUID) (*dto.PurchaseOrderStatisticsResponse, error)
}

type purchaseOrderService struct {
	repo      repository.PurchaseOrderRepository
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	movements repository.StockMovementRepository
	sales     SaleService
}

func NewPurchaseOrderService(
	repo repository.PurchaseOrderRepository,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	movements repository.StockMovementRepository,
	sales SaleService,
) PurchaseOrderService {
	return &purchaseOrderService{
		repo:      repo,
		products:  products,
		suppliers: suppliers,
		movements: movements,
		sales:     sales,
	}
}

func (s *purchaseOrderService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, apierror.InvalidOperation("invalid supplier_id")
	}
	if _, err := s.suppliers.FindByID(ctx, ownerID, supplierID); err != nil {
		return nil, apierror.NotFound("supplier not found")
	}

	status := model.PurchaseOrderDraft
	if req.Status != nil && *req.Status == string(model.PurchaseOrderPending) {
		status = model.PurchaseOrderPending
	}

	po := &model.PurchaseOrder{
		OwnerID:    ownerID,
		SupplierID: supplierID,
		Status:     status,
		Notes:      req.Notes,
	}

	total := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.InvalidOperation("invalid product_id")
		}
		if _, err := s.products.FindByID(ctx, ownerID, pid); err != nil {
			return nil, apierror.NotFound(fmt.Sprintf("product %s not found", item.ProductID))
		}
		po.Items = append(po.Items, model.PurchaseOrderItem{
			ProductID:         pid,
			QuantityRequested: item.QuantityRequested,
			UnitPrice:         item.UnitPrice,
		})
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.QuantityRequested))))
	}
	po.TotalValue = total

	if err := s.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, po.ID)
}

func (s *purchaseOrderService) Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, apierror.NotFound("purchase order not found")
	}
	return purchaseOrderToResponse(po), nil
}

func (s *purchaseOrderService) List(ctx context.Context, ownerID uuid.UUID, filter dto.PurchaseOrderFilter) ([]dto.PurchaseOrderResponse, int64, error) {
	orders, total, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *purchaseOrderToResponse(&orders[i]))
	}
	return out, total, nil
}

// Update is the generic metadata patch. Setting status through this path
// stamps approved_at for APPROVED but runs none of the lifecycle
// preconditions and synthesizes nothing; the dedicated transitions do.
func (s *purchaseOrderService) Update(ctx context.Context, ownerID, id uuid.UUID, req dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, apierror.NotFound("purchase order not found")
	}

	if req.Notes != nil {
		po.Notes = req.Notes
	}
	if req.Status != nil {
		po.Status = model.PurchaseOrderStatus(*req.Status)
		if po.Status == model.PurchaseOrderApproved && po.ApprovedAt == nil {
			now := time.Now().UTC()
			po.ApprovedAt = &now
		}
	}

	if err := s.repo.Save(ctx, po); err != nil {
		return nil, err
	}
	return purchaseOrderToResponse(po), nil
}

func (s *purchaseOrderService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	po, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return apierror.NotFound("purchase order not found")
	}
	if po.Status != model.PurchaseOrderDraft {
		return apierror.InvalidOperation("only draft orders can be deleted")
	}
	return s.repo.Delete(ctx, ownerID, id)
}

// Approve moves a pending order to APPROVED, then mirrors it into a sale.
// The synthesized sale is best-effort: its failure is logged and the
// approval stands.
func (s *purchaseOrderService) Approve(ctx context.Context, ownerID, id uuid.UUID) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, apierror.NotFound("purchase order not found")
	}
	if po.Status != model.PurchaseOrderPending {
		return nil, apierror.InvalidOperation(
			fmt.Sprintf("cannot approve order in status %s", po.Status))
	}

	now := time.Now().UTC()
	po.Status = model.PurchaseOrderApproved
	po.ApprovedAt = &now
	if err := s.repo.Save(ctx, po); err != nil {
		return nil, err
	}

	if s.sales != nil {
		if _, err := s.sales.CreateFromPurchaseOrder(ctx, ownerID, po.ID); err != nil {
			log.Warn().Err(err).Str("po_id", po.ID.String()).Msg("purchase order approved but sale synthesis failed")
		}
	}

	return purchaseOrderToResponse(po), nil
}

func (s *purchaseOrderService) Reject(ctx context.Context, ownerID, id uuid.UUID, req dto.RejectPurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, apierror.NotFound("purchase order not found")
	}
	if po.Status != model.PurchaseOrderPending {
		return nil, apierror.InvalidOperation(
			fmt.Sprintf("cannot reject order in status %s", po.Status))
	}

	now := time.Now().UTC()
	po.Status = model.PurchaseOrderCancelled
	po.RejectedAt = &now
	po.RejectionReason = req.Reason
	if err := s.repo.Save(ctx, po); err != nil {
		return nil, err
	}
	return purchaseOrderToResponse(po), nil
}

// Receive books received quantities against an approved order. Each receipt
// overwrites quantity_received (it does not accumulate) and, when positive,
// adds that quantity to stock with a fresh IN movement. Re-receiving an item
// therefore re-adds stock; callers own the idempotency of their receipts.
func (s *purchaseOrderService) Receive(ctx context.Context, ownerID, id uuid.UUID, req dto.ReceivePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// The status check must hold while stock is written, so the order is
		// read inside the same transaction.
		po, err := s.repo.FindByIDTx(tx, ownerID, id)
		if err != nil {
			return apierror.NotFound("purchase order not found")
		}
		if po.Status != model.PurchaseOrderApproved {
			return apierror.InvalidOperation("only approved orders can be received")
		}

		itemsByID := make(map[uuid.UUID]*model.PurchaseOrderItem, len(po.Items))
		for i := range po.Items {
			itemsByID[po.Items[i].ID] = &po.Items[i]
		}

		for _, receipt := range req.Receipts {
			itemID, err := uuid.Parse(receipt.ItemID)
			if err != nil {
				return apierror.InvalidOperation("invalid item_id")
			}
			item, ok := itemsByID[itemID]
			if !ok {
				return apierror.NotFound(fmt.Sprintf("item %s does not belong to this order", receipt.ItemID))
			}

			item.QuantityReceived = receipt.QuantityReceived
			if err := s.repo.SaveItemTx(tx, item); err != nil {
				return err
			}

			if receipt.QuantityReceived > 0 {
				p, err := s.products.FindByIDForUpdateTx(tx, ownerID, item.ProductID)
				if err != nil {
					return apierror.NotFound(fmt.Sprintf("product %s not found", item.ProductID))
				}
				p.Quantity += receipt.QuantityReceived
				if err := s.products.SaveTx(tx, p); err != nil {
					return err
				}
				mov := &model.StockMovement{
					OwnerID:           ownerID,
					ProductID:         p.ID,
					Kind:              model.MovementIn,
					Delta:             receipt.QuantityReceived,
					ResultingQuantity: p.Quantity,
					Reason:            fmt.Sprintf("purchase order %s received", po.ID),
				}
				if err := s.movements.CreateTx(tx, mov); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Get(ctx, ownerID, id)
}

// AutoGenerate drafts an order for every product of the supplier sitting
// below twice its reorder threshold, topping each up to that level at its
// current price.
func (s *purchaseOrderService) AutoGenerate(ctx context.Context, ownerID uuid.UUID, req dto.AutoGeneratePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, apierror.InvalidOperation("invalid supplier_id")
	}
	if _, err := s.suppliers.FindByID(ctx, ownerID, supplierID); err != nil {
		return nil, apierror.NotFound("supplier not found")
	}

	products, err := s.products.ListBelowRecommended(ctx, ownerID, &supplierID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apierror.NotFound("no products below recommended stock for this supplier")
	}

	notes := "Auto-generated restock order"
	po := &model.PurchaseOrder{
		OwnerID:    ownerID,
		SupplierID: supplierID,
		Status:     model.PurchaseOrderDraft,
		Notes:      &notes,
	}

	total := decimal.Zero
	for i := range products {
		p := &products[i]
		needed := 2*p.ReorderThreshold - p.Quantity
		if needed <= 0 {
			continue
		}
		po.Items = append(po.Items, model.PurchaseOrderItem{
			ProductID:         p.ID,
			QuantityRequested: needed,
			UnitPrice:         p.UnitPrice,
		})
		total = total.Add(p.UnitPrice.Mul(decimal.NewFromInt(int64(needed))))
	}
	po.TotalValue = total

	if err := s.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, po.ID)
}

func (s *purchaseOrderService) Statistics(ctx context.Context, ownerID uuid.UUID) (*dto.PurchaseOrderStatisticsResponse, error) {
	return s.repo.Statistics(ctx, ownerID)
}

func purchaseOrderToResponse(po *model.PurchaseOrder) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:              po.ID.String(),
		SupplierID:      po.SupplierID.String(),
		Status:          string(po.Status),
		TotalValue:      po.TotalValue,
		Notes:           po.Notes,
		CreatedAt:       po.CreatedAt.Format(time.RFC3339),
		RejectionReason: po.RejectionReason,
	}
	if po.Supplier != nil {
		resp.SupplierName = po.Supplier.Name
	}
	if po.ApprovedAt != nil {
		t := po.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &t
	}
	if po.RejectedAt != nil {
		t := po.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &t
	}
	for i := range po.Items {
		item := &po.Items[i]
		ir := dto.PurchaseOrderItemResponse{
			ID:                item.ID.String(),
			ProductID:         item.ProductID.String(),
			QuantityRequested: item.QuantityRequested,
			QuantityReceived:  item.QuantityReceived,
			UnitPrice:         item.UnitPrice,
		}
		if item.Product != nil {
			ir.ProductName = item.Product.Name
			ir.ProductCode = item.Product.Code
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
