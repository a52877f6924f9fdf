package service

import (
	"context"
	"fmt"
	"time"

	"pcxpress/internal/apierror"
	"pcxpress/internal/dto"
	"pcxpress/internal/model"
	"pcxpress/internal/repository"
	"pcxpress/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	// CreateFromPurchaseOrder mirrors an approved order's items into a sale
	// at the captured unit prices.
	CreateFromPurchaseOrder(ctx context.Context, ownerID, poID uuid.UUID) (*dto.SaleResponse, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]dto.SaleResponse, int64, error)
	TopProducts(ctx context.Context, ownerID uuid.UUID, limit int) ([]dto.TopProductResponse, error)
}

type saleService struct {
	repo      repository.SaleRepository
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	orders    repository.PurchaseOrderRepository
	notifier  lowStockNotifier
}

func NewSaleService(
	repo repository.SaleRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	orders repository.PurchaseOrderRepository,
	users repository.UserRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:      repo,
		products:  products,
		movements: movements,
		orders:    orders,
		notifier:  lowStockNotifier{users: users, dispatcher: dispatcher},
	}
}

// Create records a sale and decrements stock for each line inside one
// transaction. Stock never goes negative: an oversold line drains the product
// to zero and the movement records the decrement actually applied, not the
// quantity requested.
func (s *saleService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	items := make([]model.SaleItem, 0, len(req.Items))
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.InvalidOperation("invalid product_id")
		}
		items = append(items, model.SaleItem{
			ProductID: pid,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}

	status := model.SaleCompleted
	if req.Status != nil {
		status = model.SaleStatus(*req.Status)
	}

	return s.create(ctx, ownerID, items, req.TotalValue, status)
}

func (s *saleService) CreateFromPurchaseOrder(ctx context.Context, ownerID, poID uuid.UUID) (*dto.SaleResponse, error) {
	po, err := s.orders.FindByID(ctx, ownerID, poID)
	if err != nil {
		return nil, apierror.NotFound("purchase order not found")
	}
	if po.Status != model.PurchaseOrderApproved {
		return nil, apierror.InvalidOperation("purchase order is not approved")
	}

	items := make([]model.SaleItem, 0, len(po.Items))
	total := decimal.Zero
	for _, item := range po.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.QuantityRequested)))
		items = append(items, model.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.QuantityRequested,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return s.create(ctx, ownerID, items, total, model.SaleCompleted)
}

func (s *saleService) create(
	ctx context.Context,
	ownerID uuid.UUID,
	items []model.SaleItem,
	total decimal.Decimal,
	status model.SaleStatus,
) (*dto.SaleResponse, error) {
	var sale model.Sale
	var lowStock []model.Product

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		sale = model.Sale{
			OwnerID:    ownerID,
			TotalValue: total,
			Status:     status,
			Items:      items,
		}
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		now := time.Now().UTC()
		for i := range sale.Items {
			item := &sale.Items[i]
			p, err := s.products.FindByIDForUpdateTx(tx, ownerID, item.ProductID)
			if err != nil {
				return apierror.NotFound(fmt.Sprintf("product %s not found", item.ProductID))
			}

			applied := item.Quantity
			if applied > p.Quantity {
				applied = p.Quantity
			}
			p.Quantity -= applied
			p.LastSaleDate = &now
			if err := s.products.SaveTx(tx, p); err != nil {
				return err
			}

			mov := &model.StockMovement{
				OwnerID:           ownerID,
				ProductID:         p.ID,
				Kind:              model.MovementOut,
				Delta:             -applied,
				ResultingQuantity: p.Quantity,
				Reason:            fmt.Sprintf("sale %s", sale.ID),
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}

			if p.LowStock() {
				lowStock = append(lowStock, *p)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifier.notifyLowStock(ctx, ownerID, lowStock)
	return saleToResponse(&sale), nil
}

func (s *saleService) Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, apierror.NotFound("sale not found")
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]dto.SaleResponse, int64, error) {
	sales, total, err := s.repo.List(ctx, ownerID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, *saleToResponse(&sales[i]))
	}
	return out, total, nil
}

// TopProducts ranks by revenue. When nothing has sold yet it falls back to
// ranking current inventory by stock value so the dashboard is never empty.
func (s *saleService) TopProducts(ctx context.Context, ownerID uuid.UUID, limit int) ([]dto.TopProductResponse, error) {
	top, err := s.repo.TopProducts(ctx, ownerID, limit)
	if err != nil {
		return nil, err
	}
	if len(top) > 0 {
		return top, nil
	}

	products, _, err := s.products.List(ctx, ownerID, dto.ProductFilter{Page: 1, Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		out = append(out, dto.TopProductResponse{
			ProductID:    p.ID.String(),
			Name:         p.Name,
			Code:         p.Code,
			TotalSales:   p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity))),
			CurrentStock: p.Quantity,
			UnitPrice:    p.UnitPrice,
		})
	}
	return out, nil
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         sale.ID.String(),
		TotalValue: sale.TotalValue,
		Status:     string(sale.Status),
		CreatedAt:  sale.CreatedAt.Format(time.RFC3339),
	}
	for i := range sale.Items {
		item := &sale.Items[i]
		ir := dto.SaleItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
		if item.Product != nil {
			ir.ProductName = item.Product.Name
			ir.ProductCode = item.Product.Code
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
