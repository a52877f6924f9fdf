package service

import (
	"context"

	"pcxpress/internal/apierror"
	"pcxpress/internal/dto"
	"pcxpress/internal/model"
	"pcxpress/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestockService analyzes which products need restocking and can top them up
// through the stock ledger.
type RestockService interface {
	Analysis(ctx context.Context, ownerID uuid.UUID) (*dto.RestockAnalysisResponse, error)
	RestockAll(ctx context.Context, ownerID uuid.UUID) (*dto.RestockAllResponse, error)
	RestockProduct(ctx context.Context, ownerID, productID uuid.UUID) (*dto.RestockedProductResponse, error)
}

type restockService struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	stock     StockService
}

func NewRestockService(
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	stock StockService,
) RestockService {
	return &restockService{products: products, suppliers: suppliers, stock: stock}
}

// classifyUrgency buckets a product by how far below its recommended level
// (twice the threshold) it sits.
func classifyUrgency(quantity, threshold int) string {
	switch {
	case quantity == 0:
		return dto.UrgencyCritical
	case quantity <= threshold:
		return dto.UrgencyHigh
	case quantity < 2*threshold:
		return dto.UrgencyMedium
	default:
		return dto.UrgencyLow
	}
}

func (s *restockService) Analysis(ctx context.Context, ownerID uuid.UUID) (*dto.RestockAnalysisResponse, error) {
	products, err := s.products.ListBelowRecommended(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}

	resp := &dto.RestockAnalysisResponse{TotalCost: decimal.Zero}
	buckets := map[string][]dto.RestockItemResponse{}

	for i := range products {
		p := &products[i]
		recommended := 2 * p.ReorderThreshold
		needed := recommended - p.Quantity
		if needed <= 0 {
			continue
		}
		cost := p.UnitPrice.Mul(decimal.NewFromInt(int64(needed)))
		urgency := classifyUrgency(p.Quantity, p.ReorderThreshold)

		item := dto.RestockItemResponse{
			ProductID:        p.ID.String(),
			Name:             p.Name,
			Code:             p.Code,
			CurrentStock:     p.Quantity,
			ReorderThreshold: p.ReorderThreshold,
			RecommendedStock: recommended,
			RestockNeeded:    needed,
			EstimatedCost:    cost,
			Urgency:          urgency,
		}
		if p.SupplierID != nil {
			sid := p.SupplierID.String()
			item.SupplierID = &sid
			if sup, err := s.suppliers.FindByID(ctx, ownerID, *p.SupplierID); err == nil {
				item.SupplierName = &sup.Name
			}
		}

		buckets[urgency] = append(buckets[urgency], item)
		resp.TotalCost = resp.TotalCost.Add(cost)
	}

	// Most severe first
	for _, urgency := range []string{dto.UrgencyCritical, dto.UrgencyHigh, dto.UrgencyMedium, dto.UrgencyLow} {
		resp.Items = append(resp.Items, buckets[urgency]...)
	}
	resp.TotalItems = len(resp.Items)
	resp.CriticalCount = len(buckets[dto.UrgencyCritical])
	resp.HighCount = len(buckets[dto.UrgencyHigh])
	resp.MediumCount = len(buckets[dto.UrgencyMedium])
	resp.LowCount = len(buckets[dto.UrgencyLow])
	return resp, nil
}

func (s *restockService) RestockAll(ctx context.Context, ownerID uuid.UUID) (*dto.RestockAllResponse, error) {
	products, err := s.products.ListBelowRecommended(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}

	resp := &dto.RestockAllResponse{TotalValue: decimal.Zero}
	for i := range products {
		restocked, err := s.topUp(ctx, ownerID, &products[i])
		if err != nil {
			return nil, err
		}
		if restocked == nil {
			continue
		}
		resp.RestockedProducts = append(resp.RestockedProducts, *restocked)
		resp.TotalValue = resp.TotalValue.Add(restocked.Cost)
	}
	resp.ProductsRestocked = len(resp.RestockedProducts)
	return resp, nil
}

func (s *restockService) RestockProduct(ctx context.Context, ownerID, productID uuid.UUID) (*dto.RestockedProductResponse, error) {
	p, err := s.products.FindByID(ctx, ownerID, productID)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}

	restocked, err := s.topUp(ctx, ownerID, p)
	if err != nil {
		return nil, err
	}
	if restocked == nil {
		return nil, apierror.InvalidOperation("product is already at or above its recommended stock level")
	}
	return restocked, nil
}

// topUp raises one product to twice its reorder threshold through the stock
// ledger, so the addition lands in the audit trail like any other IN.
func (s *restockService) topUp(ctx context.Context, ownerID uuid.UUID, p *model.Product) (*dto.RestockedProductResponse, error) {
	needed := 2*p.ReorderThreshold - p.Quantity
	if needed <= 0 {
		return nil, nil
	}

	reason := "automatic restock to recommended level"
	if _, err := s.stock.Add(ctx, ownerID, p.ID, dto.StockChangeRequest{Amount: needed, Reason: &reason}); err != nil {
		return nil, err
	}

	return &dto.RestockedProductResponse{
		ProductID:     p.ID.String(),
		Name:          p.Name,
		PreviousStock: p.Quantity,
		NewStock:      p.Quantity + needed,
		RestockAmount: needed,
		Cost:          p.UnitPrice.Mul(decimal.NewFromInt(int64(needed))),
	}, nil
}
