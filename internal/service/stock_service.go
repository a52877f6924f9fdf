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
	"gorm.io/gorm"
)

// StockService is the only write path for product quantities. Every mutation
// locks the product row, applies the change and appends a movement inside one
// transaction.
type StockService interface {
	Add(ctx context.Context, ownerID, productID uuid.UUID, req dto.StockChangeRequest) (*dto.StockMovementResponse, error)
	Remove(ctx context.Context, ownerID, productID uuid.UUID, req dto.StockChangeRequest) (*dto.StockMovementResponse, error)
	Set(ctx context.Context, ownerID, productID uuid.UUID, req dto.StockSetRequest) (*dto.StockMovementResponse, error)
	Movements(ctx context.Context, ownerID, productID uuid.UUID, limit int) ([]dto.StockMovementResponse, error)
	RecentMovements(ctx context.Context, ownerID uuid.UUID, limit int) ([]dto.StockMovementResponse, error)
}

type stockService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	notifier  lowStockNotifier
}

func NewStockService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	users repository.UserRepository,
	dispatcher *worker.Dispatcher,
) StockService {
	return &stockService{
		products:  products,
		movements: movements,
		notifier:  lowStockNotifier{users: users, dispatcher: dispatcher},
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *stockService) Add(ctx context.Context, ownerID, productID uuid.UUID, req dto.StockChangeRequest) (*dto.StockMovementResponse, error) {
	return s.mutate(ctx, ownerID, productID, func(p *model.Product) (*model.StockMovement, error) {
		p.Quantity += req.Amount
		return &model.StockMovement{
			Kind:   model.MovementIn,
			Delta:  req.Amount,
			Reason: reasonOrDefault(req.Reason, "manual stock addition"),
		}, nil
	})
}

func (s *stockService) Remove(ctx context.Context, ownerID, productID uuid.UUID, req dto.StockChangeRequest) (*dto.StockMovementResponse, error) {
	return s.mutate(ctx, ownerID, productID, func(p *model.Product) (*model.StockMovement, error) {
		if req.Amount > p.Quantity {
			return nil, apierror.InvalidOperation(
				fmt.Sprintf("cannot remove %d units: only %d in stock", req.Amount, p.Quantity))
		}
		p.Quantity -= req.Amount
		now := time.Now().UTC()
		p.LastSaleDate = &now
		return &model.StockMovement{
			Kind:   model.MovementOut,
			Delta:  -req.Amount,
			Reason: reasonOrDefault(req.Reason, "manual stock removal"),
		}, nil
	})
}

// Set replaces the absolute quantity. The movement records the magnitude of
// the change, not its direction.
func (s *stockService) Set(ctx context.Context, ownerID, productID uuid.UUID, req dto.StockSetRequest) (*dto.StockMovementResponse, error) {
	if req.Quantity < 0 {
		return nil, apierror.InvalidOperation(
			fmt.Sprintf("cannot set stock to %d: quantity must not be negative", req.Quantity))
	}
	return s.mutate(ctx, ownerID, productID, func(p *model.Product) (*model.StockMovement, error) {
		diff := p.Quantity - req.Quantity
		if diff < 0 {
			diff = -diff
		}
		p.Quantity = req.Quantity
		return &model.StockMovement{
			Kind:   model.MovementAdjust,
			Delta:  diff,
			Reason: reasonOrDefault(req.Reason, "stock level set"),
		}, nil
	})
}

// mutate runs one locked read-modify-write cycle: fn adjusts the product and
// returns the movement skeleton, mutate fills in ownership and the resulting
// quantity and persists both.
func (s *stockService) mutate(
	ctx context.Context,
	ownerID, productID uuid.UUID,
	fn func(p *model.Product) (*model.StockMovement, error),
) (*dto.StockMovementResponse, error) {
	var mov *model.StockMovement
	var snapshot model.Product

	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.products.FindByIDForUpdateTx(tx, ownerID, productID)
		if err != nil {
			return apierror.NotFound("product not found")
		}

		m, err := fn(p)
		if err != nil {
			return err
		}
		if err := s.products.SaveTx(tx, p); err != nil {
			return err
		}

		m.OwnerID = ownerID
		m.ProductID = p.ID
		m.ResultingQuantity = p.Quantity
		if err := s.movements.CreateTx(tx, m); err != nil {
			return err
		}
		mov = m
		snapshot = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if snapshot.LowStock() {
		s.notifier.notifyLowStock(ctx, ownerID, []model.Product{snapshot})
	}
	return movementToResponse(mov), nil
}

func (s *stockService) Movements(ctx context.Context, ownerID, productID uuid.UUID, limit int) ([]dto.StockMovementResponse, error) {
	if _, err := s.products.FindByID(ctx, ownerID, productID); err != nil {
		return nil, apierror.NotFound("product not found")
	}
	movements, err := s.movements.ListByProduct(ctx, ownerID, productID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, *movementToResponse(&movements[i]))
	}
	return out, nil
}

// RecentMovements returns the tenant-wide ledger tail across all products,
// newest first.
func (s *stockService) RecentMovements(ctx context.Context, ownerID uuid.UUID, limit int) ([]dto.StockMovementResponse, error) {
	movements, err := s.movements.ListRecent(ctx, ownerID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, *movementToResponse(&movements[i]))
	}
	return out, nil
}

func reasonOrDefault(reason *string, fallback string) string {
	if reason != nil && *reason != "" {
		return *reason
	}
	return fallback
}

func movementToResponse(m *model.StockMovement) *dto.StockMovementResponse {
	resp := &dto.StockMovementResponse{
		ID:                m.ID.String(),
		ProductID:         m.ProductID.String(),
		Kind:              string(m.Kind),
		Delta:             m.Delta,
		ResultingQuantity: m.ResultingQuantity,
		Reason:            m.Reason,
		CreatedAt:         m.CreatedAt.Format(time.RFC3339),
	}
	if m.Product != nil {
		resp.ProductCode = m.Product.Code
		resp.ProductName = m.Product.Name
	}
	return resp
}
