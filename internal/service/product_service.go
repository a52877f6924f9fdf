package service

import (
	"context"
	"errors"
	"time"

	"pcxpress/internal/apierror"
	"pcxpress/internal/dto"
	"pcxpress/internal/model"
	"pcxpress/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	ListLowStock(ctx context.Context, ownerID uuid.UUID) ([]dto.ProductResponse, error)
	ListBySupplier(ctx context.Context, ownerID, supplierID uuid.UUID) ([]dto.ProductResponse, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type productService struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

func NewProductService(repo repository.ProductRepository, supplierRepo repository.SupplierRepository) ProductService {
	return &productService{repo: repo, supplierRepo: supplierRepo}
}

func (s *productService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	supplierID, err := s.resolveSupplier(ctx, ownerID, req.SupplierID)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		OwnerID:          ownerID,
		Code:             req.Code,
		Name:             req.Name,
		Category:         req.Category,
		Quantity:         req.Quantity,
		UnitPrice:        req.UnitPrice,
		Description:      req.Description,
		SupplierID:       supplierID,
		ReorderThreshold: req.ReorderThreshold,
		LeadTimeDays:     req.LeadTimeDays,
		SafetyStock:      req.SafetyStock,
	}
	if p.ReorderThreshold == 0 {
		p.ReorderThreshold = 5
	}
	if p.LeadTimeDays == 0 {
		p.LeadTimeDays = 7
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("product code already in use")
		}
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, ownerID uuid.UUID, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}
	return &dto.ProductListResponse{Data: out, Total: total, Page: page, Limit: limit}, nil
}

func (s *productService) ListLowStock(ctx context.Context, ownerID uuid.UUID) ([]dto.ProductResponse, error) {
	products, err := s.repo.ListLowStock(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) ListBySupplier(ctx context.Context, ownerID, supplierID uuid.UUID) ([]dto.ProductResponse, error) {
	if _, err := s.supplierRepo.FindByID(ctx, ownerID, supplierID); err != nil {
		return nil, apierror.NotFound("supplier not found")
	}
	products, err := s.repo.ListBySupplier(ctx, ownerID, supplierID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Update(ctx context.Context, ownerID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}

	if req.SupplierID != nil {
		supplierID, err := s.resolveSupplier(ctx, ownerID, req.SupplierID)
		if err != nil {
			return nil, err
		}
		p.SupplierID = supplierID
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = req.Category
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.ReorderThreshold != nil {
		p.ReorderThreshold = *req.ReorderThreshold
	}
	if req.LeadTimeDays != nil {
		p.LeadTimeDays = *req.LeadTimeDays
	}
	if req.SafetyStock != nil {
		p.SafetyStock = *req.SafetyStock
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, ownerID, id); err != nil {
		return apierror.NotFound("product not found")
	}
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *productService) resolveSupplier(ctx context.Context, ownerID uuid.UUID, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	sid, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apierror.InvalidOperation("invalid supplier_id")
	}
	if _, err := s.supplierRepo.FindByID(ctx, ownerID, sid); err != nil {
		return nil, apierror.NotFound("supplier not found")
	}
	return &sid, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:               p.ID.String(),
		Code:             p.Code,
		Name:             p.Name,
		Category:         p.Category,
		Quantity:         p.Quantity,
		UnitPrice:        p.UnitPrice,
		Description:      p.Description,
		ReorderThreshold: p.ReorderThreshold,
		LeadTimeDays:     p.LeadTimeDays,
		SafetyStock:      p.SafetyStock,
		LowStock:         p.LowStock(),
	}
	if p.SupplierID != nil {
		s := p.SupplierID.String()
		resp.SupplierID = &s
	}
	if p.LastSaleDate != nil {
		t := p.LastSaleDate.Format(time.RFC3339)
		resp.LastSaleDate = &t
	}
	return resp
}
