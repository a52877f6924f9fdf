package service

import (
	"context"

	"pcxpress/internal/apierror"
	"pcxpress/internal/dto"
	"pcxpress/internal/model"
	"pcxpress/internal/repository"

	"github.com/google/uuid"
)

type SupplierService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	sup := &model.Supplier{
		OwnerID: ownerID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		TaxID:   req.TaxID,
		Notes:   req.Notes,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, apierror.NotFound("supplier not found")
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) List(ctx context.Context, ownerID uuid.UUID) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, *supplierToResponse(&suppliers[i]))
	}
	return out, nil
}

func (s *supplierService) Update(ctx context.Context, ownerID, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, apierror.NotFound("supplier not found")
	}

	if req.Name != nil {
		sup.Name = *req.Name
	}
	if req.Email != nil {
		sup.Email = req.Email
	}
	if req.Phone != nil {
		sup.Phone = req.Phone
	}
	if req.TaxID != nil {
		sup.TaxID = req.TaxID
	}
	if req.Notes != nil {
		sup.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	sup, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return apierror.NotFound("supplier not found")
	}

	n, err := s.repo.CountProducts(ctx, ownerID, sup.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.InvalidOperation("supplier has products assigned and cannot be deleted")
	}

	return s.repo.Delete(ctx, ownerID, sup.ID)
}

func supplierToResponse(sup *model.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        sup.ID.String(),
		Name:      sup.Name,
		Email:     sup.Email,
		Phone:     sup.Phone,
		TaxID:     sup.TaxID,
		Notes:     sup.Notes,
		CreatedAt: sup.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
