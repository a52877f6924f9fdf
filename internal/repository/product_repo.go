package repository

import (
	"context"

	"pcxpress/internal/dto"
	"pcxpress/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error)
	ListLowStock(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error)
	// ListBelowRecommended returns products whose quantity is below twice the
	// reorder threshold, optionally restricted to one supplier.
	ListBelowRecommended(ctx context.Context, ownerID uuid.UUID, supplierID *uuid.UUID) ([]model.Product, error)
	ListBySupplier(ctx context.Context, ownerID, supplierID uuid.UUID) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdateTx takes a row-level lock so concurrent quantity
	// mutations on the same product serialize instead of losing updates.
	FindByIDForUpdateTx(tx *gorm.DB, ownerID, id uuid.UUID) (*model.Product, error)
	SaveTx(tx *gorm.DB, p *model.Product) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{}).Where("owner_id = ?", ownerID)

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.LowStock {
		q = q.Where("quantity <= reorder_threshold")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListAll(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) ListLowStock(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND quantity <= reorder_threshold", ownerID).
		Order("quantity ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) ListBelowRecommended(ctx context.Context, ownerID uuid.UUID, supplierID *uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).
		Where("owner_id = ? AND quantity < reorder_threshold * 2", ownerID)
	if supplierID != nil {
		q = q.Where("supplier_id = ?", *supplierID)
	}
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) ListBySupplier(ctx context.Context, ownerID, supplierID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND supplier_id = ?", ownerID, supplierID).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Product{}).Error
}

func (r *productRepo) FindByIDForUpdateTx(tx *gorm.DB, ownerID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) SaveTx(tx *gorm.DB, p *model.Product) error {
	return tx.Save(p).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
