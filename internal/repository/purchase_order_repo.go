package repository

import (
	"context"

	"pcxpress/internal/dto"
	"pcxpress/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *model.PurchaseOrder) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.PurchaseOrder, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error)
	Save(ctx context.Context, po *model.PurchaseOrder) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Statistics(ctx context.Context, ownerID uuid.UUID) (*dto.PurchaseOrderStatisticsResponse, error)

	FindByIDTx(tx *gorm.DB, ownerID, id uuid.UUID) (*model.PurchaseOrder, error)
	SaveItemTx(tx *gorm.DB, item *model.PurchaseOrderItem) error

	DB() *gorm.DB
}

type purchaseOrderRepo struct{ db *gorm.DB }

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) Create(ctx context.Context, po *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

func (r *purchaseOrderRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Items").
		Preload("Items.Product").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&po).Error
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error) {
	var orders []model.PurchaseOrder
	var total int64

	q := r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).Where("owner_id = ?", ownerID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
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
	err := q.Preload("Supplier").Preload("Items").Preload("Items.Product").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *purchaseOrderRepo) Save(ctx context.Context, po *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(po).Error
}

func (r *purchaseOrderRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.PurchaseOrder{}).Error
}

func (r *purchaseOrderRepo) Statistics(ctx context.Context, ownerID uuid.UUID) (*dto.PurchaseOrderStatisticsResponse, error) {
	type row struct {
		Status model.PurchaseOrderStatus
		Count  int64
		Total  decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.PurchaseOrder{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_value), 0) AS total").
		Where("owner_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &dto.PurchaseOrderStatisticsResponse{ApprovedValue: decimal.Zero}
	for _, rw := range rows {
		stats.TotalOrders += rw.Count
		switch rw.Status {
		case model.PurchaseOrderPending:
			stats.PendingOrders = rw.Count
		case model.PurchaseOrderApproved:
			stats.ApprovedOrders = rw.Count
			stats.ApprovedValue = stats.ApprovedValue.Add(rw.Total)
		}
	}
	return stats, nil
}

func (r *purchaseOrderRepo) FindByIDTx(tx *gorm.DB, ownerID, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := tx.
		Preload("Supplier").
		Preload("Items").
		Preload("Items.Product").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&po).Error
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepo) SaveItemTx(tx *gorm.DB, item *model.PurchaseOrderItem) error {
	return tx.Save(item).Error
}

func (r *purchaseOrderRepo) DB() *gorm.DB { return r.db }
