package repository

import (
	"context"
	"time"

	"pcxpress/internal/dto"
	"pcxpress/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailySale is one day's aggregated sold quantity for a single product.
// Days without sales are absent, not zero-filled.
type DailySale struct {
	Day      time.Time
	Quantity int
}

type SaleRepository interface {
	CreateTx(tx *gorm.DB, sale *model.Sale) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]model.Sale, int64, error)
	// DailySalesForProduct aggregates completed-sale quantities per calendar
	// day inside the lookback window, oldest first.
	DailySalesForProduct(ctx context.Context, ownerID, productID uuid.UUID, since time.Time) ([]DailySale, error)
	TopProducts(ctx context.Context, ownerID uuid.UUID, limit int) ([]dto.TopProductResponse, error)
	RevenueSince(ctx context.Context, ownerID uuid.UUID, since time.Time) (decimal.Decimal, int64, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{}).Where("owner_id = ?", ownerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	err := q.Preload("Items").Preload("Items.Product").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) DailySalesForProduct(ctx context.Context, ownerID, productID uuid.UUID, since time.Time) ([]DailySale, error) {
	var rows []DailySale
	err := r.db.WithContext(ctx).
		Model(&model.SaleItem{}).
		Select("DATE(sales.created_at) AS day, SUM(sale_items.quantity) AS quantity").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.owner_id = ? AND sale_items.product_id = ? AND sales.status = ? AND sales.created_at >= ?",
			ownerID, productID, model.SaleCompleted, since).
		Group("DATE(sales.created_at)").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) TopProducts(ctx context.Context, ownerID uuid.UUID, limit int) ([]dto.TopProductResponse, error) {
	if limit < 1 {
		limit = 10
	}
	var rows []dto.TopProductResponse
	err := r.db.WithContext(ctx).
		Model(&model.SaleItem{}).
		Select(`sale_items.product_id,
			products.name,
			products.code,
			COALESCE(SUM(sale_items.line_total), 0) AS total_sales,
			COALESCE(SUM(sale_items.quantity), 0) AS total_quantity_sold,
			products.quantity AS current_stock,
			products.unit_price`).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Where("sales.owner_id = ? AND sales.status = ?", ownerID, model.SaleCompleted).
		Group("sale_items.product_id, products.name, products.code, products.quantity, products.unit_price").
		Order("total_sales DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) RevenueSince(ctx context.Context, ownerID uuid.UUID, since time.Time) (decimal.Decimal, int64, error) {
	type row struct {
		Revenue decimal.Decimal
		Count   int64
	}
	var rw row
	err := r.db.WithContext(ctx).
		Model(&model.Sale{}).
		Select("COALESCE(SUM(total_value), 0) AS revenue, COUNT(*) AS count").
		Where("owner_id = ? AND status = ? AND created_at >= ?", ownerID, model.SaleCompleted, since).
		Scan(&rw).Error
	return rw.Revenue, rw.Count, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
