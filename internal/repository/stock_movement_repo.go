package repository

import (
	"context"
	"time"

	"pcxpress/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockMovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	ListByProduct(ctx context.Context, ownerID, productID uuid.UUID, limit int) ([]model.StockMovement, error)
	ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.StockMovement, error)
	// CountByKindSince aggregates absolute movement volume per kind over a window.
	CountByKindSince(ctx context.Context, ownerID uuid.UUID, since time.Time) (map[model.MovementKind]int64, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) ListByProduct(ctx context.Context, ownerID, productID uuid.UUID, limit int) ([]model.StockMovement, error) {
	if limit < 1 {
		limit = 100
	}
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND product_id = ?", ownerID, productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	return movements, err
}

func (r *stockMovementRepo) ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.StockMovement, error) {
	if limit < 1 {
		limit = 50
	}
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	return movements, err
}

func (r *stockMovementRepo) CountByKindSince(ctx context.Context, ownerID uuid.UUID, since time.Time) (map[model.MovementKind]int64, error) {
	type row struct {
		Kind  model.MovementKind
		Total int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.StockMovement{}).
		Select("kind, COALESCE(SUM(ABS(delta)), 0) AS total").
		Where("owner_id = ? AND created_at >= ?", ownerID, since).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.MovementKind]int64, len(rows))
	for _, rw := range rows {
		out[rw.Kind] = rw.Total
	}
	return out, nil
}
