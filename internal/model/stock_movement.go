package model

import (
	"time"

	"github.com/google/uuid"
)

// MovementKind classifies a stock movement.
type MovementKind string

const (
	MovementIn     MovementKind = "IN"
	MovementOut    MovementKind = "OUT"
	MovementAdjust MovementKind = "ADJUST"
)

// StockMovement is one immutable entry in the inventory audit trail.
// Rows are appended inside the same transaction that mutates the product and
// are never updated, deleted, or replayed — the product row stays the source
// of truth for current stock.
//
// Delta is signed for IN (+amount) and OUT (-amount). ADJUST stores the
// absolute difference |old-new|; the direction of an adjustment is not
// recoverable from the row alone, matching the historical rows this system
// migrated from.
type StockMovement struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Kind      MovementKind `gorm:"type:varchar(10);not null"`
	Delta     int          `gorm:"not null"`
	// ResultingQuantity snapshots Product.Quantity immediately after this
	// movement was applied.
	ResultingQuantity int `gorm:"not null"`
	Reason            string
	CreatedAt         time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
