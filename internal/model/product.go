package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the live stock record for one catalog item.
// Quantity is mutated ONLY through movement-producing operations in the
// inventory ledger (or the sale/receipt paths that delegate to it) — never
// written directly by handlers.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_products_owner_code"`
	Code        string    `gorm:"not null;uniqueIndex:idx_products_owner_code"`
	Name        string    `gorm:"index;not null"`
	Category    *string
	Quantity    int             `gorm:"not null;default:0"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description *string
	SupplierID  *uuid.UUID `gorm:"type:uuid;index"`
	// ReorderThreshold is the minimum quantity before the product counts as
	// low stock; the restock planner targets 2x this value.
	ReorderThreshold int `gorm:"not null;default:5"`
	LeadTimeDays     int `gorm:"not null;default:7"`
	SafetyStock      int `gorm:"not null;default:2"`
	LastSaleDate     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Supplier  *Supplier       `gorm:"foreignKey:SupplierID"`
	Movements []StockMovement `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// LowStock reports whether the product sits at or below its reorder threshold.
func (p *Product) LowStock() bool { return p.Quantity <= p.ReorderThreshold }
