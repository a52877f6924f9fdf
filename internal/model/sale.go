package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus classifies a sale. Current flows only ever produce COMPLETED;
// CANCELLED and REFUNDED exist for imported data and future surfaces.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "COMPLETED"
	SaleCancelled SaleStatus = "CANCELLED"
	SaleRefunded  SaleStatus = "REFUNDED"
)

// Sale is an append-only record of a completed transaction.
type Sale struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalValue decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status     SaleStatus      `gorm:"type:varchar(20);not null;default:'COMPLETED'"`
	CreatedAt  time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem is one line of a sale. Creating it decrements the referenced
// product's quantity (floored at zero) within the same transaction.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
