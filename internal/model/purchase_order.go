package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus is the lifecycle state of a purchase order.
// Transitions are forward-only:
//
//	DRAFT → PENDING_APPROVAL → APPROVED   (terminal, receivable)
//	PENDING_APPROVAL → CANCELLED          (terminal)
//
// Only DRAFT orders may be deleted.
type PurchaseOrderStatus string

const (
	PurchaseOrderDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderPending   PurchaseOrderStatus = "PENDING_APPROVAL"
	PurchaseOrderApproved  PurchaseOrderStatus = "APPROVED"
	PurchaseOrderCancelled PurchaseOrderStatus = "CANCELLED"
)

// PurchaseOrder is a restock request to a supplier.
// TotalValue is denormalized: computed once from the items at creation time
// and never recomputed, so later product price changes do not touch it.
type PurchaseOrder struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status          PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	TotalValue      decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Notes           *string
	CreatedAt       time.Time
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	RejectionReason *string

	Supplier *Supplier           `gorm:"foreignKey:SupplierID"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

// PurchaseOrderItem is one line of a purchase order. UnitPrice is a snapshot
// of the product price at order-creation time, deliberately decoupled from
// the live product price.
type PurchaseOrderItem struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseOrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID `gorm:"type:uuid;not null"`
	QuantityRequested int       `gorm:"not null"`
	// QuantityReceived is overwritten (not accumulated) by each receive call.
	QuantityReceived int             `gorm:"not null;default:0"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt        time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
