package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier holds commercial contact data. Products and purchase orders
// reference it weakly; deleting a supplier with products attached is refused.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Email     *string
	Phone     *string
	TaxID     *string `gorm:"column:tax_id"`
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Products []Product `gorm:"foreignKey:SupplierID"`
}
