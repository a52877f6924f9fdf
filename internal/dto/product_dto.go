package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Code             string          `json:"code"              validate:"required,min=1,max=100"`
	Name             string          `json:"name"              validate:"required,min=2,max=120"`
	Category         *string         `json:"category"`
	Quantity         int             `json:"quantity"          validate:"min=0"`
	UnitPrice        decimal.Decimal `json:"unit_price"        validate:"required"`
	Description      *string         `json:"description"`
	SupplierID       *string         `json:"supplier_id"       validate:"omitempty,uuid"`
	ReorderThreshold int             `json:"reorder_threshold" validate:"min=0"`
	LeadTimeDays     int             `json:"lead_time_days"    validate:"min=0"`
	SafetyStock      int             `json:"safety_stock"      validate:"min=0"`
}

// UpdateProductRequest patches product metadata. Quantity is absent on
// purpose: stock changes only through the ledger endpoints.
type UpdateProductRequest struct {
	Name             *string          `json:"name"              validate:"omitempty,min=2,max=120"`
	Category         *string          `json:"category"`
	UnitPrice        *decimal.Decimal `json:"unit_price"`
	Description      *string          `json:"description"`
	SupplierID       *string          `json:"supplier_id"       validate:"omitempty,uuid"`
	ReorderThreshold *int             `json:"reorder_threshold" validate:"omitempty,min=0"`
	LeadTimeDays     *int             `json:"lead_time_days"    validate:"omitempty,min=0"`
	SafetyStock      *int             `json:"safety_stock"      validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name       string `form:"name"`
	Category   string `form:"category"`
	SupplierID string `form:"supplier_id"`
	LowStock   bool   `form:"low_stock"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Category         *string         `json:"category"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Description      *string         `json:"description"`
	SupplierID       *string         `json:"supplier_id"`
	ReorderThreshold int             `json:"reorder_threshold"`
	LeadTimeDays     int             `json:"lead_time_days"`
	SafetyStock      int             `json:"safety_stock"`
	LowStock         bool            `json:"low_stock"`
	LastSaleDate     *string         `json:"last_sale_date"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
