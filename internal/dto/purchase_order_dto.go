package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PurchaseOrderItemRequest struct {
	ProductID         string          `json:"product_id"         validate:"required,uuid"`
	QuantityRequested int             `json:"quantity_requested" validate:"required,gt=0"`
	UnitPrice         decimal.Decimal `json:"unit_price"         validate:"required"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id" validate:"required,uuid"`
	Items      []PurchaseOrderItemRequest `json:"items"       validate:"required,min=1,dive"`
	Notes      *string                    `json:"notes"`
	// Status may be set to PENDING_APPROVAL to skip the draft stage
	// (auto-generation path); anything else creates a DRAFT.
	Status *string `json:"status" validate:"omitempty,oneof=DRAFT PENDING_APPROVAL"`
}

// UpdatePurchaseOrderRequest is the generic metadata patch. It intentionally
// does NOT run the approve/reject business rules — see the dedicated
// transition endpoints for those.
type UpdatePurchaseOrderRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=DRAFT PENDING_APPROVAL APPROVED CANCELLED"`
	Notes  *string `json:"notes"`
}

type RejectPurchaseOrderRequest struct {
	Reason *string `json:"reason"`
}

type ItemReceiptRequest struct {
	ItemID           string `json:"item_id"           validate:"required,uuid"`
	QuantityReceived int    `json:"quantity_received" validate:"min=0"`
}

type ReceivePurchaseOrderRequest struct {
	Receipts []ItemReceiptRequest `json:"receipts" validate:"required,min=1,dive"`
}

type AutoGeneratePurchaseOrderRequest struct {
	SupplierID string `json:"supplier_id" validate:"required,uuid"`
}

type PurchaseOrderFilter struct {
	Status     string `form:"status"`
	SupplierID string `form:"supplier_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PurchaseOrderItemResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	ProductCode       string          `json:"product_code"`
	QuantityRequested int             `json:"quantity_requested"`
	QuantityReceived  int             `json:"quantity_received"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

type PurchaseOrderResponse struct {
	ID              string                      `json:"id"`
	SupplierID      string                      `json:"supplier_id"`
	SupplierName    string                      `json:"supplier_name"`
	Status          string                      `json:"status"`
	TotalValue      decimal.Decimal             `json:"total_value"`
	Notes           *string                     `json:"notes"`
	CreatedAt       string                      `json:"created_at"`
	ApprovedAt      *string                     `json:"approved_at"`
	RejectedAt      *string                     `json:"rejected_at"`
	RejectionReason *string                     `json:"rejection_reason"`
	Items           []PurchaseOrderItemResponse `json:"items"`
}

type PurchaseOrderStatisticsResponse struct {
	TotalOrders    int64           `json:"total_orders"`
	PendingOrders  int64           `json:"pending_orders"`
	ApprovedOrders int64           `json:"approved_orders"`
	ApprovedValue  decimal.Decimal `json:"approved_value"`
}
