package dto

import "github.com/shopspring/decimal"

type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
	LineTotal decimal.Decimal `json:"line_total" validate:"required"`
}

type CreateSaleRequest struct {
	Items      []SaleItemRequest `json:"items"       validate:"required,min=1,dive"`
	TotalValue decimal.Decimal   `json:"total_value" validate:"required"`
	Status     *string           `json:"status"      validate:"omitempty,oneof=COMPLETED CANCELLED REFUNDED"`
}

type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type SaleResponse struct {
	ID         string             `json:"id"`
	TotalValue decimal.Decimal    `json:"total_value"`
	Status     string             `json:"status"`
	CreatedAt  string             `json:"created_at"`
	Items      []SaleItemResponse `json:"items"`
}

// TopProductResponse aggregates revenue per product for the analytics view.
type TopProductResponse struct {
	ProductID         string          `json:"product_id"`
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalQuantitySold int             `json:"total_quantity_sold"`
	CurrentStock      int             `json:"current_stock"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}
