package dto

import "github.com/shopspring/decimal"

// Urgency labels for the restock classifier, ordered most to least severe.
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
)

type RestockItemResponse struct {
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name"`
	Code             string          `json:"code"`
	SupplierID       *string         `json:"supplier_id"`
	SupplierName     *string         `json:"supplier_name"`
	CurrentStock     int             `json:"current_stock"`
	ReorderThreshold int             `json:"reorder_threshold"`
	RecommendedStock int             `json:"recommended_stock"`
	RestockNeeded    int             `json:"restock_needed"`
	EstimatedCost    decimal.Decimal `json:"estimated_cost"`
	Urgency          string          `json:"urgency"`
}

type RestockAnalysisResponse struct {
	Items         []RestockItemResponse `json:"items"`
	TotalItems    int                   `json:"total_items"`
	TotalCost     decimal.Decimal       `json:"total_cost"`
	CriticalCount int                   `json:"critical_count"`
	HighCount     int                   `json:"high_count"`
	MediumCount   int                   `json:"medium_count"`
	LowCount      int                   `json:"low_count"`
}

type RestockedProductResponse struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	PreviousStock int             `json:"previous_stock"`
	NewStock      int             `json:"new_stock"`
	RestockAmount int             `json:"restock_amount"`
	Cost          decimal.Decimal `json:"cost"`
}

type RestockAllResponse struct {
	RestockedProducts []RestockedProductResponse `json:"restocked_products"`
	ProductsRestocked int                        `json:"products_restocked"`
	TotalValue        decimal.Decimal            `json:"total_value"`
}
