package dto

// StockChangeRequest drives add/remove ledger operations.
type StockChangeRequest struct {
	Amount int     `json:"amount" validate:"required,gt=0"`
	Reason *string `json:"reason"`
}

// StockSetRequest replaces the absolute quantity.
type StockSetRequest struct {
	Quantity int     `json:"quantity" validate:"min=0"`
	Reason   *string `json:"reason"`
}

type StockMovementResponse struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	ProductCode       string `json:"product_code,omitempty"`
	ProductName       string `json:"product_name,omitempty"`
	Kind              string `json:"kind"`
	Delta             int    `json:"delta"`
	ResultingQuantity int    `json:"resulting_quantity"`
	Reason            string `json:"reason"`
	CreatedAt         string `json:"created_at"`
}
