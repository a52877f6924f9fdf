package dto

type StartSimulationRequest struct {
	DurationMinutes  int `json:"duration_minutes"   validate:"omitempty,min=1,max=120"`
	MaxPendingOrders int `json:"max_pending_orders" validate:"omitempty,min=1,max=50"`
}

type SimulationStatusResponse struct {
	Running        bool  `json:"running"`
	OrdersCreated  int   `json:"orders_created"`
	TotalOrders    int64 `json:"total_orders"`
	PendingOrders  int64 `json:"pending_orders"`
	ApprovedOrders int64 `json:"approved_orders"`
}
