package dto

import "github.com/shopspring/decimal"

// DailyDemandPoint is one forecasted day.
type DailyDemandPoint struct {
	Date              string  `json:"date"`
	PredictedQuantity float64 `json:"predicted_quantity"`
}

// DemandForecast is the demand estimator result contract. Success=false with
// a Message indicates insufficient history, not a transport failure.
type DemandForecast struct {
	Success              bool               `json:"success"`
	Message              string             `json:"message,omitempty"`
	AvgDailyDemand       float64            `json:"avg_daily_demand"`
	TotalPredictedDemand float64            `json:"total_predicted_demand"`
	HistoricalDataPoints int                `json:"historical_data_points"`
	Predictions          []DailyDemandPoint `json:"predictions"`
}

type StockOptimizationResponse struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message,omitempty"`
	ProductID      string  `json:"product_id"`
	CurrentStock   int     `json:"current_stock"`
	AvgDailyDemand float64 `json:"avg_daily_demand"`
	ReorderPoint   float64 `json:"reorder_point"`
	StockCoverDays float64 `json:"stock_cover_days"`
	Recommendation string  `json:"recommendation"`
}

type InventorySummaryResponse struct {
	TotalProducts         int             `json:"total_products"`
	TotalStockValue       decimal.Decimal `json:"total_stock_value"`
	LowStockCount         int             `json:"low_stock_count"`
	OutOfStockCount       int             `json:"out_of_stock_count"`
	StockHealthPercentage float64         `json:"stock_health_percentage"`
}

type InsightsOverviewResponse struct {
	InventorySummary InventorySummaryResponse `json:"inventory_summary"`
	TotalIn          int                      `json:"total_in_30d"`
	TotalOut         int                      `json:"total_out_30d"`
	Revenue          decimal.Decimal          `json:"revenue_30d"`
	SalesCount       int64                    `json:"sales_count_30d"`
}
