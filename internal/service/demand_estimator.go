package service

import (
	"context"
	"time"

	"pcxpress/internal/dto"
	"pcxpress/internal/repository"

	"github.com/google/uuid"
)

const (
	// demandWindowDays is the historical lookback for demand estimation.
	demandWindowDays = 180
	// minSaleDays is the minimum number of distinct sale days required for a
	// usable forecast.
	minSaleDays = 14
)

// DemandEstimator produces a daily demand forecast for one product.
// Success=false in the result signals insufficient history, not an error:
// callers get a well-formed zero forecast either way.
type DemandEstimator interface {
	EstimateDemand(ctx context.Context, ownerID, productID uuid.UUID, horizonDays int) (*dto.DemandForecast, error)
}

// trendEstimator fits a least-squares linear trend over the daily sale
// aggregates and extrapolates it forward, flooring predictions at zero.
type trendEstimator struct {
	sales repository.SaleRepository
}

func NewTrendEstimator(sales repository.SaleRepository) DemandEstimator {
	return &trendEstimator{sales: sales}
}

func (e *trendEstimator) EstimateDemand(ctx context.Context, ownerID, productID uuid.UUID, horizonDays int) (*dto.DemandForecast, error) {
	if horizonDays < 1 {
		horizonDays = 30
	}

	since := time.Now().UTC().AddDate(0, 0, -demandWindowDays)
	rows, err := e.sales.DailySalesForProduct(ctx, ownerID, productID, since)
	if err != nil {
		return nil, err
	}

	if len(rows) < minSaleDays {
		return &dto.DemandForecast{
			Success:              false,
			Message:              "not enough sales history to estimate demand",
			HistoricalDataPoints: len(rows),
		}, nil
	}

	// x = days since the first observed sale day, y = units sold that day
	first := rows[0].Day
	n := float64(len(rows))
	var sumX, sumY, sumXY, sumXX float64
	totalSold := 0
	for _, row := range rows {
		x := row.Day.Sub(first).Hours() / 24
		y := float64(row.Quantity)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
		totalSold += row.Quantity
	}

	slope := 0.0
	denom := n*sumXX - sumX*sumX
	if denom != 0 {
		slope = (n*sumXY - sumX*sumY) / denom
	}
	intercept := (sumY - slope*sumX) / n

	lastX := rows[len(rows)-1].Day.Sub(first).Hours() / 24
	today := time.Now().UTC().Truncate(24 * time.Hour)

	forecast := &dto.DemandForecast{
		Success:              true,
		AvgDailyDemand:       sumY / n,
		HistoricalDataPoints: len(rows),
	}
	for i := 1; i <= horizonDays; i++ {
		predicted := intercept + slope*(lastX+float64(i))
		if predicted < 0 {
			predicted = 0
		}
		forecast.Predictions = append(forecast.Predictions, dto.DailyDemandPoint{
			Date:              today.AddDate(0, 0, i).Format("2006-01-02"),
			PredictedQuantity: predicted,
		})
		forecast.TotalPredictedDemand += predicted
	}
	return forecast, nil
}
