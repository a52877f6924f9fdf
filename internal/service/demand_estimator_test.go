package service_test

import (
	"context"
	"testing"
	"time"

	"pcxpress/internal/repository"
	"pcxpress/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailyHistory builds n consecutive sale days ending yesterday, with
// quantities produced by fn(day index).
func dailyHistory(n int, fn func(i int) int) []repository.DailySale {
	start := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -n)
	out := make([]repository.DailySale, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, repository.DailySale{
			Day:      start.AddDate(0, 0, i),
			Quantity: fn(i),
		})
	}
	return out
}

func TestEstimateDemand_InsufficientHistory(t *testing.T) {
	sales := newStubSaleRepo()
	sales.daily = dailyHistory(5, func(int) int { return 3 })
	est := service.NewTrendEstimator(sales)

	forecast, err := est.EstimateDemand(context.Background(), uuid.New(), uuid.New(), 30)
	require.NoError(t, err)

	assert.False(t, forecast.Success)
	assert.Equal(t, "not enough sales history to estimate demand", forecast.Message)
	assert.Equal(t, 5, forecast.HistoricalDataPoints)
	assert.Empty(t, forecast.Predictions)
	assert.Zero(t, forecast.TotalPredictedDemand)
}

func TestEstimateDemand_FlatHistory(t *testing.T) {
	sales := newStubSaleRepo()
	sales.daily = dailyHistory(20, func(int) int { return 5 })
	est := service.NewTrendEstimator(sales)

	forecast, err := est.EstimateDemand(context.Background(), uuid.New(), uuid.New(), 10)
	require.NoError(t, err)

	require.True(t, forecast.Success)
	assert.Equal(t, 20, forecast.HistoricalDataPoints)
	assert.InDelta(t, 5.0, forecast.AvgDailyDemand, 0.001)

	require.Len(t, forecast.Predictions, 10)
	for _, p := range forecast.Predictions {
		assert.InDelta(t, 5.0, p.PredictedQuantity, 0.01)
	}
	assert.InDelta(t, 50.0, forecast.TotalPredictedDemand, 0.1)
}

func TestEstimateDemand_GrowingTrend(t *testing.T) {
	sales := newStubSaleRepo()
	// quantity rises by one unit per day: the fit should extrapolate upward
	sales.daily = dailyHistory(15, func(i int) int { return 2 + i })
	est := service.NewTrendEstimator(sales)

	forecast, err := est.EstimateDemand(context.Background(), uuid.New(), uuid.New(), 5)
	require.NoError(t, err)

	require.True(t, forecast.Success)
	require.Len(t, forecast.Predictions, 5)
	assert.Greater(t, forecast.Predictions[0].PredictedQuantity, forecast.AvgDailyDemand)
	for i := 1; i < len(forecast.Predictions); i++ {
		assert.Greater(t, forecast.Predictions[i].PredictedQuantity, forecast.Predictions[i-1].PredictedQuantity)
	}
}

func TestEstimateDemand_DecliningTrendFloorsAtZero(t *testing.T) {
	sales := newStubSaleRepo()
	// steep decline: extrapolation would go negative without the floor
	sales.daily = dailyHistory(14, func(i int) int {
		q := 40 - 3*i
		if q < 0 {
			q = 0
		}
		return q
	})
	est := service.NewTrendEstimator(sales)

	forecast, err := est.EstimateDemand(context.Background(), uuid.New(), uuid.New(), 30)
	require.NoError(t, err)

	require.True(t, forecast.Success)
	for _, p := range forecast.Predictions {
		assert.GreaterOrEqual(t, p.PredictedQuantity, 0.0)
	}
	last := forecast.Predictions[len(forecast.Predictions)-1]
	assert.Zero(t, last.PredictedQuantity)
}

func TestEstimateDemand_DefaultHorizon(t *testing.T) {
	sales := newStubSaleRepo()
	sales.daily = dailyHistory(20, func(int) int { return 1 })
	est := service.NewTrendEstimator(sales)

	forecast, err := est.EstimateDemand(context.Background(), uuid.New(), uuid.New(), 0)
	require.NoError(t, err)
	assert.Len(t, forecast.Predictions, 30)
}
