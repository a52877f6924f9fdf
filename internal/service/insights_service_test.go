package service_test

import (
	"context"
	"testing"

	"pcxpress/internal/apierror"
	"pcxpress/internal/model"
	"pcxpress/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInsightsSvc(sales *stubSaleRepo) (service.InsightsService, *stubProductRepo, *stubMovementRepo) {
	products := newStubProductRepo()
	movements := &stubMovementRepo{}
	estimator := service.NewTrendEstimator(sales)
	svc := service.NewInsightsService(products, movements, sales, estimator, nil)
	return svc, products, movements
}

func TestForecast_UnknownProduct(t *testing.T) {
	svc, _, _ := buildInsightsSvc(newStubSaleRepo())

	_, err := svc.Forecast(context.Background(), uuid.New(), uuid.New(), 30)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestStockOptimization_ReorderNow(t *testing.T) {
	sales := newStubSaleRepo()
	sales.daily = dailyHistory(20, func(int) int { return 5 })
	svc, products, _ := buildInsightsSvc(sales)

	owner := uuid.New()
	// avg daily 5 × lead time 7 + safety stock 2 = reorder point 37
	p := seedProduct(products, owner, "INS-001", 10, 5, 100)

	resp, err := svc.StockOptimization(context.Background(), owner, p.ID)
	require.NoError(t, err)

	require.True(t, resp.Success)
	assert.InDelta(t, 37.0, resp.ReorderPoint, 0.1)
	assert.InDelta(t, 2.0, resp.StockCoverDays, 0.1)
	assert.Equal(t, "reorder now", resp.Recommendation)
}

func TestStockOptimization_Overstocked(t *testing.T) {
	sales := newStubSaleRepo()
	sales.daily = dailyHistory(20, func(int) int { return 5 })
	svc, products, _ := buildInsightsSvc(sales)

	owner := uuid.New()
	// 500 units at 5/day is 100 days of cover
	p := seedProduct(products, owner, "INS-002", 500, 5, 100)

	resp, err := svc.StockOptimization(context.Background(), owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "overstocked", resp.Recommendation)
}

func TestStockOptimization_InsufficientHistory(t *testing.T) {
	sales := newStubSaleRepo()
	sales.daily = dailyHistory(3, func(int) int { return 5 })
	svc, products, _ := buildInsightsSvc(sales)

	owner := uuid.New()
	p := seedProduct(products, owner, "INS-003", 10, 5, 100)

	resp, err := svc.StockOptimization(context.Background(), owner, p.ID)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, 10, resp.CurrentStock)
}

func TestOverview(t *testing.T) {
	sales := newStubSaleRepo()
	svc, products, movements := buildInsightsSvc(sales)
	owner := uuid.New()

	seedProduct(products, owner, "INS-004", 0, 5, 100) // out of stock (and low)
	seedProduct(products, owner, "INS-005", 3, 5, 50)  // low stock
	seedProduct(products, owner, "INS-006", 40, 5, 10) // healthy

	require.NoError(t, movements.CreateTx(nil, &model.StockMovement{
		OwnerID: owner, ProductID: uuid.New(), Kind: model.MovementIn, Delta: 12,
	}))
	require.NoError(t, movements.CreateTx(nil, &model.StockMovement{
		OwnerID: owner, ProductID: uuid.New(), Kind: model.MovementOut, Delta: -4,
	}))

	require.NoError(t, sales.CreateTx(nil, &model.Sale{
		OwnerID: owner, Status: model.SaleCompleted, TotalValue: decimal.NewFromInt(120),
	}))
	require.NoError(t, sales.CreateTx(nil, &model.Sale{
		OwnerID: owner, Status: model.SaleCompleted, TotalValue: decimal.NewFromInt(80),
	}))

	resp, err := svc.Overview(context.Background(), owner)
	require.NoError(t, err)

	sum := resp.InventorySummary
	assert.Equal(t, 3, sum.TotalProducts)
	assert.Equal(t, 1, sum.OutOfStockCount)
	assert.Equal(t, 2, sum.LowStockCount)
	// 0×100 + 3×50 + 40×10 = 550
	assert.Equal(t, "550", sum.TotalStockValue.String())
	assert.InDelta(t, 33.33, sum.StockHealthPercentage, 0.1)

	assert.Equal(t, 12, resp.TotalIn)
	assert.Equal(t, 4, resp.TotalOut)
	assert.Equal(t, "200", resp.Revenue.String())
	assert.Equal(t, int64(2), resp.SalesCount)
}
