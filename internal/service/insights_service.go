package service

import (
	"context"
	"encoding/json"
	"time"

	"pcxpress/internal/apierror"
	"pcxpress/internal/dto"
	"pcxpress/internal/model"
	"pcxpress/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// overviewCacheTTL bounds how stale the dashboard overview may get.
const overviewCacheTTL = 5 * time.Minute

type InsightsService interface {
	Forecast(ctx context.Context, ownerID, productID uuid.UUID, horizonDays int) (*dto.DemandForecast, error)
	StockOptimization(ctx context.Context, ownerID, productID uuid.UUID) (*dto.StockOptimizationResponse, error)
	Overview(ctx context.Context, ownerID uuid.UUID) (*dto.InsightsOverviewResponse, error)
}

type insightsService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	sales     repository.SaleRepository
	estimator DemandEstimator
	rdb       *redis.Client
}

func NewInsightsService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	sales repository.SaleRepository,
	estimator DemandEstimator,
	rdb *redis.Client,
) InsightsService {
	return &insightsService{
		products:  products,
		movements: movements,
		sales:     sales,
		estimator: estimator,
		rdb:       rdb,
	}
}

func (s *insightsService) Forecast(ctx context.Context, ownerID, productID uuid.UUID, horizonDays int) (*dto.DemandForecast, error) {
	if _, err := s.products.FindByID(ctx, ownerID, productID); err != nil {
		return nil, apierror.NotFound("product not found")
	}
	return s.estimator.EstimateDemand(ctx, ownerID, productID, horizonDays)
}

func (s *insightsService) StockOptimization(ctx context.Context, ownerID, productID uuid.UUID) (*dto.StockOptimizationResponse, error) {
	p, err := s.products.FindByID(ctx, ownerID, productID)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}

	forecast, err := s.estimator.EstimateDemand(ctx, ownerID, productID, 30)
	if err != nil {
		return nil, err
	}

	resp := &dto.StockOptimizationResponse{
		ProductID:    p.ID.String(),
		CurrentStock: p.Quantity,
	}
	if !forecast.Success {
		resp.Message = forecast.Message
		return resp, nil
	}

	reorderPoint := forecast.AvgDailyDemand*float64(p.LeadTimeDays) + float64(p.SafetyStock)
	coverDays := 0.0
	if forecast.AvgDailyDemand > 0 {
		coverDays = float64(p.Quantity) / forecast.AvgDailyDemand
	}

	resp.Success = true
	resp.AvgDailyDemand = forecast.AvgDailyDemand
	resp.ReorderPoint = reorderPoint
	resp.StockCoverDays = coverDays
	switch {
	case float64(p.Quantity) <= reorderPoint:
		resp.Recommendation = "reorder now"
	case coverDays > 90:
		resp.Recommendation = "overstocked"
	default:
		resp.Recommendation = "stock level adequate"
	}
	return resp, nil
}

// Overview aggregates the dashboard numbers. The result is cached per owner
// in Redis; cache failures degrade to a live computation.
func (s *insightsService) Overview(ctx context.Context, ownerID uuid.UUID) (*dto.InsightsOverviewResponse, error) {
	cacheKey := "insights:overview:" + ownerID.String()

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached dto.InsightsOverviewResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	products, err := s.products.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := dto.InventorySummaryResponse{TotalStockValue: decimal.Zero}
	summary.TotalProducts = len(products)
	for i := range products {
		p := &products[i]
		summary.TotalStockValue = summary.TotalStockValue.Add(
			p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.Quantity == 0 {
			summary.OutOfStockCount++
		}
		if p.LowStock() {
			summary.LowStockCount++
		}
	}
	if summary.TotalProducts > 0 {
		healthy := summary.TotalProducts - summary.LowStockCount
		summary.StockHealthPercentage = float64(healthy) / float64(summary.TotalProducts) * 100
	}

	since := time.Now().UTC().AddDate(0, 0, -30)
	byKind, err := s.movements.CountByKindSince(ctx, ownerID, since)
	if err != nil {
		return nil, err
	}

	revenue, salesCount, err := s.sales.RevenueSince(ctx, ownerID, since)
	if err != nil {
		return nil, err
	}

	resp := &dto.InsightsOverviewResponse{
		InventorySummary: summary,
		TotalIn:          int(byKind[model.MovementIn]),
		TotalOut:         int(byKind[model.MovementOut]),
		Revenue:          revenue,
		SalesCount:       salesCount,
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, overviewCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Msg("insights overview cache write failed")
			}
		}
	}
	return resp, nil
}
