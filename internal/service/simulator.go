package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"pcxpress/internal/apierror"
	"pcxpress/internal/dto"
	"pcxpress/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	defaultSimDuration   = 10 * time.Minute
	defaultSimMaxPending = 5
)

// Simulator generates demo purchase orders in the background: random
// products, random quantities, submitted as PENDING_APPROVAL through the
// lifecycle service. One simulation at a time; the run stops on its own when
// the duration elapses or immediately on Stop.
type Simulator struct {
	orders   PurchaseOrderService
	poRepo   repository.PurchaseOrderRepository
	products repository.ProductRepository

	mu            sync.Mutex
	running       bool
	cancel        context.CancelFunc
	ordersCreated int
}

func NewSimulator(
	orders PurchaseOrderService,
	poRepo repository.PurchaseOrderRepository,
	products repository.ProductRepository,
) *Simulator {
	return &Simulator{orders: orders, poRepo: poRepo, products: products}
}

func (s *Simulator) Start(ownerID uuid.UUID, req dto.StartSimulationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return apierror.InvalidOperation("a simulation is already running")
	}

	duration := defaultSimDuration
	if req.DurationMinutes > 0 {
		duration = time.Duration(req.DurationMinutes) * time.Minute
	}
	maxPending := defaultSimMaxPending
	if req.MaxPendingOrders > 0 {
		maxPending = req.MaxPendingOrders
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	s.cancel = cancel
	s.running = true
	s.ordersCreated = 0

	go s.run(ctx, ownerID, maxPending)
	log.Info().
		Str("owner_id", ownerID.String()).
		Dur("duration", duration).
		Int("max_pending", maxPending).
		Msg("simulation started")
	return nil
}

func (s *Simulator) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return apierror.InvalidOperation("no simulation is running")
	}
	s.cancel()
	s.running = false
	log.Info().Msg("simulation stopped")
	return nil
}

func (s *Simulator) Status(ctx context.Context, ownerID uuid.UUID) (*dto.SimulationStatusResponse, error) {
	stats, err := s.poRepo.Statistics(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return &dto.SimulationStatusResponse{
		Running:        s.running,
		OrdersCreated:  s.ordersCreated,
		TotalOrders:    stats.TotalOrders,
		PendingOrders:  stats.PendingOrders,
		ApprovedOrders: stats.ApprovedOrders,
	}, nil
}

func (s *Simulator) run(ctx context.Context, ownerID uuid.UUID, maxPending int) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	for {
		// Randomized pacing so the generated data doesn't look metronomic
		pause := time.Duration(2+rand.Intn(7)) * time.Second
		select {
		case <-ctx.Done():
			return
		case <-time.After(pause):
		}

		stats, err := s.poRepo.Statistics(ctx, ownerID)
		if err != nil {
			log.Warn().Err(err).Msg("simulation: statistics lookup failed")
			continue
		}
		if stats.PendingOrders >= int64(maxPending) {
			continue
		}

		if err := s.createRandomOrder(ctx, ownerID); err != nil {
			log.Warn().Err(err).Msg("simulation: order creation failed")
			continue
		}

		s.mu.Lock()
		s.ordersCreated++
		s.mu.Unlock()
	}
}

func (s *Simulator) createRandomOrder(ctx context.Context, ownerID uuid.UUID) error {
	products, err := s.products.ListAll(ctx, ownerID)
	if err != nil {
		return err
	}

	// Only products with a supplier can be ordered
	var eligible []int
	for i := range products {
		if products[i].SupplierID != nil {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return apierror.InvalidOperation("no products with suppliers to simulate orders for")
	}

	p := &products[eligible[rand.Intn(len(eligible))]]
	status := "PENDING_APPROVAL"
	notes := "simulated order"
	req := dto.CreatePurchaseOrderRequest{
		SupplierID: p.SupplierID.String(),
		Status:     &status,
		Notes:      &notes,
		Items: []dto.PurchaseOrderItemRequest{{
			ProductID:         p.ID.String(),
			QuantityRequested: 1 + rand.Intn(10),
			UnitPrice:         p.UnitPrice,
		}},
	}
	_, err = s.orders.Create(ctx, ownerID, req)
	return err
}
