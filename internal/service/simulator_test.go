package service_test

import (
	"context"
	"testing"

	"pcxpress/internal/dto"
	"pcxpress/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSimulator() (*service.Simulator, *poFixture) {
	f := buildPOSvc()
	return service.NewSimulator(f.svc, f.orders, f.products), f
}

func TestSimulator_DoubleStartRejected(t *testing.T) {
	sim, _ := buildSimulator()
	owner := uuid.New()

	require.NoError(t, sim.Start(owner, dto.StartSimulationRequest{DurationMinutes: 1}))
	defer sim.Stop()

	err := sim.Start(owner, dto.StartSimulationRequest{DurationMinutes: 1})
	assert.ErrorContains(t, err, "already running")
}

func TestSimulator_StopWhenIdle(t *testing.T) {
	sim, _ := buildSimulator()

	err := sim.Stop()
	assert.ErrorContains(t, err, "no simulation is running")
}

func TestSimulator_StartStopCycle(t *testing.T) {
	sim, _ := buildSimulator()
	owner := uuid.New()

	require.NoError(t, sim.Start(owner, dto.StartSimulationRequest{DurationMinutes: 1, MaxPendingOrders: 3}))

	status, err := sim.Status(context.Background(), owner)
	require.NoError(t, err)
	assert.True(t, status.Running)

	require.NoError(t, sim.Stop())

	status, err = sim.Status(context.Background(), owner)
	require.NoError(t, err)
	assert.False(t, status.Running)

	// A stopped simulator can be started again
	require.NoError(t, sim.Start(owner, dto.StartSimulationRequest{DurationMinutes: 1}))
	require.NoError(t, sim.Stop())
}

func TestSimulator_StatusReflectsOrderBook(t *testing.T) {
	sim, f := buildSimulator()
	owner := uuid.New()

	p := seedProduct(f.products, owner, "SIM-001", 50, 5, 10)
	sup := seedSupplier(f.suppliers, owner, "Proveedor Simulado")
	p.SupplierID = &sup.ID

	f.createOrder(t, owner, "PENDING_APPROVAL", []dto.PurchaseOrderItemRequest{
		{ProductID: p.ID.String(), QuantityRequested: 1, UnitPrice: p.UnitPrice},
	})

	status, err := sim.Status(context.Background(), owner)
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Equal(t, int64(1), status.TotalOrders)
	assert.Equal(t, int64(1), status.PendingOrders)
	assert.Zero(t, status.OrdersCreated)
}
