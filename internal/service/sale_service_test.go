package service_test

import (
	"context"
	"testing"

	"pcxpress/internal/apierror"
	"pcxpress/internal/dto"
	"pcxpress/internal/model"
	"pcxpress/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSaleSvc() (service.SaleService, *stubSaleRepo, *stubProductRepo, *stubMovementRepo) {
	sales := newStubSaleRepo()
	products := newStubProductRepo()
	movements := &stubMovementRepo{}
	svc := service.NewSaleService(sales, products, movements, newStubPurchaseOrderRepo(), newStubUserRepo(), nil)
	return svc, sales, products, movements
}

func saleRequest(p *model.Product, qty int) dto.CreateSaleRequest {
	lineTotal := p.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
	return dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{
			ProductID: p.ID.String(),
			Quantity:  qty,
			UnitPrice: p.UnitPrice,
			LineTotal: lineTotal,
		}},
		TotalValue: lineTotal,
	}
}

func TestCreateSale_DecrementsStock(t *testing.T) {
	svc, sales, products, movements := buildSaleSvc()
	owner := uuid.New()
	p := seedProduct(products, owner, "MOU-001", 10, 5, 30)

	resp, err := svc.Create(context.Background(), owner, saleRequest(p, 4))
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, "120", resp.TotalValue.String())
	assert.Equal(t, 6, products.stock(p.ID))
	assert.NotNil(t, products.products[p.ID].LastSaleDate)

	require.Len(t, movements.movements, 1)
	mov := movements.movements[0]
	assert.Equal(t, model.MovementOut, mov.Kind)
	assert.Equal(t, -4, mov.Delta)
	assert.Equal(t, 6, mov.ResultingQuantity)

	// Stored and retrievable
	require.Len(t, sales.sales, 1)
	stored, err := svc.Get(context.Background(), owner, uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestCreateSale_FloorsAtZero(t *testing.T) {
	svc, _, products, movements := buildSaleSvc()
	owner := uuid.New()
	p := seedProduct(products, owner, "MOU-002", 2, 5, 30)

	// Request 5 with only 2 in stock: the sale succeeds, stock drains to zero
	// and the ledger records the decrement actually applied.
	_, err := svc.Create(context.Background(), owner, saleRequest(p, 5))
	require.NoError(t, err)

	assert.Equal(t, 0, products.stock(p.ID))
	require.Len(t, movements.movements, 1)
	assert.Equal(t, -2, movements.movements[0].Delta)
	assert.Equal(t, 0, movements.movements[0].ResultingQuantity)
}

func TestCreateSale_UnknownProduct(t *testing.T) {
	svc, _, _, _ := buildSaleSvc()
	owner := uuid.New()

	_, err := svc.Create(context.Background(), owner, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{
			ProductID: uuid.NewString(),
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(10),
			LineTotal: decimal.NewFromInt(10),
		}},
		TotalValue: decimal.NewFromInt(10),
	})
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestCreateFromPurchaseOrder_RequiresApproved(t *testing.T) {
	sales := newStubSaleRepo()
	products := newStubProductRepo()
	orders := newStubPurchaseOrderRepo()
	svc := service.NewSaleService(sales, products, &stubMovementRepo{}, orders, newStubUserRepo(), nil)

	owner := uuid.New()
	p := seedProduct(products, owner, "MOU-003", 10, 5, 30)
	po := &model.PurchaseOrder{
		OwnerID:    owner,
		SupplierID: uuid.New(),
		Status:     model.PurchaseOrderPending,
		Items: []model.PurchaseOrderItem{{
			ProductID:         p.ID,
			QuantityRequested: 2,
			UnitPrice:         decimal.NewFromInt(30),
		}},
	}
	require.NoError(t, orders.Create(context.Background(), po))

	_, err := svc.CreateFromPurchaseOrder(context.Background(), owner, po.ID)
	assert.ErrorContains(t, err, "not approved")

	po.Status = model.PurchaseOrderApproved
	resp, err := svc.CreateFromPurchaseOrder(context.Background(), owner, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "60", resp.TotalValue.String())
	assert.Equal(t, 8, products.stock(p.ID))
}

func TestTopProducts_UsesSalesAggregates(t *testing.T) {
	svc, sales, _, _ := buildSaleSvc()
	owner := uuid.New()

	sales.top = []dto.TopProductResponse{
		{ProductID: uuid.NewString(), Name: "Best seller", TotalSales: decimal.NewFromInt(900), TotalQuantitySold: 30},
	}

	top, err := svc.TopProducts(context.Background(), owner, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Best seller", top[0].Name)
	assert.Equal(t, 30, top[0].TotalQuantitySold)
}

func TestTopProducts_FallsBackToInventory(t *testing.T) {
	svc, _, products, _ := buildSaleSvc()
	owner := uuid.New()
	p := seedProduct(products, owner, "MOU-004", 6, 5, 30)

	// No recorded sales: rank current inventory by stock value instead
	top, err := svc.TopProducts(context.Background(), owner, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, p.ID.String(), top[0].ProductID)
	assert.Equal(t, "180", top[0].TotalSales.String())
	assert.Equal(t, 6, top[0].CurrentStock)
}
