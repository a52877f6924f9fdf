package service_test

import (
	"context"
	"testing"

	"pcxpress/internal/apierror"
	"pcxpress/internal/dto"
	"pcxpress/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildProductSvc() (service.ProductService, *stubProductRepo, *stubSupplierRepo) {
	products := newStubProductRepo()
	suppliers := newStubSupplierRepo()
	return service.NewProductService(products, suppliers), products, suppliers
}

func TestCreateProduct_Defaults(t *testing.T) {
	svc, _, _ := buildProductSvc()
	owner := uuid.New()

	resp, err := svc.Create(context.Background(), owner, dto.CreateProductRequest{
		Code:      "NB-001",
		Name:      "Notebook 14in",
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(950),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.ReorderThreshold)
	assert.Equal(t, 7, resp.LeadTimeDays)
	assert.Equal(t, 3, resp.Quantity)
	assert.True(t, resp.LowStock)
	assert.Nil(t, resp.SupplierID)
}

func TestCreateProduct_DuplicateCode(t *testing.T) {
	svc, _, _ := buildProductSvc()
	owner := uuid.New()

	req := dto.CreateProductRequest{Code: "NB-002", Name: "Notebook 15in", UnitPrice: decimal.NewFromInt(1100)}
	_, err := svc.Create(context.Background(), owner, req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), owner, req)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.ErrorContains(t, err, "product code already in use")

	// Same code under a different tenant is fine
	_, err = svc.Create(context.Background(), uuid.New(), req)
	assert.NoError(t, err)
}

func TestCreateProduct_UnknownSupplier(t *testing.T) {
	svc, _, _ := buildProductSvc()
	owner := uuid.New()

	sid := uuid.NewString()
	_, err := svc.Create(context.Background(), owner, dto.CreateProductRequest{
		Code:       "NB-003",
		Name:       "Notebook 13in",
		UnitPrice:  decimal.NewFromInt(800),
		SupplierID: &sid,
	})
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestUpdateProduct_DoesNotTouchQuantity(t *testing.T) {
	svc, products, _ := buildProductSvc()
	owner := uuid.New()
	p := seedProduct(products, owner, "NB-004", 12, 5, 800)

	newName := "Notebook 14in refresh"
	price := decimal.NewFromInt(850)
	resp, err := svc.Update(context.Background(), owner, p.ID, dto.UpdateProductRequest{
		Name:      &newName,
		UnitPrice: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, newName, resp.Name)
	assert.Equal(t, "850", resp.UnitPrice.String())
	assert.Equal(t, 12, resp.Quantity)
	assert.Equal(t, 12, products.stock(p.ID))
}

func TestListLowStock(t *testing.T) {
	svc, products, _ := buildProductSvc()
	owner := uuid.New()
	low := seedProduct(products, owner, "NB-005", 2, 5, 800)
	seedProduct(products, owner, "NB-006", 30, 5, 800)

	out, err := svc.ListLowStock(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, low.ID.String(), out[0].ID)
	assert.True(t, out[0].LowStock)
}

func TestListBySupplier(t *testing.T) {
	svc, products, suppliers := buildProductSvc()
	owner := uuid.New()
	sup := seedSupplier(suppliers, owner, "Insumos del Sur")

	assigned := seedProduct(products, owner, "NB-010", 5, 5, 800)
	assigned.SupplierID = &sup.ID
	seedProduct(products, owner, "NB-011", 5, 5, 800) // no supplier

	out, err := svc.ListBySupplier(context.Background(), owner, sup.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, assigned.ID.String(), out[0].ID)

	_, err = svc.ListBySupplier(context.Background(), owner, uuid.New())
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestDeleteProduct_OwnerScoping(t *testing.T) {
	svc, products, _ := buildProductSvc()
	owner := uuid.New()
	p := seedProduct(products, owner, "NB-007", 5, 5, 800)

	err := svc.Delete(context.Background(), uuid.New(), p.ID)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))

	require.NoError(t, svc.Delete(context.Background(), owner, p.ID))
	_, err = svc.Get(context.Background(), owner, p.ID)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
