package service_test

import (
	"context"
	"testing"

	"pcxpress/internal/apierror"
	"pcxpress/internal/dto"
	"pcxpress/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierCRUD(t *testing.T) {
	repo := newStubSupplierRepo()
	svc := service.NewSupplierService(repo)
	owner := uuid.New()
	ctx := context.Background()

	email := "ventas@norte.example"
	created, err := svc.Create(ctx, owner, dto.CreateSupplierRequest{Name: "Distribuidora Norte", Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Distribuidora Norte", created.Name)

	got, err := svc.Get(ctx, owner, uuid.MustParse(created.ID))
	require.NoError(t, err)
	require.NotNil(t, got.Email)
	assert.Equal(t, email, *got.Email)

	newName := "Distribuidora Norte SRL"
	updated, err := svc.Update(ctx, owner, uuid.MustParse(created.ID), dto.UpdateSupplierRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	require.NoError(t, svc.Delete(ctx, owner, uuid.MustParse(created.ID)))
	_, err = svc.Get(ctx, owner, uuid.MustParse(created.ID))
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestSupplierDelete_WithProductsAssigned(t *testing.T) {
	repo := newStubSupplierRepo()
	svc := service.NewSupplierService(repo)
	owner := uuid.New()

	sup := seedSupplier(repo, owner, "Componentes SA")
	repo.productCounts[sup.ID] = 2

	err := svc.Delete(context.Background(), owner, sup.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalidOperation, apierror.KindOf(err))
	assert.ErrorContains(t, err, "cannot be deleted")

	// Still there
	_, err = svc.Get(context.Background(), owner, sup.ID)
	assert.NoError(t, err)
}

func TestSupplier_OwnerScoping(t *testing.T) {
	repo := newStubSupplierRepo()
	svc := service.NewSupplierService(repo)
	owner := uuid.New()
	sup := seedSupplier(repo, owner, "Componentes SA")

	_, err := svc.Get(context.Background(), uuid.New(), sup.ID)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))

	err = svc.Delete(context.Background(), uuid.New(), sup.ID)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
