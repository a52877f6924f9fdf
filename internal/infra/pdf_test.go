package infra_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pcxpress/internal/infra"
	"pcxpress/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePurchaseOrder() *model.PurchaseOrder {
	email := "ventas@norte.example"
	notes := "Entregar por porton trasero"
	return &model.PurchaseOrder{
		ID:         uuid.New(),
		OwnerID:    uuid.New(),
		SupplierID: uuid.New(),
		Status:     model.PurchaseOrderApproved,
		TotalValue: decimal.NewFromFloat(360.50),
		Notes:      &notes,
		CreatedAt:  time.Now(),
		Supplier:   &model.Supplier{Name: "Distribuidora Norte", Email: &email},
		Items: []model.PurchaseOrderItem{
			{
				ProductID:         uuid.New(),
				QuantityRequested: 3,
				UnitPrice:         decimal.NewFromFloat(120.00),
				Product:           &model.Product{Code: "RAM-001", Name: "Memoria DDR5 16GB"},
			},
			{
				ProductID:         uuid.New(),
				QuantityRequested: 1,
				UnitPrice:         decimal.NewFromFloat(0.50),
				Product:           &model.Product{Code: "CBL-001", Name: "Cable SATA"},
			},
		},
	}
}

func TestGeneratePurchaseOrderPDF(t *testing.T) {
	dir := t.TempDir()
	po := samplePurchaseOrder()

	path, err := infra.GeneratePurchaseOrderPDF(po, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, fmt.Sprintf("po_%s.pdf", po.ID)), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGeneratePurchaseOrderPDF_CreatesStorageDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs", "orders")
	po := samplePurchaseOrder()

	path, err := infra.GeneratePurchaseOrderPDF(po, dir)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestGeneratePurchaseOrderPDF_MinimalOrder(t *testing.T) {
	// No supplier preload, no items, no notes: still renders
	po := &model.PurchaseOrder{
		ID:         uuid.New(),
		Status:     model.PurchaseOrderDraft,
		TotalValue: decimal.Zero,
		CreatedAt:  time.Now(),
	}

	path, err := infra.GeneratePurchaseOrderPDF(po, t.TempDir())
	require.NoError(t, err)
	assert.FileExists(t, path)
}
