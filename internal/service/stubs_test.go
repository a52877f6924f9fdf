package service_test

import (
	"context"
	"time"

	"pcxpress/internal/dto"
	"pcxpress/internal/model"
	"pcxpress/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository. Finds return copies and
// saves store fresh pointers, mirroring how GORM materializes rows.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	for _, existing := range r.products {
		if existing.OwnerID == p.OwnerID && existing.Code == p.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context, ownerID uuid.UUID, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := r.ownedBy(ownerID)
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListAll(_ context.Context, ownerID uuid.UUID) ([]model.Product, error) {
	return r.ownedBy(ownerID), nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context, ownerID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.ownedBy(ownerID) {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) ListBelowRecommended(_ context.Context, ownerID uuid.UUID, supplierID *uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.ownedBy(ownerID) {
		if p.Quantity >= 2*p.ReorderThreshold {
			continue
		}
		if supplierID != nil && (p.SupplierID == nil || *p.SupplierID != *supplierID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) ListBySupplier(_ context.Context, ownerID, supplierID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.ownedBy(ownerID) {
		if p.SupplierID != nil && *p.SupplierID == supplierID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) FindByIDForUpdateTx(_ *gorm.DB, ownerID, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), ownerID, id)
}

func (r *stubProductRepo) SaveTx(_ *gorm.DB, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// stock returns the current stored quantity for assertions.
func (r *stubProductRepo) stock(id uuid.UUID) int { return r.products[id].Quantity }

func (r *stubProductRepo) ownedBy(ownerID uuid.UUID) []model.Product {
	var out []model.Product
	for _, p := range r.products {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubMovementRepo captures created movements for assertion.
type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now().UTC()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) ListByProduct(_ context.Context, ownerID, productID uuid.UUID, _ int) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.OwnerID == ownerID && m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) ListRecent(_ context.Context, ownerID uuid.UUID, _ int) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) CountByKindSince(_ context.Context, ownerID uuid.UUID, since time.Time) (map[model.MovementKind]int64, error) {
	out := make(map[model.MovementKind]int64)
	for _, m := range r.movements {
		if m.OwnerID != ownerID || m.CreatedAt.Before(since) {
			continue
		}
		delta := int64(m.Delta)
		if delta < 0 {
			delta = -delta
		}
		out[m.Kind] += delta
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// stubSupplierRepo is an in-memory SupplierRepository. productCounts feeds
// CountProducts so delete-protection can be exercised without products.
type stubSupplierRepo struct {
	suppliers     map[uuid.UUID]*model.Supplier
	productCounts map[uuid.UUID]int64
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{
		suppliers:     make(map[uuid.UUID]*model.Supplier),
		productCounts: make(map[uuid.UUID]int64),
	}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now().UTC()
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok || s.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context, ownerID uuid.UUID) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.suppliers {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	s, ok := r.suppliers[id]
	if !ok || s.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(r.suppliers, id)
	return nil
}

func (r *stubSupplierRepo) CountProducts(_ context.Context, _, id uuid.UUID) (int64, error) {
	return r.productCounts[id], nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// stubPurchaseOrderRepo is an in-memory PurchaseOrderRepository.
type stubPurchaseOrderRepo struct {
	orders map[uuid.UUID]*model.PurchaseOrder
}

func newStubPurchaseOrderRepo() *stubPurchaseOrderRepo {
	return &stubPurchaseOrderRepo{orders: make(map[uuid.UUID]*model.PurchaseOrder)}
}

func (r *stubPurchaseOrderRepo) Create(_ context.Context, po *model.PurchaseOrder) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	po.CreatedAt = time.Now().UTC()
	for i := range po.Items {
		if po.Items[i].ID == uuid.Nil {
			po.Items[i].ID = uuid.New()
		}
		po.Items[i].PurchaseOrderID = po.ID
	}
	r.orders[po.ID] = po
	return nil
}

func (r *stubPurchaseOrderRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok || po.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return po, nil
}

func (r *stubPurchaseOrderRepo) List(_ context.Context, ownerID uuid.UUID, _ dto.PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error) {
	var out []model.PurchaseOrder
	for _, po := range r.orders {
		if po.OwnerID == ownerID {
			out = append(out, *po)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseOrderRepo) Save(_ context.Context, po *model.PurchaseOrder) error {
	r.orders[po.ID] = po
	return nil
}

func (r *stubPurchaseOrderRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	po, ok := r.orders[id]
	if !ok || po.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *stubPurchaseOrderRepo) Statistics(_ context.Context, ownerID uuid.UUID) (*dto.PurchaseOrderStatisticsResponse, error) {
	stats := &dto.PurchaseOrderStatisticsResponse{ApprovedValue: decimal.Zero}
	for _, po := range r.orders {
		if po.OwnerID != ownerID {
			continue
		}
		stats.TotalOrders++
		switch po.Status {
		case model.PurchaseOrderPending:
			stats.PendingOrders++
		case model.PurchaseOrderApproved:
			stats.ApprovedOrders++
			stats.ApprovedValue = stats.ApprovedValue.Add(po.TotalValue)
		}
	}
	return stats, nil
}

func (r *stubPurchaseOrderRepo) FindByIDTx(_ *gorm.DB, ownerID, id uuid.UUID) (*model.PurchaseOrder, error) {
	return r.FindByID(context.Background(), ownerID, id)
}

func (r *stubPurchaseOrderRepo) SaveItemTx(_ *gorm.DB, item *model.PurchaseOrderItem) error {
	po, ok := r.orders[item.PurchaseOrderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range po.Items {
		if po.Items[i].ID == item.ID {
			po.Items[i] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPurchaseOrderRepo) DB() *gorm.DB { return nil }

var _ repository.PurchaseOrderRepository = (*stubPurchaseOrderRepo)(nil)

// stubSaleRepo is an in-memory SaleRepository. daily and top are canned
// aggregation results for the estimator and analytics paths.
type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
	daily []repository.DailySale
	top   []dto.TopProductResponse
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, sale *model.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	sale.CreatedAt = time.Now().UTC()
	for i := range sale.Items {
		if sale.Items[i].ID == uuid.Nil {
			sale.Items[i].ID = uuid.New()
		}
		sale.Items[i].SaleID = sale.ID
	}
	r.sales[sale.ID] = sale
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok || s.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, ownerID uuid.UUID, _, _ int) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) DailySalesForProduct(_ context.Context, _, _ uuid.UUID, _ time.Time) ([]repository.DailySale, error) {
	return r.daily, nil
}

func (r *stubSaleRepo) TopProducts(_ context.Context, _ uuid.UUID, _ int) ([]dto.TopProductResponse, error) {
	return r.top, nil
}

func (r *stubSaleRepo) RevenueSince(_ context.Context, ownerID uuid.UUID, since time.Time) (decimal.Decimal, int64, error) {
	total := decimal.Zero
	var n int64
	for _, s := range r.sales {
		if s.OwnerID == ownerID && !s.CreatedAt.Before(since) {
			total = total.Add(s.TotalValue)
			n++
		}
	}
	return total, n, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedProduct(repo *stubProductRepo, ownerID uuid.UUID, code string, quantity, threshold int, price float64) *model.Product {
	p := &model.Product{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Code:             code,
		Name:             "Product " + code,
		Quantity:         quantity,
		UnitPrice:        decimal.NewFromFloat(price),
		ReorderThreshold: threshold,
		LeadTimeDays:     7,
		SafetyStock:      2,
	}
	repo.products[p.ID] = p
	return p
}

func seedSupplier(repo *stubSupplierRepo, ownerID uuid.UUID, name string) *model.Supplier {
	s := &model.Supplier{ID: uuid.New(), OwnerID: ownerID, Name: name, CreatedAt: time.Now().UTC()}
	repo.suppliers[s.ID] = s
	return s
}
