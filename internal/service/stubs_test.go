package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/dto"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/model"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory stubs implementing the repository interfaces. The *Tx variants
// ignore the transaction handle; stubTxManager serializes WithinTx with a
// mutex, which emulates the per-product row lock coarsely (one writer at a
// time) — exactly the guarantee the ledger invariants need.

// ── TxManager ────────────────────────────────────────────────────────────────

type stubTxManager struct{ mu sync.Mutex }

func (m *stubTxManager) WithinTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(nil)
}

// ── CategoryRepository ───────────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	result := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

// ── ProductRepository ────────────────────────────────────────────────────────

type stubProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	return r.CreateTx(nil, p)
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Product
	for _, p := range r.products {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.CategoryID != "" && (p.CategoryID == nil || p.CategoryID.String() != filter.CategoryID) {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, int64(len(result)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) LockTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

// ── InventoryRepository ──────────────────────────────────────────────────────

type stubInventoryRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.Inventory
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{rows: make(map[uuid.UUID]*model.Inventory)}
}

func (r *stubInventoryRepo) FindTx(_ *gorm.DB, productID uuid.UUID) (*model.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[productID]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *stubInventoryRepo) SaveTx(_ *gorm.DB, inv *model.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.rows[inv.ProductID] = &cp
	return nil
}

func (r *stubInventoryRepo) DeleteByProductTx(_ *gorm.DB, productID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, productID)
	return nil
}

func (r *stubInventoryRepo) Find(_ context.Context, productID uuid.UUID) (*model.Inventory, error) {
	return r.FindTx(nil, productID)
}

func (r *stubInventoryRepo) MapQuantities(_ context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	quantities := make(map[uuid.UUID]int, len(productIDs))
	for _, id := range productIDs {
		if inv, ok := r.rows[id]; ok {
			quantities[id] = inv.Quantity
		}
	}
	return quantities, nil
}

func (r *stubInventoryRepo) ListLevels(_ context.Context) ([]repository.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	levels := make([]repository.StockLevel, 0, len(r.rows))
	for id, inv := range r.rows {
		levels = append(levels, repository.StockLevel{ProductID: id, Quantity: inv.Quantity})
	}
	return levels, nil
}

func (r *stubInventoryRepo) ListLowStock(_ context.Context, threshold int) ([]repository.StockLevel, error) {
	all, _ := r.ListLevels(context.Background())
	var result []repository.StockLevel
	for _, l := range all {
		if l.Quantity <= threshold {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Quantity < result[j].Quantity })
	return result, nil
}

// ── HistoryRepository ────────────────────────────────────────────────────────

type stubHistoryRepo struct {
	mu      sync.Mutex
	entries []model.InventoryHistory
}

func newStubHistoryRepo() *stubHistoryRepo { return &stubHistoryRepo{} }

func (r *stubHistoryRepo) CreateTx(_ *gorm.DB, h *model.InventoryHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, *h)
	return nil
}

// ListByProduct returns entries newest first (insertion order reversed).
func (r *stubHistoryRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.InventoryHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.InventoryHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ProductID == productID {
			result = append(result, r.entries[i])
		}
	}
	return result, nil
}

func (r *stubHistoryRepo) DeleteByProductTx(_ *gorm.DB, productID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

// chronological returns the ledger oldest first, for chain assertions.
func (r *stubHistoryRepo) chronological(productID uuid.UUID) []model.InventoryHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.InventoryHistory
	for _, e := range r.entries {
		if e.ProductID == productID {
			result = append(result, e)
		}
	}
	return result
}

// ── SaleRepository ───────────────────────────────────────────────────────────

type stubSaleRepo struct {
	mu    sync.Mutex
	sales []model.Sale
}

func newStubSaleRepo() *stubSaleRepo { return &stubSaleRepo{} }

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	r.sales = append(r.sales, *s)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sales {
		if r.sales[i].ID == id {
			cp := r.sales[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Sale
	for _, s := range r.sales {
		if filter.ProductID != "" && s.ProductID.String() != filter.ProductID {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SaleDate.After(result[j].SaleDate) })
	return result, int64(len(result)), nil
}

func (r *stubSaleRepo) CountByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.sales {
		if s.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func truncPeriod(bucket string, t time.Time) time.Time {
	t = t.UTC()
	switch bucket {
	case "week":
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		for d.Weekday() != time.Monday {
			d = d.AddDate(0, 0, -1)
		}
		return d
	case "month":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default: // day
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func (r *stubSaleRepo) RevenueByPeriod(_ context.Context, bucket string, from, to time.Time) ([]repository.RevenueBucket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	grouped := make(map[time.Time]*repository.RevenueBucket)
	for _, s := range r.sales {
		if s.SaleDate.Before(from) || s.SaleDate.After(to) {
			continue
		}
		period := truncPeriod(bucket, s.SaleDate)
		b, ok := grouped[period]
		if !ok {
			b = &repository.RevenueBucket{Period: period}
			grouped[period] = b
		}
		b.Orders++
		b.Units += int64(s.Quantity)
		b.Revenue = b.Revenue.Add(s.TotalPrice)
	}
	result := make([]repository.RevenueBucket, 0, len(grouped))
	for _, b := range grouped {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Period.Before(result[j].Period) })
	return result, nil
}

func (r *stubSaleRepo) SumRange(_ context.Context, from, to time.Time) (*repository.RangeTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := &repository.RangeTotals{Revenue: decimal.Zero}
	for _, s := range r.sales {
		if s.SaleDate.Before(from) || s.SaleDate.After(to) {
			continue
		}
		totals.Orders++
		totals.Units += int64(s.Quantity)
		totals.Revenue = totals.Revenue.Add(s.TotalPrice)
	}
	return totals, nil
}
