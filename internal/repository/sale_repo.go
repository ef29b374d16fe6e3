package repository

import (
	"context"
	"time"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/dto"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RevenueBucket is one row of the revenue-by-period aggregation.
type RevenueBucket struct {
	Period  time.Time       `json:"period"`
	Orders  int64           `json:"orders"`
	Units   int64           `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RangeTotals sums sales over one date range, used by the range comparison view.
type RangeTotals struct {
	Orders  int64           `json:"orders"`
	Units   int64           `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SaleRepository persists sales and runs the read-side aggregations.
type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// RevenueByPeriod buckets sales with date_trunc. bucket must be a
	// whitelisted date_trunc field (day/week/month) — the service validates it.
	RevenueByPeriod(ctx context.Context, bucket string, from, to time.Time) ([]RevenueBucket, error)
	SumRange(ctx context.Context, from, to time.Time) (*RangeTotals, error)
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Product").First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.From != "" {
		q = q.Where("sale_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("sale_date <= ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Product").Order("sale_date DESC").Limit(filter.Limit).Offset(offset).Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("product_id = ?", productID).Count(&n).Error
	return n, err
}

func (r *saleRepo) RevenueByPeriod(ctx context.Context, bucket string, from, to time.Time) ([]RevenueBucket, error) {
	var buckets []RevenueBucket
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("date_trunc(?, sale_date) AS period, COUNT(*) AS orders, COALESCE(SUM(quantity), 0) AS units, COALESCE(SUM(total_price), 0) AS revenue", bucket).
		Where("sale_date >= ? AND sale_date <= ?", from, to).
		Group("period").
		Order("period ASC").
		Scan(&buckets).Error
	return buckets, err
}

func (r *saleRepo) SumRange(ctx context.Context, from, to time.Time) (*RangeTotals, error) {
	var totals RangeTotals
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(quantity), 0) AS units, COALESCE(SUM(total_price), 0) AS revenue").
		Where("sale_date >= ? AND sale_date <= ?", from, to).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
