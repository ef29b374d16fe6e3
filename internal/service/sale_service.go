package service

import (
	"context"
	"errors"
	"time"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/dto"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/model"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService records sales and serves the sale listings.
type SaleService interface {
	Record(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo     repository.SaleRepository
	products repository.ProductRepository
	ledger   LedgerService
	txm      repository.TxManager
}

func NewSaleService(
	repo repository.SaleRepository,
	products repository.ProductRepository,
	ledger LedgerService,
	txm repository.TxManager,
) SaleService {
	return &saleService{repo: repo, products: products, ledger: ledger, txm: txm}
}

// parseSaleDate accepts RFC 3339 or a bare date.
func parseSaleDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func mapSale(s *model.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         s.ID.String(),
		ProductID:  s.ProductID.String(),
		Quantity:   s.Quantity,
		TotalPrice: s.TotalPrice,
		SaleDate:   s.SaleDate.UTC().Format(time.RFC3339),
		CreatedAt:  s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if s.Product != nil {
		resp.ProductName = s.Product.Name
	}
	return resp
}

// Record inserts the sale and decrements stock in one transaction. The total
// price is computed from the product price at this moment and frozen; the
// stock decrement is clamped at zero, so a sale is never rejected for lack of
// stock (sale-event capture wins over strict enforcement).
func (s *saleService) Record(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, invalidf("product_id is not a valid UUID")
	}
	if req.Quantity <= 0 {
		return nil, invalidf("quantity must be > 0, got %d", req.Quantity)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("product %s not found", productID)
		}
		return nil, err
	}

	saleDate := time.Now().UTC()
	if req.SaleDate != nil && *req.SaleDate != "" {
		saleDate, err = parseSaleDate(*req.SaleDate)
		if err != nil {
			return nil, invalidf("sale_date %q is not a valid date", *req.SaleDate)
		}
	}

	sale := &model.Sale{
		ProductID:  productID,
		Quantity:   req.Quantity,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		SaleDate:   saleDate,
	}

	err = s.txm.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, sale); err != nil {
			return err
		}
		_, err := s.ledger.DecrementTx(tx, productID, req.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	sale.Product = product
	return mapSale(sale), nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("sale %s not found", id)
		}
		return nil, err
	}
	return mapSale(sale), nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, *mapSale(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
