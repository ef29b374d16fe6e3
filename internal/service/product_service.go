package service

import (
	"context"
	"errors"
	"math"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/dto"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/model"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	inventory  repository.InventoryRepository
	sales      repository.SaleRepository
	history    repository.HistoryRepository
	ledger     LedgerService
	txm        repository.TxManager
}

func NewProductService(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	inventory repository.InventoryRepository,
	sales repository.SaleRepository,
	history repository.HistoryRepository,
	ledger LedgerService,
	txm repository.TxManager,
) ProductService {
	return &productService{
		repo:       repo,
		categories: categories,
		inventory:  inventory,
		sales:      sales,
		history:    history,
		ledger:     ledger,
		txm:        txm,
	}
}

func mapProduct(p *model.Product, quantity int) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    quantity,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	if p.Category != nil {
		resp.CategoryName = &p.Category.Name
	}
	return resp
}

// resolveCategory parses and verifies an optional category reference.
func (s *productService) resolveCategory(ctx context.Context, raw *string) (*model.Category, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, invalidf("category_id is not a valid UUID")
	}
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("category %s not found", id)
		}
		return nil, err
	}
	return c, nil
}

// Create inserts the product and its initial stock as one atomic unit: if the
// ledger write fails, the product insert rolls back too.
func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Price.IsNegative() {
		return nil, invalidf("price must be >= 0")
	}

	category, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if category != nil {
		p.CategoryID = &category.ID
	}

	err = s.txm.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, p); err != nil {
			return err
		}
		// Initial stock: the opening ledger entry has previous_qty = 0 by
		// construction. A product created with 0 units gets no inventory row
		// until its first stock-setting event.
		if req.InitialQuantity > 0 {
			if _, err := s.ledger.SetQuantityTx(tx, p.ID, req.InitialQuantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.Category = category
	return mapProduct(p, req.InitialQuantity), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("product %s not found", id)
		}
		return nil, err
	}
	return mapProduct(p, s.quantityOf(ctx, id)), nil
}

// quantityOf reads the current quantity, treating a missing inventory row as 0.
func (s *productService) quantityOf(ctx context.Context, id uuid.UUID) int {
	inv, err := s.inventory.Find(ctx, id)
	if err != nil || inv == nil {
		return 0
	}
	return inv.Quantity
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	quantities, err := s.inventory.MapQuantities(ctx, ids)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *mapProduct(&products[i], quantities[products[i].ID]))
	}

	return &dto.ProductListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("product %s not found", id)
		}
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, invalidf("price must be >= 0")
		}
		// Recorded sales keep the total_price they were sold at; a price
		// change only affects future sales.
		p.Price = *req.Price
	}
	if req.CategoryID != nil {
		category, err := s.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID = &category.ID
		p.Category = category
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return mapProduct(p, s.quantityOf(ctx, id)), nil
}

// Delete removes a product together with its inventory row and ledger, but
// only when no sale references it. A guarded refusal leaves everything
// untouched.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("product %s not found", id)
		}
		return err
	}

	n, err := s.sales.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflictf("product has %d recorded sale(s) and cannot be deleted", n)
	}

	return s.txm.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.history.DeleteByProductTx(tx, id); err != nil {
			return err
		}
		if err := s.inventory.DeleteByProductTx(tx, id); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
}
