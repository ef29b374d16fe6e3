package service

import (
	"context"
	"errors"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/dto"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/model"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockChange is the outcome of one ledger mutation.
type StockChange struct {
	ProductID uuid.UUID
	Previous  int
	New       int
	Change    int
}

// LedgerService is the sole writer of the inventory table and the
// inventory_history ledger. Every quantity-affecting event — initial stock,
// manual correction, sale — goes through here, so the update of the current
// quantity and the appended history entry always commit as one atomic unit.
//
// Concurrency: each mutation locks the product row (SELECT ... FOR UPDATE via
// ProductRepository.LockTx) for the whole read-modify-write, so writers
// against the same product serialize while different products proceed
// independently. Locking the product row rather than the inventory row also
// serializes the lazy creation of the inventory row itself.
type LedgerService interface {
	// SetQuantity is the manual-adjustment entry point: it opens its own
	// transaction around SetQuantityTx.
	SetQuantity(ctx context.Context, productID uuid.UUID, newQuantity int) (*dto.StockChangeResponse, error)

	// SetQuantityTx sets an absolute quantity inside the caller's transaction.
	// Product creation uses it to record initial stock atomically with the
	// product insert (previous quantity is 0 by construction).
	SetQuantityTx(tx *gorm.DB, productID uuid.UUID, newQuantity int) (*StockChange, error)

	// DecrementTx removes quantitySold units inside the caller's transaction
	// (sale recording). Oversold quantities are clamped to zero, never
	// rejected: the ledger records the delta actually applied.
	DecrementTx(tx *gorm.DB, productID uuid.UUID, quantitySold int) (*StockChange, error)

	History(ctx context.Context, productID uuid.UUID) ([]dto.InventoryHistoryResponse, error)
	Levels(ctx context.Context) ([]dto.StockLevelResponse, error)
	LowStock(ctx context.Context, threshold int) ([]dto.StockLevelResponse, error)
}

type ledgerService struct {
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	history   repository.HistoryRepository
	txm       repository.TxManager
}

func NewLedgerService(
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	history repository.HistoryRepository,
	txm repository.TxManager,
) LedgerService {
	return &ledgerService{products: products, inventory: inventory, history: history, txm: txm}
}

// clampToZero applies the oversell policy: a decrement exceeding available
// stock reduces the quantity to 0 instead of failing. Sale capture takes
// priority over strict stock enforcement.
func clampToZero(quantity int) int {
	if quantity < 0 {
		return 0
	}
	return quantity
}

// applyTx is the shared critical section: lock the product row, read the
// current quantity (missing inventory row reads as 0), compute the new
// quantity, persist the inventory row and append one chained history entry.
// The row lock is released when the surrounding transaction ends.
func (s *ledgerService) applyTx(tx *gorm.DB, productID uuid.UUID, next func(current int) int) (*StockChange, error) {
	if _, err := s.products.LockTx(tx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("product %s not found", productID)
		}
		return nil, err
	}

	inv, err := s.inventory.FindTx(tx, productID)
	if err != nil {
		return nil, err
	}

	current := 0
	if inv != nil {
		current = inv.Quantity
	} else {
		// Lazy creation: first stock-setting event for this product.
		inv = &model.Inventory{ProductID: productID}
	}

	newQty := next(current)
	inv.Quantity = newQty
	if err := s.inventory.SaveTx(tx, inv); err != nil {
		return nil, err
	}

	entry := &model.InventoryHistory{
		ProductID:   productID,
		ChangeQty:   newQty - current,
		PreviousQty: current,
		NewQty:      newQty,
	}
	if err := s.history.CreateTx(tx, entry); err != nil {
		return nil, err
	}

	return &StockChange{
		ProductID: productID,
		Previous:  current,
		New:       newQty,
		Change:    newQty - current,
	}, nil
}

func (s *ledgerService) SetQuantityTx(tx *gorm.DB, productID uuid.UUID, newQuantity int) (*StockChange, error) {
	if newQuantity < 0 {
		return nil, invalidf("new_quantity must be >= 0, got %d", newQuantity)
	}
	return s.applyTx(tx, productID, func(int) int { return newQuantity })
}

func (s *ledgerService) DecrementTx(tx *gorm.DB, productID uuid.UUID, quantitySold int) (*StockChange, error) {
	if quantitySold <= 0 {
		return nil, invalidf("quantity must be > 0, got %d", quantitySold)
	}
	return s.applyTx(tx, productID, func(current int) int {
		return clampToZero(current - quantitySold)
	})
}

func (s *ledgerService) SetQuantity(ctx context.Context, productID uuid.UUID, newQuantity int) (*dto.StockChangeResponse, error) {
	var change *StockChange
	err := s.txm.WithinTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		change, txErr = s.SetQuantityTx(tx, productID, newQuantity)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockChangeResponse{
		ProductID:        change.ProductID.String(),
		PreviousQuantity: change.Previous,
		NewQuantity:      change.New,
	}, nil
}

func (s *ledgerService) History(ctx context.Context, productID uuid.UUID) ([]dto.InventoryHistoryResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("product %s not found", productID)
		}
		return nil, err
	}

	entries, err := s.history.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.InventoryHistoryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, dto.InventoryHistoryResponse{
			ID:          e.ID.String(),
			ProductID:   e.ProductID.String(),
			ChangeQty:   e.ChangeQty,
			PreviousQty: e.PreviousQty,
			NewQty:      e.NewQty,
			CreatedAt:   e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return result, nil
}

func (s *ledgerService) Levels(ctx context.Context) ([]dto.StockLevelResponse, error) {
	levels, err := s.inventory.ListLevels(ctx)
	if err != nil {
		return nil, err
	}
	return mapLevels(levels), nil
}

func (s *ledgerService) LowStock(ctx context.Context, threshold int) ([]dto.StockLevelResponse, error) {
	if threshold < 0 {
		return nil, invalidf("low_stock_threshold must be >= 0, got %d", threshold)
	}
	levels, err := s.inventory.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return mapLevels(levels), nil
}

func mapLevels(levels []repository.StockLevel) []dto.StockLevelResponse {
	result := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		result = append(result, dto.StockLevelResponse{
			ProductID: l.ProductID.String(),
			Name:      l.Name,
			Quantity:  l.Quantity,
		})
	}
	return result
}
