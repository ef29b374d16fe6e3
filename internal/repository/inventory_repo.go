package repository

import (
	"context"
	"errors"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockLevel is a read-side projection joining products with their current
// quantity. Products without an inventory row report quantity 0.
type StockLevel struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
}

// InventoryRepository owns the inventory table (one row per product, created
// lazily). Mutations go through *Tx methods; the caller holds the per-product
// lock for the duration of the transaction.
type InventoryRepository interface {
	// FindTx returns (nil, nil) when no inventory row exists yet — readers
	// treat that as quantity 0.
	FindTx(tx *gorm.DB, productID uuid.UUID) (*model.Inventory, error)
	SaveTx(tx *gorm.DB, inv *model.Inventory) error
	DeleteByProductTx(tx *gorm.DB, productID uuid.UUID) error

	// Find is the unlocked read used by response builders. Returns (nil, nil)
	// when no row exists yet.
	Find(ctx context.Context, productID uuid.UUID) (*model.Inventory, error)
	// MapQuantities batch-reads quantities for a set of products. Products
	// without an inventory row are simply absent from the map.
	MapQuantities(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error)

	ListLevels(ctx context.Context) ([]StockLevel, error)
	ListLowStock(ctx context.Context, threshold int) ([]StockLevel, error)
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) FindTx(tx *gorm.DB, productID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := tx.First(&inv, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) SaveTx(tx *gorm.DB, inv *model.Inventory) error {
	return tx.Save(inv).Error
}

func (r *inventoryRepo) DeleteByProductTx(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Delete(&model.Inventory{}, "product_id = ?", productID).Error
}

func (r *inventoryRepo) Find(ctx context.Context, productID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).First(&inv, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) MapQuantities(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	quantities := make(map[uuid.UUID]int, len(productIDs))
	if len(productIDs) == 0 {
		return quantities, nil
	}
	var rows []model.Inventory
	if err := r.db.WithContext(ctx).Where("product_id IN ?", productIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, inv := range rows {
		quantities[inv.ProductID] = inv.Quantity
	}
	return quantities, nil
}

func (r *inventoryRepo) ListLevels(ctx context.Context) ([]StockLevel, error) {
	var levels []StockLevel
	err := r.db.WithContext(ctx).Table("products p").
		Select("p.id AS product_id, p.name, COALESCE(i.quantity, 0) AS quantity").
		Joins("LEFT JOIN inventory i ON i.product_id = p.id").
		Order("p.name ASC").
		Scan(&levels).Error
	return levels, err
}

func (r *inventoryRepo) ListLowStock(ctx context.Context, threshold int) ([]StockLevel, error) {
	var levels []StockLevel
	err := r.db.WithContext(ctx).Table("products p").
		Select("p.id AS product_id, p.name, COALESCE(i.quantity, 0) AS quantity").
		Joins("LEFT JOIN inventory i ON i.product_id = p.id").
		Where("COALESCE(i.quantity, 0) <= ?", threshold).
		Order("quantity ASC, p.name ASC").
		Scan(&levels).Error
	return levels, err
}
