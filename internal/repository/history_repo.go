package repository

import (
	"context"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryRepository appends to and reads the inventory_history ledger.
// Entries are never updated; deletion happens only as part of a cascading
// product delete inside that product's transaction.
type HistoryRepository interface {
	CreateTx(tx *gorm.DB, h *model.InventoryHistory) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.InventoryHistory, error)
	DeleteByProductTx(tx *gorm.DB, productID uuid.UUID) error
}

type historyRepo struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) HistoryRepository { return &historyRepo{db: db} }

func (r *historyRepo) CreateTx(tx *gorm.DB, h *model.InventoryHistory) error {
	return tx.Create(h).Error
}

// ListByProduct returns the full ledger for a product, newest first.
func (r *historyRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.InventoryHistory, error) {
	var entries []model.InventoryHistory
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

func (r *historyRepo) DeleteByProductTx(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Delete(&model.InventoryHistory{}, "product_id = ?", productID).Error
}
