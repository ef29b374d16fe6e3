package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryHistory is the append-only ledger of stock changes. Entries are
// immutable once written and form a strict chain per product:
// NewQty = PreviousQty + ChangeQty, and the next entry's PreviousQty equals
// this entry's NewQty.
type InventoryHistory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ChangeQty   int       `gorm:"not null"` // positive = stock added, negative = stock removed
	PreviousQty int       `gorm:"not null"`
	NewQty      int       `gorm:"not null"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's default pluralization (inventory_histories → inventory_history).
func (InventoryHistory) TableName() string { return "inventory_history" }
