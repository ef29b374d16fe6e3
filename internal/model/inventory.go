package model

import (
	"time"

	"github.com/google/uuid"
)

// Inventory holds the current stock quantity for a product, one row per
// product. Rows are created lazily on the first stock-setting event; the
// ledger service is the only writer.
type Inventory struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null;default:0"`
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's pluralization ("inventories" → "inventory").
func (Inventory) TableName() string { return "inventory" }
