package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale records a sold quantity of one product. TotalPrice is computed from
// the product price at insert time and frozen — later price changes never
// touch recorded sales. SaleDate defaults to now but may be backdated.
type Sale struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaleDate   time.Time       `gorm:"index;not null"`
	CreatedAt  time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (Sale) TableName() string { return "sales" }
