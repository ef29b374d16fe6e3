package dto

import "github.com/shopspring/decimal"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type RecordSaleRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
	// SaleDate is optional (defaults to now) and may be backdated.
	// Accepted formats: RFC 3339 or "2006-01-02".
	SaleDate *string `json:"sale_date"`
}

// ── Filter / Pagination ───────────────────────────────────────────────────────

type SaleFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type SaleResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	SaleDate    string          `json:"sale_date"`
	CreatedAt   string          `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
