package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// SetInventoryRequest targets an absolute quantity. NewQuantity is a pointer so
// that an explicit 0 is distinguishable from a missing field.
type SetInventoryRequest struct {
	NewQuantity *int `json:"new_quantity" validate:"required,min=0"`
}

type LowStockFilter struct {
	Threshold *int `form:"low_stock_threshold" validate:"omitempty,min=0"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// StockChangeResponse reports the outcome of one ledger mutation.
type StockChangeResponse struct {
	ProductID        string `json:"product_id"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
}

type InventoryHistoryResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ChangeQty   int    `json:"change_qty"`
	PreviousQty int    `json:"previous_qty"`
	NewQty      int    `json:"new_qty"`
	CreatedAt   string `json:"created_at"`
}

type StockLevelResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}
