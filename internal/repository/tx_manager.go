package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager scopes a function to one database transaction. Repositories expose
// *Tx methods that accept the transaction handle; services compose them inside
// WithinTx so that multi-table mutations (sale + stock decrement, product +
// initial stock) commit or roll back as one atomic unit.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type txManager struct{ db *gorm.DB }

func NewTxManager(db *gorm.DB) TxManager { return &txManager{db: db} }

func (m *txManager) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
