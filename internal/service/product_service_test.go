package service

import (
	"context"
	"testing"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/dto"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productEnv struct {
	products   *stubProductRepo
	categories *stubCategoryRepo
	inventory  *stubInventoryRepo
	sales      *stubSaleRepo
	history    *stubHistoryRepo
	ledger     LedgerService
	svc        ProductService
}

func newProductEnv() *productEnv {
	env := &productEnv{
		products:   newStubProductRepo(),
		categories: newStubCategoryRepo(),
		inventory:  newStubInventoryRepo(),
		sales:      newStubSaleRepo(),
		history:    newStubHistoryRepo(),
	}
	txm := &stubTxManager{}
	env.ledger = NewLedgerService(env.products, env.inventory, env.history, txm)
	env.svc = NewProductService(env.products, env.categories, env.inventory, env.sales, env.history, env.ledger, txm)
	return env
}

func TestCreateProductWithInitialStock(t *testing.T) {
	env := newProductEnv()

	resp, err := env.svc.Create(context.Background(), dto.CreateProductRequest{
		Name:            "Mechanical Keyboard",
		Price:           decimal.NewFromFloat(79.90),
		InitialQuantity: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, resp.Quantity)

	id := uuid.MustParse(resp.ID)
	inv, err := env.inventory.Find(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, 25, inv.Quantity)

	entries := env.history.chronological(id)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].PreviousQty)
	assert.Equal(t, 25, entries[0].NewQty)
}

func TestCreateProductWithZeroStockSkipsLedger(t *testing.T) {
	env := newProductEnv()

	resp, err := env.svc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "Pre-order Item",
		Price: decimal.NewFromFloat(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Quantity)

	id := uuid.MustParse(resp.ID)
	inv, err := env.inventory.Find(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, inv, "no inventory row until the first stock-setting event")
	assert.Empty(t, env.history.chronological(id))
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	env := newProductEnv()

	_, err := env.svc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "Broken",
		Price: decimal.NewFromFloat(-1),
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	env := newProductEnv()
	missing := uuid.NewString()

	_, err := env.svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Orphan",
		Price:      decimal.NewFromFloat(5),
		CategoryID: &missing,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProductMalformedCategoryID(t *testing.T) {
	env := newProductEnv()
	bad := "not-a-uuid"

	_, err := env.svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Orphan",
		Price:      decimal.NewFromFloat(5),
		CategoryID: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDeleteProductWithSalesRefused(t *testing.T) {
	env := newProductEnv()
	ctx := context.Background()

	resp, err := env.svc.Create(ctx, dto.CreateProductRequest{
		Name: "Sold Item", Price: decimal.NewFromFloat(5), InitialQuantity: 10,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, env.sales.CreateTx(nil, &model.Sale{
		ProductID: id, Quantity: 1, TotalPrice: decimal.NewFromFloat(5),
	}))

	err = env.svc.Delete(ctx, id)
	assert.ErrorIs(t, err, ErrConflict)

	// Nothing was touched.
	_, err = env.products.FindByID(ctx, id)
	assert.NoError(t, err)
	inv, _ := env.inventory.Find(ctx, id)
	assert.NotNil(t, inv)
}

func TestDeleteProductCascadesInventoryAndHistory(t *testing.T) {
	env := newProductEnv()
	ctx := context.Background()

	resp, err := env.svc.Create(ctx, dto.CreateProductRequest{
		Name: "Unsold Item", Price: decimal.NewFromFloat(5), InitialQuantity: 10,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, env.svc.Delete(ctx, id))

	_, err = env.products.FindByID(ctx, id)
	assert.Error(t, err)
	inv, _ := env.inventory.Find(ctx, id)
	assert.Nil(t, inv)
	assert.Empty(t, env.history.chronological(id))
}

func TestUpdateProductPriceLeavesNoLedgerEntry(t *testing.T) {
	env := newProductEnv()
	ctx := context.Background()

	resp, err := env.svc.Create(ctx, dto.CreateProductRequest{
		Name: "Widget", Price: decimal.NewFromFloat(5), InitialQuantity: 3,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	newPrice := decimal.NewFromFloat(7.50)
	updated, err := env.svc.Update(ctx, id, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, 3, updated.Quantity)

	// A price change is not a stock event.
	assert.Len(t, env.history.chronological(id), 1)
}

func TestGetProductNotFound(t *testing.T) {
	env := newProductEnv()

	_, err := env.svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
