package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/internal/infrastructure/cache"
	"github.com/sangkips/clockshop-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/clockshop-api/internal/infrastructure/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	ctx   context.Context
	db    *gorm.DB
	store repository.TxManager

	audit     *AuditService
	catalog   *CatalogService
	inventory *InventoryService
	sales     *SaleService
	customers *CustomerService
	transfers *TransferService
	stockOuts *StockOutService

	shop *entity.Warehouse
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logg := logrus.New()
	logg.SetOutput(io.Discard)

	db, err := database.OpenInMemory(logg)
	require.NoError(t, err)
	require.NoError(t, database.SeedDefaultData(db, logg))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := infraRepo.NewStore(db, 0)
	numbers := NewNumberGenerator(time.Now)
	locker := cache.NewNoopLocker()
	audit := NewAuditService(store.AuditLogs(), true, logg)

	userID := uuid.New()
	env := &testEnv{
		ctx:       WithActor(context.Background(), Actor{ID: &userID, Name: "tester", IP: "127.0.0.1"}),
		db:        db,
		store:     store,
		audit:     audit,
		catalog:   NewCatalogService(store, audit),
		inventory: NewInventoryService(store, numbers, audit),
		sales:     NewSaleService(store, numbers, locker, audit),
		customers: NewCustomerService(store, audit),
		transfers: NewTransferService(store, numbers, locker, audit),
		stockOuts: NewStockOutService(store, numbers, locker, audit),
	}

	warehouses, err := store.Warehouses().List(env.ctx, true)
	require.NoError(t, err)
	for i := range warehouses {
		if warehouses[i].IsShop {
			env.shop = &warehouses[i]
		}
	}
	require.NotNil(t, env.shop, "shop warehouse should be seeded")
	return env
}

func (e *testEnv) warehouse(t *testing.T, code string) *entity.Warehouse {
	t.Helper()
	w, err := e.catalog.CreateWarehouse(e.ctx, &WarehouseInput{Name: "Store " + code, Code: code})
	require.NoError(t, err)
	return w
}

func (e *testEnv) product(t *testing.T, name string) *entity.Product {
	t.Helper()
	p, err := e.catalog.CreateProduct(e.ctx, &ProductInput{Name: name, DefaultPrice: dec("250")})
	require.NoError(t, err)
	return p
}

func (e *testEnv) receive(t *testing.T, productID, warehouseID uuid.UUID, qty int, price string) *entity.Batch {
	t.Helper()
	b, err := e.inventory.ReceiveBatch(e.ctx, &ReceiveBatchInput{
		ProductID:   productID,
		WarehouseID: warehouseID,
		BuyPrice:    dec(price),
		Quantity:    qty,
	})
	require.NoError(t, err)
	return b
}

func (e *testEnv) customer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	c, err := e.customers.CreateCustomer(e.ctx, &CustomerInput{Name: name, Phone: "0700000000"})
	require.NoError(t, err)
	return c
}

func (e *testEnv) sell(t *testing.T, customerID *uuid.UUID, lines ...SaleLineInput) *entity.Sale {
	t.Helper()
	sale, err := e.sales.CreateSale(e.ctx, &CreateSaleInput{CustomerID: customerID, Items: lines})
	require.NoError(t, err)
	return sale
}

func (e *testEnv) batchQty(t *testing.T, id uuid.UUID) int {
	t.Helper()
	b, err := e.inventory.GetBatch(e.ctx, id)
	require.NoError(t, err)
	return b.Quantity
}

func (e *testEnv) totalStock(t *testing.T, productID uuid.UUID) int {
	t.Helper()
	p, err := e.catalog.GetProduct(e.ctx, productID)
	require.NoError(t, err)
	return p.TotalStock
}

func (e *testEnv) reloadCustomer(t *testing.T, id uuid.UUID) *entity.Customer {
	t.Helper()
	c, err := e.customers.GetCustomer(e.ctx, id)
	require.NoError(t, err)
	return c
}

func line(p *entity.Product, b *entity.Batch, qty int, price string) SaleLineInput {
	return SaleLineInput{
		ProductID: &p.ID,
		BatchID:   &b.ID,
		Quantity:  qty,
		UnitPrice: dec(price),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cash(amount string) *PaymentInput {
	return &PaymentInput{Amount: dec(amount), Method: "cash"}
}
