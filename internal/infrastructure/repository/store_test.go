package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/internal/infrastructure/database"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLockTimeoutStatements(t *testing.T) {
	tests := []struct {
		name      string
		dialect   string
		timeout   time.Duration
		wantSet   string
		wantReset string
	}{
		{"postgres is transaction scoped", "postgres", 1500 * time.Millisecond, "SET LOCAL lock_timeout = '1500ms'", ""},
		{"mysql resets the session", "mysql", 3 * time.Second, "SET SESSION innodb_lock_wait_timeout = 3", "SET SESSION innodb_lock_wait_timeout = DEFAULT"},
		{"mysql rounds up to a second", "mysql", 200 * time.Millisecond, "SET SESSION innodb_lock_wait_timeout = 1", "SET SESSION innodb_lock_wait_timeout = DEFAULT"},
		{"sqlite", "sqlite", time.Second, "", ""},
		{"zero keeps server default", "postgres", 0, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, reset := lockTimeoutStatements(tt.dialect, tt.timeout)
			assert.Equal(t, tt.wantSet, set)
			assert.Equal(t, tt.wantReset, reset)
		})
	}
}

func TestDriverErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		unique      bool
		lockTimeout bool
	}{
		{"gorm duplicate", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true, false},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true, false},
		{"postgres lock", &pgconn.PgError{Code: "55P03"}, false, true},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, true, false},
		{"mysql lock wait", &mysql.MySQLError{Number: 1205}, false, true},
		{"other", errors.New("boom"), false, false},
		{"nil", nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueViolation(tt.err))
			assert.Equal(t, tt.lockTimeout, IsLockTimeout(tt.err))
		})
	}
}

func newTestStore(t *testing.T) (domainRepo.TxManager, *entity.Product, *entity.Warehouse) {
	t.Helper()
	logg := logrus.New()
	logg.SetOutput(io.Discard)

	db, err := database.OpenInMemory(logg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := NewStore(db, 0)
	ctx := context.Background()
	product := &entity.Product{SKU: "TISSOT-PRX", Name: "Tissot PRX", IsActive: true}
	require.NoError(t, store.Products().Create(ctx, product))
	warehouse := &entity.Warehouse{Name: "Shop floor", Code: "SHOP", IsActive: true, IsShop: true}
	require.NoError(t, store.Warehouses().Create(ctx, warehouse))
	return store, product, warehouse
}

func TestWithinTx_DuplicateIsConflict(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	err := store.WithinTx(ctx, func(tx domainRepo.Store) error {
		return tx.Warehouses().Create(ctx, &entity.Warehouse{Name: "Again", Code: "SHOP", IsActive: true})
	})
	assert.ErrorIs(t, err, ledger.ErrConflict)
}

// The conditional decrement is the last guard against overselling: it holds
// even when no row lock was taken beforehand.
func TestBatchDecrement_NeverGoesNegative(t *testing.T) {
	store, product, warehouse := newTestStore(t)
	ctx := context.Background()

	batch := &entity.Batch{
		BatchNumber:     "B202601010001",
		ProductID:       product.ID,
		WarehouseID:     warehouse.ID,
		BuyPrice:        decimal.RequireFromString("180"),
		InitialQuantity: 3,
		Quantity:        3,
		PurchaseDate:    time.Now(),
	}
	require.NoError(t, store.Batches().Create(ctx, batch))

	ok, err := store.Batches().Decrement(ctx, batch.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Batches().Decrement(ctx, batch.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err := store.Batches().GetByID(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Quantity)
}
