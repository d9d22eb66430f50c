package service

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiveBatch_NumbersAndStock(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Mido Ocean Star")

	first := env.receive(t, watch.ID, env.shop.ID, 4, "320")
	second := env.receive(t, watch.ID, env.shop.ID, 6, "310")

	day := ledger.DayKey(time.Now())
	assert.Equal(t, "B"+day+"0001", first.BatchNumber)
	assert.Equal(t, "B"+day+"0002", second.BatchNumber)
	assert.Equal(t, 4, first.InitialQuantity)
	assert.Equal(t, 10, env.totalStock(t, watch.ID))
}

func TestReceiveBatch_ConcurrentNumbersAreDistinct(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Certina DS")

	const receipts = 100
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[string]bool, receipts)
		failed  []error
	)
	for i := 0; i < receipts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := env.inventory.ReceiveBatch(env.ctx, &ReceiveBatchInput{
				ProductID:   watch.ID,
				WarehouseID: env.shop.ID,
				BuyPrice:    dec("99.99"),
				Quantity:    1,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, err)
				return
			}
			numbers[b.BatchNumber] = true
		}()
	}
	wg.Wait()

	require.Empty(t, failed)
	assert.Len(t, numbers, receipts)

	day := ledger.DayKey(time.Now())
	for i := 1; i <= receipts; i++ {
		assert.True(t, numbers[ledger.FormatNumber(ledger.PrefixBatch, day, i)], "missing sequence %d", i)
	}
	assert.Equal(t, receipts, env.totalStock(t, watch.ID))
}

func TestReceiveBatch_Guards(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Rado Captain Cook")
	closed := env.warehouse(t, "SHUT")
	_, err := env.catalog.SetWarehouseActive(env.ctx, closed.ID, false)
	require.NoError(t, err)

	_, err = env.inventory.ReceiveBatch(env.ctx, &ReceiveBatchInput{
		ProductID: watch.ID, WarehouseID: closed.ID, BuyPrice: dec("10"), Quantity: 1,
	})
	assert.ErrorIs(t, err, ledger.ErrInvalidState)

	_, err = env.inventory.ReceiveBatch(env.ctx, &ReceiveBatchInput{
		ProductID: uuid.New(), WarehouseID: env.shop.ID, BuyPrice: dec("10"), Quantity: 1,
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = env.inventory.ReceiveBatch(env.ctx, &ReceiveBatchInput{
		ProductID: watch.ID, WarehouseID: env.shop.ID, BuyPrice: dec("10"), Quantity: 0,
	})
	assert.True(t, rejected(err), "got %v", err)

	assert.Equal(t, 0, env.totalStock(t, watch.ID))
}

func TestCreatePurchase_OneBatchPerLine(t *testing.T) {
	env := newTestEnv(t)
	a := env.product(t, "Junghans Max Bill")
	b := env.product(t, "Stowa Flieger")

	purchase, err := env.inventory.CreatePurchase(env.ctx, &CreatePurchaseInput{
		WarehouseID: env.shop.ID,
		Supplier:    "Horology Imports",
		Items: []PurchaseLineInput{
			{ProductID: a.ID, Quantity: 3, UnitPrice: dec("410")},
			{ProductID: b.ID, Quantity: 2, UnitPrice: dec("525.50")},
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(purchase.PurchaseNumber, "PO"))
	assertDec(t, "2281", purchase.TotalAmount)

	loaded, err := env.inventory.GetPurchase(env.ctx, purchase.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)

	for _, item := range loaded.Items {
		batch, err := env.inventory.GetBatch(env.ctx, item.BatchID)
		require.NoError(t, err)
		assert.Equal(t, item.Quantity, batch.Quantity)
		assert.Equal(t, "Horology Imports", batch.Supplier)
		assert.Equal(t, "Purchase "+purchase.PurchaseNumber, batch.Notes)
	}
	assert.Equal(t, 3, env.totalStock(t, a.ID))
	assert.Equal(t, 2, env.totalStock(t, b.ID))

	list, err := env.inventory.ListPurchases(env.ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Pagination.Total)
}

func TestCreatePurchase_UnknownProductRollsBack(t *testing.T) {
	env := newTestEnv(t)
	a := env.product(t, "Laco Augsburg")

	_, err := env.inventory.CreatePurchase(env.ctx, &CreatePurchaseInput{
		WarehouseID: env.shop.ID,
		Items: []PurchaseLineInput{
			{ProductID: a.ID, Quantity: 3, UnitPrice: dec("300")},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: dec("100")},
		},
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.Equal(t, 0, env.totalStock(t, a.ID))

	batches, err := env.inventory.ListBatches(env.ctx, a.ID, false)
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestRecalculateProductStock_RepairsDrift(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Baltic Aquascaphe")
	env.receive(t, watch.ID, env.shop.ID, 7, "400")

	// knock the cached total out of line behind the ledger's back
	err := env.db.Model(&entity.Product{}).Where("id = ?", watch.ID).Update("total_stock", 99).Error
	require.NoError(t, err)
	require.Equal(t, 99, env.totalStock(t, watch.ID))

	product, err := env.inventory.RecalculateProductStock(env.ctx, watch.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, product.TotalStock)
	assert.Equal(t, 7, env.totalStock(t, watch.ID))
}

func TestNumberGenerator_SeedsFromStoredNumbers(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Hamilton Khaki")
	legacy := env.receive(t, watch.ID, env.shop.ID, 1, "300")
	broken := env.receive(t, watch.ID, env.shop.ID, 1, "300")

	require.NoError(t, env.db.Model(&entity.Batch{}).Where("id = ?", legacy.ID).
		Update("batch_number", "B202001020007").Error)
	require.NoError(t, env.db.Model(&entity.Batch{}).Where("id = ?", broken.ID).
		Update("batch_number", "B20200103ABCD").Error)

	next := func(day time.Time) (string, error) {
		gen := NewNumberGenerator(func() time.Time { return day })
		var number string
		err := env.store.WithinTx(env.ctx, func(tx repository.Store) error {
			var err error
			number, err = gen.Next(env.ctx, tx, ledger.PrefixBatch)
			return err
		})
		return number, err
	}

	number, err := next(time.Date(2020, 1, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "B202001020008", number)

	// a suffix that is not a sequence must not restart the counter at 0001
	_, err = next(time.Date(2020, 1, 3, 9, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ledger.ErrConflict)
	assert.Contains(t, err.Error(), "B20200103ABCD")
}
