package service

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

// rejected reports a request-level failure, whether caught by tag
// validation or by the ledger rules
func rejected(err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code == http.StatusUnprocessableEntity
	}
	return ledger.IsClientError(err)
}

func TestCreateSale_BooksStockCostAndCustomer(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Seiko Presage")
	batch := env.receive(t, watch.ID, env.shop.ID, 5, "100")
	cust := env.customer(t, "Amina")

	sale := env.sell(t, &cust.ID, line(watch, batch, 2, "150"))

	assert.True(t, strings.HasPrefix(sale.InvoiceNumber, "INV"))
	assert.Equal(t, enum.StatusCompleted, sale.Status)
	assert.Equal(t, enum.PaymentStatusUnpaid, sale.PaymentStatus)
	assertDec(t, "300", sale.TotalAmount)
	assertDec(t, "200", sale.TotalCost)
	assertDec(t, "100", sale.Profit())

	assert.Equal(t, 3, env.batchQty(t, batch.ID))
	assert.Equal(t, 3, env.totalStock(t, watch.ID))

	c := env.reloadCustomer(t, cust.ID)
	assertDec(t, "300", c.TotalPurchases)
	assertDec(t, "300", c.TotalDue)
	assertDec(t, "0", c.TotalPaid)
}

func TestCreateSale_DiscountsAndTax(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Casio Edifice")
	batch := env.receive(t, watch.ID, env.shop.ID, 10, "40")

	l := line(watch, batch, 3, "80")
	l.Discount = dec("15")
	sale, err := env.sales.CreateSale(env.ctx, &CreateSaleInput{
		DiscountAmount: dec("25"),
		TaxAmount:      dec("10"),
		Items:          []SaleLineInput{l},
	})
	require.NoError(t, err)

	// 3 × 80 − 15 = 225; 225 − 25 + 10 = 210
	assertDec(t, "225", sale.Subtotal)
	assertDec(t, "210", sale.TotalAmount)
	assertDec(t, "120", sale.TotalCost)
	assert.Nil(t, sale.CustomerID)
}

func TestCreateSale_CustomLineMovesNoStock(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Tissot PRX")
	batch := env.receive(t, watch.ID, env.shop.ID, 2, "300")

	sale := env.sell(t, nil,
		line(watch, batch, 1, "450"),
		SaleLineInput{Description: "Strap replacement", Quantity: 1, UnitPrice: dec("20")},
	)

	loaded, err := env.sales.GetSale(env.ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)

	var custom int
	for _, item := range loaded.Items {
		if item.IsCustom {
			custom++
			assert.Equal(t, "Strap replacement", item.CustomDescription)
			assert.Nil(t, item.BatchID)
			assertDec(t, "0", item.TotalCost)
		}
	}
	assert.Equal(t, 1, custom)
	assertDec(t, "470", loaded.TotalAmount)
	assertDec(t, "300", loaded.TotalCost)
	assert.Equal(t, 1, env.batchQty(t, batch.ID))
}

func TestCreateSale_RejectsBadLines(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Orient Bambino")
	batch := env.receive(t, watch.ID, env.shop.ID, 2, "90")

	tests := []struct {
		name  string
		input *CreateSaleInput
	}{
		{
			name:  "no lines",
			input: &CreateSaleInput{},
		},
		{
			name:  "custom line without description",
			input: &CreateSaleInput{Items: []SaleLineInput{{Quantity: 1, UnitPrice: dec("5")}}},
		},
		{
			name: "batch without product",
			input: &CreateSaleInput{Items: []SaleLineInput{
				{BatchID: &batch.ID, Quantity: 1, UnitPrice: dec("5")},
			}},
		},
		{
			name: "discount above line value",
			input: &CreateSaleInput{Items: []SaleLineInput{
				{ProductID: &watch.ID, BatchID: &batch.ID, Quantity: 1, UnitPrice: dec("5"), Discount: dec("6")},
			}},
		},
		{
			name: "invoice discount above total",
			input: &CreateSaleInput{
				DiscountAmount: dec("500"),
				Items:          []SaleLineInput{line(watch, batch, 1, "100")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.sales.CreateSale(env.ctx, tt.input)
			require.Error(t, err)
			assert.True(t, rejected(err), "got %v", err)
		})
	}

	assert.Equal(t, 2, env.batchQty(t, batch.ID))
}

func TestCreateSale_ShortLineRollsBackWholeSale(t *testing.T) {
	env := newTestEnv(t)
	a := env.product(t, "Rolex Datejust")
	b := env.product(t, "Omega Seamaster")
	batchA := env.receive(t, a.ID, env.shop.ID, 4, "5000")
	batchB := env.receive(t, b.ID, env.shop.ID, 1, "4000")
	cust := env.customer(t, "Brian")

	_, err := env.sales.CreateSale(env.ctx, &CreateSaleInput{
		CustomerID: &cust.ID,
		Items: []SaleLineInput{
			line(a, batchA, 2, "7000"),
			line(b, batchB, 2, "6000"),
		},
	})
	require.Error(t, err)

	var short *ledger.InsufficientStockError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, batchB.ID, short.BatchID)
	assert.Equal(t, 2, short.Requested)
	assert.Equal(t, 1, short.Available)

	assert.Equal(t, 4, env.batchQty(t, batchA.ID))
	assert.Equal(t, 1, env.batchQty(t, batchB.ID))
	assert.Equal(t, 4, env.totalStock(t, a.ID))

	sales, err := env.sales.ListSales(env.ctx, &repository.SaleFilterParams{})
	require.NoError(t, err)
	assert.Empty(t, sales.Items)
	assertDec(t, "0", env.reloadCustomer(t, cust.ID).TotalPurchases)
}

// The test database holds a single connection, so these checkouts queue on
// the pool and FOR UPDATE is never contended here. What this pins down is
// that every buyer sees committed stock and that numbering stays unique; the
// conditional decrement that refuses to go below zero is covered on its own
// in the repository tests.
func TestCreateSale_ConcurrentBuyersNeverOversell(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Citizen Eco-Drive")
	batch := env.receive(t, watch.ID, env.shop.ID, 10, "120")

	const buyers = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		errs      []error
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.sales.CreateSale(env.ctx, &CreateSaleInput{
				Items: []SaleLineInput{line(watch, batch, 1, "200")},
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			succeeded++
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	require.Len(t, errs, buyers-10)
	for _, err := range errs {
		assert.ErrorIs(t, err, ledger.ErrInsufficientStock)
	}
	assert.Equal(t, 0, env.batchQty(t, batch.ID))
	assert.Equal(t, 0, env.totalStock(t, watch.ID))

	sales, err := env.sales.ListSales(env.ctx, &repository.SaleFilterParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 10, sales.Pagination.Total)

	seen := make(map[string]bool)
	for _, s := range sales.Items {
		assert.False(t, seen[s.InvoiceNumber], "duplicate invoice %s", s.InvoiceNumber)
		seen[s.InvoiceNumber] = true
	}
}

func TestCancelSale_RestoresStockAndBalance(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Hamilton Khaki")
	batch := env.receive(t, watch.ID, env.shop.ID, 3, "400")
	cust := env.customer(t, "Chen")

	sale := env.sell(t, &cust.ID, line(watch, batch, 2, "650"))
	require.Equal(t, 1, env.batchQty(t, batch.ID))

	cancelled, err := env.sales.CancelSale(env.ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.StatusCancelled, cancelled.Status)

	assert.Equal(t, 3, env.batchQty(t, batch.ID))
	assert.Equal(t, 3, env.totalStock(t, watch.ID))
	c := env.reloadCustomer(t, cust.ID)
	assertDec(t, "0", c.TotalPurchases)
	assertDec(t, "0", c.TotalDue)

	_, err = env.sales.CancelSale(env.ctx, sale.ID)
	assert.ErrorIs(t, err, ledger.ErrAlreadyCancelled)
	assert.Equal(t, 3, env.batchQty(t, batch.ID))
}

func TestCancelSale_RefusedOncePaid(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Longines Master")
	batch := env.receive(t, watch.ID, env.shop.ID, 1, "900")

	sale := env.sell(t, nil, line(watch, batch, 1, "1200"))
	_, err := env.sales.RecordSalePayment(env.ctx, sale.ID, cash("100"))
	require.NoError(t, err)

	_, err = env.sales.CancelSale(env.ctx, sale.ID)
	assert.ErrorIs(t, err, ledger.ErrInvalidState)
	assert.Equal(t, 0, env.batchQty(t, batch.ID))
}

func TestCancelSale_UnknownSale(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.sales.CancelSale(env.ctx, uuid.New())
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestRecordSalePayment_MovesThroughStatuses(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Tag Heuer Carrera")
	batch := env.receive(t, watch.ID, env.shop.ID, 1, "700")
	cust := env.customer(t, "Dina")

	sale := env.sell(t, &cust.ID, line(watch, batch, 1, "1000"))
	assert.Equal(t, enum.PaymentStatusUnpaid, sale.PaymentStatus)

	res, err := env.sales.RecordSalePayment(env.ctx, sale.ID, cash("400"))
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartial, res.Sale.PaymentStatus)
	assertDec(t, "600", res.Sale.DueAmount())
	require.NotNil(t, res.Payment.CustomerID)
	assert.Equal(t, cust.ID, *res.Payment.CustomerID)

	_, err = env.sales.RecordSalePayment(env.ctx, sale.ID, cash("600.01"))
	var over *ledger.OverpaymentError
	require.ErrorAs(t, err, &over)
	assertDec(t, "600", over.Due)

	res, err = env.sales.RecordSalePayment(env.ctx, sale.ID, &PaymentInput{Amount: dec("600"), Method: enum.PaymentMethodCard})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, res.Sale.PaymentStatus)
	assertDec(t, "0", res.Sale.DueAmount())

	_, err = env.sales.RecordSalePayment(env.ctx, sale.ID, cash("1"))
	assert.ErrorIs(t, err, ledger.ErrOverpayment)

	payments, err := env.sales.ListSalePayments(env.ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	c := env.reloadCustomer(t, cust.ID)
	assertDec(t, "1000", c.TotalPaid)
	assertDec(t, "0", c.TotalDue)
}

func TestRecordSalePayment_Validation(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Swatch Sistem51")
	batch := env.receive(t, watch.ID, env.shop.ID, 1, "50")
	sale := env.sell(t, nil, line(watch, batch, 1, "80"))

	_, err := env.sales.RecordSalePayment(env.ctx, sale.ID, cash("0"))
	assert.True(t, rejected(err), "got %v", err)

	_, err = env.sales.RecordSalePayment(env.ctx, sale.ID, cash("0.001"))
	assert.ErrorIs(t, err, ledger.ErrValidation)

	_, err = env.sales.RecordSalePayment(env.ctx, sale.ID, &PaymentInput{Amount: dec("10"), Method: "barter"})
	assert.ErrorIs(t, err, ledger.ErrValidation)

	res, err := env.sales.RecordSalePayment(env.ctx, sale.ID, cash("80"))
	require.NoError(t, err)
	assert.Nil(t, res.Payment.CustomerID)
}

func TestCreateReturn_RestocksAndEnforcesLimit(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Fossil Grant")
	batch := env.receive(t, watch.ID, env.shop.ID, 5, "60")
	cust := env.customer(t, "Emeka")

	l := line(watch, batch, 3, "100")
	l.Discount = dec("30")
	sale := env.sell(t, &cust.ID, l)
	loaded, err := env.sales.GetSale(env.ctx, sale.ID)
	require.NoError(t, err)
	itemID := loaded.Items[0].ID

	ret, err := env.sales.CreateReturn(env.ctx, sale.ID, &CreateReturnInput{
		Reason: "wrong colour",
		Items:  []ReturnLineInput{{SaleItemID: itemID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ret.ReturnNumber, "RET"))
	// 2 × 100 less 2/3 of the 30 line discount
	assertDec(t, "180", ret.RefundAmount)

	assert.Equal(t, 4, env.batchQty(t, batch.ID))
	assert.Equal(t, 4, env.totalStock(t, watch.ID))
	c := env.reloadCustomer(t, cust.ID)
	assertDec(t, "90", c.TotalPurchases)
	assertDec(t, "90", c.TotalDue)

	_, err = env.sales.CreateReturn(env.ctx, sale.ID, &CreateReturnInput{
		Items: []ReturnLineInput{{SaleItemID: itemID, Quantity: 2}},
	})
	var verr *ledger.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items[0].quantity", verr.Field)
	assert.Equal(t, 4, env.batchQty(t, batch.ID))

	_, err = env.sales.CreateReturn(env.ctx, sale.ID, &CreateReturnInput{
		Items: []ReturnLineInput{{SaleItemID: uuid.New(), Quantity: 1}},
	})
	assert.True(t, errors.Is(err, ledger.ErrNotFound))

	returns, err := env.sales.ListReturns(env.ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, returns, 1)

	_, err = env.sales.CancelSale(env.ctx, sale.ID)
	assert.ErrorIs(t, err, ledger.ErrInvalidState)
}

func TestCreateReturn_KeepsSaleAndCustomerInStep(t *testing.T) {
	tests := []struct {
		name          string
		paidBefore    string
		wantCash      string
		wantSalePaid  string
		wantStatus    enum.PaymentStatus
		wantCustDue   string
		wantCustPaid  string
		wantRemaining string
	}{
		{"unpaid sale is credited", "", "0", "0", enum.PaymentStatusUnpaid, "100", "0", "100"},
		{"paid sale hands cash back", "300", "200", "100", enum.PaymentStatusPaid, "0", "100", "0"},
		{"partly paid sale credits the due first", "250", "150", "100", enum.PaymentStatusPaid, "0", "100", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			watch := env.product(t, "Orient Bambino")
			batch := env.receive(t, watch.ID, env.shop.ID, 5, "60")
			cust := env.customer(t, "Lulu")
			sale := env.sell(t, &cust.ID, line(watch, batch, 3, "100"))
			if tt.paidBefore != "" {
				_, err := env.sales.RecordSalePayment(env.ctx, sale.ID, cash(tt.paidBefore))
				require.NoError(t, err)
			}

			loaded, err := env.sales.GetSale(env.ctx, sale.ID)
			require.NoError(t, err)
			ret, err := env.sales.CreateReturn(env.ctx, sale.ID, &CreateReturnInput{
				Items: []ReturnLineInput{{SaleItemID: loaded.Items[0].ID, Quantity: 2}},
			})
			require.NoError(t, err)
			assertDec(t, "200", ret.RefundAmount)
			assertDec(t, tt.wantCash, ret.CashRefund)

			after, err := env.sales.GetSale(env.ctx, sale.ID)
			require.NoError(t, err)
			assertDec(t, "200", after.ReturnedAmount)
			assertDec(t, "100", after.NetAmount())
			assertDec(t, tt.wantSalePaid, after.PaidAmount)
			assertDec(t, tt.wantRemaining, after.DueAmount())
			assert.Equal(t, tt.wantStatus, after.PaymentStatus)

			c := env.reloadCustomer(t, cust.ID)
			assertDec(t, "100", c.TotalPurchases)
			assertDec(t, tt.wantCustPaid, c.TotalPaid)
			assertDec(t, tt.wantCustDue, c.TotalDue)

			// the returned goods can no longer be paid for
			_, err = env.sales.RecordSalePayment(env.ctx, sale.ID, cash("100.01"))
			assert.ErrorIs(t, err, ledger.ErrOverpayment)

			if after.DueAmount().IsPositive() {
				res, err := env.sales.RecordSalePayment(env.ctx, sale.ID, cash(tt.wantRemaining))
				require.NoError(t, err)
				assert.Equal(t, enum.PaymentStatusPaid, res.Sale.PaymentStatus)
				assertDec(t, "0", env.reloadCustomer(t, cust.ID).TotalDue)
			}

			live := env.reloadCustomer(t, cust.ID)
			repaired, err := env.customers.RecalculateBalance(env.ctx, cust.ID)
			require.NoError(t, err)
			assert.True(t, live.TotalPaid.Equal(repaired.TotalPaid), "paid %s vs %s", live.TotalPaid, repaired.TotalPaid)
			assert.True(t, live.TotalDue.Equal(repaired.TotalDue), "due %s vs %s", live.TotalDue, repaired.TotalDue)

			current, err := env.sales.GetSale(env.ctx, sale.ID)
			require.NoError(t, err)
			recalculated, err := env.sales.RecalculatePaidAmount(env.ctx, sale.ID)
			require.NoError(t, err)
			assert.True(t, current.PaidAmount.Equal(recalculated.PaidAmount))
			assert.Equal(t, current.PaymentStatus, recalculated.PaymentStatus)
		})
	}
}

func TestRecalculatePaidAmount_CorrectsStatusDownwards(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Oris Aquis")
	batch := env.receive(t, watch.ID, env.shop.ID, 1, "700")
	sale := env.sell(t, nil, line(watch, batch, 1, "1000"))

	_, err := env.sales.RecordSalePayment(env.ctx, sale.ID, cash("400"))
	require.NoError(t, err)
	res, err := env.sales.RecordSalePayment(env.ctx, sale.ID, cash("600"))
	require.NoError(t, err)
	require.Equal(t, enum.PaymentStatusPaid, res.Sale.PaymentStatus)

	// the second payment was keyed in wrong and corrected by hand
	err = env.db.Model(&entity.Payment{}).Where("id = ?", res.Payment.ID).Update("amount", 200).Error
	require.NoError(t, err)

	corrected, err := env.sales.RecalculatePaidAmount(env.ctx, sale.ID)
	require.NoError(t, err)
	assertDec(t, "600", corrected.PaidAmount)
	assertDec(t, "400", corrected.DueAmount())
	assert.Equal(t, enum.PaymentStatusPartial, corrected.PaymentStatus)

	stored, err := env.sales.GetSale(env.ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartial, stored.PaymentStatus)

	update := enum.AuditUpdate
	logs, err := env.audit.ListAuditLogs(env.ctx, &repository.AuditFilterParams{
		Action: &update, ModelName: "Sale", ObjectID: sale.ID.String(),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, logs.Pagination.Total)

	// nothing left to correct, nothing audited
	_, err = env.sales.RecalculatePaidAmount(env.ctx, sale.ID)
	require.NoError(t, err)
	logs, err = env.audit.ListAuditLogs(env.ctx, &repository.AuditFilterParams{
		Action: &update, ModelName: "Sale", ObjectID: sale.ID.String(),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, logs.Pagination.Total)

	_, err = env.sales.RecalculatePaidAmount(env.ctx, uuid.New())
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestSaleService_WritesAuditTrail(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Bulova Lunar")
	batch := env.receive(t, watch.ID, env.shop.ID, 1, "300")
	sale := env.sell(t, nil, line(watch, batch, 1, "500"))

	action := enum.AuditSale
	logs, err := env.audit.ListAuditLogs(env.ctx, &repository.AuditFilterParams{Action: &action})
	require.NoError(t, err)
	require.Len(t, logs.Items, 1)
	assert.Equal(t, sale.ID.String(), logs.Items[0].ObjectID)
	assert.Equal(t, "tester", logs.Items[0].ActorName)
	assert.Equal(t, sale.InvoiceNumber, logs.Items[0].ObjectRepr)
}
