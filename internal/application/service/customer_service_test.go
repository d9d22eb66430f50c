package service

import (
	"testing"

	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerPayment_UnlinkedMovesBalanceOnly(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Frederique Constant")
	batch := env.receive(t, watch.ID, env.shop.ID, 2, "500")
	cust := env.customer(t, "Farah")
	sale := env.sell(t, &cust.ID, line(watch, batch, 1, "900"))

	payment, err := env.customers.RecordPayment(env.ctx, cust.ID, &CustomerPaymentInput{
		PaymentInput: PaymentInput{Amount: dec("250"), Method: enum.PaymentMethodMobilePayment, Reference: "MP-778"},
	})
	require.NoError(t, err)
	assert.Nil(t, payment.SaleID)

	c := env.reloadCustomer(t, cust.ID)
	assertDec(t, "250", c.TotalPaid)
	assertDec(t, "650", c.TotalDue)

	// the sale itself stays unpaid
	loaded, err := env.sales.GetSale(env.ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusUnpaid, loaded.PaymentStatus)
}

func TestCustomerPayment_LinkedToOwnSale(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Maurice Lacroix Aikon")
	batch := env.receive(t, watch.ID, env.shop.ID, 2, "700")
	owner := env.customer(t, "Gita")
	other := env.customer(t, "Hugo")
	sale := env.sell(t, &owner.ID, line(watch, batch, 1, "1000"))

	_, err := env.customers.RecordPayment(env.ctx, other.ID, &CustomerPaymentInput{
		PaymentInput: *cash("100"),
		SaleID:       &sale.ID,
	})
	assert.ErrorIs(t, err, ledger.ErrInvalidState)

	payment, err := env.customers.RecordPayment(env.ctx, owner.ID, &CustomerPaymentInput{
		PaymentInput: *cash("1000"),
		SaleID:       &sale.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, payment.SaleID)

	loaded, err := env.sales.GetSale(env.ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, loaded.PaymentStatus)

	_, err = env.customers.RecordPayment(env.ctx, owner.ID, &CustomerPaymentInput{
		PaymentInput: *cash("1"),
		SaleID:       &sale.ID,
	})
	assert.ErrorIs(t, err, ledger.ErrOverpayment)

	payments, err := env.customers.ListPayments(env.ctx, owner.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, payments.Pagination.Total)

	assertDec(t, "0", env.reloadCustomer(t, owner.ID).TotalDue)
	assertDec(t, "0", env.reloadCustomer(t, other.ID).TotalPaid)
}

func TestRecalculateBalance_RepairsDrift(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Glashutte Original")
	batch := env.receive(t, watch.ID, env.shop.ID, 5, "2000")
	cust := env.customer(t, "Ivan")

	kept := env.sell(t, &cust.ID, line(watch, batch, 2, "3000"))
	voided := env.sell(t, &cust.ID, line(watch, batch, 1, "3000"))
	_, err := env.sales.CancelSale(env.ctx, voided.ID)
	require.NoError(t, err)
	_, err = env.sales.RecordSalePayment(env.ctx, kept.ID, cash("2500"))
	require.NoError(t, err)

	loaded, err := env.sales.GetSale(env.ctx, kept.ID)
	require.NoError(t, err)
	_, err = env.sales.CreateReturn(env.ctx, kept.ID, &CreateReturnInput{
		Items: []ReturnLineInput{{SaleItemID: loaded.Items[0].ID, Quantity: 1}},
	})
	require.NoError(t, err)

	live := env.reloadCustomer(t, cust.ID)

	// scramble the stored balances
	err = env.db.Model(&entity.Customer{}).Where("id = ?", cust.ID).Updates(map[string]interface{}{
		"total_purchases": 1,
		"total_paid":      2,
		"total_due":       3,
	}).Error
	require.NoError(t, err)

	repaired, err := env.customers.RecalculateBalance(env.ctx, cust.ID)
	require.NoError(t, err)
	// 6000 sold, 3000 refunded, 2500 paid
	assertDec(t, "3000", repaired.TotalPurchases)
	assertDec(t, "2500", repaired.TotalPaid)
	assertDec(t, "500", repaired.TotalDue)

	assert.True(t, live.TotalPurchases.Equal(repaired.TotalPurchases))
	assert.True(t, live.TotalPaid.Equal(repaired.TotalPaid))
	assert.True(t, live.TotalDue.Equal(repaired.TotalDue))

	model := "Customer"
	logs, err := env.audit.ListAuditLogs(env.ctx, &repository.AuditFilterParams{ModelName: model, ObjectID: cust.ID.String()})
	require.NoError(t, err)
	var recalculated bool
	for _, l := range logs.Items {
		if l.Action == enum.AuditUpdate {
			recalculated = true
		}
	}
	assert.True(t, recalculated)
}

func TestCustomerService_CreateAndFilter(t *testing.T) {
	env := newTestEnv(t)
	watch := env.product(t, "Raymond Weil")
	batch := env.receive(t, watch.ID, env.shop.ID, 1, "350")
	owing := env.customer(t, "Jomo")
	env.customer(t, "Kemi")
	env.sell(t, &owing.ID, line(watch, batch, 1, "500"))

	_, err := env.customers.CreateCustomer(env.ctx, &CustomerInput{Name: "Bad Mail", Email: "not-an-email"})
	assert.True(t, rejected(err), "got %v", err)

	hasDue := true
	list, err := env.customers.ListCustomers(env.ctx, &repository.CustomerFilterParams{HasDue: &hasDue})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, owing.ID, list.Items[0].ID)
}
