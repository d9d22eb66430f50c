package ledger

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPaymentStatusFor(t *testing.T) {
	tests := []struct {
		paid, total string
		want        enum.PaymentStatus
	}{
		{"0", "1000", enum.PaymentStatusUnpaid},
		{"400", "1000", enum.PaymentStatusPartial},
		{"1000", "1000", enum.PaymentStatusPaid},
		{"1000.00", "1000", enum.PaymentStatusPaid},
		{"0", "0", enum.PaymentStatusPaid},
		{"0.01", "1000", enum.PaymentStatusPartial},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PaymentStatusFor(dec(tt.paid), dec(tt.total)), "paid=%s total=%s", tt.paid, tt.total)
	}
}

func TestPaymentStatusFor_FollowsCorrections(t *testing.T) {
	total := dec("1000")
	steps := []struct {
		paid string
		want enum.PaymentStatus
	}{
		{"0", enum.PaymentStatusUnpaid},
		{"400", enum.PaymentStatusPartial},
		{"1000", enum.PaymentStatusPaid},
		{"600", enum.PaymentStatusPartial},
		{"0", enum.PaymentStatusUnpaid},
	}
	for i, step := range steps {
		assert.Equal(t, step.want, PaymentStatusFor(dec(step.paid), total), "step %d paid=%s", i, step.paid)
	}
}

func TestDueAmount(t *testing.T) {
	assert.True(t, DueAmount(dec("1000"), dec("400")).Equal(dec("600")))
}

func TestFormatNumber(t *testing.T) {
	day := DayKey(time.Date(2024, 3, 7, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "20240307", day)
	assert.Equal(t, "INV202403070001", FormatNumber(PrefixSale, day, 1))
	assert.Equal(t, "B202403070042", FormatNumber(PrefixBatch, day, 42))
	assert.Equal(t, "TRF2024030712345", FormatNumber(PrefixTransfer, day, 12345))
}

func TestParseSequence(t *testing.T) {
	prefix := DayPrefix(PrefixStockOut, "20240307")

	n, ok := ParseSequence("OUT202403070017", prefix)
	assert.True(t, ok)
	assert.Equal(t, 17, n)

	n, ok = ParseSequence("OUT2024030710000", prefix)
	assert.True(t, ok)
	assert.Equal(t, 10000, n)

	for _, bad := range []string{"OUT20240307", "OUT2024030701", "OUT20240307ABCD", "INV202403070001", "OUT202403080001"} {
		_, ok := ParseSequence(bad, prefix)
		assert.False(t, ok, bad)
	}
}

func TestLineAmounts(t *testing.T) {
	line := LineAmounts{Quantity: 3, UnitPrice: dec("150.50"), Discount: dec("1.50")}
	assert.NoError(t, line.Validate())
	assert.True(t, line.Total().Equal(dec("450")))

	cases := map[string]LineAmounts{
		"zero quantity":     {Quantity: 0, UnitPrice: dec("1")},
		"negative price":    {Quantity: 1, UnitPrice: dec("-1")},
		"negative discount": {Quantity: 1, UnitPrice: dec("1"), Discount: dec("-1")},
		"discount too big":  {Quantity: 1, UnitPrice: dec("10"), Discount: dec("10.01")},
	}
	for name, c := range cases {
		err := c.Validate()
		assert.ErrorIs(t, err, ErrValidation, name)
	}
}

func TestSortedIDs(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	got := SortedIDs([]uuid.UUID{c, a, b, a, c})

	assert.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.Negative(t, bytes.Compare(got[i-1][:], got[i][:]))
	}
	assert.Empty(t, SortedIDs(nil))
}

func TestErrorTaxonomy(t *testing.T) {
	id := uuid.New()

	stock := &InsufficientStockError{BatchID: id, BatchNumber: "B202403070001", Requested: 5, Available: 2}
	assert.ErrorIs(t, stock, ErrInsufficientStock)
	assert.Contains(t, stock.Error(), "B202403070001")

	cancelled := AlreadyCancelled("sale", id)
	assert.ErrorIs(t, cancelled, ErrAlreadyCancelled)
	assert.ErrorIs(t, cancelled, ErrInvalidState)

	var state *InvalidStateError
	assert.True(t, errors.As(InvalidState("transfer", id, "completed", "cancel"), &state))
	assert.Equal(t, "cancel", state.Action)

	over := &OverpaymentError{SaleID: id, Amount: dec("700"), Due: dec("600")}
	assert.ErrorIs(t, over, ErrOverpayment)
	assert.Equal(t, "payment amount 700.00 exceeds due amount 600.00", over.Error())

	assert.ErrorIs(t, NotFound("batch", id), ErrNotFound)
	assert.ErrorIs(t, Invalid("amount", "must be positive"), ErrValidation)

	assert.True(t, IsClientError(stock))
	assert.True(t, IsClientError(cancelled))
	assert.False(t, IsClientError(ErrBusy))
	assert.False(t, IsClientError(errors.New("disk on fire")))
}
