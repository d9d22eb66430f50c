package ledger

import (
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// PaymentStatusFor derives a sale's payment status from its amounts.
// It is recomputed on every change of paid, so corrections can move it backwards.
// A zero-total sale counts as paid.
func PaymentStatusFor(paid, total decimal.Decimal) enum.PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return enum.PaymentStatusPaid
	case paid.IsPositive():
		return enum.PaymentStatusPartial
	default:
		return enum.PaymentStatusUnpaid
	}
}

// DueAmount is what remains to be paid on a sale.
func DueAmount(total, paid decimal.Decimal) decimal.Decimal {
	return total.Sub(paid)
}
