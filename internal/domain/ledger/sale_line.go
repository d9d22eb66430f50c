package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleLine is one requested line of a checkout: either a RegularLine drawn from
// a batch or a CustomLine with no inventory behind it.
type SaleLine interface {
	Amounts() LineAmounts
	saleLine()
}

// LineAmounts are the priced parts shared by every line kind.
type LineAmounts struct {
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// Total is quantity × unit price − discount.
func (a LineAmounts) Total() decimal.Decimal {
	return a.UnitPrice.Mul(decimal.NewFromInt(int64(a.Quantity))).Sub(a.Discount)
}

// Validate checks the amounts before any stock is touched.
func (a LineAmounts) Validate() error {
	if a.Quantity <= 0 {
		return Invalid("quantity", "must be greater than zero")
	}
	if a.UnitPrice.IsNegative() {
		return Invalid("unit_price", "must not be negative")
	}
	if a.Discount.IsNegative() {
		return Invalid("discount", "must not be negative")
	}
	if a.Total().IsNegative() {
		return Invalid("discount", "must not exceed the line amount")
	}
	return nil
}

// RegularLine sells quantity units of a product out of a named batch.
type RegularLine struct {
	ProductID uuid.UUID
	BatchID   uuid.UUID
	LineAmounts
}

func (l RegularLine) Amounts() LineAmounts { return l.LineAmounts }
func (RegularLine) saleLine()              {}

// CustomLine is a free-text line with no product, batch or cost.
type CustomLine struct {
	Description string
	LineAmounts
}

func (l CustomLine) Amounts() LineAmounts { return l.LineAmounts }
func (CustomLine) saleLine()              {}
