package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// StockOutReason explains why stock left the shop without a sale
type StockOutReason string

const (
	ReasonDamage         StockOutReason = "damage"
	ReasonLoss           StockOutReason = "loss"
	ReasonExpired        StockOutReason = "expired"
	ReasonInternal       StockOutReason = "internal"
	ReasonAdjustment     StockOutReason = "adjustment"
	ReasonReturnSupplier StockOutReason = "return_supplier"
	ReasonSample         StockOutReason = "sample"
	ReasonOther          StockOutReason = "other"
)

func (r StockOutReason) String() string {
	return string(r)
}

// Valid reports whether r is a known reason
func (r StockOutReason) Valid() bool {
	switch r {
	case ReasonDamage, ReasonLoss, ReasonExpired, ReasonInternal,
		ReasonAdjustment, ReasonReturnSupplier, ReasonSample, ReasonOther:
		return true
	}
	return false
}

func (r StockOutReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *StockOutReason) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	// "return" is accepted as shorthand for a supplier return
	if str == "return" {
		str = string(ReasonReturnSupplier)
	}
	*r = StockOutReason(str)
	return nil
}

func (r StockOutReason) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *StockOutReason) Scan(value interface{}) error {
	if value == nil {
		*r = ReasonOther
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = StockOutReason(v)
	case []byte:
		*r = StockOutReason(string(v))
	}
	return nil
}
