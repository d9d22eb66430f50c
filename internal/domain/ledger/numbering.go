package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Prefix identifies a numbered document type.
type Prefix string

const (
	PrefixBatch    Prefix = "B"
	PrefixPurchase Prefix = "PO"
	PrefixSale     Prefix = "INV"
	PrefixTransfer Prefix = "TRF"
	PrefixStockOut Prefix = "OUT"
	PrefixReturn   Prefix = "RET"
)

const dayLayout = "20060102"

// DayKey is the YYYYMMDD part of a document number.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// DayPrefix is the common prefix of every number issued for kind on day.
func DayPrefix(p Prefix, day string) string {
	return string(p) + day
}

// FormatNumber renders {PREFIX}{YYYYMMDD}{NNNN}. Sequences above 9999 keep all their digits.
func FormatNumber(p Prefix, day string, seq int) string {
	return fmt.Sprintf("%s%04d", DayPrefix(p, day), seq)
}

// ParseSequence extracts the numeric suffix of number issued under dayPrefix.
func ParseSequence(number, dayPrefix string) (int, bool) {
	if !strings.HasPrefix(number, dayPrefix) {
		return 0, false
	}
	suffix := number[len(dayPrefix):]
	if len(suffix) < 4 {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
