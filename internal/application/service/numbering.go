package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
)

// NumberGenerator issues {PREFIX}{YYYYMMDD}{NNNN} document numbers. The
// counter row it draws from stays locked until the caller's transaction ends,
// so numbers are unique and gap-free per prefix and day.
type NumberGenerator struct {
	now func() time.Time
}

// NewNumberGenerator creates a generator reading the day from now; nil means time.Now
func NewNumberGenerator(now func() time.Time) *NumberGenerator {
	if now == nil {
		now = time.Now
	}
	return &NumberGenerator{now: now}
}

// Next returns the next number for prefix. tx must be the transactional store.
func (g *NumberGenerator) Next(ctx context.Context, tx repository.Store, prefix ledger.Prefix) (string, error) {
	day := ledger.DayKey(g.now())
	dayPrefix := ledger.DayPrefix(prefix, day)

	seq, err := tx.Sequences().Next(ctx, prefix, day, func(ctx context.Context) (int, error) {
		last, err := lastIssued(ctx, tx, prefix, dayPrefix)
		if err != nil {
			return 0, err
		}
		if last == "" {
			return 0, nil
		}
		n, ok := ledger.ParseSequence(last, dayPrefix)
		if !ok {
			return 0, fmt.Errorf("stored number %q does not end in a sequence", last)
		}
		return n, nil
	})
	if err != nil {
		return "", fmt.Errorf("next %s number: %w", prefix, err)
	}
	return ledger.FormatNumber(prefix, day, seq), nil
}

// lastIssued finds numbers written before the counter existed
func lastIssued(ctx context.Context, tx repository.Store, prefix ledger.Prefix, dayPrefix string) (string, error) {
	switch prefix {
	case ledger.PrefixBatch:
		return tx.Batches().LastNumber(ctx, dayPrefix)
	case ledger.PrefixPurchase:
		return tx.Purchases().LastNumber(ctx, dayPrefix)
	case ledger.PrefixSale:
		return tx.Sales().LastNumber(ctx, dayPrefix)
	case ledger.PrefixReturn:
		return tx.Sales().LastReturnNumber(ctx, dayPrefix)
	case ledger.PrefixTransfer:
		return tx.Transfers().LastNumber(ctx, dayPrefix)
	case ledger.PrefixStockOut:
		return tx.StockOuts().LastNumber(ctx, dayPrefix)
	default:
		return "", fmt.Errorf("unknown document prefix %q", prefix)
	}
}
