package repository

import (
	"context"

	"github.com/sangkips/clockshop-api/internal/domain/ledger"
)

// SequenceRepository hands out per-prefix, per-day document sequence values.
type SequenceRepository interface {
	// Next locks the counter for (prefix, day), creating it from seed when it
	// does not exist yet, and returns the incremented value.
	Next(ctx context.Context, prefix ledger.Prefix, day string, seed func(ctx context.Context) (int, error)) (int, error)
}
