package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BatchRepository is the batch store. Quantities only change through
// Decrement, Increment and Grow, and only on rows taken with LockByIDs.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Batch, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Batch, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, inStockOnly bool) ([]entity.Batch, error)
	// LockByIDs takes an exclusive row lock on each batch in ascending id order.
	// Missing ids are absent from the result.
	LockByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Batch, error)
	// Decrement subtracts qty only if the batch still holds at least qty.
	// Returns (false, nil) when stock is insufficient.
	Decrement(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	Increment(ctx context.Context, id uuid.UUID, qty int) error
	// Grow adds qty to both quantity and initial_quantity of a merged lot.
	Grow(ctx context.Context, id uuid.UUID, qty int) error
	// FindMergeTarget returns the oldest batch of product in warehouse at buyPrice
	// without locking it; callers lock it together with their other batches.
	FindMergeTarget(ctx context.Context, productID, warehouseID uuid.UUID, buyPrice decimal.Decimal) (*entity.Batch, error)
	// LastNumber returns the greatest batch number starting with prefix.
	LastNumber(ctx context.Context, prefix string) (string, error)
}
