package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
)

// batchLockKeys names the distributed locks for ids, in the same ascending
// order the database rows are locked in
func batchLockKeys(ids []uuid.UUID) []string {
	sorted := ledger.SortedIDs(ids)
	keys := make([]string, len(sorted))
	for i, id := range sorted {
		keys[i] = "batch:" + id.String()
	}
	return keys
}

// withBatchLocks holds the batch keys for the duration of fn. The keys are
// released only after fn returns, i.e. after its transaction has committed.
func withBatchLocks(ctx context.Context, locker repository.Locker, ids []uuid.UUID, fn func() error) error {
	if locker == nil || len(ids) == 0 {
		return fn()
	}
	release, err := locker.Acquire(ctx, batchLockKeys(ids))
	if err != nil {
		return err
	}
	defer release()
	return fn()
}
