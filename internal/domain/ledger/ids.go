package ledger

import (
	"bytes"
	"slices"

	"github.com/google/uuid"
)

// SortedIDs returns ids deduplicated and in ascending order. Every multi-row
// lock in the ledger (batches, products) is taken in this order.
func SortedIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return out
}
