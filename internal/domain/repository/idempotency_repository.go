package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses per user and key
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before cutoff and reports how many went
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
