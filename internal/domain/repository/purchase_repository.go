package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/pkg/pagination"
)

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateItems(ctx context.Context, items []entity.PurchaseItem) error
	UpdateTotal(ctx context.Context, purchase *entity.Purchase) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Purchase, int64, error)
	LastNumber(ctx context.Context, prefix string) (string, error)
}
