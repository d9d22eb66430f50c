package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/pkg/pagination"
)

// TransferRepository defines the interface for stock transfer data operations
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.StockTransfer) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error)
	// LockByID takes an exclusive row lock on the transfer and loads its items.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error)
	UpdateStatus(ctx context.Context, transfer *entity.StockTransfer) error
	SetDestination(ctx context.Context, itemID, batchID uuid.UUID) error
	List(ctx context.Context, status *enum.DocumentStatus, params *pagination.PaginationParams) ([]entity.StockTransfer, int64, error)
	LastNumber(ctx context.Context, prefix string) (string, error)
}

// StockOutRepository defines the interface for stock-out data operations
type StockOutRepository interface {
	Create(ctx context.Context, stockOut *entity.StockOut) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.StockOut, error)
	LockByID(ctx context.Context, id uuid.UUID) (*entity.StockOut, error)
	UpdateStatus(ctx context.Context, stockOut *entity.StockOut) error
	SetItemCost(ctx context.Context, item *entity.StockOutItem) error
	List(ctx context.Context, status *enum.DocumentStatus, params *pagination.PaginationParams) ([]entity.StockOut, int64, error)
	LastNumber(ctx context.Context, prefix string) (string, error)
}
