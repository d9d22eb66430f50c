package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItems(ctx context.Context, items []entity.SaleItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// LockByID takes an exclusive row lock on the sale and loads its items.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// UpdateTotals writes the money columns and both statuses.
	UpdateTotals(ctx context.Context, sale *entity.Sale) error
	UpdateItemReturned(ctx context.Context, itemID uuid.UUID, returned int) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	LastNumber(ctx context.Context, prefix string) (string, error)

	CreateReturn(ctx context.Context, ret *entity.SaleReturn) error
	ListReturns(ctx context.Context, saleID uuid.UUID) ([]entity.SaleReturn, error)
	LastReturnNumber(ctx context.Context, prefix string) (string, error)

	// SumCompletedTotals, SumRefunds and SumCashRefunds back the customer balance repair.
	SumCompletedTotals(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	SumRefunds(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	SumCashRefunds(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	// SumSaleCashRefunds is the cash handed back on one sale's returns.
	SumSaleCashRefunds(ctx context.Context, saleID uuid.UUID) (decimal.Decimal, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.DocumentStatus
	PaymentStatus *enum.PaymentStatus
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}
